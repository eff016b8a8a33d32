package runware

const taskTypeVideoInference = "videoInference"

type videoInferenceTask struct {
	TaskType         string           `json:"taskType"`
	TaskUUID         string           `json:"taskUUID"`
	Model            string           `json:"model"`
	PositivePrompt   string           `json:"positivePrompt"`
	Duration         int              `json:"duration"`
	FPS              int              `json:"fps"`
	Width            int              `json:"width"`
	Height           int              `json:"height"`
	OutputFormat     string           `json:"outputFormat"`
	OutputQuality    int              `json:"outputQuality"`
	IncludeCost      bool             `json:"includeCost"`
	NumberResults    int              `json:"numberResults"`
	DeliveryMethod   string           `json:"deliveryMethod,omitempty"`
	ReferenceImages  []string         `json:"referenceImages"`
	ProviderSettings providerSettings `json:"providerSettings"`
}

type providerSettings struct {
	Google googleSettings `json:"google"`
}

type googleSettings struct {
	GenerateAudio bool `json:"generateAudio"`
	EnhancePrompt bool `json:"enhancePrompt"`
}

type apiResponse struct {
	Data   []videoResult `json:"data"`
	Errors []apiError    `json:"errors"`
}

type videoResult struct {
	TaskType string   `json:"taskType"`
	TaskUUID string   `json:"taskUUID"`
	Status   string   `json:"status"`
	VideoURL string   `json:"videoURL"`
	MediaURL string   `json:"mediaURL"`
	Cost     *float64 `json:"cost,omitempty"`
}

type apiError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Parameter string `json:"parameter"`
	TaskUUID  string `json:"taskUUID"`
}
