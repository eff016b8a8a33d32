package generation

// Params are the generation settings that do not vary per request.
type Params struct {
	Model          string
	DurationSecs   int
	FPS            int
	Width          int
	Height         int
	OutputFormat   string
	OutputQuality  int
	IncludeCost    bool
	NumberResults  int
	DeliveryMethod string
	GenerateAudio  bool
	EnhancePrompt  bool
}

// DefaultParams returns the settings used when nothing is configured.
func DefaultParams() Params {
	return Params{
		Model:          "google:3@2",
		DurationSecs:   8,
		FPS:            24,
		Width:          1280,
		Height:         720,
		OutputFormat:   "MP4",
		OutputQuality:  85,
		IncludeCost:    true,
		NumberResults:  1,
		DeliveryMethod: "sync",
		GenerateAudio:  true,
		EnhancePrompt:  true,
	}
}

// Request is one video generation call.
type Request struct {
	Params
	Prompt          string
	ReferenceImages []string
}

// NewRequest combines the fixed params with a prompt and reference images.
// The image slice is copied.
func NewRequest(p Params, prompt string, images []string) Request {
	return Request{
		Params:          p,
		Prompt:          prompt,
		ReferenceImages: append([]string(nil), images...),
	}
}
