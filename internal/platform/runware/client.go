package runware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/gearcast-api/internal/generation"
)

// DefaultBaseURL is the public Runware REST endpoint.
const DefaultBaseURL = "https://api.runware.ai/v1"

// maxErrorBody bounds how much of a failed response is kept for logging.
const maxErrorBody = 4 << 10

// Client submits video inference tasks to Runware.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	newTaskID  func() string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// WithBaseURL overrides the API endpoint.
func WithBaseURL(u string) Option {
	return func(cl *Client) {
		if u = strings.TrimSpace(u); u != "" {
			cl.baseURL = u
		}
	}
}

// NewClient creates a Runware client authenticated with apiKey.
func NewClient(apiKey string, logger *slog.Logger, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: runware API key cannot be empty", generation.ErrInvalidConfig)
	}
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{},
		logger:     logger.With(slog.String("component", "runware_provider")),
		newTaskID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

var _ generation.Provider = (*Client)(nil)

// Name implements generation.Provider.
func (c *Client) Name() string { return "runware" }

// GenerateVideo submits one videoInference task and interprets the answer.
func (c *Client) GenerateVideo(ctx context.Context, req generation.Request) (generation.Response, error) {
	if len(req.ReferenceImages) == 0 {
		return nil, generation.ErrNoReferenceImages
	}

	task := c.buildTask(req)
	body, err := json.Marshal([]videoInferenceTask{task})
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", generation.ErrGenerationFailed, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", generation.ErrGenerationFailed, err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	c.logger.DebugContext(ctx, "submitting video inference task",
		slog.String("task_uuid", task.TaskUUID),
		slog.String("model", task.Model),
		slog.Int("reference_images", len(task.ReferenceImages)))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", generation.ErrTransport, err)
	}

	return parseResponse(resp.StatusCode, raw, task.TaskUUID)
}

func (c *Client) buildTask(req generation.Request) videoInferenceTask {
	return videoInferenceTask{
		TaskType:        taskTypeVideoInference,
		TaskUUID:        c.newTaskID(),
		Model:           req.Model,
		PositivePrompt:  req.Prompt,
		Duration:        req.DurationSecs,
		FPS:             req.FPS,
		Width:           req.Width,
		Height:          req.Height,
		OutputFormat:    req.OutputFormat,
		OutputQuality:   req.OutputQuality,
		IncludeCost:     req.IncludeCost,
		NumberResults:   req.NumberResults,
		DeliveryMethod:  req.DeliveryMethod,
		ReferenceImages: req.ReferenceImages,
		ProviderSettings: providerSettings{
			Google: googleSettings{
				GenerateAudio: req.GenerateAudio,
				EnhancePrompt: req.EnhancePrompt,
			},
		},
	}
}

// parseResponse turns a Runware HTTP answer into a generation.Response.
// submittedID is used when the result item omits its taskUUID.
func parseResponse(statusCode int, raw []byte, submittedID string) (generation.Response, error) {
	var body apiResponse
	decodeErr := json.Unmarshal(raw, &body)

	if len(body.Errors) > 0 {
		return nil, fmt.Errorf("%w: %s", generation.ErrGenerationFailed, describeErrors(body.Errors))
	}
	if statusCode < 200 || statusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d: %s",
			generation.ErrGenerationFailed, statusCode, truncate(raw, maxErrorBody))
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidResponse, decodeErr)
	}
	if len(body.Data) == 0 {
		return nil, fmt.Errorf("%w: response has no data", generation.ErrInvalidResponse)
	}

	first := body.Data[0]
	taskID := first.TaskUUID
	if taskID == "" {
		taskID = submittedID
	}

	// Async delivery answers with just the task handle.
	if first.Status == "" && first.VideoURL == "" && first.MediaURL == "" {
		return generation.Accepted{ProviderTaskID: taskID}, nil
	}

	return generation.Immediate{
		Status:         first.Status,
		VideoURL:       first.VideoURL,
		MediaURL:       first.MediaURL,
		ProviderTaskID: taskID,
	}, nil
}

func describeErrors(errs []apiError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		msg := e.Message
		if msg == "" {
			msg = "unknown error"
		}
		if e.Code != "" {
			msg = e.Code + ": " + msg
		}
		parts = append(parts, msg)
	}
	return strings.Join(parts, "; ")
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return string(b)
}

