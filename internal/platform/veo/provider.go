package veo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/gearcast-api/internal/generation"
	"google.golang.org/genai"
)

// DefaultModel is the Veo model used when none is configured.
const DefaultModel = "veo-2.0-generate-001"

// defaultAspectRatio matches the 1280x720 frame used by the other provider.
const defaultAspectRatio = "16:9"

// maxImageBytes bounds the reference image download.
const maxImageBytes = 20 << 20

// videoGenerator is the subset of *genai.Models used by the provider.
type videoGenerator interface {
	GenerateVideos(ctx context.Context, model string, prompt string, image *genai.Image,
		config *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error)
}

// Config holds the Veo connection settings.
type Config struct {
	APIKey string
	Model  string
	// BaseURL overrides the Gemini API endpoint; empty uses the SDK default.
	BaseURL string
}

// Provider generates videos with Veo.
type Provider struct {
	models     videoGenerator
	httpClient *http.Client
	model      string
	logger     *slog.Logger
}

// NewProvider creates a Veo provider.
//
// Parameters:
//   - ctx: Context for client construction
//   - cfg: API key, model and optional endpoint override
//   - httpClient: client used for the SDK and for fetching reference images;
//     nil builds one without a timeout
//   - logger: structured logger; nil uses slog.Default()
//
// Returns:
//   - A ready Provider, or an error wrapping generation.ErrInvalidConfig
func NewProvider(ctx context.Context, cfg Config, httpClient *http.Client, logger *slog.Logger) (*Provider, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: google API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create genai client: %v", generation.ErrInvalidConfig, err)
	}

	return newProvider(client.Models, httpClient, cfg.Model, logger), nil
}

func newProvider(models videoGenerator, httpClient *http.Client, model string, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{
		models:     models,
		httpClient: httpClient,
		model:      model,
		logger:     logger.With(slog.String("component", "veo_provider")),
	}
}

var _ generation.Provider = (*Provider)(nil)

// Name implements generation.Provider.
func (p *Provider) Name() string { return "veo" }

// GenerateVideo starts a Veo generation conditioned on the first reference image.
func (p *Provider) GenerateVideo(ctx context.Context, req generation.Request) (generation.Response, error) {
	if len(req.ReferenceImages) == 0 {
		return nil, generation.ErrNoReferenceImages
	}

	image, err := p.fetchImage(ctx, req.ReferenceImages[0])
	if err != nil {
		return nil, err
	}

	op, err := p.models.GenerateVideos(ctx, p.model, req.Prompt, image, videoConfig(req.Params))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	p.logger.DebugContext(ctx, "veo operation started",
		slog.String("operation", operationName(op)),
		slog.Bool("done", op != nil && op.Done))

	return responseFromOperation(op)
}

// videoConfig maps the fixed params onto what the Gemini API backend
// accepts. Frame rate, resolution, audio and quality are Vertex-only.
func videoConfig(p generation.Params) *genai.GenerateVideosConfig {
	cfg := &genai.GenerateVideosConfig{
		NumberOfVideos: int32(max(p.NumberResults, 1)),
		AspectRatio:    defaultAspectRatio,
		EnhancePrompt:  p.EnhancePrompt,
	}
	if p.DurationSecs > 0 {
		d := int32(p.DurationSecs)
		cfg.DurationSeconds = &d
	}
	if p.Height > p.Width {
		cfg.AspectRatio = "9:16"
	}
	return cfg
}

func (p *Provider) fetchImage(ctx context.Context, url string) (*genai.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid reference image url: %v", generation.ErrGenerationFailed, err)
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch reference image: %v", generation.ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: fetch reference image: status %d", generation.ErrGenerationFailed, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read reference image: %v", generation.ErrTransport, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: reference image is empty", generation.ErrGenerationFailed)
	}

	mimeType := resp.Header.Get("Content-Type")
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = mimeType[:i]
	}
	mimeType = strings.TrimSpace(mimeType)
	if !strings.HasPrefix(mimeType, "image/") {
		mimeType = http.DetectContentType(data)
	}

	return &genai.Image{ImageBytes: data, MIMEType: mimeType}, nil
}

var errOperationFailed = errors.New("operation failed")

// responseFromOperation interprets a Veo long-running operation.
func responseFromOperation(op *genai.GenerateVideosOperation) (generation.Response, error) {
	if op == nil {
		return nil, fmt.Errorf("%w: no operation returned", generation.ErrInvalidResponse)
	}
	if len(op.Error) > 0 {
		msg, _ := op.Error["message"].(string)
		if msg == "" {
			msg = errOperationFailed.Error()
		}
		return nil, fmt.Errorf("%w: %s", generation.ErrGenerationFailed, msg)
	}
	if !op.Done {
		if op.Name == "" {
			return nil, fmt.Errorf("%w: pending operation has no name", generation.ErrInvalidResponse)
		}
		return generation.Accepted{ProviderTaskID: op.Name}, nil
	}

	if op.Response == nil || len(op.Response.GeneratedVideos) == 0 {
		if op.Response != nil && op.Response.RAIMediaFilteredCount > 0 {
			return nil, fmt.Errorf("%w: video blocked by safety filters", generation.ErrGenerationFailed)
		}
		return nil, fmt.Errorf("%w: operation finished without videos", generation.ErrInvalidResponse)
	}

	first := op.Response.GeneratedVideos[0]
	if first == nil || first.Video == nil || first.Video.URI == "" {
		return nil, fmt.Errorf("%w: generated video has no uri", generation.ErrInvalidResponse)
	}

	return generation.Immediate{
		Status:         "success",
		VideoURL:       first.Video.URI,
		ProviderTaskID: op.Name,
	}, nil
}

func operationName(op *genai.GenerateVideosOperation) string {
	if op == nil {
		return ""
	}
	return op.Name
}
