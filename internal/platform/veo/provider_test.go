package veo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/gearcast-api/internal/domain"
	"github.com/phrazzld/gearcast-api/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeModels struct {
	op  *genai.GenerateVideosOperation
	err error

	gotModel  string
	gotPrompt string
	gotImage  *genai.Image
	gotConfig *genai.GenerateVideosConfig
}

func (f *fakeModels) GenerateVideos(_ context.Context, model, prompt string, image *genai.Image,
	config *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
	f.gotModel = model
	f.gotPrompt = prompt
	f.gotImage = image
	f.gotConfig = config
	return f.op, f.err
}

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func imageServer(t *testing.T, contentType string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		_, _ = w.Write(pngHeader)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewProvider_RequiresKey(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{}, nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}

func TestGenerateVideo_SendsFirstImage(t *testing.T) {
	srv := imageServer(t, "image/png; charset=binary", http.StatusOK)
	models := &fakeModels{op: &genai.GenerateVideosOperation{Name: "operations/abc"}}
	p := newProvider(models, srv.Client(), DefaultModel, nil)

	req := generation.NewRequest(generation.DefaultParams(), "Drill", []string{srv.URL + "/a.png", srv.URL + "/b.png"})
	resp, err := p.GenerateVideo(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, generation.Accepted{ProviderTaskID: "operations/abc"}, resp)
	assert.Equal(t, DefaultModel, models.gotModel)
	assert.Equal(t, "Drill", models.gotPrompt)
	require.NotNil(t, models.gotImage)
	assert.Equal(t, pngHeader, models.gotImage.ImageBytes)
	assert.Equal(t, "image/png", models.gotImage.MIMEType)

	cfg := models.gotConfig
	require.NotNil(t, cfg)
	assert.EqualValues(t, 1, cfg.NumberOfVideos)
	require.NotNil(t, cfg.DurationSeconds)
	assert.EqualValues(t, 8, *cfg.DurationSeconds)
	assert.Equal(t, "16:9", cfg.AspectRatio)
	assert.True(t, cfg.EnhancePrompt)
	assert.Nil(t, cfg.FPS)
	assert.Nil(t, cfg.GenerateAudio)
	assert.Empty(t, cfg.Resolution)
}

func TestGenerateVideo_DetectsMIMEType(t *testing.T) {
	srv := imageServer(t, "application/octet-stream", http.StatusOK)
	models := &fakeModels{op: &genai.GenerateVideosOperation{Name: "operations/x"}}
	p := newProvider(models, srv.Client(), DefaultModel, nil)

	_, err := p.GenerateVideo(context.Background(),
		generation.NewRequest(generation.DefaultParams(), "p", []string{srv.URL}))
	require.NoError(t, err)
	assert.Equal(t, "image/png", models.gotImage.MIMEType)
}

func TestGenerateVideo_Failures(t *testing.T) {
	t.Run("no images", func(t *testing.T) {
		p := newProvider(&fakeModels{}, http.DefaultClient, DefaultModel, nil)
		_, err := p.GenerateVideo(context.Background(), generation.NewRequest(generation.DefaultParams(), "p", nil))
		assert.ErrorIs(t, err, generation.ErrNoReferenceImages)
	})

	t.Run("image not reachable", func(t *testing.T) {
		srv := imageServer(t, "image/png", http.StatusNotFound)
		models := &fakeModels{}
		p := newProvider(models, srv.Client(), DefaultModel, nil)
		_, err := p.GenerateVideo(context.Background(),
			generation.NewRequest(generation.DefaultParams(), "p", []string{srv.URL}))
		assert.ErrorIs(t, err, generation.ErrGenerationFailed)
		assert.Empty(t, models.gotModel, "sdk must not be called")
	})

	t.Run("sdk error", func(t *testing.T) {
		srv := imageServer(t, "image/png", http.StatusOK)
		p := newProvider(&fakeModels{err: errors.New("quota exceeded")}, srv.Client(), DefaultModel, nil)
		_, err := p.GenerateVideo(context.Background(),
			generation.NewRequest(generation.DefaultParams(), "p", []string{srv.URL}))
		assert.ErrorIs(t, err, generation.ErrGenerationFailed)
		assert.ErrorIs(t, err, domain.ErrProvider)
	})
}

func TestResponseFromOperation(t *testing.T) {
	tests := []struct {
		name    string
		op      *genai.GenerateVideosOperation
		want    generation.Response
		wantErr error
	}{
		{name: "nil", op: nil, wantErr: generation.ErrInvalidResponse},
		{
			name: "pending",
			op:   &genai.GenerateVideosOperation{Name: "operations/1"},
			want: generation.Accepted{ProviderTaskID: "operations/1"},
		},
		{
			name:    "pending without name",
			op:      &genai.GenerateVideosOperation{},
			wantErr: generation.ErrInvalidResponse,
		},
		{
			name:    "operation error",
			op:      &genai.GenerateVideosOperation{Name: "operations/1", Done: true, Error: map[string]any{"message": "bad prompt"}},
			wantErr: generation.ErrGenerationFailed,
		},
		{
			name: "done with video",
			op: &genai.GenerateVideosOperation{
				Name: "operations/2",
				Done: true,
				Response: &genai.GenerateVideosResponse{
					GeneratedVideos: []*genai.GeneratedVideo{{Video: &genai.Video{URI: "https://files/v.mp4"}}},
				},
			},
			want: generation.Immediate{Status: "success", VideoURL: "https://files/v.mp4", ProviderTaskID: "operations/2"},
		},
		{
			name: "done but filtered",
			op: &genai.GenerateVideosOperation{
				Done:     true,
				Response: &genai.GenerateVideosResponse{RAIMediaFilteredCount: 1},
			},
			wantErr: generation.ErrGenerationFailed,
		},
		{
			name:    "done without videos",
			op:      &genai.GenerateVideosOperation{Done: true},
			wantErr: generation.ErrInvalidResponse,
		},
		{
			name: "done with empty uri",
			op: &genai.GenerateVideosOperation{
				Done: true,
				Response: &genai.GenerateVideosResponse{
					GeneratedVideos: []*genai.GeneratedVideo{{Video: &genai.Video{}}},
				},
			},
			wantErr: generation.ErrInvalidResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := responseFromOperation(tt.op)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVideoConfig_Portrait(t *testing.T) {
	p := generation.DefaultParams()
	p.Width, p.Height = 720, 1280
	assert.Equal(t, "9:16", videoConfig(p).AspectRatio)
}
