package blob

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/phrazzld/gearcast-api/internal/platform/logger"
	"github.com/phrazzld/gearcast-api/internal/store"
)

// SupabaseStore talks to the Supabase Storage REST API.
type SupabaseStore struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// SupabaseOption configures a SupabaseStore.
type SupabaseOption func(*SupabaseStore)

// WithHTTPClient overrides the HTTP client used for storage calls.
func WithHTTPClient(c *http.Client) SupabaseOption {
	return func(s *SupabaseStore) { s.httpClient = c }
}

// NewSupabaseStore creates a client for the project at baseURL
// (e.g. https://xyz.supabase.co) authenticated with apiKey.
func NewSupabaseStore(baseURL, apiKey string, logger *slog.Logger, opts ...SupabaseOption) (*SupabaseStore, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("blob: supabase url is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("blob: invalid supabase url: %w", err)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("blob: supabase key is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &SupabaseStore{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{},
		logger:     logger.With(slog.String("component", "supabase_storage")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

var _ store.BlobStore = (*SupabaseStore)(nil)

func (s *SupabaseStore) objectURL(bucket, path string) string {
	return s.baseURL + "/storage/v1/object/" + escapePath(bucket) + "/" + escapePath(path)
}

func (s *SupabaseStore) publicPrefix(bucket string) string {
	return s.baseURL + "/storage/v1/object/public/" + escapePath(bucket) + "/"
}

func (s *SupabaseStore) newRequest(ctx context.Context, method, target string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("apikey", s.apiKey)
	return req, nil
}

// Upload implements store.BlobStore.Upload.
func (s *SupabaseStore) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	req, err := s.newRequest(ctx, http.MethodPost, s.objectURL(bucket, path), bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("blob: build upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "false")

	if err := s.do(req); err != nil {
		log.Error("failed to upload blob",
			slog.String("bucket", bucket),
			slog.String("path", path),
			slog.String("error", err.Error()))
		return err
	}

	log.Debug("blob uploaded",
		slog.String("bucket", bucket),
		slog.String("path", path),
		slog.Int("bytes", len(data)))
	return nil
}

// PublicURL implements store.BlobStore.PublicURL.
func (s *SupabaseStore) PublicURL(bucket, path string) string {
	if bucket == "" || path == "" {
		return ""
	}
	return s.publicPrefix(bucket) + escapePath(path)
}

// Remove implements store.BlobStore.Remove.
func (s *SupabaseStore) Remove(ctx context.Context, bucket, path string) error {
	body, err := json.Marshal(map[string][]string{"prefixes": {path}})
	if err != nil {
		return fmt.Errorf("blob: encode remove request: %w", err)
	}

	req, err := s.newRequest(ctx, http.MethodDelete,
		s.baseURL+"/storage/v1/object/"+escapePath(bucket), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("blob: build remove request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return s.do(req)
}

// PathFromURL implements store.BlobStore.PathFromURL.
func (s *SupabaseStore) PathFromURL(bucket, rawURL string) (string, error) {
	return pathAfterPrefix(rawURL, s.publicPrefix(bucket))
}

func (s *SupabaseStore) do(req *http.Request) error {
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("blob: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	msg := strings.TrimSpace(string(raw))
	if json.Unmarshal(raw, &payload) == nil {
		if payload.Message != "" {
			msg = payload.Message
		} else if payload.Error != "" {
			msg = payload.Error
		}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}

// escapePath escapes each segment of a slash-separated path.
func escapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}

// pathAfterPrefix returns the unescaped remainder of rawURL after prefix,
// ignoring any query string or fragment.
func pathAfterPrefix(rawURL, prefix string) (string, error) {
	if i := strings.IndexAny(rawURL, "?#"); i >= 0 {
		rawURL = rawURL[:i]
	}
	rest, ok := strings.CutPrefix(rawURL, prefix)
	if !ok || rest == "" {
		return "", store.ErrBlobNotFound
	}
	path, err := url.PathUnescape(rest)
	if err != nil {
		return "", fmt.Errorf("%w: %v", store.ErrBlobNotFound, err)
	}
	return path, nil
}
