package blob

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/gearcast-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSupabaseStore_Validation(t *testing.T) {
	_, err := NewSupabaseStore("", "key", nil)
	assert.Error(t, err)
	_, err = NewSupabaseStore("https://p.supabase.co", "", nil)
	assert.Error(t, err)
}

func TestSupabaseStore_Upload(t *testing.T) {
	var gotPath, gotAuth, gotKey, gotType, gotUpsert string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		gotPath = r.URL.EscapedPath()
		gotAuth = r.Header.Get("Authorization")
		gotKey = r.Header.Get("apikey")
		gotType = r.Header.Get("Content-Type")
		gotUpsert = r.Header.Get("x-upsert")
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"Key":"images/eq/1-a.png"}`))
	}))
	defer srv.Close()

	s, err := NewSupabaseStore(srv.URL+"/", "secret", nil)
	require.NoError(t, err)

	err = s.Upload(context.Background(), "images", "eq/1-a.png", []byte("png"), "image/png")
	require.NoError(t, err)

	assert.Equal(t, "/storage/v1/object/images/eq/1-a.png", gotPath)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, "image/png", gotType)
	assert.Equal(t, "false", gotUpsert)
	assert.Equal(t, []byte("png"), gotBody)
}

func TestSupabaseStore_UploadDefaultContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))
	}))
	defer srv.Close()

	s, err := NewSupabaseStore(srv.URL, "secret", nil)
	require.NoError(t, err)
	require.NoError(t, s.Upload(context.Background(), "manuals", "eq/1-m.pdf", []byte("%PDF"), ""))
}

func TestSupabaseStore_UploadError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"statusCode":"409","error":"Duplicate","message":"The resource already exists"}`))
	}))
	defer srv.Close()

	s, err := NewSupabaseStore(srv.URL, "secret", nil)
	require.NoError(t, err)

	err = s.Upload(context.Background(), "images", "eq/1-a.png", []byte("png"), "image/png")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "The resource already exists", apiErr.Message)
}

func TestSupabaseStore_Remove(t *testing.T) {
	var body map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/storage/v1/object/manuals", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	s, err := NewSupabaseStore(srv.URL, "secret", nil)
	require.NoError(t, err)

	require.NoError(t, s.Remove(context.Background(), "manuals", "eq/1-m.pdf"))
	assert.Equal(t, []string{"eq/1-m.pdf"}, body["prefixes"])
}

func TestSupabaseStore_PublicURLRoundTrip(t *testing.T) {
	s, err := NewSupabaseStore("https://p.supabase.co", "secret", nil)
	require.NoError(t, err)

	u := s.PublicURL("images", "eq/1-My_File_.PDF")
	assert.Equal(t, "https://p.supabase.co/storage/v1/object/public/images/eq/1-My_File_.PDF", u)
	assert.Empty(t, s.PublicURL("images", ""))

	path, err := s.PathFromURL("images", u)
	require.NoError(t, err)
	assert.Equal(t, "eq/1-My_File_.PDF", path)

	path, err = s.PathFromURL("images", u+"?")
	require.NoError(t, err)
	assert.Equal(t, "eq/1-My_File_.PDF", path)

	_, err = s.PathFromURL("manuals", u)
	assert.ErrorIs(t, err, store.ErrBlobNotFound)
	_, err = s.PathFromURL("images", "https://elsewhere.example/a.png")
	assert.ErrorIs(t, err, store.ErrBlobNotFound)
}
