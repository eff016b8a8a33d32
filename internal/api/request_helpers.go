package api

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/gearcast-api/internal/service"
)

// defaultUploadName is used when a raw upload carries no ?filename=.
const defaultUploadName = "file"

// errUploadTooLarge is returned when an upload exceeds the configured limit.
var errUploadTooLarge = errors.New("upload exceeds size limit")

// pathID returns the named URL parameter when it is a well-formed UUID.
// Records are keyed by UUID, so anything else cannot match one.
func pathID(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// readUpload extracts an asset upload from r. A multipart/form-data body
// must carry the file in the "file" field; any other body is taken as the
// raw file contents, named by ?filename=.
func readUpload(r *http.Request, maxBytes int64) (service.Upload, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return readMultipartUpload(r, maxBytes)
	}

	data, err := readLimited(r.Body, maxBytes)
	if err != nil {
		return service.Upload{}, err
	}

	name := strings.TrimSpace(r.URL.Query().Get("filename"))
	if name == "" {
		name = defaultUploadName
	}
	contentType := r.Header.Get("Content-Type")
	if contentType == "" && len(data) > 0 {
		contentType = http.DetectContentType(data)
	}
	return service.Upload{Filename: name, ContentType: contentType, Data: data}, nil
}

func readMultipartUpload(r *http.Request, maxBytes int64) (service.Upload, error) {
	reader, err := r.MultipartReader()
	if err != nil {
		return service.Upload{}, err
	}
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			// No file field means nothing was uploaded.
			return service.Upload{Filename: defaultUploadName}, nil
		}
		if err != nil {
			return service.Upload{}, err
		}
		if part.FormName() != "file" {
			_ = part.Close()
			continue
		}

		data, err := readLimited(part, maxBytes)
		_ = part.Close()
		if err != nil {
			return service.Upload{}, err
		}

		name := part.FileName()
		if name == "" {
			name = defaultUploadName
		}
		contentType := part.Header.Get("Content-Type")
		if contentType == "" && len(data) > 0 {
			contentType = http.DetectContentType(data)
		}
		return service.Upload{Filename: name, ContentType: contentType, Data: data}, nil
	}
}

// readLimited reads all of r, failing with errUploadTooLarge past maxBytes.
// A non-positive maxBytes disables the limit.
func readLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	if r == nil {
		return nil, nil
	}
	if maxBytes <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, errUploadTooLarge
	}
	return data, nil
}
