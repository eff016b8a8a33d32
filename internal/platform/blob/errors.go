package blob

import (
	"errors"
	"fmt"
)

// ErrInvalidKey is returned when a bucket or path would escape the storage root.
var ErrInvalidKey = errors.New("blob: invalid key")

// APIError is a non-2xx response from the storage service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("blob: storage responded with status %d", e.StatusCode)
	}
	return fmt.Sprintf("blob: storage responded with status %d: %s", e.StatusCode, e.Message)
}
