package store

import (
	"errors"
	"fmt"
)

// Persistence sentinels. Store implementations wrap driver errors with these
// so the service layer never inspects driver types.
var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicate     = errors.New("record already exists")
	ErrInvalidEntity = errors.New("record rejected by store")

	ErrEquipmentNotFound = fmt.Errorf("%w: equipment", ErrNotFound)
	ErrVideoNotFound     = fmt.Errorf("%w: video", ErrNotFound)

	// ErrBlobNotFound is returned when a public URL does not resolve to an
	// object path in a known bucket, or the object is missing.
	ErrBlobNotFound = fmt.Errorf("%w: blob", ErrNotFound)
)

// IsNotFoundError reports whether err is any store not-found error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
