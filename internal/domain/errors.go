// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every layer. Concrete errors wrap one of these
// sentinels so callers can classify them with errors.Is.
var (
	// ErrValidation is returned when caller input or a precondition is invalid.
	// The API layer maps it to 400.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrStorage is returned when the record store or blob store did not
	// return an expected result.
	ErrStorage = errors.New("storage failure")

	// ErrProvider is returned when the video inference provider call fails.
	// It never reaches an HTTP caller; it is recorded as a failed video.
	ErrProvider = errors.New("video provider failure")
)

// Entity-specific errors.
var (
	ErrEquipmentNotFound = fmt.Errorf("%w: equipment", ErrNotFound)
	ErrVideoNotFound     = fmt.Errorf("%w: video", ErrNotFound)
	ErrAssetNotAttached  = fmt.Errorf("%w: asset is not attached to equipment", ErrNotFound)

	ErrEmptyEquipmentName  = fmt.Errorf("%w: equipment name cannot be empty", ErrValidation)
	ErrInvalidAssetKind    = fmt.Errorf("%w: invalid asset kind", ErrValidation)
	ErrEmptyUpload         = fmt.Errorf("%w: file is empty", ErrValidation)
	ErrEquipmentIneligible = fmt.Errorf("%w: equipment not found", ErrValidation)
	ErrEquipmentNoImages   = fmt.Errorf("%w: equipment has no images", ErrValidation)
	ErrInvalidVideoStatus  = fmt.Errorf("%w: invalid video status", ErrValidation)

	ErrNoPublicURL = fmt.Errorf("%w: unable to store asset", ErrStorage)
)
