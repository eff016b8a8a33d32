package generation

import (
	"fmt"

	"github.com/phrazzld/gearcast-api/internal/domain"
)

// Common errors returned by providers. All of them wrap domain.ErrProvider.
var (
	// ErrGenerationFailed is returned when the provider rejected the request
	// or reported an error for it.
	ErrGenerationFailed = fmt.Errorf("%w: video generation failed", domain.ErrProvider)

	// ErrInvalidResponse is returned when the provider response cannot be
	// parsed or carries no usable result.
	ErrInvalidResponse = fmt.Errorf("%w: invalid response from video provider", domain.ErrProvider)

	// ErrTransport is returned when the provider could not be reached.
	ErrTransport = fmt.Errorf("%w: video provider unreachable", domain.ErrProvider)

	// ErrNoReferenceImages is returned when a request carries no images.
	ErrNoReferenceImages = fmt.Errorf("%w: request has no reference images", domain.ErrProvider)

	// ErrInvalidConfig is returned when a provider is constructed with invalid settings.
	ErrInvalidConfig = fmt.Errorf("%w: invalid provider configuration", domain.ErrProvider)
)
