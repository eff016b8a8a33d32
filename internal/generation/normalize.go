package generation

import (
	"strings"

	"github.com/phrazzld/gearcast-api/internal/domain"
)

// Outcome is what gets written back to a video record after a provider call.
type Outcome struct {
	Status         domain.VideoStatus
	ResultURL      string
	ProviderTaskID string
}

// Failed is the outcome recorded when generation could not be completed.
var Failed = Outcome{Status: domain.VideoStatusFailed}

// MapProviderStatus maps a provider status onto the video lifecycle.
// Anything other than success or failure means the provider holds the work,
// so a provider-side "queued" is recorded as processing: only videos not yet
// handed to a provider stay queued.
func MapProviderStatus(raw string) domain.VideoStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "error", "failed":
		return domain.VideoStatusFailed
	case "success":
		return domain.VideoStatusSuccess
	default:
		return domain.VideoStatusProcessing
	}
}

// Normalize converts a provider Response into an Outcome.
func Normalize(resp Response) Outcome {
	switch r := resp.(type) {
	case Immediate:
		url := r.VideoURL
		if strings.TrimSpace(url) == "" {
			url = r.MediaURL
		}
		return Outcome{
			Status:         MapProviderStatus(r.Status),
			ResultURL:      domain.NormalizeResultURL(url),
			ProviderTaskID: r.ProviderTaskID,
		}
	case *Immediate:
		if r == nil {
			return Failed
		}
		return Normalize(*r)
	case Accepted:
		return Outcome{
			Status:         domain.VideoStatusProcessing,
			ProviderTaskID: r.ProviderTaskID,
		}
	case *Accepted:
		if r == nil {
			return Failed
		}
		return Normalize(*r)
	default:
		return Failed
	}
}
