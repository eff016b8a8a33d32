package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/gearcast-api/internal/api/shared"
	"github.com/phrazzld/gearcast-api/internal/domain"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes so that
// internal error types never leak to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusInternalServerError
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-facing message for err.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return "An unexpected error occurred"

	case errors.Is(err, domain.ErrEquipmentNotFound):
		return "Equipment not found"
	case errors.Is(err, domain.ErrVideoNotFound):
		return "Video not found"
	case errors.Is(err, domain.ErrAssetNotAttached):
		return "Asset is not attached to this equipment"

	case errors.Is(err, domain.ErrEmptyEquipmentName):
		return "Equipment name cannot be empty"
	case errors.Is(err, domain.ErrEmptyUpload):
		return "Uploaded file is empty"
	case errors.Is(err, domain.ErrInvalidAssetKind):
		return "Invalid asset kind"
	case errors.Is(err, domain.ErrEquipmentIneligible):
		return "Equipment not found"
	case errors.Is(err, domain.ErrEquipmentNoImages):
		return "Equipment has no images"
	case errors.Is(err, domain.ErrValidation):
		return "Validation error"

	case errors.Is(err, domain.ErrNoPublicURL):
		return "Unable to store asset"
	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validator output into a short message that
// names the field without echoing struct internals.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Validation error"
	}
	fe := verrs[0]
	return fmt.Sprintf("Invalid %s: %s", strings.ToLower(fe.Field()), validationTagMessage(fe.Tag()))
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "url", "http_url":
		return "must be a URL"
	case "uuid", "uuid4":
		return "must be a UUID"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the status and safe message for err and logs the
// detail. defaultMsg replaces the generic message on 500s when non-empty.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)
	msg := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && defaultMsg != "" {
		msg = defaultMsg
	}
	shared.RespondWithErrorAndLog(w, r, status, msg, err)
}
