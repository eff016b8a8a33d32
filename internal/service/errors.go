package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/gearcast-api/internal/domain"
	"github.com/phrazzld/gearcast-api/internal/store"
)

// ServiceError wraps an unexpected failure with the operation that hit it.
type ServiceError struct {
	// Service is the component name, e.g. "equipment" or "video".
	Service string
	// Operation is the operation that failed, e.g. "attach_asset".
	Operation string
	// Message is a human-readable description of the error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError classifies err. Errors that already belong to the domain
// taxonomy are returned unchanged, store not-found errors are translated to
// their domain equivalents, and anything else is wrapped in a ServiceError
// that also matches domain.ErrStorage.
func NewServiceError(service, operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrStorage):
		return err
	case errors.Is(err, store.ErrEquipmentNotFound):
		return domain.ErrEquipmentNotFound
	case errors.Is(err, store.ErrVideoNotFound):
		return domain.ErrVideoNotFound
	case errors.Is(err, store.ErrInvalidEntity):
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	return &ServiceError{
		Service:   service,
		Operation: operation,
		Message:   message,
		Err:       fmt.Errorf("%w: %w", domain.ErrStorage, err),
	}
}
