// Package service contains the application use cases. It orchestrates the
// stores (defined in internal/store), the blob store and the video
// inference provider to fulfill the API's operations.
//
// Services return errors from the domain taxonomy (domain.ErrValidation,
// domain.ErrNotFound, domain.ErrStorage) for expected conditions so the API
// layer can classify them with errors.Is. Unexpected failures are wrapped
// in a ServiceError that records the failing operation.
package service
