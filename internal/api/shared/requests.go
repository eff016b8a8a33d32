package shared

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Validate is the validator shared by all request DTOs.
var Validate = validator.New()

// DecodeJSON decodes the request body into the given struct.
// Unknown fields are ignored; an empty body is an error.
func DecodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("empty request body")
	}
	return json.NewDecoder(r.Body).Decode(v)
}

// ValidateRequest validates the given struct using the validator package.
// Types with their own Validate method are checked with that instead.
func ValidateRequest(v any) error {
	if self, ok := v.(interface{ Validate() error }); ok {
		return self.Validate()
	}
	return Validate.Struct(v)
}
