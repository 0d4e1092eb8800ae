package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidationError describes one failed field of a request body.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// validateRequest checks the struct's validate tags and returns one entry per
// failed field, or nil when the payload is well-formed.
func validateRequest(obj any) []ValidationError {
	err := validate.Struct(obj)
	if err == nil {
		return nil
	}

	var details []ValidationError
	for _, fe := range err.(validator.ValidationErrors) {
		details = append(details, ValidationError{
			Field:   fe.Field(),
			Message: validationMessage(fe),
			Type:    fe.Tag(),
		})
	}
	return details
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return "Value is too short"
	case "max":
		return "Value is too long"
	case "gte":
		return "Value must be greater than or equal to " + fe.Param()
	default:
		return "Invalid value"
	}
}

// respondValidationErrors writes a 400 with per-field detail.
func (s *Server) respondValidationErrors(w http.ResponseWriter, details []ValidationError) {
	s.respondJSON(w, http.StatusBadRequest, map[string]any{
		"error":   "validation failed",
		"details": details,
	})
}
