package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation and folds failures into a
// single 400-level AppError.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return NewValidationError(err.Error())
	}

	parts := make([]string, len(validationErrors))
	for i, fieldErr := range validationErrors {
		parts[i] = fmt.Sprintf("field '%s' failed on '%s'", fieldErr.Field(), fieldErr.Tag())
	}
	return NewValidationError(strings.Join(parts, "; "))
}
