package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// AppError is a typed error carrying the HTTP status it should surface as.
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewValidationError(message string) *AppError {
	return &AppError{Status: fiber.StatusBadRequest, Code: "VALIDATION_FAILED", Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Status: fiber.StatusNotFound, Code: "NOT_FOUND", Message: message}
}

// NewCollaboratorError marks an upstream dependency fault. The agent surfaces
// these as 502 so infrastructure failures are never mistaken for refusals.
func NewCollaboratorError(message string) *AppError {
	return &AppError{Status: fiber.StatusBadGateway, Code: "COLLABORATOR_UNAVAILABLE", Message: message}
}

// ErrorHandlerMiddleware converts typed errors bubbling out of handlers into
// the JSON envelope. Unknown errors become opaque 500s.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *AppError
		if errors.As(err, &appErr) {
			return ctx.Status(appErr.Status).JSON(fiber.Map{
				"message": appErr.Message,
				"code":    appErr.Code,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{
				"message": fiberErr.Message,
				"code":    "HTTP_ERROR",
			})
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
			"code":    "INTERNAL_ERROR",
		})
	}
}
