package serverutils

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name  string `validate:"required,max=8"`
	Count int    `validate:"min=1"`
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(sampleRequest{Name: "ok", Count: 2}))

	err := ValidateRequest(sampleRequest{Name: "", Count: 0})
	require.Error(t, err)

	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, fiber.StatusBadRequest, appErr.Status)
	assert.Contains(t, appErr.Message, "Name")
	assert.Contains(t, appErr.Message, "Count")
}

func TestAppErrorConstructors(t *testing.T) {
	assert.Equal(t, fiber.StatusBadRequest, NewValidationError("x").Status)
	assert.Equal(t, fiber.StatusNotFound, NewNotFoundError("x").Status)
	assert.Equal(t, fiber.StatusBadGateway, NewCollaboratorError("x").Status)
	assert.Equal(t, "COLLABORATOR_UNAVAILABLE", NewCollaboratorError("x").Code)
}
