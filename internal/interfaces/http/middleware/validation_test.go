package middleware

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoiceme/backend/internal/interfaces/http/dto"
)

type validationFixture struct {
	Name  string `json:"name" validate:"required,min=2"`
	Email string `json:"email" validate:"required,email"`
}

func TestFormatValidationErrors(t *testing.T) {
	v := validator.New()

	err := v.Struct(validationFixture{Name: "x", Email: "not-an-email"})
	require.Error(t, err)

	resp := FormatValidationErrors(err, "req-9")

	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-9", resp.Error.RequestID)
	assert.Len(t, resp.Error.Details, 2)
}

func TestFormatValidationErrors_NonValidationError(t *testing.T) {
	resp := FormatValidationErrors(assert.AnError, "req-10")

	assert.False(t, resp.Success)
	assert.Empty(t, resp.Error.Details)
}

func TestGetValidationMessage(t *testing.T) {
	v := validator.New()

	err := v.Struct(validationFixture{})
	require.Error(t, err)

	for _, fe := range err.(validator.ValidationErrors) {
		assert.Equal(t, "This field is required", getValidationMessage(fe))
	}
}
