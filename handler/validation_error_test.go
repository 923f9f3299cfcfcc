package handler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/fieldguard/handler"
	"github.com/dmitrymomot/fieldguard/pkg/validator"
)

func TestValidationError(t *testing.T) {
	t.Parallel()

	t.Run("empty error", func(t *testing.T) {
		t.Parallel()
		err := handler.NewValidationError()
		assert.Equal(t, "Validation failed", err.Error())
		assert.True(t, err.IsEmpty())
	})

	t.Run("single field", func(t *testing.T) {
		t.Parallel()
		err := handler.NewValidationError()
		err.Add("reference", "contains characters not allowed by References")

		assert.Equal(t, "validation error: reference: contains characters not allowed by References", err.Error())
		assert.True(t, err.Has("reference"))
		assert.False(t, err.Has("invoice"))
		assert.Equal(t, "contains characters not allowed by References", err.Get("reference"))
	})

	t.Run("from validator errors", func(t *testing.T) {
		t.Parallel()
		verrs := validator.ValidationErrors{
			{Field: "invoice", Message: "first"},
			{Field: "invoice", Message: "second"},
			{Field: "reference", Message: "third"},
		}

		err := handler.ValidationErrorFrom(verrs)
		assert.Equal(t, []string{"first", "second"}, err["invoice"])
		assert.Equal(t, "third", err.Get("reference"))
	})
}
