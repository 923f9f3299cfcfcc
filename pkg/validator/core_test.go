package validator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fieldguard/pkg/validator"
)

func TestValidationErrors_Error(t *testing.T) {
	t.Run("no rejections", func(t *testing.T) {
		var errs validator.ValidationErrors
		assert.Equal(t, "validation failed", errs.Error())
	})

	t.Run("lists rejections in order", func(t *testing.T) {
		var errs validator.ValidationErrors
		errs.Add(validator.ValidationError{Field: "invoice", Message: "bad char"})
		errs.Add(validator.ValidationError{Field: "reference", Message: "bad char"})

		assert.Equal(t, "validation failed: invoice: bad char; reference: bad char", errs.Error())
		assert.ErrorIs(t, errs, validator.ErrValidationFailed)
	})
}

func TestValidationErrors_Fields(t *testing.T) {
	var errs validator.ValidationErrors
	errs.Add(validator.ValidationError{Field: "reference", Message: "first"})
	errs.Add(validator.ValidationError{Field: "invoice", Message: "only"})
	errs.Add(validator.ValidationError{Field: "reference", Message: "second"})

	assert.True(t, errs.Has("reference"))
	assert.False(t, errs.Has("amount"))
	assert.Equal(t, []string{"reference", "invoice"}, errs.Fields())
	assert.False(t, errs.IsEmpty())

	var none validator.ValidationErrors
	assert.True(t, none.IsEmpty())
	assert.Empty(t, none.Fields())
}

func TestCollect(t *testing.T) {
	pass := validator.Rule{Check: func() bool { return true }, Error: validator.ValidationError{Field: "a"}}
	fail := validator.Rule{Check: func() bool { return false }, Error: validator.ValidationError{Field: "b", Message: "nope"}}

	t.Run("nil when all rules hold", func(t *testing.T) {
		assert.Nil(t, validator.Collect(pass, pass))
		assert.Nil(t, validator.Collect())
		assert.NoError(t, validator.Apply(pass))
		assert.NoError(t, validator.Apply())
	})

	t.Run("keeps failed rules only", func(t *testing.T) {
		verrs := validator.Collect(pass, fail, fail)
		require.Len(t, verrs, 2)
		assert.Equal(t, "b", verrs[0].Field)
		assert.Equal(t, []string{"b"}, verrs.Fields())
	})

	t.Run("apply returns the same rejections as an error", func(t *testing.T) {
		err := validator.Apply(pass, fail)
		require.Error(t, err)
		assert.ErrorIs(t, err, validator.ErrValidationFailed)
		assert.Equal(t, validator.Collect(pass, fail), validator.ExtractValidationErrors(err))
	})
}

func TestExtractValidationErrors(t *testing.T) {
	t.Run("unwraps wrapped errors", func(t *testing.T) {
		inner := validator.ValidationErrors{{Field: "invoice", Message: "bad"}}
		wrapped := fmt.Errorf("saving form: %w", inner)

		verrs := validator.ExtractValidationErrors(wrapped)
		require.NotNil(t, verrs)
		assert.True(t, verrs.Has("invoice"))
	})

	t.Run("nil for other errors", func(t *testing.T) {
		assert.Nil(t, validator.ExtractValidationErrors(errors.New("boom")))
		assert.Nil(t, validator.ExtractValidationErrors(nil))
	})
}
