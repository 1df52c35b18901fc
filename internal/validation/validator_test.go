package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app_errors "ollama-assistant/internal/errors"
)

type sample struct {
	Name string `validate:"required"`
	URL  string `validate:"required,url"`
}

func TestStruct(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, Struct(&sample{Name: "a", URL: "http://localhost:11434"}))
	})

	t.Run("Reports every failing field", func(t *testing.T) {
		err := Struct(&sample{URL: "not a url"})
		require.Error(t, err)
		assert.ErrorIs(t, err, app_errors.ErrValidation)
		assert.Contains(t, err.Error(), "Field 'Name' failed on the 'required' tag")
		assert.Contains(t, err.Error(), "Field 'URL' failed on the 'url' tag")
	})

	t.Run("Non-struct payload", func(t *testing.T) {
		err := Struct("just a string")
		require.Error(t, err)
		assert.ErrorIs(t, err, app_errors.ErrValidation)
	})
}
