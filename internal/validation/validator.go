// Package validation wraps a shared go-playground validator instance.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	app_errors "ollama-assistant/internal/errors"

	"github.com/go-playground/validator/v10"
)

var (
	// validate holds the single instance of the validator; it caches struct
	// metadata, so building one per call would throw that cache away.
	validate *validator.Validate
	once     sync.Once
)

func getInstance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Struct checks payload against the rules in its `validate` tags. A failure
// is returned as a wrapped app_errors.ErrValidation listing every field that
// failed, e.g. "Field 'Model' failed on the 'required' tag".
func Struct(payload interface{}) error {
	err := getInstance().Struct(payload)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: an unexpected error occurred during validation: %s", app_errors.ErrValidation, err.Error())
	}

	var errorMessages []string
	for _, fieldErr := range validationErrors {
		errorMessages = append(errorMessages, fmt.Sprintf("Field '%s' failed on the '%s' tag", fieldErr.Field(), fieldErr.Tag()))
	}
	return fmt.Errorf("%w: %s", app_errors.ErrValidation, strings.Join(errorMessages, "; "))
}
