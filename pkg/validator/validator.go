package validator

import (
	"github.com/go-playground/validator/v10"

	"github.com/promptops/prompt-evolution/pkg/config"
)

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance
func New() *CustomValidator {
	v := validator.New()
	// transcription language must be one of the fixed supported codes
	_ = v.RegisterValidation("transcription_language", func(fl validator.FieldLevel) bool {
		return config.IsLanguageSupported(fl.Field().String())
	})
	return &CustomValidator{v: v}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}
