// Package validator registers custom validation functions with Gin's
// binding engine.
package validator

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("dateonly", validateDateOnly)
	}
}

// validateDateOnly accepts dates in YYYY-MM-DD form. The web tier uses it to
// reject malformed expense dates before they reach the API.
func validateDateOnly(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}
