// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var periodKeyRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("period_key", validatePeriodKey)
		_ = v.RegisterValidation("item_type", validateItemType)
		_ = v.RegisterValidation("item_owner", validateItemOwner)
		_ = v.RegisterValidation("calculation_type", validateCalculationType)
	}
}

func validatePeriodKey(fl validator.FieldLevel) bool {
	return periodKeyRegex.MatchString(fl.Field().String())
}

func validateItemType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "expense", "income":
		return true
	}
	return false
}

func validateItemOwner(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "shared", "alex", "sam":
		return true
	}
	return false
}

func validateCalculationType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "fixed", "weekly_count":
		return true
	}
	return false
}
