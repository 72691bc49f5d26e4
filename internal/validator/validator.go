// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"civicpulse/internal/lifecycle"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("user_role", validateRole)
		_ = v.RegisterValidation("grievance_status", validateStatus)
		_ = v.RegisterValidation("priority", validatePriority)
		_ = v.RegisterValidation("category", validateCategory)
	}
}

func validateRole(fl validator.FieldLevel) bool {
	return lifecycle.Role(fl.Field().String()).Valid()
}

func validateStatus(fl validator.FieldLevel) bool {
	return lifecycle.Status(fl.Field().String()).Valid()
}

func validatePriority(fl validator.FieldLevel) bool {
	return lifecycle.Priority(fl.Field().String()).Valid()
}

// validateCategory accepts only the exact names of the fixed category list.
func validateCategory(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, c := range lifecycle.Categories {
		if c == value {
			return true
		}
	}
	return false
}
