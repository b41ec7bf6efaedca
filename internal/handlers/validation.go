package handlers

import (
	"github.com/SscSPs/blood_desk_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// registerValidators adds the custom tags used by request DTOs to gin's validator.
func registerValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("bloodgroup", validateBloodGroup)
}

func validateBloodGroup(fl validator.FieldLevel) bool {
	_, err := domain.ParseBloodGroup(fl.Field().String())
	return err == nil
}
