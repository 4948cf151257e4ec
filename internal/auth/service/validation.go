package service

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func validateInput(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return mapFieldError(verrs[0])
	}
	return ErrValidationFailed
}

func mapFieldError(fe validator.FieldError) error {
	switch fe.StructField() {
	case "FullName":
		return ErrFullNameRequired
	case "Email":
		if fe.Tag() == "email" {
			return ErrEmailInvalid
		}
		return ErrEmailRequired
	case "Password":
		return ErrPasswordRequired
	}
	return ErrValidationFailed
}
