package validator

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"tidybook/pkg/logger"
	"tidybook/pkg/model"
	"tidybook/pkg/validation"
)

type UserValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewUserValidator(log *logger.Logger) *UserValidator {
	v, err := validation.New()
	if err != nil {
		log.Fatal("Failed to initialize user validator", "error", err)
	}

	log.Info("User validator initialized successfully")

	return &UserValidator{
		validate: v,
		logger:   log,
	}
}

func (v *UserValidator) ValidateRegistration(reg *model.Registration) error {
	return v.translate(v.validate.Struct(reg))
}

func (v *UserValidator) ValidateCredentials(creds *model.Credentials) error {
	return v.translate(v.validate.Struct(creds))
}

func (v *UserValidator) ValidateProfileUpdate(update *model.ProfileUpdate) error {
	return v.translate(v.validate.Struct(update))
}

func (v *UserValidator) ValidateUser(user *model.User) error {
	return v.translate(v.validate.Struct(user))
}

func (v *UserValidator) translate(err error) error {
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return validation.Translate(validationErrs)
	}
	return err
}
