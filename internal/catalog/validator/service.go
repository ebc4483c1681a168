package validator

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"tidybook/pkg/logger"
	"tidybook/pkg/model"
	"tidybook/pkg/validation"
)

type ServiceValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewServiceValidator(log *logger.Logger) *ServiceValidator {
	v, err := validation.New()
	if err != nil {
		log.Fatal("Failed to initialize service validator", "error", err)
	}

	log.Info("Service validator initialized successfully")

	return &ServiceValidator{
		validate: v,
		logger:   log,
	}
}

func (v *ServiceValidator) Validate(svc *model.Service) error {
	return v.translate(v.validate.Struct(svc))
}

func (v *ServiceValidator) ValidateUpdate(update *model.ServiceUpdate) error {
	return v.translate(v.validate.Struct(update))
}

func (v *ServiceValidator) translate(err error) error {
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return validation.Translate(validationErrs)
	}
	return err
}
