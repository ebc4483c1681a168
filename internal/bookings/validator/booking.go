package validator

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"tidybook/pkg/logger"
	"tidybook/pkg/model"
	"tidybook/pkg/validation"
)

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	v, err := validation.New()
	if err != nil {
		log.Fatal("Failed to initialize booking validator", "error", err)
	}

	log.Info("Booking validator initialized successfully")

	return &BookingValidator{
		validate: v,
		logger:   log,
	}
}

func (v *BookingValidator) ValidateRequest(req *model.BookingRequest) error {
	return v.translate(v.validate.Struct(req))
}

// ValidateStatusUpdate checks the target status and reason length. A reason
// on a non-cancel transition is accepted and ignored downstream.
func (v *BookingValidator) ValidateStatusUpdate(update *model.StatusUpdate) error {
	return v.translate(v.validate.Struct(update))
}

func (v *BookingValidator) ValidateCancelRequest(req *model.CancelRequest) error {
	return v.translate(v.validate.Struct(req))
}

func (v *BookingValidator) translate(err error) error {
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return validation.Translate(validationErrs)
	}
	return err
}
