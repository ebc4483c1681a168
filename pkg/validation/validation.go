package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	zipCodeRegex         = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	appointmentTimeRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// New returns a validator instance with the custom tags the request models
// use registered.
func New() (*validator.Validate, error) {
	v := validator.New()

	if err := v.RegisterValidation("zipcode", validateZipCode); err != nil {
		return nil, fmt.Errorf("failed to register 'zipcode' validator: %w", err)
	}
	if err := v.RegisterValidation("password_strength", validatePasswordStrength); err != nil {
		return nil, fmt.Errorf("failed to register 'password_strength' validator: %w", err)
	}
	if err := v.RegisterValidation("appointment_time", validateAppointmentTime); err != nil {
		return nil, fmt.Errorf("failed to register 'appointment_time' validator: %w", err)
	}

	return v, nil
}

func validateZipCode(fl validator.FieldLevel) bool {
	return zipCodeRegex.MatchString(fl.Field().String())
}

// Passwords must carry at least one upper case letter, one lower case letter
// and one digit. Length is enforced separately by the min tag.
func validatePasswordStrength(fl validator.FieldLevel) bool {
	var hasUpper, hasLower, hasDigit bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit
}

func validateAppointmentTime(fl validator.FieldLevel) bool {
	return appointmentTimeRegex.MatchString(fl.Field().String())
}

// Translate converts the library's error list into the API's field/message
// shape.
func Translate(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "len":
			message = fmt.Sprintf("%s must be exactly %s characters", err.Field(), err.Param())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "e164":
			message = fmt.Sprintf("%s must be in E.164 format (e.g., +14155552671)", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "gte":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "url":
			message = fmt.Sprintf("%s must be a valid URL", err.Field())
		case "zipcode":
			message = fmt.Sprintf("%s must be a valid ZIP code (12345 or 12345-6789)", err.Field())
		case "password_strength":
			message = fmt.Sprintf("%s must contain at least one uppercase letter, one lowercase letter and one number", err.Field())
		case "appointment_time":
			message = fmt.Sprintf("%s must be in HH:MM 24-hour format", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
