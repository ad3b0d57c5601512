package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	uservalidator "careconnect/internal/users/validator"
	"careconnect/pkg/logger"
	"careconnect/pkg/model"
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

type ActivityValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewActivityValidator(log *logger.Logger) *ActivityValidator {
	v := validator.New()

	if err := v.RegisterValidation("flag_map", uservalidator.ValidateFlagMap); err != nil {
		log.Fatal("Failed to register 'flag_map' validator", "error", err)
	}

	log.Info("Activity validator initialized successfully")

	return &ActivityValidator{
		validate: v,
		logger:   log,
	}
}

func (v *ActivityValidator) Validate(activity *model.Activity) error {
	if err := v.validate.Struct(activity); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if activity.EndTime != nil && !activity.EndTime.After(activity.StartTime) {
		return ValidationErrors{
			ValidationError{
				Field:   "EndTime",
				Message: "end_time must be after start_time",
			},
		}
	}

	if activity.BaseCapacity == 0 && activity.VolunteerSlots == 0 {
		return ValidationErrors{
			ValidationError{
				Field:   "BaseCapacity",
				Message: "activity must have base capacity or volunteer slots",
			},
		}
	}

	return nil
}

func (v *ActivityValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
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
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "flag_map":
			message = fmt.Sprintf("%s must map snake_case flag names to booleans (max 50 entries)", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
