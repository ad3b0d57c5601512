package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"careconnect/pkg/logger"
	"careconnect/pkg/model"
)

var flagNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]{0,49}$`)

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

type UserValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewUserValidator(log *logger.Logger) *UserValidator {
	v := validator.New()

	if err := v.RegisterValidation("flag_map", ValidateFlagMap); err != nil {
		log.Fatal("Failed to register 'flag_map' validator", "error", err)
	}

	log.Info("User validator initialized successfully")

	return &UserValidator{
		validate: v,
		logger:   log,
	}
}

// ValidateFlagMap accepts maps of snake_case flag names to booleans, capped
// at 50 entries. Shared with the activity validator, which uses the same
// shape for requirements.
func ValidateFlagMap(fl validator.FieldLevel) bool {
	value := fl.Field()
	if value.IsNil() {
		return true
	}

	flags, ok := value.Interface().(map[string]bool)
	if !ok {
		return false
	}
	if len(flags) > 50 {
		return false
	}

	for name := range flags {
		if !flagNameRegex.MatchString(name) {
			return false
		}
	}
	return true
}

func (v *UserValidator) Validate(user *model.User) error {
	if err := v.validate.Struct(user); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if user.Role == model.RoleCaregiver && user.LinkedAccountID == "" {
		return ValidationErrors{
			ValidationError{
				Field:   "LinkedAccountID",
				Message: "caregivers must reference the account they manage",
			},
		}
	}

	return nil
}

func (v *UserValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
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
