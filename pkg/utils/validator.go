package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	validate *validator.Validate
}

// NewValidator returns a validator whose plan_id tag accepts exactly planIDs.
func NewValidator(planIDs ...string) *Validator {
	v := validator.New()

	plans := make(map[string]struct{}, len(planIDs))
	for _, id := range planIDs {
		plans[id] = struct{}{}
	}

	// Custom validations
	if err := v.RegisterValidation("plan_id", func(fl validator.FieldLevel) bool {
		_, ok := plans[fl.Field().String()]
		return ok
	}); err != nil {
		panic(fmt.Sprintf("register plan_id validation: %v", err))
	}

	return &Validator{
		validate: v,
	}
}

func (v *Validator) Struct(s interface{}) error {
	return v.validate.Struct(s)
}

// Message turns a validation error into one line for a toast.
func (v *Validator) Message(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return strings.Join(msgs, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "plan_id":
		return fmt.Sprintf("%q is not a known plan", fe.Value())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
