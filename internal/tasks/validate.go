package tasks

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dori/kairo/internal/model"
	"github.com/go-playground/validator/v10"
)

// validate is shared; validator caches struct metadata per type
var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("kind", func(fl validator.FieldLevel) bool {
		return model.Kind(fl.Field().String()).Valid()
	})
	_ = validate.RegisterValidation("status", func(fl validator.FieldLevel) bool {
		s := model.Status(fl.Field().String())
		for _, known := range model.Statuses() {
			if s == known {
				return true
			}
		}
		return false
	})
	_ = validate.RegisterValidation("priority", func(fl validator.FieldLevel) bool {
		return model.Priority(fl.Field().String()).Rank() > 0
	})
}

// ValidationError lists the fields that failed validation, in user-facing form
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

// fieldLabels maps struct fields to the names shown to users
var fieldLabels = map[string]string{
	"Kind":        "task type",
	"ClientName":  "client name",
	"ProjectName": "project name",
	"Status":      "status",
	"Priority":    "priority",
}

func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		label, ok := fieldLabels[fe.Field()]
		if !ok {
			label = strings.ToLower(fe.Field())
		}
		switch fe.Tag() {
		case "required", "required_if":
			verr.Problems = append(verr.Problems, label+" is required")
		default:
			verr.Problems = append(verr.Problems, fmt.Sprintf("%s %q is not valid", label, fe.Value()))
		}
	}
	return verr
}
