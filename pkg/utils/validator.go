package utils

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var (
	timeOfDayPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d(:[0-5]\d)?$`)
	decimalPattern   = regexp.MustCompile(`^-?\d+([.,]\d+)?$`)
)

func init() {
	validate = validator.New()

	// Report fields by their form name so messages match what the operator typed into.
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})

	err := validate.RegisterValidation("time_of_day", validateTimeOfDay)
	if err != nil {
		return
	}
	err = validate.RegisterValidation("decimal", validateDecimal)
	if err != nil {
		return
	}
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ValidationMessage renders validator errors as a short operator facing sentence.
func ValidationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "Dados inválidos"
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s é obrigatório", fe.Field()))
		default:
			parts = append(parts, fmt.Sprintf("%s inválido (%s)", fe.Field(), fe.Tag()))
		}
	}
	return "Campos inválidos: " + strings.Join(parts, ", ")
}

func validateTimeOfDay(fl validator.FieldLevel) bool {
	return timeOfDayPattern.MatchString(fl.Field().String())
}

func validateDecimal(fl validator.FieldLevel) bool {
	return decimalPattern.MatchString(strings.TrimSpace(fl.Field().String()))
}
