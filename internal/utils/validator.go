package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	. "carelog/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// ErrInvalidArgument marks failures caused by caller input.
var ErrInvalidArgument = errors.New("invalid argument")

const (
	MaxIDLength      = 50
	MinMood          = 0
	MaxMood          = 4
	DefaultDaysLimit = 30
	MaxDaysLimit     = 365
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// report fields by their json names
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	rules := map[string]validator.Func{
		"notblank": validators.NotBlank,
		"hhmm": func(fl validator.FieldLevel) bool {
			return timePattern.MatchString(fl.Field().String())
		},
		"isodate": func(fl validator.FieldLevel) bool {
			_, err := ParseDate(fl.Field().String())
			return err == nil
		},
	}
	for tag, rule := range rules {
		if err := v.RegisterValidation(tag, rule); err != nil {
			panic(fmt.Sprintf("register %s validation: %v", tag, err))
		}
	}

	return v
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// validationError turns the first failed rule into an ErrInvalidArgument.
// field overrides the reported name for single value checks.
func validationError(err error, field string) error {
	var failures validator.ValidationErrors
	if !errors.As(err, &failures) || len(failures) == 0 {
		return invalid("%v", err)
	}

	failure := failures[0]
	name := failure.Field()
	if field != "" {
		name = field
	}

	switch failure.Tag() {
	case "notblank", "required":
		return invalid("%s is required", name)
	case "max":
		return invalid("%s must be at most %s characters", name, failure.Param())
	case "gte":
		return invalid("%s must be at least %s", name, failure.Param())
	case "lte":
		return invalid("%s must be at most %s", name, failure.Param())
	case "ltfield":
		return invalid("%s must be less than %s", name, jsonName(failure.Param()))
	case "ltefield":
		return invalid("%s must not be above %s", name, jsonName(failure.Param()))
	case "gtefield":
		return invalid("%s must not be below %s", name, jsonName(failure.Param()))
	case "hhmm":
		return invalid("%s %q must be HH:MM", name, failure.Value())
	case "isodate":
		return invalid("%s %q must be a YYYY-MM-DD calendar date", name, failure.Value())
	default:
		return invalid("%s failed %s", name, failure.Tag())
	}
}

// jsonName maps a Go field name from a cross-field rule to its json form.
func jsonName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

func validateStruct(input any) error {
	if err := validate.Struct(input); err != nil {
		return validationError(err, "")
	}
	return nil
}

func validateVar(field string, value any, tag string) error {
	if err := validate.Var(value, tag); err != nil {
		return validationError(err, field)
	}
	return nil
}

func ValidateID(field, id string) error {
	return validateVar(field, id, fmt.Sprintf("notblank,max=%d", MaxIDLength))
}

// ValidateLength counts runes, not bytes.
func ValidateLength(field, value string, max int) error {
	return validateVar(field, value, fmt.Sprintf("max=%d", max))
}

func ValidateMetricInput(in MetricInput) error {
	return validateStruct(in)
}

func ValidateEventTypeInput(in EventTypeInput) error {
	return validateStruct(in)
}

func ValidateDayPatch(patch DayPatch) error {
	if patch.Mood.Set && patch.Mood.Value != nil {
		if err := validateVar("mood", *patch.Mood.Value, fmt.Sprintf("gte=%d,lte=%d", MinMood, MaxMood)); err != nil {
			return err
		}
	}

	if err := validateStruct(patch); err != nil {
		return err
	}

	if patch.AdmissionDate.Set && patch.AdmissionDate.Value != nil {
		return validateVar("admissionDate", *patch.AdmissionDate.Value, "isodate")
	}
	return nil
}

func ValidateEventInput(in EventInput) error {
	return validateStruct(in)
}

func ValidateQuestionInput(in QuestionInput) error {
	return validateStruct(in)
}

func ValidateQuestionAnsweredInput(in QuestionAnsweredInput) error {
	return validateStruct(in)
}

func ValidateContactInput(in ContactInput) error {
	return validateStruct(in)
}

// DaysLimit resolves the page size for ListDaysWithData. Zero means default.
func DaysLimit(limit int) (int, error) {
	if limit == 0 {
		return DefaultDaysLimit, nil
	}
	if err := validateVar("limit", limit, fmt.Sprintf("gte=1,lte=%d", MaxDaysLimit)); err != nil {
		return 0, err
	}
	return limit, nil
}

// FirstError returns the first non-nil error in errs.
func FirstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
