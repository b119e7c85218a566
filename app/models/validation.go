package models

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("password", validatePassword)
	_ = v.RegisterValidation("size", validateSize)
	return v
}

func validatePassword(fl validator.FieldLevel) bool {
	return utf8.RuneCountInString(fl.Field().String()) >= MinPasswordLength
}

// validateSize checks a rune count against an inclusive "min-max" parameter.
func validateSize(fl validator.FieldLevel) bool {
	lo, hi, err := parseSize(fl.Param())
	if err != nil {
		return false
	}
	n := utf8.RuneCountInString(fl.Field().String())
	return n >= lo && n <= hi
}

func parseSize(param string) (int, int, error) {
	loStr, hiStr, ok := strings.Cut(param, "-")
	if !ok {
		return 0, 0, fmt.Errorf("bad size parameter %q", param)
	}
	lo, err := strconv.Atoi(loStr)
	if err != nil {
		return 0, 0, fmt.Errorf("bad size minimum %q: %w", loStr, err)
	}
	hi, err := strconv.Atoi(hiStr)
	if err != nil {
		return 0, 0, fmt.Errorf("bad size maximum %q: %w", hiStr, err)
	}
	return lo, hi, nil
}

// ValidateStruct runs the tag rules on s. Rule violations come back as a
// validation AppError keyed by JSON field name, first violation per field.
func ValidateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		fields[fe.Field()] = violationMessage(fe)
	}
	return NewValidationError(fields)
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be null"
	case "size":
		lo, hi, err := parseSize(fe.Param())
		if err != nil {
			return "size is invalid"
		}
		return fmt.Sprintf("size must be between %d and %d", lo, hi)
	case "email":
		return "must be a well-formed email address"
	case "password":
		return "Password does not meet our requirements"
	case "gt":
		return "must be greater than " + fe.Param()
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}
