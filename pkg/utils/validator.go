package utils

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	mobileRegex = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	validate    = newValidator()
)

// newValidator reports fields by their JSON names
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateMobile validates a phone number: optional +, then 10 to 15 digits
func ValidateMobile(mobile string) error {
	m := strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(mobile))
	if !mobileRegex.MatchString(m) {
		return errors.New("mobile must be 10 to 15 digits, optionally starting with +")
	}
	return nil
}

// ValidateName validates a display name
func ValidateName(name string) error {
	n := strings.TrimSpace(name)
	if len(n) < 2 || len(n) > 80 {
		return errors.New("name must be between 2 and 80 characters")
	}
	return nil
}

// ValidateStruct checks `validate` tags and returns field -> failed rule,
// or nil when v is valid
func ValidateStruct(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return fields
}
