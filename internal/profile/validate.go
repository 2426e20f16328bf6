package profile

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports fields by their JSON name so errors match the wire format.
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

// InvalidProfileError reports a profile field that failed validation.
type InvalidProfileError struct {
	Field string
	Value interface{}
	Rule  string
}

func (e *InvalidProfileError) Error() string {
	return fmt.Sprintf("invalid profile: %s=%v violates %s", e.Field, e.Value, e.Rule)
}

// Validate checks the profile's enumerations, that symptom and trigger labels
// are not repeated (see Normalize) and that PressureSensitivity is within
// [MinSensitivity, MaxSensitivity]. Out-of-range values are rejected, never
// clamped.
func Validate(p UserProfile) error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		return &InvalidProfileError{
			Field: fe.Field(),
			Value: fe.Value(),
			Rule:  rule,
		}
	}
	return fmt.Errorf("validate profile: %w", err)
}
