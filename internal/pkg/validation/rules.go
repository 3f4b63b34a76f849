package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// UsernamePattern allows letters, digits and @/./+/-/_ only.
var UsernamePattern = `^[\w.@+-]+$`

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Username *regexp.Regexp
}{
	Username: regexp.MustCompile(UsernamePattern),
}

// New returns a validator with the custom rules installed.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration can only fail on an empty tag name.
	_ = Register(v)
	return v
}

// Register installs the custom rules on v and reports field names by their JSON key.
// It is applied both to the service validator and to gin's binding engine.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(fieldName)
	if err := v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return CompiledPatterns.Username.MatchString(fl.Field().String())
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation("singleline", func(fl validator.FieldLevel) bool {
		return IsSingleLine(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("eventtime", func(fl validator.FieldLevel) bool {
		return IsClock(fl.Field().String())
	})
}

// IsSingleLine rejects line breaks and other control characters.
func IsSingleLine(s string) bool {
	return strings.IndexFunc(s, unicode.IsControl) < 0
}

// IsClock accepts a wall-clock time as HH:MM or HH:MM:SS.
func IsClock(s string) bool {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// FieldErrors flattens validator errors into a field -> message map.
// It returns nil when err does not come from the validator.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = Message(fe)
	}
	return out
}

// Message creates a human-readable validation error message
func Message(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "required_with":
		return "This field is required."
	case "min":
		if e.Kind() == reflect.Slice {
			return "Ensure this list has at least " + e.Param() + " item(s)."
		}
		if e.Kind() == reflect.String {
			return "Ensure this field has at least " + e.Param() + " characters."
		}
		return "Ensure this value is greater than or equal to " + e.Param() + "."
	case "max":
		if e.Kind() == reflect.String {
			return "Ensure this field has no more than " + e.Param() + " characters."
		}
		return "Ensure this value is less than or equal to " + e.Param() + "."
	case "gte":
		return "Ensure this value is greater than or equal to " + e.Param() + "."
	case "email":
		return "Enter a valid email address."
	case "url":
		return "Enter a valid URL."
	case "oneof":
		return "Must be one of: " + e.Param() + "."
	case "datetime":
		return "Use the format " + e.Param() + "."
	case "eventtime":
		return "Time has wrong format. Use one of these formats instead: hh:mm[:ss]."
	case "singleline":
		return "This field may not contain line breaks or control characters."
	case "username":
		return "Enter a valid username. It may contain only letters, numbers, and @/./+/-/_ characters."
	default:
		return "Invalid value (" + e.Tag() + ")."
	}
}
