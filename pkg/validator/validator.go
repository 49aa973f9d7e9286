package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Violation is one failed rule, keyed by the payload field name.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Violations collects every failed rule of a payload in evaluation order.
type Violations []Violation

func (v *Violations) Add(field, message string) {
	*v = append(*v, Violation{Field: field, Message: message})
}

// Has reports whether field already failed a rule.
func (v Violations) Has(field string) bool {
	for _, violation := range v {
		if violation.Field == field {
			return true
		}
	}
	return false
}

var validate = validator.New()

// messageOverrides replaces the generic tag message for a field.
var messageOverrides = map[string]string{
	"repeatPassword.eqfield": "Passwords do not match.",
}

func init() {
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Register custom validation for strings that must hold something besides whitespace
	validate.RegisterValidation("required_trimmed", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() == reflect.Pointer {
			if field.IsNil() {
				return false
			}
			field = field.Elem()
		}
		if field.Kind() == reflect.String {
			return strings.TrimSpace(field.String()) != ""
		}
		return !field.IsZero()
	})

	validate.RegisterValidation("strong_password", func(fl validator.FieldLevel) bool {
		return StrongPassword(fl.Field().String())
	})

	validate.RegisterValidation("bcrypt_len", func(fl validator.FieldLevel) bool {
		return PasswordFits(fl.Field().String())
	})
}

// ValidateStruct runs the struct tag rules and returns every violation.
func ValidateStruct(data interface{}) Violations {
	var violations Violations
	err := validate.Struct(data)
	if err == nil {
		return violations
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		violations.Add("", err.Error())
		return violations
	}
	for _, fe := range verrs {
		violations.Add(fe.Field(), message(fe))
	}
	return violations
}

func message(fe validator.FieldError) string {
	if msg, ok := messageOverrides[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	name := Label(fe.Field())
	switch fe.Tag() {
	case "required", "required_trimmed":
		return RequiredMessage(fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address.", name)
	case "max":
		return fmt.Sprintf("%s may not be greater than %s characters.", name, fe.Param())
	case "bcrypt_len":
		return PasswordTooLongMessage(fe.Field())
	case "strong_password":
		return "Password must be at least 8 characters long and include an uppercase letter, a lowercase letter, a number and a symbol."
	default:
		return fmt.Sprintf("%s is invalid.", name)
	}
}

// RequiredMessage is the message used for a missing field.
func RequiredMessage(field string) string {
	return fmt.Sprintf("%s is required.", Label(field))
}

// TakenMessage is the message used when a unique field collides.
func TakenMessage(field string) string {
	return fmt.Sprintf("%s has already been taken.", Label(field))
}

// Label turns a payload field name into a readable one: "unit_id" -> "Unit", "repeatPassword" -> "Repeat password".
func Label(field string) string {
	var b strings.Builder
	for i, r := range field {
		switch {
		case r == '_':
			b.WriteRune(' ')
		case unicode.IsUpper(r) && i > 0:
			b.WriteRune(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	words := strings.Fields(b.String())
	if len(words) > 1 && words[len(words)-1] == "id" {
		words = words[:len(words)-1]
	}
	if len(words) == 0 {
		return field
	}
	out := []rune(strings.Join(words, " "))
	out[0] = unicode.ToUpper(out[0])
	return string(out)
}
