package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"issue_tracker/internal/model"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	// bcrypt учитывает только первые 72 байта пароля, max считает руны
	_ = v.RegisterValidation("maxbytes", maxBytes)
	return v
}

func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

// Struct - проверяет значение по тегам validate.
// Ошибки полей собираются в *model.ValidationError.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate: %w", err)
	}

	verr := &model.ValidationError{Fields: make(map[string][]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		verr.Fields[fe.Field()] = append(verr.Fields[fe.Field()], message(fe))
	}

	return verr
}

func message(fe validator.FieldError) string {
	label := humanize(fe.Field())

	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be less than %s characters", label, fe.Param())
	case "maxbytes":
		return fmt.Sprintf("%s must be at most %s bytes long", label, fe.Param())
	case "eqfield":
		return "Passwords don't match"
	case "oneof":
		return "Please select a valid " + strings.ToLower(label)
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

// humanize - "confirmPassword" -> "Confirm password"
func humanize(field string) string {
	var b strings.Builder
	for i, r := range field {
		switch {
		case i == 0:
			b.WriteString(strings.ToUpper(string(r)))
		case r >= 'A' && r <= 'Z':
			b.WriteByte(' ')
			b.WriteString(strings.ToLower(string(r)))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
