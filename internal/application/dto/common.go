package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jhoicas/everest-site/internal/domain"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Fields  []FieldDetail `json:"fields,omitempty"`
}

// FieldDetail error de validación de un campo.
type FieldDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// nombres de campo según la etiqueta json (o form si no hay json)
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidationError entrada inválida con el detalle por campo. errors.Is(err, domain.ErrInvalidInput) es true.
type ValidationError struct {
	Fields []FieldDetail
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return fmt.Sprintf("%s: %s", domain.ErrInvalidInput, strings.Join(names, ", "))
}

func (e *ValidationError) Unwrap() error { return domain.ErrInvalidInput }

// Validate valida un DTO con sus etiquetas `validate`.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	out := &ValidationError{Fields: make([]FieldDetail, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldDetail{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return out
}

// FieldsOf extrae el detalle por campo de un error de Validate, si lo tiene.
func FieldsOf(err error) []FieldDetail {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "hexcolor":
		return "Must be a hex color like #003366"
	case "oneof":
		return "Must be one of: " + fe.Param()
	case "min":
		return "Must be at least " + fe.Param() + " characters"
	case "max":
		return "Must be at most " + fe.Param() + " characters"
	default:
		return "Invalid value"
	}
}
