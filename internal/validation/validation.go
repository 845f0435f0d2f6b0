// Package validation проверяет структуры запросов и ответов по тегам validate.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidInput позволяет сопоставить любую ошибку валидации через errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// FieldError описывает нарушение правила для одного поля.
type FieldError struct {
	Field   string
	Tag     string
	Param   string
	Value   any
	Message string
}

// Error содержит все нарушения, найденные при проверке структуры.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is сопоставляет ошибку с ErrInvalidInput.
func (e *Error) Is(target error) bool {
	return target == ErrInvalidInput
}

// Enum реализуют строковые перечисления с фиксированным набором значений.
type Enum interface {
	Valid() bool
}

// Presence реализуют типы, которые различают отсутствующее поле и нулевое значение.
type Presence interface {
	Present() bool
}

// Validator оборачивает validator.Validate с правилами проекта.
type Validator struct {
	v *validator.Validate
}

// New создаёт валидатор с именами полей из json-тегов и правилом enum.
func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" && fld.Anonymous {
			return embedded
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() == reflect.String && field.Len() == 0 {
			return false
		}
		e, ok := field.Interface().(Enum)
		if !ok {
			return false
		}
		return e.Valid()
	})

	return &Validator{v: v}
}

// RegisterPresence подключает типы, реализующие Presence: для правила required
// такое поле считается заполненным, если ключ присутствовал во входных данных.
func (v *Validator) RegisterPresence(types ...any) {
	v.v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		p, ok := field.Interface().(Presence)
		if !ok || !p.Present() {
			return nil
		}
		return true
	}, types...)
}

// Struct проверяет структуру и возвращает *Error при нарушениях.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}

	out := &Error{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fieldPath(fe.Namespace()),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Value:   fe.Value(),
			Message: message(fe),
		})
	}
	return out
}

// embedded помечает встроенные структуры, чтобы убрать их из пути поля.
const embedded = "^"

var std = New()

// Struct проверяет структуру валидатором по умолчанию.
func Struct(s any) error {
	return std.Struct(s)
}

// fieldPath превращает "Filter.filters.status[1]" в "filters.status.1".
func fieldPath(namespace string) string {
	namespace = strings.ReplaceAll(namespace, "[", ".")
	namespace = strings.ReplaceAll(namespace, "]", "")

	parts := strings.Split(namespace, ".")
	out := parts[:0]
	for i, p := range parts {
		if i == 0 || p == embedded {
			continue
		}
		out = append(out, p)
	}
	return strings.Join(out, ".")
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of [" + fe.Param() + "]"
	case "enum":
		return fmt.Sprintf("invalid enum value %v", fe.Value())
	case "email":
		return "must be a valid email"
	case "datetime":
		return "must be a datetime in layout " + fe.Param()
	case "required_if", "required_unless":
		return "is required when " + fe.Param()
	default:
		return "failed on the " + fe.Tag() + " rule"
	}
}
