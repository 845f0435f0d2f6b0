// Package schema проверяет и нормализует JSON-ответы внешнего API бронирований.
//
// Декодирование никогда не прерывается из-за несовпадения формы: проблемы
// собираются в Result.Diagnostics, а вызывающий код сам решает, использовать ли
// значение.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/mmeshcher/booking-cms/internal/validation"
)

// ErrInvalidResponse возвращается из Unwrap в строгом режиме.
var ErrInvalidResponse = errors.New("invalid response")

// Result - явный результат проверки ответа.
type Result[T any] struct {
	// Value - значение, декодированное настолько, насколько это удалось.
	Value       T
	Raw         json.RawMessage
	Diagnostics []Diagnostic
}

// Valid сообщает, прошёл ли ответ проверку без замечаний.
func (r Result[T]) Valid() bool {
	return len(r.Diagnostics) == 0
}

// Or возвращает значение, если ответ корректен, иначе fallback.
func (r Result[T]) Or(fallback T) T {
	if r.Valid() {
		return r.Value
	}
	return fallback
}

// Unwrap возвращает значение. В строгом режиме некорректный ответ даёт ErrInvalidResponse.
func (r Result[T]) Unwrap(strict bool) (T, error) {
	if strict && !r.Valid() {
		return r.Value, fmt.Errorf("%w: %d issue(s), first at %q: %s",
			ErrInvalidResponse, len(r.Diagnostics), r.Diagnostics[0].Path, r.Diagnostics[0].Message)
	}
	return r.Value, nil
}

var responses = func() *validation.Validator {
	v := validation.New()
	v.RegisterPresence(Number{})
	return v
}()

// Decode декодирует raw в T, нормализует значения и собирает диагностики.
// При наличии замечаний пишет одну запись уровня error "[SchemaError] <context>".
func Decode[T any](raw []byte, context string, logger *zap.Logger) Result[T] {
	res := Result[T]{Raw: json.RawMessage(raw)}
	res.Diagnostics = collect(raw, &res.Value)

	if len(res.Diagnostics) > 0 && logger != nil {
		logger.Error("[SchemaError] "+context, zap.Array("issues", Diagnostics(res.Diagnostics)))
	}
	return res
}

// Check проверяет уже декодированное значение (например, повторно).
func Check[T any](v *T) []Diagnostic {
	var diags []Diagnostic
	walk(reflect.ValueOf(v).Elem(), nil, &diags)
	return append(diags, constraints(v)...)
}

func collect(raw []byte, dst any) []Diagnostic {
	var diags []Diagnostic

	if err := json.Unmarshal(raw, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		var syntaxErr *json.SyntaxError
		switch {
		case errors.As(err, &typeErr):
			expected := "unknown"
			if typeErr.Type != nil {
				expected = typeErr.Type.String()
			}
			diags = append(diags, Diagnostic{
				Path:     typeErr.Field,
				Message:  "Expected " + expected + ", received " + typeErr.Value,
				Expected: expected,
				Received: typeErr.Value,
				Code:     CodeInvalidType,
			})
		case errors.As(err, &syntaxErr):
			return []Diagnostic{{
				Message: fmt.Sprintf("malformed JSON at offset %d: %v", syntaxErr.Offset, err),
				Code:    CodeInvalidJSON,
			}}
		default:
			return []Diagnostic{{
				Message: err.Error(),
				Code:    CodeInvalidJSON,
			}}
		}
	}

	walk(reflect.ValueOf(dst).Elem(), nil, &diags)
	return append(diags, constraints(dst)...)
}

// constraints переводит нарушения тегов validate в диагностики.
func constraints(v any) []Diagnostic {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	err := responses.Struct(v)
	if err == nil {
		return nil
	}

	var verr *validation.Error
	if !errors.As(err, &verr) {
		return []Diagnostic{{Message: err.Error(), Code: CodeCustom}}
	}

	out := make([]Diagnostic, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		if f.Tag == "enum" {
			// перечисления уже проверены в walk
			continue
		}
		d := Diagnostic{
			Path:    f.Field,
			Message: f.Message,
			Code:    codeForTag(f.Tag),
		}
		switch f.Tag {
		case "required":
			d.Message = "Required"
			d.Received = "undefined"
		case "oneof":
			d.Received = fmt.Sprint(f.Value)
		}
		out = append(out, d)
	}
	return out
}

func codeForTag(tag string) Code {
	switch tag {
	case "required":
		return CodeInvalidType
	case "email", "datetime", "url":
		return CodeInvalidString
	case "min", "gte", "gt":
		return CodeTooSmall
	case "max", "lte", "lt":
		return CodeTooBig
	case "oneof", "enum":
		return CodeInvalidEnumValue
	default:
		return CodeCustom
	}
}
