package schema

import (
	"go.uber.org/zap/zapcore"
)

// Code классифицирует нарушение формы ответа.
type Code string

// Коды диагностик.
const (
	CodeInvalidType      Code = "invalid_type"
	CodeInvalidEnumValue Code = "invalid_enum_value"
	CodeTooSmall         Code = "too_small"
	CodeTooBig           Code = "too_big"
	CodeRequired         Code = "required"
	CodeInvalidString    Code = "invalid_string"
	CodeCustom           Code = "custom"
	CodeInvalidJSON      Code = "invalid_json"
)

// Diagnostic описывает одно нарушение формы ответа.
type Diagnostic struct {
	Path     string `json:"path"`
	Message  string `json:"message"`
	Expected string `json:"expected,omitempty"`
	Received string `json:"received,omitempty"`
	Code     Code   `json:"code"`
}

// MarshalLogObject позволяет логировать диагностику как объект zap.
func (d Diagnostic) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("path", d.Path)
	enc.AddString("message", d.Message)
	if d.Expected != "" {
		enc.AddString("expected", d.Expected)
	}
	if d.Received != "" {
		enc.AddString("received", d.Received)
	}
	enc.AddString("code", string(d.Code))
	return nil
}

// Diagnostics - список диагностик, пригодный для zap.Array.
type Diagnostics []Diagnostic

// MarshalLogArray реализует zapcore.ArrayMarshaler.
func (ds Diagnostics) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for _, d := range ds {
		if err := enc.AppendObject(d); err != nil {
			return err
		}
	}
	return nil
}

// Checker реализуют поля, которые сами фиксируют проблему при декодировании.
// Путь в возвращаемой диагностике заполняет обходчик.
type Checker interface {
	SchemaIssue() (Diagnostic, bool)
}

// Normalizer реализуют поля, которым нужно подставить значение по умолчанию
// после декодирования (например, если ключ отсутствовал).
type Normalizer interface {
	NormalizeSchema()
}

func issue(expected, received string) *Diagnostic {
	return &Diagnostic{
		Message:  "Expected " + expected + ", received " + received,
		Expected: expected,
		Received: received,
		Code:     CodeInvalidType,
	}
}

// kindOf возвращает JSON-тип значения по первому значимому байту.
func kindOf(data []byte) string {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case 'n':
			return "null"
		case 't', 'f':
			return "boolean"
		case '"':
			return "string"
		case '{':
			return "object"
		case '[':
			return "array"
		default:
			return "number"
		}
	}
	return "undefined"
}
