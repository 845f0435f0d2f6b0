package schema

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

var null = []byte("null")

func isNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), null)
}

// parseNumeric разбирает строку так же, как это делает внешний API-клиент:
// пробелы по краям игнорируются, пустая строка даёт 0.
func parseNumeric(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Number принимает число или числовую строку. Нечисловая строка и null дают 0.
type Number struct {
	Value float64

	set   bool
	issue *Diagnostic
}

// NewNumber создаёт заполненное значение Number.
func NewNumber(v float64) Number {
	return Number{Value: v, set: true}
}

// UnmarshalJSON реализует json.Unmarshaler. Ошибки не возвращаются: проблема
// сохраняется и отдаётся через SchemaIssue, чтобы не прерывать декодирование.
func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{set: true}
	switch kindOf(data) {
	case "null":
	case "number":
		if err := json.Unmarshal(data, &n.Value); err != nil {
			n.issue = issue("number", "number")
		}
	case "string":
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			n.issue = issue("number", "string")
			return nil
		}
		n.Value, _ = parseNumeric(s)
	default:
		n.issue = issue("number", kindOf(data))
	}
	return nil
}

// MarshalJSON реализует json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Value)
}

// SchemaIssue реализует Checker.
func (n Number) SchemaIssue() (Diagnostic, bool) {
	if n.issue == nil {
		return Diagnostic{}, false
	}
	return *n.issue, true
}

// Present сообщает, присутствовал ли ключ во входных данных.
func (n Number) Present() bool { return n.set }

// NullNumber - число, которое может отсутствовать. null, пустая строка и
// отсутствующий ключ дают null, числовая строка разбирается в число.
type NullNumber struct {
	Value float64
	Valid bool

	issue *Diagnostic
}

// NewNullNumber создаёт заполненное значение NullNumber.
func NewNullNumber(v float64) NullNumber {
	return NullNumber{Value: v, Valid: true}
}

// UnmarshalJSON реализует json.Unmarshaler.
func (n *NullNumber) UnmarshalJSON(data []byte) error {
	*n = NullNumber{}
	switch kindOf(data) {
	case "null":
	case "number":
		if err := json.Unmarshal(data, &n.Value); err != nil {
			n.issue = issue("number", "number")
			return nil
		}
		n.Valid = true
	case "string":
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			n.issue = issue("number", "string")
			return nil
		}
		if s == "" {
			return nil
		}
		v, ok := parseNumeric(s)
		if !ok {
			n.issue = issue("number", "nan")
			return nil
		}
		n.Value, n.Valid = v, true
	default:
		n.issue = issue("number", kindOf(data))
	}
	return nil
}

// MarshalJSON реализует json.Marshaler.
func (n NullNumber) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return null, nil
	}
	return json.Marshal(n.Value)
}

// SchemaIssue реализует Checker.
func (n NullNumber) SchemaIssue() (Diagnostic, bool) {
	if n.issue == nil {
		return Diagnostic{}, false
	}
	return *n.issue, true
}

// Ptr возвращает значение как *float64, nil для null.
func (n NullNumber) Ptr() *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

// EmptyString - строка, у которой null и отсутствующий ключ дают "".
type EmptyString struct {
	Value string

	issue *Diagnostic
}

// UnmarshalJSON реализует json.Unmarshaler.
func (s *EmptyString) UnmarshalJSON(data []byte) error {
	*s = EmptyString{}
	switch kindOf(data) {
	case "null":
	case "string":
		if err := json.Unmarshal(data, &s.Value); err != nil {
			s.issue = issue("string", "string")
		}
	default:
		s.issue = issue("string", kindOf(data))
	}
	return nil
}

// MarshalJSON реализует json.Marshaler.
func (s EmptyString) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Value)
}

// SchemaIssue реализует Checker.
func (s EmptyString) SchemaIssue() (Diagnostic, bool) {
	if s.issue == nil {
		return Diagnostic{}, false
	}
	return *s.issue, true
}

// FalseBool - логическое значение, у которого null и отсутствующий ключ дают false.
type FalseBool struct {
	Value bool

	issue *Diagnostic
}

// UnmarshalJSON реализует json.Unmarshaler.
func (b *FalseBool) UnmarshalJSON(data []byte) error {
	*b = FalseBool{}
	switch kindOf(data) {
	case "null":
	case "boolean":
		_ = json.Unmarshal(data, &b.Value)
	default:
		b.issue = issue("boolean", kindOf(data))
	}
	return nil
}

// MarshalJSON реализует json.Marshaler.
func (b FalseBool) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Value)
}

// SchemaIssue реализует Checker.
func (b FalseBool) SchemaIssue() (Diagnostic, bool) {
	if b.issue == nil {
		return Diagnostic{}, false
	}
	return *b.issue, true
}

// NumericString - строка, в которую число переводится десятичной записью.
// null и пустая строка дают "".
type NumericString struct {
	Value string

	issue *Diagnostic
}

// UnmarshalJSON реализует json.Unmarshaler.
func (s *NumericString) UnmarshalJSON(data []byte) error {
	*s = NumericString{}
	switch kindOf(data) {
	case "null":
	case "string":
		if err := json.Unmarshal(data, &s.Value); err != nil {
			s.issue = issue("string", "string")
		}
	case "number":
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			s.issue = issue("string", "number")
			return nil
		}
		s.Value = strconv.FormatFloat(f, 'f', -1, 64)
	case "boolean":
		s.Value = strings.TrimSpace(string(data))
	default:
		s.issue = issue("string", kindOf(data))
	}
	return nil
}

// MarshalJSON реализует json.Marshaler.
func (s NumericString) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Value)
}

// SchemaIssue реализует Checker.
func (s NumericString) SchemaIssue() (Diagnostic, bool) {
	if s.issue == nil {
		return Diagnostic{}, false
	}
	return *s.issue, true
}

// LenientString подставляет "" вместо любого нестрокового значения.
type LenientString struct {
	Value string
}

// UnmarshalJSON реализует json.Unmarshaler.
func (s *LenientString) UnmarshalJSON(data []byte) error {
	s.Value = ""
	if kindOf(data) == "string" {
		_ = json.Unmarshal(data, &s.Value)
	}
	return nil
}

// MarshalJSON реализует json.Marshaler.
func (s LenientString) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Value)
}

// LenientBool подставляет false вместо любого нелогического значения.
type LenientBool struct {
	Value bool
}

// UnmarshalJSON реализует json.Unmarshaler.
func (b *LenientBool) UnmarshalJSON(data []byte) error {
	b.Value = false
	if kindOf(data) == "boolean" {
		_ = json.Unmarshal(data, &b.Value)
	}
	return nil
}

// MarshalJSON реализует json.Marshaler.
func (b LenientBool) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Value)
}

// LenientInt подставляет 0 вместо любого нечислового значения.
type LenientInt struct {
	Value int64
}

// UnmarshalJSON реализует json.Unmarshaler.
func (n *LenientInt) UnmarshalJSON(data []byte) error {
	n.Value = 0
	if kindOf(data) != "number" {
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		n.Value = int64(f)
	}
	return nil
}

// MarshalJSON реализует json.Marshaler.
func (n LenientInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Value)
}
