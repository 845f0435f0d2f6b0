package schema

import (
	"encoding/json"
)

// Enum - строковое перечисление со значением по умолчанию.
type Enum[E any] interface {
	~string
	Valid() bool
	Fallback() E
}

// Catch хранит значение перечисления; неизвестное, нестроковое или
// отсутствующее значение заменяется на E.Fallback().
type Catch[E Enum[E]] struct {
	Value E
}

// CatchOf создаёт Catch с указанным значением.
func CatchOf[E Enum[E]](v E) Catch[E] {
	return Catch[E]{Value: v}
}

// UnmarshalJSON реализует json.Unmarshaler.
func (c *Catch[E]) UnmarshalJSON(data []byte) error {
	var s string
	if kindOf(data) != "string" || json.Unmarshal(data, &s) != nil || !E(s).Valid() {
		c.Value = c.Value.Fallback()
		return nil
	}
	c.Value = E(s)
	return nil
}

// MarshalJSON реализует json.Marshaler.
func (c Catch[E]) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(c.Value))
}

// NormalizeSchema реализует Normalizer.
func (c *Catch[E]) NormalizeSchema() {
	if !c.Value.Valid() {
		c.Value = c.Value.Fallback()
	}
}

// SchemaIssue реализует Checker; Catch никогда не сообщает о проблемах.
func (c Catch[E]) SchemaIssue() (Diagnostic, bool) {
	return Diagnostic{}, false
}
