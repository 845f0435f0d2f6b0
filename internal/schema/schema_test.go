package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type color string

const (
	colorRed   color = "RED"
	colorGreen color = "GREEN"
)

func (c color) Valid() bool {
	return c == colorRed || c == colorGreen
}

func (c color) Fallback() color { return colorRed }

type shade string

func (s shade) Valid() bool { return s == "LIGHT" || s == "DARK" }

type item struct {
	ID    Number `json:"id" validate:"required"`
	Shade shade  `json:"shade"`
}

type payload struct {
	Amount   Number        `json:"amount" validate:"required"`
	Optional NullNumber    `json:"optional"`
	Name     EmptyString   `json:"name"`
	Flag     FalseBool     `json:"flag"`
	VAT      NumericString `json:"vat"`
	Color    Catch[color]  `json:"color"`
	Platform LenientString `json:"platform"`
	Items    []item        `json:"items" validate:"dive"`
	Email    string        `json:"email" validate:"omitempty,email"`
}

func TestNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		issue bool
	}{
		{name: "number", input: `12.5`, want: 12.5},
		{name: "numeric string", input: `"42"`, want: 42},
		{name: "padded numeric string", input: `" 7 "`, want: 7},
		{name: "non numeric string", input: `"abc"`, want: 0},
		{name: "null", input: `null`, want: 0},
		{name: "boolean", input: `true`, want: 0, issue: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Number
			require.NoError(t, json.Unmarshal([]byte(tt.input), &n))
			assert.Equal(t, tt.want, n.Value)
			assert.True(t, n.Present())
			_, hasIssue := n.SchemaIssue()
			assert.Equal(t, tt.issue, hasIssue)
		})
	}
}

func TestNullNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *float64
		issue bool
	}{
		{name: "null", input: `null`},
		{name: "empty string", input: `""`},
		{name: "numeric string", input: `"42"`, want: ptr(42.0)},
		{name: "number", input: `3`, want: ptr(3.0)},
		{name: "non numeric string", input: `"abc"`, issue: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n NullNumber
			require.NoError(t, json.Unmarshal([]byte(tt.input), &n))
			assert.Equal(t, tt.want, n.Ptr())
			d, hasIssue := n.SchemaIssue()
			assert.Equal(t, tt.issue, hasIssue)
			if hasIssue {
				assert.Equal(t, "nan", d.Received)
			}
		})
	}

	var missing struct {
		N NullNumber `json:"n"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &missing))
	assert.Nil(t, missing.N.Ptr())

	out, err := json.Marshal(missing)
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":null}`, string(out))
}

func TestNullCoercion(t *testing.T) {
	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"amount":1,"name":null,"flag":null,"vat":null}`), &p))
	assert.Equal(t, "", p.Name.Value)
	assert.False(t, p.Flag.Value)
	assert.Equal(t, "", p.VAT.Value)

	require.NoError(t, json.Unmarshal([]byte(`{"amount":1,"vat":10}`), &p))
	assert.Equal(t, "10", p.VAT.Value)
}

func TestDecode_EnumFallback(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  color
	}{
		{name: "unknown value", input: `{"amount":1,"color":"PURPLE"}`, want: colorRed},
		{name: "known value", input: `{"amount":1,"color":"GREEN"}`, want: colorGreen},
		{name: "not a string", input: `{"amount":1,"color":5}`, want: colorRed},
		{name: "missing", input: `{"amount":1}`, want: colorRed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Decode[payload]([]byte(tt.input), "decode payload", zap.NewNop())
			assert.True(t, res.Valid(), "diagnostics: %+v", res.Diagnostics)
			assert.Equal(t, tt.want, res.Value.Color.Value)
		})
	}
}

func TestDecode_Diagnostics(t *testing.T) {
	tests := []struct {
		name  string
		input string
		path  string
		code  Code
	}{
		{
			name:  "missing required number",
			input: `{}`,
			path:  "amount",
			code:  CodeInvalidType,
		},
		{
			name:  "strict enum in nested slice",
			input: `{"amount":1,"items":[{"id":1,"shade":"LIGHT"},{"id":2,"shade":"NEON"}]}`,
			path:  "items.1.shade",
			code:  CodeInvalidEnumValue,
		},
		{
			name:  "wrong kind for coerced field",
			input: `{"amount":1,"name":{"first":"x"}}`,
			path:  "name",
			code:  CodeInvalidType,
		},
		{
			name:  "nullable number with garbage",
			input: `{"amount":1,"optional":"abc"}`,
			path:  "optional",
			code:  CodeInvalidType,
		},
		{
			name:  "bad email",
			input: `{"amount":1,"email":"nope"}`,
			path:  "email",
			code:  CodeInvalidString,
		},
		{
			name:  "malformed json",
			input: `{"amount":`,
			path:  "",
			code:  CodeInvalidJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Decode[payload]([]byte(tt.input), "decode payload", zap.NewNop())
			require.False(t, res.Valid())

			var found bool
			for _, d := range res.Diagnostics {
				if d.Path == tt.path && d.Code == tt.code {
					found = true
				}
			}
			assert.True(t, found, "diagnostics: %+v", res.Diagnostics)
		})
	}
}

func TestDecode_LogsOnce(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	logger := zap.New(core)

	res := Decode[payload]([]byte(`{"items":[{"shade":"NEON"}]}`), "fetch payload", logger)
	require.False(t, res.Valid())

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "[SchemaError] fetch payload", entries[0].Message)

	Decode[payload]([]byte(`{"amount":1}`), "fetch payload", logger)
	assert.Len(t, logs.All(), 1)
}

func TestResult_OrAndUnwrap(t *testing.T) {
	bad := Decode[payload]([]byte(`{"items":[{"id":1,"shade":"NEON"}]}`), "bad", zap.NewNop())

	fallback := payload{Name: EmptyString{Value: "fallback"}}
	assert.Equal(t, "fallback", bad.Or(fallback).Name.Value)

	v, err := bad.Unwrap(false)
	require.NoError(t, err)
	assert.Len(t, v.Items, 1)

	_, err = bad.Unwrap(true)
	assert.ErrorIs(t, err, ErrInvalidResponse)

	good := Decode[payload]([]byte(`{"amount":"3"}`), "good", zap.NewNop())
	v, err = good.Unwrap(true)
	require.NoError(t, err)
	assert.Equal(t, 3.0, v.Amount.Value)
	assert.JSONEq(t, `{"amount":"3"}`, string(good.Raw))
}

func TestDecode_Idempotent(t *testing.T) {
	raw := `{
		"amount": "12.5",
		"optional": "",
		"name": null,
		"flag": null,
		"vat": 8,
		"color": "UNKNOWN",
		"platform": 3,
		"items": [{"id": "1", "shade": "DARK"}]
	}`

	first := Decode[payload]([]byte(raw), "first", zap.NewNop())
	require.True(t, first.Valid(), "diagnostics: %+v", first.Diagnostics)

	encoded, err := json.Marshal(first.Value)
	require.NoError(t, err)

	second := Decode[payload](encoded, "second", zap.NewNop())
	require.True(t, second.Valid(), "diagnostics: %+v", second.Diagnostics)
	assert.Equal(t, first.Value, second.Value)

	again, err := json.Marshal(second.Value)
	require.NoError(t, err)
	assert.JSONEq(t, string(encoded), string(again))
}

func TestCheck(t *testing.T) {
	p := payload{Amount: NewNumber(1), Items: []item{{ID: NewNumber(1), Shade: "NEON"}}}
	diags := Check(&p)
	require.Len(t, diags, 1)
	assert.Equal(t, "items.0.shade", diags[0].Path)
	assert.Equal(t, colorRed, p.Color.Value)
}

func ptr[T any](v T) *T { return &v }
