package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type level string

func (l level) Valid() bool { return l == "LOW" || l == "HIGH" }

type flag struct {
	set bool
}

func (f flag) Present() bool { return f.set }

type inner struct {
	Level level `json:"level" validate:"enum"`
}

type base struct {
	Ref string `json:"ref" validate:"required"`
}

type request struct {
	base
	Name   string  `json:"name" validate:"required"`
	Fee    int     `json:"fee" validate:"oneof=0 30 100"`
	Mark   flag    `json:"mark" validate:"required"`
	Items  []inner `json:"items" validate:"dive"`
	Email  string  `json:"email" validate:"omitempty,email"`
	Hidden string  `json:"-"`
}

func TestStruct(t *testing.T) {
	v := New()
	v.RegisterPresence(flag{})

	valid := request{
		base:  base{Ref: "r1"},
		Name:  "n",
		Fee:   30,
		Mark:  flag{set: true},
		Items: []inner{{Level: "LOW"}},
	}
	require.NoError(t, v.Struct(valid))

	bad := request{Fee: 50, Items: []inner{{Level: "LOW"}, {Level: "MID"}, {}}, Email: "nope"}
	err := v.Struct(bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	var verr *Error
	require.ErrorAs(t, err, &verr)

	got := map[string]string{}
	for _, f := range verr.Fields {
		got[f.Field] = f.Message
	}
	assert.Equal(t, map[string]string{
		"ref":           "is required",
		"name":          "is required",
		"fee":           "must be one of [0 30 100]",
		"mark":          "is required",
		"items.1.level": "invalid enum value MID",
		"items.2.level": "invalid enum value ",
		"email":         "must be a valid email",
	}, got)
}

func TestFieldPath(t *testing.T) {
	tests := []struct {
		namespace string
		want      string
	}{
		{namespace: "request.name", want: "name"},
		{namespace: "BookingFilter.filters.status[1]", want: "filters.status.1"},
		{namespace: "Booking.^.id", want: "id"},
		{namespace: "List.data[0].^.amount_to_pay", want: "data.0.amount_to_pay"},
	}

	for _, tt := range tests {
		t.Run(tt.namespace, func(t *testing.T) {
			assert.Equal(t, tt.want, fieldPath(tt.namespace))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	err := &Error{Fields: []FieldError{
		{Field: "email", Message: "must be a valid email"},
		{Field: "password", Message: "is required"},
	}}
	assert.Equal(t, "validation failed: email: must be a valid email; password: is required", err.Error())
}
