package schema

import (
	"reflect"
	"strconv"
	"strings"
)

var (
	checkerType    = reflect.TypeOf((*Checker)(nil)).Elem()
	normalizerType = reflect.TypeOf((*Normalizer)(nil)).Elem()
	enumType       = reflect.TypeOf((*interface{ Valid() bool })(nil)).Elem()
)

// walk обходит декодированное значение: вызывает Normalizer, собирает
// проблемы из Checker и проверяет строковые перечисления.
func walk(v reflect.Value, path []string, out *[]Diagnostic) {
	if !v.IsValid() {
		return
	}

	if v.CanAddr() && v.Addr().Type().Implements(normalizerType) {
		v.Addr().Interface().(Normalizer).NormalizeSchema()
	}

	if v.Type().Implements(checkerType) {
		if d, ok := v.Interface().(Checker).SchemaIssue(); ok {
			d.Path = joinPath(path, d.Path)
			*out = append(*out, d)
		}
		if v.Kind() == reflect.Struct && !hasCheckerChildren(v.Type()) {
			return
		}
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return
		}
		walk(v.Elem(), path, out)

	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			name, ok := jsonName(f)
			if !ok {
				continue
			}
			if f.Anonymous && name == "" {
				walk(v.Field(i), path, out)
				continue
			}
			walk(v.Field(i), append(path[:len(path):len(path)], name), out)
		}

	case reflect.Slice, reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return
		}
		for i := 0; i < v.Len(); i++ {
			walk(v.Index(i), append(path[:len(path):len(path)], strconv.Itoa(i)), out)
		}

	case reflect.String:
		if !v.Type().Implements(enumType) {
			return
		}
		if v.Interface().(interface{ Valid() bool }).Valid() {
			return
		}
		if v.Len() == 0 {
			*out = append(*out, Diagnostic{
				Path:     joinPath(path, ""),
				Message:  "Required",
				Expected: v.Type().Name(),
				Received: "undefined",
				Code:     CodeInvalidType,
			})
			return
		}
		*out = append(*out, Diagnostic{
			Path:     joinPath(path, ""),
			Message:  "Invalid enum value '" + v.String() + "'",
			Expected: v.Type().Name(),
			Received: v.String(),
			Code:     CodeInvalidEnumValue,
		})
	}
}

// hasCheckerChildren сообщает, есть ли у структуры-Checker экспортируемые поля,
// которые нужно обходить дальше (составные модели с собственной проверкой).
func hasCheckerChildren(t reflect.Type) bool {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		switch f.Type.Kind() {
		case reflect.Struct, reflect.Pointer, reflect.Slice:
			return true
		}
	}
	return false
}

func jsonName(f reflect.StructField) (string, bool) {
	tag := f.Tag.Get("json")
	if tag == "-" {
		return "", false
	}
	name := strings.SplitN(tag, ",", 2)[0]
	if name == "" && !f.Anonymous {
		name = f.Name
	}
	return name, true
}

func joinPath(path []string, suffix string) string {
	p := strings.Join(path, ".")
	switch {
	case suffix == "":
		return p
	case p == "":
		return suffix
	default:
		return p + "." + suffix
	}
}
