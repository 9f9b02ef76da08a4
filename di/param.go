package di

import (
	"fmt"
	"reflect"
	"unicode"
	"unicode/utf8"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Param is one formal parameter of a constructor, method or function.
type Param struct {
	Name  string
	Type  reflect.Type
	Index int
}

// IsClassType reports whether values of t are built by the resolver instead
// of being passed in from the request: structs, pointers to structs and
// interfaces with at least one method. Empty interfaces, error and the
// built-in kinds are not.
func IsClassType(t reflect.Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind() {
	case reflect.Struct:
		return true
	case reflect.Pointer:
		return t.Elem().Kind() == reflect.Struct
	case reflect.Interface:
		return t.NumMethod() > 0 && t != errorType
	default:
		return false
	}
}

func defaultParamName(t reflect.Type, i int) string {
	if IsClassType(t) {
		base := t
		if base.Kind() == reflect.Pointer {
			base = base.Elem()
		}
		if name := base.Name(); name != "" {
			return lowerFirst(name)
		}
	}
	return fmt.Sprintf("arg%d", i)
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}

// buildParams pairs the first len(types) declared names with types, filling
// the gaps with defaults.
func buildParams(types []reflect.Type, names []string) []Param {
	params := make([]Param, len(types))
	for i, t := range types {
		name := defaultParamName(t, i)
		if i < len(names) && names[i] != "" {
			name = names[i]
		}
		params[i] = Param{Name: name, Type: t, Index: i}
	}
	return params
}

func funcInTypes(t reflect.Type, skip int) []reflect.Type {
	types := make([]reflect.Type, 0, t.NumIn()-skip)
	for i := skip; i < t.NumIn(); i++ {
		types = append(types, t.In(i))
	}
	return types
}
