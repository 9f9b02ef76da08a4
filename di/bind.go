package di

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/muir/reflectutils"
)

var paramsMapType = reflect.TypeOf(map[string]any{})

// BindArgs lays values out in the formal order of params, matching by name.
// Values are converted where the conversion is lossless in intent: numeric
// kinds into each other and strings parsed into numbers and booleans.
func BindArgs(params []Param, values map[string]any) ([]reflect.Value, error) {
	args := make([]reflect.Value, len(params))
	for i, p := range params {
		v, ok := values[p.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %s (%s)", ErrMissingArgument, p.Name, reflectutils.TypeName(p.Type))
		}
		arg, err := coerce(v, p.Type)
		if err != nil {
			return nil, fmt.Errorf("param %s: %w", p.Name, err)
		}
		args[i] = arg
	}
	return args, nil
}

func coerce(v any, t reflect.Type) (reflect.Value, error) {
	if v == nil {
		switch t.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("%w: nil for %s", ErrArgumentType, reflectutils.TypeName(t))
	}

	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(t) {
		return rv, nil
	}

	if s, ok := v.(string); ok {
		return parseString(s, t)
	}
	if isNumeric(rv.Kind()) && isNumeric(t.Kind()) {
		return rv.Convert(t), nil
	}
	if rv.Kind() == reflect.String && t.Kind() == reflect.String {
		return rv.Convert(t), nil
	}

	return reflect.Value{}, fmt.Errorf("%w: %s into %s",
		ErrArgumentType, reflectutils.TypeName(rv.Type()), reflectutils.TypeName(t))
}

func parseString(s string, t reflect.Type) (reflect.Value, error) {
	out := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.String:
		out.SetString(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %v", ErrArgumentType, err)
		}
		out.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %v", ErrArgumentType, err)
		}
		out.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, t.Bits())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %v", ErrArgumentType, err)
		}
		out.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %v", ErrArgumentType, err)
		}
		out.SetBool(b)
	default:
		return reflect.Value{}, fmt.Errorf("%w: string into %s", ErrArgumentType, reflectutils.TypeName(t))
	}
	return out, nil
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// Call invokes fn and folds its results: the first non-error result is the
// data, an error-typed result that is non-nil is the error.
func Call(fn reflect.Value, args []reflect.Value) (any, error) {
	var out []reflect.Value
	if fn.Type().IsVariadic() {
		out = fn.CallSlice(args)
	} else {
		out = fn.Call(args)
	}

	var (
		data    any
		hasData bool
		err     error
	)
	ft := fn.Type()
	for i, v := range out {
		if ft.Out(i) == errorType {
			if !v.IsNil() {
				err = v.Interface().(error)
			}
			continue
		}
		if !hasData {
			data, hasData = v.Interface(), true
		}
	}
	return data, err
}

// Invoke calls an exported method on instance, binding values by the
// parameter names in params.
func Invoke(instance any, method string, params []Param, values map[string]any) (any, error) {
	m := reflect.ValueOf(instance).MethodByName(method)
	if !m.IsValid() {
		return nil, fmt.Errorf("%w: %s.%s", ErrMethodNotFound, reflectutils.TypeName(reflect.TypeOf(instance)), method)
	}
	args, err := BindArgs(params, values)
	if err != nil {
		return nil, err
	}
	return Call(m, args)
}

// Func is a directly invocable callback whose parameters are bound by the
// declared names.
type Func struct {
	Fn     any
	Params []string
}

func NewFunc(fn any, params ...string) Func {
	return Func{Fn: fn, Params: params}
}

// IsInvocable reports whether CallFunc can be attempted on callback.
func IsInvocable(callback any) bool {
	if f, ok := callback.(Func); ok {
		callback = f.Fn
	}
	return callback != nil && reflect.TypeOf(callback).Kind() == reflect.Func
}

// CallFunc invokes a direct callback with the raw request params. A func
// taking a single map[string]any receives values as is, a Func binds by its
// declared names, and a func without parameters is simply called.
func CallFunc(callback any, values map[string]any) (any, error) {
	var names []string
	if f, ok := callback.(Func); ok {
		callback, names = f.Fn, f.Params
	}

	fn := reflect.ValueOf(callback)
	if !fn.IsValid() || fn.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w: %T", ErrNotInvocable, callback)
	}
	ft := fn.Type()

	switch {
	case names != nil:
		if len(names) != ft.NumIn() {
			return nil, fmt.Errorf("%w: func takes %d params, %d names declared",
				ErrUnsatisfiedParameter, ft.NumIn(), len(names))
		}
		args, err := BindArgs(buildParams(funcInTypes(ft, 0), names), values)
		if err != nil {
			return nil, err
		}
		return Call(fn, args)

	case ft.NumIn() == 0:
		return Call(fn, nil)

	case ft.NumIn() == 1 && !ft.IsVariadic() && paramsMapType.AssignableTo(ft.In(0)):
		if values == nil {
			values = map[string]any{}
		}
		return Call(fn, []reflect.Value{reflect.ValueOf(values)})

	default:
		return nil, fmt.Errorf("%w: %s needs declared parameter names", ErrUnsatisfiedParameter, reflectutils.TypeName(ft))
	}
}
