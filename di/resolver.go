package di

import (
	"fmt"
	"reflect"

	"github.com/muir/reflectutils"
	"go.uber.org/zap"
)

// Resolver builds object graphs from a Registry. Nothing is memoised: every
// call constructs a fresh graph, so the resolver itself holds no request state.
type Resolver struct {
	registry *Registry
	log      *zap.Logger
}

func NewResolver(registry *Registry, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{registry: registry, log: log}
}

// ByClass instantiates the named class, recursively resolving every
// class-typed constructor parameter.
func (r *Resolver) ByClass(name string) (any, error) {
	class, ok := r.registry.Lookup(name)
	if !ok {
		return nil, &ResolutionError{Class: name, Err: fmt.Errorf("%w: %s", ErrUnknownClass, name)}
	}

	v, err := r.instantiate(class, []reflect.Type{class.Type})
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

// ByType resolves an instance assignable to t.
func (r *Resolver) ByType(t reflect.Type) (reflect.Value, error) {
	return r.resolve(t, nil)
}

// Method resolves every class-typed parameter of an exported method, keyed by
// parameter name. Built-in and untyped parameters are left out; they are
// expected to come from the request.
func (r *Resolver) Method(className, method string) (map[string]any, error) {
	params, err := r.registry.MethodParams(className, method)
	if err != nil {
		return nil, &ResolutionError{Class: className, Err: err}
	}

	deps := make(map[string]any, len(params))
	for _, p := range params {
		if !IsClassType(p.Type) {
			continue
		}
		v, err := r.resolve(p.Type, nil)
		if err != nil {
			return nil, &ResolutionError{Class: className + "." + method, Param: p.Name, Err: err}
		}
		deps[p.Name] = v.Interface()
	}
	return deps, nil
}

func (r *Resolver) resolve(t reflect.Type, stack []reflect.Type) (reflect.Value, error) {
	for _, seen := range stack {
		if seen == t {
			return reflect.Value{}, r.cycle(append(stack, t))
		}
	}
	stack = append(stack[:len(stack):len(stack)], t)

	if class, ok := r.registry.classFor(t); ok {
		return r.instantiate(class, stack)
	}

	// a struct value can come from a class registered by pointer
	if t.Kind() == reflect.Struct {
		if class, ok := r.registry.classFor(reflect.PointerTo(t)); ok {
			v, err := r.instantiate(class, stack)
			if err != nil {
				return reflect.Value{}, err
			}
			if v.IsNil() {
				return reflect.Value{}, &ResolutionError{
					Class: class.Name,
					Err:   fmt.Errorf("%w: constructor returned nil", ErrUnsatisfiedParameter),
				}
			}
			return v.Elem(), nil
		}
	}

	switch {
	case t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Struct:
		return reflect.New(t.Elem()), nil
	case t.Kind() == reflect.Struct:
		return reflect.New(t).Elem(), nil
	case t.Kind() == reflect.Interface:
		return reflect.Value{}, &ResolutionError{
			Class: reflectutils.TypeName(t),
			Err:   fmt.Errorf("%w: no class bound to interface", ErrUnknownClass),
		}
	default:
		return reflect.Value{}, &ResolutionError{Class: reflectutils.TypeName(t), Err: ErrUnsatisfiedParameter}
	}
}

func (r *Resolver) instantiate(class *Class, stack []reflect.Type) (reflect.Value, error) {
	if !class.HasConstructor() {
		if class.Type.Kind() == reflect.Pointer {
			return reflect.New(class.Type.Elem()), nil
		}
		return reflect.New(class.Type).Elem(), nil
	}

	params := class.constructorParams()
	args := make([]reflect.Value, len(params))
	for i, p := range params {
		if !IsClassType(p.Type) {
			return reflect.Value{}, &ResolutionError{
				Class: class.Name,
				Param: p.Name,
				Err:   fmt.Errorf("%w: %s", ErrUnsatisfiedParameter, reflectutils.TypeName(p.Type)),
			}
		}
		v, err := r.resolve(p.Type, stack)
		if err != nil {
			return reflect.Value{}, &ResolutionError{Class: class.Name, Param: p.Name, Err: err}
		}
		args[i] = v
	}

	r.log.Debug("Instantiating class", zap.String("class", class.Name), zap.Int("dependencies", len(args)))

	out := class.ctor.Call(args)
	if len(out) == 2 && !out[1].IsNil() {
		return reflect.Value{}, &ResolutionError{Class: class.Name, Err: out[1].Interface().(error)}
	}
	return out[0], nil
}

func (r *Resolver) cycle(stack []reflect.Type) error {
	path := make([]string, len(stack))
	for i, t := range stack {
		if c, ok := r.registry.classFor(t); ok {
			path[i] = c.Name
		} else {
			path[i] = reflectutils.TypeName(t)
		}
	}
	return &CycleError{Path: path}
}
