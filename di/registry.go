package di

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/muir/reflectutils"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Class is a named entry in the type-registration table.
type Class struct {
	Name string
	Type reflect.Type

	ctor         reflect.Value // zero when the class has no constructor
	ctorParams   []string
	methodParams map[string][]string
}

// HasConstructor reports whether instances come from a constructor func
// rather than a zero value.
func (c *Class) HasConstructor() bool { return c.ctor.IsValid() }

type ClassOption func(*Class)

// WithConstructorParams names the constructor parameters in order.
func WithConstructorParams(names ...string) ClassOption {
	return func(c *Class) { c.ctorParams = names }
}

// WithMethodParams names the parameters of an exported method in order,
// receiver excluded. Names are what request params and resolved dependencies
// are matched against when the method is invoked.
func WithMethodParams(method string, names ...string) ClassOption {
	return func(c *Class) {
		if c.methodParams == nil {
			c.methodParams = map[string][]string{}
		}
		c.methodParams[method] = names
	}
}

// Registry maps class names and types to constructors. Registration normally
// happens at boot; lookups are safe from concurrent requests.
type Registry struct {
	mu       sync.RWMutex
	byName   map[string]*Class
	byType   map[reflect.Type]*Class
	bindings map[reflect.Type]string // interface -> class name
}

func NewRegistry() *Registry {
	return &Registry{
		byName:   map[string]*Class{},
		byType:   map[reflect.Type]*Class{},
		bindings: map[reflect.Type]string{},
	}
}

// Register adds a class under name. constructor is either a func returning
// T or (T, error), whose parameters are resolved on every instantiation, or
// a typed nil pointer such as (*T)(nil) for a class built as a zero value.
func (r *Registry) Register(name string, constructor any, opts ...ClassOption) error {
	if name == "" {
		return fmt.Errorf("%w: empty class name", ErrInvalidConstructor)
	}

	class, err := newClass(name, constructor)
	if err != nil {
		return err
	}
	for _, opt := range opts {
		opt(class)
	}
	if err := class.validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.byName[name]; dup {
		return fmt.Errorf("%w: class %s already registered", ErrInvalidConstructor, name)
	}
	r.byName[name] = class
	r.byType[class.Type] = class
	return nil
}

func newClass(name string, constructor any) (*Class, error) {
	v := reflect.ValueOf(constructor)
	if !v.IsValid() {
		return nil, fmt.Errorf("%w: %s has no constructor or type", ErrInvalidConstructor, name)
	}

	t := v.Type()
	switch {
	case t.Kind() == reflect.Func:
		if t.IsVariadic() {
			return nil, fmt.Errorf("%w: %s constructor must not be variadic", ErrInvalidConstructor, name)
		}
		if t.NumOut() == 0 || t.NumOut() > 2 || (t.NumOut() == 2 && t.Out(1) != errorType) {
			return nil, fmt.Errorf("%w: %s constructor must return T or (T, error)", ErrInvalidConstructor, name)
		}
		return &Class{Name: name, Type: t.Out(0), ctor: v}, nil

	case t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Struct:
		return &Class{Name: name, Type: t}, nil

	default:
		return nil, fmt.Errorf("%w: %s must be a func or a struct pointer, got %s",
			ErrInvalidConstructor, name, reflectutils.TypeName(t))
	}
}

func (c *Class) validate() error {
	if c.HasConstructor() && c.ctorParams != nil && len(c.ctorParams) != c.ctor.Type().NumIn() {
		return fmt.Errorf("%w: %s declares %d constructor params, constructor takes %d",
			ErrInvalidConstructor, c.Name, len(c.ctorParams), c.ctor.Type().NumIn())
	}
	for method, names := range c.methodParams {
		m, ok := c.Type.MethodByName(method)
		if !ok {
			return fmt.Errorf("%w: %s.%s", ErrMethodNotFound, c.Name, method)
		}
		if want := m.Type.NumIn() - receiverArgs(c.Type); len(names) != want {
			return fmt.Errorf("%w: %s.%s declares %d params, method takes %d",
				ErrInvalidConstructor, c.Name, method, len(names), want)
		}
	}
	return nil
}

// Bind makes an interface resolvable through a registered class. ifacePtr is
// a nil pointer to the interface, e.g. (*Store)(nil).
func (r *Registry) Bind(ifacePtr any, className string) error {
	pt := reflect.TypeOf(ifacePtr)
	if pt == nil || pt.Kind() != reflect.Pointer || pt.Elem().Kind() != reflect.Interface {
		return errors.New("bind expects a nil pointer to an interface")
	}
	iface := pt.Elem()

	r.mu.Lock()
	defer r.mu.Unlock()

	class, ok := r.byName[className]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownClass, className)
	}
	if !class.Type.Implements(iface) {
		return fmt.Errorf("%s (%s) does not implement %s",
			className, reflectutils.TypeName(class.Type), reflectutils.TypeName(iface))
	}
	r.bindings[iface] = className
	return nil
}

func (r *Registry) Exists(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

func (r *Registry) Lookup(name string) (*Class, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byName[name]
	return c, ok
}

// Names returns the registered class names in lexical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := maps.Keys(r.byName)
	r.mu.RUnlock()

	slices.Sort(names)
	return names
}

// classFor finds the class producing t, following interface bindings.
func (r *Registry) classFor(t reflect.Type) (*Class, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if c, ok := r.byType[t]; ok {
		return c, true
	}
	if name, ok := r.bindings[t]; ok {
		c, ok := r.byName[name]
		return c, ok
	}
	return nil, false
}

// ConstructorParams lists the constructor parameters of a class. Classes
// without a constructor have none.
func (r *Registry) ConstructorParams(name string) ([]Param, error) {
	c, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownClass, name)
	}
	return c.constructorParams(), nil
}

func (c *Class) constructorParams() []Param {
	if !c.HasConstructor() {
		return nil
	}
	return buildParams(funcInTypes(c.ctor.Type(), 0), c.ctorParams)
}

// MethodParams lists the parameters of an exported method, receiver excluded.
// Only the signature is inspected; no instance is built.
func (r *Registry) MethodParams(name, method string) ([]Param, error) {
	c, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownClass, name)
	}
	return c.methodParamsFor(method)
}

func (c *Class) methodParamsFor(method string) ([]Param, error) {
	m, ok := c.Type.MethodByName(method)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrMethodNotFound, c.Name, method)
	}
	return buildParams(funcInTypes(m.Type, receiverArgs(c.Type)), c.methodParams[method]), nil
}

// receiverArgs is how many leading inputs of a reflect.Method type are the
// receiver: one for concrete types, none for interface methods.
func receiverArgs(t reflect.Type) int {
	if t.Kind() == reflect.Interface {
		return 0
	}
	return 1
}
