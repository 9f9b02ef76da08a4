package di

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDependencyResolution = errors.New("dependency resolution failed")
	ErrCircularDependency   = errors.New("circular dependency")
	ErrUnknownClass         = errors.New("unknown class")
	ErrMethodNotFound       = errors.New("method not found")
	ErrInvalidConstructor   = errors.New("invalid constructor")
	ErrUnsatisfiedParameter = errors.New("parameter cannot be auto-resolved")
	ErrMissingArgument      = errors.New("missing argument")
	ErrArgumentType         = errors.New("argument type mismatch")
	ErrNotInvocable         = errors.New("callback is not invocable")
)

// ResolutionError reports which class and parameter broke a constructor or
// method resolution. It matches ErrDependencyResolution with errors.Is.
type ResolutionError struct {
	Class string
	Param string
	Err   error
}

func (e *ResolutionError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("resolve %s: %v", e.Class, e.Err)
	}
	return fmt.Sprintf("resolve %s (param %s): %v", e.Class, e.Param, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

func (e *ResolutionError) Is(target error) bool { return target == ErrDependencyResolution }

// CycleError lists the types on the resolution stack, first to last, with the
// repeated type closing the path.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%v: %s", ErrCircularDependency, strings.Join(e.Path, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrCircularDependency }
