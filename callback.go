package dochooks

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrArgCount is returned when a callback is invoked with the wrong number of arguments.
	ErrArgCount = errors.New("dochooks: wrong argument count")

	// ErrUnknownMethod is returned when a callback names a method the target does not have.
	ErrUnknownMethod = errors.New("dochooks: unknown method")
)

// Callback is a method bound to its receiver, the Go form of [object, 'method'].
type Callback struct {
	Target any
	Method string

	fn reflect.Value
}

// NewCallback binds the exported method named method on target.
func NewCallback(target any, method string) (Callback, error) {
	fn := reflect.ValueOf(target).MethodByName(method)
	if !fn.IsValid() {
		return Callback{}, fmt.Errorf("%w: %s.%s", ErrUnknownMethod, ClassName(target), method)
	}
	return Callback{Target: target, Method: method, fn: fn}, nil
}

// Func returns the bound method value.
func (c Callback) Func() reflect.Value {
	return c.fn
}

// ArgCount returns the declared parameter count of the bound method.
func (c Callback) ArgCount() int {
	if !c.fn.IsValid() {
		return 0
	}
	return c.fn.Type().NumIn()
}

// String returns "<class>.<method>".
func (c Callback) String() string {
	return ClassName(c.Target) + "." + c.Method
}

// Call invokes the bound method. Nil arguments become zero values and
// convertible arguments are converted to the parameter type.
func (c Callback) Call(args ...any) ([]any, error) {
	if !c.fn.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, c)
	}

	ft := c.fn.Type()
	n := ft.NumIn()
	if ft.IsVariadic() {
		if len(args) < n-1 {
			return nil, fmt.Errorf("%w: %s wants at least %d, got %d", ErrArgCount, c, n-1, len(args))
		}
	} else if len(args) != n {
		return nil, fmt.Errorf("%w: %s wants %d, got %d", ErrArgCount, c, n, len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		pt := paramType(ft, i)
		v, err := argValue(arg, pt)
		if err != nil {
			return nil, fmt.Errorf("%s argument %d: %w", c, i, err)
		}
		in[i] = v
	}

	out := c.fn.Call(in)
	results := make([]any, len(out))
	for i, v := range out {
		results[i] = v.Interface()
	}
	return results, nil
}

// paramType returns the type the i-th argument must have, unrolling a variadic tail.
func paramType(ft reflect.Type, i int) reflect.Type {
	if ft.IsVariadic() && i >= ft.NumIn()-1 {
		return ft.In(ft.NumIn() - 1).Elem()
	}
	return ft.In(i)
}

func argValue(arg any, pt reflect.Type) (reflect.Value, error) {
	if arg == nil {
		return reflect.Zero(pt), nil
	}
	v := reflect.ValueOf(arg)
	if v.Type().AssignableTo(pt) {
		return v, nil
	}
	if v.Type().ConvertibleTo(pt) {
		return v.Convert(pt), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %s as %s", v.Type(), pt)
}
