package dochooks

import (
	"fmt"
)

// Dispatcher is the event system hooks are registered with.
//
// Implementations decide what duplicate registrations mean. They must not
// call back into Registrar.Register from these methods.
type Dispatcher interface {
	AddAction(name string, cb Callback, priority, argCount int) error
	AddFilter(name string, cb Callback, priority, argCount int) error
	AddShortcode(name string, cb Callback) error
}

// dispatch routes one registration to the dispatcher primitive for its type.
func dispatch(d Dispatcher, typ HookType, name string, cb Callback, priority, argCount int) error {
	switch typ {
	case Action:
		return d.AddAction(name, cb, priority, argCount)
	case Filter:
		return d.AddFilter(name, cb, priority, argCount)
	case Shortcode:
		return d.AddShortcode(name, cb)
	}
	return fmt.Errorf("unknown hook type %q", typ)
}
