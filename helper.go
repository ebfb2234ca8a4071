package dochooks

// Hook registers obj's annotated methods with d through a one-off Registrar
// and returns obj.
func Hook[T any](d Dispatcher, obj T, opts ...Option) (T, error) {
	return obj, NewRegistrar(d, opts...).Register(obj)
}
