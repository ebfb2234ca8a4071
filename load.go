package dochooks

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrUnknownObject is returned when a dump refers to a class the registry does not hold.
var ErrUnknownObject = errors.New("dochooks: unknown object")

// LoadHooks replays a hooks dump against d, binding each statement to the
// registry's instance for its class. A missing file is not an error, and a
// path is replayed at most once per registry.
func (r *Registry) LoadHooks(path string, d Dispatcher) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	r.mu.Lock()
	if _, ok := r.loaded[abs]; ok {
		r.mu.Unlock()
		return nil
	}

	f, err := os.Open(abs)
	if err != nil {
		r.mu.Unlock()
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open hooks file: %w", err)
	}
	defer f.Close()
	r.loaded[abs] = struct{}{}
	r.mu.Unlock()

	statements, err := ParseDump(f)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Path = path
		}
		return err
	}

	for _, s := range statements {
		if err := r.replay(s, d); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) replay(s Statement, d Dispatcher) error {
	obj, ok := r.instance(s.Class)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownObject, s.Class)
	}

	typ, err := ParseHookType(string(s.Type))
	if err != nil {
		return err
	}

	cb, err := NewCallback(obj, s.Method)
	if err != nil {
		return err
	}

	if err := dispatch(d, typ, s.Name, cb, s.Priority, s.ArgCount); err != nil {
		return fmt.Errorf("replay %s: %w", s, err)
	}
	return nil
}
