package dochooks

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"
)

// ErrNilTarget is returned when Register is called with nil.
var ErrNilTarget = errors.New("dochooks: nil target")

// Idempotence selects what Register treats as "already registered".
type Idempotence int

const (
	// PerClass skips any target whose type was registered before,
	// even when it is a different instance.
	PerClass Idempotence = iota

	// PerInstance skips only a pointer that was registered before.
	// Non-pointer targets fall back to PerClass. With a registry, each
	// instance gets an entry of its own, so a dump replays onto it.
	PerInstance
)

// Record is one hook binding made by a Registrar.
type Record struct {
	Class    string   `json:"class"`
	Method   string   `json:"callback"`
	Type     HookType `json:"type"`
	Name     string   `json:"name"`
	Priority int      `json:"priority"`
	ArgCount int      `json:"arg_count"`
}

// Option configures a Registrar.
type Option func(*Registrar)

// WithRegistry also records every binding in reg.
func WithRegistry(reg *Registry) Option {
	return func(r *Registrar) { r.registry = reg }
}

// WithDocs supplies doc comments for types without a DocHooks method.
func WithDocs(docs Docs) Option {
	return func(r *Registrar) { r.docs = docs }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registrar) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics counts registrations in m.
func WithMetrics(m *Metrics) Option {
	return func(r *Registrar) { r.metrics = m }
}

// WithIdempotence sets the re-registration guard. The default is PerClass.
func WithIdempotence(mode Idempotence) Option {
	return func(r *Registrar) { r.idempotence = mode }
}

// Registrar binds annotated methods to a Dispatcher.
type Registrar struct {
	mu          sync.Mutex
	dispatcher  Dispatcher
	registry    *Registry
	docs        Docs
	logger      *zap.Logger
	metrics     *Metrics
	idempotence Idempotence

	seen  map[string]struct{}
	calls map[string][]Record
}

// NewRegistrar creates a registrar that registers hooks with d.
func NewRegistrar(d Dispatcher, opts ...Option) *Registrar {
	r := &Registrar{
		dispatcher: d,
		logger:     zap.NewNop(),
		seen:       make(map[string]struct{}),
		calls:      make(map[string][]Record),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register scans target's methods and registers every annotated one.
//
// A target whose type was already registered is skipped without touching
// the dispatcher. Dispatcher errors are returned as-is (wrapped); the type
// then counts as registered and the bindings made before the error remain.
func (r *Registrar) Register(target any) error {
	if target == nil {
		return ErrNilTarget
	}

	class := ClassName(target)
	key := r.key(class, target)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.seen[key]; ok {
		r.logger.Debug("already registered", zap.String("class", class))
		r.metrics.registrationSkipped()
		return nil
	}
	r.seen[key] = struct{}{}
	if _, ok := r.calls[class]; !ok {
		r.calls[class] = []Record{}
	}
	entryKey := class
	if r.registry != nil {
		if r.idempotence == PerInstance {
			entryKey = r.registry.AddInstance(target)
		} else {
			r.registry.AddObject(target)
		}
	}
	r.metrics.classRegistered()

	docs := lookupDocs(target, r.docs)
	v := reflect.ValueOf(target)
	t := v.Type()

	for i := 0; i < t.NumMethod(); i++ {
		method := t.Method(i)
		annotations := Match(docs[method.Name])
		if len(annotations) == 0 {
			continue
		}

		cb := Callback{Target: target, Method: method.Name, fn: v.Method(i)}
		argCount := cb.ArgCount()

		for _, a := range annotations {
			rec := Record{
				Class:    class,
				Method:   method.Name,
				Type:     a.Type,
				Name:     a.Name,
				Priority: a.PriorityOr(DefaultPriority),
				ArgCount: argCount,
			}

			if err := dispatch(r.dispatcher, rec.Type, rec.Name, cb, rec.Priority, rec.ArgCount); err != nil {
				return fmt.Errorf("register %s.%s as %s %q: %w", class, method.Name, rec.Type, rec.Name, err)
			}

			r.calls[class] = append(r.calls[class], rec)
			if r.registry != nil {
				if r.idempotence == PerInstance {
					r.registry.appendHook(entryKey, rec)
				} else {
					r.registry.AddHook(target, rec)
				}
			}
			r.metrics.hookRegistered(rec.Type)

			r.logger.Debug("hook registered",
				zap.String("class", class),
				zap.String("method", method.Name),
				zap.String("type", string(rec.Type)),
				zap.String("name", rec.Name),
				zap.Int("priority", rec.Priority),
				zap.Int("arg_count", rec.ArgCount))
		}
	}

	return nil
}

// Enabled reports whether doc metadata is available for obj's type, either
// through DocHooks or through the table given with WithDocs.
func (r *Registrar) Enabled(obj any) bool {
	if Enabled(obj) {
		return true
	}
	return obj != nil && len(r.docs[ClassName(obj)]) > 0
}

// Calls returns every binding made so far, keyed by class name.
func (r *Registrar) Calls() map[string][]Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string][]Record, len(r.calls))
	for class, records := range r.calls {
		out[class] = append([]Record(nil), records...)
	}
	return out
}

func (r *Registrar) key(class string, target any) string {
	if r.idempotence == PerInstance {
		if v := reflect.ValueOf(target); v.Kind() == reflect.Pointer {
			return fmt.Sprintf("%s@%x", class, v.Pointer())
		}
	}
	return class
}
