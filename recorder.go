package dochooks

import (
	"sync"
)

// DispatchCall is one call a Recorder received.
type DispatchCall struct {
	Type     HookType
	Name     string
	Callback Callback
	Priority int // zero for shortcodes
	ArgCount int // zero for shortcodes
}

// Recorder is a Dispatcher that keeps every call in order.
type Recorder struct {
	mu       sync.Mutex
	calls    []DispatchCall
	failures map[HookType]map[string]error
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		failures: make(map[HookType]map[string]error),
	}
}

// FailOn makes registrations of the given hook return err instead of being recorded.
func (r *Recorder) FailOn(typ HookType, name string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failures[typ] == nil {
		r.failures[typ] = make(map[string]error)
	}
	r.failures[typ][name] = err
}

func (r *Recorder) AddAction(name string, cb Callback, priority, argCount int) error {
	return r.record(DispatchCall{Type: Action, Name: name, Callback: cb, Priority: priority, ArgCount: argCount})
}

func (r *Recorder) AddFilter(name string, cb Callback, priority, argCount int) error {
	return r.record(DispatchCall{Type: Filter, Name: name, Callback: cb, Priority: priority, ArgCount: argCount})
}

func (r *Recorder) AddShortcode(name string, cb Callback) error {
	return r.record(DispatchCall{Type: Shortcode, Name: name, Callback: cb})
}

// Calls returns a copy of the recorded calls.
func (r *Recorder) Calls() []DispatchCall {
	r.mu.Lock()
	defer r.mu.Unlock()

	calls := make([]DispatchCall, len(r.calls))
	copy(calls, r.calls)
	return calls
}

// Reset forgets recorded calls. Failures stay configured.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = r.calls[:0]
}

func (r *Recorder) record(call DispatchCall) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err, ok := r.failures[call.Type][call.Name]; ok {
		return err
	}
	r.calls = append(r.calls, call)
	return nil
}
