package dochooks

import (
	"fmt"
	"reflect"
	"sync"
)

// HookedObject is a registry entry: an instance and every hook bound for it.
// Entries made with AddObject stand for the whole class.
type HookedObject struct {
	// Key names the entry in a dump. It is the class name, or
	// "<class>#<n>" for further instances added with AddInstance.
	Key      string
	Class    string
	Instance any
	Hooks    []Record
}

// Registry is the ledger of hooked objects, used to dump and replay hooks.
// Entries are only ever appended.
type Registry struct {
	mu      sync.Mutex
	objects   map[string]*HookedObject // by key
	order     []string
	instances map[string]int // entries per class
	loaded    map[string]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		objects:   make(map[string]*HookedObject),
		instances: make(map[string]int),
		loaded:    make(map[string]struct{}),
	}
}

// AddObject adds obj's class with no hooks, unless the class is already present.
func (r *Registry) AddObject(obj any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addObjectLocked(obj)
}

// HasObject reports whether obj's class has been added.
func (r *Registry) HasObject(obj any) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.objects[ClassName(obj)]
	return ok
}

// AddHook appends rec to obj's class, adding the class first if needed.
// Records are not de-duplicated.
func (r *Registry) AddHook(obj any, rec Record) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := r.addObjectLocked(obj)
	entry.Hooks = append(entry.Hooks, rec)
}

// HookedObjects returns a snapshot of every entry in the order classes were added.
func (r *Registry) HookedObjects() []HookedObject {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]HookedObject, 0, len(r.order))
	for _, class := range r.order {
		out = append(out, r.objects[class].clone())
	}
	return out
}

// AddInstance gives obj an entry of its own, even when another instance of
// its class is already present, and returns the entry's key. Adding the
// same pointer again returns its existing key.
func (r *Registry) AddInstance(obj any) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.addInstanceLocked(obj).Key
}

// HooksFor returns the entry holding obj itself, or else the entry for
// obj's class.
func (r *Registry) HooksFor(obj any) (HookedObject, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry := r.findInstanceLocked(obj); entry != nil {
		return entry.clone(), true
	}
	entry, ok := r.objects[ClassName(obj)]
	if !ok {
		return HookedObject{}, false
	}
	return entry.clone(), true
}

// Len returns the number of entries in the registry.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}

func (r *Registry) addObjectLocked(obj any) *HookedObject {
	class := ClassName(obj)
	if entry, ok := r.objects[class]; ok {
		return entry
	}
	return r.newEntryLocked(class, obj)
}

func (r *Registry) addInstanceLocked(obj any) *HookedObject {
	if entry := r.findInstanceLocked(obj); entry != nil {
		return entry
	}
	return r.newEntryLocked(ClassName(obj), obj)
}

// findInstanceLocked returns the entry whose instance is the same pointer as obj.
func (r *Registry) findInstanceLocked(obj any) *HookedObject {
	class := ClassName(obj)
	for n := 1; n <= r.instances[class]; n++ {
		if entry := r.objects[instanceKey(class, n)]; entry != nil && samePointer(entry.Instance, obj) {
			return entry
		}
	}
	return nil
}

func (r *Registry) newEntryLocked(class string, obj any) *HookedObject {
	r.instances[class]++
	key := instanceKey(class, r.instances[class])

	entry := &HookedObject{Key: key, Class: class, Instance: obj, Hooks: []Record{}}
	r.objects[key] = entry
	r.order = append(r.order, key)
	return entry
}

// appendHook appends rec to the entry under key.
func (r *Registry) appendHook(key string, rec Record) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.objects[key]; ok {
		entry.Hooks = append(entry.Hooks, rec)
	}
}

// instance returns the stored instance for a dump key.
func (r *Registry) instance(key string) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.objects[key]
	if !ok {
		return nil, false
	}
	return entry.Instance, true
}

func (h *HookedObject) clone() HookedObject {
	return HookedObject{
		Key:      h.Key,
		Class:    h.Class,
		Instance: h.Instance,
		Hooks:    append([]Record{}, h.Hooks...),
	}
}

func instanceKey(class string, n int) string {
	if n == 1 {
		return class
	}
	return fmt.Sprintf("%s#%d", class, n)
}

func samePointer(a, b any) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	return va.Kind() == reflect.Pointer && vb.Kind() == reflect.Pointer &&
		va.Type() == vb.Type() && va.Pointer() == vb.Pointer()
}
