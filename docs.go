package dochooks

import (
	"reflect"
)

// Registrable is implemented by types that carry their methods' doc comments.
// The generator writes DocHooks for every type with annotated methods.
type Registrable interface {
	// DocHooks maps method names to their hook annotations.
	DocHooks() map[string]string
}

// Docs supplies doc comments for types that cannot implement Registrable.
// It maps class name to method name to doc text.
type Docs map[string]map[string]string

// maxEmbedDepth bounds the walk over embedded fields.
const maxEmbedDepth = 8

// ClassName returns the package-qualified name of v's concrete type,
// with pointers dereferenced.
func ClassName(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return "<nil>"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" || t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

// Enabled reports whether doc metadata is available for obj's type.
func Enabled(obj any) bool {
	_, ok := registrableDocs(reflect.ValueOf(obj))
	return ok
}

// lookupDocs gathers method docs for target: its own DocHooks first,
// then those of embedded fields, then the fallback table.
func lookupDocs(target any, table Docs) map[string]string {
	docs := make(map[string]string)
	collectDocs(reflect.ValueOf(target), docs, 0)

	for method, doc := range table[ClassName(target)] {
		if _, ok := docs[method]; !ok {
			docs[method] = doc
		}
	}
	return docs
}

func collectDocs(v reflect.Value, into map[string]string, depth int) {
	if !v.IsValid() || depth > maxEmbedDepth {
		return
	}

	if own, ok := registrableDocs(v); ok {
		mergeDocs(into, own)
	}

	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if !t.Field(i).Anonymous {
			continue
		}
		fv := v.Field(i)
		if !fv.CanInterface() {
			continue
		}
		if fv.Kind() != reflect.Pointer && fv.CanAddr() {
			fv = fv.Addr()
		}
		collectDocs(fv, into, depth+1)
	}
}

// registrableDocs calls DocHooks on v, or on a pointer copy of v when only
// *T implements Registrable.
func registrableDocs(v reflect.Value) (map[string]string, bool) {
	if !v.IsValid() || !v.CanInterface() {
		return nil, false
	}
	if r, ok := v.Interface().(Registrable); ok {
		return r.DocHooks(), true
	}
	if v.Kind() != reflect.Pointer {
		p := reflect.New(v.Type())
		p.Elem().Set(v)
		if r, ok := p.Interface().(Registrable); ok {
			return r.DocHooks(), true
		}
	}
	return nil, false
}

func mergeDocs(into, from map[string]string) {
	for method, doc := range from {
		if _, ok := into[method]; !ok {
			into[method] = doc
		}
	}
}
