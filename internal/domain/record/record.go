package record

import (
	"fmt"
	"sort"

	"github.com/vantaworks/vectoradmin/internal/domain/schema"
)

// Record is a typed document: one Value per present property, keyed by the
// sanitized property name.
type Record struct {
	values map[string]Value
}

// New creates an empty record.
func New() Record {
	return Record{values: make(map[string]Value)}
}

// Set stores a value under the given property name.
func (r Record) Set(name string, v Value) {
	r.values[name] = v
}

// Get returns the value for a property name.
func (r Record) Get(name string) (Value, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Len returns the number of set properties.
func (r Record) Len() int { return len(r.values) }

// Names returns the set property names in sorted order.
func (r Record) Names() []string {
	names := make([]string, 0, len(r.values))
	for name := range r.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ToWire converts the record into a remote object property map.
func (r Record) ToWire() map[string]any {
	out := make(map[string]any, len(r.values))
	for name, v := range r.values {
		out[name] = v.ToWire()
	}
	return out
}

// FromRaw builds a typed record by coercing a raw name→value mapping against
// the collection's property definitions. Keys absent from the mapping are
// skipped; keys not covered by any definition are ignored (extra upload
// columns are tolerated). Coercion failures name the offending property.
func FromRaw(raw map[string]any, defs []schema.PropertyDef) (Record, error) {
	rec := New()
	for _, def := range defs {
		rv, ok := raw[def.Name()]
		if !ok {
			continue
		}
		if s, isStr := rv.(string); isStr && s == "" && def.DataType() != schema.Text {
			continue
		}
		v, err := Coerce(def.DataType(), rv)
		if err != nil {
			return Record{}, fmt.Errorf("property %q: %w", def.Name(), err)
		}
		rec.Set(def.Name(), v)
	}
	return rec, nil
}
