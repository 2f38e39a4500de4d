package domain

import "fmt"

// Record is the merged view of one target: an ordered mapping from field name to value.
// Fields keep the order in which they were first set.
type Record struct {
	target string
	keys   []string
	values map[string]Value
	frozen bool
}

func NewRecord(target string) *Record {
	return &Record{
		target: target,
		values: map[string]Value{},
	}
}

// Target is the name of the target the record was built for.
func (r *Record) Target() string { return r.target }

func (r *Record) Get(key string) (Value, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Lookup returns the stored value or Absent.
func (r *Record) Lookup(key string) Value {
	return r.values[key]
}

// Set stores a value. Writing to a frozen record panics.
func (r *Record) Set(key string, v Value) {
	if r.frozen {
		panic(fmt.Sprintf("domain: set %q on frozen record %q", key, r.target))
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = v
}

func (r *Record) Freeze() { r.frozen = true }

func (r *Record) Frozen() bool { return r.frozen }

func (r *Record) Len() int { return len(r.keys) }

func (r *Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Map converts the record into plain Go data keyed by field name.
func (r *Record) Map() map[string]any {
	out := make(map[string]any, len(r.keys))
	for _, k := range r.keys {
		out[k] = r.values[k].Any()
	}
	return out
}
