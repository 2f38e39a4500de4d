package domain

// Field is one key/value entry of a Document, in source order.
type Field struct {
	Key   string
	Value Value
}

// Document is a parsed target-definition file. It is produced once per file name
// and treated as immutable afterwards.
type Document struct {
	Name   string
	Fields []Field
}

func (d Document) Get(key string) (Value, bool) {
	for _, f := range d.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

func (d Document) Keys() []string {
	out := make([]string, 0, len(d.Fields))
	for _, f := range d.Fields {
		out = append(out, f.Key)
	}
	return out
}
