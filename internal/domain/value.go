package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueKind tags the shape held by a Value.
type ValueKind int

const (
	ValueAbsent ValueKind = iota
	ValueString
	ValueBool
	ValueList
)

func (k ValueKind) String() string {
	switch k {
	case ValueAbsent:
		return "absent"
	case ValueString:
		return "string"
	case ValueBool:
		return "bool"
	case ValueList:
		return "list"
	default:
		return "unknown(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a closed variant over the shapes a document field or merged field can take.
// The zero Value is absent.
type Value struct {
	kind ValueKind
	str  string
	b    bool
	list []string
}

func Absent() Value { return Value{} }

func StringValue(s string) Value { return Value{kind: ValueString, str: s} }

func BoolValue(b bool) Value { return Value{kind: ValueBool, b: b} }

// ListValue copies items so the Value never aliases caller memory.
func ListValue(items []string) Value {
	cp := make([]string, len(items))
	copy(cp, items)
	return Value{kind: ValueList, list: cp}
}

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) IsAbsent() bool { return v.kind == ValueAbsent }

func (v Value) Str() (string, bool) {
	return v.str, v.kind == ValueString
}

func (v Value) Bool() (bool, bool) {
	return v.b, v.kind == ValueBool
}

// List returns a copy of the list items.
func (v Value) List() ([]string, bool) {
	if v.kind != ValueList {
		return nil, false
	}
	cp := make([]string, len(v.list))
	copy(cp, v.list)
	return cp, true
}

// Len is the number of list items, or 0 for non-list values.
func (v Value) Len() int {
	if v.kind != ValueList {
		return 0
	}
	return len(v.list)
}

// Truthy follows the usual reading of a merged value: true, a non-empty string, a non-empty list.
func (v Value) Truthy() bool {
	switch v.kind {
	case ValueBool:
		return v.b
	case ValueString:
		return v.str != ""
	case ValueList:
		return len(v.list) > 0
	default:
		return false
	}
}

// Any converts the value into plain Go data (nil, string, bool, []string).
func (v Value) Any() any {
	switch v.kind {
	case ValueString:
		return v.str
	case ValueBool:
		return v.b
	case ValueList:
		items, _ := v.List()
		return items
	default:
		return nil
	}
}

func (v Value) String() string {
	switch v.kind {
	case ValueString:
		return strconv.Quote(v.str)
	case ValueBool:
		return strconv.FormatBool(v.b)
	case ValueList:
		quoted := make([]string, len(v.list))
		for i, s := range v.list {
			quoted[i] = strconv.Quote(s)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	case ValueAbsent:
		return "<absent>"
	default:
		return fmt.Sprintf("<%s>", v.kind)
	}
}

// Equal reports deep equality.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case ValueString:
		return v.str == o.str
	case ValueBool:
		return v.b == o.b
	case ValueList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if v.list[i] != o.list[i] {
				return false
			}
		}
	}
	return true
}
