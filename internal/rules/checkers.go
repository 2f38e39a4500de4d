package rules

import (
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/o11c/targets/internal/domain"
)

// UniqueRequired accepts a string exactly once and never defaults.
func UniqueRequired(s Scope, key string, val, old domain.Value) (domain.Value, error) {
	if err := requireUnset(s, key, old); err != nil {
		return domain.Value{}, err
	}
	str, err := requireString(s, key, val)
	if err != nil {
		return domain.Value{}, err
	}
	return domain.StringValue(str), nil
}

// UniqueOptional accepts a string at most once; an unset field defaults to "".
func UniqueOptional(s Scope, key string, val, old domain.Value) (domain.Value, error) {
	if err := requireUnset(s, key, old); err != nil {
		return domain.Value{}, err
	}
	if val.IsAbsent() {
		return domain.StringValue(""), nil
	}
	str, err := requireString(s, key, val)
	if err != nil {
		return domain.Value{}, err
	}
	return domain.StringValue(str), nil
}

// Override accepts a string from any document; the last one merged wins.
// It has no default, so a field nobody sets fails during finalization.
func Override(s Scope, key string, val, _ domain.Value) (domain.Value, error) {
	str, err := requireString(s, key, val)
	if err != nil {
		return domain.Value{}, err
	}
	return domain.StringValue(str), nil
}

// Boolean maps the literals "true" and "false"; unset means false.
func Boolean(s Scope, key string, val, _ domain.Value) (domain.Value, error) {
	if val.IsAbsent() {
		return domain.BoolValue(false), nil
	}
	if b, ok := val.Bool(); ok {
		return domain.BoolValue(b), nil
	}
	str, err := requireString(s, key, val)
	if err != nil {
		return domain.Value{}, err
	}
	switch str {
	case "true":
		return domain.BoolValue(true), nil
	case "false":
		return domain.BoolValue(false), nil
	default:
		return domain.Value{}, invalid(s, key, "expected true or false, got %q", str)
	}
}

// OneOf builds a checker for a field that must always be set to one of allowed.
func OneOf(allowed ...string) Checker {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	sorted := append([]string(nil), allowed...)
	sort.Strings(sorted)

	return func(s Scope, key string, val, _ domain.Value) (domain.Value, error) {
		str, err := requireString(s, key, val)
		if err != nil {
			return domain.Value{}, err
		}
		if _, ok := set[str]; !ok {
			return domain.Value{}, invalid(s, key, "value %q not in {%s}", str, strings.Join(sorted, ", "))
		}
		return domain.StringValue(str), nil
	}
}

// Accumulate builds a list checker that appends each document's items to the merged
// list in encounter order. match validates a single item; it returns false to reject it.
func Accumulate(match func(string) bool) Checker {
	return func(s Scope, key string, val, old domain.Value) (domain.Value, error) {
		if val.IsAbsent() {
			if old.IsAbsent() {
				return domain.ListValue(nil), nil
			}
			return old, nil
		}
		items, err := requireList(s, key, val)
		if err != nil {
			return domain.Value{}, err
		}
		for _, it := range items {
			if !match(it) {
				return domain.Value{}, invalid(s, key, "malformed entry %q", it)
			}
		}

		var merged []string
		if !old.IsAbsent() {
			prev, err := requireList(s, key, old)
			if err != nil {
				return domain.Value{}, err
			}
			merged = prev
		}
		return domain.ListValue(append(merged, items...)), nil
	}
}

const (
	cppIdent = `[A-Za-z_][A-Za-z_0-9]*`
	cppInt   = `(?:0[Bb][01]+|0[0-7]*|[1-9][0-9]*|0[Xx][0-9A-Fa-f]+)`
	cppAtom  = `(?:` + cppIdent + `|` + cppInt + `)`
	cppTerm  = `(?:[!?]?(?:` + cppIdent + `|` + cppIdent + ` == ` + cppAtom + `))`
	cppAlts  = `(?:` + cppTerm + `(?: \|\| ` + cppTerm + `)*)`
)

var cppCondition = regexp.MustCompile(`^` + cppAlts + `$`)

// IsCppCondition reports whether s is a preprocessor-style condition: one or more
// terms joined by " || ", each an identifier, a negated identifier, or
// "IDENT == IDENT|INTEGER".
func IsCppCondition(s string) bool {
	return cppCondition.MatchString(s)
}

// IsRequirement accepts any non-blank single-line entry.
func IsRequirement(s string) bool {
	return strings.TrimSpace(s) != "" && !strings.ContainsAny(s, "\r\n")
}

// CppConditions accumulates strict preprocessor conditions.
var CppConditions = Accumulate(IsCppCondition)

// Requirements accumulates free-form requirement entries.
var Requirements = Accumulate(IsRequirement)

// IdentityList checks the target's own alias list: set once, directly in the target
// document, first entry equal to the target name, no repeats.
func IdentityList(s Scope, key string, val, old domain.Value) (domain.Value, error) {
	if err := requireUnset(s, key, old); err != nil {
		return domain.Value{}, err
	}
	if val.IsAbsent() {
		return domain.Value{}, invalid(s, key, "%q not defined for %s", key, s.Target())
	}
	items, err := requireList(s, key, val)
	if err != nil {
		return domain.Value{}, err
	}

	active := s.Active()
	if len(active) != 1 || active[0] != s.TargetDocument() {
		return domain.Value{}, invalid(s, key, "%q must be in the top document %s, found in %s (import stack %v)",
			key, s.TargetDocument(), s.Current(), active)
	}
	if len(items) == 0 || items[0] != s.Target() {
		first := ""
		if len(items) > 0 {
			first = items[0]
		}
		return domain.Value{}, invalid(s, key, "mismatched first entry %q, want %q", first, s.Target())
	}
	if dup, ok := firstDuplicate(items); ok {
		return domain.Value{}, invalid(s, key, "duplicate alias %q in %s", dup, s.Target())
	}
	return domain.ListValue(items), nil
}

// VariantList checks the set of targets sharing a definition. Unset means the target
// alone. Every entry must name an existing sibling of the target document.
func VariantList(s Scope, key string, val, old domain.Value) (domain.Value, error) {
	if val.IsAbsent() {
		return domain.ListValue([]string{s.Target()}), nil
	}
	if err := requireUnset(s, key, old); err != nil {
		return domain.Value{}, err
	}
	items, err := requireList(s, key, val)
	if err != nil {
		return domain.Value{}, err
	}
	if dup, ok := firstDuplicate(items); ok {
		return domain.Value{}, invalid(s, key, "duplicate variant %q", dup)
	}

	found := false
	for _, it := range items {
		if it == s.Target() {
			found = true
			break
		}
	}
	if !found {
		return domain.Value{}, invalid(s, key, "variants %s do not include %q", val, s.Target())
	}

	dir := path.Dir(s.TargetDocument())
	for _, it := range items {
		sibling := path.Join(dir, it)
		if it == "" || strings.Contains(it, "/") || !s.DocumentExists(sibling) {
			return domain.Value{}, invalid(s, key, "variant %q has no document %s", it, sibling)
		}
	}
	return domain.ListValue(items), nil
}

// Provenance builds a unique-required checker whose value must match the document
// defining it: value v is only accepted from dir/v, with dots spelled as underscores.
func Provenance(dir string) Checker {
	return func(s Scope, key string, val, old domain.Value) (domain.Value, error) {
		out, err := UniqueRequired(s, key, val, old)
		if err != nil {
			return domain.Value{}, err
		}
		str, _ := out.Str()
		want := path.Join(dir, strings.ReplaceAll(str, ".", "_"))
		if s.Current() != want {
			return domain.Value{}, invalid(s, key, "%q = %q must be defined in %s, not %s", key, str, want, s.Current())
		}
		return out, nil
	}
}
