package rules

import (
	"fmt"

	"github.com/o11c/targets/internal/domain"
)

// document names the document a checker failure should point at: the one being
// merged, or the target itself during the defaulting pass.
func document(s Scope) string {
	if cur := s.Current(); cur != "" {
		return cur
	}
	return s.TargetDocument()
}

func invalid(s Scope, key, format string, args ...any) error {
	return domain.NewOpError("rules.check", domain.KindValidation, document(s), key, "%s", fmt.Sprintf(format, args...))
}

// requireString returns the string held by val, failing when it is absent or another shape.
func requireString(s Scope, key string, val domain.Value) (string, error) {
	if val.IsAbsent() {
		return "", invalid(s, key, "%q not defined for %s", key, s.Target())
	}
	str, ok := val.Str()
	if !ok {
		return "", invalid(s, key, "expected a string, got %s %s", val.Kind(), val)
	}
	return str, nil
}

func requireList(s Scope, key string, val domain.Value) ([]string, error) {
	items, ok := val.List()
	if !ok {
		return nil, invalid(s, key, "expected a list, got %s %s", val.Kind(), val)
	}
	return items, nil
}

func requireUnset(s Scope, key string, old domain.Value) error {
	if !old.IsAbsent() {
		return invalid(s, key, "%q not unique for %s (already %s)", key, s.Target(), old)
	}
	return nil
}

func firstDuplicate(items []string) (string, bool) {
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			return it, true
		}
		seen[it] = struct{}{}
	}
	return "", false
}
