package merge

import "github.com/o11c/targets/internal/domain"

var absent = domain.Absent()

// finalize fills every registered field nobody set by calling its checker with no
// input, then runs the cross-field invariants.
func (e *Engine) finalize(r *resolution) error {
	for _, field := range e.rules.Fields() {
		if _, ok := r.record.Get(field); ok {
			continue
		}
		check, _ := e.rules.Lookup(field)
		v, err := check(r, field, absent, absent)
		if err != nil {
			return err
		}
		r.record.Set(field, v)
	}

	for _, inv := range e.rules.Invariants() {
		if err := inv(r, r.record); err != nil {
			return err
		}
	}
	return nil
}
