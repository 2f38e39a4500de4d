// Package merge resolves a target document and everything it imports into a single
// validated record.
package merge

import (
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/o11c/targets/internal/domain"
	"github.com/o11c/targets/internal/ports"
	"github.com/o11c/targets/internal/rules"
)

const (
	DefaultBaseDocument = "misc/default"
	DefaultExtension    = ".yml"
)

// Engine loads targets through a DocumentStore. An Engine holds no per-target state
// and can load any number of targets in sequence.
type Engine struct {
	store ports.DocumentStore
	rules *rules.Set
	base  string
	ext   string
	log   *slog.Logger
}

type Option func(*Engine)

// WithBaseDocument sets the document merged before every target. An empty name keeps the default.
func WithBaseDocument(name string) Option {
	return func(e *Engine) {
		if name != "" {
			e.base = name
		}
	}
}

// WithExtension sets the file extension appended to document names.
func WithExtension(ext string) Option {
	return func(e *Engine) {
		if ext != "" {
			e.ext = ext
		}
	}
}

func WithRules(s *rules.Set) Option {
	return func(e *Engine) {
		if s != nil {
			e.rules = s
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

func New(store ports.DocumentStore, opts ...Option) *Engine {
	e := &Engine{
		store: store,
		rules: rules.Default(),
		base:  DefaultBaseDocument,
		ext:   DefaultExtension,
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var _ ports.TargetLoader = (*Engine)(nil)

// Normalize strips the document extension from a requested target name.
func (e *Engine) Normalize(name string) string {
	return strings.TrimSuffix(name, e.ext)
}

// LoadTarget merges the base document and the target document (with their imports)
// and finalizes the result. On error no record is returned.
func (e *Engine) LoadTarget(name string) (*domain.Record, error) {
	doc := e.Normalize(name)
	r := newResolution(e, doc)

	e.log.Debug("merge.target.start", "target", r.target, "document", doc)

	if err := r.resolve(e.base); err != nil {
		return nil, err
	}
	if err := r.resolve(doc); err != nil {
		return nil, err
	}
	if err := e.finalize(r); err != nil {
		return nil, err
	}

	r.record.Freeze()
	e.log.Debug("merge.target.done", "target", r.target, "documents", len(r.resolved), "fields", r.record.Len())
	return r.record, nil
}

// resolution is the state of one LoadTarget call. active and resolved are disjoint.
type resolution struct {
	e        *Engine
	target   string
	doc      string
	active   []string
	onStack  map[string]bool
	resolved map[string]bool
	record   *domain.Record
}

func newResolution(e *Engine, doc string) *resolution {
	target := path.Base(doc)
	return &resolution{
		e:        e,
		target:   target,
		doc:      doc,
		onStack:  map[string]bool{},
		resolved: map[string]bool{},
		record:   domain.NewRecord(target),
	}
}

var _ rules.Scope = (*resolution)(nil)

func (r *resolution) Target() string         { return r.target }
func (r *resolution) TargetDocument() string { return r.doc }

func (r *resolution) Active() []string {
	out := make([]string, len(r.active))
	copy(out, r.active)
	return out
}

func (r *resolution) Current() string {
	if len(r.active) == 0 {
		return ""
	}
	return r.active[len(r.active)-1]
}

func (r *resolution) DocumentExists(name string) bool {
	return r.e.store.DocumentExists(name + r.e.ext)
}

func (r *resolution) resolve(name string) error {
	if r.resolved[name] {
		r.e.log.Debug("merge.document.skip", "target", r.target, "document", name)
		return nil
	}
	if name == "" || strings.Contains(name, ".") {
		return domain.NewOpError("merge.resolve", domain.KindValidation, r.Current(), rules.ImportKey,
			"invalid document name %q", name)
	}
	if r.onStack[name] {
		return domain.NewOpError("merge.resolve", domain.KindCycle, name, rules.ImportKey,
			"%s", strings.Join(append(r.cycleFrom(name), name), " -> "))
	}

	r.active = append(r.active, name)
	r.onStack[name] = true
	r.e.log.Debug("merge.document.enter", "target", r.target, "document", name, "depth", len(r.active))

	filename := name + r.e.ext
	doc, err := r.e.store.LoadDocument(filename)
	if err != nil {
		return err
	}

	for _, f := range doc.Fields {
		if f.Key == rules.ImportKey {
			if err := r.imports(filename, f.Value); err != nil {
				return err
			}
			continue
		}

		check, ok := r.e.rules.Lookup(f.Key)
		if !ok {
			return domain.NewOpError("merge.resolve", domain.KindUnknownField, filename, f.Key,
				"invalid key %q in %s", f.Key, filename)
		}
		merged, err := check(r, f.Key, f.Value, r.record.Lookup(f.Key))
		if err != nil {
			return err
		}
		r.record.Set(f.Key, merged)
	}

	r.active = r.active[:len(r.active)-1]
	delete(r.onStack, name)
	r.resolved[name] = true
	return nil
}

func (r *resolution) imports(filename string, v domain.Value) error {
	names, ok := v.List()
	if !ok {
		return domain.NewOpError("merge.resolve", domain.KindValidation, filename, rules.ImportKey,
			"expected a list of document names, got %s %s", v.Kind(), v)
	}
	for _, n := range names {
		if err := r.resolve(n); err != nil {
			return err
		}
	}
	return nil
}

// cycleFrom returns the part of the import stack starting at name.
func (r *resolution) cycleFrom(name string) []string {
	for i, a := range r.active {
		if a == name {
			return r.Active()[i:]
		}
	}
	return r.Active()
}
