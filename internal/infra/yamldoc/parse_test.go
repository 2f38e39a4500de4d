package yamldoc

import (
	"strings"
	"testing"

	"github.com/o11c/targets/internal/domain"
)

func TestParse_ScalarsStayTextual(t *testing.T) {
	doc, err := Parse("t.yml", []byte("freestanding: true\nint: 32\nvariant_flags:\nlibc: ~\n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if v, _ := doc.Get("freestanding"); !v.Equal(domain.StringValue("true")) {
		t.Fatalf("expected literal string true, got %s", v)
	}
	if v, _ := doc.Get("int"); !v.Equal(domain.StringValue("32")) {
		t.Fatalf("expected literal string 32, got %s", v)
	}
	for _, k := range []string{"variant_flags", "libc"} {
		if v, ok := doc.Get(k); !ok || !v.IsAbsent() {
			t.Fatalf("expected %s to be present and absent-valued, got %s", k, v)
		}
	}
}

func TestParse_EmptyDocuments(t *testing.T) {
	for _, in := range []string{"", "\n", "---\n", "~\n", "# only a comment\n"} {
		doc, err := Parse("empty.yml", []byte(in))
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", in, err)
		}
		if len(doc.Fields) != 0 {
			t.Fatalf("Parse(%q) expected no fields, got %v", in, doc.Keys())
		}
	}
}

func TestParse_Rejects(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"list root", "- a\n- b\n", "expected a mapping"},
		{"scalar root", "hello\n", "expected a mapping"},
		{"duplicate key", "arch: a\narch: b\n", "duplicate key"},
		{"nested mapping", "arch:\n  name: x\n", "unsupported mapping"},
		{"nested list", "cpp:\n  - [a, b]\n", "must be a scalar"},
		{"null list item", "cpp:\n  - ~\n", "must be a scalar"},
		{"sequence key", "? [a, b]\n: c\n", "unhashable"},
		{"malformed", "arch: [unterminated\n", "yamldoc.parse"},
		{"second document", "a: 1\n---\na: 2\n", "expected a single document"},
		{"malformed second document", "a: x\n---\nfoo: [\n", "expected a single document"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse("bad.yml", []byte(c.in))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !domain.IsKind(err, domain.KindParse) {
				t.Fatalf("expected KindParse, got %v", err)
			}
			if !strings.Contains(err.Error(), c.want) {
				t.Fatalf("expected %q in %v", c.want, err)
			}
			if !strings.Contains(err.Error(), "bad.yml") {
				t.Fatalf("expected document name in %v", err)
			}
		})
	}
}

func TestParse_AliasesAndMergeKeys(t *testing.T) {
	in := `
base: &sizes
  short: "16"
  int: "32"
<<: *sizes
cpp: &conds [A, B]
long: "64"
`
	_, err := Parse("m.yml", []byte(in))
	if err == nil {
		t.Fatalf("expected nested mapping value to be rejected")
	}

	in = `
<<: {short: "16", int: "32"}
long: "64"
`
	doc, err := Parse("m.yml", []byte(in))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got := strings.Join(doc.Keys(), ","); got != "short,int,long" {
		t.Fatalf("unexpected keys %s", got)
	}

	_, err = Parse("m.yml", []byte("<<: {int: \"32\"}\nint: \"64\"\n"))
	if !domain.IsKind(err, domain.KindParse) {
		t.Fatalf("expected merged and explicit key to collide, got %v", err)
	}
}
