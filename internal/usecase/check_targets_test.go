package usecase

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/o11c/targets/internal/domain"
)

type fakeTargetLoader struct {
	records map[string]*domain.Record
	errs    map[string]error
	calls   []string
}

func (f *fakeTargetLoader) LoadTarget(name string) (*domain.Record, error) {
	f.calls = append(f.calls, name)
	if err := f.errs[name]; err != nil {
		return nil, err
	}
	return f.records[name], nil
}

func fullRecord(target string) *domain.Record {
	r := domain.NewRecord(target)
	r.Set("short", domain.StringValue("16"))
	r.Set("int", domain.StringValue("32"))
	r.Set("long_long", domain.StringValue("64"))
	r.Set("default_char_sign", domain.StringValue("signed"))
	r.Set("cpp", domain.ListValue([]string{"__GNUC__", "__linux__"}))
	r.Set("arch", domain.StringValue("x86_64"))
	r.Set("endian", domain.StringValue("little"))
	r.Set("long", domain.StringValue("64"))
	r.Set("size", domain.StringValue("64"))
	r.Set("ptr", domain.StringValue("64"))
	r.Set("reg", domain.StringValue("64"))
	r.Set("obj", domain.StringValue("64"))
	r.Set("kernel", domain.StringValue("linux"))
	r.Set("libc", domain.StringValue("glibc"))
	r.Set("triples", domain.ListValue([]string{target}))
	r.Set("variants", domain.ListValue([]string{target}))
	r.Set("variant_flags", domain.StringValue(""))
	r.Set("freestanding", domain.BoolValue(false))
	r.Set("requires", domain.ListValue(nil))
	r.Freeze()
	return r
}

func TestCheckTargets_ReportsEachTarget(t *testing.T) {
	loader := &fakeTargetLoader{records: map[string]*domain.Record{
		"triple/x86_64-linux-gnu": fullRecord("x86_64-linux-gnu"),
		"triple/i686-linux-gnu":   fullRecord("i686-linux-gnu"),
	}}

	uc := NewCheckTargets(loader)
	reports, err := uc.Execute(context.Background(), []string{"triple/x86_64-linux-gnu", "triple/i686-linux-gnu"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}
	if reports[1].Target.Name() != "i686-linux-gnu" {
		t.Fatalf("unexpected target name %q", reports[1].Target.Name())
	}
	if reports[0].Target.Arch != "x86_64" || reports[0].Target.Libc != "glibc" {
		t.Fatalf("unexpected decoded target %+v", reports[0].Target)
	}
	if !reflect.DeepEqual(reports[0].Target.Cpp, []string{"__GNUC__", "__linux__"}) {
		t.Fatalf("unexpected cpp %v", reports[0].Target.Cpp)
	}
}

func TestCheckTargets_StopsAtFirstFailure(t *testing.T) {
	loadErr := domain.NewOpError("merge.resolve", domain.KindCycle, "misc/a", "import", "misc/a -> misc/a")
	loader := &fakeTargetLoader{
		records: map[string]*domain.Record{"ok": fullRecord("ok")},
		errs:    map[string]error{"bad": loadErr},
	}

	uc := NewCheckTargets(loader)
	reports, err := uc.Execute(context.Background(), []string{"ok", "bad", "never"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, loadErr) || !domain.IsKind(err, domain.KindCycle) {
		t.Fatalf("expected wrapped cycle error, got %v", err)
	}
	if !strings.Contains(err.Error(), `"bad"`) {
		t.Fatalf("expected target name in error, got %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("expected the report of the first target, got %d", len(reports))
	}
	if !reflect.DeepEqual(loader.calls, []string{"ok", "bad"}) {
		t.Fatalf("expected loading to stop, calls=%v", loader.calls)
	}
}

func TestCheckTargets_RequiresTargets(t *testing.T) {
	_, err := NewCheckTargets(&fakeTargetLoader{}).Execute(context.Background(), nil)
	if !domain.IsKind(err, domain.KindValidation) {
		t.Fatalf("expected KindValidation, got %v", err)
	}
}

func TestCheckTargets_RejectsFlagLikeNames(t *testing.T) {
	loader := &fakeTargetLoader{}
	_, err := NewCheckTargets(loader).Execute(context.Background(), []string{"-v"})
	if !domain.IsKind(err, domain.KindValidation) {
		t.Fatalf("expected KindValidation, got %v", err)
	}
	if len(loader.calls) != 0 {
		t.Fatalf("loader must not be called, calls=%v", loader.calls)
	}
}

func TestCheckTargets_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel before Execute

	_, err := NewCheckTargets(&fakeTargetLoader{}).Execute(ctx, []string{"x"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDecodeTarget_RejectsIncompleteRecord(t *testing.T) {
	r := domain.NewRecord("t")
	r.Set("arch", domain.StringValue("x86_64"))

	if _, err := DecodeTarget(r); !domain.IsKind(err, domain.KindValidation) {
		t.Fatalf("expected KindValidation for missing fields, got %v", err)
	}
}

func TestDecodeTarget_RejectsUnknownField(t *testing.T) {
	r := domain.NewRecord("t")
	for k, v := range fullRecord("t").Map() {
		switch val := v.(type) {
		case string:
			r.Set(k, domain.StringValue(val))
		case bool:
			r.Set(k, domain.BoolValue(val))
		case []string:
			r.Set(k, domain.ListValue(val))
		}
	}
	r.Set("abi", domain.StringValue("sysv"))

	if _, err := DecodeTarget(r); !domain.IsKind(err, domain.KindValidation) {
		t.Fatalf("expected KindValidation for unknown field, got %v", err)
	}
}
