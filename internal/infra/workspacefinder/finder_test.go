package workspacefinder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/o11c/targets/internal/domain"
)

func TestFindRoot_FindsWorkspaceFromNestedDir(t *testing.T) {
	tmp := t.TempDir()
	root := filepath.Join(tmp, "ws")
	nested := filepath.Join(root, "triple", "sub")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	if err := os.WriteFile(filepath.Join(root, "targets.toml"), []byte("[documents]\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	f := NewFinder("targets.yaml", "targets.toml")
	got, err := f.FindRoot(nested)
	if err != nil {
		t.Fatalf("FindRoot returned error: %v", err)
	}
	if got != root {
		t.Fatalf("expected root=%s, got=%s", root, got)
	}
}

func TestFindRoot_FromFilePath(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "targets.yaml"), nil, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	got, err := NewFinder("targets.yaml").FindRoot(filepath.Join(root, "targets.yaml"))
	if err != nil {
		t.Fatalf("FindRoot returned error: %v", err)
	}
	if got != root {
		t.Fatalf("expected root=%s, got=%s", root, got)
	}
}

func TestFindRoot_NotFound(t *testing.T) {
	tmp := t.TempDir()
	_ = os.MkdirAll(filepath.Join(tmp, "a", "b"), 0o755)

	f := NewFinder("targets-marker-that-does-not-exist.yaml")
	_, err := f.FindRoot(filepath.Join(tmp, "a", "b"))
	if err == nil {
		t.Fatalf("expected error")
	}

	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got: %v", err)
	}
}

func TestFindRoot_EmptyStart(t *testing.T) {
	if _, err := NewFinder("targets.yaml").FindRoot(""); !domain.IsKind(err, domain.KindValidation) {
		t.Fatalf("expected KindValidation, got %v", err)
	}
}
