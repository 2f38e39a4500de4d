package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetup_StderrLevels(t *testing.T) {
	var buf bytes.Buffer
	cleanup, err := Setup(Config{Stderr: &buf})
	if err != nil {
		t.Fatalf("Setup error: %v", err)
	}
	defer func() { _ = cleanup() }()

	if err := IsReady(); err != nil {
		t.Fatalf("expected ready logger: %v", err)
	}

	L().Info("hidden")
	L().Warn("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestSetup_DebugFile(t *testing.T) {
	root := t.TempDir()
	cleanup, err := Setup(Config{Root: root, Debug: true, File: filepath.Join("logs", "targets.log")})
	if err != nil {
		t.Fatalf("Setup error: %v", err)
	}

	L().Debug("merge.document.enter", "document", "misc/default")
	want := filepath.Join(root, "logs", "targets.log")
	if Path() != want {
		t.Fatalf("expected path %s, got %s", want, Path())
	}
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup error: %v", err)
	}

	b, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), `"document":"misc/default"`) {
		t.Fatalf("expected JSON debug line, got %s", b)
	}
	if IsReady() == nil {
		t.Fatalf("expected logger reset after cleanup")
	}
}
