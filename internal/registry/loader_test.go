package registry

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadDirFiltersArtifacts(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "resnet18.pt")
	touch(t, dir, "bert.PTH")
	touch(t, dir, "notes.txt")
	if err := os.Mkdir(filepath.Join(dir, "sub.pt"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	models, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(models) != 2 {
		t.Fatalf("expected 2 models got %d: %v", len(models), models)
	}
	for _, m := range models {
		if m.ID == "" || m.Name == "" {
			t.Fatalf("missing id/name: %+v", m)
		}
		if !filepath.IsAbs(m.Path) {
			t.Fatalf("path not absolute: %s", m.Path)
		}
		if m.Format != "torchscript" {
			t.Fatalf("format = %s", m.Format)
		}
	}
}

func TestLoadDirMissing(t *testing.T) {
	if _, err := LoadDir(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatalf("expected error for missing dir")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}
	got, err := expandHome("~/models")
	if err != nil {
		t.Fatalf("expandHome: %v", err)
	}
	if got != filepath.Join(home, "models") {
		t.Fatalf("expandHome = %s", got)
	}
	got, err = expandHome("/abs/path")
	if err != nil || got != "/abs/path" {
		t.Fatalf("absolute path mangled: %s, %v", got, err)
	}
}
