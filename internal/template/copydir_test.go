package template

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCopyDir(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "Cargo.toml"), "[package]\n")
	writeFile(t, filepath.Join(src, "src", "main.rs"), "fn main() {}\n")
	writeFile(t, filepath.Join(src, ".cargo", "config.toml"), "[build]\n")

	dst := filepath.Join(t.TempDir(), "project")
	if err := CopyDir(src, dst); err != nil {
		t.Fatalf("CopyDir returned error: %v", err)
	}

	for _, rel := range []string{"Cargo.toml", "src/main.rs", ".cargo/config.toml"} {
		if _, err := os.Stat(filepath.Join(dst, rel)); err != nil {
			t.Errorf("%s not copied: %v", rel, err)
		}
	}
	if got := readFile(t, filepath.Join(dst, "src", "main.rs")); got != "fn main() {}\n" {
		t.Fatalf("copied content = %q", got)
	}
}

func TestCopyDirRequiresDirectory(t *testing.T) {
	src := filepath.Join(t.TempDir(), "file.txt")
	writeFile(t, src, "not a template")

	err := CopyDir(src, t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "not a directory") {
		t.Fatalf("error = %v, want not a directory", err)
	}
}

func TestCopyDirMissingSource(t *testing.T) {
	err := CopyDir(filepath.Join(t.TempDir(), "absent"), t.TempDir())
	if err == nil {
		t.Fatal("CopyDir succeeded on a missing source")
	}
}
