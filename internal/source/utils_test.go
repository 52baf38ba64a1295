package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	tmp := t.TempDir()

	baseDir := filepath.Join(tmp, "base")
	otherDir := filepath.Join(tmp, "other")

	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		t.Fatalf("failed to create base dir: %v", err)
	}
	if err := os.MkdirAll(otherDir, 0o755); err != nil {
		t.Fatalf("failed to create other dir: %v", err)
	}

	target := filepath.Join(otherDir, "file.c")

	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if want := normalizePath(target); got != want {
		t.Fatalf("RelativePath = %q, want %q", got, want)
	}
}

func TestRelativePathInsideBase(t *testing.T) {
	tmp := t.TempDir()
	got, err := RelativePath(filepath.Join(tmp, "src", "a.c"), tmp)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if got != "src/a.c" {
		t.Fatalf("RelativePath = %q, want src/a.c", got)
	}
}

func TestNormalizeCRLF(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\r\nb\rc"))
	if !changed || string(out) != "a\nb\rc" {
		t.Fatalf("normalizeCRLF = %q, %v", out, changed)
	}
	out, changed = normalizeCRLF([]byte("plain"))
	if changed || string(out) != "plain" {
		t.Fatalf("normalizeCRLF fast path = %q, %v", out, changed)
	}
}
