package project

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"cclex/internal/diag"
	"cclex/internal/source"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "lib")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	want := writeManifest(t, root, "[lex]\n")

	got, ok, err := FindManifest(nested)
	if err != nil || !ok {
		t.Fatalf("FindManifest: ok=%v err=%v", ok, err)
	}
	if got != want {
		t.Fatalf("FindManifest = %q, want %q", got, want)
	}

	dir, ok, err := FindProjectRoot(nested)
	if err != nil || !ok || dir != root {
		t.Fatalf("FindProjectRoot = %q, %v, %v", dir, ok, err)
	}
}

func TestLoadManifestDefaultsWithoutFile(t *testing.T) {
	m, ok, err := LoadManifest(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		// a cclex.toml above the temp dir would make this test meaningless
		t.Skip("manifest found above temp dir")
	}
	if !slices.Equal(m.Lex.Extensions, []string{".c", ".h"}) || m.Lex.MaxDiagnostics != DefaultMaxDiagnostics {
		t.Fatalf("unexpected defaults %+v", m.Lex)
	}
}

func TestDecodeManifest(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[lex]
extensions = ["c", ".cc"]
jobs = 3

[cache]
enabled = true
dir = "build/tokens"
`)
	m, err := DecodeManifest(path)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(m.Lex.Extensions, []string{".c", ".cc"}) {
		t.Errorf("extensions not normalized: %v", m.Lex.Extensions)
	}
	if m.Lex.Jobs != 3 || m.Lex.MaxDiagnostics != DefaultMaxDiagnostics {
		t.Errorf("unexpected lex config %+v", m.Lex)
	}
	if !m.Cache.Enabled || m.CacheDir() != filepath.Join(dir, "build", "tokens") {
		t.Errorf("unexpected cache config %+v (dir %s)", m.Cache, m.CacheDir())
	}
	if !m.MatchesExtension("x/y.cc") || m.MatchesExtension("y.h") {
		t.Errorf("MatchesExtension mismatch")
	}
}

func TestDecodeManifestErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", "[lex\njobs = 1\n"},
		{"unknown key", "[lex]\nthreads = 4\n"},
		{"negative jobs", "[lex]\njobs = -1\n"},
		{"empty extensions", "[lex]\nextensions = []\n"},
		{"cache without dir", "[cache]\nenabled = true\ndir = \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tt.body)
			_, err := DecodeManifest(path)
			var me *ManifestError
			if !errors.As(err, &me) {
				t.Fatalf("expected ManifestError, got %v", err)
			}
			if me.Path != path {
				t.Fatalf("error path %q, want %q", me.Path, path)
			}
		})
	}
}

func TestManifestErrorDiagnostic(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[lex]\njobs = \"many\"\n")
	_, err := DecodeManifest(path)
	var me *ManifestError
	if !errors.As(err, &me) {
		t.Fatalf("expected ManifestError, got %v", err)
	}

	fs := source.NewFileSet()
	d, derr := me.Diagnostic(fs)
	if derr != nil {
		t.Fatal(derr)
	}
	if d.Code != diag.ProjInvalidManifest || d.Severity != diag.SevError {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	if int(d.Primary.End) > len(fs.Get(d.Primary.File).Content) {
		t.Fatalf("span out of range: %v", d.Primary)
	}
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteDefault(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	m, err := DecodeManifest(path)
	if err != nil {
		t.Fatalf("default manifest does not decode: %v", err)
	}
	def := DefaultManifest()
	if !slices.Equal(m.Lex.Extensions, def.Lex.Extensions) || m.Lex.MaxDiagnostics != def.Lex.MaxDiagnostics || m.Cache != def.Cache {
		t.Fatalf("round trip mismatch: %+v vs %+v", m, def)
	}

	if _, err := WriteDefault(dir, false); err == nil {
		t.Fatalf("expected error on existing manifest")
	}
	if _, err := WriteDefault(dir, true); err != nil {
		t.Fatalf("force overwrite: %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvJobs, "5")
	t.Setenv(EnvMaxDiagnostics, "7")
	t.Setenv(EnvCache, "true")
	t.Setenv(EnvCacheDir, "/tmp/cclex-cache")

	m := DefaultManifest()
	if err := m.ApplyEnv(); err != nil {
		t.Fatal(err)
	}
	if m.Lex.Jobs != 5 || m.Lex.MaxDiagnostics != 7 {
		t.Errorf("lex overrides not applied: %+v", m.Lex)
	}
	if !m.Cache.Enabled || m.CacheDir() != "/tmp/cclex-cache" {
		t.Errorf("cache overrides not applied: %+v", m.Cache)
	}
}

func TestApplyEnvRejectsInvalid(t *testing.T) {
	t.Setenv(EnvMaxDiagnostics, "-3")
	m := DefaultManifest()
	if err := m.ApplyEnv(); err == nil {
		t.Fatalf("expected validation error")
	}
}
