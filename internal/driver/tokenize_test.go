package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cclex/internal/diag"
	"cclex/internal/observ"
	"cclex/internal/token"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestTokenizeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.c")
	writeFile(t, path, "\xEF\xBB\xBFint main() {\r\n  return 0;\r\n}\r\n")

	timer := observ.NewTimer()
	res, err := Tokenize(context.Background(), path, Options{MaxDiagnostics: 10, Timer: timer})
	if err != nil {
		t.Fatal(err)
	}
	if res.Cached {
		t.Errorf("no cache configured, result must not be cached")
	}
	if strings.Contains(string(res.File.Content), "\r") {
		t.Errorf("CRLF not normalized")
	}
	if n := len(res.Tokens); n != 10 || res.Tokens[n-1].Kind != token.EOF {
		t.Fatalf("unexpected tokens %v", res.Tokens)
	}
	if res.Tokens[0].Kind != token.Keyword || res.Tokens[0].Text != "int" {
		t.Errorf("BOM leaked into first token: %+v", res.Tokens[0])
	}
	if res.Bag.Len() != 0 || res.InvalidCount() != 0 {
		t.Errorf("unexpected diagnostics %+v", res.Bag.Items())
	}
	if phases := timer.Report().Phases; len(phases) != 2 || phases[0].Name != "load" || phases[1].Name != "lex" {
		t.Errorf("unexpected timer phases %+v", phases)
	}
}

func TestTokenizeMissingFile(t *testing.T) {
	_, err := Tokenize(context.Background(), filepath.Join(t.TempDir(), "nope.c"), Options{})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestTokenizeSourceReportsDiagnostics(t *testing.T) {
	res := TokenizeSource(context.Background(), "<stdin>", []byte("x = \"open"), Options{MaxDiagnostics: 10})
	if got := res.InvalidCount(); got != 2 {
		t.Fatalf("expected 2 invalid tokens, got %d", got)
	}
	items := res.Bag.Items()
	if len(items) != 2 || items[0].Code != diag.LexUnknownChar || items[1].Code != diag.LexUnterminatedString {
		t.Fatalf("unexpected diagnostics %+v", items)
	}
	if res.File.Path != "<stdin>" {
		t.Errorf("unexpected path %q", res.File.Path)
	}
}

func TestTokenizeReaderKeepsContent(t *testing.T) {
	res, err := TokenizeReader(context.Background(), "<stdin>", strings.NewReader("a\r\nb"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if string(res.File.Content) != "a\r\nb" {
		t.Fatalf("virtual content must be stored as is, got %q", res.File.Content)
	}
	if len(res.Tokens) != 3 {
		t.Fatalf("expected a, b, EOF; got %v", res.Tokens)
	}
}

func TestDiagnosticsCapHonoured(t *testing.T) {
	res := TokenizeSource(context.Background(), "cap.c", []byte("@ @ @ @ @"), Options{MaxDiagnostics: 2})
	if res.InvalidCount() != 5 {
		t.Fatalf("expected 5 invalid tokens, got %d", res.InvalidCount())
	}
	if res.Bag.Len() != 2 {
		t.Fatalf("expected bag capped at 2, got %d", res.Bag.Len())
	}
}
