package lexer_test

import (
	"path/filepath"
	"testing"

	"cclex/internal/diag"
	"cclex/internal/lexer"
	"cclex/internal/source"
	"cclex/internal/testkit"
	"cclex/internal/token"
)

func lexTestdata(t *testing.T, name string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id, err := fs.Load(filepath.Join("..", "..", "testdata", "lex", name))
	if err != nil {
		t.Fatalf("load %s: %v", name, err)
	}
	file := fs.Get(id)
	bag := diag.NewBag(32)
	tokens := lexer.All(file, lexer.Options{Reporter: (&lexer.ReporterAdapter{Bag: bag}).Reporter()})
	if err := testkit.CheckTokenStream(file, tokens); err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	return tokens, bag
}

func TestTestdataValidHasNoInvalidTokens(t *testing.T) {
	tokens, bag := lexTestdata(t, "valid.c")
	for _, tok := range tokens {
		if tok.Kind == token.Invalid {
			t.Fatalf("unexpected invalid token %q at %v", tok.Text, tok.Span)
		}
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	counts := make(map[token.Kind]int)
	for _, tok := range tokens {
		counts[tok.Kind]++
	}
	if counts[token.FloatLit] != 1 || counts[token.DoubleLit] != 3 || counts[token.StringLit] != 1 {
		t.Fatalf("unexpected literal counts: %v", counts)
	}
}

func TestTestdataErrorsAreAllReported(t *testing.T) {
	_, bag := lexTestdata(t, "errors.c")
	want := []diag.Code{
		diag.LexUnknownChar, diag.LexBadNumber, // = 1.
		diag.LexUnknownChar, diag.LexBadNumber, // = 1.2.3
		diag.LexUnknownChar, diag.LexBadNumber, // = 1e+
		diag.LexUnknownChar, diag.LexUnterminatedString, // = "unterminated ...
	}
	items := bag.Items()
	if len(items) != len(want) {
		t.Fatalf("got %d diagnostics, want %d: %v", len(items), len(want), items)
	}
	for i, code := range want {
		if items[i].Code != code {
			t.Errorf("diagnostic %d: code %s, want %s", i, items[i].Code.ID(), code.ID())
		}
	}
}
