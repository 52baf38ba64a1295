package token_test

import (
	"testing"

	"cclex/internal/source"
	"cclex/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestKindStringCoversClosedSet(t *testing.T) {
	seen := make(map[string]token.Kind)
	for _, k := range token.Kinds() {
		name := k.String()
		if name == "" || name == "Kind(?)" {
			t.Fatalf("kind %d has no name", k)
		}
		if prev, dup := seen[name]; dup {
			t.Fatalf("kinds %d and %d share name %q", prev, k, name)
		}
		seen[name] = k
		if !k.Valid() {
			t.Fatalf("%v must be valid", k)
		}
	}
	if len(seen) != 22 {
		t.Fatalf("expected 22 kinds, got %d", len(seen))
	}
	if token.Kind(200).Valid() || token.Kind(200).String() != "Kind(?)" {
		t.Fatalf("out of range kind must be invalid")
	}
}

func TestIsLiteral(t *testing.T) {
	lits := []token.Kind{token.IntLit, token.DoubleLit, token.FloatLit, token.StringLit}
	for _, k := range lits {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	non := []token.Kind{token.Ident, token.Keyword, token.Plus, token.LParen, token.Invalid, token.EOF}
	for _, k := range non {
		if tok(k).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
	if tok(token.StringLit).IsNumber() || !tok(token.FloatLit).IsNumber() {
		t.Fatalf("IsNumber misclassifies literals")
	}
}

func TestIsPunctOrOp(t *testing.T) {
	for _, b := range []byte("+-*/(){}<>[],;") {
		k, ok := token.LookupPunct(b)
		if !ok {
			t.Fatalf("LookupPunct(%q) = !ok", b)
		}
		if !tok(k).IsPunctOrOp() {
			t.Fatalf("%v should be punct/op", k)
		}
	}
	for _, b := range []byte("@#.=!&|%^~:?") {
		if _, ok := token.LookupPunct(b); ok {
			t.Fatalf("LookupPunct(%q) must fail", b)
		}
	}
	non := []token.Kind{token.Ident, token.Keyword, token.IntLit, token.Invalid, token.EOF}
	for _, k := range non {
		if tok(k).IsPunctOrOp() {
			t.Fatalf("%v must NOT be punct/op", k)
		}
	}
}

func TestIsIdentAndKeyword(t *testing.T) {
	if !tok(token.Ident).IsIdent() || tok(token.Keyword).IsIdent() {
		t.Fatalf("IsIdent misclassifies")
	}
	if !tok(token.Keyword).IsKeyword() || tok(token.Ident).IsKeyword() {
		t.Fatalf("IsKeyword misclassifies")
	}
	if !token.EOF.IsEOF() || !token.Invalid.IsInvalid() || token.Ident.IsEOF() {
		t.Fatalf("kind predicates misclassify")
	}
}
