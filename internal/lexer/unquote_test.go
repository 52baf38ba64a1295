package lexer

import (
	"errors"
	"testing"
)

func TestUnquote(t *testing.T) {
	tests := []struct {
		lit  string
		want string
	}{
		{`""`, ""},
		{`"abc"`, "abc"},
		{`"a\nb"`, "a\nb"},
		{`"\t\r\v\f\a\b"`, "\t\r\v\f\a\b"},
		{`"\'\"\?\\"`, `'"?\`},
		{`"\q"`, "q"},
		{`"\x41"`, "x41"},
	}
	for _, tt := range tests {
		got, err := Unquote(tt.lit)
		if err != nil {
			t.Fatalf("Unquote(%q) error: %v", tt.lit, err)
		}
		if got != tt.want {
			t.Errorf("Unquote(%q) = %q, want %q", tt.lit, got, tt.want)
		}
	}
}

func TestUnquoteRejectsNonLiterals(t *testing.T) {
	for _, lit := range []string{``, `"`, `abc`, `"abc`, `"abc\"`, `"a"b"`} {
		if _, err := Unquote(lit); !errors.Is(err, ErrNotStringLiteral) {
			t.Errorf("Unquote(%q) err = %v, want ErrNotStringLiteral", lit, err)
		}
	}
}

func TestUnquoteMatchesScanner(t *testing.T) {
	for _, src := range []string{`"x\"y"`, `"\\"`, `"\z\n"`} {
		toks := Tokenize(src)
		if len(toks) != 2 {
			t.Fatalf("%q: expected one string token, got %d tokens", src, len(toks)-1)
		}
		if _, err := Unquote(toks[0].Text); err != nil {
			t.Fatalf("Unquote(%q) error: %v", toks[0].Text, err)
		}
	}
}
