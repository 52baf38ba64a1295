package token

import (
	"cclex/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a numeric or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, DoubleLit, FloatLit, StringLit:
		return true
	default:
		return false
	}
}

// IsNumber reports whether the token is a numeric literal.
func (t Token) IsNumber() bool {
	return t.Kind == IntLit || t.Kind == DoubleLit || t.Kind == FloatLit
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	return t.Kind >= Plus && t.Kind <= Semicolon
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool { return t.Kind == Keyword }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
