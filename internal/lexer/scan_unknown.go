package lexer

import (
	"cclex/internal/diag"
	"cclex/internal/token"
)

// scanUnknown turns a run of unrecognized bytes into one Invalid token so
// that lexing can continue after it.
func (lx *Lexer) scanUnknown() token.Token {
	lx.consumeRun()
	tok := lx.emit(token.Invalid)
	lx.errLex(diag.LexUnknownChar, tok.Span, "unknown character sequence "+quoteLexeme(tok.Text))
	return tok
}

// consumeRun consumes while not whitespace and not end of input.
func (lx *Lexer) consumeRun() {
	for !lx.cursor.EOF() && !isSpace(lx.cursor.Current()) {
		lx.cursor.Consume()
	}
}

func quoteLexeme(s string) string {
	const maxShown = 24
	if len(s) > maxShown {
		s = s[:maxShown] + "..."
	}
	return "'" + s + "'"
}
