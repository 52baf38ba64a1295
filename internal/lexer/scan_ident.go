package lexer

import (
	"cclex/internal/token"
)

// scanIdentOrKeyword сканирует [A-Za-z_][A-Za-z0-9_]* и классифицирует
// через token.LookupIdent. Сравнение точное и регистрозависимое.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	for !lx.cursor.EOF() && isIdentContinueByte(lx.cursor.Current()) {
		lx.cursor.Consume()
	}
	tok := lx.emit(token.Ident)
	tok.Kind = token.LookupIdent(tok.Text)
	return tok
}
