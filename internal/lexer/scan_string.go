package lexer

import (
	"errors"
	"strings"

	"cclex/internal/diag"
	"cclex/internal/token"
)

// escapes maps the byte after '\' to the value it denotes.
var escapes = map[byte]byte{
	'\'': '\'',
	'"':  '"',
	'?':  '?',
	'\\': '\\',
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
}

func isEscape(b byte) bool {
	_, ok := escapes[b]
	return ok
}

// scanString читает тело строки; открывающая '"' уже поглощена.
// Span токена включает обе кавычки. Перевод строки внутри строки допустим.
func (lx *Lexer) scanString() token.Token {
	for {
		if lx.cursor.EOF() {
			tok := lx.emit(token.Invalid)
			lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated string literal")
			return tok
		}
		switch lx.cursor.Current() {
		case '"':
			lx.cursor.Consume()
			return lx.emit(token.StringLit)
		case '\\':
			lx.cursor.Consume()
			lx.scanEscape()
		default:
			lx.cursor.Consume()
		}
	}
}

// scanEscape смотрит ровно на один байт после '\'. Известный escape
// поглощается; неизвестный оставляем телу строки, сам '\' ничего не значит.
func (lx *Lexer) scanEscape() {
	if !lx.cursor.EOF() && isEscape(lx.cursor.Current()) {
		lx.cursor.Consume()
	}
}

// ErrNotStringLiteral is returned by Unquote for text that is not a complete
// string literal lexeme.
var ErrNotStringLiteral = errors.New("not a string literal")

// Unquote decodes the text of a StringLit token into its value.
// Unknown escapes decode to the escaped byte itself, matching the scanner
// which treats such a backslash as having no effect.
func Unquote(lit string) (string, error) {
	if len(lit) < 2 || lit[0] != '"' || lit[len(lit)-1] != '"' {
		return "", ErrNotStringLiteral
	}
	body := lit[1 : len(lit)-1]
	if !strings.Contains(body, `\`) {
		if strings.Contains(body, `"`) {
			return "", ErrNotStringLiteral
		}
		return body, nil
	}

	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch c {
		case '"':
			return "", ErrNotStringLiteral
		case '\\':
			if i+1 >= len(body) {
				// закрывающая кавычка экранирована
				return "", ErrNotStringLiteral
			}
			i++
			if v, ok := escapes[body[i]]; ok {
				b.WriteByte(v)
			} else {
				b.WriteByte(body[i])
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}
