package lexer

import (
	"cclex/internal/diag"
	"cclex/internal/token"
)

// Числовые литералы читаются цепочкой состояний без возвратов:
//
//	integer  : [0-9]+          '.' -> double, 'e' -> exponent, иначе IntLit
//	double   : [0-9]+          'e' -> exponent, 'f' -> float,  иначе DoubleLit
//	exponent : [+-]? [0-9]+    'f' -> float,                   иначе DoubleLit
//	float    : (ничего не читает)                              FloatLit
//
// Вид литерала определяется только тем, какой символ прервал каждое
// состояние. Экспонента распознаётся лишь по строчной 'e'.
// Ошибочная форма дочитывается до пробела и становится одним Invalid.
func (lx *Lexer) scanNumber() token.Token {
	lx.consumeDigits()
	switch lx.cursor.Current() {
	case '.':
		lx.cursor.Consume()
		return lx.scanDouble()
	case 'e':
		lx.cursor.Consume()
		return lx.scanExponent()
	}
	return lx.emit(token.IntLit)
}

func (lx *Lexer) scanDouble() token.Token {
	if lx.consumeDigits() == 0 {
		return lx.badNumber("expected digit after '.'")
	}
	switch lx.cursor.Current() {
	case '.':
		return lx.badNumber("unexpected second '.' in number")
	case 'e':
		lx.cursor.Consume()
		return lx.scanExponent()
	case 'f':
		lx.cursor.Consume()
		return lx.scanFloatSuffix()
	}
	return lx.emit(token.DoubleLit)
}

func (lx *Lexer) scanExponent() token.Token {
	if c := lx.cursor.Current(); c == '+' || c == '-' {
		lx.cursor.Consume()
	}
	if lx.consumeDigits() == 0 {
		return lx.badNumber("expected digit in exponent")
	}
	if lx.cursor.Current() == 'f' {
		lx.cursor.Consume()
		return lx.scanFloatSuffix()
	}
	return lx.emit(token.DoubleLit)
}

// scanFloatSuffix: 'f' уже поглощён вызывающим.
func (lx *Lexer) scanFloatSuffix() token.Token {
	return lx.emit(token.FloatLit)
}

func (lx *Lexer) consumeDigits() int {
	n := 0
	for isDec(lx.cursor.Current()) {
		lx.cursor.Consume()
		n++
	}
	return n
}

func (lx *Lexer) badNumber(msg string) token.Token {
	lx.consumeRun()
	tok := lx.emit(token.Invalid)
	lx.errLex(diag.LexBadNumber, tok.Span, msg)
	return tok
}
