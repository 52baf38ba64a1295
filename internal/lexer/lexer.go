package lexer

import (
	"cclex/internal/source"
	"cclex/internal/token"
)

// Lexer turns one source file into tokens in a single left-to-right pass.
// A Lexer is not safe for concurrent use; independent files may be lexed by
// independent Lexers in parallel.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // 1 элементный буфер для токена
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next возвращает следующий токен. Каждый вызов производит ровно один токен;
// после EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	// пробелы пропускаем циклом, а не рекурсией
	for {
		lx.cursor.Begin()
		if lx.cursor.EOF() {
			return lx.emit(token.EOF)
		}

		ch := lx.cursor.Current()
		switch {
		case ch == '"':
			lx.cursor.Consume() // opening '"'
			return lx.scanString()

		case isIdentStartByte(ch):
			return lx.scanIdentOrKeyword()

		case isDec(ch):
			return lx.scanNumber()

		case isSpace(ch):
			lx.skipSpace()
			continue
		}

		if k, ok := token.LookupPunct(ch); ok {
			lx.cursor.Consume()
			return lx.emit(k)
		}
		return lx.scanUnknown()
	}
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	t := lx.Next()
	lx.look = &t
	return t
}

// File returns the file being lexed.
func (lx *Lexer) File() *source.File {
	return lx.file
}

func (lx *Lexer) skipSpace() {
	for !lx.cursor.EOF() && isSpace(lx.cursor.Current()) {
		lx.cursor.Advance()
	}
}

// emit materializes a token from the current capture.
func (lx *Lexer) emit(k token.Kind) token.Token {
	sp := lx.cursor.Span()
	return token.Token{
		Kind: k,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	}
}

// All lexes the whole file and returns every token including the final EOF.
func All(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	tokens := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}

// Tokenize lexes text held in memory. Spans refer to FileID 0.
func Tokenize(text string) []token.Token {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<input>", []byte(text))
	return All(fs.Get(id), Options{})
}
