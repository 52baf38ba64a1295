package token

import "sort"

var keywords = map[string]struct{}{
	"char":     {},
	"int":      {},
	"double":   {},
	"float":    {},
	"struct":   {},
	"enum":     {},
	"void":     {},
	"short":    {},
	"long":     {},
	"const":    {},
	"static":   {},
	"if":       {},
	"else":     {},
	"for":      {},
	"while":    {},
	"break":    {},
	"continue": {},
	"return":   {},
}

// IsKeyword reports whether ident is a reserved word.
// Ключевые слова регистрозависимые: "Return" это идентификатор.
func IsKeyword(ident string) bool {
	_, ok := keywords[ident]
	return ok
}

// LookupIdent classifies an identifier-shaped lexeme as Keyword or Ident.
func LookupIdent(ident string) Kind {
	if IsKeyword(ident) {
		return Keyword
	}
	return Ident
}

// Keywords returns the reserved words in sorted order.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for kw := range keywords {
		out = append(out, kw)
	}
	sort.Strings(out)
	return out
}
