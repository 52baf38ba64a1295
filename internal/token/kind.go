package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates a malformed or unrecognized lexeme.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// Keyword represents one of the reserved words (see IsKeyword).
	Keyword

	// IntLit represents an integer literal: 123.
	IntLit
	// DoubleLit represents a double precision literal: 1.5, 1e10.
	DoubleLit
	// FloatLit represents a single precision literal: 1.5f, 1e-3f.
	FloatLit
	// StringLit represents a string literal including its quotes.
	StringLit

	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LAngle    // <
	RAngle    // >
	LBracket  // [
	RBracket  // ]
	Comma     // ,
	Semicolon // ;

	kindCount
)

var kindNames = [kindCount]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	Ident:     "Ident",
	Keyword:   "Keyword",
	IntLit:    "IntLit",
	DoubleLit: "DoubleLit",
	FloatLit:  "FloatLit",
	StringLit: "StringLit",
	Plus:      "Plus",
	Minus:     "Minus",
	Star:      "Star",
	Slash:     "Slash",
	LParen:    "LParen",
	RParen:    "RParen",
	LBrace:    "LBrace",
	RBrace:    "RBrace",
	LAngle:    "LAngle",
	RAngle:    "RAngle",
	LBracket:  "LBracket",
	RBracket:  "RBracket",
	Comma:     "Comma",
	Semicolon: "Semicolon",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsEOF reports whether k is the end-of-input kind.
func (k Kind) IsEOF() bool { return k == EOF }

// IsInvalid reports whether k marks a lexical error.
func (k Kind) IsInvalid() bool { return k == Invalid }

// Valid reports whether k belongs to the closed set of kinds.
func (k Kind) Valid() bool { return k < kindCount }

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Invalid; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// punct maps every single-byte punctuator to its kind.
var punct = map[byte]Kind{
	'+': Plus,
	'-': Minus,
	'*': Star,
	'/': Slash,
	'(': LParen,
	')': RParen,
	'{': LBrace,
	'}': RBrace,
	'<': LAngle,
	'>': RAngle,
	'[': LBracket,
	']': RBracket,
	',': Comma,
	';': Semicolon,
}

// LookupPunct returns the punctuator kind for b.
func LookupPunct(b byte) (Kind, bool) {
	k, ok := punct[b]
	return k, ok
}
