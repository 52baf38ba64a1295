// Package token defines the lexical token kinds produced by the cclex scanner.
// Invariants:
//   - The set of kinds is closed; every token the lexer emits has one of them.
//   - Token.Text is exactly the source bytes covered by Token.Span.
//   - A token stream ends with exactly one EOF token whose span is empty.
//   - Keywords share the single Keyword kind; the concrete keyword is the text.
//     Type names (int, char, double, ...) are keywords in this language.
package token
