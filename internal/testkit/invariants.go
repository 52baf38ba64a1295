package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"cclex/internal/source"
	"cclex/internal/token"
)

// CheckTokenStream runs the structural invariants of a complete token stream
// produced from sf:
//  1. the stream ends with exactly one EOF token, which has an empty span at
//     the end of the content;
//  2. every kind belongs to the closed set and every non-EOF token is non-empty;
//  3. every span lies within [0, len(content)] and Text matches the span;
//  4. tokens are ordered and the gaps between them contain only whitespace,
//     so tokens plus skipped whitespace reconstruct the buffer;
//  5. there are at most len(content)+1 tokens.
func CheckTokenStream(sf *source.File, toks []token.Token) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if len(toks) == 0 {
		return fmt.Errorf("empty token stream")
	}
	if len(toks) > len(sf.Content)+1 {
		return fmt.Errorf("too many tokens: %d for %d bytes", len(toks), len(sf.Content))
	}

	var prevEnd uint32
	for i, tok := range toks {
		if !tok.Kind.Valid() {
			return fmt.Errorf("token %d: kind %d outside the closed set", i, tok.Kind)
		}
		sp := tok.Span
		if sp.File != sf.ID {
			return fmt.Errorf("token %d: span file mismatch: got=%d want=%d", i, sp.File, sf.ID)
		}
		if sp.Start > sp.End || sp.End > lenContent {
			return fmt.Errorf("token %d: span %v outside content of %d bytes", i, sp, lenContent)
		}
		if tok.Text != string(sf.Content[sp.Start:sp.End]) {
			return fmt.Errorf("token %d: text %q does not match span %v", i, tok.Text, sp)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("token %d: span %v overlaps previous token ending at %d", i, sp, prevEnd)
		}
		if gap := sf.Content[prevEnd:sp.Start]; !allSpace(gap) {
			return fmt.Errorf("token %d: non-whitespace gap %q before span %v", i, gap, sp)
		}
		prevEnd = sp.End

		isLast := i == len(toks)-1
		if tok.Kind == token.EOF {
			if !isLast {
				return fmt.Errorf("token %d: EOF before the end of the stream", i)
			}
			if sp.Start != lenContent || sp.End != lenContent {
				return fmt.Errorf("EOF span %v must be empty at offset %d", sp, lenContent)
			}
			continue
		}
		if isLast {
			return fmt.Errorf("stream does not end with EOF (last is %v)", tok.Kind)
		}
		if sp.Empty() {
			return fmt.Errorf("token %d: empty span for %v", i, tok.Kind)
		}
	}
	return nil
}

// Reconstruct concatenates token texts with the skipped gaps taken from sf.
// For a valid stream the result equals sf.Content.
func Reconstruct(sf *source.File, toks []token.Token) []byte {
	out := make([]byte, 0, len(sf.Content))
	var prevEnd uint32
	for _, tok := range toks {
		out = append(out, sf.Content[prevEnd:tok.Span.Start]...)
		out = append(out, tok.Text...)
		prevEnd = tok.Span.End
	}
	return out
}

func allSpace(b []byte) bool {
	for _, c := range b {
		switch c {
		case ' ', '\t', '\n', '\v', '\f', '\r':
		default:
			return false
		}
	}
	return true
}
