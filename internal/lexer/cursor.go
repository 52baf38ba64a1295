package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"cclex/internal/source"
)

// Cursor is the read position over one immutable source buffer together with
// the capture of the token being built. The capture is always the contiguous
// range [Start, Off): Consume grows it by one byte, Begin empties it.
//
// Invariants: Start <= Off <= Limit, Off never decreases.
type Cursor struct {
	File  *source.File
	Off   uint32
	Start uint32
	// Limit is the exclusive upper bound for Off; equals len(File.Content).
	Limit uint32
}

// NewCursor creates a new cursor for the provided file.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{
		File:  f,
		Limit: limit,
	}
}

// EOF проверяет, достигнут ли конец буфера
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Current returns the byte under the cursor, or 0 past the end.
// 0 is only a sentinel: NUL bytes inside the buffer are legal, so callers
// that must tell them apart check EOF.
func (c *Cursor) Current() byte {
	if c.EOF() {
		return 0
	}
	return c.File.Content[c.Off]
}

// Consume appends the current byte to the capture and moves forward.
// At the end of input it does nothing.
func (c *Cursor) Consume() {
	if c.EOF() {
		return
	}
	c.Off++
}

// Advance moves past the current byte without capturing it.
// Only valid while the capture is empty (whitespace between tokens).
func (c *Cursor) Advance() {
	if c.Start != c.Off {
		panic(fmt.Errorf("lexer: advance with open capture at %d", c.Start))
	}
	if c.EOF() {
		return
	}
	c.Off++
	c.Start = c.Off
}

// Begin starts a new, empty capture at the current position.
func (c *Cursor) Begin() {
	c.Start = c.Off
}

// Captured returns the bytes consumed since Begin.
func (c *Cursor) Captured() []byte {
	return c.File.Content[c.Start:c.Off]
}

// Span returns the span of the current capture.
func (c *Cursor) Span() source.Span {
	return source.Span{
		File:  c.File.ID,
		Start: c.Start,
		End:   c.Off,
	}
}
