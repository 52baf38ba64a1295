package lexer

import (
	"testing"

	"cclex/internal/source"
)

// helper function to create a file
func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.c", []byte(content))
	return fs.Get(id)
}

// TestSequentialReading проверяет последовательное чтение: "a\nb" → a, \n, b, EOF
func TestSequentialReading(t *testing.T) {
	file := createFile("a\nb")
	cursor := NewCursor(file)

	for i, want := range []byte("a\nb") {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF at %d", i)
		}
		if got := cursor.Current(); got != want {
			t.Fatalf("Current() at %d = %q, want %q", i, got, want)
		}
		cursor.Consume()
	}

	if !cursor.EOF() {
		t.Error("Expected EOF at end")
	}
	if cursor.Current() != 0 {
		t.Errorf("Expected sentinel 0 at EOF, got %q", cursor.Current())
	}
	if got := string(cursor.Captured()); got != "a\nb" {
		t.Errorf("Captured() = %q, want %q", got, "a\nb")
	}
}

func TestConsumeAtEOFIsNoop(t *testing.T) {
	cursor := NewCursor(createFile("x"))
	cursor.Consume()
	cursor.Consume()
	cursor.Consume()
	if cursor.Off != 1 {
		t.Fatalf("Off = %d, want 1", cursor.Off)
	}
	sp := cursor.Span()
	if sp.Start != 0 || sp.End != 1 {
		t.Fatalf("Span = %v, want 0-1", sp)
	}
}

func TestEmptyFile(t *testing.T) {
	cursor := NewCursor(createFile(""))
	if !cursor.EOF() || cursor.Current() != 0 {
		t.Fatal("empty file must be at EOF")
	}
	cursor.Advance()
	if cursor.Off != 0 || cursor.Start != 0 {
		t.Fatalf("Advance at EOF moved the cursor to %d", cursor.Off)
	}
}

func TestAdvanceDoesNotCapture(t *testing.T) {
	cursor := NewCursor(createFile("  ab"))
	cursor.Begin()
	cursor.Advance()
	cursor.Advance()
	if len(cursor.Captured()) != 0 {
		t.Fatalf("Advance must not capture, got %q", cursor.Captured())
	}
	if cursor.Start != 2 || cursor.Off != 2 {
		t.Fatalf("Start/Off = %d/%d, want 2/2", cursor.Start, cursor.Off)
	}
	cursor.Consume()
	cursor.Consume()
	if got := string(cursor.Captured()); got != "ab" {
		t.Fatalf("Captured() = %q, want ab", got)
	}
}

func TestAdvanceWithOpenCapturePanics(t *testing.T) {
	cursor := NewCursor(createFile("ab"))
	cursor.Begin()
	cursor.Consume()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	cursor.Advance()
}

func TestNULIsNotEOF(t *testing.T) {
	cursor := NewCursor(createFile("\x00a"))
	if cursor.EOF() {
		t.Fatal("NUL byte must not be treated as end of input")
	}
	if cursor.Current() != 0 {
		t.Fatalf("Current() = %q, want NUL", cursor.Current())
	}
	cursor.Consume()
	if cursor.Current() != 'a' {
		t.Fatalf("Current() = %q, want a", cursor.Current())
	}
}
