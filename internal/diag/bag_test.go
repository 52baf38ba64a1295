package diag

import (
	"testing"

	"cclex/internal/source"
)

func TestBagRespectsLimit(t *testing.T) {
	b := NewBag(2)
	for i := 0; i < 3; i++ {
		ok := b.Add(NewError(LexUnknownChar, source.Span{Start: uint32(i), End: uint32(i + 1)}, "x"))
		if want := i < 2; ok != want {
			t.Fatalf("Add #%d = %v, want %v", i, ok, want)
		}
	}
	if b.Len() != 2 || b.Cap() != 2 {
		t.Fatalf("Len=%d Cap=%d, want 2/2", b.Len(), b.Cap())
	}
	if !b.HasErrors() || !b.HasWarnings() {
		t.Fatalf("errors must count as warnings too")
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(10)
	b.Add(New(SevWarning, LexBadNumber, source.Span{File: 1, Start: 0, End: 2}, "w"))
	b.Add(NewError(LexUnknownChar, source.Span{File: 0, Start: 5, End: 6}, "later"))
	b.Add(NewError(LexUnknownChar, source.Span{File: 0, Start: 1, End: 2}, "first"))
	b.Add(NewError(LexUnknownChar, source.Span{File: 0, Start: 1, End: 2}, "dup"))

	b.Sort()
	items := b.Items()
	if items[0].Message != "first" || items[2].Message != "later" || items[3].Primary.File != 1 {
		t.Fatalf("unexpected order: %+v", items)
	}

	b.Dedup()
	if b.Len() != 3 {
		t.Fatalf("Dedup left %d items, want 3", b.Len())
	}
}

func TestBagMergeGrowsLimit(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(LexUnknownChar, source.Span{}, "a"))
	other := NewBag(2)
	other.Add(NewError(LexBadNumber, source.Span{}, "b"))
	other.Add(NewError(LexBadNumber, source.Span{}, "c"))

	a.Merge(other)
	if a.Len() != 3 || a.Cap() != 3 {
		t.Fatalf("Merge: Len=%d Cap=%d", a.Len(), a.Cap())
	}
	a.Merge(nil)
}

func TestReportBuilderAndDedupReporter(t *testing.T) {
	bag := NewBag(8)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{Start: 3, End: 7}

	b := ReportError(r, LexUnterminatedString, sp, "unterminated string literal").
		WithNote(source.Span{Start: 3, End: 4}, "string starts here")
	b.Emit()
	b.Emit() // повторный Emit игнорируется
	ReportError(r, LexUnterminatedString, sp, "unterminated string literal").Emit()

	if bag.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if d.Code != LexUnterminatedString || len(d.Notes) != 1 {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
}

func TestCodeIDs(t *testing.T) {
	cases := map[Code]string{
		LexUnknownChar:      "LEX1001",
		LexBadNumber:        "LEX1004",
		IOLoadFileError:     "IO4001",
		ProjInvalidManifest: "PRJ5001",
		UnknownCode:         "E0000",
	}
	for c, want := range cases {
		if got := c.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", c, got, want)
		}
	}
	if Code(1999).Title() != "Unknown error" {
		t.Errorf("unknown code must fall back to the default title")
	}
	if got := LexBadNumber.String(); got != "[LEX1004]: Malformed numeric literal" {
		t.Errorf("String() = %q", got)
	}
}
