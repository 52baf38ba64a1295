package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"cclex/internal/diag"
	"cclex/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, code, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		f := fs.Get(d.Primary.File)
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			formatPath(f, fs, opts.PathMode), start.Line, start.Col,
			p.severity(d.Severity).Sprint(d.Severity.String()),
			p.code.Sprint(d.Code.ID()),
			d.Message)
		writeSnippet(w, f, fs, d.Primary, opts, p)

		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			nf := fs.Get(n.Span.File)
			pos, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n",
				p.note.Sprint("note:"), formatPath(nf, fs, opts.PathMode), pos.Line, pos.Col, n.Msg)
		}
	}
}

// writeSnippet prints the context lines, the primary line and a caret
// underline covering the part of the span on that line.
func writeSnippet(w io.Writer, f *source.File, fs *source.FileSet, sp source.Span, opts PrettyOpts, p palette) {
	if len(f.Content) == 0 {
		return
	}
	start, end := fs.Resolve(sp)
	gutterWidth := len(fmt.Sprint(start.Line))

	first := start.Line
	if opts.Context > 0 {
		first = uint32(max(1, int(start.Line)-opts.Context))
	}
	for ln := first; ln <= start.Line; ln++ {
		line := expandTabs(f.GetLine(ln))
		if opts.Width > 0 {
			line = runewidth.Truncate(line, opts.Width, "…")
		}
		fmt.Fprintf(w, " %s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, ln), line)
	}

	raw := f.GetLine(start.Line)
	col := min(int(start.Col)-1, len(raw))
	prefix := runewidth.StringWidth(expandTabs(raw[:col]))

	stop := len(raw)
	if end.Line == start.Line {
		stop = min(int(end.Col)-1, len(raw))
	}
	width := 1
	if stop > col {
		width = max(1, runewidth.StringWidth(expandTabs(raw[col:stop])))
	}
	if opts.Width > 0 && prefix+width > opts.Width {
		width = max(1, opts.Width-prefix)
	}

	underline := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, " %s %s%s\n",
		p.gutter.Sprintf("%*s |", gutterWidth, ""),
		strings.Repeat(" ", prefix),
		p.caret.Sprint(underline))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
