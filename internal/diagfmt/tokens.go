package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"cclex/internal/diag"
	"cclex/internal/source"
	"cclex/internal/token"
)

// TokenOutput is the serialized form of one token.
type TokenOutput struct {
	Kind  string `json:"kind" msgpack:"kind"`
	Text  string `json:"text,omitempty" msgpack:"text,omitempty"`
	Start uint32 `json:"start" msgpack:"start"`
	End   uint32 `json:"end" msgpack:"end"`
	Line  uint32 `json:"line" msgpack:"line"`
	Col   uint32 `json:"col" msgpack:"col"`
}

// FileOutput bundles the tokens and diagnostics of one file.
type FileOutput struct {
	Path        string           `json:"path" msgpack:"path"`
	Tokens      []TokenOutput    `json:"tokens" msgpack:"tokens"`
	Diagnostics []DiagnosticJSON `json:"diagnostics,omitempty" msgpack:"diagnostics,omitempty"`
}

// BuildTokensOutput converts tokens into their serialized form.
func BuildTokensOutput(tokens []token.Token, fs *source.FileSet) []TokenOutput {
	out := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		pos, _ := fs.Resolve(tok.Span)
		out = append(out, TokenOutput{
			Kind:  tok.Kind.String(),
			Text:  tok.Text,
			Start: tok.Span.Start,
			End:   tok.Span.End,
			Line:  pos.Line,
			Col:   pos.Col,
		})
		if tok.Kind == token.EOF {
			break
		}
	}
	return out
}

// BuildFileOutput combines tokens and diagnostics for file id.
func BuildFileOutput(id source.FileID, tokens []token.Token, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) FileOutput {
	return FileOutput{
		Path:        formatPath(fs.Get(id), fs, opts.PathMode),
		Tokens:      BuildTokensOutput(tokens, fs),
		Diagnostics: BuildDiagnosticsOutput(bag, fs, opts).Diagnostics,
	}
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)

		if _, err := fmt.Fprintf(w, "%3d: %-10s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Text != "" {
			if _, err := fmt.Fprintf(w, " %q", tok.Text); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, " at %d:%d-%d:%d\n",
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col); err != nil {
			return err
		}

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildTokensOutput(tokens, fs))
}

// FormatTokensMsgpack пишет токены одним msgpack-массивом.
func FormatTokensMsgpack(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	return msgpack.NewEncoder(w).Encode(BuildTokensOutput(tokens, fs))
}

// FormatFilesJSON writes the outputs of a directory run as one JSON array.
func FormatFilesJSON(w io.Writer, files []FileOutput) error {
	if files == nil {
		files = []FileOutput{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(files)
}

// FormatFilesMsgpack writes the outputs of a directory run as one msgpack array.
func FormatFilesMsgpack(w io.Writer, files []FileOutput) error {
	return msgpack.NewEncoder(w).Encode(files)
}
