package driver

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"cclex/internal/diag"
	"cclex/internal/lexer"
	"cclex/internal/observ"
	"cclex/internal/source"
	"cclex/internal/token"
	"cclex/internal/trace"
)

// Options configures single-file and directory runs.
type Options struct {
	MaxDiagnostics int
	Jobs           int      // 0 - GOMAXPROCS
	Extensions     []string // for TokenizeDir
	Cache          *DiskCache
	Progress       ProgressSink
	Timer          *observ.Timer
}

// TokenizeResult holds the scan of one file.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
	Cached  bool
}

// InvalidCount returns the number of Invalid tokens in the result.
func (r *TokenizeResult) InvalidCount() int {
	if r == nil {
		return 0
	}
	return CountInvalid(r.Tokens)
}

// CountInvalid returns the number of Invalid tokens in toks.
func CountInvalid(toks []token.Token) int {
	n := 0
	for _, tok := range toks {
		if tok.Kind.IsInvalid() {
			n++
		}
	}
	return n
}

// Tokenize loads path and scans it.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	span, ctx := trace.StartSpan(ctx, trace.ScopeDriver, "tokenize")
	defer span.End("")

	fs := source.NewFileSet()
	endLoad := opts.Timer.Track("load")
	fileID, err := fs.Load(path)
	endLoad("")
	if err != nil {
		trace.Error(trace.FromContext(ctx), trace.ScopePass, "load", err, span.ID())
		return nil, err
	}
	return scanResult(ctx, fs, fileID, opts), nil
}

// TokenizeSource scans in-memory content registered under name (stdin, REPL).
func TokenizeSource(ctx context.Context, name string, content []byte, opts Options) *TokenizeResult {
	span, ctx := trace.StartSpan(ctx, trace.ScopeDriver, "tokenize")
	defer span.End("")

	fs := source.NewFileSet()
	return scanResult(ctx, fs, fs.AddVirtual(name, content), opts)
}

// TokenizeReader reads r fully and scans it as a virtual file.
func TokenizeReader(ctx context.Context, name string, r io.Reader, opts Options) (*TokenizeResult, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return TokenizeSource(ctx, name, content, opts), nil
}

func scanResult(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) *TokenizeResult {
	endLex := opts.Timer.Track("lex")
	file := fs.Get(id)
	toks, bag, cached := scanFile(ctx, file, opts)
	note := strconv.Itoa(len(toks)) + " tokens"
	if cached {
		note += ", cached"
	}
	endLex(note)
	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  toks,
		Bag:     bag,
		Cached:  cached,
	}
}

// scanFile runs the scanner on f, going through the disk cache when one is
// configured. Cache failures are traced and fall back to scanning.
func scanFile(ctx context.Context, f *source.File, opts Options) ([]token.Token, *diag.Bag, bool) {
	tracer := trace.FromContext(ctx)
	span, _ := trace.StartSpan(ctx, trace.ScopeFile, "file:"+f.Path)
	started := time.Now()
	emit(opts.Progress, Event{File: f.Path, Stage: StageLex, Status: StatusWorking})

	var key Digest
	if opts.Cache != nil {
		key = CacheKey(f, opts.MaxDiagnostics)
		var payload DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		if err != nil {
			trace.Error(tracer, trace.ScopeFile, "cache.get", err, span.ID())
		}
		if hit {
			toks, bag, err := scanFromPayload(f, &payload, opts.MaxDiagnostics)
			if err == nil {
				finishFile(span, opts.Progress, f.Path, toks, true, started)
				return toks, bag, true
			}
			trace.Error(tracer, trace.ScopeFile, "cache.restore", err, span.ID())
		}
	}

	bag := diag.NewBag(opts.MaxDiagnostics)
	reporter := (&lexer.ReporterAdapter{Bag: bag}).Reporter()
	toks := lexer.All(f, lexer.Options{Reporter: reporter})

	if opts.Cache != nil {
		if err := opts.Cache.Put(key, payloadFromScan(f, toks, bag)); err != nil {
			trace.Error(tracer, trace.ScopeFile, "cache.put", err, span.ID())
		}
	}
	finishFile(span, opts.Progress, f.Path, toks, false, started)
	return toks, bag, false
}

func finishFile(span *trace.Span, sink ProgressSink, path string, toks []token.Token, cached bool, started time.Time) {
	invalid := CountInvalid(toks)
	span.WithExtra("tokens", strconv.Itoa(len(toks))).
		WithExtra("invalid", strconv.Itoa(invalid)).
		WithExtra("cached", strconv.FormatBool(cached)).
		End("")
	emit(sink, Event{
		File:    path,
		Stage:   StageLex,
		Status:  StatusDone,
		Tokens:  len(toks),
		Invalid: invalid,
		Cached:  cached,
		Elapsed: time.Since(started),
	})
}
