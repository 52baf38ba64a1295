package driver

import (
	"context"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"

	"cclex/internal/diag"
	"cclex/internal/source"
	"cclex/internal/token"
	"cclex/internal/trace"
)

// TokenizeDirResult содержит результат токенизации одного файла
type TokenizeDirResult struct {
	Path   string        // путь к файлу
	FileID source.FileID // ID файла в FileSet
	Tokens []token.Token // nil, если файл не загрузился
	Bag    *diag.Bag     // Диагностики
	Cached bool
}

// TokenizeDir токенизирует все файлы с расширениями opts.Extensions в
// директории параллельно. Results follow the sorted file order.
func TokenizeDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []TokenizeDirResult, error) {
	span, ctx := trace.StartSpan(ctx, trace.ScopeDriver, "tokenize-dir")
	defer span.End(dir)
	tracer := trace.FromContext(ctx)

	files, err := ListSourceFiles(dir, opts.Extensions)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}
	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	// Загрузка последовательная: FileSet не потокобезопасен на запись.
	loadSpan, _ := trace.StartSpan(ctx, trace.ScopePass, "load")
	endLoad := opts.Timer.Track("load")
	results := make([]TokenizeDirResult, len(files))
	loadFailed := make([]bool, len(files))
	for i, path := range files {
		results[i].Path = path
		fileID, err := fileSet.Load(path)
		if err != nil {
			trace.Error(tracer, trace.ScopeFile, "load", err, loadSpan.ID())
			// placeholder keeps the path addressable for the diagnostic
			fileID = fileSet.AddVirtual(path, nil)
			bag := diag.NewBag(opts.MaxDiagnostics)
			bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: fileID}, "failed to load file: "+err.Error()))
			results[i].Bag = bag
			loadFailed[i] = true
			emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err})
		}
		results[i].FileID = fileID
	}
	endLoad(strconv.Itoa(len(files)) + " files")
	loadSpan.End("")

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	lexSpan, lexCtx := trace.StartSpan(ctx, trace.ScopePass, "lex")
	endLex := opts.Timer.Track("lex")
	g, gctx := errgroup.WithContext(lexCtx)
	g.SetLimit(min(jobs, len(files)))

	for i := range files {
		if loadFailed[i] {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			file := fileSet.Get(results[i].FileID)
			toks, bag, cached := scanFile(gctx, file, opts)
			// индекс i уникален для горутины, мьютекс не нужен
			results[i].Tokens = toks
			results[i].Bag = bag
			results[i].Cached = cached
			return nil
		})
	}

	err = g.Wait()
	endLex("")
	lexSpan.WithExtra("files", strconv.Itoa(len(files))).WithExtra("jobs", strconv.Itoa(jobs)).End("")
	if err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
