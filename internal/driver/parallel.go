package driver

import (
	"context"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"

	"minic/internal/diag"
	"minic/internal/source"
	"minic/internal/trace"
)

// FileResult is the analysis of one file of a directory run.
type FileResult struct {
	Path string
	*Result
	// LoadErr is set when the file could not be read; Result then carries a
	// single LoadFileError diagnostic and no tree.
	LoadErr error
}

type DirResult struct {
	Root    string
	FileSet *source.FileSet
	Files   []FileResult // sorted by path
}

// DiagnosticCount sums the diagnostics of every file.
func (d *DirResult) DiagnosticCount() int {
	n := 0
	for _, f := range d.Files {
		if f.Result != nil {
			n += f.Bag.Len()
		}
	}
	return n
}

// AnalyzeDir analyses every source file below dir concurrently. Files are
// loaded up front; each worker then owns its own lexer, parser and Bag and
// writes into its own result slot. Cancelling ctx stops scheduling new files
// and AnalyzeDir returns the context error with the results gathered so far.
func AnalyzeDir(ctx context.Context, dir string, opts Options) (*DirResult, error) {
	ctx, span := trace.BeginCtx(ctx, trace.ScopeDriver, "analyze-dir")
	defer span.End(dir)

	files, err := ListSourceFiles(dir, opts.Include, opts.Exclude)
	if err != nil {
		return nil, err
	}
	span.WithExtra("files", strconv.Itoa(len(files)))

	fileSet := source.NewFileSetWithBase(dir)
	fileSet.SetEncoding(opts.Encoding)
	ids := make([]source.FileID, len(files))
	loadErrs := make([]error, len(files))
	opts.track("load", func() string {
		for i, path := range files {
			id, err := fileSet.Load(path)
			if err != nil {
				loadErrs[i] = err
				id = fileSet.AddVirtual(path, nil)
			}
			ids[i] = id
			opts.emit(ProgressEvent{Path: path, Status: StatusQueued})
		}
		return strconv.Itoa(len(files)) + " files"
	})

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(files))))

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			opts.emit(ProgressEvent{Path: path, Status: StatusWorking})

			var res *Result
			if loadErrs[i] != nil {
				res = loadFailure(fileSet, ids[i], opts, loadErrs[i])
			} else {
				res = analyzeLoaded(gctx, fileSet, ids[i], opts)
			}
			results[i] = FileResult{Path: path, Result: res, LoadErr: loadErrs[i]}

			status := StatusDone
			if res.HasDiagnostics() {
				status = StatusError
			}
			opts.emit(ProgressEvent{Path: path, Status: status, Diagnostics: res.Bag.Len(), Cached: res.Cached})
			return nil
		})
	}

	err = g.Wait()
	return &DirResult{Root: dir, FileSet: fileSet, Files: results}, err
}

func loadFailure(fs *source.FileSet, id source.FileID, opts Options, err error) *Result {
	file := fs.Get(id)
	bag := diag.NewBag(opts.MaxDiagnostics)
	diag.BagReporter{Bag: bag, File: file}.Report(diag.IOLoadFileError, diag.SevError,
		source.Span{File: id}, "failed to load file: "+err.Error(), nil, nil)
	return &Result{FileSet: fs, File: file, Bag: bag}
}
