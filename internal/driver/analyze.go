package driver

import (
	"context"
	"fmt"
	"strconv"

	"fortio.org/safecast"

	"minic/internal/ast"
	"minic/internal/diag"
	"minic/internal/lexer"
	"minic/internal/parser"
	"minic/internal/source"
	"minic/internal/trace"
)

// Result is the outcome of analysing one file.
type Result struct {
	FileSet *source.FileSet
	File    *source.File
	// Builder holds the syntax tree; it is nil when the result came from the
	// cache, which only keeps diagnostics.
	Builder *ast.Builder
	Tree    ast.FileID
	Bag     *diag.Bag
	// Fatal reports that lexing stopped early; Tree is partial.
	Fatal  bool
	Cached bool
}

// Diagnostics returns the diagnostics in discovery order.
func (r *Result) Diagnostics() []diag.Diagnostic {
	if r == nil || r.Bag == nil {
		return nil
	}
	return r.Bag.Items()
}

// HasDiagnostics reports whether the file had any error.
func (r *Result) HasDiagnostics() bool {
	return r != nil && r.Bag != nil && r.Bag.HasErrors()
}

// AnalyzeSource lexes and parses in-memory content. name is used for
// positions only. Content goes through the same BOM/CRLF/encoding
// normalisation as files on disk.
func AnalyzeSource(ctx context.Context, name string, content []byte, opts Options) *Result {
	fs := source.NewFileSet()
	fs.SetEncoding(opts.Encoding)
	id, err := fs.AddRaw(name, content, source.FileVirtual)
	if err != nil {
		// undecodable input is analysed byte for byte
		id = fs.AddVirtual(name, content)
	}
	return analyzeLoaded(ctx, fs, id, opts)
}

// AnalyzeFile loads path from disk and analyses it.
func AnalyzeFile(ctx context.Context, path string, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	fs.SetEncoding(opts.Encoding)

	var (
		id      source.FileID
		loadErr error
	)
	opts.track("load", func() string {
		id, loadErr = fs.Load(path)
		return path
	})
	if loadErr != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, loadErr)
	}
	return analyzeLoaded(ctx, fs, id, opts), nil
}

// analyzeLoaded consults the cache before running the pipeline and stores
// fresh results afterwards.
func analyzeLoaded(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) *Result {
	file := fs.Get(id)
	key := cacheKey(file, opts)
	if opts.Cache != nil {
		if res, ok := opts.Cache.lookup(key, fs, file, opts.MaxDiagnostics); ok {
			trace.Point(ctx, trace.ScopeFile, "cache-hit", file.Path)
			return res
		}
	}

	res := analyze(ctx, fs, id, opts)
	if opts.Cache != nil {
		if err := opts.Cache.store(key, res); err != nil {
			trace.Point(ctx, trace.ScopeFile, "cache-store-failed", err.Error())
		}
	}
	return res
}

// analyze runs lexer and parser over one loaded file with a fresh Bag.
func analyze(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) *Result {
	file := fs.Get(id)
	ctx, span := trace.BeginCtx(ctx, trace.ScopeFile, "file:"+file.Path)

	bag := diag.NewBag(opts.MaxDiagnostics)
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag, File: file})
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(hintsFor(file))

	maxErrors, err := safecast.Conv[uint](max(opts.MaxDiagnostics, 0))
	if err != nil {
		panic(fmt.Errorf("max diagnostics overflow: %w", err))
	}

	var res parser.Result
	opts.track("parse", func() string {
		_, pass := trace.BeginCtx(ctx, trace.ScopePass, "parse")
		res = parser.ParseFile(ctx, lx, builder, parser.Options{
			MaxErrors: maxErrors,
			Reporter:  reporter,
		})
		decls := len(builder.Files.Get(res.File).Decls)
		pass.WithExtra("decls", strconv.Itoa(decls)).End("")
		return fmt.Sprintf("%s: %d decls", file.Path, decls)
	})

	span.WithExtra("diagnostics", strconv.Itoa(bag.Len())).
		WithExtra("duplicates", strconv.Itoa(reporter.Suppressed())).
		End("")
	return &Result{
		FileSet: fs,
		File:    file,
		Builder: builder,
		Tree:    res.File,
		Bag:     bag,
		Fatal:   res.Fatal || bag.HasFatal(),
	}
}

// hintsFor sizes the arenas from the file length.
func hintsFor(file *source.File) ast.Hints {
	n := uint(file.Size())
	return ast.Hints{
		Files: 1,
		Decls: n/64 + 1,
		Stmts: n/24 + 1,
		Exprs: n/8 + 1,
	}
}
