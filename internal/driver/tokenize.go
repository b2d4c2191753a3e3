package driver

import (
	"context"
	"fmt"
	"strconv"

	"minic/internal/diag"
	"minic/internal/lexer"
	"minic/internal/source"
	"minic/internal/token"
	"minic/internal/trace"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token // ends with EOF
	Bag     *diag.Bag
}

// Tokenize loads path and returns its complete token stream.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fs.SetEncoding(opts.Encoding)
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return tokenizeLoaded(ctx, fs, fileID, opts), nil
}

// TokenizeSource is Tokenize over in-memory content.
func TokenizeSource(ctx context.Context, name string, content []byte, opts Options) *TokenizeResult {
	fs := source.NewFileSet()
	fs.SetEncoding(opts.Encoding)
	id, err := fs.AddRaw(name, content, source.FileVirtual)
	if err != nil {
		id = fs.AddVirtual(name, content)
	}
	return tokenizeLoaded(ctx, fs, id, opts)
}

func tokenizeLoaded(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) *TokenizeResult {
	file := fs.Get(id)
	bag := diag.NewBag(opts.MaxDiagnostics)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag, File: file}})

	_, span := trace.BeginCtx(ctx, trace.ScopePass, "lex")
	var tokens []token.Token
	opts.track("lex", func() string {
		for {
			tok := lx.Next()
			tokens = append(tokens, tok)
			if tok.Kind == token.EOF {
				break
			}
		}
		return strconv.Itoa(len(tokens)) + " tokens"
	})
	span.WithExtra("tokens", strconv.Itoa(len(tokens))).End("")

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}
}
