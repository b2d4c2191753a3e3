// Package lsp serves minic diagnostics and quick fixes over the Language
// Server Protocol.
package lsp

import (
	"context"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"minic/internal/driver"
)

const serverName = "minic"

// Server keeps the open documents and re-analyses one on every change.
type Server struct {
	opts    driver.Options
	version string
	handler protocol.Handler
	server  *server.Server

	mu   sync.Mutex
	docs map[protocol.DocumentUri]string
}

// NewServer builds a server analysing documents with opts. The cache and
// progress hooks of opts are ignored.
func NewServer(opts driver.Options, version string, debug bool) *Server {
	opts.Cache = nil
	opts.Progress = nil
	opts.Timer = nil
	s := &Server{
		opts:    opts,
		version: version,
		docs:    make(map[protocol.DocumentUri]string),
	}
	s.handler = protocol.Handler{
		Initialize:             s.initialize,
		Initialized:            s.initialized,
		Shutdown:               s.shutdown,
		SetTrace:               s.setTrace,
		TextDocumentDidOpen:    s.didOpen,
		TextDocumentDidChange:  s.didChange,
		TextDocumentDidClose:   s.didClose,
		TextDocumentCodeAction: s.codeAction,
	}
	s.server = server.NewServer(&s.handler, serverName, debug)
	return s
}

// RunStdio serves a single client over stdin/stdout until it exits.
func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(_ *glsp.Context, _ *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()
	openClose := true
	change := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: &openClose,
		Change:    &change,
	}
	capabilities.CodeActionProvider = true

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(_ *glsp.Context, _ *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(_ *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) didOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.update(params.TextDocument.URI, params.TextDocument.Text)
	s.publish(ctx, params.TextDocument.URI)
	return nil
}

func (s *Server) didChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	// full sync: the last change carries the whole document
	switch change := params.ContentChanges[len(params.ContentChanges)-1].(type) {
	case protocol.TextDocumentContentChangeEventWhole:
		s.update(params.TextDocument.URI, change.Text)
	case protocol.TextDocumentContentChangeEvent:
		s.update(params.TextDocument.URI, change.Text)
	default:
		return nil
	}
	s.publish(ctx, params.TextDocument.URI)
	return nil
}

func (s *Server) didClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.mu.Lock()
	delete(s.docs, params.TextDocument.URI)
	s.mu.Unlock()
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (s *Server) codeAction(_ *glsp.Context, params *protocol.CodeActionParams) (any, error) {
	uri := params.TextDocument.URI
	res, ok := s.analyze(uri)
	if !ok {
		return nil, nil
	}
	return quickFixes(uri, res.File, res.Diagnostics(), params.Range), nil
}

func (s *Server) update(uri protocol.DocumentUri, text string) {
	s.mu.Lock()
	s.docs[uri] = text
	s.mu.Unlock()
}

func (s *Server) analyze(uri protocol.DocumentUri) (*driver.Result, bool) {
	s.mu.Lock()
	text, ok := s.docs[uri]
	s.mu.Unlock()
	if !ok {
		return nil, false
	}
	return driver.AnalyzeSource(context.Background(), uriToPath(uri), []byte(text), s.opts), true
}

func (s *Server) publish(ctx *glsp.Context, uri protocol.DocumentUri) {
	params, ok := s.diagnosticsFor(uri)
	if ok {
		ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, params)
	}
}

func (s *Server) diagnosticsFor(uri protocol.DocumentUri) (protocol.PublishDiagnosticsParams, bool) {
	res, ok := s.analyze(uri)
	if !ok {
		return protocol.PublishDiagnosticsParams{}, false
	}
	return protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: toProtocol(uri, res.File, res.Diagnostics()),
	}, true
}
