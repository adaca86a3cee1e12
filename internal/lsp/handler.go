// Package lsp implements a language server for IFPP filter source,
// publishing parse/compile diagnostics and basic semantic tokens over
// tliron/glsp, grounded on the original compiler's own editor handler.
package lsp

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"ifppc/internal/ast"
	"ifppc/internal/compiler"
	"ifppc/internal/parser"
)

// SemanticTokenTypes is the set of token types this server declares support for.
var SemanticTokenTypes = []string{
	"namespace",
	"type",
	"function",
	"variable",
	"property",
	"keyword",
	"modifier",
}

// SemanticTokenModifiers is the set of token modifiers this server declares support for.
var SemanticTokenModifiers = []string{
	"declaration",
	"readonly",
}

// Handler implements the LSP server handlers for IFPP filter source.
type Handler struct {
	mu    sync.RWMutex
	files map[string]*ast.File
}

// NewHandler creates and returns a new Handler instance.
func NewHandler() *Handler {
	return &Handler{files: make(map[string]*ast.File)}
}

func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Println("ifpp-lsp Initialize called")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
	}, nil
}

func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Println("ifpp-lsp Initialized")
	return nil
}

func (h *Handler) Shutdown(ctx *glsp.Context) error {
	log.Println("ifpp-lsp Shutdown")
	return nil
}

func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	return h.refresh(ctx, params.TextDocument.URI, params.TextDocument.Text)
}

func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return h.refresh(ctx, params.TextDocument.URI, string(content))
}

func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}
	h.mu.Lock()
	delete(h.files, path)
	h.mu.Unlock()
	return nil
}

func (h *Handler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	h.mu.RLock()
	f := h.files[path]
	h.mu.RUnlock()

	tokens := collectSemanticTokens(f)

	var data []uint32
	var prevLine, prevStart uint32
	for _, tok := range tokens {
		deltaLine := tok.Line - prevLine
		deltaStart := tok.StartChar
		if deltaLine == 0 {
			deltaStart = tok.StartChar - prevStart
		}
		data = append(data, deltaLine, deltaStart, tok.Length, uint32(tok.TokenType), uint32(tok.TokenModifiers))
		prevLine, prevStart = tok.Line, tok.StartChar
	}

	return &protocol.SemanticTokens{Data: data}, nil
}

// refresh reparses and recompiles source, caching the resulting AST and
// publishing any diagnostics.
func (h *Handler) refresh(ctx *glsp.Context, rawURI protocol.DocumentUri, source string) error {
	path, err := uriToPath(rawURI)
	if err != nil {
		return err
	}

	f, perrs := parser.ParseString(path, source)

	var all []protocol.Diagnostic
	if len(perrs) > 0 {
		all = ConvertCompilerErrors(perrs)
	} else if f != nil {
		_, errs := compiler.New(compiler.Options{}).Compile(f)
		all = ConvertCompilerErrors(errs)
	}

	h.mu.Lock()
	h.files[path] = f
	h.mu.Unlock()

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         rawURI,
		Diagnostics: all,
	})
	return nil
}

func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path), nil
}

func ptrBool(b bool) *bool { return &b }

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind { return &k }
