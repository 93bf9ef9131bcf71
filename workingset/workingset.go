// Package workingset implements the mutable, scoped symbol table that the
// keyword parsers populate as they walk a block's pipelines: the process
// described in spec.md §3 ("WorkingSet") and §5 (concurrency/resource
// model — single-threaded, exclusively owned by one parsing session).
package workingset

import (
	"github.com/kestrel-sh/kestrel/ast"
)

// ReservedKeywords is the set matched by keyword dispatch (spec.md §4.1).
var ReservedKeywords = map[string]struct{}{
	"def": {}, "alias": {}, "export": {}, "module": {},
	"use": {}, "hide": {}, "let": {}, "source": {}, "register": {},
}

// IsReservedKeyword reports whether name collides with a keyword dispatch
// target, used by parse_alias's "common name check" (spec.md §4.4).
func IsReservedKeyword(name string) bool {
	_, ok := ReservedKeywords[name]
	return ok
}

// WorkingSet is the process-wide, mutable, scoped symbol table described
// in spec.md §3. It is exclusively owned by one parsing session: every
// mutation is synchronous and externally serialized (spec.md §5). Nested
// parser calls (a module parsing its body, `source` recursing into
// `Parse`) receive the same WorkingSet by pointer.
type WorkingSet struct {
	files *fileBuffer

	blocks   []*ast.Block
	decls    []*ast.Decl
	overlays []*ast.Overlay

	// overlayStack lists overlays in the order AddOverlay was called, so
	// FindOverlay can search it like any other named lookup; overlays,
	// once added, outlive the scope they were declared in (they are not
	// part of scopeFrame).
	overlayStack []*ast.Overlay

	scopes []*scopeFrame

	nextVarId ast.VarId

	// PluginsChanged is the plugin-cache-dirty flag from spec.md §6
	// ("Persisted state: the plugin-cache-dirty flag on the working
	// set"). parse_register sets this whenever it successfully registers
	// one or more plugin declarations.
	PluginsChanged bool
}

// New builds an empty working set with one root scope already entered,
// the way a parsing session starts with the outermost (REPL/file) scope
// already active.
func New() *WorkingSet {
	ws := &WorkingSet{files: newFileBuffer()}
	ws.EnterScope()
	return ws
}

// AddFile appends bytes to the session's file buffer and returns the span
// it now occupies (spec.md §3 "add_file"). The span is stable for the
// working set's lifetime (invariant I1).
func (ws *WorkingSet) AddFile(filename string, contents []byte) ast.Span {
	start, end, _ := ws.files.append(filename, contents)
	return ast.Span{Start: start, End: end}
}

// NextSpanStart returns the offset the next AddFile call will start at
// (spec.md §3 "next_span_start"), useful for a parser that wants to
// reserve a span before the bytes it covers are known (not needed by any
// keyword parser here, but part of the WorkingSet contract).
func (ws *WorkingSet) NextSpanStart() int {
	return len(ws.files.bytes())
}

// SourceText returns the bytes covered by span, read from the session's
// file buffer.
func (ws *WorkingSet) SourceText(span ast.Span) []byte {
	return ws.files.segment(span.Start, span.End)
}

// FilenameFor returns the filename whose appended span contains offset,
// used by diagnostics to label a span.
func (ws *WorkingSet) FilenameFor(offset int) string {
	return ws.files.filenameFor(offset)
}

// FileDigest returns the content digest recorded for filename's most
// recent AddFile call (SPEC_FULL.md DOMAIN STACK: go-digest). OverlayTree
// reads it for its annotations; parse_source and parse_use do not consult
// it and always re-read and re-parse their target.
func (ws *WorkingSet) FileDigest(filename string) (string, bool) {
	d, ok := ws.files.digestFor(filename)
	if !ok {
		return "", false
	}
	return d.String(), true
}

// Line returns the 1-indexed line's raw bytes, for diagnostic rendering.
func (ws *WorkingSet) Line(n int) ([]byte, error) {
	return ws.files.line(n)
}

// LineCol converts a byte offset into a 1-indexed (line, column) pair.
func (ws *WorkingSet) LineCol(offset int) (line, col int) {
	return ws.files.lineCol(offset)
}

// AddBlock appends block to the working set's block vector and returns
// its new, permanent BlockId.
func (ws *WorkingSet) AddBlock(block *ast.Block) ast.BlockId {
	id := ast.BlockId(len(ws.blocks))
	ws.blocks = append(ws.blocks, block)
	return id
}

// GetBlock returns the block registered under id.
func (ws *WorkingSet) GetBlock(id ast.BlockId) *ast.Block {
	if int(id) < 0 || int(id) >= len(ws.blocks) {
		return nil
	}
	return ws.blocks[id]
}

// AddDecl appends decl to the working set's decl vector, assigns it a
// permanent DeclId, and returns it.
func (ws *WorkingSet) AddDecl(decl *ast.Decl) ast.DeclId {
	id := ast.DeclId(len(ws.decls))
	decl.Id = id
	ws.decls = append(ws.decls, decl)
	return id
}

// GetDecl returns the decl registered under id.
func (ws *WorkingSet) GetDecl(id ast.DeclId) *ast.Decl {
	if int(id) < 0 || int(id) >= len(ws.decls) {
		return nil
	}
	return ws.decls[id]
}

// GetOverlay returns the overlay registered under id.
func (ws *WorkingSet) GetOverlay(id ast.OverlayId) *ast.Overlay {
	if int(id) < 0 || int(id) >= len(ws.overlays) {
		return nil
	}
	return ws.overlays[id]
}

// NewVarId allocates a fresh VarId, unique for the lifetime of the
// working set.
func (ws *WorkingSet) NewVarId() ast.VarId {
	id := ws.nextVarId
	ws.nextVarId++
	return id
}

// RegisterBuiltin installs a built-in command decl (e.g. "def", "alias",
// "use") in the root scope so keyword parsers can look up their own
// DeclId to stamp onto the Call node they build. Idempotent: calling it
// twice for the same name returns the existing id.
func (ws *WorkingSet) RegisterBuiltin(name string) ast.DeclId {
	if id, ok := ws.scopes[0].decls[name]; ok {
		return id
	}
	id := ws.AddDecl(&ast.Decl{Kind: ast.DeclBuiltin, Name: name, BlockId: ast.NoBlockId})
	ws.scopes[0].decls[name] = id
	return id
}
