package parser

import (
	"github.com/kestrel-sh/kestrel/ast"
	"github.com/kestrel-sh/kestrel/internal/lex"
	"github.com/kestrel-sh/kestrel/internal/liteparse"
	"github.com/kestrel-sh/kestrel/kwerrors"
)

// parseBlockExpr is this core's concrete (if intentionally minimal)
// stand-in for the out-of-scope parse_block_expression collaborator
// (spec.md §1, §6): it must live here rather than in internal/exprparse
// because a block's statements can themselves be keyword forms (a
// nested `let`, even a nested `def`), which means block-body parsing
// necessarily recurses through keyword dispatch.
//
// span is expected to be brace-delimited; an unterminated block closes
// at end of input the same way parse_module_block does (spec.md §4.6),
// reporting Unclosed("}") at a zero-width span but still parsing the
// interior. sig's parameters, flags, and rest are declared as variables
// in the caller's current scope (callers enter a fresh scope around a
// def/export env body before calling this) so the block's statements can
// resolve them.
func (p *Parser) parseBlockExpr(span ast.Span, sig *ast.Signature) (*ast.Block, error) {
	text := p.text(span)
	inner := span
	closed := false
	if len(text) >= 1 && text[0] == '{' {
		inner.Start++
	}
	if len(text) >= 2 && text[len(text)-1] == '}' {
		inner.End--
		closed = true
	}

	if sig != nil {
		declareSignatureVars(p.WS, sig)
	}

	data := p.WS.SourceText(inner)
	tokens, _ := lex.Lex(data, inner.Start, lex.Puncts, true)
	lb := liteparse.Parse(tokens)

	block := ast.NewBlock(span, sig)
	var sticky kwerrors.Sticky
	for _, pipeline := range lb.Pipelines {
		stmt, err := p.DispatchPipeline(pipeline)
		sticky.Report(err)
		block.AddStmt(stmt)
	}
	if !closed {
		sticky.Report(kwerrors.Unclosed{Span: span.Zero(), Delim: "}"})
	}

	return block, sticky.Err()
}

// declareSignatureVars assigns a fresh VarId to each of sig's positional
// parameters, flags, and rest parameter, and records them in the current
// scope, filling in the var_id spec.md §3 says a Signature parameter
// carries once bound.
func declareSignatureVars(ws interface {
	NewVarId() ast.VarId
	DeclareVar(name string, id ast.VarId, ty ast.ValueType)
}, sig *ast.Signature) {
	for i := range sig.Input {
		id := ws.NewVarId()
		sig.Input[i].VarId = id
		ws.DeclareVar(sig.Input[i].Name, id, sig.Input[i].Shape)
	}
	for i := range sig.Flags {
		id := ws.NewVarId()
		sig.Flags[i].VarId = id
		ws.DeclareVar(sig.Flags[i].Name, id, sig.Flags[i].Shape)
	}
	if sig.Rest != nil {
		id := ws.NewVarId()
		sig.Rest.VarId = id
		ws.DeclareVar(sig.Rest.Name, id, sig.Rest.Shape)
	}
}
