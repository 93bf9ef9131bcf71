package parser

import (
	"github.com/kestrel-sh/kestrel/ast"
	"github.com/kestrel-sh/kestrel/internal/exprparse"
)

// ParseModule implements `module <name> <body>` (spec.md §4.6).
func (p *Parser) ParseModule(spans []ast.Span) (ast.Statement, error) {
	headSpan := spans[0]
	declId, _ := p.WS.FindDecl("module")
	call := ast.NewCall(declId, "module", headSpan)

	if len(spans) < 2 {
		return ast.GarbageStatement(headSpan), missingPositional(spans, "name")
	}
	nameSpan := spans[1]
	nameExpr := exprparse.ParseString(p.WS, nameSpan)
	name := nameExpr.Literal.Text
	call.AddPositional(nameExpr)

	if len(spans) < 3 {
		return ast.GarbageStatement(ast.Merge(headSpan, nameSpan)), missingPositional(spans[:2], "body")
	}
	bodySpan := spans[2]

	block, overlay, err := p.ParseModuleBlock(bodySpan)
	blockId := p.WS.AddBlock(block)
	p.WS.AddOverlay(name, overlay)

	call.AddPositional(ast.Expression{
		Kind: ast.ExprBlockRef, Span: bodySpan, Type: ast.BlockType,
		BlockRef: &ast.BlockRef{Id: blockId},
	})

	return ast.PipelineOf(ast.CallExpr(call)), err
}
