package parser

import (
	"github.com/kestrel-sh/kestrel/ast"
	"github.com/kestrel-sh/kestrel/internal/exprparse"
	"github.com/kestrel-sh/kestrel/kwerrors"
)

// ParseDef implements `def <name> <signature> <block>` (spec.md §4.3).
func (p *Parser) ParseDef(spans []ast.Span) (ast.Statement, error) {
	headSpan := spans[0]
	declId, _ := p.WS.FindDecl("def")
	call := ast.NewCall(declId, "def", headSpan)

	if len(spans) < 2 {
		return ast.GarbageStatement(headSpan), missingPositional(spans, "name")
	}
	nameSpan := spans[1]
	nameExpr := exprparse.ParseString(p.WS, nameSpan)
	name := nameExpr.Literal.Text
	call.AddPositional(nameExpr)

	p.WS.EnterScope()

	if len(spans) < 3 {
		p.WS.ExitScope()
		return ast.GarbageStatement(ast.Merge(headSpan, nameSpan)), missingPositional(spans[:2], "signature")
	}
	sigSpan := spans[2]
	sig, sigErr := exprparse.ParseSignature(p.WS, name, sigSpan)
	call.AddPositional(signatureExpr(sig, sigSpan))

	if len(spans) < 4 {
		p.WS.ExitScope()
		return ast.GarbageStatement(ast.Merge(headSpan, sigSpan)), missingPositional(spans[:3], "block")
	}
	blockSpan := spans[3]
	block, blockErr := p.parseBlockExpr(blockSpan, sig)
	blockId := ast.NoBlockId
	if block != nil {
		blockId = p.WS.AddBlock(block)
	}
	call.AddPositional(ast.Expression{
		Kind: ast.ExprBlockRef, Span: blockSpan, Type: ast.BlockType,
		BlockRef: &ast.BlockRef{Id: blockId},
	})

	p.WS.ExitScope()

	var sticky kwerrors.Sticky
	sticky.Report(sigErr)
	sticky.Report(blockErr)

	if sig != nil && blockId != ast.NoBlockId {
		predeclId, ok := p.WS.LookupPredecl(name)
		if !ok {
			sticky.Report(kwerrors.InternalError{Span: nameSpan, Msg: "Predeclaration failed to add declaration"})
		} else {
			p.WS.GetDecl(predeclId).BindBlock(name, sig, blockId)
			p.WS.MergePredecl(name)
		}
	}

	return ast.PipelineOf(ast.CallExpr(call)), sticky.Err()
}
