package parser

import (
	"github.com/kestrel-sh/kestrel/ast"
	"github.com/kestrel-sh/kestrel/internal/exprparse"
	"github.com/kestrel-sh/kestrel/kwerrors"
)

// ExportableKind tags which variant of Exportable is populated.
type ExportableKind int

const (
	ExportableDecl ExportableKind = iota
	ExportableEnvVar
)

// Exportable is the extra output parse_export produces alongside its
// Statement (spec.md §4.5: "the returned triple is (Statement,
// Option<Exportable>, Option<Error>)"), consumed by parse_module_block to
// populate the Overlay it is accumulating.
type Exportable struct {
	Kind    ExportableKind
	DeclId  ast.DeclId
	BlockId ast.BlockId
}

// ParseExport implements `export <kind> ...` (spec.md §4.5). Kinds
// handled: def and env; any other kind yields Expected("def or env
// keyword").
func (p *Parser) ParseExport(spans []ast.Span) (ast.Statement, *Exportable, error) {
	headSpan := spans[0]

	if len(spans) < 2 {
		return ast.GarbageStatement(headSpan), nil, kwerrors.Expected{Span: headSpan.Zero(), What: "def or env keyword"}
	}

	kindSpan := spans[1]
	switch p.text(kindSpan) {
	case "def":
		return p.parseExportDef(headSpan, spans[1:])
	case "env":
		return p.parseExportEnv(headSpan, spans[2:])
	default:
		return ast.GarbageStatement(headSpan), nil, kwerrors.Expected{Span: kindSpan, What: "def or env keyword"}
	}
}

// parseExportDef reuses ParseDef on the remaining spans, then rewrites
// the inner Call's decl_id to the `export def` built-in, widens its head
// span, and re-resolves the declared name for Exportable::Decl.
func (p *Parser) parseExportDef(headSpan ast.Span, defSpans []ast.Span) (ast.Statement, *Exportable, error) {
	stmt, err := p.ParseDef(defSpans)
	if stmt.IsGarbage || len(stmt.Pipeline) == 0 {
		return stmt, nil, err
	}

	call := stmt.Pipeline[0].Call
	exportDeclId, _ := p.WS.FindDecl("export def")
	call.DeclId = exportDeclId
	call.Decl = "export def"
	call.HeadSpan = ast.Merge(headSpan, call.HeadSpan)
	stmt.Span = ast.Merge(headSpan, stmt.Span)

	var sticky kwerrors.Sticky
	sticky.Report(err)

	if len(call.Positional) == 0 || call.Positional[0].Literal == nil {
		sticky.Report(kwerrors.InternalError{Span: headSpan, Msg: "export def produced no name"})
		return stmt, nil, sticky.Err()
	}
	name := call.Positional[0].Literal.Text
	declId, ok := p.WS.FindDecl(name)
	if !ok {
		sticky.Report(kwerrors.InternalError{Span: call.Positional[0].Span, Msg: "failed to resolve exported declaration"})
		return stmt, nil, sticky.Err()
	}

	return stmt, &Exportable{Kind: ExportableDecl, DeclId: declId}, sticky.Err()
}

// parseExportEnv implements `export env <name> <block>`.
func (p *Parser) parseExportEnv(headSpan ast.Span, spans []ast.Span) (ast.Statement, *Exportable, error) {
	declId, _ := p.WS.FindDecl("export env")
	call := ast.NewCall(declId, "export env", headSpan)

	if len(spans) < 1 {
		return ast.GarbageStatement(headSpan), nil, missingPositional(spans, "name")
	}
	nameSpan := spans[0]
	nameExpr := exprparse.ParseString(p.WS, nameSpan)
	call.AddPositional(nameExpr)

	if len(spans) < 2 {
		return ast.GarbageStatement(ast.Merge(headSpan, nameSpan)), nil, missingPositional(spans[:1], "block")
	}
	blockSpan := spans[1]

	p.WS.EnterScope()
	block, blockErr := p.parseBlockExpr(blockSpan, ast.NewSignature(nameExpr.Literal.Text, blockSpan))
	p.WS.ExitScope()

	blockId := ast.NoBlockId
	if block != nil {
		blockId = p.WS.AddBlock(block)
	}
	call.AddPositional(ast.Expression{
		Kind: ast.ExprBlockRef, Span: blockSpan, Type: ast.BlockType,
		BlockRef: &ast.BlockRef{Id: blockId},
	})

	return ast.PipelineOf(ast.CallExpr(call)), &Exportable{Kind: ExportableEnvVar, BlockId: blockId}, blockErr
}
