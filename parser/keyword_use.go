package parser

import (
	"github.com/kestrel-sh/kestrel/ast"
	"github.com/kestrel-sh/kestrel/internal/exprparse"
)

// ParseUse implements `use <import-pattern>` (spec.md §4.7).
func (p *Parser) ParseUse(spans []ast.Span) (ast.Statement, error) {
	headSpan := spans[0]
	declId, _ := p.WS.FindDecl("use")
	call := ast.NewCall(declId, "use", headSpan)

	if len(spans) < 2 {
		return ast.GarbageStatement(headSpan), missingPositional(spans, "import pattern")
	}
	patternSpans := spans[1:]

	pattern, err := exprparse.ParseImportPattern(p.WS, patternSpans)
	if err != nil {
		return ast.GarbageStatement(headSpan), err
	}

	headName := pattern.HeadName
	var overlay *ast.Overlay
	if ov, ok := p.WS.FindOverlay(headName); ok {
		overlay = ov
	} else {
		resolved, rerr := p.resolveModuleFile(headName, pattern.HeadSpan)
		if rerr != nil {
			return ast.GarbageStatement(pattern.HeadSpan), rerr
		}
		overlay = resolved
		headName = overlay.Name
		pattern.HeadName = headName
	}

	declsToUse, uerr := p.declsForPattern(overlay, pattern, headName)
	if uerr != nil {
		return ast.GarbageStatement(pattern.HeadSpan), uerr
	}
	p.WS.UseDecls(declsToUse)

	call.AddPositional(ast.Expression{
		Kind: ast.ExprImportPattern, Span: spanOfSpans(patternSpans), Type: ast.AnyType, ImportPattern: pattern,
	})

	return ast.PipelineOf(ast.CallExpr(call)), nil
}
