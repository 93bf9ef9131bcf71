package parser

import (
	"github.com/kestrel-sh/kestrel/ast"
	"github.com/kestrel-sh/kestrel/internal/exprparse"
	"github.com/kestrel-sh/kestrel/kwerrors"
)

// ParseHide implements `hide <import-pattern>` (spec.md §4.8), the
// inverse of parse_use.
//
// Open question decision (spec.md §9): hiding only shadows the specific
// name bindings this call computes (head-prefixed for a module, bare for
// the synthesized single-decl overlay) rather than every scope entry
// that happens to share the underlying DeclId across other prefixes.
// Each name binding is an independent scope entry even when several
// share a DeclId, so this is the "per-prefix" reading of the open
// question, documented here rather than left to silently diverge.
func (p *Parser) ParseHide(spans []ast.Span) (ast.Statement, error) {
	headSpan := spans[0]
	declId, _ := p.WS.FindDecl("hide")
	call := ast.NewCall(declId, "hide", headSpan)

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
	bareKeys := false

	if ov, ok := p.WS.FindOverlay(headName); ok {
		overlay = ov
	} else if pattern.MemberKind == ast.MemberEmpty {
		if id, ok := p.WS.FindDecl(headName); ok {
			overlay = ast.NewOverlay(headName)
			overlay.AddDecl(headName, id)
			bareKeys = true
		} else if _, isAlias := p.WS.LookupAlias(headName); isAlias {
			p.WS.ForgetAlias(headName)
			pattern.MarkHidden(headName)
			call.AddPositional(ast.Expression{
				Kind: ast.ExprImportPattern, Span: spanOfSpans(patternSpans), Type: ast.AnyType, ImportPattern: pattern,
			})
			return ast.PipelineOf(ast.CallExpr(call)), nil
		} else {
			return ast.GarbageStatement(pattern.HeadSpan), kwerrors.ModuleNotFound{Span: pattern.HeadSpan, Name: headName}
		}
	} else {
		return ast.GarbageStatement(pattern.HeadSpan), kwerrors.ModuleNotFound{Span: pattern.HeadSpan, Name: headName}
	}

	var declsToHide map[string]ast.DeclId
	if bareKeys {
		declsToHide = overlay.DeclsBare()
	} else {
		declsToHide, err = p.declsForPattern(overlay, pattern, headName)
		if err != nil {
			return ast.GarbageStatement(pattern.HeadSpan), err
		}
	}

	names := make([]string, 0, len(declsToHide))
	for name := range declsToHide {
		names = append(names, name)
		pattern.MarkHidden(name)
	}
	p.WS.HideDecls(names)

	call.AddPositional(ast.Expression{
		Kind: ast.ExprImportPattern, Span: spanOfSpans(patternSpans), Type: ast.AnyType, ImportPattern: pattern,
	})

	return ast.PipelineOf(ast.CallExpr(call)), nil
}
