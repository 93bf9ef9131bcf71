package parser

import (
	"github.com/kestrel-sh/kestrel/ast"
	"github.com/kestrel-sh/kestrel/internal/exprparse"
	"github.com/kestrel-sh/kestrel/kwerrors"
)

// reservedConfigVarName is the one variable name `let` never retypes
// from its right-hand side (spec.md §4.9: "except for a reserved
// configuration variable id, which keeps its declared type"). Open
// question decision: modeled here as the single well-known name "config"
// a shell driver would bind before any user `let`, rather than inventing
// a second variable-id namespace just for this one exception.
const reservedConfigVarName = "config"

// ParseLet implements `let <pattern> = <expression...>` (spec.md §4.9).
// The right-hand side is parsed before the left so the newly bound
// variable id is not visible inside its own initializer. If no `=` is
// found among the spans, falls back to parse_internal_call treatment so
// the usual missing-argument diagnostics fire.
func (p *Parser) ParseLet(spans []ast.Span) (ast.Statement, error) {
	headSpan := spans[0]
	declId, _ := p.WS.FindDecl("let")

	if len(spans) < 4 {
		return p.parseInternalCallFallback("let", declId, headSpan, spans[1:])
	}

	eqIdx := -1
	for i, s := range spans {
		if p.text(s) == "=" {
			eqIdx = i
			break
		}
	}
	if eqIdx < 0 {
		return p.parseInternalCallFallback("let", declId, headSpan, spans[1:])
	}

	rhsSpans := spans[eqIdx+1:]
	rhsExpr, _, rerr := exprparse.ParseMultispanValue(p.WS, rhsSpans)

	lhsSpans := spans[1:eqIdx]
	var lhsExpr ast.Expression
	var lerr error
	if len(lhsSpans) == 0 {
		lhsExpr = ast.Garbage(headSpan.Zero())
		lerr = missingPositional(spans[:eqIdx], "variable")
	} else {
		lhsExpr, lerr = exprparse.ParseVarLHS(p.WS, lhsSpans)
	}

	if lerr == nil && rerr == nil && lhsExpr.Var != nil && lhsExpr.Var.Name != reservedConfigVarName {
		p.WS.SetVarType(lhsExpr.Var.Id, rhsExpr.Type)
	}

	call := ast.NewCall(declId, "let", headSpan)
	call.AddPositional(lhsExpr)
	call.AddPositional(rhsExpr)

	var sticky kwerrors.Sticky
	sticky.Report(rerr)
	sticky.Report(lerr)
	return ast.PipelineOf(ast.CallExpr(call)), sticky.Err()
}
