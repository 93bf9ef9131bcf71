package parser

import (
	"fmt"

	"github.com/kestrel-sh/kestrel/ast"
	"github.com/kestrel-sh/kestrel/internal/lex"
	"github.com/kestrel-sh/kestrel/kwerrors"
	"github.com/kestrel-sh/kestrel/workingset"
)

// ParseAlias implements `alias <name> = <replacement...>` (spec.md
// §4.4). Valid forms always emit a well-formed Call node; invalid forms
// yield garbage + InternalError.
func (p *Parser) ParseAlias(spans []ast.Span) (ast.Statement, error) {
	headSpan := spans[0]
	declId, _ := p.WS.FindDecl("alias")
	call := ast.NewCall(declId, "alias", headSpan)

	if len(spans) < 4 {
		return ast.GarbageStatement(headSpan), kwerrors.InternalError{
			Span: lastSpan(spans).Zero(),
			Msg:  "alias requires a name, '=', and a replacement",
		}
	}

	nameSpan := spans[1]
	name := lex.UnquoteDouble(p.text(nameSpan))
	if workingset.IsReservedKeyword(name) {
		return ast.GarbageStatement(headSpan), kwerrors.InternalError{
			Span: nameSpan,
			Msg:  fmt.Sprintf("%q collides with a reserved keyword", name),
		}
	}

	eqSpan := spans[2]
	if p.text(eqSpan) != "=" {
		return ast.GarbageStatement(headSpan), kwerrors.InternalError{
			Span: eqSpan,
			Msg:  "expected '=' after alias name",
		}
	}

	replacementSpans := spans[3:]
	replacement := make([]string, 0, len(replacementSpans))
	for _, s := range replacementSpans {
		replacement = append(replacement, p.text(s))
	}
	p.WS.DeclareAlias(name, replacement)

	nameExpr := ast.Expression{Kind: ast.ExprLiteral, Span: nameSpan, Type: ast.StringType, Literal: &ast.Literal{Text: name}}
	call.AddPositional(nameExpr)
	call.AddPositional(ast.Expression{
		Kind: ast.ExprOther, Span: spanOfSpans(replacementSpans), Type: ast.AnyType, Other: replacement,
	})

	return ast.PipelineOf(ast.CallExpr(call)), nil
}
