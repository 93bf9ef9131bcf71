package parser

import (
	"fmt"

	"github.com/kestrel-sh/kestrel/ast"
	"github.com/kestrel-sh/kestrel/internal/exprparse"
	"github.com/kestrel-sh/kestrel/internal/liteparse"
	"github.com/kestrel-sh/kestrel/kwerrors"
	"github.com/kestrel-sh/kestrel/workingset"
)

// DispatchPipeline routes one lite pipeline to its keyword parser, or
// treats it as a sequence of ordinary calls (spec.md §4.1). Used both for
// top-level program statements and for statements inside a block body —
// unlike module-block dispatch (parseModuleInterior), any keyword is
// accepted here, not just def/export.
func (p *Parser) DispatchPipeline(pipeline liteparse.LitePipeline) (ast.Statement, error) {
	if len(pipeline.Commands) == 0 {
		return ast.GarbageStatement(ast.Unknown), kwerrors.InternalError{Span: ast.Unknown, Msg: "empty pipeline"}
	}
	if len(pipeline.Commands) == 1 {
		return p.dispatchCommand(pipeline.Commands[0])
	}

	var exprs []ast.Expression
	var sticky kwerrors.Sticky
	for _, cmd := range pipeline.Commands {
		expr, err := p.parseGenericCall(cmd)
		sticky.Report(err)
		exprs = append(exprs, expr)
	}
	if sticky.Err() != nil {
		return ast.GarbageStatement(spanOfPipeline(pipeline)), sticky.Err()
	}
	return ast.PipelineOf(exprs...), nil
}

func (p *Parser) dispatchCommand(cmd liteparse.LiteCommand) (ast.Statement, error) {
	if len(cmd.Spans) == 0 {
		return ast.GarbageStatement(ast.Unknown), kwerrors.InternalError{Span: ast.Unknown, Msg: "empty command"}
	}
	head := p.text(cmd.FirstSpan())
	if !workingset.IsReservedKeyword(head) {
		expr, err := p.parseGenericCall(cmd)
		return ast.PipelineOf(expr), err
	}

	switch head {
	case "def":
		return p.ParseDef(cmd.Spans)
	case "alias":
		return p.ParseAlias(cmd.Spans)
	case "export":
		stmt, _, err := p.ParseExport(cmd.Spans)
		return stmt, err
	case "module":
		return p.ParseModule(cmd.Spans)
	case "use":
		return p.ParseUse(cmd.Spans)
	case "hide":
		return p.ParseHide(cmd.Spans)
	case "let":
		return p.ParseLet(cmd.Spans)
	case "source":
		return p.ParseSource(cmd.Spans)
	case "register":
		return p.ParseRegister(cmd.Spans)
	default:
		return ast.GarbageStatement(cmd.FirstSpan()), kwerrors.UnexpectedKeyword{Span: cmd.FirstSpan(), Keyword: head}
	}
}

// parseGenericCall is the minimal stand-in for the out-of-scope
// "ordinary call" path (parse_internal_call for a non-keyword decl):
// look the head up in the working set and consume one value per
// remaining span. A lone span that names no command but is an int or
// bool literal (e.g. the `1` in `{ 1 }`) is returned as that value.
func (p *Parser) parseGenericCall(cmd liteparse.LiteCommand) (ast.Expression, error) {
	head := cmd.FirstSpan()
	name := p.text(head)
	declId, ok := p.WS.FindDecl(name)
	if !ok {
		if len(cmd.Spans) == 1 {
			expr, _, err := exprparse.ParseMultispanValue(p.WS, cmd.Spans)
			if err == nil && expr.Kind == ast.ExprLiteral && expr.Type != ast.StringType {
				return expr, nil
			}
		}
		return ast.Garbage(head), kwerrors.UnknownState{Span: head, Msg: fmt.Sprintf("no command named %q", name)}
	}

	call := ast.NewCall(declId, name, head)
	rest := cmd.Rest()
	var sticky kwerrors.Sticky
	for i := 0; i < len(rest); {
		expr, n, err := exprparse.ParseMultispanValue(p.WS, rest[i:])
		sticky.Report(err)
		call.AddPositional(expr)
		if n <= 0 {
			n = 1
		}
		i += n
	}
	return ast.CallExpr(call), sticky.Err()
}

// parseInternalCallFallback builds a Call against declId/name by
// consuming one value per span in argSpans, the way an ordinary
// builtin invocation is parsed (parse_internal_call). Used by
// parse_let when no `=` is found (spec.md §4.9); its arity check goes
// through exprparse.CheckCallArity, the same helper parse_register calls
// directly for its positional shape check.
func (p *Parser) parseInternalCallFallback(name string, declId ast.DeclId, headSpan ast.Span, argSpans []ast.Span) (ast.Statement, error) {
	call := ast.NewCall(declId, name, headSpan)
	var sticky kwerrors.Sticky
	for i := 0; i < len(argSpans); {
		expr, n, err := exprparse.ParseMultispanValue(p.WS, argSpans[i:])
		sticky.Report(err)
		call.AddPositional(expr)
		if n <= 0 {
			n = 1
		}
		i += n
	}
	if err := exprparse.CheckCallArity(name, 2, 2, len(call.Positional), call.FullSpan(), "pattern"); err != nil {
		sticky.Report(err)
	}
	return ast.PipelineOf(ast.CallExpr(call)), sticky.Err()
}
