package parser

import (
	"os"
	"strconv"
	"unicode/utf8"

	"github.com/kestrel-sh/kestrel/ast"
	"github.com/kestrel-sh/kestrel/internal/exprparse"
	"github.com/kestrel-sh/kestrel/kwerrors"
	"github.com/kestrel-sh/kestrel/workingset"
)

// ParseSource implements `source <filename>` (spec.md §4.10): canonicalize
// the path, read it, and recurse into Parse so its definitions land in
// the current working set. On success, the resulting BlockId is appended
// as an integer positional so the evaluator can execute the file's body;
// on any failure the call node is still returned, with the block id
// positional omitted.
func (p *Parser) ParseSource(spans []ast.Span) (ast.Statement, error) {
	headSpan := spans[0]
	declId, _ := p.WS.FindDecl("source")
	call := ast.NewCall(declId, "source", headSpan)

	if len(spans) < 2 {
		return ast.GarbageStatement(headSpan), missingPositional(spans, "filename")
	}
	pathSpan := spans[1]
	pathExpr := exprparse.ParseString(p.WS, pathSpan)
	call.AddPositional(pathExpr)
	path := pathExpr.Literal.Text

	if !utf8.ValidString(path) {
		return ast.PipelineOf(ast.CallExpr(call)), kwerrors.NonUtf8{Span: pathSpan}
	}
	expanded, eerr := workingset.ExpandHomeDir(path)
	if eerr != nil {
		return ast.PipelineOf(ast.CallExpr(call)), kwerrors.FileNotFound{Span: pathSpan, Path: path}
	}
	real, cerr := workingset.Canonicalize(expanded)
	if cerr != nil {
		return ast.PipelineOf(ast.CallExpr(call)), kwerrors.FileNotFound{Span: pathSpan, Path: path}
	}
	data, rerr := os.ReadFile(real)
	if rerr != nil {
		return ast.PipelineOf(ast.CallExpr(call)), kwerrors.FileNotFound{Span: pathSpan, Path: path}
	}

	block, perr := p.Parse(real, data)
	if perr != nil {
		return ast.PipelineOf(ast.CallExpr(call)), perr
	}

	blockId := p.WS.AddBlock(block)
	call.AddPositional(ast.Expression{
		Kind: ast.ExprLiteral, Span: pathSpan.Zero(), Type: ast.IntType,
		Literal: &ast.Literal{Text: strconv.Itoa(int(blockId))},
	})

	return ast.PipelineOf(ast.CallExpr(call)), nil
}
