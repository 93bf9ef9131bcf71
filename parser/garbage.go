package parser

import (
	"github.com/kestrel-sh/kestrel/ast"
	"github.com/kestrel-sh/kestrel/internal/liteparse"
	"github.com/kestrel-sh/kestrel/kwerrors"
)

// lastSpan returns the last span in spans, or ast.Unknown if spans is
// empty, the anchor boundary missing-token diagnostics attach to.
func lastSpan(spans []ast.Span) ast.Span {
	if len(spans) == 0 {
		return ast.Unknown
	}
	return spans[len(spans)-1]
}

// missingPositional builds the MissingPositional error spec.md §4.3/§8
// describes: a zero-width span immediately after the last present token.
func missingPositional(spans []ast.Span, name string) error {
	return kwerrors.MissingPositional{Span: lastSpan(spans).Zero(), Name: name}
}

// spanOfSpans merges a list of spans into the smallest span containing
// them all, or ast.Unknown if the list is empty.
func spanOfSpans(spans []ast.Span) ast.Span {
	if len(spans) == 0 {
		return ast.Unknown
	}
	span := spans[0]
	for _, s := range spans[1:] {
		span = ast.Merge(span, s)
	}
	return span
}

// spanOfPipeline merges every command's spans in a lite pipeline into one
// outer span, used when a whole pipeline turns out to be garbage.
func spanOfPipeline(pipeline liteparse.LitePipeline) ast.Span {
	var all []ast.Span
	for _, cmd := range pipeline.Commands {
		all = append(all, cmd.Spans...)
	}
	return spanOfSpans(all)
}

// signatureExpr wraps a parsed *ast.Signature as an ExprOther expression,
// the shape positional 1 of a `def` call carries (spec.md §4.3 step 3).
func signatureExpr(sig *ast.Signature, span ast.Span) ast.Expression {
	return ast.Expression{Kind: ast.ExprOther, Span: span, Type: ast.AnyType, Other: sig}
}

// overlayNames collects an overlay's exported decl names, used to build
// ExportNotFound suggestions.
func overlayNames(overlay *ast.Overlay) []string {
	names := make([]string, 0, len(overlay.Decls))
	for name := range overlay.Decls {
		names = append(names, name)
	}
	return names
}

// exportedName reads the name recorded as positional 0 of an
// `export def`/`export env` call's inner statement, used by
// parse_module_block to key the overlay it accumulates.
func exportedName(stmt ast.Statement) string {
	if stmt.IsGarbage || len(stmt.Pipeline) == 0 {
		return ""
	}
	call := stmt.Pipeline[0].Call
	if call == nil || len(call.Positional) == 0 {
		return ""
	}
	lit := call.Positional[0].Literal
	if lit == nil {
		return ""
	}
	return lit.Text
}
