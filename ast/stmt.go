package ast

// Statement is either a pipeline (an ordered, non-empty sequence of
// expressions) or a garbage statement produced on error. Every keyword
// parser returns exactly one Statement (spec.md §6: "Every returned
// Statement is either a well-formed pipeline of one call expression or a
// garbage_statement of the same outer span").
type Statement struct {
	IsGarbage bool
	Span      Span
	Pipeline  []Expression
}

// PipelineOf wraps one or more expressions in a pipeline whose span
// covers them all. Keyword parsers pass a single call expression, the
// shape they produce on success.
func PipelineOf(exprs ...Expression) Statement {
	span := Unknown
	if len(exprs) > 0 {
		span = exprs[0].Span
		for _, e := range exprs[1:] {
			span = Merge(span, e.Span)
		}
	}
	return Statement{Span: span, Pipeline: exprs}
}

// GarbageStatement builds a garbage statement occupying span, the AST
// placeholder kept so later passes may continue despite an error
// (spec.md §7, §9 GLOSSARY "Garbage statement").
func GarbageStatement(span Span) Statement {
	return Statement{IsGarbage: true, Span: span}
}
