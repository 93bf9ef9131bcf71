package parser

import (
	"github.com/kestrel-sh/kestrel/ast"
	"github.com/kestrel-sh/kestrel/internal/exprparse"
	"github.com/kestrel-sh/kestrel/internal/lex"
	"github.com/kestrel-sh/kestrel/kwerrors"
)

// ParseDefPredecl implements the predeclaration pass (spec.md §4.2):
// given the span list of a pipeline whose single command starts with
// `def` or `export def`, reserve the name in the enclosing scope before
// any body is parsed, so peer/forward references resolve.
//
// Signature parse errors are discarded here by contract (step 4.2's
// failure semantics): parse_def re-parses the same signature and
// surfaces any error then.
func (p *Parser) ParseDefPredecl(spans []ast.Span) error {
	idx := 0
	if len(spans) > 0 && p.text(spans[0]) == "export" {
		idx = 1
	}
	if len(spans) < idx+4 {
		return nil
	}

	nameSpan := spans[idx+1]
	sigSpan := spans[idx+2]
	name := lex.Unquote(p.text(nameSpan))

	p.WS.EnterScope()
	sig, _ := exprparse.ParseSignature(p.WS, name, sigSpan)
	p.WS.ExitScope()

	if _, exists := p.WS.LookupPredecl(name); exists {
		return kwerrors.DuplicateCommandDef{Span: nameSpan, Name: name}
	}

	id := p.WS.AddDecl(ast.NewPredecl(ast.NoDeclId, sig))
	p.WS.Predeclare(name, id)
	return nil
}
