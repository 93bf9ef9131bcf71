package parser

import (
	"github.com/kestrel-sh/kestrel/ast"
	"github.com/kestrel-sh/kestrel/internal/lex"
	"github.com/kestrel-sh/kestrel/internal/liteparse"
	"github.com/kestrel-sh/kestrel/kwerrors"
)

// Parse is the top-level entry point named in spec.md §6
// (`parse(working_set, filename?, bytes, is_repl)`), used both for the
// initial program and recursively by parse_source. It appends data to
// the working set's file buffer and dispatches every resulting pipeline
// against the working set's current scope (sourcing a file merges its
// definitions into the caller's scope rather than creating a new one).
func (p *Parser) Parse(filename string, data []byte) (*ast.Block, error) {
	span := p.WS.AddFile(filename, data)
	return p.parseSpan(span)
}

func (p *Parser) parseSpan(span ast.Span) (*ast.Block, error) {
	data := p.WS.SourceText(span)
	tokens, _ := lex.Lex(data, span.Start, lex.Puncts, true)
	lb := liteparse.Parse(tokens)

	var sticky kwerrors.Sticky
	sticky.Report(predeclarePipelines(p, lb))

	block := ast.NewBlock(span, nil)
	for _, pipeline := range lb.Pipelines {
		stmt, err := p.DispatchPipeline(pipeline)
		sticky.Report(err)
		block.AddStmt(stmt)
	}
	return block, sticky.Err()
}

// predeclarePipelines runs the predeclaration pass (spec.md §4.2) over
// every single-command `def`/`export def` pipeline in lb, before any
// body is parsed, returning the first DuplicateCommandDef it encounters
// (sticky first error).
func predeclarePipelines(p *Parser, lb liteparse.LiteBlock) error {
	var sticky kwerrors.Sticky
	for _, pipeline := range lb.Pipelines {
		if len(pipeline.Commands) != 1 {
			continue
		}
		cmd := pipeline.Commands[0]
		head := p.text(cmd.FirstSpan())
		isDef := head == "def"
		if head == "export" && len(cmd.Spans) > 1 && p.text(cmd.Spans[1]) == "def" {
			isDef = true
		}
		if isDef {
			sticky.Report(p.ParseDefPredecl(cmd.Spans))
		}
	}
	return sticky.Err()
}

// ParseModuleBlock implements parse_module_block (spec.md §4.6): the
// body's outer braces are trimmed (a missing closing brace yields
// Unclosed at a zero-width span but parsing continues on the interior),
// then parseModuleInterior runs the enter/predecl/dispatch/exit
// protocol.
func (p *Parser) ParseModuleBlock(span ast.Span) (*ast.Block, *ast.Overlay, error) {
	text := p.text(span)
	inner := span
	var unclosedErr error
	if len(text) >= 1 && text[0] == '{' {
		inner.Start++
	}
	if len(text) >= 2 && text[len(text)-1] == '}' {
		inner.End--
	} else {
		unclosedErr = kwerrors.Unclosed{Span: span.Zero(), Delim: "}"}
	}

	block, overlay, err := p.parseModuleInterior(inner)
	block.Span = span

	var sticky kwerrors.Sticky
	sticky.Report(unclosedErr)
	sticky.Report(err)
	return block, overlay, sticky.Err()
}

// parseModuleInterior runs the five-step protocol of spec.md §4.6 over
// the (already brace-stripped) interior span: enter scope, lex and
// lite-parse, predeclaration pass over every single-command `def` or
// `export def` pipeline, then dispatch restricted to `def`/`export` (anything else is
// UnexpectedKeyword; multi-command pipelines are Expected("not a
// pipeline")), then exit scope.
func (p *Parser) parseModuleInterior(span ast.Span) (*ast.Block, *ast.Overlay, error) {
	p.WS.EnterScope()

	data := p.WS.SourceText(span)
	tokens, _ := lex.Lex(data, span.Start, lex.Puncts, true)
	lb := liteparse.Parse(tokens)

	overlay := ast.NewOverlay("")
	block := ast.NewBlock(span, nil)
	var sticky kwerrors.Sticky
	sticky.Report(predeclarePipelines(p, lb))

	for _, pipeline := range lb.Pipelines {
		if len(pipeline.Commands) != 1 {
			span := spanOfPipeline(pipeline)
			sticky.Report(kwerrors.Expected{Span: span, What: "not a pipeline"})
			block.AddStmt(ast.GarbageStatement(span))
			continue
		}

		cmd := pipeline.Commands[0]
		head := p.text(cmd.FirstSpan())
		switch head {
		case "def":
			stmt, err := p.ParseDef(cmd.Spans)
			sticky.Report(err)
			block.AddStmt(stmt)
		case "export":
			stmt, exportable, err := p.ParseExport(cmd.Spans)
			sticky.Report(err)
			block.AddStmt(stmt)
			if exportable != nil {
				name := exportedName(stmt)
				switch exportable.Kind {
				case ExportableDecl:
					overlay.AddDecl(name, exportable.DeclId)
				case ExportableEnvVar:
					overlay.AddEnvVar(name, exportable.BlockId)
				}
			}
		default:
			sticky.Report(kwerrors.UnexpectedKeyword{Span: cmd.FirstSpan(), Keyword: head})
			block.AddStmt(ast.GarbageStatement(cmd.FirstSpan()))
		}
	}

	p.WS.ExitScope()
	return block, overlay, sticky.Err()
}
