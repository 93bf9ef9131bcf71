// Package liteparse is the out-of-scope `lite_parse` collaborator named
// in spec.md §6 ("lite_parse(tokens) -> LiteBlock"): it groups a flat
// token stream into the pipeline/command shape the keyword parsers
// actually walk, without knowing anything about command signatures or
// argument types. Grounded the same way internal/lex is: a concrete,
// minimal body standing in for a collaborator the core treats as a
// black box.
package liteparse

import (
	"github.com/kestrel-sh/kestrel/ast"
	"github.com/kestrel-sh/kestrel/internal/lex"
)

// LiteCommand is the span list making up one command: a head span
// followed by its argument spans, unparsed.
type LiteCommand struct {
	Spans []ast.Span
}

// LitePipeline is a sequence of commands chained with `|`.
type LitePipeline struct {
	Commands []LiteCommand
}

// LiteBlock is a sequence of pipelines, delimited by `;` or a newline.
type LiteBlock struct {
	Pipelines []LitePipeline
}

// Parse groups tokens (as produced by lex.Lex with include_newlines set)
// into a LiteBlock. `;` and newline tokens end the current pipeline;
// `|` ends the current command within a pipeline.
func Parse(tokens []lex.Token) LiteBlock {
	var block LiteBlock
	var pipeline LitePipeline
	var command LiteCommand

	flushCommand := func() {
		if len(command.Spans) > 0 {
			pipeline.Commands = append(pipeline.Commands, command)
			command = LiteCommand{}
		}
	}
	flushPipeline := func() {
		flushCommand()
		if len(pipeline.Commands) > 0 {
			block.Pipelines = append(block.Pipelines, pipeline)
			pipeline = LitePipeline{}
		}
	}

	for _, tok := range tokens {
		switch tok.Text {
		case "\n", ";":
			flushPipeline()
		case "|":
			flushCommand()
		default:
			command.Spans = append(command.Spans, tok.Span)
		}
	}
	flushPipeline()

	return block
}

// FirstSpan returns the head span of a command, or ast.Unknown if it has
// none (used by keyword dispatch to read the first word of a pipeline).
func (c LiteCommand) FirstSpan() ast.Span {
	if len(c.Spans) == 0 {
		return ast.Unknown
	}
	return c.Spans[0]
}

// Rest returns a command's spans after the head.
func (c LiteCommand) Rest() []ast.Span {
	if len(c.Spans) <= 1 {
		return nil
	}
	return c.Spans[1:]
}
