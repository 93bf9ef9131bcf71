// Package exprparse gives concrete, minimal bodies to the external
// expression-parser collaborators spec.md §6 leaves out of scope:
// parse_string, parse_signature, parse_multispan_value,
// parse_var_with_opt_type, and parse_import_pattern, plus the
// CheckCallArity helper SPEC_FULL.md's supplemented-features note says
// parse_register and parse_let's fallback share in the original. None of
// these model a real value/type system; they only go as deep as the
// keyword parsers in package parser need to build Call nodes.
package exprparse

import (
	"strconv"
	"strings"

	"github.com/kestrel-sh/kestrel/ast"
	"github.com/kestrel-sh/kestrel/internal/lex"
	"github.com/kestrel-sh/kestrel/kwerrors"
	"github.com/kestrel-sh/kestrel/workingset"
)

// ParseString parses the token occupying span as a string literal: a
// quoted run has its quotes stripped, a bare word is taken verbatim.
// Mirrors parse_string's contract in spec.md §6.
func ParseString(ws *workingset.WorkingSet, span ast.Span) ast.Expression {
	text := string(ws.SourceText(span))
	text = lex.Unquote(text)
	return ast.Expression{Kind: ast.ExprLiteral, Span: span, Type: ast.StringType, Literal: &ast.Literal{Text: text}}
}

// ParseVarWithOptType parses a `$name` or `$name: type` token into a
// VarRef expression, declaring the variable in ws if it is new. Mirrors
// parse_var_with_opt_type (spec.md §6); ParseMultispanValue uses it for
// `$`-prefixed values (`let`'s left-hand side goes through ParseVarLHS).
func ParseVarWithOptType(ws *workingset.WorkingSet, span ast.Span) (ast.Expression, error) {
	text := string(ws.SourceText(span))
	if !strings.HasPrefix(text, "$") {
		return ast.Garbage(span), kwerrors.Expected{Span: span, What: "a variable starting with '$'"}
	}
	body := text[1:]
	name := body
	shape := ast.AnyType
	if idx := strings.IndexByte(body, ':'); idx >= 0 {
		name = strings.TrimSpace(body[:idx])
		shape = ast.CustomType(strings.TrimSpace(body[idx+1:]))
	}
	if name == "" {
		return ast.Garbage(span), kwerrors.Expected{Span: span, What: "a variable name after '$'"}
	}

	id, ok := ws.FindVar(name)
	if !ok {
		id = ws.NewVarId()
		ws.DeclareVar(name, id, shape)
	} else {
		ws.SetVarType(id, shape)
	}

	return ast.Expression{
		Kind: ast.ExprVar, Span: span, Type: shape,
		Var: &ast.VarRef{Name: name, Id: id},
	}, nil
}

// ParseVarLHS parses `let`'s left-hand side: a bare variable name,
// optionally followed by a `: type` annotation, with no leading '$'
// (spec.md §4.9's `let x: int = ...` form). Unlike ParseVarWithOptType,
// which reads one already-`$`-prefixed token, this takes the run of
// spans between `let` and `=` because the ': type' suffix may land in
// its own token or stay fused to the name, depending on whitespace.
// Mirrors the original's multi-span parse_var_with_opt_type(working_set,
// &spans[1..idx], &mut idx) call (original_source/crates/nu-parser/src/
// parse_keywords.rs).
func ParseVarLHS(ws *workingset.WorkingSet, spans []ast.Span) (ast.Expression, error) {
	if len(spans) == 0 {
		return ast.Garbage(ast.Unknown), kwerrors.Expected{Span: ast.Unknown, What: "a variable name"}
	}

	span := spans[0]
	for _, s := range spans[1:] {
		span = ast.Merge(span, s)
	}

	first := string(ws.SourceText(spans[0]))
	name := first
	shape := ast.AnyType
	rest := spans[1:]

	switch {
	case strings.IndexByte(first, ':') >= 0:
		idx := strings.IndexByte(first, ':')
		name = first[:idx]
		typeText := strings.TrimSpace(first[idx+1:])
		if typeText == "" && len(rest) > 0 {
			typeText = string(ws.SourceText(rest[0]))
			rest = rest[1:]
		}
		if typeText != "" {
			shape = ast.CustomType(typeText)
		}
	case len(rest) > 0 && string(ws.SourceText(rest[0])) == ":":
		rest = rest[1:]
		if len(rest) > 0 {
			shape = ast.CustomType(string(ws.SourceText(rest[0])))
			rest = rest[1:]
		}
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return ast.Garbage(spans[0]), kwerrors.Expected{Span: spans[0], What: "a variable name"}
	}

	id, ok := ws.FindVar(name)
	if !ok {
		id = ws.NewVarId()
		ws.DeclareVar(name, id, shape)
	} else {
		ws.SetVarType(id, shape)
	}

	return ast.Expression{
		Kind: ast.ExprVar, Span: span, Type: shape,
		Var: &ast.VarRef{Name: name, Id: id},
	}, nil
}

// ParseMultispanValue consumes one or more leading spans to build a
// value expression, returning how many spans it consumed. Literal
// spans (numbers, bare words, quoted strings) consume exactly one span;
// there is no multi-span value form modeled at this layer, matching
// spec.md §6's "this core never re-derives a type system" stance — any
// richer shape arrives as ExprOther from a real implementation.
func ParseMultispanValue(ws *workingset.WorkingSet, spans []ast.Span) (ast.Expression, int, error) {
	if len(spans) == 0 {
		return ast.Expression{}, 0, kwerrors.Expected{What: "a value"}
	}
	span := spans[0]
	text := string(ws.SourceText(span))

	if text == "" {
		return ast.Garbage(span), 1, nil
	}
	if text[0] == '"' || text[0] == '\'' {
		return ParseString(ws, span), 1, nil
	}
	if text[0] == '$' {
		expr, err := ParseVarWithOptType(ws, span)
		return expr, 1, err
	}
	if _, err := strconv.ParseInt(text, 10, 64); err == nil {
		return ast.Expression{Kind: ast.ExprLiteral, Span: span, Type: ast.IntType, Literal: &ast.Literal{Text: text}}, 1, nil
	}
	if text == "true" || text == "false" {
		return ast.Expression{Kind: ast.ExprLiteral, Span: span, Type: ast.BoolType, Literal: &ast.Literal{Text: text}}, 1, nil
	}
	return ast.Expression{Kind: ast.ExprLiteral, Span: span, Type: ast.StringType, Literal: &ast.Literal{Text: text}}, 1, nil
}

// ParseSignature parses a bracketed parameter list, e.g.
// `[a: int, b?: string, --flag(-f): bool, ...rest]`, into an
// *ast.Signature named name. Mirrors parse_signature (spec.md §6), used
// by `def`.
func ParseSignature(ws *workingset.WorkingSet, name string, span ast.Span) (*ast.Signature, error) {
	sig := ast.NewSignature(name, span)
	text := string(ws.SourceText(span))
	inner := strings.TrimSpace(text)
	inner = strings.TrimPrefix(inner, "[")
	inner = strings.TrimSuffix(inner, "]")
	if strings.TrimSpace(inner) == "" {
		return sig, nil
	}

	offset := span.Start + strings.Index(text, inner)
	for _, part := range strings.Split(inner, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		partSpan := ast.Span{Start: offset, End: offset + len(part)}
		offset += len(part) + 1 // account for the separating comma

		switch {
		case strings.HasPrefix(part, "..."):
			rest := ast.Param{Name: strings.TrimPrefix(part, "..."), Span: partSpan, Shape: ast.AnyType}
			sig.Rest = &rest
		case strings.HasPrefix(part, "--"):
			flag := parseFlag(part, partSpan)
			sig.Flags = append(sig.Flags, flag)
		default:
			param := parseParam(part, partSpan)
			sig.Input = append(sig.Input, param)
		}
	}
	return sig, nil
}

func parseParam(part string, span ast.Span) ast.Param {
	name := part
	shape := ast.AnyType
	if idx := strings.IndexByte(part, ':'); idx >= 0 {
		name = strings.TrimSpace(part[:idx])
		shape = ast.CustomType(strings.TrimSpace(part[idx+1:]))
	}
	optional := strings.HasSuffix(name, "?")
	name = strings.TrimSuffix(name, "?")
	return ast.Param{Name: name, Span: span, Shape: shape, Optional: optional}
}

func parseFlag(part string, span ast.Span) ast.Flag {
	body := strings.TrimPrefix(part, "--")
	shape := ast.AnyType
	if idx := strings.IndexByte(body, ':'); idx >= 0 {
		shape = ast.CustomType(strings.TrimSpace(body[idx+1:]))
		body = body[:idx]
	}
	var short rune
	name := body
	if idx := strings.IndexByte(body, '('); idx >= 0 && strings.HasSuffix(body, ")") {
		name = strings.TrimSpace(body[:idx])
		shortForm := strings.TrimSuffix(body[idx+1:], ")")
		shortForm = strings.TrimPrefix(shortForm, "-")
		if len(shortForm) > 0 {
			short = rune(shortForm[0])
		}
	}
	return ast.Flag{Name: strings.TrimSpace(name), Short: short, Span: span, Shape: shape}
}

// ParseImportPattern parses the span list naming a `use`/`hide` target:
// a head name, then an optional member selector in the next span (`*`, a
// bare name, or a `{a, b, c}`/`[a b c]` list). Spans after the second are
// ignored, and a `.` inside the head span is not treated as a separator.
// Mirrors parse_import_pattern (spec.md §6).
func ParseImportPattern(ws *workingset.WorkingSet, spans []ast.Span) (*ast.ImportPattern, error) {
	if len(spans) == 0 {
		return nil, kwerrors.Expected{What: "a module or command name"}
	}
	head := spans[0]
	headText := string(ws.SourceText(head))
	pattern := ast.NewImportPattern(headText, head)

	if len(spans) == 1 {
		return pattern, nil
	}

	memberSpan := spans[1]
	memberText := string(ws.SourceText(memberSpan))

	switch {
	case memberText == "*":
		pattern.MemberKind = ast.MemberGlob
	case strings.HasPrefix(memberText, "{") || strings.HasPrefix(memberText, "["):
		inner := strings.Trim(memberText, "{}[]")
		offset := memberSpan.Start + strings.Index(memberText, inner)
		pattern.MemberKind = ast.MemberList
		for _, name := range strings.FieldsFunc(inner, func(r rune) bool { return r == ',' || r == ' ' }) {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			nameSpan := ast.Span{Start: offset, End: offset + len(name)}
			offset += len(name) + 1
			pattern.List = append(pattern.List, ast.NamedMember{Name: name, Span: nameSpan})
		}
	default:
		pattern.MemberKind = ast.MemberName
		pattern.Name = ast.NamedMember{Name: memberText, Span: memberSpan}
	}

	return pattern, nil
}

// CheckCallArity enforces `got` positional arguments against a
// [min, max] range, returning a kwerrors.MissingPositional (too few) or
// kwerrors.Expected (too many) pointed at callSpan. Shared by
// parse_register and parse_let's "forgot the equals sign" fallback per
// SPEC_FULL.md's supplemented-features note.
func CheckCallArity(declName string, min, max, got int, callSpan ast.Span, missingName string) error {
	if got < min {
		return kwerrors.MissingPositional{Span: callSpan.Zero(), Name: missingName}
	}
	if max >= 0 && got > max {
		return kwerrors.Expected{Span: callSpan, What: declName + " to take no more than " + strconv.Itoa(max) + " arguments"}
	}
	return nil
}
