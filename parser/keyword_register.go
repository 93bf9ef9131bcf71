package parser

import (
	"context"
	"encoding/json"
	"os"
	"unicode/utf8"

	"github.com/kestrel-sh/kestrel/ast"
	"github.com/kestrel-sh/kestrel/internal/exprparse"
	"github.com/kestrel-sh/kestrel/internal/lex"
	"github.com/kestrel-sh/kestrel/kwerrors"
	"github.com/kestrel-sh/kestrel/plugin"
	"github.com/kestrel-sh/kestrel/workingset"
)

// ParseRegister implements `register <path> [signature-json] --encoding
// <name> [--shell <path>]` (spec.md §4.11). All validation failures are
// collected into one sticky error returned alongside the call node;
// plugin registration as an I/O step inside parsing stays behind
// Parser.PluginDialer, a capability object whose failures surface as a
// LabeledError, never a panic (spec.md §9).
func (p *Parser) ParseRegister(spans []ast.Span) (ast.Statement, error) {
	headSpan := spans[0]
	declId, _ := p.WS.FindDecl("register")
	call := ast.NewCall(declId, "register", headSpan)

	if err := exprparse.CheckCallArity("register", 2, -1, len(spans), spanOfSpans(spans), "path"); err != nil {
		return ast.GarbageStatement(headSpan), err
	}

	pathSpan := spans[1]
	pathExpr := exprparse.ParseString(p.WS, pathSpan)
	call.AddPositional(pathExpr)
	path := pathExpr.Literal.Text

	var sigLiteral *ast.Span
	var encodingSpan, encodingValSpan, shellSpan, shellValSpan ast.Span
	haveEncoding, haveShell := false, false

	rest := spans[2:]
	for i := 0; i < len(rest); {
		switch p.text(rest[i]) {
		case "--encoding":
			if i+1 < len(rest) {
				encodingSpan, encodingValSpan = rest[i], rest[i+1]
				haveEncoding = true
				i += 2
			} else {
				i++
			}
		case "--shell":
			if i+1 < len(rest) {
				shellSpan, shellValSpan = rest[i], rest[i+1]
				haveShell = true
				i += 2
			} else {
				i++
			}
		default:
			if sigLiteral == nil {
				s := rest[i]
				sigLiteral = &s
			}
			i++
		}
	}

	var sticky kwerrors.Sticky

	if !utf8.ValidString(path) {
		sticky.Report(kwerrors.NonUtf8{Span: pathSpan})
	}
	expandedPath, expErr := workingset.ExpandHomeDir(path)
	if expErr != nil {
		expandedPath = path
	}
	real, cerr := workingset.Canonicalize(expandedPath)
	if cerr != nil {
		sticky.Report(kwerrors.FileNotFound{Span: pathSpan, Path: path})
	} else if info, statErr := os.Stat(real); statErr != nil || !info.Mode().IsRegular() {
		sticky.Report(kwerrors.FileNotFound{Span: pathSpan, Path: path})
	}

	var encoding ast.PluginEncoding
	if haveEncoding {
		encText := lex.Unquote(p.text(encodingValSpan))
		enc, eerr := plugin.DecodeEncoding([]byte(encText))
		if eerr != nil {
			accepted := make([]string, 0, len(ast.RecognizedEncodings))
			for _, e := range ast.RecognizedEncodings {
				accepted = append(accepted, string(e))
			}
			sticky.Report(kwerrors.IncorrectValue{Span: encodingValSpan, Msg: "wrong encoding", Accepted: accepted})
		} else {
			encoding = enc
		}
		call.AddNamed("encoding", encodingSpan, &ast.Expression{
			Kind: ast.ExprLiteral, Span: encodingValSpan, Type: ast.StringType, Literal: &ast.Literal{Text: encText},
		})
	} else {
		sticky.Report(kwerrors.MissingPositional{Span: lastSpan(spans).Zero(), Name: "encoding"})
	}

	var shellPath string
	if haveShell {
		shellText := lex.Unquote(p.text(shellValSpan))
		shellExpanded, sxErr := workingset.ExpandHomeDir(shellText)
		if sxErr != nil {
			shellExpanded = shellText
		}
		shellReal, serr := workingset.Canonicalize(shellExpanded)
		if serr != nil {
			sticky.Report(kwerrors.FileNotFound{Span: shellValSpan, Path: shellText})
		} else {
			shellPath = shellReal
		}
		call.AddNamed("shell", shellSpan, &ast.Expression{
			Kind: ast.ExprLiteral, Span: shellValSpan, Type: ast.StringType, Literal: &ast.Literal{Text: shellText},
		})
	}

	if sticky.Err() != nil {
		return ast.PipelineOf(ast.CallExpr(call)), sticky.Err()
	}

	if sigLiteral != nil {
		var sigs []plugin.Signature
		raw := p.WS.SourceText(*sigLiteral)
		if jerr := json.Unmarshal(raw, &sigs); jerr != nil {
			return ast.PipelineOf(ast.CallExpr(call)), kwerrors.LabeledError{
				Span: *sigLiteral, Label: "invalid plugin signature JSON", Cause: jerr,
			}
		}
		for _, sig := range sigs {
			p.WS.AddDecl(plugin.ToDecl(sig, real, encoding, shellPath))
		}
		p.WS.PluginsChanged = true
		return ast.PipelineOf(ast.CallExpr(call)), nil
	}

	client, derr := p.PluginDialer(real, shellPath)
	if derr != nil {
		return ast.PipelineOf(ast.CallExpr(call)), kwerrors.LabeledError{
			Span: pathSpan, Label: "failed to start plugin", Cause: derr,
		}
	}
	defer client.Close()

	sigs, serr := client.Signatures(context.Background())
	if serr != nil {
		return ast.PipelineOf(ast.CallExpr(call)), kwerrors.LabeledError{
			Span: pathSpan, Label: "plugin signature exchange failed", Cause: serr,
		}
	}
	for _, sig := range sigs {
		p.WS.AddDecl(plugin.ToDecl(sig, real, encoding, shellPath))
	}
	p.WS.PluginsChanged = true
	return ast.PipelineOf(ast.CallExpr(call)), nil
}
