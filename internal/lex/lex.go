// Package lex is the out-of-scope `lex` collaborator named in spec.md §6
// ("lex(bytes, start_offset, special, puncts, include_newlines) ->
// (tokens, err)"). The keyword-parser core never inspects token grammar
// beyond "what are this token's bytes" — this package exists only to
// give that collaborator a concrete, runnable body (SPEC_FULL.md AMBIENT
// STACK), grounded on the same span/position model participle/v2/lexer
// uses (github.com/alecthomas/participle/v2/lexer.Position), which the
// teacher's own diagnostic/parser packages import for identical reasons.
package lex

import (
	"unicode"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/kestrel-sh/kestrel/ast"
)

// Token is one lexeme: its raw text and the span it occupies in the
// working set's file buffer.
type Token struct {
	Text string
	Span ast.Span
}

// Puncts is the default set of single-byte tokens that split off on
// their own, regardless of surrounding whitespace. An opening '{' or '['
// instead starts a grouped token (see Lex).
var Puncts = []byte{'{', '}', '(', ')', '[', ']', ';', '=', '|', ','}

// Lex tokenizes data, whose first byte sits at startOffset in the session
// file buffer, splitting on whitespace and the given punctuation bytes.
// Double- and single-quoted runs (including escaped quotes) are kept as
// one token. A '{' or '[' starts a token that runs to its matching '}' or
// ']' (nesting is counted, quotes inside are not inspected), or to the end
// of data if unmatched, so a block or signature arrives as one span.
// A `#` outside quotes and brackets starts a line comment, discarded up to
// (not including) the next newline. When includeNewlines is true, each
// newline is emitted as its own token (used by lite-parse to delimit
// pipelines); otherwise newlines are treated as ordinary whitespace.
func Lex(data []byte, startOffset int, puncts []byte, includeNewlines bool) ([]Token, error) {
	isPunct := make(map[byte]bool, len(puncts))
	for _, b := range puncts {
		isPunct[b] = true
	}

	var tokens []Token
	i := 0
	n := len(data)

	for i < n {
		r, size := utf8.DecodeRune(data[i:])

		switch {
		case r == '\n':
			if includeNewlines {
				tokens = append(tokens, Token{Text: "\n", Span: ast.Span{Start: startOffset + i, End: startOffset + i + 1}})
			}
			i++
		case unicode.IsSpace(r):
			i += size
		case r == '#':
			for i < n && data[i] != '\n' {
				i++
			}
		case r == '"' || r == '\'':
			quote := data[i]
			start := i
			i++
			for i < n {
				if data[i] == '\\' && i+1 < n {
					i += 2
					continue
				}
				if data[i] == quote {
					i++
					break
				}
				i++
			}
			if i > n {
				i = n
			}
			tokens = append(tokens, Token{
				Text: string(data[start:i]),
				Span: ast.Span{Start: startOffset + start, End: startOffset + i},
			})
		case data[i] == '{' || data[i] == '[':
			start, depth := i, 0
			for i < n {
				switch data[i] {
				case '{', '[':
					depth++
				case '}', ']':
					depth--
				}
				i++
				if depth == 0 {
					break
				}
			}
			tokens = append(tokens, Token{Text: string(data[start:i]), Span: ast.Span{Start: startOffset + start, End: startOffset + i}})
		case isPunct[data[i]]:
			tokens = append(tokens, Token{
				Text: string(data[i]),
				Span: ast.Span{Start: startOffset + i, End: startOffset + i + 1},
			})
			i++
		default:
			start := i
			for i < n {
				r, size := utf8.DecodeRune(data[i:])
				if unicode.IsSpace(r) || r == '#' || (size == 1 && isPunct[data[i]]) {
					break
				}
				i += size
			}
			tokens = append(tokens, Token{
				Text: string(data[start:i]),
				Span: ast.Span{Start: startOffset + start, End: startOffset + i},
			})
		}
	}

	return tokens, nil
}

// Position converts a Token's span start into a participle-style
// lexer.Position against filename, for diagnostics that want line/column
// (the teacher's diagnostic/span.go keys every rendered span on exactly
// this type).
func Position(filename string, line, col, offset int) lexer.Position {
	return lexer.Position{Filename: filename, Offset: offset, Line: line, Column: col}
}

// Unquote strips one layer of matching ASCII double or single quotes
// from text.
func Unquote(text string) string {
	if len(text) >= 2 {
		if text[0] == '"' && text[len(text)-1] == '"' {
			return text[1 : len(text)-1]
		}
		if text[0] == '\'' && text[len(text)-1] == '\'' {
			return text[1 : len(text)-1]
		}
	}
	return text
}

// UnquoteDouble strips one layer of matching ASCII double quotes from
// text, leaving a single-quoted run untouched. parse_alias only strips
// double quotes from its target name (original_source/crates/nu-parser/
// src/parse_keywords.rs, parse_alias): a single-quoted alias name keeps
// its quotes as part of the literal name.
func UnquoteDouble(text string) string {
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		return text[1 : len(text)-1]
	}
	return text
}
