// Package kwerrors defines the error taxonomy of spec.md §7: one Go type
// per named error kind, each carrying the span(s) a diagnostic renderer
// needs to underline the offending source. Style mirrors the teacher's
// checker/errors.go one-struct-per-kind approach.
package kwerrors

import (
	"fmt"

	"github.com/kestrel-sh/kestrel/ast"
	"github.com/pkg/errors"
)

// Error is satisfied by every kind below; Spans lets the diagnostic
// renderer underline every offending location without a type switch.
type Error interface {
	error
	Spans() []ast.Span
}

type UnknownState struct {
	Span ast.Span
	Msg  string
}

func (e UnknownState) Error() string    { return fmt.Sprintf("unknown state: %s", e.Msg) }
func (e UnknownState) Spans() []ast.Span { return []ast.Span{e.Span} }

type UnexpectedKeyword struct {
	Span    ast.Span
	Keyword string
}

func (e UnexpectedKeyword) Error() string {
	return fmt.Sprintf("unexpected keyword %q", e.Keyword)
}
func (e UnexpectedKeyword) Spans() []ast.Span { return []ast.Span{e.Span} }

type Expected struct {
	Span ast.Span
	What string
}

func (e Expected) Error() string    { return fmt.Sprintf("expected %s", e.What) }
func (e Expected) Spans() []ast.Span { return []ast.Span{e.Span} }

type MissingPositional struct {
	Span ast.Span
	Name string
}

func (e MissingPositional) Error() string {
	return fmt.Sprintf("missing required positional argument %q", e.Name)
}
func (e MissingPositional) Spans() []ast.Span { return []ast.Span{e.Span} }

type DuplicateCommandDef struct {
	Span ast.Span
	Name string
}

func (e DuplicateCommandDef) Error() string {
	return fmt.Sprintf("%q is defined more than once", e.Name)
}
func (e DuplicateCommandDef) Spans() []ast.Span { return []ast.Span{e.Span} }

type InternalError struct {
	Span ast.Span
	Msg  string
}

func (e InternalError) Error() string    { return fmt.Sprintf("internal error: %s", e.Msg) }
func (e InternalError) Spans() []ast.Span { return []ast.Span{e.Span} }

type Unclosed struct {
	Span  ast.Span
	Delim string
}

func (e Unclosed) Error() string    { return fmt.Sprintf("unclosed %q", e.Delim) }
func (e Unclosed) Spans() []ast.Span { return []ast.Span{e.Span} }

type ModuleNotFound struct {
	Span ast.Span
	Name string
}

func (e ModuleNotFound) Error() string    { return fmt.Sprintf("module not found: %q", e.Name) }
func (e ModuleNotFound) Spans() []ast.Span { return []ast.Span{e.Span} }

type FileNotFound struct {
	Span ast.Span
	Path string
}

func (e FileNotFound) Error() string    { return fmt.Sprintf("file not found: %q", e.Path) }
func (e FileNotFound) Spans() []ast.Span { return []ast.Span{e.Span} }

type NonUtf8 struct {
	Span ast.Span
}

func (e NonUtf8) Error() string    { return "non-UTF-8 input" }
func (e NonUtf8) Spans() []ast.Span { return []ast.Span{e.Span} }

type ExportNotFound struct {
	Span       ast.Span
	Name       string
	Suggestion string
}

func (e ExportNotFound) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("export %q not found, did you mean %q?", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("export %q not found", e.Name)
}
func (e ExportNotFound) Spans() []ast.Span { return []ast.Span{e.Span} }

type IncorrectValue struct {
	Span     ast.Span
	Msg      string
	Accepted []string
}

func (e IncorrectValue) Error() string {
	if len(e.Accepted) == 0 {
		return e.Msg
	}
	return fmt.Sprintf("%s (accepted: %v)", e.Msg, e.Accepted)
}
func (e IncorrectValue) Spans() []ast.Span { return []ast.Span{e.Span} }

// LabeledError wraps an arbitrary cause (e.g. a plugin transport failure)
// with a span and a human label, the way a failed subprocess exchange is
// surfaced in parse_register without ever panicking.
type LabeledError struct {
	Span  ast.Span
	Label string
	Cause error
}

func (e LabeledError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s", e.Label, e.Cause)
	}
	return e.Label
}
func (e LabeledError) Unwrap() error     { return e.Cause }
func (e LabeledError) Spans() []ast.Span { return []ast.Span{e.Span} }

type TypeMismatch struct {
	Span     ast.Span
	Expected string
	Found    string
}

func (e TypeMismatch) Error() string {
	return fmt.Sprintf("type mismatch: expected %s, found %s", e.Expected, e.Found)
}
func (e TypeMismatch) Spans() []ast.Span { return []ast.Span{e.Span} }

// Wrap attaches a cause using github.com/pkg/errors so Cause()/the %+v
// verb still work, matching diagnostic/error.go's use of pkg/errors in
// the teacher.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, msg)
}

// Sticky holds the first error reported to it and ignores the rest,
// implementing the "sticky first error" propagation policy of spec.md §7.
type Sticky struct {
	err error
}

// Report records err if this is the first error reported.
func (s *Sticky) Report(err error) {
	if s.err == nil {
		s.err = err
	}
}

// Err returns the first-reported error, or nil.
func (s *Sticky) Err() error {
	return s.err
}
