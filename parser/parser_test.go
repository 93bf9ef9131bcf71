package parser_test

import (
	"os"
	"testing"

	"github.com/kestrel-sh/kestrel/ast"
	"github.com/kestrel-sh/kestrel/kwerrors"
	"github.com/kestrel-sh/kestrel/parser"
	"github.com/kestrel-sh/kestrel/workingset"
	"github.com/stretchr/testify/require"
)

func newParser() (*workingset.WorkingSet, *parser.Parser) {
	ws := workingset.New()
	return ws, parser.New(ws)
}

// Scenario 1 (spec.md §8): def foo [] { 1 } produces a pipeline of one
// call to the def built-in, and find_decl("foo") afterward returns a
// valid DeclId whose signature has name "foo" and zero positionals.
func TestDefRegistersFindableDecl(t *testing.T) {
	ws, p := newParser()
	depth := ws.ScopeDepth()

	block, err := p.Parse("t.nu", []byte("def foo [] { 1 }"))
	require.NoError(t, err)
	require.Equal(t, depth, ws.ScopeDepth())
	require.Len(t, block.Stmts, 1)
	require.False(t, block.Stmts[0].IsGarbage)
	require.Len(t, block.Stmts[0].Pipeline, 1)
	require.Equal(t, "def", block.Stmts[0].Pipeline[0].Call.Decl)

	id, ok := ws.FindDecl("foo")
	require.True(t, ok)
	decl := ws.GetDecl(id)
	require.Equal(t, ast.DeclBlockCommand, decl.Kind)
	require.Equal(t, "foo", decl.Signature.Name)
	require.Empty(t, decl.Signature.Input)
}

// Scenario 2: a module exporting two decls, one calling the other, is
// usable via `use m *`.
func TestModuleExportAndGlobUse(t *testing.T) {
	ws, p := newParser()

	src := "module m { export def a [] { 1 }; export def b [] { a } }\nuse m *"
	_, err := p.Parse("t.nu", []byte(src))
	require.NoError(t, err)

	_, ok := ws.FindOverlay("m")
	require.True(t, ok)

	id, ok := ws.FindDecl("a")
	require.True(t, ok)
	require.Equal(t, "a", ws.GetDecl(id).Signature.Name)

	_, ok = ws.FindDecl("b")
	require.True(t, ok)
}

// Scenario 3: `let x: int = 3` binds x's static type to int and records
// the call's positionals as [lvalue, rvalue].
func TestLetBindsDeclaredType(t *testing.T) {
	ws, p := newParser()

	block, err := p.Parse("t.nu", []byte("let x: int = 3"))
	require.NoError(t, err)
	require.Len(t, block.Stmts, 1)

	call := block.Stmts[0].Pipeline[0].Call
	require.Equal(t, "let", call.Decl)
	require.Len(t, call.Positional, 2)

	lvalue := call.Positional[0]
	require.Equal(t, ast.ExprVar, lvalue.Kind)
	require.Equal(t, "x", lvalue.Var.Name)

	rvalue := call.Positional[1]
	require.Equal(t, ast.IntType, rvalue.Type)

	ty, ok := ws.VarType(lvalue.Var.Id)
	require.True(t, ok)
	require.Equal(t, ast.IntType, ty)
}

// `let` with no `=` falls back to parse_internal_call treatment and
// still returns a usable (if error-carrying) statement.
func TestLetWithoutEqualsFallsBackToInternalCall(t *testing.T) {
	_, p := newParser()
	stmt, err := p.ParseLet([]ast.Span{{Start: 0, End: 3}})
	require.Error(t, err)
	require.NotNil(t, stmt.Pipeline)
}

// Scenario 4: `use ./missing.nu` yields a garbage statement and
// FileNotFound.
func TestUseMissingFileYieldsFileNotFound(t *testing.T) {
	_, p := newParser()

	block, err := p.Parse("t.nu", []byte("use ./missing.nu"))
	require.Error(t, err)
	require.IsType(t, kwerrors.FileNotFound{}, err)
	require.True(t, block.Stmts[0].IsGarbage)
}

// Scenario 5: `export foo` (no def/env) yields Expected("def or env
// keyword").
func TestExportUnknownKindYieldsExpected(t *testing.T) {
	_, p := newParser()

	_, err := p.Parse("t.nu", []byte("export foo"))
	require.Error(t, err)
	require.IsType(t, kwerrors.Expected{}, err)
}

// Scenario 6: redefining `f` in the same scope reports
// DuplicateCommandDef from the predeclaration pass.
func TestDuplicateDefInSameScope(t *testing.T) {
	_, p := newParser()

	_, err := p.Parse("t.nu", []byte("def f [] { 1 }\ndef f [] { 2 }"))
	require.Error(t, err)
	require.IsType(t, kwerrors.DuplicateCommandDef{}, err)
}

// Import round-trip (spec.md §8): use m then hide m leaves the scope's
// decl set unchanged.
func TestUseThenHideRoundTrips(t *testing.T) {
	ws, p := newParser()

	_, err := p.Parse("t.nu", []byte("module m { export def a [] { 1 }; export def b [] { 1 } }"))
	require.NoError(t, err)

	_, err = p.Parse("t.nu", []byte("use m"))
	require.NoError(t, err)
	_, ok := ws.FindDecl("m a")
	require.True(t, ok)

	_, err = p.Parse("t.nu", []byte("hide m"))
	require.NoError(t, err)
	_, ok = ws.FindDecl("m a")
	require.False(t, ok)

	_, err = p.Parse("t.nu", []byte("use m"))
	require.NoError(t, err)
	_, ok = ws.FindDecl("m a")
	require.True(t, ok)
}

// Alias lookup: after `alias foo = bar baz`, the alias table records the
// substitution; ForgetAlias, which `hide foo` calls for a bare alias
// name, removes it.
func TestAliasDeclareAndForget(t *testing.T) {
	ws, p := newParser()

	_, err := p.Parse("t.nu", []byte("alias foo = bar baz"))
	require.NoError(t, err)

	replacement, ok := ws.LookupAlias("foo")
	require.True(t, ok)
	require.Equal(t, []string{"bar", "baz"}, replacement)

	ws.ForgetAlias("foo")
	_, ok = ws.LookupAlias("foo")
	require.False(t, ok)
}

// Boundary behavior: missing trailing tokens yield MissingPositional at
// a zero-width span immediately after the last present token.
func TestDefMissingBlockYieldsZeroWidthMissingPositional(t *testing.T) {
	_, p := newParser()

	_, err := p.Parse("t.nu", []byte("def foo []"))
	require.Error(t, err)
	mp, ok := err.(kwerrors.MissingPositional)
	require.True(t, ok)
	require.Equal(t, mp.Span.Start, mp.Span.End)
}

// Boundary behavior: an unmatched `{` closes at end of input with
// Unclosed.
func TestModuleUnclosedBrace(t *testing.T) {
	_, p := newParser()

	_, err := p.Parse("t.nu", []byte("module m { export def a [] { 1 }"))
	require.Error(t, err)
	unc, ok := err.(kwerrors.Unclosed)
	require.True(t, ok)
	require.Equal(t, "}", unc.Delim)
	require.Equal(t, unc.Span.Start, unc.Span.End)
}

// register with invalid JSON signature yields a LabeledError, not a
// crash.
func TestRegisterInvalidSignatureJSON(t *testing.T) {
	ws, p := newParser()
	tmp := t.TempDir() + "/plugin.bin"
	require.NoError(t, os.WriteFile(tmp, []byte("binary"), 0o644))

	_, err := p.Parse("t.nu", []byte(`register `+tmp+` {not json} --encoding json`))
	require.Error(t, err)
	require.IsType(t, kwerrors.LabeledError{}, err)
	_ = ws
}
