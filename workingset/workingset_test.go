package workingset_test

import (
	"testing"

	"github.com/kestrel-sh/kestrel/ast"
	"github.com/kestrel-sh/kestrel/workingset"
	"github.com/stretchr/testify/require"
)

func TestScopeStackPairing(t *testing.T) {
	ws := workingset.New()
	depth := ws.ScopeDepth()

	ws.EnterScope()
	require.Equal(t, depth+1, ws.ScopeDepth())
	ws.ExitScope()
	require.Equal(t, depth, ws.ScopeDepth())
}

func TestMergePredeclIsIdempotent(t *testing.T) {
	ws := workingset.New()
	id := ws.AddDecl(&ast.Decl{Kind: ast.DeclPredecl, Name: "foo"})
	require.True(t, ws.Predeclare("foo", id))

	ws.MergePredecl("foo")
	got, ok := ws.FindDecl("foo")
	require.True(t, ok)
	require.Equal(t, id, got)

	// a second call is a no-op (spec.md §8)
	ws.MergePredecl("foo")
	got, ok = ws.FindDecl("foo")
	require.True(t, ok)
	require.Equal(t, id, got)
}

func TestHideShadowsWithoutDeleting(t *testing.T) {
	ws := workingset.New()
	id := ws.AddDecl(&ast.Decl{Kind: ast.DeclBuiltin, Name: "foo"})
	ws.UseDecls(map[string]ast.DeclId{"foo": id})

	ws.HideDecls([]string{"foo"})
	_, ok := ws.FindDecl("foo")
	require.False(t, ok)

	ws.UseDecls(map[string]ast.DeclId{"foo": id})
	got, ok := ws.FindDecl("foo")
	require.True(t, ok)
	require.Equal(t, id, got)
}

func TestOverlayTreeListsRegisteredOverlays(t *testing.T) {
	ws := workingset.New()
	ov := ast.NewOverlay("m")
	ov.AddDecl("a", ast.DeclId(0))
	ws.AddOverlay("m", ov)

	tree := ws.OverlayTree("root.nu")
	require.Contains(t, tree.String(), "m")
	require.Contains(t, tree.String(), "1 decl(s)")
}

func TestFileDigestStableAcrossRereads(t *testing.T) {
	ws := workingset.New()
	ws.AddFile("a.nu", []byte("def foo [] { 1 }"))
	d1, ok := ws.FileDigest("a.nu")
	require.True(t, ok)

	ws.AddFile("a.nu", []byte("def foo [] { 1 }"))
	d2, ok := ws.FileDigest("a.nu")
	require.True(t, ok)
	require.Equal(t, d1, d2)
}
