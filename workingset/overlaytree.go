package workingset

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// Overlays returns every overlay registered so far, in the order
// AddOverlay added them (module declaration order, plus any file-backed
// overlays `use`/`source` pulled in along the way).
func (ws *WorkingSet) Overlays() []*overlayEntry {
	out := make([]*overlayEntry, len(ws.overlayStack))
	for i, ov := range ws.overlayStack {
		out[i] = &overlayEntry{name: ov.Name, decls: len(ov.Decls), envVars: len(ov.EnvVars)}
		if dgst, ok := ws.FileDigest(ov.Name); ok {
			out[i].digest = dgst
		}
	}
	return out
}

type overlayEntry struct {
	name    string
	decls   int
	envVars int
	digest  string
}

// OverlayTree renders every overlay registered in this session as a
// treeprint.Tree rooted at rootLabel, the module-system analogue of the
// teacher's module.NewTree (module/tree.go): there the tree's branches are
// import edges annotated with a content digest; here there is no import
// graph to walk (this core resolves one `use`/`source` target at a time,
// spec.md §5), so each branch is simply a registered overlay, annotated
// with its decl/env-var counts and with the content digest of a file
// whose recorded filename equals the overlay's name, if there is one.
// An overlay loaded by `use` from a file is named by the file's stem
// while the file is recorded under its canonical path, so such an
// overlay carries no digest.
func (ws *WorkingSet) OverlayTree(rootLabel string) treeprint.Tree {
	tree := treeprint.New()
	tree.SetValue(rootLabel)
	for _, ov := range ws.Overlays() {
		meta := fmt.Sprintf("%d decl(s), %d env var(s)", ov.decls, ov.envVars)
		if ov.digest != "" {
			meta = fmt.Sprintf("%s, %s", meta, ov.digest)
		}
		tree.AddMetaBranch(meta, ov.name)
	}
	return tree
}
