package ast

// Overlay is a named, immutable-after-build bundle representing a
// module's exports (spec.md §3). Once a module block finishes parsing,
// its Overlay is handed to the working set under the module's name and
// never mutated again.
type Overlay struct {
	Id      OverlayId
	Name    string
	Decls   map[string]DeclId
	EnvVars map[string]BlockId
}

// NewOverlay builds an empty overlay accumulator, used while walking a
// module body (parse_module_block) or while building the synthetic
// single-decl overlay for `hide <name>` without a module head.
func NewOverlay(name string) *Overlay {
	return &Overlay{
		Name:    name,
		Decls:   make(map[string]DeclId),
		EnvVars: make(map[string]BlockId),
	}
}

func (o *Overlay) AddDecl(name string, id DeclId) {
	o.Decls[name] = id
}

func (o *Overlay) AddEnvVar(name string, id BlockId) {
	o.EnvVars[name] = id
}

// HeadPrefix joins a module head with an inner name using the separator
// the original nu-parser implementation uses consistently across
// use/hide: a single space (SPEC_FULL.md "Overlay prefixing detail").
func HeadPrefix(head, name string) string {
	return head + " " + name
}

// DeclsWithHead returns every exported decl, keyed by the module head
// prefixed onto the inner name (spec.md §4.7, the "empty members" case).
func (o *Overlay) DeclsWithHead(head string) map[string]DeclId {
	out := make(map[string]DeclId, len(o.Decls))
	for name, id := range o.Decls {
		out[HeadPrefix(head, name)] = id
	}
	return out
}

// DeclsBare returns every exported decl keyed by its bare inner name
// (spec.md §4.7, the Glob case: "every decl by its bare name").
func (o *Overlay) DeclsBare() map[string]DeclId {
	out := make(map[string]DeclId, len(o.Decls))
	for name, id := range o.Decls {
		out[name] = id
	}
	return out
}
