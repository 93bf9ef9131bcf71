package workingset

import "github.com/kestrel-sh/kestrel/ast"

// scopeFrame is one frame on the scope stack: the names visible at a
// single nesting level (spec.md §3 "WorkingSet" scope stack, GLOSSARY
// "Scope"). Hidden entries shadow but are never deleted (invariant I5),
// which is why hidden is a set rather than a removal from decls.
type scopeFrame struct {
	decls     map[string]ast.DeclId
	vars      map[string]ast.VarId
	aliases   map[string][]string // name -> replacement token text
	predecls  map[string]ast.DeclId
	hidden    map[string]struct{}
	varTypes  map[ast.VarId]ast.ValueType
}

func newScopeFrame() *scopeFrame {
	return &scopeFrame{
		decls:    make(map[string]ast.DeclId),
		vars:     make(map[string]ast.VarId),
		aliases:  make(map[string][]string),
		predecls: make(map[string]ast.DeclId),
		hidden:   make(map[string]struct{}),
		varTypes: make(map[ast.VarId]ast.ValueType),
	}
}

// EnterScope pushes a new frame (spec.md §3 "enter_scope").
func (ws *WorkingSet) EnterScope() {
	ws.scopes = append(ws.scopes, newScopeFrame())
}

// ExitScope pops exactly one frame. Every EnterScope must be paired with
// exactly one ExitScope on every code path, including error paths
// (invariant I2). Callers should structure keyword parsers as:
//
//	ws.EnterScope()
//	defer ws.ExitScope()
//
// so the pairing holds even when a parser returns early on error.
func (ws *WorkingSet) ExitScope() {
	if len(ws.scopes) == 0 {
		panic("workingset: ExitScope called with no scope on the stack")
	}
	ws.scopes = ws.scopes[:len(ws.scopes)-1]
}

// ScopeDepth reports how many frames are on the stack, used by tests to
// assert invariant I2 (depth at return equals depth at entry).
func (ws *WorkingSet) ScopeDepth() int {
	return len(ws.scopes)
}

func (ws *WorkingSet) top() *scopeFrame {
	return ws.scopes[len(ws.scopes)-1]
}

// FindDecl searches the scope stack top-down, honoring each frame's
// hidden set, and returns the first matching DeclId (spec.md §3
// "find_decl"). A name still sitting in predecls (reserved by an
// earlier predeclare pass but not yet merged by its own parse_def)
// also resolves here, so one def's body can call a sibling def
// declared later in the same block (spec.md §8: predeclaration lets
// mutually- and forward-referencing defs in a block see each other).
func (ws *WorkingSet) FindDecl(name string) (ast.DeclId, bool) {
	for i := len(ws.scopes) - 1; i >= 0; i-- {
		frame := ws.scopes[i]
		if _, isHidden := frame.hidden[name]; isHidden {
			return ast.NoDeclId, false
		}
		if id, ok := frame.decls[name]; ok {
			return id, true
		}
		if id, ok := frame.predecls[name]; ok {
			return id, true
		}
	}
	return ast.NoDeclId, false
}

// FindOverlay searches every overlay installed via AddOverlay, most
// recently added first, for one named name (spec.md §3 "find_overlay").
// The scope stack plays no part: overlays are not scoped.
func (ws *WorkingSet) FindOverlay(name string) (*ast.Overlay, bool) {
	for i := len(ws.overlayStack) - 1; i >= 0; i-- {
		if ws.overlayStack[i].Name == name {
			return ws.overlayStack[i], true
		}
	}
	return nil, false
}

// AddOverlay registers overlay under name, visible to FindOverlay from
// this point forward regardless of scope depth — overlays outlive the
// scope they were declared in, the way a module stays use-able after its
// declaring block exits.
func (ws *WorkingSet) AddOverlay(name string, overlay *ast.Overlay) ast.OverlayId {
	overlay.Name = name
	overlay.Id = ast.OverlayId(len(ws.overlays))
	ws.overlays = append(ws.overlays, overlay)
	ws.overlayStack = append(ws.overlayStack, overlay)
	return overlay.Id
}

// MergePredecl promotes a predecl registered earlier in the current scope
// (by Predeclare) into the current scope's decl set, making it visible to
// FindDecl. A second call for the same name is a no-op (spec.md §8,
// "merge_predecl(name) ... is idempotent").
func (ws *WorkingSet) MergePredecl(name string) {
	top := ws.top()
	id, ok := top.predecls[name]
	if !ok {
		return
	}
	top.decls[name] = id
	delete(top.predecls, name)
}

// Predeclare reserves name in the current scope's predecl table, pointing
// at decl id (invariant I3: predecls live in the scope that will
// eventually contain the definition). Returns false if name is already
// predeclared in this scope (caller reports DuplicateCommandDef).
func (ws *WorkingSet) Predeclare(name string, id ast.DeclId) bool {
	top := ws.top()
	if _, exists := top.predecls[name]; exists {
		return false
	}
	top.predecls[name] = id
	return true
}

// LookupPredecl finds a predecl by name in the current scope only (used
// by parse_def step 5 to locate the slot parse_def_predecl reserved).
func (ws *WorkingSet) LookupPredecl(name string) (ast.DeclId, bool) {
	top := ws.top()
	id, ok := top.predecls[name]
	return id, ok
}

// UseDecls installs name->id pairs into the current scope, un-hiding any
// of those names that a previous HideDecls call had shadowed (spec.md
// §4.7 "this also un-hides anything previously hidden under those
// names").
func (ws *WorkingSet) UseDecls(pairs map[string]ast.DeclId) {
	top := ws.top()
	for name, id := range pairs {
		top.decls[name] = id
		delete(top.hidden, name)
	}
}

// HideDecls marks each named decl hidden in the current scope without
// deleting its binding, preserving id stability (spec.md §3 invariant I5,
// §9 design notes).
func (ws *WorkingSet) HideDecls(names []string) {
	top := ws.top()
	for _, name := range names {
		top.hidden[name] = struct{}{}
	}
}

// DeclareAlias records name -> replacement in the current scope's alias
// table (spec.md §4.4). The table is read back through LookupAlias only;
// internal/lex and internal/liteparse do not consult it, so no alias
// substitution happens when later source is lexed.
func (ws *WorkingSet) DeclareAlias(name string, replacement []string) {
	ws.top().aliases[name] = replacement
}

// LookupAlias returns the replacement recorded for name in the nearest
// enclosing scope, if any.
func (ws *WorkingSet) LookupAlias(name string) ([]string, bool) {
	for i := len(ws.scopes) - 1; i >= 0; i-- {
		if r, ok := ws.scopes[i].aliases[name]; ok {
			return r, true
		}
	}
	return nil, false
}

// ForgetAlias removes name from the alias table the way `hide` removes an
// alias's substitution (spec.md §8 "hide foo removes the substitution").
func (ws *WorkingSet) ForgetAlias(name string) {
	for i := len(ws.scopes) - 1; i >= 0; i-- {
		if _, ok := ws.scopes[i].aliases[name]; ok {
			delete(ws.scopes[i].aliases, name)
			return
		}
	}
}

// DeclareVar records id's static type in the current scope.
func (ws *WorkingSet) DeclareVar(name string, id ast.VarId, ty ast.ValueType) {
	top := ws.top()
	top.vars[name] = id
	top.varTypes[id] = ty
}

// SetVarType updates the static type recorded for id, searching outward
// from the current scope (used by parse_let to propagate the right-hand
// side's type onto the newly bound variable).
func (ws *WorkingSet) SetVarType(id ast.VarId, ty ast.ValueType) {
	for i := len(ws.scopes) - 1; i >= 0; i-- {
		if _, ok := ws.scopes[i].varTypes[id]; ok {
			ws.scopes[i].varTypes[id] = ty
			return
		}
	}
}

// VarType returns the static type recorded for id, if any.
func (ws *WorkingSet) VarType(id ast.VarId) (ast.ValueType, bool) {
	for i := len(ws.scopes) - 1; i >= 0; i-- {
		if ty, ok := ws.scopes[i].varTypes[id]; ok {
			return ty, true
		}
	}
	return ast.ValueType{}, false
}

// FindVar searches the scope stack top-down for a variable by name.
func (ws *WorkingSet) FindVar(name string) (ast.VarId, bool) {
	for i := len(ws.scopes) - 1; i >= 0; i-- {
		if id, ok := ws.scopes[i].vars[name]; ok {
			return id, true
		}
	}
	return ast.NoVarId, false
}
