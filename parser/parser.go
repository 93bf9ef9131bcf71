// Package parser implements the keyword-parser and module-resolution
// core: keyword dispatch, the predeclaration pass, and the nine keyword
// parsers (def, alias, export, module, use, hide, let, source, register).
// Grounded on the teacher's checker package (checker/check.go's
// SemanticPass two-pass protocol, checker/errors.go's one-struct-per-kind
// errors) and module/resolve.go's filesystem module resolution, adapted
// from HLB's build-graph domain to the keyword-parsing domain this core
// specifies.
package parser

import (
	"github.com/kestrel-sh/kestrel/ast"
	"github.com/kestrel-sh/kestrel/plugin"
	"github.com/kestrel-sh/kestrel/workingset"
)

// builtinNames lists every built-in command this core itself invokes a
// keyword parser on behalf of, registered once so keyword parsers can
// stamp a stable DeclId onto the Call node they build.
var builtinNames = []string{
	"def", "alias", "export", "export def", "export env",
	"module", "use", "hide", "let", "source", "register",
}

// Parser walks lite-parsed pipelines against one WorkingSet, dispatching
// each to the matching keyword parser (spec.md §4.1).
type Parser struct {
	WS *workingset.WorkingSet

	// PluginDialer opens a transport to the plugin binary at path (run
	// through shell if non-empty). Overridable in tests; defaults to
	// plugin.Spawn+plugin.Dial.
	PluginDialer func(path, shell string) (*plugin.Client, error)
}

// New builds a Parser over ws, registering every built-in command name
// this core's keyword parsers need a DeclId for.
func New(ws *workingset.WorkingSet) *Parser {
	p := &Parser{WS: ws}
	for _, name := range builtinNames {
		ws.RegisterBuiltin(name)
	}
	p.PluginDialer = func(path, shell string) (*plugin.Client, error) {
		rw, err := plugin.Spawn(path, shell)
		if err != nil {
			return nil, err
		}
		return plugin.Dial(rw), nil
	}
	return p
}

// text returns the source bytes a span covers, as a string.
func (p *Parser) text(span ast.Span) string {
	return string(p.WS.SourceText(span))
}
