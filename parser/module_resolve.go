package parser

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/kestrel-sh/kestrel/ast"
	"github.com/kestrel-sh/kestrel/diagnostic"
	"github.com/kestrel-sh/kestrel/kwerrors"
	"github.com/kestrel-sh/kestrel/workingset"
)

// resolveModuleFile implements the filesystem branch of parse_use's
// resolution order (spec.md §4.7 step 2): treat head as a path, read it,
// and run parse_module_block over its full contents (no outer braces to
// strip — a module file's whole body is the interior).
func (p *Parser) resolveModuleFile(headName string, headSpan ast.Span) (*ast.Overlay, error) {
	if !utf8.ValidString(headName) {
		return nil, kwerrors.NonUtf8{Span: headSpan}
	}
	expanded, eerr := workingset.ExpandHomeDir(headName)
	if eerr != nil {
		return nil, kwerrors.FileNotFound{Span: headSpan, Path: headName}
	}
	real, cerr := workingset.Canonicalize(expanded)
	if cerr != nil {
		return nil, kwerrors.FileNotFound{Span: headSpan, Path: headName}
	}
	data, rerr := os.ReadFile(real)
	if rerr != nil {
		return nil, kwerrors.ModuleNotFound{Span: headSpan, Name: headName}
	}

	span := p.WS.AddFile(real, data)
	block, overlay, perr := p.parseModuleInterior(span)
	p.WS.AddBlock(block)

	stem := fileStem(real)
	p.WS.AddOverlay(stem, overlay)
	return overlay, perr
}

// fileStem returns path's base name with its extension removed, e.g.
// "/a/b/foo.nu" -> "foo".
func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// declsForPattern computes decls_to_use / decls_to_hide from an import
// pattern's member selector (spec.md §4.7, reused by parse_hide per
// §4.8's "mirrors use").
func (p *Parser) declsForPattern(overlay *ast.Overlay, pattern *ast.ImportPattern, headName string) (map[string]ast.DeclId, error) {
	switch pattern.MemberKind {
	case ast.MemberEmpty:
		return overlay.DeclsWithHead(headName), nil
	case ast.MemberGlob:
		return overlay.DeclsBare(), nil
	case ast.MemberName:
		id, ok := overlay.Decls[pattern.Name.Name]
		if !ok {
			if _, envOk := overlay.EnvVars[pattern.Name.Name]; !envOk {
				return nil, kwerrors.ExportNotFound{
					Span: pattern.Name.Span, Name: pattern.Name.Name,
					Suggestion: diagnostic.Suggestion(pattern.Name.Name, overlayNames(overlay)),
				}
			}
			return map[string]ast.DeclId{}, nil
		}
		return map[string]ast.DeclId{pattern.Name.Name: id}, nil
	case ast.MemberList:
		out := make(map[string]ast.DeclId, len(pattern.List))
		for _, m := range pattern.List {
			id, ok := overlay.Decls[m.Name]
			if !ok {
				if _, envOk := overlay.EnvVars[m.Name]; !envOk {
					return nil, kwerrors.ExportNotFound{
						Span: m.Span, Name: m.Name,
						Suggestion: diagnostic.Suggestion(m.Name, overlayNames(overlay)),
					}
				}
				continue
			}
			out[m.Name] = id
		}
		return out, nil
	default:
		return nil, kwerrors.InternalError{Span: pattern.HeadSpan, Msg: "unknown import pattern member kind"}
	}
}
