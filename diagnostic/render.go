package diagnostic

import (
	"fmt"
	"io"
	"strings"

	"github.com/kestrel-sh/kestrel/ast"
	"github.com/kestrel-sh/kestrel/kwerrors"
	"github.com/kestrel-sh/kestrel/workingset"
	"github.com/logrusorgru/aurora"
)

// Renderer pretty-prints kwerrors.Error values against a working set's
// source, the way diagnostic/span.go's SpanError.Pretty does in the
// teacher, colorized with aurora and gated by isatty at the CLI layer
// (see cmd/keywordparse).
type Renderer struct {
	WS    *workingset.WorkingSet
	Color aurora.Aurora
}

// NewRenderer builds a Renderer, wrapping color in aurora.NewAurora;
// color normally comes from isatty.IsTerminal at the call site (ambient stack:
// mattn/go-isatty + logrusorgru/aurora, matching cmd/hlb/main.go's
// isatty.IsTerminal(os.Stderr.Fd()) gate).
func NewRenderer(ws *workingset.WorkingSet, color bool) *Renderer {
	return &Renderer{WS: ws, Color: aurora.NewAurora(color)}
}

// Render writes a one-or-more-line diagnostic for err to w, underlining
// every span kwerrors.Error.Spans() reports.
func (r *Renderer) Render(w io.Writer, err error) {
	var kwErr kwerrors.Error
	kind, ok := err.(kwerrors.Error)
	if !ok {
		fmt.Fprintf(w, "%s: %s\n", r.Color.Bold(r.Color.Red("error")), err)
		return
	}
	kwErr = kind

	fmt.Fprintf(w, "%s: %s\n", r.Color.Bold(r.Color.Red("error")), r.Color.Bold(err.Error()))
	for _, span := range kwErr.Spans() {
		r.renderSpan(w, span)
	}
}

func (r *Renderer) renderSpan(w io.Writer, span ast.Span) {
	if r.WS == nil {
		return
	}
	filename := r.WS.FilenameFor(span.Start)
	line, col := r.WS.LineCol(span.Start)
	fmt.Fprintf(w, r.Color.Sprintf(r.Color.Blue("  --> %s:%d:%d\n"), filename, line, col))

	data, lerr := r.WS.Line(line)
	if lerr != nil {
		return
	}
	fmt.Fprintf(w, "   %s\n", data)

	_, endCol := r.WS.LineCol(span.End)
	width := endCol - col
	if width < 1 {
		width = 1
	}
	fmt.Fprintf(w, "   %s%s\n",
		strings.Repeat(" ", col-1),
		r.Color.Sprintf(r.Color.Red(strings.Repeat("^", width))),
	)
}
