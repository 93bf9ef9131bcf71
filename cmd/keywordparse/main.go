// Command keywordparse is a thin driver over the parser package: it reads
// one or more source files, runs each through its own fresh working set,
// and prints either the number of statements parsed (plus, with --tree,
// the registered overlays) or the diagnostic produced. Adapted from
// the teacher's cmd/hlb/main.go (urfave/cli/v2 app shape, isatty-gated
// color).
package main

import (
	"fmt"
	"os"

	"github.com/kestrel-sh/kestrel/diagnostic"
	"github.com/kestrel-sh/kestrel/parser"
	"github.com/kestrel-sh/kestrel/workingset"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

func main() {
	app := &cli.App{
		Name:  "keywordparse",
		Usage: "parse a source file's def/alias/module/use/hide/let/source/register statements",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "color", Usage: "force-enable colorized diagnostics"},
			&cli.BoolFlag{Name: "tree", Usage: "print each file's registered overlay/module tree"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// fileResult is one file's independent parse outcome: each file gets its
// own WorkingSet (spec.md §5 — a working set is exclusively owned by one
// parsing session), so unlike a `source`/`use` recursion within a single
// session, parsing N unrelated files given on the command line has no
// shared mutable state and can be fanned out safely.
type fileResult struct {
	filename string
	ws       *workingset.WorkingSet
	stmts    int
	err      error
}

func run(c *cli.Context) error {
	if c.Args().Len() == 0 {
		return cli.Exit("usage: keywordparse <file> [file...]", 1)
	}
	filenames := c.Args().Slice()
	results := make([]fileResult, len(filenames))

	// Adapted from the teacher's parser.ParseMultiple (parser/parse.go):
	// fan out independent per-file parses with golang.org/x/sync/errgroup.
	// Each goroutine records its file's error in results and returns nil,
	// so every file finishes and every error is reported below.
	var g errgroup.Group
	for i, filename := range filenames {
		i, filename := i, filename
		g.Go(func() error {
			data, err := os.ReadFile(filename)
			if err != nil {
				results[i] = fileResult{filename: filename, err: err}
				return nil
			}

			ws := workingset.New()
			p := parser.New(ws)
			block, perr := p.Parse(filename, data)
			results[i] = fileResult{filename: filename, ws: ws, stmts: len(block.Stmts), err: perr}
			return nil
		})
	}
	_ = g.Wait()

	color := c.Bool("color") || isatty.IsTerminal(os.Stdout.Fd())
	failed := false
	for _, r := range results {
		if r.err != nil {
			failed = true
			if r.ws != nil {
				diagnostic.NewRenderer(r.ws, color).Render(os.Stderr, r.err)
			} else {
				fmt.Fprintf(os.Stderr, "%s: %v\n", r.filename, r.err)
			}
			continue
		}
		fmt.Printf("%s: parsed %d statement(s)\n", r.filename, r.stmts)
		if c.Bool("tree") && r.ws != nil {
			fmt.Println(r.ws.OverlayTree(r.filename).String())
		}
	}
	if failed {
		return cli.Exit("", 1)
	}
	return nil
}
