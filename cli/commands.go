// Package cli implements the pglens commands. Argument parsing is
// declarative via kong struct tags; see cmd/pglens.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pglens/pglens"
	"github.com/pglens/pglens/ast"
	"github.com/pglens/pglens/ide"
	"github.com/pglens/pglens/lint"
	"github.com/pglens/pglens/parser"
	"github.com/pglens/pglens/syntax"
)

// Context represents the global context for commands.
type Context struct {
	Config  string
	Verbose bool
	NoColor bool
}

func (ctx *Context) loadConfig() (*pglens.Config, error) {
	return pglens.LoadConfig(ctx.Config)
}

// LintCmd runs the configured lint rules over SQL files.
type LintCmd struct {
	Rules []string `help:"Run only these rules (overrides configuration)" short:"r"`
	Paths []string `arg:"" optional:"" name:"path" help:"Files, directories, or doublestar globs; defaults to the configured include patterns"`
}

func (c *LintCmd) Run(ctx *Context) error {
	config, err := ctx.loadConfig()
	if err != nil {
		return err
	}
	files, err := collectFiles(c.Paths, config)
	if err != nil {
		return err
	}

	renderer := newRenderer(ctx, config)
	rules := c.Rules
	if len(rules) == 0 {
		rules = config.EffectiveRules()
	}

	total := 0
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		text := string(data)
		result := parser.Parse(text)
		file, ok := ast.Cast[ast.SourceFile](result.Root())
		if !ok {
			continue
		}
		for _, d := range result.Diagnostics {
			renderer.diagnostic(path, text, d)
		}
		violations, err := lint.Check(file, rules)
		if err != nil {
			return err
		}
		for _, v := range violations {
			renderer.violation(path, text, v)
		}
		total += len(violations)
	}

	if ctx.Verbose || total > 0 {
		renderer.summary(len(files), total)
	}
	if total > 0 {
		return pglens.ErrViolationsFound
	}
	return nil
}

// HoverCmd prints the hover text for a byte offset in a file.
type HoverCmd struct {
	Offset int    `help:"Byte offset of the caret" short:"o" required:""`
	File   string `arg:"" help:"SQL file"`
}

func (c *HoverCmd) Run(ctx *Context) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return err
	}
	if c.Offset < 0 || c.Offset > len(data) {
		return pglens.ErrOffsetOutOfRange
	}
	result := parser.Parse(string(data))
	file, ok := ast.Cast[ast.SourceFile](result.Root())
	if !ok {
		return nil
	}
	if text, found := ide.Hover(file, c.Offset); found {
		fmt.Println(text)
	}
	return nil
}

// ParseCmd parses a file and reports syntax diagnostics; with --dump
// it also prints the tree.
type ParseCmd struct {
	Dump bool   `help:"Print the syntax tree"`
	File string `arg:"" help:"SQL file"`
}

func (c *ParseCmd) Run(ctx *Context) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return err
	}
	text := string(data)
	result := parser.Parse(text)

	config, err := ctx.loadConfig()
	if err != nil {
		return err
	}
	renderer := newRenderer(ctx, config)
	for _, d := range result.Diagnostics {
		renderer.diagnostic(c.File, text, d)
	}
	if c.Dump {
		dumpTree(result.Root(), 0)
	}
	if ctx.Verbose {
		fmt.Printf("%d diagnostics\n", len(result.Diagnostics))
	}
	return nil
}

func dumpTree(n *syntax.Node, depth int) {
	r := n.Range()
	fmt.Printf("%s%s %d..%d\n", strings.Repeat("  ", depth), n.Kind(), r.Start, r.End)
	for child := range n.Children() {
		dumpTree(child, depth+1)
	}
}

// collectFiles expands paths into .sql files: directories recurse,
// doublestar patterns match relative to the working directory, and
// explicit files pass through. With no paths the configured include
// patterns apply, minus the exclude patterns.
func collectFiles(paths []string, config *pglens.Config) ([]string, error) {
	patterns := paths
	if len(patterns) == 0 {
		patterns = config.Include
	}

	seen := map[string]bool{}
	var out []string
	add := func(path string) {
		if seen[path] || excluded(path, config.Exclude) {
			return
		}
		seen[path] = true
		out = append(out, path)
	}

	for _, p := range patterns {
		info, err := os.Stat(p)
		switch {
		case err == nil && info.IsDir():
			matches, errG := doublestar.Glob(os.DirFS(p), "**/*.sql")
			if errG != nil {
				return nil, errG
			}
			for _, m := range matches {
				add(filepath.Join(p, m))
			}
		case err == nil:
			add(p)
		default:
			matches, errG := doublestar.Glob(os.DirFS("."), p)
			if errG != nil {
				return nil, fmt.Errorf("bad pattern %q: %w", p, errG)
			}
			for _, m := range matches {
				add(m)
			}
		}
	}

	if len(out) == 0 {
		return nil, pglens.ErrNoInputFiles
	}
	sort.Strings(out)
	return out, nil
}

func excluded(path string, patterns []string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, filepath.ToSlash(path)); err == nil && ok {
			return true
		}
	}
	return false
}
