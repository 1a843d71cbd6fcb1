package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/pglens/pglens"
	"github.com/pglens/pglens/lint"
	"github.com/pglens/pglens/syntax"
)

// renderer prints diagnostics and violations as
// path:line:col: [label] message, colored when the terminal allows.
type renderer struct {
	errLabel  *color.Color
	warnLabel *color.Color
	dim       *color.Color
}

func newRenderer(ctx *Context, config *pglens.Config) *renderer {
	enabled := config.Color != "never" && !ctx.NoColor
	if config.Color == "always" && !ctx.NoColor {
		color.NoColor = false
	} else if !enabled {
		color.NoColor = true
	}
	return &renderer{
		errLabel:  color.New(color.FgRed, color.Bold),
		warnLabel: color.New(color.FgYellow, color.Bold),
		dim:       color.New(color.Faint),
	}
}

func (r *renderer) diagnostic(path, text string, d syntax.Diagnostic) {
	line, col := lineCol(text, d.Range.Start)
	fmt.Printf("%s:%d:%d: %s %s\n", path, line, col, r.errLabel.Sprint("syntax"), d.Message)
}

func (r *renderer) violation(path, text string, v lint.Violation) {
	line, col := lineCol(text, v.Range.Start)
	fmt.Printf("%s:%d:%d: %s %s %s\n",
		path, line, col, r.warnLabel.Sprint(v.Rule), v.Message, r.dim.Sprintf("(%d bytes)", v.Range.Len()))
}

func (r *renderer) summary(files, violations int) {
	if violations == 0 {
		fmt.Printf("%d files checked, no violations\n", files)
		return
	}
	fmt.Printf("%d files checked, %s\n", files, r.warnLabel.Sprintf("%d violations", violations))
}

// lineCol converts a byte offset into 1-based line and column.
func lineCol(text string, offset int) (int, int) {
	if offset > len(text) {
		offset = len(text)
	}
	before := text[:offset]
	line := strings.Count(before, "\n") + 1
	col := offset - strings.LastIndex(before, "\n")
	return line, col
}
