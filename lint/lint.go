// Package lint runs pattern-matching rules over parsed SQL scripts.
// Rules inspect the typed AST only; they never need a database.
package lint

import (
	"fmt"
	"strings"

	"github.com/pglens/pglens/ast"
	"github.com/pglens/pglens/binder"
	"github.com/pglens/pglens/syntax"
)

// Violation is one rule finding, anchored to a byte range.
type Violation struct {
	Rule    string
	Message string
	Range   syntax.TextRange
}

// Rule is a named check over one file.
type Rule struct {
	Name  string
	Help  string
	Check func(file ast.SourceFile) []Violation
}

// Rules returns the built-in rule set in stable order.
func Rules() []Rule {
	return []Rule{
		{
			Name:  "require-concurrent-index-creation",
			Help:  "CREATE INDEX on an existing table locks writes; use CONCURRENTLY",
			Check: requireConcurrentIndexCreation,
		},
		{
			Name:  "ban-drop-column",
			Help:  "dropping a column breaks deployed readers of the old schema",
			Check: banDropColumn,
		},
		{
			Name:  "prefer-text-field",
			Help:  "varchar(n) limits force a rewrite to widen; prefer text",
			Check: preferTextField,
		},
	}
}

// RuleNames returns the names of all built-in rules.
func RuleNames() []string {
	rules := Rules()
	names := make([]string, 0, len(rules))
	for _, r := range rules {
		names = append(names, r.Name)
	}
	return names
}

// Check runs the given rules (all of them when names is empty) over a
// file and returns the violations in document order per rule.
func Check(file ast.SourceFile, names []string) ([]Violation, error) {
	enabled := map[string]bool{}
	for _, n := range names {
		enabled[n] = true
	}
	known := map[string]bool{}
	var out []Violation
	for _, r := range Rules() {
		known[r.Name] = true
		if len(names) > 0 && !enabled[r.Name] {
			continue
		}
		out = append(out, r.Check(file)...)
	}
	for _, n := range names {
		if !known[n] {
			return nil, fmt.Errorf("unknown lint rule %q", n)
		}
	}
	return out, nil
}

// requireConcurrentIndexCreation flags CREATE INDEX without
// CONCURRENTLY, except on tables created in the same script: those are
// invisible to other sessions, so the lock cannot hurt anyone.
func requireConcurrentIndexCreation(file ast.SourceFile) []Violation {
	created := map[string]bool{}
	for stmt := range file.Stmts() {
		if ct, ok := stmt.(ast.CreateTable); ok {
			if path, okP := ct.Path(); okP {
				if seg, okS := path.Segment(); okS {
					created[binder.Fold(seg.Syntax().Text())] = true
				}
			}
		}
	}

	var out []Violation
	for stmt := range file.Stmts() {
		ci, ok := stmt.(ast.CreateIndex)
		if !ok {
			continue
		}
		if ci.ConcurrentlyToken() != nil {
			continue
		}
		relPath, okP := ci.RelationPath()
		if !okP {
			continue
		}
		seg, okS := relPath.Segment()
		if !okS {
			continue
		}
		if created[binder.Fold(seg.Syntax().Text())] {
			continue
		}
		out = append(out, Violation{
			Rule:    "require-concurrent-index-creation",
			Message: "creating an index non-concurrently blocks writes to the table",
			Range:   ci.Syntax().Range(),
		})
	}
	return out
}

func banDropColumn(file ast.SourceFile) []Violation {
	var out []Violation
	for stmt := range file.Stmts() {
		at, ok := stmt.(ast.AlterTable)
		if !ok {
			continue
		}
		for action := range at.Actions() {
			if dc, okD := action.(ast.DropColumn); okD {
				out = append(out, Violation{
					Rule:    "ban-drop-column",
					Message: "dropping a column is not backwards compatible",
					Range:   dc.Syntax().Range(),
				})
			}
		}
	}
	return out
}

func preferTextField(file ast.SourceFile) []Violation {
	var out []Violation
	for n := range file.Syntax().Descendants() {
		col, ok := ast.Cast[ast.Column](n)
		if !ok {
			continue
		}
		ty, ok := col.Ty()
		if !ok {
			continue
		}
		pt, ok := ty.(ast.PathType)
		if !ok {
			continue
		}
		path, ok := pt.Path()
		if !ok {
			continue
		}
		seg, ok := path.Segment()
		if !ok {
			continue
		}
		name := binder.Fold(seg.Syntax().Text())
		if name != "varchar" && !(name == "character" && strings.Contains(strings.ToLower(pt.Syntax().Text()), "varying")) {
			continue
		}
		if !strings.Contains(pt.Syntax().Text(), "(") {
			continue
		}
		out = append(out, Violation{
			Rule:    "prefer-text-field",
			Message: "changing a varchar length later requires an exclusive lock; use text",
			Range:   col.Syntax().Range(),
		})
	}
	return out
}
