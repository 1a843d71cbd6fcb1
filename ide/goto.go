package ide

import (
	"github.com/pglens/pglens/ast"
	"github.com/pglens/pglens/binder"
	"github.com/pglens/pglens/resolve"
	"github.com/pglens/pglens/syntax"
)

// GotoDefinition returns a pointer to the defining Name of the
// identifier under the offset. A caret on a definition site answers
// with that definition itself.
func GotoDefinition(file ast.SourceFile, offset int) (syntax.NodePointer, bool) {
	root := file.Syntax()
	token := tokenFromOffset(root, offset)
	if token == nil {
		return syntax.NodePointer{}, false
	}
	parent := token.Parent()
	if parent == nil {
		return syntax.NodePointer{}, false
	}

	if ref, ok := ast.Cast[ast.NameRef](parent); ok {
		b := binder.Bind(root)
		return resolve.ResolveNameRef(b, ref)
	}
	if name, ok := ast.Cast[ast.Name](parent); ok {
		return syntax.PointerTo(name.Syntax()), true
	}
	return syntax.NodePointer{}, false
}
