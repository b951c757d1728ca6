package match

import (
	"go/ast"

	"struct-update/internal/analyze"
	"struct-update/internal/mapping"
)

// SimpleName returns the simple name of a bare named-type expression.
// Pointers, slices, maps, generic instantiations and every other
// non-path form report false.
func SimpleName(expr ast.Expr) (string, bool) {
	if !analyze.ClassifyTypeExpr(expr).IsPath() {
		return "", false
	}

	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name, true
	case *ast.SelectorExpr:
		return e.Sel.Name, true
	}

	return "", false
}

// Matches reports whether field's declared type matches the target type.
// Only fields whose form is a bare named path take part.
func Matches(field *analyze.FieldInfo, target mapping.Path) bool {
	if !field.Form.IsPath() {
		return false
	}

	name, _ := SimpleName(field.TypeExpr)
	want := target.SimpleName()

	return want != "" && name == want
}

// Fields returns the fields matching target, in declaration order.
func Fields(fields []analyze.FieldInfo, target mapping.Path) []*analyze.FieldInfo {
	var out []*analyze.FieldInfo

	for i := range fields {
		if Matches(&fields[i], target) {
			out = append(out, &fields[i])
		}
	}

	return out
}
