package mapping

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/types"
	"slices"
	"strings"
)

// Path is a type or function path taken from a directive value.
type Path struct {
	expr ast.Expr
	raw  string
}

// ParsePath parses s as a Go path: Name, pkg.Name, with optional type
// arguments (Name[T], pkg.Name[K, V]).
func ParsePath(s string) (Path, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Path{}, errors.New("empty path")
	}

	expr, err := parser.ParseExpr(s)
	if err != nil {
		return Path{}, fmt.Errorf("%q is not a valid path", s)
	}

	if !isPathExpr(expr) {
		return Path{}, fmt.Errorf("%q is not a valid path", s)
	}

	return Path{expr: expr, raw: types.ExprString(expr)}, nil
}

// MustParsePath is like ParsePath but panics on error. Intended for tests
// and static tables.
func MustParsePath(s string) Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}

	return p
}

// String returns the canonical source form of the path.
func (p Path) String() string {
	return p.raw
}

// IsZero reports whether the path is unset.
func (p Path) IsZero() bool {
	return p.expr == nil
}

// SimpleName returns the final path segment without type arguments.
func (p Path) SimpleName() string {
	switch e := stripTypeArgs(p.expr).(type) {
	case *ast.Ident:
		return e.Name
	case *ast.SelectorExpr:
		return e.Sel.Name
	default:
		return ""
	}
}

// Qualifier returns the package identifier of a qualified path, or "".
func (p Path) Qualifier() string {
	if sel, ok := stripTypeArgs(p.expr).(*ast.SelectorExpr); ok {
		if x, ok := sel.X.(*ast.Ident); ok {
			return x.Name
		}
	}

	return ""
}

// Names returns every identifier the path refers to from the enclosing
// scope, in source order without duplicates: package qualifiers and
// unqualified names, including those inside type arguments.
func (p Path) Names() []string {
	names, _ := p.refs()
	return names
}

// Qualifiers returns every package qualifier of the path, including those
// inside type arguments (conv.Clamp[time.Duration] yields conv and time).
func (p Path) Qualifiers() []string {
	_, quals := p.refs()
	return quals
}

func (p Path) refs() (names, quals []string) {
	if p.expr == nil {
		return nil, nil
	}

	add := func(list []string, name string) []string {
		if slices.Contains(list, name) {
			return list
		}

		return append(list, name)
	}

	ast.Inspect(p.expr, func(n ast.Node) bool {
		switch e := n.(type) {
		case *ast.SelectorExpr:
			if x, ok := e.X.(*ast.Ident); ok {
				names = add(names, x.Name)
				quals = add(quals, x.Name)

				return false
			}
		case *ast.Ident:
			names = add(names, e.Name)
		}

		return true
	})

	return names, quals
}

// MarshalYAML renders the path as its source form.
func (p Path) MarshalYAML() (any, error) {
	return p.raw, nil
}

func stripTypeArgs(expr ast.Expr) ast.Expr {
	switch e := expr.(type) {
	case *ast.IndexExpr:
		return e.X
	case *ast.IndexListExpr:
		return e.X
	default:
		return expr
	}
}

func isPathExpr(expr ast.Expr) bool {
	switch e := expr.(type) {
	case *ast.IndexExpr:
		return isBarePath(e.X) && isTypeArg(e.Index)
	case *ast.IndexListExpr:
		if !isBarePath(e.X) {
			return false
		}

		for _, idx := range e.Indices {
			if !isTypeArg(idx) {
				return false
			}
		}

		return true
	default:
		return isBarePath(expr)
	}
}

func isBarePath(expr ast.Expr) bool {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name != "_"
	case *ast.SelectorExpr:
		_, ok := e.X.(*ast.Ident)
		return ok
	default:
		return false
	}
}

// isTypeArg accepts anything that can spell a type argument. Literals
// and calls are rejected.
func isTypeArg(expr ast.Expr) bool {
	switch e := expr.(type) {
	case *ast.Ident, *ast.SelectorExpr, *ast.ArrayType, *ast.MapType,
		*ast.ChanType, *ast.FuncType, *ast.StructType, *ast.InterfaceType:
		return true
	case *ast.StarExpr:
		return isTypeArg(e.X)
	case *ast.IndexExpr, *ast.IndexListExpr:
		return isPathExpr(e)
	default:
		return false
	}
}
