package analyze

import "go/ast"

//go:generate go tool stringer -type=TypeForm -trimprefix=Form -output=typeform_string.go

// TypeForm is the syntactic form of a declared field type.
type TypeForm int

const (
	FormOther     TypeForm = iota // parenthesised or anything not listed below
	FormIdent                     // int32, Celsius
	FormSelector                  // time.Duration
	FormPointer                   // *T
	FormSlice                     // []T
	FormArray                     // [N]T
	FormMap                       // map[K]V
	FormChan                      // chan T
	FormFunc                      // func(...)
	FormStruct                    // struct{ ... }
	FormInterface                 // interface{ ... }
	FormGeneric                   // List[T], pkg.Set[K, V]
)

// IsPath reports whether the form is a bare named-type path.
func (f TypeForm) IsPath() bool {
	return f == FormIdent || f == FormSelector
}

// ClassifyTypeExpr returns the syntactic form of a type expression.
func ClassifyTypeExpr(expr ast.Expr) TypeForm {
	switch t := expr.(type) {
	case *ast.Ident:
		return FormIdent
	case *ast.SelectorExpr:
		if _, ok := t.X.(*ast.Ident); ok {
			return FormSelector
		}

		return FormOther
	case *ast.StarExpr:
		return FormPointer
	case *ast.ArrayType:
		if t.Len == nil {
			return FormSlice
		}

		return FormArray
	case *ast.MapType:
		return FormMap
	case *ast.ChanType:
		return FormChan
	case *ast.FuncType:
		return FormFunc
	case *ast.StructType:
		return FormStruct
	case *ast.InterfaceType:
		return FormInterface
	case *ast.IndexExpr, *ast.IndexListExpr:
		return FormGeneric
	default:
		return FormOther
	}
}
