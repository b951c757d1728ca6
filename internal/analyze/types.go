package analyze

import (
	"go/ast"
	"go/token"
	"strings"

	"struct-update/internal/common"
)

// DirectivePrefix marks a comment line as a structupdate directive.
const DirectivePrefix = "//structupdate"

// Shape is the syntactic shape of an annotated type declaration.
type Shape int

const (
	ShapeOther  Shape = iota // type X int, type X Y, interfaces, ...
	ShapeStruct              // type X struct{ ... }
	ShapeAlias               // type X = Y
)

// String returns a human-readable representation of the Shape.
func (s Shape) String() string {
	switch s {
	case ShapeOther:
		return "other"
	case ShapeStruct:
		return "struct"
	case ShapeAlias:
		return "alias"
	default:
		return common.UnknownStr
	}
}

// StructDecl describes one annotated type declaration.
type StructDecl struct {
	Name       string         // Declared type name
	Exported   bool           // Whether the type is exported
	TypeParams []string       // Type parameter names, in order (generic structs)
	Shape      Shape          // Declaration shape; only ShapeStruct can be generated
	Fields     []FieldInfo    // Fields in declaration order, one per name
	Directives []Directive    // Raw //structupdate lines from the doc comment
	Imports    []ImportInfo   // Imports of the declaring file
	File       string         // Path of the declaring file
	Pos        token.Position // Position of the type name
}

// Receiver returns the receiver type expression for methods on this type,
// e.g. "Box[K, V]" for a generic struct.
func (d *StructDecl) Receiver() string {
	if len(d.TypeParams) == 0 {
		return d.Name
	}

	return d.Name + "[" + strings.Join(d.TypeParams, ", ") + "]"
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	Name     string         // Go field name; empty for embedded fields
	Embedded bool           // Whether the field is embedded (anonymous)
	TypeExpr ast.Expr       // Declared type expression
	Form     TypeForm       // Syntactic form of TypeExpr
	HasClone bool           // Type has a Clone() method returning the same type (needs type info)
	Pos      token.Position // Position of the field
}

// Directive is a single //structupdate comment line.
type Directive struct {
	Text string         // Comment text including the leading "//"
	Pos  token.Position // Position of the comment
}

// ImportInfo describes an import of the declaring file.
type ImportInfo struct {
	Name     string // Local name the file refers to the package by
	Path     string // Import path
	Explicit bool   // Whether the import carries an explicit name
}

// PackageInfo holds the annotated declarations of a loaded package.
type PackageInfo struct {
	Path    string        // Import path (empty for a standalone file)
	Name    string        // Package name
	Dir     string        // Directory of the package sources
	Structs []*StructDecl // Annotated declarations, in file then source order
}

// IsDirective reports whether a raw comment line is a structupdate directive.
func IsDirective(text string) bool {
	return text == DirectivePrefix || strings.HasPrefix(text, DirectivePrefix+":")
}
