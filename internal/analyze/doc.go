// Package analyze provides package loading and struct declaration extraction.
//
// It uses golang.org/x/tools/go/packages (or go/parser for a single file)
// to find type declarations carrying //structupdate directives and turn
// them into StructDecl values: name, visibility, type parameters, ordered
// fields and the raw directive lines.
//
// Key types:
//   - StructDecl: one annotated type declaration
//   - FieldInfo: one struct field with its declared type expression
//   - TypeForm: the syntactic form of a field's type expression
package analyze
