package plan

import (
	"fmt"

	"struct-update/internal/analyze"
	"struct-update/internal/diagnostic"
	"struct-update/internal/mapping"
)

// Generated method names, by struct visibility.
const (
	MethodName           = "UpdateStruct"
	UnexportedMethodName = "updateStruct"
)

// PackagePlan is the resolved plan of one package.
type PackagePlan struct {
	// Package is the analyzed package.
	Package *analyze.PackageInfo
	// Structs holds one plan per successfully resolved struct, in source order.
	Structs []*StructPlan
	// Failed lists structs that got diagnostics and will not be generated.
	Failed []string
	// Diagnostics contains all recoverable problems found in the package.
	Diagnostics diagnostic.Diagnostics
}

// StructPlan is the generated method of one struct.
type StructPlan struct {
	// Decl is the annotated declaration.
	Decl *analyze.StructDecl
	// Config is the parsed directive table.
	Config *mapping.ConfigurationSet
	// Receiver is the receiver variable name.
	Receiver string
	// MethodName is the generated method's name.
	MethodName string
	// Updates are the method's statements, in entry then field order.
	Updates []Update
	// Imports are the packages the transform functions are qualified with.
	Imports []analyze.ImportInfo
	// Unused holds the indexes of entries that matched no field.
	Unused []int
}

// Update is a single "field = func(copy of field)" statement.
type Update struct {
	// Field is the field name.
	Field string
	// Func is the transform function path as written in the directive.
	Func string
	// Clone copies the value through its Clone method instead of plain assignment.
	Clone bool
	// Entry is the index of the configuration entry that produced this update.
	Entry int
}

// Arg returns the argument expression passed to the transform.
func (u Update) Arg(recv string) string {
	if u.Clone {
		return fmt.Sprintf("%s.%s.Clone()", recv, u.Field)
	}

	return recv + "." + u.Field
}

// Statement renders the update as Go source.
func (u Update) Statement(recv string) string {
	return fmt.Sprintf("%s.%s = %s(%s)", recv, u.Field, u.Func, u.Arg(recv))
}

// Statements renders every update of the plan.
func (p *StructPlan) Statements() []string {
	out := make([]string, 0, len(p.Updates))
	for _, u := range p.Updates {
		out = append(out, u.Statement(p.Receiver))
	}

	return out
}
