package plan

import (
	"fmt"

	"struct-update/internal/analyze"
	"struct-update/internal/common"
	"struct-update/internal/diagnostic"
	"struct-update/internal/mapping"
	"struct-update/internal/match"
)

// maxSuggestDistance bounds the edit distance of a "did you mean" hint.
const maxSuggestDistance = 2

// Resolve plans every annotated struct of pkg.
//
// Diagnostics on one struct exclude that struct and resolution continues
// with the next. A fatal error stops resolution and is returned as is.
func Resolve(pkg *analyze.PackageInfo) (*PackagePlan, error) {
	pp := &PackagePlan{Package: pkg}

	for _, decl := range pkg.Structs {
		set, diags, err := mapping.Extract(decl)
		if err != nil {
			return nil, err
		}

		pp.Diagnostics.Merge(diags)

		if diags.HasErrors() {
			pp.Failed = append(pp.Failed, decl.Name)
			continue
		}

		sp, err := Synthesize(decl, set)
		if err != nil {
			return nil, err
		}

		sp.reportUnused(&pp.Diagnostics)
		pp.Structs = append(pp.Structs, sp)
	}

	pp.checkImportConflicts()

	return pp, nil
}

// OK reports whether every annotated struct of the package resolved.
func (pp *PackagePlan) OK() bool {
	return pp.Diagnostics.IsValid() && len(pp.Failed) == 0
}

// Imports returns the merged imports of all struct plans. The same path
// may appear twice when files import it under different names.
func (pp *PackagePlan) Imports() []analyze.ImportInfo {
	type key struct{ name, path string }

	seen := make(map[key]bool)

	var out []analyze.ImportInfo
	for _, sp := range pp.Structs {
		for _, imp := range sp.Imports {
			k := key{imp.Name, imp.Path}
			if seen[k] {
				continue
			}

			seen[k] = true
			out = append(out, imp)
		}
	}

	return out
}

// checkImportConflicts reports structs whose transforms refer to a package
// name that another struct, declared in a different file, binds to a
// different import path. Both cannot share the generated file.
func (pp *PackagePlan) checkImportConflicts() {
	byName := make(map[string]string)

	kept := pp.Structs[:0]
	for _, sp := range pp.Structs {
		conflict := false

		for _, imp := range sp.Imports {
			path, ok := byName[imp.Name]
			if ok && path != imp.Path {
				pp.Diagnostics.AddError(diagnostic.CodeImportConflict,
					fmt.Sprintf("package name %q refers to %q here but to %q in another annotated file", imp.Name, imp.Path, path),
					sp.Decl.Name, sp.Decl.Pos)

				conflict = true
			}
		}

		if conflict {
			pp.Failed = append(pp.Failed, sp.Decl.Name)
			continue
		}

		for _, imp := range sp.Imports {
			byName[imp.Name] = imp.Path
		}

		kept = append(kept, sp)
	}

	pp.Structs = kept
}

// reportUnused warns about entries that matched no field. The method is
// still generated; an entry may legitimately be kept for fields added later.
func (sp *StructPlan) reportUnused(diags *diagnostic.Diagnostics) {
	if len(sp.Unused) == 0 {
		return
	}

	var names []string
	for i := range sp.Decl.Fields {
		if name, ok := match.SimpleName(sp.Decl.Fields[i].TypeExpr); ok {
			names = append(names, name)
		}
	}

	for _, i := range sp.Unused {
		entry := sp.Config.Entries[i]

		msg := fmt.Sprintf("ty=%s matches no field", entry.Ty)
		if hint, ok := common.Closest(entry.Ty.SimpleName(), names, maxSuggestDistance); ok {
			msg += fmt.Sprintf(" (did you mean %s?)", hint)
		}

		diags.AddWarning(diagnostic.CodeUnusedEntry, msg, sp.Decl.Name, entry.Pos)
	}
}
