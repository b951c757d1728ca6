package analyze

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"

	"struct-update/internal/common"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// GeneratedHeader starts every file written by this tool. Such files are
// skipped when collecting declarations.
const GeneratedHeader = "// Code generated by struct-update; DO NOT EDIT."

// Analyzer loads Go packages and extracts annotated struct declarations.
type Analyzer struct {
	fset      *token.FileSet
	dir       string
	buildTags []string
}

// NewAnalyzer creates a new Analyzer. Patterns passed to LoadPackages are
// resolved relative to dir (the current directory when empty).
func NewAnalyzer(dir string, buildTags ...string) *Analyzer {
	return &Analyzer{
		fset:      token.NewFileSet(),
		dir:       dir,
		buildTags: buildTags,
	}
}

// FileSet returns the file set positions are reported against.
func (a *Analyzer) FileSet() *token.FileSet {
	return a.fset
}

// LoadPackages loads the specified packages and extracts their annotated
// declarations. Patterns are standard Go package patterns (e.g. ".", "./...").
//
// Type errors do not fail the load: a stale generated file must not prevent
// regeneration. Type information is then used best-effort only.
func (a *Analyzer) LoadPackages(ctx context.Context, patterns ...string) ([]*PackageInfo, error) {
	cfg := &packages.Config{
		Mode:    LoadMode,
		Context: ctx,
		Dir:     a.dir,
		Fset:    a.fset,
	}

	if len(a.buildTags) > 0 {
		cfg.BuildFlags = []string{"-tags=" + strings.Join(a.buildTags, ",")}
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		errs = append(errs, fatalErrors(pkg)...)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	var result []*PackageInfo
	for _, pkg := range pkgs {
		info, err := a.processPackage(pkg)
		if err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}

		result = append(result, info)
	}

	return result, nil
}

// fatalErrors returns the errors of pkg that prevent extraction. Type
// errors are tolerated, including the copy go list reports of the same
// compile failure, as long as syntax and type information were loaded.
func fatalErrors(pkg *packages.Package) []error {
	usable := len(pkg.Syntax) > 0 && pkg.TypesInfo != nil

	var errs []error
	for _, e := range pkg.Errors {
		switch {
		case e.Kind == packages.TypeError && usable:
			continue
		case e.Kind == packages.ListError && usable && len(pkg.TypeErrors) > 0:
			continue
		}

		errs = append(errs, e)
	}

	return errs
}

// ParseFile parses a single source file without type information. src is
// handled as in go/parser.ParseFile (nil reads the file from disk).
func (a *Analyzer) ParseFile(filename string, src any) (*PackageInfo, error) {
	file, err := parser.ParseFile(a.fset, filename, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("parsing file %s: %w", filename, err)
	}

	info := &PackageInfo{
		Name: file.Name.Name,
		Dir:  filepath.Dir(filename),
	}

	if !isGenerated(file) {
		info.Structs = a.processFile(file, nil, nil)
	}

	return info, nil
}

// processPackage extracts annotated declarations from a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) (*PackageInfo, error) {
	info := &PackageInfo{
		Path: pkg.PkgPath,
		Name: pkg.Name,
	}

	if len(pkg.GoFiles) > 0 {
		info.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	if len(pkg.Syntax) == 0 && len(pkg.GoFiles) > 0 {
		return nil, fmt.Errorf("no syntax loaded for %d files", len(pkg.GoFiles))
	}

	// Import names come from the loaded packages, not the path, so that
	// gopkg.in/yaml.v3 resolves to "yaml".
	names := make(map[string]string, len(pkg.Imports))
	for path, imp := range pkg.Imports {
		names[path] = imp.Name
	}

	files := append([]*ast.File(nil), pkg.Syntax...)
	sort.SliceStable(files, func(i, j int) bool {
		return a.fset.Position(files[i].Package).Filename < a.fset.Position(files[j].Package).Filename
	})

	for _, file := range files {
		if isGenerated(file) {
			continue
		}

		info.Structs = append(info.Structs, a.processFile(file, pkg.TypesInfo, names)...)
	}

	return info, nil
}

// processFile collects annotated type declarations from a single file.
func (a *Analyzer) processFile(file *ast.File, typesInfo *types.Info, importNames map[string]string) []*StructDecl {
	imports := a.fileImports(file, importNames)
	filename := a.fset.Position(file.Package).Filename

	var decls []*StructDecl

	for _, d := range file.Decls {
		gen, ok := d.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}

		for _, spec := range gen.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}

			doc := ts.Doc
			if doc == nil && !gen.Lparen.IsValid() {
				doc = gen.Doc
			}

			directives := a.directives(doc)
			if len(directives) == 0 {
				continue
			}

			decl := &StructDecl{
				Name:       ts.Name.Name,
				Exported:   ts.Name.IsExported(),
				Directives: directives,
				Imports:    imports,
				File:       filename,
				Pos:        a.fset.Position(ts.Name.Pos()),
			}

			if ts.TypeParams != nil {
				for _, field := range ts.TypeParams.List {
					for _, name := range field.Names {
						decl.TypeParams = append(decl.TypeParams, name.Name)
					}
				}
			}

			switch st := ts.Type.(type) {
			case *ast.StructType:
				if ts.Assign.IsValid() {
					decl.Shape = ShapeAlias
					break
				}

				decl.Shape = ShapeStruct
				decl.Fields = a.structFields(st, typesInfo)
			default:
				if ts.Assign.IsValid() {
					decl.Shape = ShapeAlias
				} else {
					decl.Shape = ShapeOther
				}
			}

			decls = append(decls, decl)
		}
	}

	return decls
}

// structFields extracts fields from a struct type, one entry per name.
func (a *Analyzer) structFields(st *ast.StructType, typesInfo *types.Info) []FieldInfo {
	var fields []FieldInfo

	for _, field := range st.Fields.List {
		base := FieldInfo{
			TypeExpr: field.Type,
			Form:     ClassifyTypeExpr(field.Type),
			Pos:      a.fset.Position(field.Pos()),
		}

		if typesInfo != nil {
			base.HasClone = hasCloneMethod(typesInfo.TypeOf(field.Type))
		}

		if len(field.Names) == 0 {
			base.Embedded = true
			fields = append(fields, base)

			continue
		}

		for _, name := range field.Names {
			f := base
			f.Name = name.Name
			f.Pos = a.fset.Position(name.Pos())
			fields = append(fields, f)
		}
	}

	return fields
}

// directives returns the //structupdate lines of a doc comment.
func (a *Analyzer) directives(doc *ast.CommentGroup) []Directive {
	if doc == nil {
		return nil
	}

	var out []Directive
	for _, c := range doc.List {
		text := strings.TrimRight(c.Text, " \t\r")
		if !IsDirective(text) {
			continue
		}

		out = append(out, Directive{
			Text: text,
			Pos:  a.fset.Position(c.Slash),
		})
	}

	return out
}

// fileImports lists the imports of a file with the local name each is
// referred to by. Blank and dot imports cannot qualify an identifier and
// are left out.
func (a *Analyzer) fileImports(file *ast.File, importNames map[string]string) []ImportInfo {
	var out []ImportInfo

	for _, spec := range file.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}

		imp := ImportInfo{Path: path}

		switch {
		case spec.Name != nil:
			if spec.Name.Name == "_" || spec.Name.Name == "." {
				continue
			}

			imp.Name = spec.Name.Name
			imp.Explicit = true
		case importNames[path] != "":
			imp.Name = importNames[path]
		default:
			imp.Name = common.PkgAlias(path)
		}

		out = append(out, imp)
	}

	return out
}

// hasCloneMethod reports whether t has a method Clone() t, reachable through
// an addressable value.
func hasCloneMethod(t types.Type) bool {
	if t == nil {
		return false
	}

	if _, isPtr := t.(*types.Pointer); isPtr {
		return false
	}

	sel := types.NewMethodSet(types.NewPointer(t)).Lookup(nil, "Clone")
	if sel == nil {
		return false
	}

	sig, ok := sel.Type().(*types.Signature)
	if !ok || sig.Params().Len() != 0 || sig.Results().Len() != 1 {
		return false
	}

	return types.Identical(sig.Results().At(0).Type(), t)
}

func isGenerated(file *ast.File) bool {
	for _, cg := range file.Comments {
		if cg.Pos() > file.Package {
			break
		}

		for _, c := range cg.List {
			if c.Text == GeneratedHeader {
				return true
			}
		}
	}

	return false
}
