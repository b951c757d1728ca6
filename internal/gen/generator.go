package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"struct-update/internal/analyze"
	"struct-update/internal/plan"
)

// FileSuffix is appended to the package name to form the default output
// file name.
const FileSuffix = "_structupdate.go"

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// OutputName overrides the generated file name. Empty means
	// <package>_structupdate.go.
	OutputName string
	// DebugDir receives the unformatted source when formatting fails.
	// Empty means the package directory.
	DebugDir string
}

// DefaultGeneratorConfig returns the default configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{}
}

// Generator generates UpdateStruct methods from package plans.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	Package  string // Import path of the source package, or its name for a standalone file
	Filename string
	Dir      string
	Content  []byte
}

// Target returns where the file is written: outputDir when set, the package
// directory otherwise.
func (f GeneratedFile) Target(outputDir string) string {
	if outputDir != "" {
		return filepath.Join(outputDir, f.Filename)
	}

	return filepath.Join(f.Dir, f.Filename)
}

// Generate renders one file for the package plan. It returns nil when the
// plan holds no struct to generate.
func (g *Generator) Generate(pp *plan.PackagePlan) (*GeneratedFile, error) {
	if len(pp.Structs) == 0 {
		return nil, nil
	}

	data := g.buildTemplateData(pp)
	filename := g.Filename(pp.Package.Name)

	var buf bytes.Buffer

	err := fileTemplate.Execute(&buf, data)
	if err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if saved := g.saveUnformatted(pp, filename, buf.Bytes()); saved != "" {
			return nil, fmt.Errorf("formatting generated code for package %s (unformatted source in %s): %w",
				pp.Package.Name, saved, err)
		}

		return nil, fmt.Errorf("formatting generated code for package %s: %w", pp.Package.Name, err)
	}

	return &GeneratedFile{
		Package:  packageID(pp.Package),
		Filename: filename,
		Dir:      pp.Package.Dir,
		Content:  formatted,
	}, nil
}

// GenerateAll renders every plan that has something to generate.
func (g *Generator) GenerateAll(plans []*plan.PackagePlan) ([]GeneratedFile, error) {
	var files []GeneratedFile

	for _, pp := range plans {
		file, err := g.Generate(pp)
		if err != nil {
			return nil, err
		}

		if file != nil {
			files = append(files, *file)
		}
	}

	return files, nil
}

// Stale returns the output paths of plans that have nothing to generate.
// A path that one of files is written to is never stale.
func (g *Generator) Stale(plans []*plan.PackagePlan, files []GeneratedFile, outputDir string) []string {
	written := make(map[string]bool, len(files))
	for _, f := range files {
		written[f.Target(outputDir)] = true
	}

	var stale []string

	for _, pp := range plans {
		if len(pp.Structs) > 0 {
			continue
		}

		path := GeneratedFile{Filename: g.Filename(pp.Package.Name), Dir: pp.Package.Dir}.Target(outputDir)
		if written[path] || slices.Contains(stale, path) {
			continue
		}

		stale = append(stale, path)
	}

	return stale
}

// Filename returns the output file name for a package.
func (g *Generator) Filename(pkgName string) string {
	if g.config.OutputName != "" {
		return g.config.OutputName
	}

	return strings.ToLower(pkgName) + FileSuffix
}

func packageID(pkg *analyze.PackageInfo) string {
	if pkg.Path != "" {
		return pkg.Path
	}

	return pkg.Name
}

func (g *Generator) buildTemplateData(pp *plan.PackagePlan) templateData {
	data := templateData{
		Header:      analyze.GeneratedHeader,
		PackageName: pp.Package.Name,
		Imports:     sortedImports(pp.Imports()),
	}

	for _, sp := range pp.Structs {
		data.Methods = append(data.Methods, methodData{
			TypeName:     sp.Decl.Name,
			Receiver:     sp.Receiver,
			ReceiverType: sp.Decl.Receiver(),
			MethodName:   sp.MethodName,
			Statements:   sp.Statements(),
		})
	}

	return data
}

func sortedImports(imports []analyze.ImportInfo) []importSpec {
	specs := make([]importSpec, 0, len(imports))
	for _, imp := range imports {
		specs = append(specs, importSpec{
			Name:     imp.Name,
			Path:     imp.Path,
			Explicit: imp.Explicit,
		})
	}

	sort.Slice(specs, func(i, j int) bool {
		if specs[i].Path != specs[j].Path {
			return specs[i].Path < specs[j].Path
		}

		return specs[i].Name < specs[j].Name
	})

	return specs
}
