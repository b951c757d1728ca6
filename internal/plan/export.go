package plan

import (
	"gopkg.in/yaml.v3"

	"struct-update/internal/mapping"
)

// Report is the inspectable form of a package plan.
type Report struct {
	Package     string         `yaml:"package"`
	Dir         string         `yaml:"dir,omitempty"`
	Structs     []StructReport `yaml:"structs,omitempty"`
	Failed      []string       `yaml:"failed,omitempty"`
	Diagnostics []string       `yaml:"diagnostics,omitempty"`
}

// StructReport describes one planned method.
type StructReport struct {
	Type       string          `yaml:"type"`
	Method     string          `yaml:"method"`
	Entries    []mapping.Entry `yaml:"entries"`
	Statements []string        `yaml:"statements"`
}

// Export converts a package plan into its report.
func Export(pp *PackagePlan) Report {
	r := Report{
		Package: pp.Package.Name,
		Dir:     pp.Package.Dir,
		Failed:  pp.Failed,
	}

	if pp.Package.Path != "" {
		r.Package = pp.Package.Path
	}

	for _, sp := range pp.Structs {
		r.Structs = append(r.Structs, StructReport{
			Type:       sp.Decl.Receiver(),
			Method:     sp.MethodName,
			Entries:    sp.Config.Entries,
			Statements: sp.Statements(),
		})
	}

	for _, d := range pp.Diagnostics.All() {
		r.Diagnostics = append(r.Diagnostics, d.String())
	}

	return r
}

// ExportYAML renders the reports of several package plans as YAML.
func ExportYAML(plans []*PackagePlan) ([]byte, error) {
	reports := make([]Report, 0, len(plans))
	for _, pp := range plans {
		reports = append(reports, Export(pp))
	}

	return yaml.Marshal(reports)
}
