package gen

import (
	"os"
	"path/filepath"
	"strings"

	"struct-update/internal/plan"
)

// unformattedName is the name under which rejected output of filename is kept.
func unformattedName(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename)) + ".unformatted.go"
}

// saveUnformatted keeps the raw template output of a package whose generated
// code does not parse, so the failure can be inspected. It returns the path
// written, or "" when nothing could be saved.
func (g *Generator) saveUnformatted(pp *plan.PackagePlan, filename string, src []byte) string {
	dir := g.config.DebugDir
	if dir == "" {
		dir = pp.Package.Dir
	}

	if dir == "" {
		return ""
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return ""
	}

	path := filepath.Join(dir, unformattedName(filename))
	if err := os.WriteFile(path, src, filePerm); err != nil {
		return ""
	}

	return path
}
