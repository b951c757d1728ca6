package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"struct-update/internal/analyze"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// ErrTargetCollision is returned when two packages would write the same file.
var ErrTargetCollision = errors.New("generated files collide")

// CheckTargets reports an error when two files resolve to the same output
// path, which happens when one output name and one output directory serve
// several packages.
func CheckTargets(files []GeneratedFile, outputDir string) error {
	owners := make(map[string]string, len(files))

	for _, file := range files {
		path := file.Target(outputDir)
		if owner, ok := owners[path]; ok {
			return fmt.Errorf("%w: packages %s and %s both write %s", ErrTargetCollision, owner, file.Package, path)
		}

		owners[path] = file.Package
	}

	return nil
}

// WriteFiles writes all generated files. Each file goes to outputDir when
// set, to its own package directory otherwise. Nothing is written when two
// files share a target.
func WriteFiles(files []GeneratedFile, outputDir string) error {
	if err := CheckTargets(files, outputDir); err != nil {
		return err
	}

	for _, file := range files {
		outputPath := file.Target(outputDir)

		err := os.MkdirAll(filepath.Dir(outputPath), dirPerm)
		if err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}

		err = os.WriteFile(outputPath, file.Content, filePerm)
		if err != nil {
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}
	}

	return nil
}

// IsGenerated reports whether the file at path was produced by this tool.
// A missing file reports false.
func IsGenerated(path string) (bool, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}

	return bytes.HasPrefix(content, []byte(analyze.GeneratedHeader)), nil
}

// RemoveStale deletes the file at path when it was produced by this tool.
// Hand-written files and missing paths are left alone. It reports whether a
// file was removed.
func RemoveStale(path string) (bool, error) {
	generated, err := IsGenerated(path)
	if err != nil || !generated {
		return false, err
	}

	if err := os.Remove(path); err != nil {
		return false, fmt.Errorf("removing stale %s: %w", path, err)
	}

	return true, nil
}
