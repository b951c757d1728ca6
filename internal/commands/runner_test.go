package commands

import (
	"bytes"
	"context"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"struct-update/internal/analyze"
	"struct-update/internal/diagnostic"
	"struct-update/internal/gen"
)

const counterSrc = `package counter

import "strings"

//structupdate:with ty=int32 func=double
//structupdate:with ty=string func=strings.TrimSpace
type Counter struct {
	Count int32
	Name  string
}

func double(v int32) int32 { return v * 2 }
`

const brokenSrc = `package counter

//structupdate:with ty=string
type Broken struct {
	Name string
}
`

// writeModule lays out a throwaway module and returns its directory.
func writeModule(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	files["go.mod"] = "module example.com/counter\n\ngo 1.24\n"

	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	return dir
}

func newTestRunner(t *testing.T, dir string, cfg *Config) (*Runner, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	if cfg == nil {
		cfg = &Config{}
	}

	var out, errOut bytes.Buffer

	r := NewRunner(cfg, zaptest.NewLogger(t), &out, &errOut)
	r.Dir = dir

	return r, &out, &errOut
}

func TestRunner_Generate(t *testing.T) {
	dir := writeModule(t, map[string]string{"counter.go": counterSrc})
	r, _, errOut := newTestRunner(t, dir, nil)

	require.NoError(t, r.Generate(context.Background(), "."))
	assert.Empty(t, errOut.String())

	content, err := os.ReadFile(filepath.Join(dir, "counter_structupdate.go"))
	require.NoError(t, err)

	code := string(content)
	assert.Contains(t, code, "// Code generated by struct-update; DO NOT EDIT.")
	assert.Contains(t, code, "func (c *Counter) UpdateStruct() {")
	assert.Contains(t, code, "c.Count = double(c.Count)")
	assert.Contains(t, code, "c.Name = strings.TrimSpace(c.Name)")

	_, err = parser.ParseFile(token.NewFileSet(), "", content, 0)
	require.NoError(t, err)
}

func TestRunner_RegenerateIsStable(t *testing.T) {
	dir := writeModule(t, map[string]string{"counter.go": counterSrc})
	r, _, _ := newTestRunner(t, dir, nil)

	require.NoError(t, r.Generate(context.Background(), "."))
	first, err := os.ReadFile(filepath.Join(dir, "counter_structupdate.go"))
	require.NoError(t, err)

	// A stale generated file referring to a missing function must not
	// prevent regeneration.
	stale := string(first) + "\nfunc (c *Counter) stale() { gone(c) }\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "counter_structupdate.go"), []byte(stale), 0o644))

	require.NoError(t, r.Generate(context.Background(), "."))
	second, err := os.ReadFile(filepath.Join(dir, "counter_structupdate.go"))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestRunner_DryRun(t *testing.T) {
	dir := writeModule(t, map[string]string{"counter.go": counterSrc})
	r, out, _ := newTestRunner(t, dir, &Config{DryRun: true})

	require.NoError(t, r.Generate(context.Background(), "."))

	assert.Contains(t, out.String(), "counter_structupdate.go")
	assert.Contains(t, out.String(), "func (c *Counter) UpdateStruct() {")

	_, err := os.Stat(filepath.Join(dir, "counter_structupdate.go"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunner_OutputOverrides(t *testing.T) {
	dir := writeModule(t, map[string]string{"counter.go": counterSrc})
	outDir := filepath.Join(t.TempDir(), "gen")
	r, _, _ := newTestRunner(t, dir, &Config{Output: "update_gen.go", Dir: outDir})

	require.NoError(t, r.Generate(context.Background(), "."))

	_, err := os.Stat(filepath.Join(outDir, "update_gen.go"))
	assert.NoError(t, err)
}

func TestRunner_DiagnosticsWriteNothing(t *testing.T) {
	dir := writeModule(t, map[string]string{
		"counter.go": counterSrc,
		"broken.go":  brokenSrc,
	})
	r, _, errOut := newTestRunner(t, dir, nil)

	err := r.Generate(context.Background(), ".")
	require.ErrorIs(t, err, ErrDiagnostics)

	assert.Contains(t, errOut.String(), "broken.go:3:1")
	assert.Contains(t, errOut.String(), "[missing_key]")
	assert.Contains(t, errOut.String(), "Broken")

	_, statErr := os.Stat(filepath.Join(dir, "counter_structupdate.go"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunner_KeepGoing(t *testing.T) {
	dir := writeModule(t, map[string]string{
		"counter.go": counterSrc,
		"broken.go":  brokenSrc,
	})
	r, _, _ := newTestRunner(t, dir, &Config{KeepGoing: true})

	err := r.Generate(context.Background(), ".")
	require.ErrorIs(t, err, ErrDiagnostics)

	content, err := os.ReadFile(filepath.Join(dir, "counter_structupdate.go"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "func (c *Counter) UpdateStruct()")
	assert.NotContains(t, string(content), "Broken")
}

func TestRunner_FatalWritesNothing(t *testing.T) {
	dir := writeModule(t, map[string]string{
		"counter.go": counterSrc,
		"empty.go": `package counter

//structupdate
type Empty struct {
	Name string
}
`,
	})
	r, _, _ := newTestRunner(t, dir, &Config{KeepGoing: true})

	err := r.Generate(context.Background(), ".")
	require.Error(t, err)
	assert.True(t, diagnostic.IsFatal(err))
	assert.ErrorIs(t, err, diagnostic.ErrEmptyConfiguration)
	assert.Contains(t, err.Error(), "Empty")

	_, statErr := os.Stat(filepath.Join(dir, "counter_structupdate.go"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunner_CloneMethodIsUsed(t *testing.T) {
	dir := writeModule(t, map[string]string{"bag.go": `package counter

import "slices"

type Tags []string

func (t Tags) Clone() Tags { return slices.Clone(t) }

func sortTags(t Tags) Tags {
	slices.Sort(t)
	return t
}

//structupdate:with ty=Tags func=sortTags
type Bag struct {
	Tags Tags
}
`})
	r, out, _ := newTestRunner(t, dir, &Config{DryRun: true})

	require.NoError(t, r.Generate(context.Background(), "."))
	assert.Contains(t, out.String(), "b.Tags = sortTags(b.Tags.Clone())")
}

func TestRunner_NoAnnotationsWritesNothing(t *testing.T) {
	const plainSrc = "package counter\n\ntype Plain struct{ N int }\n"

	// Refers to a function that no longer exists, as a leftover would.
	const generated = analyze.GeneratedHeader + "\n\npackage counter\n\nfunc (p *Plain) UpdateStruct() { p.N = inc(p.N) }\n"

	tests := []struct {
		name     string
		files    map[string]string
		cfg      Config
		wantErr  error
		wantKept bool
		wantOut  string
	}{
		{
			name:  "nothing generated before",
			files: map[string]string{"plain.go": plainSrc},
		},
		{
			name:  "annotations removed",
			files: map[string]string{"plain.go": plainSrc, "counter_structupdate.go": generated},
		},
		{
			name: "every struct failed with keep-going",
			files: map[string]string{
				"plain.go":                plainSrc,
				"broken.go":               brokenSrc,
				"counter_structupdate.go": generated,
			},
			cfg:     Config{KeepGoing: true},
			wantErr: ErrDiagnostics,
		},
		{
			name: "hand-written file with the same name",
			files: map[string]string{
				"plain.go":                plainSrc,
				"counter_structupdate.go": "package counter\n\nfunc helper() {}\n",
			},
			wantKept: true,
		},
		{
			name:     "dry run only reports",
			files:    map[string]string{"plain.go": plainSrc, "counter_structupdate.go": generated},
			cfg:      Config{DryRun: true},
			wantKept: true,
			wantOut:  "// remove ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, existed := tt.files["counter_structupdate.go"]
			dir := writeModule(t, tt.files)
			cfg := tt.cfg
			r, out, _ := newTestRunner(t, dir, &cfg)

			err := r.Generate(context.Background(), ".")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			target := filepath.Join(dir, "counter_structupdate.go")
			if existed && tt.wantKept {
				assert.FileExists(t, target)
			} else {
				assert.NoFileExists(t, target)
			}

			if tt.wantOut != "" {
				assert.Contains(t, out.String(), tt.wantOut+target)
			} else {
				assert.Empty(t, out.String())
			}
		})
	}
}

func TestRunner_SharedOutputNameAcrossPackages(t *testing.T) {
	files := func() map[string]string {
		return map[string]string{
			"a/a.go": "package a\n\n//structupdate:with ty=int func=inc\ntype A struct{ N int }\n\nfunc inc(v int) int { return v + 1 }\n",
			"b/b.go": "package b\n\n//structupdate:with ty=int func=inc\ntype B struct{ N int }\n\nfunc inc(v int) int { return v + 1 }\n",
		}
	}

	t.Run("one name for several packages is rejected", func(t *testing.T) {
		dir := writeModule(t, files())
		outDir := filepath.Join(t.TempDir(), "gen")
		r, _, _ := newTestRunner(t, dir, &Config{Output: "update_gen.go", Dir: outDir})

		err := r.Generate(context.Background(), "./...")
		require.ErrorIs(t, err, gen.ErrTargetCollision)
		assert.Contains(t, err.Error(), "example.com/counter/a")
		assert.Contains(t, err.Error(), "example.com/counter/b")
		assert.NoFileExists(t, filepath.Join(outDir, "update_gen.go"))
	})

	t.Run("per-package names share a directory", func(t *testing.T) {
		dir := writeModule(t, files())
		outDir := filepath.Join(t.TempDir(), "gen")
		r, _, _ := newTestRunner(t, dir, &Config{Dir: outDir})

		require.NoError(t, r.Generate(context.Background(), "./..."))
		assert.FileExists(t, filepath.Join(outDir, "a_structupdate.go"))
		assert.FileExists(t, filepath.Join(outDir, "b_structupdate.go"))
	})

	t.Run("one name in each package directory", func(t *testing.T) {
		dir := writeModule(t, files())
		r, _, _ := newTestRunner(t, dir, &Config{Output: "update_gen.go"})

		require.NoError(t, r.Generate(context.Background(), "./..."))
		assert.FileExists(t, filepath.Join(dir, "a", "update_gen.go"))
		assert.FileExists(t, filepath.Join(dir, "b", "update_gen.go"))
	})
}

func TestRunner_Inspect(t *testing.T) {
	dir := writeModule(t, map[string]string{
		"counter.go": counterSrc,
		"broken.go":  brokenSrc,
	})
	r, out, _ := newTestRunner(t, dir, nil)

	require.NoError(t, r.Inspect(context.Background(), "."))

	report := out.String()
	assert.Contains(t, report, "package: example.com/counter")
	assert.Contains(t, report, "type: Counter")
	assert.Contains(t, report, "method: UpdateStruct")
	assert.Contains(t, report, "c.Count = double(c.Count)")
	assert.Contains(t, report, "- Broken")
}

func TestRunner_LoadError(t *testing.T) {
	dir := writeModule(t, map[string]string{"counter.go": "package counter\n\nfunc {\n"})
	r, _, _ := newTestRunner(t, dir, nil)

	err := r.Generate(context.Background(), ".")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDiagnostics)
}
