package gen

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"struct-update/internal/analyze"
	"struct-update/internal/plan"
)

func resolve(t *testing.T, src string) *plan.PackagePlan {
	t.Helper()

	pkg, err := analyze.NewAnalyzer("").ParseFile(filepath.Join(t.TempDir(), "counter.go"), src)
	require.NoError(t, err)

	pp, err := plan.Resolve(pkg)
	require.NoError(t, err)
	require.True(t, pp.OK(), pp.Diagnostics.Error())

	return pp
}

func TestGenerate_Method(t *testing.T) {
	pp := resolve(t, `package counter

import "strings"

//structupdate:with ty=int32 func=double
//structupdate:with ty=string func=strings.TrimSpace
type Counter struct {
	Count int32
	Name  string
}

func double(v int32) int32 { return v * 2 }
`)

	file, err := NewGenerator(DefaultGeneratorConfig()).Generate(pp)
	require.NoError(t, err)
	require.NotNil(t, file)

	assert.Equal(t, "counter_structupdate.go", file.Filename)
	assert.Equal(t, pp.Package.Dir, file.Dir)

	code := string(file.Content)
	assert.Contains(t, code, analyze.GeneratedHeader+"\n\npackage counter\n")
	assert.Contains(t, code, `"strings"`)
	assert.Contains(t, code, "func (c *Counter) UpdateStruct() {\n\tc.Count = double(c.Count)\n\tc.Name = strings.TrimSpace(c.Name)\n}")

	_, err = parser.ParseFile(token.NewFileSet(), file.Filename, file.Content, parser.ParseComments)
	require.NoError(t, err, "generated code must parse")
}

func TestGenerate_ImportsSortedWithAliases(t *testing.T) {
	pp := resolve(t, `package counter

import (
	"time"
	str "strings"

	"example.com/units"
)

//structupdate:with ty=string func=str.ToUpper
//structupdate:with ty=Duration func=units.Round
type Timer struct {
	Label   string
	Timeout time.Duration
}
`)

	file, err := NewGenerator(DefaultGeneratorConfig()).Generate(pp)
	require.NoError(t, err)

	code := string(file.Content)
	assert.Contains(t, code, "import (\n\t\"example.com/units\"\n\tstr \"strings\"\n)")
	assert.NotContains(t, code, `"time"`)
}

func TestGenerate_TypeArgumentImports(t *testing.T) {
	pp := resolve(t, `package counter

import (
	"time"

	"example.com/conv"
)

//structupdate:with ty=Duration func="conv.Clamp[time.Duration]"
type Timer struct {
	Timeout time.Duration
}
`)

	file, err := NewGenerator(DefaultGeneratorConfig()).Generate(pp)
	require.NoError(t, err)

	code := string(file.Content)
	assert.Contains(t, code, "import (\n\t\"example.com/conv\"\n\t\"time\"\n)")
	assert.Contains(t, code, "t.Timeout = conv.Clamp[time.Duration](t.Timeout)")
}

func TestGenerate_GenericAndUnexported(t *testing.T) {
	pp := resolve(t, `package counter

//structupdate:with ty=int func=inc
type pair[K comparable, V any] struct {
	Key   K
	Count int
}
`)

	file, err := NewGenerator(DefaultGeneratorConfig()).Generate(pp)
	require.NoError(t, err)

	code := string(file.Content)
	assert.Contains(t, code, "func (p *pair[K, V]) updateStruct() {\n\tp.Count = inc(p.Count)\n}")
	assert.NotContains(t, code, "import")
}

func TestGenerate_EmptyBody(t *testing.T) {
	pp := resolve(t, `package counter

//structupdate:with ty=bool func=negate
type Counter struct {
	Count int32
}
`)

	file, err := NewGenerator(DefaultGeneratorConfig()).Generate(pp)
	require.NoError(t, err)

	_, err = parser.ParseFile(token.NewFileSet(), "", file.Content, 0)
	require.NoError(t, err)
	assert.Contains(t, string(file.Content), "func (c *Counter) UpdateStruct() {")
	assert.NotContains(t, string(file.Content), "negate")
}

func TestGenerate_NothingToGenerate(t *testing.T) {
	pp := resolve(t, `package counter

type Counter struct {
	Count int32
}
`)

	file, err := NewGenerator(DefaultGeneratorConfig()).Generate(pp)
	require.NoError(t, err)
	assert.Nil(t, file)
}

func TestGenerate_OutputName(t *testing.T) {
	pp := resolve(t, `package counter

//structupdate:with ty=int32 func=double
type Counter struct{ Count int32 }
`)

	file, err := NewGenerator(GeneratorConfig{OutputName: "zz_update.go"}).Generate(pp)
	require.NoError(t, err)
	assert.Equal(t, "zz_update.go", file.Filename)
}

func TestGenerate_Deterministic(t *testing.T) {
	src := `package counter

import (
	"strings"
	"time"

	"example.com/units"
)

//structupdate:with ty=string func=strings.TrimSpace
type A struct{ S string }

//structupdate:with ty=Duration func=units.Abs
type B struct{ D time.Duration }
`

	g := NewGenerator(DefaultGeneratorConfig())

	first, err := g.Generate(resolve(t, src))
	require.NoError(t, err)

	for range 5 {
		again, err := g.Generate(resolve(t, src))
		require.NoError(t, err)
		assert.Equal(t, string(first.Content), string(again.Content))
	}
}

func TestGenerate_FormatFailureWritesDebugFile(t *testing.T) {
	dir := t.TempDir()

	pp := &plan.PackagePlan{
		Package: &analyze.PackageInfo{Name: "counter", Dir: dir},
		Structs: []*plan.StructPlan{{
			Decl:       &analyze.StructDecl{Name: "Counter"},
			Receiver:   "c",
			MethodName: plan.MethodName,
			Updates:    []plan.Update{{Field: "Count", Func: "double("}},
		}},
	}

	file, err := NewGenerator(DefaultGeneratorConfig()).Generate(pp)
	require.Error(t, err)
	assert.Nil(t, file)

	debugPath := filepath.Join(dir, "counter_structupdate.unformatted.go")
	assert.Contains(t, err.Error(), debugPath)

	raw, err := os.ReadFile(debugPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "c.Count = double((c.Count)")

	// Without any directory the source is not kept and the error says nothing about it.
	pp.Package.Dir = ""

	_, err = NewGenerator(DefaultGeneratorConfig()).Generate(pp)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "unformatted")
}

func TestWriteFiles(t *testing.T) {
	pkgDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "nested")

	files := []GeneratedFile{{Package: "a", Filename: "a_structupdate.go", Dir: pkgDir, Content: []byte("package a\n")}}

	require.NoError(t, WriteFiles(files, ""))
	got, err := os.ReadFile(filepath.Join(pkgDir, "a_structupdate.go"))
	require.NoError(t, err)
	assert.Equal(t, "package a\n", string(got))

	require.NoError(t, WriteFiles(files, outDir))
	_, err = os.Stat(filepath.Join(outDir, "a_structupdate.go"))
	assert.NoError(t, err)
}

func TestWriteFiles_TargetCollision(t *testing.T) {
	outDir := t.TempDir()

	files := []GeneratedFile{
		{Package: "example.com/m/a", Filename: "update_gen.go", Dir: t.TempDir(), Content: []byte("package a\n")},
		{Package: "example.com/m/b", Filename: "update_gen.go", Dir: t.TempDir(), Content: []byte("package b\n")},
	}

	// Each package directory is distinct, so only a shared output dir collides.
	require.NoError(t, CheckTargets(files, ""))

	err := WriteFiles(files, outDir)
	require.ErrorIs(t, err, ErrTargetCollision)
	assert.Contains(t, err.Error(), "example.com/m/a")
	assert.Contains(t, err.Error(), "example.com/m/b")

	_, err = os.Stat(filepath.Join(outDir, "update_gen.go"))
	assert.ErrorIs(t, err, os.ErrNotExist, "nothing is written on collision")
}

func TestStale(t *testing.T) {
	dir := t.TempDir()
	other := t.TempDir()

	plans := []*plan.PackagePlan{
		{Package: &analyze.PackageInfo{Name: "a", Dir: dir}, Structs: []*plan.StructPlan{{}}},
		{Package: &analyze.PackageInfo{Name: "b", Dir: dir}},
		{Package: &analyze.PackageInfo{Name: "c", Dir: other}},
	}
	files := []GeneratedFile{{Package: "a", Filename: "a_structupdate.go", Dir: dir}}

	g := NewGenerator(DefaultGeneratorConfig())
	assert.Equal(t, []string{
		filepath.Join(dir, "b_structupdate.go"),
		filepath.Join(other, "c_structupdate.go"),
	}, g.Stale(plans, files, ""))

	// One shared name: the written file is never reported stale.
	g = NewGenerator(GeneratorConfig{OutputName: "update_gen.go"})
	files[0].Filename = "update_gen.go"
	assert.Equal(t, []string{filepath.Join(other, "update_gen.go")}, g.Stale(plans, files, ""))
	assert.Empty(t, g.Stale(plans, files, dir))
}

func TestRemoveStale(t *testing.T) {
	dir := t.TempDir()

	generated := filepath.Join(dir, "a_structupdate.go")
	require.NoError(t, os.WriteFile(generated, []byte(analyze.GeneratedHeader+"\n\npackage a\n"), 0o644))

	handWritten := filepath.Join(dir, "b_structupdate.go")
	require.NoError(t, os.WriteFile(handWritten, []byte("package b\n"), 0o644))

	removed, err := RemoveStale(generated)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.NoFileExists(t, generated)

	removed, err = RemoveStale(handWritten)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.FileExists(t, handWritten)

	removed, err = RemoveStale(filepath.Join(dir, "missing_structupdate.go"))
	require.NoError(t, err)
	assert.False(t, removed)
}
