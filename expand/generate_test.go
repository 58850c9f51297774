package expand_test

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagikazarmark/flowx/expand"
)

func TestFindSources(t *testing.T) {
	fsys := fstest.MapFS{
		"main.gox":              &fstest.MapFile{},
		"main.go":               &fstest.MapFile{},
		"pkg/util.GOX":          &fstest.MapFile{},
		"pkg/deep/more.gox":     &fstest.MapFile{},
		"pkg/notes.txt":         &fstest.MapFile{},
		".git/hook.gox":         &fstest.MapFile{},
		"_examples/skip.gox":    &fstest.MapFile{},
		"testdata/fixture.gox":  &fstest.MapFile{},
		"vendor/dep/vendor.gox": &fstest.MapFile{},
	}

	t.Run("Default", func(t *testing.T) {
		sources, err := expand.FindSources(fsys, nil)
		require.NoError(t, err)

		assert.Equal(t, []string{"main.gox", "pkg/deep/more.gox", "pkg/util.GOX"}, sources)
	})

	t.Run("Extensions", func(t *testing.T) {
		sources, err := expand.FindSources(fsys, []string{".txt"})
		require.NoError(t, err)

		assert.Equal(t, []string{"pkg/notes.txt"}, sources)
	})
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "main.go", expand.OutputPath("main.gox"))
	assert.Equal(t, "pkg/deep/more.go", expand.OutputPath("pkg/deep/more.gox"))
	assert.Equal(t, "noext.go", expand.OutputPath("noext"))
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))

		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

func openRoot(t *testing.T, dir string) *os.Root {
	t.Helper()

	root, err := os.OpenRoot(dir)
	require.NoError(t, err)

	t.Cleanup(func() { root.Close() })

	return root
}

func TestGenerate(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()

	writeFiles(t, srcDir, map[string]string{
		"main.gox":          "package main\n\nfunc main() {\n\trepeat!(2 => println())\n}\n",
		"pkg/deep/util.gox": "package deep\n\nvar V = or_default!(p, 1)\n",
		"pkg/broken.gox":    "package pkg\n\nfunc f() {\n\tselect!(x => { case 1 => g() })\n}\n",
		"README.md":         "# readme\n",
	})

	e := newExpander(t, expand.Options{})

	var written []string

	err := expand.Generate(expand.GenerateOpts{
		Root:     openRoot(t, srcDir),
		Output:   openRoot(t, outDir),
		Expander: e,
		Written:  func(path string) { written = append(written, path) },
	})
	require.Error(t, err)

	assert.ErrorIs(t, err, expand.ErrMissingDefault)
	assert.ErrorContains(t, err, "expand pkg/broken.gox")
	assert.Equal(t, []string{"main.go", "pkg/deep/util.go"}, written)

	main, err := os.ReadFile(filepath.Join(outDir, "main.go"))
	require.NoError(t, err)

	assertSource(t, header+"package main\n\nfunc main() {\n\tfor range 2 {\n\t\tprintln()\n\t}\n}\n", main)

	util, err := os.ReadFile(filepath.Join(outDir, "pkg", "deep", "util.go"))
	require.NoError(t, err)

	assert.Contains(t, string(util), `import "github.com/samber/lo"`)
	assert.Contains(t, string(util), "var V = lo.FromPtrOr(p, 1)")

	assert.NoFileExists(t, filepath.Join(outDir, "pkg", "broken.go"))
	assert.NoFileExists(t, filepath.Join(outDir, "README.go"))
}

func TestGenerate_InPlace(t *testing.T) {
	dir := t.TempDir()

	writeFiles(t, dir, map[string]string{
		"main.gox": "package main\n\nfunc main() {\n\tdefer!(println(\"done\"))\n}\n",
	})

	root := openRoot(t, dir)

	err := expand.Generate(expand.GenerateOpts{
		Root:     root,
		Output:   root,
		Expander: newExpander(t, expand.Options{}),
	})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "main.gox"))

	main, err := os.ReadFile(filepath.Join(dir, "main.go"))
	require.NoError(t, err)

	assert.Contains(t, string(main), "defer func() {")
}
