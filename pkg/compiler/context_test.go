package compiler

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ashn-dot-dev/sunder/pkg/diag"
	"github.com/ashn-dot-dev/sunder/pkg/types"
	"github.com/ashn-dot-dev/sunder/pkg/util/assert"
)

func writeModule(t *testing.T, dir, name, src string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	assert.True(t, os.WriteFile(path, []byte(src), 0o644) == nil, "failed to write %s", path)

	return path
}

func newTestContext() (*Context, *diag.Emitter) {
	emit := diag.New(&bytes.Buffer{})
	emit.SetExitOnFatal(false)

	return NewContext(Config{Target: types.AMD64}, emit), emit
}

func TestCompilePathLoadsTransitiveImport(t *testing.T) {
	dir := t.TempDir()

	writeModule(t, dir, "util.sunder", `
		func double(x: s32) s32 {
			return x + x;
		}
	`)
	main := writeModule(t, dir, "main.sunder", `
		import "util.sunder";

		func run() s32 {
			return double(21);
		}
	`)

	ctx, _ := newTestContext()

	mod, err := ctx.CompilePath(main)
	assert.True(t, err == nil, "unexpected error: %v", err)
	assert.True(t, ctx.Succeeded(), "expected a clean compile")
	assert.Equal(t, 2, len(ctx.Modules))
	assert.True(t, mod != nil, "expected the entry module back")
}

func TestCompilePathMemoizesDiamondImport(t *testing.T) {
	dir := t.TempDir()

	writeModule(t, dir, "leaf.sunder", `let leaf: s32 = 1;`)
	writeModule(t, dir, "left.sunder", `import "leaf.sunder";`)
	writeModule(t, dir, "right.sunder", `import "leaf.sunder";`)
	main := writeModule(t, dir, "main.sunder", `
		import "left.sunder";
		import "right.sunder";
	`)

	ctx, _ := newTestContext()

	_, err := ctx.CompilePath(main)
	assert.True(t, err == nil, "unexpected error: %v", err)
	// leaf, left, right, main -- leaf compiled exactly once despite two
	// importers.
	assert.Equal(t, 4, len(ctx.Modules))
}

func TestCompilePathDetectsImportCycle(t *testing.T) {
	dir := t.TempDir()

	writeModule(t, dir, "a.sunder", `import "b.sunder";`)
	b := writeModule(t, dir, "b.sunder", `import "a.sunder";`)

	ctx, _ := newTestContext()

	_, err := ctx.CompilePath(b)
	assert.True(t, err != nil, "expected an import-cycle error")
}

func TestNamespaceSharedAcrossModules(t *testing.T) {
	dir := t.TempDir()

	writeModule(t, dir, "one.sunder", `
		namespace app::models;
		struct One { var x: s32; }
	`)
	main := writeModule(t, dir, "two.sunder", `
		namespace app::models;
		struct Two { var y: s32; }
	`)

	ctx, _ := newTestContext()

	mods, err := ctx.CompilePath(filepath.Join(dir, "one.sunder"))
	assert.True(t, err == nil, "unexpected error: %v", err)
	assert.True(t, mods != nil, "expected a module back")

	_, err = ctx.CompilePath(main)
	assert.True(t, err == nil, "unexpected error: %v", err)
	assert.True(t, ctx.Succeeded(), "expected a clean compile")

	ns := ctx.namespaceScope([]string{"app", "models"})
	one := ctx.Intern.InternString("One")
	two := ctx.Intern.InternString("Two")

	_, oneOK := ns.LookupLocal(one)
	_, twoOK := ns.LookupLocal(two)
	assert.True(t, oneOK, "expected One to be installed into the shared app::models namespace")
	assert.True(t, twoOK, "expected Two to be installed into the shared app::models namespace")
}

func TestArchFromEnvPrefersFlagOverEnv(t *testing.T) {
	t.Setenv("SUNDER_ARCH", "wasm32")

	assert.Equal(t, types.ARM64, ArchFromEnv("arm64"))
}

func TestArchFromEnvFallsBackToEnv(t *testing.T) {
	t.Setenv("SUNDER_ARCH", "wasm32")

	assert.Equal(t, types.WASM32, ArchFromEnv(""))
}

func TestArchFromEnvDefaultsToAmd64(t *testing.T) {
	t.Setenv("SUNDER_ARCH", "")

	assert.Equal(t, types.AMD64, ArchFromEnv(""))
}
