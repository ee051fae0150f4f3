package icon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, parts ...string) string {
	t.Helper()
	p := filepath.Join(parts...)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	return p
}

func TestResolve_FilePath(t *testing.T) {
	dir := t.TempDir()
	p := touch(t, dir, "mines.png")

	ic := NewResolver(nil).Resolve(p)
	assert.True(t, ic.IsFile())
	assert.Equal(t, p, ic.Path)
	assert.Equal(t, "mines", ic.Name())
}

func TestResolve_ThemePrefersDialogSize(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "icons", "hicolor", "scalable", "apps", "mines.svg")
	want := touch(t, dir, "icons", "hicolor", "48x48", "apps", "mines.png")
	touch(t, dir, "icons", "hicolor", "16x16", "apps", "mines.png")

	ic := NewResolver([]string{dir}).Resolve("mines")
	assert.Equal(t, want, ic.Path)
	assert.Equal(t, "mines", ic.Ref)
}

func TestResolve_HicolorBeatsOtherThemes(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "icons", "Adwaita", "48x48", "apps", "net.png")
	want := touch(t, dir, "icons", "hicolor", "256x256", "apps", "net.png")

	ic := NewResolver([]string{dir}).Resolve("net")
	assert.Equal(t, want, ic.Path)
}

func TestResolve_Pixmaps(t *testing.T) {
	dir := t.TempDir()
	want := touch(t, dir, "pixmaps", "cube.xpm")

	ic := NewResolver([]string{dir}).Resolve("cube")
	assert.Equal(t, want, ic.Path)
}

func TestResolve_Symbolic(t *testing.T) {
	ic := NewResolver([]string{t.TempDir()}).Resolve("sgt-launcher")
	assert.False(t, ic.IsFile())
	assert.Equal(t, "sgt-launcher", ic.Name())
}

func TestResolve_GlobMetaIsNotExpanded(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "icons", "hicolor", "48x48", "apps", "mines.png")

	ic := NewResolver([]string{dir}).Resolve("*")
	assert.False(t, ic.IsFile())
}
