package xdgtheme

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func minimalIndex(name, inherits string) string {
	s := fmt.Sprintf("[Icon Theme]\nName=%s\nDirectories=16x16/actions\n", name)
	if inherits != "" {
		s += "Inherits=" + inherits + "\n"
	}
	s += "\n[16x16/actions]\nSize=16\n"
	return s
}

// touchFuture pushes a file's mtime past its directory's so the cache
// staleness check reads "current".
func touchFuture(t *testing.T, path string) {
	t.Helper()
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, future, future))
}

func internalNames(themes []*Theme) []string {
	out := make([]string, len(themes))
	for i, th := range themes {
		out[i] = th.InternalName
	}
	return out
}

func TestResolverLoadThemeFirstHitWins(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	writeTheme(t, dirA, "shared", minimalIndex("From A", ""))
	writeTheme(t, dirB, "shared", minimalIndex("From B", ""))

	r := NewResolver([]string{dirA, dirB})
	th, err := r.LoadTheme("shared")
	require.NoError(t, err)
	assert.Equal(t, "From A", th.Name)

	r = NewResolver([]string{dirB, dirA})
	th, err = r.LoadTheme("shared")
	require.NoError(t, err)
	assert.Equal(t, "From B", th.Name)
}

func TestResolverLoadThemeNotFound(t *testing.T) {
	r := NewResolver([]string{t.TempDir()})
	_, err := r.LoadTheme("missing")
	require.Error(t, err)
}

func TestResolveChainOrder(t *testing.T) {
	root := t.TempDir()
	writeTheme(t, root, "child", minimalIndex("Child", "parent,side"))
	writeTheme(t, root, "parent", minimalIndex("Parent", "grandparent"))
	writeTheme(t, root, "grandparent", minimalIndex("Grandparent", ""))
	writeTheme(t, root, "side", minimalIndex("Side", ""))
	writeTheme(t, root, "hicolor", minimalIndex("Hicolor", ""))

	r := NewResolver([]string{root})
	th, err := r.LoadTheme("child")
	require.NoError(t, err)

	chain := r.Resolve(th)
	assert.Equal(t,
		[]string{"child", "parent", "grandparent", "side", "hicolor"},
		internalNames(chain))
}

func TestResolveDirectCycleTerminates(t *testing.T) {
	root := t.TempDir()
	writeTheme(t, root, "loop", minimalIndex("Loop", "loop"))

	r := NewResolver([]string{root})
	r.Fallback = ""
	th, err := r.LoadTheme("loop")
	require.NoError(t, err)

	chain := r.Resolve(th)
	assert.Equal(t, []string{"loop"}, internalNames(chain))
}

func TestResolveMutualCycleTerminates(t *testing.T) {
	root := t.TempDir()
	writeTheme(t, root, "a", minimalIndex("A", "b"))
	writeTheme(t, root, "b", minimalIndex("B", "a"))

	r := NewResolver([]string{root})
	r.Fallback = ""
	th, err := r.LoadTheme("a")
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, internalNames(r.Resolve(th)))
}

func TestResolveDiamondDeduplicated(t *testing.T) {
	root := t.TempDir()
	writeTheme(t, root, "top", minimalIndex("Top", "left,right"))
	writeTheme(t, root, "left", minimalIndex("Left", "base"))
	writeTheme(t, root, "right", minimalIndex("Right", "base"))
	writeTheme(t, root, "base", minimalIndex("Base", ""))

	r := NewResolver([]string{root})
	r.Fallback = ""
	th, err := r.LoadTheme("top")
	require.NoError(t, err)

	assert.Equal(t, []string{"top", "left", "base", "right"}, internalNames(r.Resolve(th)))
}

func TestResolveSkipsUnloadableParents(t *testing.T) {
	root := t.TempDir()
	writeTheme(t, root, "child", minimalIndex("Child", "ghost,broken,parent"))
	writeTheme(t, root, "parent", minimalIndex("Parent", ""))
	writeTheme(t, root, "broken", "[Wrong Group]\nName=Broken\n")

	r := NewResolver([]string{root})
	r.Fallback = ""
	th, err := r.LoadTheme("child")
	require.NoError(t, err)

	assert.Equal(t, []string{"child", "parent"}, internalNames(r.Resolve(th)))
}

func TestResolveAppendsFallback(t *testing.T) {
	root := t.TempDir()
	writeTheme(t, root, "solo", minimalIndex("Solo", ""))
	writeTheme(t, root, "hicolor", minimalIndex("Hicolor", ""))

	r := NewResolver([]string{root})
	th, err := r.LoadTheme("solo")
	require.NoError(t, err)

	assert.Equal(t, []string{"solo", "hicolor"}, internalNames(r.Resolve(th)))
}

func TestResolveFallbackAlreadyInChain(t *testing.T) {
	root := t.TempDir()
	writeTheme(t, root, "solo", minimalIndex("Solo", "hicolor"))
	writeTheme(t, root, "hicolor", minimalIndex("Hicolor", ""))

	r := NewResolver([]string{root})
	th, err := r.LoadTheme("solo")
	require.NoError(t, err)

	assert.Equal(t, []string{"solo", "hicolor"}, internalNames(r.Resolve(th)))
}

func TestResolveMissingFallbackTolerated(t *testing.T) {
	root := t.TempDir()
	writeTheme(t, root, "solo", minimalIndex("Solo", ""))

	r := NewResolver([]string{root})
	th, err := r.LoadTheme("solo")
	require.NoError(t, err)

	assert.Equal(t, []string{"solo"}, internalNames(r.Resolve(th)))
}

func TestResolveNameDegradesToFallback(t *testing.T) {
	root := t.TempDir()
	writeTheme(t, root, "hicolor", minimalIndex("Hicolor", ""))

	r := NewResolver([]string{root})
	assert.Equal(t, []string{"hicolor"}, internalNames(r.ResolveName("missing")))
}

func TestResolverAttachesCurrentCache(t *testing.T) {
	root := t.TempDir()
	writeTheme(t, root, "cached", minimalIndex("Cached", ""))

	dirs, icons := testIcons()
	buf, _ := buildCache(t, 4, dirs, icons)
	cachePath := filepath.Join(root, "cached", CacheFileName)
	require.NoError(t, os.WriteFile(cachePath, buf, 0o644))
	// make sure the cache is not older than its directory
	touchFuture(t, cachePath)

	r := NewResolver([]string{root})
	r.Fallback = ""
	th, err := r.LoadTheme("cached")
	require.NoError(t, err)
	require.NotNil(t, th.Cache())
	assert.True(t, th.Cache().ContainsIcon("folder"))
}

func TestResolverIgnoresCorruptCache(t *testing.T) {
	root := t.TempDir()
	writeTheme(t, root, "cached", minimalIndex("Cached", ""))
	cachePath := filepath.Join(root, "cached", CacheFileName)
	require.NoError(t, os.WriteFile(cachePath, []byte("garbage"), 0o644))
	touchFuture(t, cachePath)

	r := NewResolver([]string{root})
	r.Fallback = ""
	th, err := r.LoadTheme("cached")
	require.NoError(t, err)
	assert.Nil(t, th.Cache())
}
