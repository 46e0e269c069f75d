package xdgtheme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIconLookupFindIcon(t *testing.T) {
	root := t.TempDir()
	writeTheme(t, root, "mytheme", fixedIndex("My Theme", "16x16/actions", "48x48/actions"))
	writeTheme(t, root, "hicolor", fixedIndex("Hicolor", "48x48/actions"))
	writeIcon(t, root, "mytheme", "16x16/actions", "folder", "png")
	best := writeIcon(t, root, "mytheme", "48x48/actions", "folder", "png")
	inherited := writeIcon(t, root, "hicolor", "48x48/actions", "document", "png")

	il := NewIconLookup("mytheme", WithSearchDirs([]string{root}))
	assert.Equal(t, "mytheme", il.Theme())

	res, err := il.FindIcon("folder", 48)
	require.NoError(t, err)
	assert.Equal(t, best, res.Path)

	// falls through to hicolor via the implicit fallback
	res, err = il.FindIcon("document", 48)
	require.NoError(t, err)
	assert.Equal(t, inherited, res.Path)

	_, err = il.FindIcon("nonexistent", 48)
	require.Error(t, err)
}

func TestIconLookupFindLargestIcon(t *testing.T) {
	root := t.TempDir()
	writeTheme(t, root, "mytheme", fixedIndex("My Theme", "16x16/actions", "48x48/actions"))
	writeIcon(t, root, "mytheme", "16x16/actions", "folder", "png")
	big := writeIcon(t, root, "mytheme", "48x48/actions", "folder", "png")

	il := NewIconLookup("mytheme", WithSearchDirs([]string{root}))
	res, err := il.FindLargestIcon("folder")
	require.NoError(t, err)
	assert.Equal(t, big, res.Path)
}

func TestIconLookupFindBestIcon(t *testing.T) {
	root := t.TempDir()
	writeTheme(t, root, "mytheme", fixedIndex("My Theme", "16x16/actions"))
	hit := writeIcon(t, root, "mytheme", "16x16/actions", "second-choice", "png")

	il := NewIconLookup("mytheme", WithSearchDirs([]string{root}))

	res, err := il.FindBestIcon([]string{"first-choice", "second-choice"}, 16)
	require.NoError(t, err)
	assert.Equal(t, hit, res.Path)

	_, err = il.FindBestIcon([]string{"nope", "also-nope"}, 16)
	require.Error(t, err)
}

func TestIconLookupThemesChainCached(t *testing.T) {
	root := t.TempDir()
	writeTheme(t, root, "mytheme", minimalIndex("My Theme", ""))
	writeTheme(t, root, "hicolor", minimalIndex("Hicolor", ""))

	il := NewIconLookup("mytheme", WithSearchDirs([]string{root}))
	chain := il.Themes()
	assert.Equal(t, []string{"mytheme", "hicolor"}, internalNames(chain))

	// same slice back until Refresh
	again := il.Themes()
	assert.Equal(t, len(chain), len(again))
	assert.Same(t, chain[0], again[0])

	il.Refresh()
	refreshed := il.Themes()
	assert.Equal(t, []string{"mytheme", "hicolor"}, internalNames(refreshed))
	assert.NotSame(t, chain[0], refreshed[0])
}

func TestIconLookupExtensionsOption(t *testing.T) {
	root := t.TempDir()
	writeTheme(t, root, "mytheme", fixedIndex("My Theme", "16x16/actions"))
	svg := writeIcon(t, root, "mytheme", "16x16/actions", "folder", "svg")
	writeIcon(t, root, "mytheme", "16x16/actions", "folder", "png")

	il := NewIconLookup("mytheme",
		WithSearchDirs([]string{root}),
		WithExtensions([]string{"svg"}))

	res, err := il.FindIcon("folder", 16)
	require.NoError(t, err)
	assert.Equal(t, svg, res.Path)
}
