package renderer

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingIcon(t *testing.T) {
	for _, size := range []int{16, 48, 256} {
		img := MissingIcon(size, color.Black)
		assert.Equal(t, image.Rect(0, 0, size, size), img.Bounds())
	}
}

func TestResize(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	dst := Resize(src, 48)
	assert.Equal(t, image.Rect(0, 0, 48, 48), dst.Bounds())
}

func TestRenderFilePNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "icon.png")

	src := image.NewRGBA(image.Rect(0, 0, 16, 16))
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, src))
	require.NoError(t, f.Close())

	img, err := RenderFile(path, 32)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 32, 32), img.Bounds())

	// same-size files pass through without resampling
	img, err = RenderFile(path, 16)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 16), img.Bounds())
}

func TestRenderFileSVG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "icon.svg")
	svg := `<svg xmlns="http://www.w3.org/2000/svg" width="16" height="16" viewBox="0 0 16 16"><rect x="2" y="2" width="12" height="12" fill="#bebebe"/></svg>`
	require.NoError(t, os.WriteFile(path, []byte(svg), 0o644))

	img, err := RenderFile(path, 48)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 48, 48), img.Bounds())

	img, err = RenderSymbolic(path, 24, color.White)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 24, 24), img.Bounds())
}

func TestRenderFileUnsupported(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "icon.gif")
	require.NoError(t, os.WriteFile(path, []byte{}, 0o644))

	_, err := RenderFile(path, 16)
	require.Error(t, err)
}

func TestSavePNG(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.png")
	require.NoError(t, SavePNG(MissingIcon(16, color.Black), out))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 16), img.Bounds())
}
