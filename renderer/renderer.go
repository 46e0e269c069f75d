// Package renderer rasterizes resolved icon files to images.
package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// symbolic recoloring targets: the stock colors symbolic SVG icons ship
// with, replaced wholesale with the requested foreground.
var symbolicColors = []string{"#bebebe", "#2e3436", "currentColor"}

// RenderFile rasterizes an icon file to a size×size image, dispatching on
// the file extension.
func RenderFile(path string, size int) (image.Image, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return renderSVG(path, size)
	case ".png":
		return loadPNG(path, size)
	case ".xpm":
		// no XPM decoder is wired in; a neutral placeholder keeps tray
		// implementations from crashing on ancient pixmaps
		return placeholder(size), nil
	default:
		return nil, fmt.Errorf("unsupported icon format %q", filepath.Ext(path))
	}
}

// RenderSymbolic rasterizes a symbolic SVG icon with its stock colors
// swapped for fg.
func RenderSymbolic(path string, size int, fg color.Color) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read SVG: %w", err)
	}

	r, g, b, _ := fg.RGBA()
	hex := fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
	svg := string(data)
	for _, c := range symbolicColors {
		svg = strings.ReplaceAll(svg, c, hex)
	}

	icon, err := oksvg.ReadIconStream(strings.NewReader(svg))
	if err != nil {
		return nil, fmt.Errorf("cannot parse SVG: %w", err)
	}
	return rasterize(icon, size), nil
}

func renderSVG(path string, size int) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open SVG: %w", err)
	}
	defer f.Close()

	icon, err := oksvg.ReadIconStream(f)
	if err != nil {
		return nil, fmt.Errorf("cannot parse SVG: %w", err)
	}
	return rasterize(icon, size), nil
}

func rasterize(icon *oksvg.SvgIcon, size int) image.Image {
	icon.SetTarget(0, 0, float64(size), float64(size))
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), 1.0)
	return img
}

func loadPNG(path string, size int) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open PNG: %w", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("cannot decode PNG: %w", err)
	}
	if b := img.Bounds(); b.Dx() == size && b.Dy() == size {
		return img, nil
	}
	return Resize(img, size), nil
}

// Resize scales src to size×size with nearest-neighbor sampling.
func Resize(src image.Image, size int) image.Image {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dst.Set(x, y, src.At(b.Min.X+x*b.Dx()/size, b.Min.Y+y*b.Dy()/size))
		}
	}
	return dst
}

func placeholder(size int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	gray := color.RGBA{128, 128, 128, 255}
	draw.Draw(img, img.Bounds(), &image.Uniform{gray}, image.Point{}, draw.Src)
	return img
}

// SavePNG writes img to path as PNG.
func SavePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create output file: %w", err)
	}
	defer f.Close()
	return png.Encode(f, img)
}
