package renderer

import (
	"image"
	"image/color"
)

// MissingIcon draws the conventional "missing icon" placeholder: a thin
// border with a centered X, in the given foreground color on a transparent
// background.
func MissingIcon(size int, fg color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	r, g, b, a := fg.RGBA()
	fgColor := color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
	borderColor := color.RGBA{fgColor.R, fgColor.G, fgColor.B, uint8(float64(fgColor.A) * 0.6)}

	borderWidth := max(1, size/32)
	for i := 0; i < borderWidth; i++ {
		for x := 0; x < size; x++ {
			img.Set(x, i, borderColor)
			img.Set(x, size-1-i, borderColor)
		}
		for y := 0; y < size; y++ {
			img.Set(i, y, borderColor)
			img.Set(size-1-i, y, borderColor)
		}
	}

	crossWidth := max(2, size/16)
	center := size / 2
	crossSize := size / 3

	for i := -crossSize; i <= crossSize; i++ {
		for j := -crossWidth / 2; j <= crossWidth/2; j++ {
			if center+i+j >= 0 && center+i+j < size && center+i >= 0 && center+i < size {
				img.Set(center+i+j, center+i, fgColor)
			}
			if center-i+j >= 0 && center-i+j < size && center+i >= 0 && center+i < size {
				img.Set(center-i+j, center+i, fgColor)
			}
		}
	}

	return img
}
