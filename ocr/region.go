package ocr

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/tsawler/planvec/model"
)

// Word is a single recognized text line with its pixel bounding box in
// the source raster and the engine's confidence in [0, 1].
type Word struct {
	Text       string
	Box        image.Rectangle
	Confidence float64
}

// MapBox converts a pixel rectangle from a raster of the given size into
// page coordinates, given the page-space region the raster depicts.
// Raster rows grow downward while page coordinates grow upward, so the
// vertical axis is flipped.
func MapBox(box image.Rectangle, rasterWidth, rasterHeight int, region model.BBox) model.BBox {
	if rasterWidth <= 0 || rasterHeight <= 0 {
		return model.BBox{}
	}
	sx := region.Width / float64(rasterWidth)
	sy := region.Height / float64(rasterHeight)

	x := region.X + float64(box.Min.X)*sx
	w := float64(box.Dx()) * sx
	h := float64(box.Dy()) * sy
	y := region.Y + region.Height - float64(box.Max.Y)*sy
	return model.NewBBox(x, y, w, h)
}

// Upscale resamples img so its width is at least minWidth, preserving
// aspect ratio. Small rasters of drawing text recognize poorly; Tesseract
// wants glyphs around 30px tall. Images already wide enough are returned
// unchanged.
func Upscale(img image.Image, minWidth int) image.Image {
	b := img.Bounds()
	if b.Dx() >= minWidth || b.Dx() == 0 {
		return img
	}
	factor := (minWidth + b.Dx() - 1) / b.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}
