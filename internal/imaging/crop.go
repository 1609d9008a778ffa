package imaging

import (
	"image"

	"github.com/disintegration/imaging"
)

// ExpandRect grows the box (x, y, w, h) by ratio of its own size on every
// side and clamps the result to bounds.
//
// Each axis is expanded independently: the horizontal margin is
// int(w*ratio) and the vertical margin is int(h*ratio). The returned
// rectangle may be empty if the box lies entirely outside bounds.
func ExpandRect(bounds image.Rectangle, x, y, w, h int, ratio float64) image.Rectangle {
	dx := int(float64(w) * ratio)
	dy := int(float64(h) * ratio)

	r := image.Rect(x-dx, y-dy, x+w+dx, y+h+dy)
	return r.Intersect(bounds)
}

// CropRect extracts r from img as a new NRGBA image whose bounds start at (0,0).
func CropRect(img image.Image, r image.Rectangle) *image.NRGBA {
	return imaging.Crop(img, r)
}
