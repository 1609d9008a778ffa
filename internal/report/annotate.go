package report

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/fontfit-mcp/internal/fontfit"
)

const (
	labelPadding = 4
	labelGap     = 5
)

// Annotate labels every fitted region with its size, and optionally its
// fit quality, above the box on a 70% white backing, joined to the box by a
// short leader, and outlines the box in green.
func Annotate(img image.Image, regions []fontfit.TextRegion, showQuality bool) *image.NRGBA {
	out := imaging.Clone(img)
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}

	for _, r := range regions {
		if !r.Fitted() {
			continue
		}
		text := fmt.Sprintf("%.1fpx", *r.FittedFontSize)
		if showQuality {
			q := 0.0
			if r.FitQuality != nil {
				q = *r.FitQuality
			}
			text = fmt.Sprintf("%.1fpx (Q:%.2f)", *r.FittedFontSize, q)
		}

		x, y, w, h := r.BBox.Ints()
		lw, lh := labelSize(text)

		bg := image.Rect(
			x,
			max(0, y-lh-2*labelPadding-labelGap),
			x+lw+2*labelPadding,
			y-labelGap,
		)
		blendRect(out, bg, white, 0.7)
		label(out, x+labelPadding, y-labelPadding-labelGap, text, labelColor)
		line(out, x, bg.Max.Y, x, y, labelColor)
		rectOutline(out, image.Rect(x, y, x+w, y+h), boxColor)
	}
	return out
}

// DrawDetections outlines each region's polygon in green and writes the
// first ten characters of its text above it.
func DrawDetections(img image.Image, regions []fontfit.TextRegion) *image.NRGBA {
	out := imaging.Clone(img)
	for _, r := range regions {
		poly := r.Polygon
		if len(poly) == 0 {
			x, y, w, h := r.BBox.Ints()
			poly = [][2]float64{{float64(x), float64(y)}, {float64(x + w), float64(y)}, {float64(x + w), float64(y + h)}, {float64(x), float64(y + h)}}
		}
		for i := range poly {
			a, b := poly[i], poly[(i+1)%len(poly)]
			line(out, int(a[0]), int(a[1]), int(b[0]), int(b[1]), boxColor)
			line(out, int(a[0])+1, int(a[1])+1, int(b[0])+1, int(b[1])+1, boxColor)
		}

		text := []rune(r.Text)
		if len(text) > 10 {
			text = text[:10]
		}
		x, y, _, _ := r.BBox.Ints()
		label(out, x, y-10, string(text), boxColor)
	}
	return out
}
