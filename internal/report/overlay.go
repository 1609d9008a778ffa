package report

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/fontfit-mcp/internal/fontfit"
)

// DefaultOverlayColor is semi-transparent red.
var DefaultOverlayColor = color.NRGBA{R: 255, A: 128}

// TextDrawer draws text with the reference font. *fontfit.Renderer
// implements it.
type TextDrawer interface {
	DrawText(dst draw.Image, src image.Image, text string, size float64, x, y int) error
}

// RenderOverlay redraws every fitted region's text at its fitted size and
// baseline on top of img, so misfits show up as doubled glyphs. Regions
// without a fit are skipped, as are regions the font cannot draw.
func RenderOverlay(img image.Image, regions []fontfit.TextRegion, drawer TextDrawer, c color.NRGBA, log logrus.FieldLogger) *image.NRGBA {
	base := imaging.Clone(img)
	layer := image.NewNRGBA(base.Bounds())
	src := image.NewUniform(c)

	for _, r := range regions {
		if !r.Fitted() {
			continue
		}
		baseline := 0
		if r.FittedBaseline != nil {
			baseline = *r.FittedBaseline
		}
		x, y, _, _ := r.BBox.Ints()
		if err := drawer.DrawText(layer, src, r.Text, *r.FittedFontSize, x, y+baseline); err != nil && log != nil {
			log.WithField("region_id", r.ID).WithError(err).Warn("overlay text skipped")
		}
	}

	return imaging.Overlay(base, layer, image.Pt(0, 0), 1.0)
}
