package report

import (
	"fmt"
	"image"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	labelColor = color.NRGBA{R: 255, G: 120, B: 0, A: 255}
	boxColor   = color.NRGBA{G: 255, A: 255}
	labelFace  = basicfont.Face7x13
)

// ParseColor turns a #RRGGBB string and an alpha into a colour.
func ParseColor(hex string, alpha int) (color.NRGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse colour %q: %w", hex, err)
	}
	if alpha < 0 || alpha > 255 {
		return color.NRGBA{}, fmt.Errorf("alpha %d outside 0-255", alpha)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(alpha)}, nil
}

// blendRect mixes c into r with weight w, clipped to the image.
func blendRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA, w float64) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			i := img.PixOffset(x, y)
			p := img.Pix[i : i+4 : i+4]
			p[0] = uint8(float64(c.R)*w + float64(p[0])*(1-w) + 0.5)
			p[1] = uint8(float64(c.G)*w + float64(p[1])*(1-w) + 0.5)
			p[2] = uint8(float64(c.B)*w + float64(p[2])*(1-w) + 0.5)
		}
	}
}

// line draws a 1px line from (x0, y0) to (x1, y1) with Bresenham's algorithm.
func line(img *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		if (image.Point{X: x0, Y: y0}).In(img.Bounds()) {
			img.SetNRGBA(x0, y0, c)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func rectOutline(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	line(img, r.Min.X, r.Min.Y, r.Max.X, r.Min.Y, c)
	line(img, r.Max.X, r.Min.Y, r.Max.X, r.Max.Y, c)
	line(img, r.Max.X, r.Max.Y, r.Min.X, r.Max.Y, c)
	line(img, r.Min.X, r.Max.Y, r.Min.X, r.Min.Y, c)
}

// label draws text with its baseline at (x, y).
func label(img *image.NRGBA, x, y int, text string, c color.NRGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: labelFace,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func labelSize(text string) (w, h int) {
	return font.MeasureString(labelFace, text).Ceil(), labelFace.Metrics().Ascent.Ceil()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
