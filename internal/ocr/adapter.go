package ocr

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ironsheep/fontfit-mcp/internal/fontfit"
)

// decorativeSymbols are single glyphs that OCR reports for icons and bullets.
const decorativeSymbols = "□○△▽◇◆■●▲▼◎"

// AdaptOptions are the filters applied when converting raw detections.
type AdaptOptions struct {
	MinConfidence float64
	MinWidth      float64
	MinHeight     float64
}

// DefaultAdaptOptions drops detections under 50% confidence or smaller than 10x8 px.
func DefaultAdaptOptions() AdaptOptions {
	return AdaptOptions{MinConfidence: 0.5, MinWidth: 10, MinHeight: 8}
}

// Adapt converts engine output into text regions ready for fitting.
//
// Polygons and boxes become min/max bounding boxes. Detections below the
// confidence or size thresholds, with blank text, or consisting of a single
// decorative symbol are dropped. Surviving regions keep the id text_<i>
// where i is the index in dets, so ids are stable across filter changes.
//
// Any detection without a usable location fails the whole conversion with
// *UnsupportedSchemaError.
func Adapt(dets []RawDetection, opts AdaptOptions) ([]fontfit.TextRegion, error) {
	regions := make([]fontfit.TextRegion, 0, len(dets))
	for i, d := range dets {
		box, poly, err := locate(i, d)
		if err != nil {
			return nil, err
		}

		conf := d.Confidence
		if conf > 1 {
			conf /= 100
		}

		if conf < opts.MinConfidence {
			continue
		}
		if box.Width < opts.MinWidth || box.Height < opts.MinHeight {
			continue
		}
		text := strings.TrimSpace(d.Text)
		if text == "" {
			continue
		}
		if utf8.RuneCountInString(text) == 1 && strings.Contains(decorativeSymbols, text) {
			continue
		}

		regions = append(regions, fontfit.TextRegion{
			ID:         fmt.Sprintf("text_%d", i),
			Text:       d.Text,
			Confidence: conf,
			BBox:       box,
			Center:     box.Center(),
			Polygon:    poly,
		})
	}
	return regions, nil
}

func locate(i int, d RawDetection) (fontfit.BBox, [][2]float64, error) {
	switch {
	case d.Polygon != nil:
		if len(d.Polygon) < 1 {
			return fontfit.BBox{}, nil, &UnsupportedSchemaError{Index: i, Reason: "polygon has no points"}
		}
		minX, minY := d.Polygon[0][0], d.Polygon[0][1]
		maxX, maxY := minX, minY
		for _, p := range d.Polygon[1:] {
			minX = min(minX, p[0])
			minY = min(minY, p[1])
			maxX = max(maxX, p[0])
			maxY = max(maxY, p[1])
		}
		poly := make([][2]float64, len(d.Polygon))
		copy(poly, d.Polygon)
		return fontfit.BBox{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, poly, nil

	case d.Box != nil:
		b := d.Box
		x1, y1 := float64(min(b.X1, b.X2)), float64(min(b.Y1, b.Y2))
		x2, y2 := float64(max(b.X1, b.X2)), float64(max(b.Y1, b.Y2))
		poly := [][2]float64{{x1, y1}, {x2, y1}, {x2, y2}, {x1, y2}}
		return fontfit.BBox{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}, poly, nil
	}
	return fontfit.BBox{}, nil, &UnsupportedSchemaError{Index: i, Reason: "neither polygon nor box present"}
}
