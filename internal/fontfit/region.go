package fontfit

import "strings"

// BBox is an axis-aligned box in normalized-image pixel coordinates.
type BBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Ints truncates the box to integer pixels.
func (b BBox) Ints() (x, y, w, h int) {
	return int(b.X), int(b.Y), int(b.Width), int(b.Height)
}

// Valid reports whether the box has positive integer width and height.
func (b BBox) Valid() bool {
	_, _, w, h := b.Ints()
	return w > 0 && h > 0
}

// Center returns the box centre.
func (b BBox) Center() Point {
	return Point{X: b.X + b.Width/2, Y: b.Y + b.Height/2}
}

// Point is a 2D position in pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TextRegion is one detected line of text and, after fitting, the fitted
// font metrics. The Fitted* and FitQuality fields are nil until a fit has
// been attempted; an unfit region has FittedFontSize nil and FitQuality 0.
type TextRegion struct {
	ID         string       `json:"id"`
	Text       string       `json:"text"`
	Confidence float64      `json:"confidence"`
	BBox       BBox         `json:"bbox"`
	Center     Point        `json:"center"`
	Polygon    [][2]float64 `json:"polygon,omitempty"`

	FittedFontSize *float64 `json:"fitted_font_size"`
	FittedBaseline *int     `json:"fitted_baseline"`
	FitQuality     *float64 `json:"fit_quality"`
	FontFamily     string   `json:"font_family,omitempty"`
}

// Validate checks the preconditions for fitting: non-blank text and a box
// with positive dimensions.
func (r *TextRegion) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return ErrInvalidRegion
	}
	if !r.BBox.Valid() {
		return ErrInvalidRegion
	}
	return nil
}

// Apply merges a fit result into the region record.
func (r *TextRegion) Apply(res *FitResult) {
	if res == nil || res.FontSize == nil {
		r.MarkUnfit()
		return
	}
	size := *res.FontSize
	baseline := res.BaselineOffset
	quality := res.FitQuality
	r.FittedFontSize = &size
	r.FittedBaseline = &baseline
	r.FitQuality = &quality
	r.FontFamily = res.FontFamily
}

// MarkUnfit records that no font size could be fitted.
func (r *TextRegion) MarkUnfit() {
	zero := 0.0
	r.FittedFontSize = nil
	r.FittedBaseline = nil
	r.FitQuality = &zero
}

// Fitted reports whether the region carries a fitted font size.
func (r *TextRegion) Fitted() bool {
	return r.FittedFontSize != nil
}
