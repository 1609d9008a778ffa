package fontfit

import "math"

// FitResult is the outcome of fitting one region. It is never mutated
// after it is returned.
type FitResult struct {
	// FontSize is nil when no candidate overlapped the glyph pixels.
	FontSize       *float64 `json:"font_size"`
	BaselineOffset int      `json:"baseline_offset"`
	// FitQuality is the best IoU observed, in [0, 1].
	FitQuality float64 `json:"fit_quality"`
	FontFamily string  `json:"font_family"`
	LineHeight float64 `json:"line_height"`
	BBox       BBox    `json:"bbox"`
	Text       string  `json:"text"`
}

// Fitted reports whether a font size was found.
func (r *FitResult) Fitted() bool {
	return r.FontSize != nil
}

// assemble packages the winning candidate. Rounding to 0.1px and 4 decimal
// quality happens here only; the search compares unrounded values.
func assemble(best Candidate, found bool, box BBox, text, family string) *FitResult {
	res := &FitResult{
		FontFamily: family,
		LineHeight: 1.0,
		BBox:       box,
		Text:       text,
	}
	if !found || best.IoU <= 0 {
		return res
	}
	size := math.Round(best.FontSize*10) / 10
	res.FontSize = &size
	res.BaselineOffset = best.BaselineOffset
	res.FitQuality = math.Round(best.IoU*10000) / 10000
	return res
}
