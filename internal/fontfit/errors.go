package fontfit

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRegion is returned before any rendering when a region has
	// empty text or a non-positive box dimension.
	ErrInvalidRegion = errors.New("invalid text region")

	// ErrInvalidBounds is returned when the font-size search bounds are unusable.
	ErrInvalidBounds = errors.New("invalid font size bounds")

	// ErrEmptyRegion is returned when the expanded crop has no pixels inside the image.
	ErrEmptyRegion = errors.New("region lies outside the image")
)

// ErrorCodeRenderFailure identifies a candidate that could not be rasterized.
const ErrorCodeRenderFailure = "RENDER_FAILURE"

// RenderFailure reports that one (text, size, baseline) candidate could not
// be rasterized. The search treats it as a zero-overlap candidate.
type RenderFailure struct {
	Text     string
	FontSize float64
	// Rune is the first character without a glyph, or 0 when the failure
	// is not glyph related.
	Rune   rune
	Reason string
}

func (e *RenderFailure) Error() string {
	if e.Rune != 0 {
		return fmt.Sprintf("%s: no glyph for %q in %q at %.1fpx", ErrorCodeRenderFailure, e.Rune, e.Text, e.FontSize)
	}
	return fmt.Sprintf("%s: %s (text %q, %.1fpx)", ErrorCodeRenderFailure, e.Reason, e.Text, e.FontSize)
}
