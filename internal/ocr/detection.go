package ocr

import "fmt"

// ErrorCodeUnsupportedSchema identifies OCR output the adapter cannot read.
const ErrorCodeUnsupportedSchema = "UNSUPPORTED_OCR_SCHEMA"

// Bounds is an axis-aligned box in pixel coordinates.
type Bounds struct {
	X1 int `json:"x1"` // Left edge
	Y1 int `json:"y1"` // Top edge
	X2 int `json:"x2"` // Right edge
	Y2 int `json:"y2"` // Bottom edge
}

// RawDetection is one text line as reported by an OCR engine, before
// filtering. Exactly one of Polygon and Box locates it.
type RawDetection struct {
	Text string `json:"text"`
	// Confidence is on a 0-1 scale, or 0-100 for engines that report percentages.
	Confidence float64      `json:"confidence"`
	Polygon    [][2]float64 `json:"polygon,omitempty"`
	Box        *Bounds      `json:"box,omitempty"`
}

// UnsupportedSchemaError reports OCR output whose shape the adapter does not
// understand. Index is the offending detection, or -1 for the document as a whole.
type UnsupportedSchemaError struct {
	Index  int
	Reason string
}

func (e *UnsupportedSchemaError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s", ErrorCodeUnsupportedSchema, e.Reason)
	}
	return fmt.Sprintf("%s: detection %d: %s", ErrorCodeUnsupportedSchema, e.Index, e.Reason)
}
