package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// FileEngine reads precomputed detections from a JSON file instead of
// running recognition. The image path passed to Detect is ignored.
type FileEngine struct {
	Path string
}

// Detect decodes the file at e.Path with DecodeDetections.
func (e *FileEngine) Detect(ctx context.Context, _ string) ([]RawDetection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(e.Path)
	if err != nil {
		return nil, fmt.Errorf("open detections: %w", err)
	}
	defer f.Close()
	return DecodeDetections(f)
}

// paddleResult is the per-image result object written by PaddleOCR 3.x
// pipelines. dt_polys holds detection polygons and rec_polys the polygons
// of recognized lines; either may be present.
type paddleResult struct {
	DTPolys   [][][2]float64 `json:"dt_polys"`
	RecPolys  [][][2]float64 `json:"rec_polys"`
	RecTexts  []string       `json:"rec_texts"`
	RecScores []float64      `json:"rec_scores"`
}

// DecodeDetections reads OCR output in one of three shapes: a PaddleOCR
// result object, a one-element array holding such an object, or an array
// of RawDetection objects. Anything else is *UnsupportedSchemaError.
func DecodeDetections(r io.Reader) ([]RawDetection, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read detections: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, &UnsupportedSchemaError{Index: -1, Reason: "empty document"}
	}

	switch data[0] {
	case '{':
		return decodePaddle(data)
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, &UnsupportedSchemaError{Index: -1, Reason: err.Error()}
		}
		if len(items) == 0 {
			return []RawDetection{}, nil
		}
		if len(items) == 1 && isPaddle(items[0]) {
			return decodePaddle(items[0])
		}
		var dets []RawDetection
		if err := json.Unmarshal(data, &dets); err != nil {
			return nil, &UnsupportedSchemaError{Index: -1, Reason: err.Error()}
		}
		return dets, nil
	}
	return nil, &UnsupportedSchemaError{Index: -1, Reason: "expected a JSON object or array"}
}

func isPaddle(raw json.RawMessage) bool {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return false
	}
	_, ok := keys["rec_texts"]
	return ok
}

func decodePaddle(data []byte) ([]RawDetection, error) {
	var pr paddleResult
	if err := json.Unmarshal(data, &pr); err != nil {
		return nil, &UnsupportedSchemaError{Index: -1, Reason: err.Error()}
	}
	polys := pr.DTPolys
	if polys == nil {
		polys = pr.RecPolys
	}
	if pr.RecTexts == nil || polys == nil {
		return nil, &UnsupportedSchemaError{Index: -1, Reason: "missing rec_texts or dt_polys/rec_polys"}
	}

	dets := make([]RawDetection, 0, len(pr.RecTexts))
	for i, text := range pr.RecTexts {
		if i >= len(polys) {
			return nil, &UnsupportedSchemaError{Index: i, Reason: "no polygon for recognized text"}
		}
		conf := 1.0
		if i < len(pr.RecScores) {
			conf = pr.RecScores[i]
		}
		poly := polys[i]
		if poly == nil {
			poly = [][2]float64{}
		}
		dets = append(dets, RawDetection{Text: text, Confidence: conf, Polygon: poly})
	}
	return dets, nil
}
