package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
	"github.com/sirupsen/logrus"
)

// DefaultLanguage is the Tesseract language used when none is configured.
const DefaultLanguage = "eng"

// Engine detects text lines in an image file.
type Engine interface {
	Detect(ctx context.Context, imagePath string) ([]RawDetection, error)
}

// TesseractEngine detects text lines with Tesseract via gosseract.
//
// Each returned detection is one text line (RIL_TEXTLINE), which is the unit
// the font-size fitter expects. Word-level boxes would fit each word
// separately and lose the shared baseline.
type TesseractEngine struct {
	Language string
	Log      logrus.FieldLogger
}

// NewTesseractEngine returns an engine for language ("eng" when empty).
func NewTesseractEngine(language string, log logrus.FieldLogger) *TesseractEngine {
	if language == "" {
		language = DefaultLanguage
	}
	return &TesseractEngine{Language: language, Log: log}
}

// Detect runs Tesseract on imagePath. Confidences are reported on a 0-1
// scale. gosseract calls cannot be interrupted, so ctx is only checked
// before recognition starts.
func (e *TesseractEngine) Detect(ctx context.Context, imagePath string) ([]RawDetection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.Language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImage(imagePath); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	dets := make([]RawDetection, 0, len(boxes))
	for _, box := range boxes {
		dets = append(dets, RawDetection{
			Text:       box.Word,
			Confidence: box.Confidence / 100.0,
			Box: &Bounds{
				X1: box.Box.Min.X,
				Y1: box.Box.Min.Y,
				X2: box.Box.Max.X,
				Y2: box.Box.Max.Y,
			},
		})
	}

	if e.Log != nil {
		e.Log.WithFields(logrus.Fields{
			"image":    imagePath,
			"language": e.Language,
			"lines":    len(dets),
		}).Debug("tesseract detection complete")
	}
	return dets, nil
}
