// Package ocr is the boundary between OCR engines and the font-size fitter.
//
// An Engine produces RawDetection values: one text line each, located by a
// polygon or a box. Adapt converts them into fontfit.TextRegion records,
// dropping low-confidence, tiny, blank and decorative detections, and fails
// with *UnsupportedSchemaError when a detection cannot be located. Nothing
// past Adapt sees engine-specific shapes.
//
// Two engines are provided:
//
//   - TesseractEngine runs Tesseract through gosseract at text-line level.
//   - FileEngine reads saved output, either PaddleOCR's result object
//     (dt_polys/rec_polys, rec_texts, rec_scores) or a RawDetection array.
//
// # Prerequisites
//
// TesseractEngine needs Tesseract and its language data installed:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
package ocr
