package report

import (
	"github.com/ironsheep/fontfit-mcp/internal/fontfit"
	"github.com/ironsheep/fontfit-mcp/internal/imaging"
)

// Images lists the files written for one task.
type Images struct {
	Normalized   string `json:"normalized"`
	OCRDetection string `json:"ocr_detection"`
	Overlay      string `json:"overlay"`
	Annotated    string `json:"annotated"`
}

// TaskResult is the persisted outcome of processing one screenshot.
type TaskResult struct {
	TaskID        string                   `json:"task_id"`
	Timestamp     string                   `json:"timestamp"`
	SourcePath    string                   `json:"source_path"`
	FontFamily    string                   `json:"font_family"`
	Normalization *imaging.NormalizeResult `json:"normalization"`
	TextRegions   []fontfit.TextRegion     `json:"text_regions"`
	Report        Summary                  `json:"report"`
	Images        Images                   `json:"images"`
}
