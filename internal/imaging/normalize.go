package imaging

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// DefaultTargetWidth is the width every screenshot is rescaled to before OCR
// and fitting, so that fitted pixel sizes are comparable across devices.
const DefaultTargetWidth = 750

// Size is a width/height pair in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NormalizeResult describes a uniform rescale to the target width.
type NormalizeResult struct {
	OriginalSize   Size    `json:"original_size"`
	NormalizedSize Size    `json:"normalized_size"`
	ScaleFactor    float64 `json:"scale_factor"`
	OutputPath     string  `json:"output_path,omitempty"`
}

// FlattenOnWhite composites img over an opaque white canvas, dropping any
// transparency. Transparent UI exports otherwise binarize as black.
func FlattenOnWhite(img image.Image) *image.NRGBA {
	src := imaging.Clone(img)
	b := src.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(bg, src, image.Pt(0, 0), 1.0)
}

// Normalize flattens img onto white and rescales it to targetWidth with
// Lanczos resampling, preserving aspect ratio.
func Normalize(img image.Image, targetWidth int) (*image.NRGBA, *NormalizeResult, error) {
	if targetWidth <= 0 {
		return nil, nil, fmt.Errorf("target width must be positive, got %d", targetWidth)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, nil, fmt.Errorf("cannot normalize empty image")
	}

	scale := float64(targetWidth) / float64(b.Dx())
	newHeight := int(float64(b.Dy()) * scale)
	if newHeight < 1 {
		newHeight = 1
	}

	flat := FlattenOnWhite(img)
	var out *image.NRGBA
	if b.Dx() == targetWidth && newHeight == b.Dy() {
		out = flat
	} else {
		out = imaging.Resize(flat, targetWidth, newHeight, imaging.Lanczos)
	}

	return out, &NormalizeResult{
		OriginalSize:   Size{Width: b.Dx(), Height: b.Dy()},
		NormalizedSize: Size{Width: targetWidth, Height: newHeight},
		ScaleFactor:    scale,
	}, nil
}

// Save writes img to path; the format follows the extension. JPEG output
// uses quality 95.
func Save(img image.Image, path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif":
	default:
		return fmt.Errorf("unsupported output format %q", ext)
	}
	if err := imaging.Save(img, path, imaging.JPEGQuality(95)); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
