package fontfit

import (
	"fmt"
	"image"

	"github.com/ironsheep/fontfit-mcp/internal/imaging"
)

// Defaults for the locally-adaptive threshold.
const (
	DefaultExpandRatio = 0.2
	DefaultBlockSize   = 11
	DefaultThresholdC  = 2.0
)

// BinarizeOptions control how a region is cropped and thresholded.
type BinarizeOptions struct {
	// ExpandRatio grows the crop by this fraction of the box size on each side.
	ExpandRatio float64
	// BlockSize is the odd neighbourhood size of the local Gaussian mean.
	BlockSize int
	// ThresholdC is subtracted from the local mean before comparison.
	ThresholdC float64
}

// DefaultBinarizeOptions returns the standard 20% expansion with an 11px
// Gaussian neighbourhood and C = 2.
func DefaultBinarizeOptions() BinarizeOptions {
	return BinarizeOptions{
		ExpandRatio: DefaultExpandRatio,
		BlockSize:   DefaultBlockSize,
		ThresholdC:  DefaultThresholdC,
	}
}

func (o BinarizeOptions) validate() error {
	if o.ExpandRatio < 0 {
		return fmt.Errorf("expand ratio must be >= 0, got %g", o.ExpandRatio)
	}
	if o.BlockSize < 3 || o.BlockSize%2 == 0 {
		return fmt.Errorf("block size must be odd and >= 3, got %d", o.BlockSize)
	}
	return nil
}

// BinarizeRegion crops the box, expanded per opts, out of img and returns a
// mask whose foreground is the glyph strokes, together with the crop
// rectangle in image coordinates.
//
// Thresholding is local: a pixel is foreground when its gray value is at most
// the Gaussian-weighted mean of its neighbourhood minus C. Dark-on-light and
// light-on-dark text in the same screenshot both produce stroke masks, which a
// single global threshold cannot do.
func BinarizeRegion(img image.Image, box BBox, opts BinarizeOptions) (*Mask, image.Rectangle, error) {
	if err := opts.validate(); err != nil {
		return nil, image.Rectangle{}, err
	}
	x, y, w, h := box.Ints()
	if w <= 0 || h <= 0 {
		return nil, image.Rectangle{}, fmt.Errorf("%w: box %dx%d", ErrInvalidRegion, w, h)
	}

	r := imaging.ExpandRect(img.Bounds(), x, y, w, h, opts.ExpandRatio)
	if r.Empty() {
		return nil, image.Rectangle{}, fmt.Errorf("%w: box (%d,%d %dx%d)", ErrEmptyRegion, x, y, w, h)
	}

	crop := imaging.CropRect(img, r)
	mask, err := adaptiveThreshold(crop, opts.BlockSize, opts.ThresholdC)
	if err != nil {
		return nil, image.Rectangle{}, fmt.Errorf("binarize region: %w", err)
	}
	return mask, r, nil
}
