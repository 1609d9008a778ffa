package fontfit

import (
	"fmt"
	"image"

	"github.com/sirupsen/logrus"
)

// Search defaults.
const (
	DefaultMinSize      = 8
	DefaultMaxSize      = 100
	DefaultCoarseStep   = 4
	DefaultFineStep     = 0.5
	DefaultFineWindow   = 4
	DefaultBaselineStep = 2
)

// GlyphRenderer rasterizes candidate text into a mask of exactly
// width x height. *Renderer is the production implementation.
type GlyphRenderer interface {
	Render(text string, size float64, baseline, width, height, anchorX, anchorY int) (*Mask, error)
	Family() string
}

// Candidate is one scored (font size, baseline offset) pair. Err is set
// when the candidate could not be rendered; its IoU is then 0.
type Candidate struct {
	FontSize       float64
	BaselineOffset int
	IoU            float64
	Err            error
}

// CandidateObserver is called for every rendered candidate, in search order.
type CandidateObserver func(Candidate)

// SearchOptions tune the coarse-to-fine search.
type SearchOptions struct {
	// CoarseStep is the integer font-size step of the first pass.
	CoarseStep int
	// FineStep is the fractional step used around the coarse winner.
	FineStep float64
	// FineWindow is how far (in px) either side of the coarse winner the
	// fine pass searches.
	FineWindow int
	// BaselineStep is the vertical offset step of the inner loop.
	BaselineStep int

	Binarize BinarizeOptions
}

// DefaultSearchOptions returns coarse step 4, fine step 0.5 over ±4px and
// baseline step 2.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		CoarseStep:   DefaultCoarseStep,
		FineStep:     DefaultFineStep,
		FineWindow:   DefaultFineWindow,
		BaselineStep: DefaultBaselineStep,
		Binarize:     DefaultBinarizeOptions(),
	}
}

// Validate checks that every step is positive.
func (o SearchOptions) Validate() error {
	if o.CoarseStep < 1 {
		return fmt.Errorf("coarse step must be >= 1, got %d", o.CoarseStep)
	}
	if !(o.FineStep > 0) {
		return fmt.Errorf("fine step must be > 0, got %g", o.FineStep)
	}
	if o.FineWindow < 0 {
		return fmt.Errorf("fine window must be >= 0, got %d", o.FineWindow)
	}
	if o.BaselineStep < 1 {
		return fmt.Errorf("baseline step must be >= 1, got %d", o.BaselineStep)
	}
	return o.Binarize.validate()
}

// Fitter estimates the font size of single text lines. It holds no mutable
// state, so one Fitter serves every request and every goroutine.
type Fitter struct {
	renderer GlyphRenderer
	opts     SearchOptions
	log      logrus.FieldLogger
	observer CandidateObserver
}

// NewFitter builds a Fitter. A nil logger discards output.
func NewFitter(renderer GlyphRenderer, opts SearchOptions, log logrus.FieldLogger) (*Fitter, error) {
	if renderer == nil {
		return nil, fmt.Errorf("renderer is required")
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("search options: %w", err)
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(discard{})
		log = l
	}
	return &Fitter{renderer: renderer, opts: opts, log: log}, nil
}

// WithObserver returns a copy of f that reports every evaluated candidate to obs.
func (f *Fitter) WithObserver(obs CandidateObserver) *Fitter {
	cp := *f
	cp.observer = obs
	return &cp
}

// Options returns the search options in use.
func (f *Fitter) Options() SearchOptions {
	return f.opts
}

// FitRegion finds the font size and baseline offset whose rendering of text
// best overlaps the glyph pixels inside box.
//
// The search runs integer sizes in [minSize, maxSize) at CoarseStep, then, if
// anything overlapped, fractional sizes at FineStep within FineWindow of the
// coarse winner (clamped to the bounds, upper end exclusive). Each size tries
// baseline offsets in [-h/2, h/2) at BaselineStep. Only strict improvements
// replace the best candidate, so the first candidate in that order wins ties.
//
// Invalid regions and bounds are rejected before anything is rendered. A
// result with a nil FontSize means no candidate overlapped at all.
func (f *Fitter) FitRegion(img image.Image, text string, box BBox, minSize, maxSize int) (*FitResult, error) {
	region := TextRegion{Text: text, BBox: box}
	if err := region.Validate(); err != nil {
		return nil, fmt.Errorf("%w: text %q box %+v", err, text, box)
	}
	if minSize < 1 || minSize >= maxSize {
		return nil, fmt.Errorf("%w: min %d max %d", ErrInvalidBounds, minSize, maxSize)
	}

	target, crop, err := BinarizeRegion(img, box, f.opts.Binarize)
	if err != nil {
		return nil, err
	}

	x, y, _, h := box.Ints()
	anchorX := x - crop.Min.X
	anchorY := y - crop.Min.Y

	var best Candidate
	found := false

	for size := minSize; size < maxSize; size += f.opts.CoarseStep {
		c := f.evaluate(text, float64(size), target, anchorX, anchorY, h)
		if c.IoU > best.IoU {
			best = c
			found = true
		}
	}

	if found {
		coarse := int(best.FontSize)
		lo := max(minSize, coarse-f.opts.FineWindow)
		hi := max(lo, min(maxSize, coarse+f.opts.FineWindow))
		for i := 0; ; i++ {
			size := float64(lo) + float64(i)*f.opts.FineStep
			if size >= float64(hi) {
				break
			}
			c := f.evaluate(text, size, target, anchorX, anchorY, h)
			if c.IoU > best.IoU {
				best = c
			}
		}
	}

	res := assemble(best, found, box, text, f.renderer.Family())
	entry := f.log.WithFields(logrus.Fields{
		"text":        text,
		"fit_quality": res.FitQuality,
	})
	if res.Fitted() {
		entry.WithFields(logrus.Fields{
			"font_size": *res.FontSize,
			"baseline":  res.BaselineOffset,
		}).Debug("region fitted")
	} else {
		entry.Debug("region unfit")
	}
	return res, nil
}

// evaluate scores one font size across every baseline offset and returns
// the best offset for it.
func (f *Fitter) evaluate(text string, size float64, target *Mask, anchorX, anchorY, h int) Candidate {
	best := Candidate{FontSize: size}
	failures := 0
	tried := 0

	for off := floorDiv(-h, 2); off < h/2; off += f.opts.BaselineStep {
		tried++
		iou, err := f.score(text, size, off, target, anchorX, anchorY)
		if f.observer != nil {
			f.observer(Candidate{FontSize: size, BaselineOffset: off, IoU: iou, Err: err})
		}
		if err != nil {
			failures++
			best.Err = err
			continue
		}
		if iou > best.IoU {
			best.IoU = iou
			best.BaselineOffset = off
		}
	}

	if failures > 0 && failures == tried {
		f.log.WithFields(logrus.Fields{
			"text":      text,
			"font_size": size,
		}).WithError(best.Err).Debug("candidate size failed to render")
	}
	return best
}

// score renders one candidate and compares it with the target. A panic from
// the rasterizer is converted into a RenderFailure so one bad candidate
// cannot abort the search.
func (f *Fitter) score(text string, size float64, baseline int, target *Mask, anchorX, anchorY int) (iou float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			iou = 0
			err = &RenderFailure{Text: text, FontSize: size, Reason: fmt.Sprint(r)}
		}
	}()

	rendered, err := f.renderer.Render(text, size, baseline, target.Width, target.Height, anchorX, anchorY)
	if err != nil {
		return 0, err
	}
	return IoU(rendered, target), nil
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
