package fontfit

import (
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/sirupsen/logrus"
)

// FitRegions fits every region of img in place and returns the same slice.
//
// Regions are independent. A region that fails validation or whose search
// errors is marked unfit and the batch continues. Up to workers regions are
// fitted concurrently (values below 1 mean sequential). Cancelling ctx stops
// new fits; regions not yet started are marked unfit and ctx.Err() is
// returned alongside the partially fitted slice.
func (f *Fitter) FitRegions(ctx context.Context, img image.Image, regions []TextRegion, minSize, maxSize, workers int) ([]TextRegion, error) {
	if minSize < 1 || minSize >= maxSize {
		return regions, fmt.Errorf("%w: min %d max %d", ErrInvalidBounds, minSize, maxSize)
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(regions) {
		workers = len(regions)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				f.fitOne(img, &regions[i], minSize, maxSize)
			}
		}()
	}

	var cancelled error
	next := 0
feed:
	for ; next < len(regions); next++ {
		if err := ctx.Err(); err != nil {
			cancelled = err
			break
		}
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
			break feed
		case jobs <- next:
		}
	}
	close(jobs)
	wg.Wait()

	for i := next; i < len(regions); i++ {
		regions[i].MarkUnfit()
	}

	fitted := 0
	for i := range regions {
		if regions[i].Fitted() {
			fitted++
		}
	}
	entry := f.log.WithFields(logrus.Fields{
		"regions": len(regions),
		"fitted":  fitted,
		"workers": workers,
	})
	if cancelled != nil {
		entry.WithError(cancelled).Warn("batch fit cancelled")
		return regions, cancelled
	}
	entry.Info("batch fit complete")
	return regions, nil
}

// fitOne fits a single region; any error or panic leaves it unfit.
func (f *Fitter) fitOne(img image.Image, r *TextRegion, minSize, maxSize int) {
	defer func() {
		if p := recover(); p != nil {
			f.log.WithFields(logrus.Fields{
				"region_id": r.ID,
				"panic":     fmt.Sprint(p),
			}).Error("region fit panicked")
			r.MarkUnfit()
		}
	}()

	res, err := f.FitRegion(img, r.Text, r.BBox, minSize, maxSize)
	if err != nil {
		f.log.WithFields(logrus.Fields{
			"region_id": r.ID,
			"text":      r.Text,
		}).WithError(err).Warn("region skipped")
		r.MarkUnfit()
		return
	}
	r.Apply(res)
}
