package fontfit

import (
	"context"
	"errors"
	"image/color"
	"testing"
)

func TestFitRegions_MixedBatch(t *testing.T) {
	img, box := drawText(t, 160, 60, "OK", 24, 8, 10)
	f := newTestFitter(t)

	regions := []TextRegion{
		{ID: "text_0", Text: "OK", BBox: box},
		{ID: "text_1", Text: "漢字", BBox: box},
		{ID: "text_2", Text: "  ", BBox: box},
	}

	got, err := f.FitRegions(context.Background(), img, regions, 8, 100, 2)
	if err != nil {
		t.Fatalf("FitRegions failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len: got %d, want 3", len(got))
	}

	if !got[0].Fitted() {
		t.Error("text_0 should be fitted")
	} else if got[0].FittedBaseline == nil || got[0].FitQuality == nil {
		t.Error("fitted region should carry baseline and quality")
	}
	for _, r := range got[1:] {
		if r.Fitted() {
			t.Errorf("%s should be unfit", r.ID)
		}
		if r.FitQuality == nil || *r.FitQuality != 0 {
			t.Errorf("%s: unfit region should have quality 0", r.ID)
		}
		if r.FittedBaseline != nil {
			t.Errorf("%s: unfit region should have no baseline", r.ID)
		}
	}
}

func TestFitRegions_WorkerCountDoesNotChangeResults(t *testing.T) {
	img, box := drawText(t, 160, 60, "OK", 24, 8, 10)
	f := newTestFitter(t)

	make3 := func() []TextRegion {
		return []TextRegion{
			{ID: "a", Text: "OK", BBox: box},
			{ID: "b", Text: "OK", BBox: box},
			{ID: "c", Text: "O", BBox: box},
		}
	}

	seq, err := f.FitRegions(context.Background(), img, make3(), 8, 60, 1)
	if err != nil {
		t.Fatalf("sequential FitRegions failed: %v", err)
	}
	par, err := f.FitRegions(context.Background(), img, make3(), 8, 60, 4)
	if err != nil {
		t.Fatalf("parallel FitRegions failed: %v", err)
	}
	for i := range seq {
		if seq[i].Fitted() != par[i].Fitted() {
			t.Fatalf("%s: fitted state differs", seq[i].ID)
		}
		if seq[i].Fitted() && *seq[i].FittedFontSize != *par[i].FittedFontSize {
			t.Errorf("%s: size %v vs %v", seq[i].ID, *seq[i].FittedFontSize, *par[i].FittedFontSize)
		}
	}
}

func TestFitRegions_Cancelled(t *testing.T) {
	img := filled(60, 40, color.White)
	spy := &spyRenderer{}
	f, err := NewFitter(spy, DefaultSearchOptions(), nil)
	if err != nil {
		t.Fatalf("NewFitter failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	regions := []TextRegion{
		{ID: "text_0", Text: "A", BBox: BBox{X: 2, Y: 2, Width: 20, Height: 10}},
		{ID: "text_1", Text: "B", BBox: BBox{X: 2, Y: 20, Width: 20, Height: 10}},
	}
	got, err := f.FitRegions(ctx, img, regions, 8, 100, 1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error: got %v, want context.Canceled", err)
	}
	for _, r := range got {
		if r.Fitted() || r.FitQuality == nil || *r.FitQuality != 0 {
			t.Errorf("%s should be marked unfit", r.ID)
		}
	}
	if spy.calls.Load() != 0 {
		t.Errorf("renderer called %d times after cancellation", spy.calls.Load())
	}
}

func TestFitRegions_InvalidBounds(t *testing.T) {
	f := newTestFitter(t)
	_, err := f.FitRegions(context.Background(), filled(10, 10, color.White), nil, 50, 10, 1)
	if !errors.Is(err, ErrInvalidBounds) {
		t.Errorf("error: got %v, want ErrInvalidBounds", err)
	}
}

func TestFitRegions_Empty(t *testing.T) {
	f := newTestFitter(t)
	got, err := f.FitRegions(context.Background(), filled(10, 10, color.White), nil, 8, 100, 4)
	if err != nil {
		t.Fatalf("FitRegions failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len: got %d, want 0", len(got))
	}
}
