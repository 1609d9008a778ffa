//go:build !gocv

package fontfit

import (
	"math"
	"testing"
)

func TestGaussianRadius(t *testing.T) {
	tests := []struct {
		block      int
		wantSigma  float64
		wantRadius float64
	}{
		{11, 2.0, 2.0},
		{3, 0.8, 0.32},
		{21, 3.5, 6.125},
	}
	for _, tt := range tests {
		if got := gaussianSigma(tt.block); math.Abs(got-tt.wantSigma) > 1e-9 {
			t.Errorf("gaussianSigma(%d): got %v, want %v", tt.block, got, tt.wantSigma)
		}
		if got := gaussianRadius(tt.block); math.Abs(got-tt.wantRadius) > 1e-9 {
			t.Errorf("gaussianRadius(%d): got %v, want %v", tt.block, got, tt.wantRadius)
		}
	}
}
