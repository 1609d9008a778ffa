//go:build !gocv

package fontfit

import (
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
)

// adaptiveThreshold marks pixels at or below (local Gaussian mean - c) as
// foreground. Luma uses the BT.601 weights OpenCV applies for BGR2GRAY.
func adaptiveThreshold(crop image.Image, blockSize int, c float64) (*Mask, error) {
	gray := effect.GrayscaleWithWeights(crop, 0.299, 0.587, 0.114)
	local := blur.Gaussian(gray, gaussianRadius(blockSize))

	gb := gray.Bounds()
	lb := local.Bounds()
	mask := NewMask(gb.Dx(), gb.Dy())
	for y := 0; y < mask.Height; y++ {
		for x := 0; x < mask.Width; x++ {
			v := float64(gray.RGBAAt(gb.Min.X+x, gb.Min.Y+y).R)
			mean := float64(local.RGBAAt(lb.Min.X+x, lb.Min.Y+y).R)
			if v <= mean-c {
				mask.Pix[y*mask.Width+x] = Foreground
			}
		}
	}
	return mask, nil
}

// gaussianSigma is OpenCV's default sigma for a kernel of blockSize taps.
func gaussianSigma(blockSize int) float64 {
	return 0.3*(float64(blockSize-1)*0.5-1) + 0.8
}

// gaussianRadius converts a block size to the radius bild's Gaussian takes.
// bild weights taps by exp(-x²/4r), so sigma² = 2r. The kernel it builds
// spans ±r, which for block 11 (sigma 2) is 5 taps instead of 11; the
// dropped tails carry under a tenth of the weight.
func gaussianRadius(blockSize int) float64 {
	s := gaussianSigma(blockSize)
	return s * s / 2
}
