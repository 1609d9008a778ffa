//go:build gocv

package fontfit

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// adaptiveThreshold runs OpenCV's Gaussian adaptive threshold with an
// inverted binary output, so glyph strokes are 255.
func adaptiveThreshold(crop image.Image, blockSize int, c float64) (*Mask, error) {
	mat, err := gocv.ImageToMatRGB(crop)
	if err != nil {
		return nil, fmt.Errorf("convert crop to mat: %w", err)
	}
	defer mat.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)

	binary := gocv.NewMat()
	defer binary.Close()
	gocv.AdaptiveThreshold(gray, &binary, 255, gocv.AdaptiveThresholdGaussian,
		gocv.ThresholdBinaryInv, blockSize, float32(c))

	out, err := binary.ToImage()
	if err != nil {
		return nil, fmt.Errorf("convert mat to image: %w", err)
	}
	g, ok := out.(*image.Gray)
	if !ok {
		return nil, fmt.Errorf("unexpected threshold output %T", out)
	}
	return MaskFromGray(g), nil
}
