package fontfit

import "image"

// Foreground is the intensity stored for glyph pixels. Background pixels are 0.
const Foreground = 255

// ForegroundThreshold is the intensity above which a pixel counts as glyph
// when comparing masks.
const ForegroundThreshold = 127

// Mask is a single-channel 0/255 grid with the dimensions of the region it
// was produced for. Pix is row-major with stride Width.
type Mask struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewMask returns an all-background mask of the given size.
func NewMask(width, height int) *Mask {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Mask{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

// MaskFromGray thresholds a grayscale image into a mask: values above
// ForegroundThreshold become foreground.
func MaskFromGray(g *image.Gray) *Mask {
	b := g.Bounds()
	m := NewMask(b.Dx(), b.Dy())
	for y := 0; y < m.Height; y++ {
		row := g.Pix[y*g.Stride : y*g.Stride+m.Width]
		for x, v := range row {
			if v > ForegroundThreshold {
				m.Pix[y*m.Width+x] = Foreground
			}
		}
	}
	return m
}

// At reports whether (x, y) is foreground. Out-of-range coordinates are background.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.Pix[y*m.Width+x] > ForegroundThreshold
}

// Set marks (x, y) as foreground or background.
func (m *Mask) Set(x, y int, on bool) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return
	}
	if on {
		m.Pix[y*m.Width+x] = Foreground
	} else {
		m.Pix[y*m.Width+x] = 0
	}
}

// Count returns the number of foreground pixels.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.Pix {
		if v > ForegroundThreshold {
			n++
		}
	}
	return n
}

// SameSize reports whether two masks share dimensions.
func (m *Mask) SameSize(o *Mask) bool {
	return m != nil && o != nil && m.Width == o.Width && m.Height == o.Height
}
