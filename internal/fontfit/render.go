package fontfit

import (
	"fmt"
	"image"
	"image/draw"
	"math"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// FallbackFamily names the built-in font used when the reference font
// cannot be loaded.
const FallbackFamily = "Go Regular"

// Renderer rasterizes text into masks with one reference font.
//
// The parsed font is read-only after construction and every Render call
// builds its own face and buffers, so a Renderer may be shared by
// concurrent fits.
type Renderer struct {
	font   *opentype.Font
	family string
}

// NewRenderer loads the reference font at path (TTF, OTF, or the first face
// of a TTC collection). An empty path, or one that cannot be read or
// parsed, falls back to the embedded Go Regular font; the substitution is
// logged, never returned as an error.
func NewRenderer(path string, log logrus.FieldLogger) (*Renderer, error) {
	if path != "" {
		f, err := loadFontFile(path)
		if err == nil {
			return &Renderer{font: f, family: familyName(f, path)}, nil
		}
		if log != nil {
			log.WithFields(logrus.Fields{
				"font_path": path,
				"fallback":  FallbackFamily,
			}).WithError(err).Warn("reference font unavailable, using fallback")
		}
	}

	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse fallback font: %w", err)
	}
	return &Renderer{font: f, family: FallbackFamily}, nil
}

func loadFontFile(path string) (*opentype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".ttc") {
		coll, err := opentype.ParseCollection(data)
		if err != nil {
			return nil, fmt.Errorf("parse font collection: %w", err)
		}
		return coll.Font(0)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return f, nil
}

func familyName(f *opentype.Font, path string) string {
	var buf sfnt.Buffer
	if name, err := f.Name(&buf, sfnt.NameIDFamily); err == nil && name != "" {
		return name
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// Family returns the family name of the font in use.
func (r *Renderer) Family() string {
	return r.family
}

// Supports reports whether every non-space rune of text has a glyph.
// The first missing rune is returned when it does not.
func (r *Renderer) Supports(text string) (rune, bool) {
	var buf sfnt.Buffer
	for _, ru := range text {
		if unicode.IsSpace(ru) {
			continue
		}
		idx, err := r.font.GlyphIndex(&buf, ru)
		if err != nil || idx == 0 {
			return ru, false
		}
	}
	return 0, true
}

// Render rasterizes text at size pixels into a width x height mask. The top
// of the font's ascent is placed at anchorY+baseline and the pen starts at
// anchorX. Coverage above ForegroundThreshold becomes foreground; hinting is
// disabled so fractional sizes render distinctly and output is reproducible.
func (r *Renderer) Render(text string, size float64, baseline, width, height, anchorX, anchorY int) (*Mask, error) {
	if width <= 0 || height <= 0 {
		return nil, &RenderFailure{Text: text, FontSize: size, Reason: fmt.Sprintf("invalid canvas %dx%d", width, height)}
	}
	if size <= 0 || math.IsNaN(size) || math.IsInf(size, 0) {
		return nil, &RenderFailure{Text: text, FontSize: size, Reason: "invalid font size"}
	}
	if ru, ok := r.Supports(text); !ok {
		return nil, &RenderFailure{Text: text, FontSize: size, Rune: ru}
	}

	dst := image.NewAlpha(image.Rect(0, 0, width, height))
	if err := r.draw(dst, image.Opaque, text, size, anchorX, anchorY+baseline); err != nil {
		return nil, err
	}

	mask := NewMask(width, height)
	for y := 0; y < height; y++ {
		row := dst.Pix[y*dst.Stride : y*dst.Stride+width]
		for x, a := range row {
			if a > ForegroundThreshold {
				mask.Pix[y*width+x] = Foreground
			}
		}
	}
	return mask, nil
}

// DrawText draws text at size pixels onto dst in src, with the top of the
// ascent at (x, y). It is the same placement Render uses, so a fitted
// region redrawn at bbox.X, bbox.Y+baseline lands on the original glyphs.
func (r *Renderer) DrawText(dst draw.Image, src image.Image, text string, size float64, x, y int) error {
	if size <= 0 || math.IsNaN(size) || math.IsInf(size, 0) {
		return &RenderFailure{Text: text, FontSize: size, Reason: "invalid font size"}
	}
	return r.draw(dst, src, text, size, x, y)
}

func (r *Renderer) draw(dst draw.Image, src image.Image, text string, size float64, x, top int) error {
	face, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return &RenderFailure{Text: text, FontSize: size, Reason: err.Error()}
	}
	defer face.Close()

	d := &font.Drawer{
		Dst:  dst,
		Src:  src,
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(x),
			Y: fixed.I(top) + face.Metrics().Ascent,
		},
	}
	d.DrawString(text)
	return nil
}
