// Package pipeline runs a screenshot through normalization, text detection,
// font-size fitting and reporting, and persists the result.
package pipeline

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/fontfit-mcp/internal/config"
	"github.com/ironsheep/fontfit-mcp/internal/fontfit"
	"github.com/ironsheep/fontfit-mcp/internal/imaging"
	"github.com/ironsheep/fontfit-mcp/internal/ocr"
	"github.com/ironsheep/fontfit-mcp/internal/report"
	"github.com/ironsheep/fontfit-mcp/internal/store"
)

// TimestampFormat is the layout of TaskResult.Timestamp.
const TimestampFormat = "20060102_150405"

// Deps are the collaborators a Service is built from.
type Deps struct {
	Config   *config.Config
	Cache    *imaging.ImageCache
	Engine   ocr.Engine
	Renderer *fontfit.Renderer
	Store    store.Store
	Log      logrus.FieldLogger
}

// Service processes screenshots. It is safe for concurrent use.
type Service struct {
	cfg      *config.Config
	cache    *imaging.ImageCache
	engine   ocr.Engine
	renderer *fontfit.Renderer
	fitter   *fontfit.Fitter
	store    store.Store
	log      logrus.FieldLogger
	overlay  color.NRGBA

	now   func() time.Time
	newID func() string
}

// New wires a Service. Config, Renderer and Store are required; a nil Cache
// gets a fresh one and a nil Engine means every Process call must supply
// detections.
func New(d Deps) (*Service, error) {
	if d.Config == nil || d.Renderer == nil || d.Store == nil {
		return nil, fmt.Errorf("config, renderer and store are required")
	}
	if d.Cache == nil {
		d.Cache = imaging.NewImageCache()
	}
	if d.Log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		d.Log = l
	}

	fitter, err := fontfit.NewFitter(d.Renderer, d.Config.SearchOptions(), d.Log)
	if err != nil {
		return nil, err
	}
	col, err := report.ParseColor(d.Config.OverlayColor, d.Config.OverlayAlpha)
	if err != nil {
		return nil, err
	}

	return &Service{
		cfg:      d.Config,
		cache:    d.Cache,
		engine:   d.Engine,
		renderer: d.Renderer,
		fitter:   fitter,
		store:    d.Store,
		log:      d.Log,
		overlay:  col,
		now:      time.Now,
		newID:    uuid.NewString,
	}, nil
}

// Build assembles a Service from configuration: the reference font (or the
// built-in fallback), Tesseract, and a Redis store when FONTFIT_REDIS_URL is
// set or a file store under the output directory otherwise. The returned
// close function releases the store.
func Build(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (*Service, func() error, error) {
	renderer, err := fontfit.NewRenderer(cfg.FontPath, log)
	if err != nil {
		return nil, nil, err
	}

	var st store.Store
	closeFn := func() error { return nil }
	if cfg.RedisURL != "" {
		rs, err := store.NewRedisStore(ctx, cfg.RedisURL, cfg.ResultTTL)
		if err != nil {
			return nil, nil, err
		}
		st, closeFn = rs, rs.Close
	} else {
		fs, err := store.NewFileStore(cfg.OutputDir)
		if err != nil {
			return nil, nil, err
		}
		st = fs
	}

	svc, err := New(Deps{
		Config:   cfg,
		Engine:   ocr.NewTesseractEngine(cfg.OCRLanguage, log),
		Renderer: renderer,
		Store:    st,
		Log:      log,
	})
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return svc, closeFn, nil
}

// Cache exposes the image cache shared with the tool handlers.
func (s *Service) Cache() *imaging.ImageCache {
	return s.cache
}

// Config returns the configuration the service was built with.
func (s *Service) Config() *config.Config {
	return s.cfg
}

// FontFamily names the reference font in use.
func (s *Service) FontFamily() string {
	return s.renderer.Family()
}

// FitRegion fits one text line of the image at imagePath.
//
// Parameters:
//   - imagePath: Screenshot to read. Decoded through the shared cache.
//   - text: The line's content as recognized.
//   - box: The line's bounding box in imagePath's pixel coordinates.
//   - minSize, maxSize: Font size search bounds; zero uses the configured
//     defaults.
//
// Returns:
//   - *fontfit.FitResult: The best candidate. FontSize is nil when nothing
//     overlapped the glyph pixels.
//   - error: *imaging.LoadError, or fontfit.ErrInvalidRegion /
//     fontfit.ErrInvalidBounds for bad arguments.
func (s *Service) FitRegion(ctx context.Context, imagePath, text string, box fontfit.BBox, minSize, maxSize int) (*fontfit.FitResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if minSize == 0 {
		minSize = s.cfg.MinSize
	}
	if maxSize == 0 {
		maxSize = s.cfg.MaxSize
	}

	img, err := s.cache.Load(imagePath)
	if err != nil {
		return nil, err
	}
	return s.fitter.FitRegion(img, text, box, minSize, maxSize)
}

// Result loads a stored task result.
func (s *Service) Result(ctx context.Context, taskID string) (*report.TaskResult, error) {
	return s.store.Load(ctx, taskID)
}

func (s *Service) outputPath(taskID, kind, ext string) string {
	return filepath.Join(s.cfg.OutputDir, fmt.Sprintf("%s_%s.%s", taskID, kind, ext))
}

func (s *Service) ensureOutputDir() error {
	if err := os.MkdirAll(s.cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return nil
}
