package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/fontfit-mcp/internal/imaging"
	"github.com/ironsheep/fontfit-mcp/internal/ocr"
	"github.com/ironsheep/fontfit-mcp/internal/report"
)

// ProcessOptions adjust a single Process call.
type ProcessOptions struct {
	// DetectionsPath, when set, is a JSON file of OCR output (see
	// ocr.DecodeDetections) used instead of the engine. Its coordinates must
	// refer to the normalized image.
	DetectionsPath string
	// HideQuality drops the "(Q:...)" part of annotation labels.
	HideQuality bool
}

// Process runs the whole pipeline on the screenshot at imagePath:
//
//  1. load the image (a *imaging.LoadError aborts the task); an image
//     already in the cache is reused, otherwise it is decoded uncached
//  2. normalize to the configured width and save <task>_normalized.png
//  3. detect text lines and adapt them to regions
//  4. fit every region
//  5. write the detection, overlay and annotated images
//  6. summarize and persist the result
//
// Regions that cannot be fitted are kept with a nil size; only failures of
// the stages themselves are returned as errors.
func (s *Service) Process(ctx context.Context, imagePath string, opts ProcessOptions) (*report.TaskResult, error) {
	start := time.Now()
	taskID := s.newID()
	log := s.log.WithFields(logrus.Fields{"task_id": taskID, "image": imagePath})

	res := &report.TaskResult{
		TaskID:     taskID,
		Timestamp:  s.now().Format(TimestampFormat),
		SourcePath: imagePath,
		FontFamily: s.FontFamily(),
	}

	// reuse an image a client already loaded, but leave the cache as found
	src, ok := s.cache.Peek(imagePath)
	if !ok {
		var err error
		if src, err = imaging.Open(imagePath); err != nil {
			return nil, err
		}
	}

	if err := s.ensureOutputDir(); err != nil {
		return nil, err
	}

	normalized, norm, err := imaging.Normalize(src, s.cfg.TargetWidth)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	norm.OutputPath = s.outputPath(taskID, "normalized", "png")
	if err := imaging.Save(normalized, norm.OutputPath); err != nil {
		return nil, err
	}
	res.Normalization = norm
	res.Images.Normalized = norm.OutputPath
	log.WithFields(logrus.Fields{
		"original": fmt.Sprintf("%dx%d", norm.OriginalSize.Width, norm.OriginalSize.Height),
		"scale":    norm.ScaleFactor,
	}).Debug("image normalized")

	engine := s.engine
	if opts.DetectionsPath != "" {
		engine = &ocr.FileEngine{Path: opts.DetectionsPath}
	}
	if engine == nil {
		return nil, fmt.Errorf("no OCR engine configured and no detections supplied")
	}
	dets, err := engine.Detect(ctx, norm.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("detect text: %w", err)
	}
	regions, err := ocr.Adapt(dets, s.cfg.AdaptOptions())
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"detections": len(dets),
		"regions":    len(regions),
	}).Info("text regions detected")

	regions, err = s.fitter.FitRegions(ctx, normalized, regions, s.cfg.MinSize, s.cfg.MaxSize, s.cfg.Workers)
	if err != nil {
		return nil, fmt.Errorf("fit regions: %w", err)
	}
	res.TextRegions = regions

	res.Images.OCRDetection = s.outputPath(taskID, "ocr_detection", "jpg")
	if err := imaging.Save(report.DrawDetections(normalized, regions), res.Images.OCRDetection); err != nil {
		return nil, err
	}
	res.Images.Overlay = s.outputPath(taskID, "overlay", "jpg")
	overlay := report.RenderOverlay(normalized, regions, s.renderer, s.overlay, log)
	if err := imaging.Save(overlay, res.Images.Overlay); err != nil {
		return nil, err
	}
	res.Images.Annotated = s.outputPath(taskID, "annotated", "jpg")
	if err := imaging.Save(report.Annotate(normalized, regions, !opts.HideQuality), res.Images.Annotated); err != nil {
		return nil, err
	}

	res.Report = report.Generate(regions)
	if err := s.store.Save(ctx, res); err != nil {
		return nil, fmt.Errorf("persist result: %w", err)
	}

	log.WithFields(logrus.Fields{
		"fitted":   res.Report.FittedTexts,
		"total":    res.Report.TotalTexts,
		"duration": time.Since(start).Round(time.Millisecond),
	}).Info("task complete")
	return res, nil
}
