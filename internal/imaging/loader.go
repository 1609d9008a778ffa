package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"sync"
)

// ErrorCodeImageLoad identifies a source image that could not be read or decoded.
const ErrorCodeImageLoad = "IMAGE_LOAD_ERROR"

// LoadError is returned when a source image cannot be opened or decoded.
//
// It is fatal for the request that needed the image: no text region can be
// fitted without its source pixels. Callers detect it with errors.As.
type LoadError struct {
	Path  string
	Cause error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: cannot load %q: %v", ErrorCodeImageLoad, e.Path, e.Cause)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// ImageCache provides thread-safe caching of decoded images keyed by path.
//
// Cached images are treated as read-only by every consumer in this module, so
// the same decoded screenshot can be shared by concurrent region fits.
//
// # Memory Management
//
// Cached images remain in memory until explicitly removed via Evict() or Clear().
// A long-running server processing many screenshots should evict each source
// once its task completes.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load retrieves an image from the cache or decodes it from disk if not cached.
//
// Parameters:
//   - path: Absolute or relative file path to the image. Supported formats are
//     PNG, JPEG, and GIF.
//
// Returns:
//   - image.Image: The decoded image, shared with every other caller. Treat it
//     as read-only.
//   - error: Non-nil if the file cannot be opened or decoded.
//
// The image is cached under the exact path string provided, so a relative and
// an absolute path to the same file are separate entries. Failed loads are
// not cached.
//
// # Errors
//
//   - *LoadError if the file does not exist or cannot be read
//   - *LoadError if the file is not a valid PNG, JPEG, or GIF image
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := Open(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Peek returns the cached image for path without decoding anything.
func (c *ImageCache) Peek(path string) (image.Image, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	img, ok := c.images[path]
	return img, ok
}

// Store places an already-decoded image in the cache under path.
// Used for derived images (e.g. the normalized screenshot) that are
// written to disk and immediately read back by the next stage.
func (c *ImageCache) Store(path string, img image.Image) {
	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Len reports how many images are cached.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Open decodes the image file at path without caching it.
//
// Returns a *LoadError when the file cannot be opened or decoded, or when the
// decoded image has no pixels.
func Open(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Cause: fmt.Errorf("failed to open image: %w", err)}
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &LoadError{Path: path, Cause: fmt.Errorf("failed to decode image: %w", err)}
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, &LoadError{Path: path, Cause: fmt.Errorf("image has no pixels")}
	}
	return img, nil
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// Format is derived from the file extension: "png", "jpeg", "gif", or "unknown".
	Format string `json:"format"`

	// HasAlpha indicates whether the decoded color model carries transparency.
	// Alpha is flattened onto white during normalization.
	HasAlpha bool `json:"has_alpha"`

	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image through the cache and reports its metadata.
//
// Parameters:
//   - cache: The image cache to use for loading. Must not be nil.
//   - path: Path to the image file.
//
// Returns:
//   - *ImageInfo: Dimensions, format, alpha presence and file size.
//   - error: A *LoadError if the image cannot be decoded, or a wrapped error
//     if the file cannot be stat'd.
//
// # Format Detection
//
// The format is determined by file extension:
//   - ".png" -> "png"
//   - ".jpg", ".jpeg" -> "jpeg"
//   - ".gif" -> "gif"
//   - Other extensions -> "unknown"
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	switch filepath.Ext(path) {
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	}

	hasAlpha := false
	switch img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64, *image.Paletted:
		hasAlpha = true
	}

	bounds := img.Bounds()
	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
	}, nil
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions returns the dimensions of an image without additional metadata.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &DimensionsResult{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
