package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"

	_ "github.com/xfmoulet/qoi" // Register QOI format decoder
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/ironsheep/image-editor-mcp/internal/raster"
)

// ImageCache provides thread-safe caching of decoded grids keyed by file path.
//
// Once a file is decoded, subsequent Load calls for the same path return the
// cached grid without disk I/O. Grids are never mutated by the engine, so the
// same cached grid may be handed to any number of concurrent operations.
//
// Cached grids remain in memory until removed via Evict or Clear.
type ImageCache struct {
	mu    sync.RWMutex
	grids map[string]*raster.Grid
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		grids: make(map[string]*raster.Grid),
	}
}

// Load retrieves a grid from the cache or decodes it from disk if not cached.
//
// Supported formats are PNG, JPEG, GIF, BMP, TIFF, WebP and QOI. The decoded
// image is converted to non-premultiplied 8-bit RGBA. Different path strings
// for the same file result in separate cache entries.
func (c *ImageCache) Load(path string) (*raster.Grid, error) {
	c.mu.RLock()
	if g, ok := c.grids[path]; ok {
		c.mu.RUnlock()
		return g, nil
	}
	c.mu.RUnlock()

	img, _, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	g := raster.FromImage(img)

	c.mu.Lock()
	c.grids[path] = g
	c.mu.Unlock()

	return g, nil
}

// Put stores g under path, replacing any cached entry. Used after an
// operation writes its result so later calls see the new pixels.
func (c *ImageCache) Put(path string, g *raster.Grid) {
	c.mu.Lock()
	c.grids[path] = g
	c.mu.Unlock()
}

// Len reports the number of cached grids.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.grids)
}

// Clear removes all grids from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.grids = make(map[string]*raster.Grid)
	c.mu.Unlock()
}

// Evict removes a specific grid from the cache. Unknown paths are ignored.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.grids, path)
	c.mu.Unlock()
}

func decodeFile(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return img, format, nil
}

// ImageInfo contains metadata about an image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the decoder name reported by the file header: "png", "jpeg",
	// "gif", "bmp", "tiff", "webp" or "qoi".
	Format string `json:"format"`

	// HasAlpha is true when at least one pixel is not fully opaque.
	HasAlpha bool `json:"has_alpha"`

	// Binary is true when every color channel is 0 or 255, the precondition
	// of the morphological operators.
	Binary bool `json:"binary"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image into the cache and reports its metadata.
//
// The format comes from the file header rather than the extension.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	g, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()
	_, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read image header: %w", err)
	}

	hasAlpha := false
	for _, p := range g.Pix {
		if p.A != 255 {
			hasAlpha = true
			break
		}
	}

	return &ImageInfo{
		Width:         g.Width,
		Height:        g.Height,
		Format:        format,
		HasAlpha:      hasAlpha,
		Binary:        raster.ValidateBinary(g) == nil,
		FileSizeBytes: stat.Size(),
	}, nil
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions returns the dimensions of an image, loading it into the cache
// if not already present.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	g, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	return &DimensionsResult{Width: g.Width, Height: g.Height}, nil
}
