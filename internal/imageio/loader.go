package imageio

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/anthonynsimon/bild/clone"
	"golang.org/x/image/bmp"
)

// Cache provides thread-safe caching of decoded images to avoid redundant
// disk reads. A single cache is shared across all stages of a mosaic run.
//
// Cached images remain in memory until explicitly removed via Evict() or
// Clear(). For very large tile pools, call Clear() between runs to release
// memory.
type Cache struct {
	mu     sync.RWMutex
	images map[string]*image.RGBA
}

// NewCache creates and initializes a new empty image cache.
func NewCache() *Cache {
	return &Cache{
		images: make(map[string]*image.RGBA),
	}
}

// Load retrieves an image from the cache or decodes it from disk if not
// cached. Decoded images are normalized to *image.RGBA so callers can index
// pixels directly regardless of the source color model.
//
// The image is cached using the exact path string provided; different paths
// to the same file result in separate cache entries.
func (c *Cache) Load(path string) (*image.RGBA, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	decoded, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	img := clone.AsRGBA(decoded)

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Clear removes all images from the cache, freeing the associated memory.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]*image.RGBA)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
func (c *Cache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Dimensions returns the width and height of an image without keeping its
// pixels. It reads only the image header.
func Dimensions(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode image header: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// Save encodes img to path, choosing the codec from the file extension.
// Supported extensions are ".bmp", ".png", ".jpg" and ".jpeg".
func Save(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp":
		err = bmp.Encode(f, img)
	case ".png":
		err = png.Encode(f, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, nil)
	default:
		return fmt.Errorf("unsupported output format: %s", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}

// SupportedExt reports whether ext (for example ".png") is an image file
// extension this package can decode.
func SupportedExt(ext string) bool {
	switch strings.ToLower(ext) {
	case ".bmp", ".png", ".jpg", ".jpeg", ".gif":
		return true
	default:
		return false
	}
}

// ListImages returns the paths of all regular files with a supported image
// extension directly inside dir, sorted lexicographically by file name.
// Sub-directories and other non-regular entries are skipped.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read tile directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if !SupportedExt(filepath.Ext(entry.Name())) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	// os.ReadDir sorts by name already; keep the guarantee explicit in case
	// the entries ever come from another source.
	sort.Strings(paths)
	return paths, nil
}
