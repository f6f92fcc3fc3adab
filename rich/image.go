// Package rich provides the styled-content data model shared between the
// markdown translator and the tile layout engine: spans of styled text,
// the boxes they're split into, and the images a document embeds.
package rich

import (
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"
)

// Image size limits to prevent memory exhaustion from a hostile or
// corrupt embedded image.
const (
	MaxImageWidth  = 4096
	MaxImageHeight = 4096
	MaxImageBytes  = 16 * 1024 * 1024 // 16MB uncompressed, RGBA at 4 bytes/pixel
)

// LoadImage loads an image from a file path. Supports PNG, JPEG, and GIF
// (first frame only for GIF, since image.Decode only ever decodes one frame).
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width > MaxImageWidth || height > MaxImageHeight {
		return nil, fmt.Errorf("image too large: %dx%d (max %dx%d)",
			width, height, MaxImageWidth, MaxImageHeight)
	}
	if uncompressed := width * height * 4; uncompressed > MaxImageBytes {
		return nil, fmt.Errorf("image uncompressed size exceeds limit: %d bytes (max %d bytes)",
			uncompressed, MaxImageBytes)
	}

	return img, nil
}

// CachedImage is a decoded embedded image plus its failure state, if any.
// A failed load is cached too (Err set, Original nil) so a broken
// ![](missing.png) reference is not retried on every rebuild.
type CachedImage struct {
	Path     string
	Original image.Image
	Width    int
	Height   int
	Err      error
}

// ImageCache is a bounded, FIFO-eviction cache of decoded embedded images,
// keyed by source path. Insertion order is kept in a slice; once the cache
// is full, adding an image drops the oldest one.
type ImageCache struct {
	maxSize int
	order   []string // insertion order, oldest first
	entries map[string]*CachedImage
}

// NewImageCache creates an empty cache holding at most maxSize images.
func NewImageCache(maxSize int) *ImageCache {
	return &ImageCache{
		maxSize: maxSize,
		entries: make(map[string]*CachedImage),
	}
}

// Get returns the cached entry for path without triggering a load.
func (c *ImageCache) Get(path string) (*CachedImage, bool) {
	e, ok := c.entries[path]
	return e, ok
}

// Load returns the cached entry for path, loading and caching it first if
// necessary. A load failure is cached and returned as a non-nil error on
// every subsequent call for the same path, without re-reading the file.
func (c *ImageCache) Load(path string) (*CachedImage, error) {
	if e, ok := c.entries[path]; ok {
		return e, e.Err
	}

	entry := &CachedImage{Path: path}
	img, err := LoadImage(path)
	if err != nil {
		entry.Err = err
	} else {
		entry.Original = img
		b := img.Bounds()
		entry.Width, entry.Height = b.Dx(), b.Dy()
	}

	c.insert(path, entry)
	return entry, entry.Err
}

func (c *ImageCache) insert(path string, entry *CachedImage) {
	c.entries[path] = entry
	c.order = append(c.order, path)
	for len(c.order) > c.maxSize {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
}

// Clear drops every cached entry.
func (c *ImageCache) Clear() {
	c.order = nil
	c.entries = make(map[string]*CachedImage)
}
