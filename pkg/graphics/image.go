package graphics

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageInfo describes an image's natural size without decoding its pixels.
type ImageInfo struct {
	Format string
	Width  int
	Height int
}

// Size returns the natural size as a vector.
func (i ImageInfo) Size() Vector {
	return Vector{X: float64(i.Width), Y: float64(i.Height)}
}

// ProbeImage reads just enough of r to report the image format and size.
// PNG, JPEG, GIF, BMP, TIFF and WebP are recognized.
func ProbeImage(r io.Reader) (ImageInfo, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return ImageInfo{}, fmt.Errorf("probe image: %w", err)
	}
	return ImageInfo{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

// ProbeImageFile is ProbeImage for a file on disk.
func ProbeImageFile(path string) (ImageInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImageInfo{}, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	return ProbeImage(f)
}
