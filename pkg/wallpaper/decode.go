package wallpaper

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decoder turns an image file into an in-memory bitmap.
type Decoder interface {
	Decode(path string) (image.Image, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(path string) (image.Image, error)

// Decode calls f(path).
func (f DecoderFunc) Decode(path string) (image.Image, error) {
	return f(path)
}

// imagingDecoder decodes with the registered image formats and applies the EXIF orientation.
type imagingDecoder struct{}

// Decode opens and decodes the file at path.
func (imagingDecoder) Decode(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("decoding %s: empty image", path)
	}
	return img, nil
}

// NewDecoder returns the default decoder: JPEG, PNG, GIF, WebP, BMP and TIFF.
func NewDecoder() Decoder {
	return imagingDecoder{}
}
