package ioutils

import (
	"bytes"
	"image"
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"os"

	"golang.org/x/image/draw"
)

// Thumbnail decodes an image and scales it down to fit within the
// given maximum dimensions, preserving aspect ratio.
//
// Images already within bounds are returned as decoded. The bilinear
// kernel is used: title screenshots end up as small terminal previews,
// where a sharper kernel buys nothing.
func Thumbnail(data []byte, maxWidth, maxHeight int) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width <= maxWidth && height <= maxHeight {
		return img, nil
	}

	// Calculate new dimensions maintaining aspect ratio
	ratio := float64(width) / float64(height)
	if float64(maxWidth)/float64(maxHeight) > ratio {
		// Height is the limiting factor
		width = int(float64(maxHeight) * ratio)
		height = maxHeight
	} else {
		// Width is the limiting factor
		height = int(float64(maxWidth) / ratio)
		width = maxWidth
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	return dst, nil
}

// ThumbnailFile is Thumbnail for an image stored on disk.
func ThumbnailFile(path string, maxWidth, maxHeight int) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Thumbnail(data, maxWidth, maxHeight)
}
