// Package texture decodes texture images and uploads them to OpenGL.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
)

// ErrUnsupportedFormat is returned for image extensions no decoder handles.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Decode decodes image bytes. name selects the decoder by extension; TGA has
// no magic number so it is only recognized by its .tga extension.
func Decode(name string, data []byte) (*image.RGBA, error) {
	var (
		img image.Image
		err error
	)

	switch strings.ToLower(filepath.Ext(name)) {
	case ".tga":
		img, err = DecodeTGA(data)
	case ".png", ".jpg", ".jpeg", ".bmp":
		img, _, err = image.Decode(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}

	return ToRGBA(img), nil
}

// DecodeFile reads and decodes an image file.
func DecodeFile(path string) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(path, data)
}

// ToRGBA converts any image to *image.RGBA with a zero origin.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}
