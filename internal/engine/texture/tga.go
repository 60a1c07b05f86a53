package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

var (
	ErrTruncatedTGA   = errors.New("truncated TGA data")
	ErrUnsupportedTGA = errors.New("unsupported TGA")
)

// tgaReader walks TGA pixel data and places pixels in the destination image.
type tgaReader struct {
	img         *image.RGBA
	data        []byte
	pos         int
	width       int
	height      int
	bpp         int // Bytes per pixel
	topToBottom bool
}

// next reads one BGR(A) pixel.
func (r *tgaReader) next() (color.RGBA, bool) {
	if r.pos+r.bpp > len(r.data) {
		return color.RGBA{}, false
	}
	p := r.data[r.pos:]
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if r.bpp == 4 {
		c.A = p[3]
	}
	r.pos += r.bpp
	return c, true
}

// put stores the n-th pixel in file order.
func (r *tgaReader) put(n int, c color.RGBA) {
	x, y := n%r.width, n/r.width
	if !r.topToBottom {
		y = r.height - 1 - y
	}
	r.img.SetRGBA(x, y, c)
}

// DecodeTGA decodes uncompressed (type 2) and RLE (type 10) true-color TGA
// images at 24 or 32 bits per pixel.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("%w: header", ErrTruncatedTGA)
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bits := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("%w: color-mapped", ErrUnsupportedTGA)
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("%w: type %d", ErrUnsupportedTGA, imageType)
	}
	if bits != 24 && bits != 32 {
		return nil, fmt.Errorf("%w: %d bits per pixel", ErrUnsupportedTGA, bits)
	}

	offset := 18 + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("%w: id field", ErrTruncatedTGA)
	}

	r := &tgaReader{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		data:        data[offset:],
		width:       width,
		height:      height,
		bpp:         bits / 8,
		topToBottom: descriptor&0x20 != 0,
	}

	total := width * height
	if imageType == TGATypeUncompressed {
		if len(r.data) < total*r.bpp {
			return nil, fmt.Errorf("%w: pixel data", ErrTruncatedTGA)
		}
		for n := 0; n < total; n++ {
			c, _ := r.next()
			r.put(n, c)
		}
		return r.img, nil
	}

	n := 0
	for n < total && r.pos < len(r.data) {
		packet := r.data[r.pos]
		r.pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			c, ok := r.next()
			if !ok {
				break
			}
			for i := 0; i < count && n < total; i++ {
				r.put(n, c)
				n++
			}
			continue
		}

		for i := 0; i < count && n < total; i++ {
			c, ok := r.next()
			if !ok {
				break
			}
			r.put(n, c)
			n++
		}
	}

	return r.img, nil
}
