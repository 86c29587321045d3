// Package texture decodes images and uploads them as GL textures.
package texture

import (
	"fmt"
	"image"
	"image/color"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const tgaHeaderSize = 18

// tgaReader walks TGA pixel data and writes into an RGBA image in file order.
type tgaReader struct {
	img         *image.RGBA
	data        []byte
	pos         int
	bpp         int // bytes per pixel
	width       int
	height      int
	topToBottom bool
	written     int
}

func (r *tgaReader) pixel() (color.RGBA, bool) {
	if r.pos+r.bpp > len(r.data) {
		return color.RGBA{}, false
	}
	p := r.data[r.pos : r.pos+r.bpp]
	r.pos += r.bpp
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if r.bpp == 4 {
		c.A = p[3]
	}
	return c, true
}

func (r *tgaReader) put(c color.RGBA) {
	x := r.written % r.width
	y := r.written / r.width
	if !r.topToBottom {
		y = r.height - 1 - y
	}
	r.img.SetRGBA(x, y, c)
	r.written++
}

func (r *tgaReader) done() bool {
	return r.written >= r.width*r.height
}

// DecodeTGA decodes an uncompressed (type 2) or RLE (type 10) true-color TGA.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("TGA data too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bitsPerPixel := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("%w: color-mapped TGA", ErrUnsupportedFormat)
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("%w: TGA type %d", ErrUnsupportedFormat, imageType)
	}
	if bitsPerPixel != 24 && bitsPerPixel != 32 {
		return nil, fmt.Errorf("%w: TGA bit depth %d", ErrUnsupportedFormat, bitsPerPixel)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}

	r := &tgaReader{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		data:        data[offset:],
		bpp:         bitsPerPixel / 8,
		width:       width,
		height:      height,
		topToBottom: descriptor&0x20 != 0,
	}

	if imageType == TGATypeUncompressed {
		if len(r.data) < width*height*r.bpp {
			return nil, fmt.Errorf("TGA pixel data truncated")
		}
		for !r.done() {
			c, _ := r.pixel()
			r.put(c)
		}
		return r.img, nil
	}

	for !r.done() && r.pos < len(r.data) {
		packet := r.data[r.pos]
		r.pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			// Run: one pixel repeated count times
			c, ok := r.pixel()
			if !ok {
				break
			}
			for i := 0; i < count && !r.done(); i++ {
				r.put(c)
			}
			continue
		}

		// Raw: count literal pixels
		for i := 0; i < count && !r.done(); i++ {
			c, ok := r.pixel()
			if !ok {
				break
			}
			r.put(c)
		}
	}

	return r.img, nil
}
