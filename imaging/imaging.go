// Package imaging builds standard library image.Image values from decoded
// raster pages. It never reinterprets color spaces beyond the handful of
// combinations the standard library already models; see ErrUnsupported.
package imaging

import (
	"errors"
	"image"
	"image/color"
	"io"

	"github.com/go-raster/printraster/raster"
)

// ErrUnsupported is returned for a color space/bit-depth/color-order
// combination this package does not know how to turn into an image.Image.
var ErrUnsupported = errors.New("imaging: unsupported color space or bit depth")

// FromCUPSPage decodes a full CUPS page into an image.Image. It consumes the
// page's decoder entirely: no further reads from p.Decoder are valid
// afterwards.
//
// Supported combinations:
//   - chunky, 1-bit, ColorSpaceBlack  -> *Monochrome
//   - chunky, 8-bit, ColorSpaceBlack  -> *image.Gray
//   - chunky, 8-bit, ColorSpaceCMYK   -> *image.CMYK
//
// Banded and planar color orders, and any other color space, are out of
// scope and return ErrUnsupported: interpreting them correctly needs a
// color management step this package does not perform.
func FromCUPSPage(p *raster.Page) (image.Image, error) {
	if p.Header.ColorOrder != raster.ChunkyPixels {
		return nil, ErrUnsupported
	}
	b, err := io.ReadAll(p.Decoder)
	if err != nil {
		return nil, err
	}

	rect := image.Rect(0, 0, int(p.Header.Width), int(p.Header.Height))
	stride := int(p.Header.BytesPerLine)

	switch p.Header.ColorSpace {
	case raster.ColorSpaceBlack:
		switch p.Header.BitsPerColor {
		case 1:
			return &Monochrome{Pix: b, Stride: stride, Rect: rect}, nil
		case 8:
			for i, v := range b {
				b[i] = 255 - v
			}
			return &image.Gray{Pix: b, Stride: stride, Rect: rect}, nil
		default:
			return nil, ErrUnsupported
		}
	case raster.ColorSpaceCMYK:
		if p.Header.BitsPerColor != 8 {
			return nil, ErrUnsupported
		}
		return &image.CMYK{Pix: b, Stride: stride, Rect: rect}, nil
	default:
		return nil, ErrUnsupported
	}
}

// Monochrome is an in-memory monochrome image with 8 pixels packed per byte,
// most significant bit first. Its At method returns color.Gray values,
// treating a set bit as black.
type Monochrome struct {
	Pix    []uint8
	Stride int
	Rect   image.Rectangle
}

var _ image.Image = (*Monochrome)(nil)

func (img *Monochrome) ColorModel() color.Model { return color.GrayModel }

func (img *Monochrome) Bounds() image.Rectangle { return img.Rect }

func (img *Monochrome) At(x, y int) color.Color {
	idx := img.PixOffset(x, y)
	if img.Pix[idx]<<uint(x%8)&128 == 0 {
		return color.Gray{Y: 255}
	}
	return color.Gray{Y: 0}
}

// PixOffset returns the index into Pix for the byte containing pixel (x, y).
func (img *Monochrome) PixOffset(x, y int) int {
	return (y-img.Rect.Min.Y)*img.Stride + (x-img.Rect.Min.X)/8
}
