package vortex

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// BytesPerPixel is the number of bytes per pixel in a PixelBuffer (R, G, B, A).
const BytesPerPixel = 4

// PixelBuffer is a rectangular grid of non-premultiplied RGBA pixels.
//
// Pixels are stored row-major with no padding, 4 bytes per pixel in the
// order R, G, B, A. The pixel slice length is always width*height*4.
//
// A PixelBuffer is owned by whichever component currently holds it; it is
// not safe for concurrent use.
type PixelBuffer struct {
	width  int
	height int
	pix    []uint8
}

// NewPixelBuffer allocates a zeroed buffer of the given dimensions.
// It panics if either dimension is negative.
func NewPixelBuffer(width, height int) *PixelBuffer {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("vortex: negative buffer dimensions %dx%d", width, height))
	}
	return &PixelBuffer{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*BytesPerPixel),
	}
}

// FromPixels wraps an existing RGBA slice without copying it.
// The caller hands ownership of pix to the returned buffer.
func FromPixels(width, height int, pix []uint8) (*PixelBuffer, error) {
	if err := CheckShape(width, height, len(pix)); err != nil {
		return nil, err
	}
	return &PixelBuffer{width: width, height: height, pix: pix}, nil
}

// CheckShape reports whether a pixel slice of length n is valid for the
// given dimensions. The returned error wraps ErrInvalidBufferShape.
func CheckShape(width, height, n int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("%w: negative dimensions %dx%d", ErrInvalidBufferShape, width, height)
	}
	if want := width * height * BytesPerPixel; n != want {
		return fmt.Errorf("%w: %dx%d needs %d bytes, got %d", ErrInvalidBufferShape, width, height, want, n)
	}
	return nil
}

// Width returns the width of the buffer in pixels.
func (b *PixelBuffer) Width() int {
	return b.width
}

// Height returns the height of the buffer in pixels.
func (b *PixelBuffer) Height() int {
	return b.height
}

// Pix returns the raw pixel data (RGBA format).
// Modifying the returned slice modifies the buffer.
func (b *PixelBuffer) Pix() []uint8 {
	return b.pix
}

// Len returns the length of the pixel data in bytes.
func (b *PixelBuffer) Len() int {
	return len(b.pix)
}

// Validate checks that the pixel slice matches the dimensions. A nil buffer
// is invalid.
func (b *PixelBuffer) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidBufferShape)
	}
	return CheckShape(b.width, b.height, len(b.pix))
}

// Clone returns a deep copy of the buffer.
func (b *PixelBuffer) Clone() *PixelBuffer {
	pix := make([]uint8, len(b.pix))
	copy(pix, b.pix)
	return &PixelBuffer{width: b.width, height: b.height, pix: pix}
}

// SameShape reports whether o has the same dimensions as b.
func (b *PixelBuffer) SameShape(o *PixelBuffer) bool {
	return o != nil && b.width == o.width && b.height == o.height
}

// Equal reports whether o has the same dimensions and pixel bytes as b.
func (b *PixelBuffer) Equal(o *PixelBuffer) bool {
	return b.SameShape(o) && bytes.Equal(b.pix, o.pix)
}

// PixelAt returns the channels of the pixel at (x, y).
// Out-of-bounds coordinates return zero values.
func (b *PixelBuffer) PixelAt(x, y int) (r, g, bl, a uint8) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return 0, 0, 0, 0
	}
	i := (y*b.width + x) * BytesPerPixel
	return b.pix[i+0], b.pix[i+1], b.pix[i+2], b.pix[i+3]
}

// SetPixel sets the channels of the pixel at (x, y).
// Out-of-bounds coordinates are silently ignored.
func (b *PixelBuffer) SetPixel(x, y int, r, g, bl, a uint8) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	i := (y*b.width + x) * BytesPerPixel
	b.pix[i+0] = r
	b.pix[i+1] = g
	b.pix[i+2] = bl
	b.pix[i+3] = a
}

// Fill sets every pixel to the given color.
func (b *PixelBuffer) Fill(r, g, bl, a uint8) {
	for i := 0; i < len(b.pix); i += BytesPerPixel {
		b.pix[i+0] = r
		b.pix[i+1] = g
		b.pix[i+2] = bl
		b.pix[i+3] = a
	}
}

// ToNRGBA copies the buffer into an *image.NRGBA.
func (b *PixelBuffer) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	copy(img.Pix, b.pix)
	return img
}

// FromImage creates a buffer from any image.Image, converting to
// non-premultiplied RGBA. *image.NRGBA sources are copied row by row.
func FromImage(img image.Image) *PixelBuffer {
	bounds := img.Bounds()
	buf := NewPixelBuffer(bounds.Dx(), bounds.Dy())

	if src, ok := img.(*image.NRGBA); ok {
		rowLen := buf.width * BytesPerPixel
		for y := 0; y < buf.height; y++ {
			off := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(buf.pix[y*rowLen:(y+1)*rowLen], src.Pix[off:off+rowLen])
		}
		return buf
	}

	dst := &image.NRGBA{
		Pix:    buf.pix,
		Stride: buf.width * BytesPerPixel,
		Rect:   image.Rect(0, 0, buf.width, buf.height),
	}
	draw.Draw(dst, dst.Rect, img, bounds.Min, draw.Src)
	return buf
}

// At implements the image.Image interface.
func (b *PixelBuffer) At(x, y int) color.Color {
	r, g, bl, a := b.PixelAt(x, y)
	return color.NRGBA{R: r, G: g, B: bl, A: a}
}

// Bounds implements the image.Image interface.
func (b *PixelBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// ColorModel implements the image.Image interface.
func (b *PixelBuffer) ColorModel() color.Model {
	return color.NRGBAModel
}
