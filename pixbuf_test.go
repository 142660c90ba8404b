package vortex

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestNewPixelBuffer(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantLen       int
	}{
		{"2x2", 2, 2, 16},
		{"1x1", 1, 1, 4},
		{"wide", 1024, 1, 4096},
		{"empty", 0, 0, 0},
		{"zero height", 5, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewPixelBuffer(tt.width, tt.height)
			if b.Width() != tt.width || b.Height() != tt.height {
				t.Errorf("size = %dx%d, want %dx%d", b.Width(), b.Height(), tt.width, tt.height)
			}
			if b.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", b.Len(), tt.wantLen)
			}
			if err := b.Validate(); err != nil {
				t.Errorf("Validate() = %v", err)
			}
		})
	}
}

func TestNewPixelBufferNegativePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewPixelBuffer(-1, 1) did not panic")
		}
	}()
	NewPixelBuffer(-1, 1)
}

func TestFromPixels(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		n             int
		wantErr       bool
	}{
		{"exact", 2, 2, 16, false},
		{"empty", 0, 0, 0, false},
		{"short", 2, 2, 15, true},
		{"long", 2, 2, 17, true},
		{"missing alpha", 2, 2, 12, true},
		{"negative width", -1, 2, 0, true},
		{"negative height", 2, -1, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := FromPixels(tt.width, tt.height, make([]uint8, tt.n))
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidBufferShape) {
					t.Errorf("FromPixels() error = %v, want ErrInvalidBufferShape", err)
				}
				if b != nil {
					t.Error("FromPixels() returned a buffer on error")
				}
				return
			}
			if err != nil {
				t.Fatalf("FromPixels() error = %v", err)
			}
		})
	}
}

func TestFromPixelsSharesSlice(t *testing.T) {
	pix := make([]uint8, 4)
	b, err := FromPixels(1, 1, pix)
	if err != nil {
		t.Fatal(err)
	}
	pix[0] = 42
	if r, _, _, _ := b.PixelAt(0, 0); r != 42 {
		t.Errorf("PixelAt(0,0).R = %d, want 42", r)
	}
}

func TestValidateNil(t *testing.T) {
	var b *PixelBuffer
	if err := b.Validate(); !errors.Is(err, ErrInvalidBufferShape) {
		t.Errorf("nil Validate() = %v, want ErrInvalidBufferShape", err)
	}
}

func TestPixelAccess(t *testing.T) {
	b := NewPixelBuffer(3, 2)
	b.SetPixel(2, 1, 10, 20, 30, 40)
	if r, g, bl, a := b.PixelAt(2, 1); r != 10 || g != 20 || bl != 30 || a != 40 {
		t.Errorf("PixelAt(2,1) = (%d,%d,%d,%d)", r, g, bl, a)
	}
	// Row-major, 4 bytes per pixel.
	if got := b.Pix()[(1*3+2)*4:]; got[0] != 10 || got[3] != 40 {
		t.Errorf("pixel stored at wrong offset: %v", b.Pix())
	}

	b.SetPixel(3, 0, 1, 1, 1, 1)
	b.SetPixel(-1, 0, 1, 1, 1, 1)
	if r, g, bl, a := b.PixelAt(3, 0); r|g|bl|a != 0 {
		t.Error("out-of-bounds PixelAt returned non-zero")
	}
	for i, v := range b.Pix() {
		if i < 20 && v != 0 {
			t.Fatalf("out-of-bounds SetPixel wrote byte %d", i)
		}
	}
}

func TestCloneEqual(t *testing.T) {
	b := NewPixelBuffer(2, 2)
	b.Fill(1, 2, 3, 4)
	c := b.Clone()
	if !b.Equal(c) {
		t.Fatal("clone differs from original")
	}
	c.SetPixel(0, 0, 9, 9, 9, 9)
	if b.Equal(c) {
		t.Error("clone shares memory with original")
	}
	if b.Equal(nil) {
		t.Error("Equal(nil) = true")
	}
	if b.SameShape(NewPixelBuffer(4, 1)) {
		t.Error("2x2 and 4x1 reported same shape")
	}
}

func TestImageInterop(t *testing.T) {
	b := NewPixelBuffer(2, 1)
	b.SetPixel(0, 0, 255, 0, 0, 128)
	b.SetPixel(1, 0, 0, 255, 0, 255)

	var img image.Image = b
	if got := img.At(0, 0); got != (color.NRGBA{R: 255, A: 128}) {
		t.Errorf("At(0,0) = %v", got)
	}
	if img.Bounds() != image.Rect(0, 0, 2, 1) {
		t.Errorf("Bounds() = %v", img.Bounds())
	}

	n := b.ToNRGBA()
	back := FromImage(n)
	if !back.Equal(b) {
		t.Errorf("NRGBA round trip = %v, want %v", back.Pix(), b.Pix())
	}
}

func TestFromImageOffsetBounds(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	src.SetNRGBA(2, 2, color.NRGBA{R: 7, G: 8, B: 9, A: 10})
	sub := src.SubImage(image.Rect(2, 2, 4, 4))

	b := FromImage(sub)
	if b.Width() != 2 || b.Height() != 2 {
		t.Fatalf("size = %dx%d, want 2x2", b.Width(), b.Height())
	}
	if r, g, bl, a := b.PixelAt(0, 0); r != 7 || g != 8 || bl != 9 || a != 10 {
		t.Errorf("PixelAt(0,0) = (%d,%d,%d,%d)", r, g, bl, a)
	}
}

func TestFromImageConverts(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 1, 1))
	gray.SetGray(0, 0, color.Gray{Y: 77})
	b := FromImage(gray)
	if r, g, bl, a := b.PixelAt(0, 0); r != 77 || g != 77 || bl != 77 || a != 255 {
		t.Errorf("PixelAt(0,0) = (%d,%d,%d,%d), want (77,77,77,255)", r, g, bl, a)
	}
}

func BenchmarkClone(b *testing.B) {
	buf := NewPixelBuffer(1024, 768)
	b.ReportAllocs()
	b.SetBytes(int64(buf.Len()))
	for b.Loop() {
		_ = buf.Clone()
	}
}
