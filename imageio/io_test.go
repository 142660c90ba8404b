package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/vortex"
)

func testBuffer(w, h int, alpha uint8) *vortex.PixelBuffer {
	buf := vortex.NewPixelBuffer(w, h)
	for y := range h {
		for x := range w {
			buf.SetPixel(x, y, uint8(x*40), uint8(y*40), uint8((x+y)*20), alpha)
		}
	}
	return buf
}

func TestEncodeDecodeLossless(t *testing.T) {
	tests := []struct {
		format Format
		alpha  uint8
	}{
		{PNG, 255},
		{PNG, 128},
		{BMP, 255},
		{TIFF, 255},
		{TIFF, 128},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			in := testBuffer(5, 4, tt.alpha)
			var data bytes.Buffer
			if err := Encode(&data, in, tt.format); err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			out, err := Decode(&data)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if !out.Equal(in) {
				t.Errorf("round trip changed pixels:\n got %v\nwant %v", out.Pix(), in.Pix())
			}
		})
	}
}

func TestEncodeJPEG(t *testing.T) {
	in := testBuffer(8, 8, 255)
	var data bytes.Buffer
	if err := Encode(&data, in, JPEG); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	out, err := Decode(&data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !out.SameShape(in) {
		t.Errorf("JPEG round trip shape = %dx%d, want 8x8", out.Width(), out.Height())
	}
}

func TestEncodeErrors(t *testing.T) {
	var data bytes.Buffer
	if err := Encode(&data, testBuffer(1, 1, 255), Format("xcf")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Encode(xcf) error = %v, want ErrUnsupportedFormat", err)
	}
	if err := Encode(&data, nil, PNG); !errors.Is(err, vortex.ErrInvalidBufferShape) {
		t.Errorf("Encode(nil) error = %v, want ErrInvalidBufferShape", err)
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := LoadBytes(nil); !errors.Is(err, ErrEmptyData) {
		t.Errorf("LoadBytes(nil) error = %v, want ErrEmptyData", err)
	}
	if _, err := LoadBytes([]byte("definitely not an image")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("LoadBytes(garbage) error = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.png")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want ErrNotExist", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"a.png", PNG, false},
		{"a.PNG", PNG, false},
		{"dir/a.jpg", JPEG, false},
		{"a.jpeg", JPEG, false},
		{"a.bmp", BMP, false},
		{"a.tif", TIFF, false},
		{"a.tiff", TIFF, false},
		{"a.gif", GIF, false},
		{"a.webp", "", true},
		{"noext", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatFromPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	in := testBuffer(6, 3, 255)

	for _, name := range []string{"out.png", "out.bmp", "out.tiff"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := Save(path, in); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			out, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if !out.Equal(in) {
				t.Error("Save/Load round trip changed pixels")
			}
		})
	}

	if err := Save(filepath.Join(dir, "out.xyz"), in); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Save(xyz) error = %v, want ErrUnsupportedFormat", err)
	}
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var data bytes.Buffer
	if err := png.Encode(&data, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return data.Bytes()
}

func TestMaxWidth(t *testing.T) {
	wide := image.NewNRGBA(image.Rect(0, 0, 2048, 20))
	for i := range wide.Pix {
		wide.Pix[i] = 200
	}
	data := encodePNG(t, wide)

	tests := []struct {
		name  string
		max   int
		wantW int
		wantH int
	}{
		{"downscaled", DefaultMaxWidth, 1024, 10},
		{"narrower than limit", 4096, 2048, 20},
		{"disabled", 0, 2048, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := LoadBytes(data, WithMaxWidth(tt.max))
			if err != nil {
				t.Fatalf("LoadBytes() error = %v", err)
			}
			if buf.Width() != tt.wantW || buf.Height() != tt.wantH {
				t.Errorf("size = %dx%d, want %dx%d", buf.Width(), buf.Height(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestDownscaleMinimumHeight(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 4000, 1))
	dst := Downscale(src, 100)
	if got := dst.Bounds().Size(); got != image.Pt(100, 1) {
		t.Errorf("Downscale() size = %v, want (100,1)", got)
	}
}

func TestDownscaleDegenerate(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 3, 2))
	src.SetGray(1, 1, color.Gray{Y: 77})

	tests := []struct {
		name string
		img  image.Image
		w    int
		want image.Point
	}{
		{"zero width source", image.NewGray(image.Rect(0, 0, 0, 5)), 10, image.Pt(0, 5)},
		{"zero target width", src, 0, image.Pt(3, 2)},
		{"negative target width", src, -4, image.Pt(3, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := Downscale(tt.img, tt.w)
			if got := dst.Bounds().Size(); got != tt.want {
				t.Errorf("Downscale() size = %v, want %v", got, tt.want)
			}
		})
	}

	if got := Downscale(src, 0).NRGBAAt(1, 1); got != (color.NRGBA{77, 77, 77, 255}) {
		t.Errorf("unchanged pixel = %v, want gray 77", got)
	}
}

func TestDecodeConvertsToNRGBA(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 2, 1))
	gray.SetGray(0, 0, color.Gray{Y: 10})
	gray.SetGray(1, 0, color.Gray{Y: 250})

	buf, err := LoadBytes(encodePNG(t, gray))
	if err != nil {
		t.Fatalf("LoadBytes() error = %v", err)
	}
	want := []uint8{10, 10, 10, 255, 250, 250, 250, 255}
	if !bytes.Equal(buf.Pix(), want) {
		t.Errorf("Pix() = %v, want %v", buf.Pix(), want)
	}
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	var want []*vortex.PixelBuffer
	for i := range 5 {
		buf := testBuffer(i+1, 2, 255)
		path := filepath.Join(dir, fmt.Sprintf("in%d.png", i))
		if err := Save(path, buf); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		paths = append(paths, path)
		want = append(want, buf)
	}

	for _, workers := range []int{1, 3, 0} {
		got, err := LoadAll(paths, workers)
		if err != nil {
			t.Fatalf("LoadAll(workers=%d) error = %v", workers, err)
		}
		for i := range want {
			if !got[i].Equal(want[i]) {
				t.Errorf("workers=%d: image %d out of order or changed", workers, i)
			}
		}
	}

	missing := append(append([]string(nil), paths...), filepath.Join(dir, "missing.png"))
	if _, err := LoadAll(missing, 2); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadAll(missing) error = %v, want ErrNotExist", err)
	}
}
