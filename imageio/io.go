package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/gogpu/vortex"
	"github.com/gogpu/vortex/internal/parallel"
)

// DefaultMaxWidth is the width images are downscaled to when loaded for
// interactive use.
const DefaultMaxWidth = 1024

// DefaultJPEGQuality is used when encoding JPEG output.
const DefaultJPEGQuality = 90

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the image format is not supported.
	ErrUnsupportedFormat = errors.New("imageio: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("imageio: empty data")
)

// Format identifies an encoded image format.
type Format string

// Encodable formats.
const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
	GIF  Format = "gif"
)

// FormatFromPath returns the format implied by the file extension of path.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".jpg", ".jpeg":
		return JPEG, nil
	case ".bmp":
		return BMP, nil
	case ".tif", ".tiff":
		return TIFF, nil
	case ".gif":
		return GIF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Option configures decoding.
type Option func(*decodeOptions)

type decodeOptions struct {
	maxWidth int
}

// WithMaxWidth downscales decoded images wider than w to width w, keeping
// the aspect ratio. Zero or a negative w disables downscaling.
func WithMaxWidth(w int) Option {
	return func(o *decodeOptions) {
		o.maxWidth = w
	}
}

// Load loads an image from the given file path, auto-detecting the format.
// Supported formats: PNG, JPEG, GIF, BMP, TIFF, WebP.
func Load(path string, opts ...Option) (*vortex.PixelBuffer, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("imageio: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f, opts...)
}

// LoadBytes decodes an image from a byte slice, auto-detecting the format.
func LoadBytes(data []byte, opts ...Option) (*vortex.PixelBuffer, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	return Decode(bytes.NewReader(data), opts...)
}

// Decode decodes an image from the given reader, auto-detecting the format.
func Decode(r io.Reader, opts ...Option) (*vortex.PixelBuffer, error) {
	var o decodeOptions
	for _, opt := range opts {
		opt(&o)
	}

	img, format, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
		}
		return nil, fmt.Errorf("imageio: decode: %w", err)
	}

	b := img.Bounds()
	if o.maxWidth > 0 && b.Dx() > o.maxWidth {
		img = Downscale(img, o.maxWidth)
		vortex.Logger().Debug("imageio: downscaled",
			"format", format,
			"from_width", b.Dx(), "from_height", b.Dy(),
			"to_width", img.Bounds().Dx(), "to_height", img.Bounds().Dy())
	}
	return vortex.FromImage(img), nil
}

// Downscale resamples img to width w with Catmull-Rom interpolation,
// preserving the aspect ratio. The height never drops below one pixel.
// An empty img or a non-positive w returns img unchanged, converted to NRGBA.
func Downscale(img image.Image, w int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() == 0 || w <= 0 {
		dst := image.NewNRGBA(b)
		draw.Draw(dst, b, img, b.Min, draw.Src)
		return dst
	}
	h := b.Dy() * w / b.Dx()
	if h < 1 {
		h = 1
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Save writes buf to path in the format implied by its extension.
func Save(path string, buf *vortex.PixelBuffer) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("imageio: create file: %w", err)
	}

	if err := Encode(f, buf, format); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// Encode writes buf to w in the given format.
func Encode(w io.Writer, buf *vortex.PixelBuffer, format Format) error {
	if err := buf.Validate(); err != nil {
		return err
	}
	img := buf.ToNRGBA()

	var err error
	switch format {
	case PNG:
		err = png.Encode(w, img)
	case JPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: DefaultJPEGQuality})
	case BMP:
		err = bmp.Encode(w, img)
	case TIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case GIF:
		err = gif.Encode(w, img, nil)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("imageio: encode %s: %w", format, err)
	}
	return nil
}

// LoadAll loads every path, decoding up to workers files at once.
// workers <= 0 uses GOMAXPROCS. Results are in path order. If any file
// fails, the error of the first failing path is returned.
func LoadAll(paths []string, workers int, opts ...Option) ([]*vortex.PixelBuffer, error) {
	bufs := make([]*vortex.PixelBuffer, len(paths))
	errs := make([]error, len(paths))

	var pool *parallel.WorkerPool
	if len(paths) > 1 && workers != 1 {
		pool = parallel.NewWorkerPool(min(workers, len(paths)))
		defer pool.Close()
	}
	parallel.ForEach(pool, len(paths), func(i int) {
		bufs[i], errs[i] = Load(paths[i], opts...)
	})

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("%s: %w", paths[i], err)
		}
	}
	return bufs, nil
}
