package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/gogpu/vortex"
	"github.com/gogpu/vortex/backend"
	"github.com/gogpu/vortex/bench"
	"github.com/gogpu/vortex/imageio"
)

// input is one decoded image and the name it is reported under.
type input struct {
	name string
	buf  *vortex.PixelBuffer
}

func run(ctx context.Context, cfg config, stdout io.Writer, logger *logrus.Logger) error {
	inputs, err := loadInputs(cfg)
	if err != nil {
		return err
	}

	h := bench.NewHarness()
	p := vortex.Params{Delta: cfg.delta}

	for _, in := range inputs {
		log := logger.WithFields(logrus.Fields{
			"input":  in.name,
			"width":  in.buf.Width(),
			"height": in.buf.Height(),
			"filter": cfg.filter.String(),
		})
		log.Info("input ready")

		if len(inputs) > 1 {
			if _, err := fmt.Fprintf(stdout, "%s:\n", in.name); err != nil {
				return err
			}
		}

		out, err := process(ctx, h, cfg, in.buf, p, stdout, log)
		if err != nil {
			return fmt.Errorf("%s: %w", in.name, err)
		}

		path := outputPath(cfg, in.name, len(inputs))
		if path == "" {
			continue
		}
		if err := imageio.Save(path, out); err != nil {
			return err
		}
		log.WithField("path", path).Info("output saved")
	}
	return nil
}

// loadInputs decodes every input file concurrently, or builds a test
// pattern when none was given.
func loadInputs(cfg config) ([]input, error) {
	if len(cfg.inputs) == 0 {
		return []input{{name: "pattern", buf: testPattern(cfg.width, cfg.height)}}, nil
	}
	bufs, err := imageio.LoadAll(cfg.inputs, cfg.workers, imageio.WithMaxWidth(cfg.maxWidth))
	if err != nil {
		return nil, err
	}
	inputs := make([]input, len(bufs))
	for i, buf := range bufs {
		inputs[i] = input{name: cfg.inputs[i], buf: buf}
	}
	return inputs, nil
}

// outputPath returns where the result for name is written, or "" when no
// output was requested.
func outputPath(cfg config, name string, n int) string {
	if cfg.out != "" && n == 1 {
		return cfg.out
	}
	if cfg.outDir == "" {
		return ""
	}
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	return filepath.Join(cfg.outDir, base+"-"+cfg.filter.String()+".png")
}

func process(ctx context.Context, h *bench.Harness, cfg config, buf *vortex.PixelBuffer, p vortex.Params, stdout io.Writer, log *logrus.Entry) (*vortex.PixelBuffer, error) {
	if cfg.backends == "both" {
		return runBoth(ctx, h, cfg, buf, p, stdout, log)
	}
	kind, err := vortex.ParseBackendKind(cfg.backends)
	if err != nil {
		return nil, err
	}
	return runOne(ctx, h, cfg, kind, buf, p, stdout)
}

func runOne(ctx context.Context, h *bench.Harness, cfg config, kind vortex.BackendKind, buf *vortex.PixelBuffer, p vortex.Params, stdout io.Writer) (*vortex.PixelBuffer, error) {
	b := backend.ForKind(kind)
	if b == nil {
		return nil, fmt.Errorf("%w: %s", vortex.ErrUnknownBackend, kind)
	}
	defer b.Close()

	out, sample, err := h.Run(ctx, b, cfg.filter, buf, p)
	if err != nil {
		return nil, err
	}
	return out, bench.WriteReport(stdout, cfg.lang, sample)
}

// runBoth compares the two backends. When the native module cannot be
// loaded the interpreted result is still reported.
func runBoth(ctx context.Context, h *bench.Harness, cfg config, buf *vortex.PixelBuffer, p vortex.Params, stdout io.Writer, log *logrus.Entry) (*vortex.PixelBuffer, error) {
	ib := backend.ForKind(vortex.Interpreted)
	nb := backend.ForKind(vortex.Native)
	if nb == nil {
		return runOne(ctx, h, cfg, vortex.Interpreted, buf, p, stdout)
	}
	defer ib.Close()
	defer nb.Close()

	c, err := h.Compare(ctx, ib, nb, cfg.filter, buf, p)
	if errors.Is(err, vortex.ErrBackendUnavailable) {
		log.WithError(err).Warn("native backend unavailable, running interpreted only")
		return runOne(ctx, h, cfg, vortex.Interpreted, buf, p, stdout)
	}
	if err != nil {
		return nil, err
	}
	if !c.Identical {
		log.Warn("backend outputs differ")
	}
	return c.OutA, bench.WriteComparison(stdout, cfg.lang, c)
}

// testPattern builds a gradient with a checkerboard overlay.
func testPattern(w, h int) *vortex.PixelBuffer {
	buf := vortex.NewPixelBuffer(w, h)
	for y := range h {
		for x := range w {
			r := uint8(x * 255 / max(w-1, 1))
			g := uint8(y * 255 / max(h-1, 1))
			b := uint8(128)
			if (x/16+y/16)%2 == 0 {
				b = 32
			}
			buf.SetPixel(x, y, r, g, b, 255)
		}
	}
	return buf
}
