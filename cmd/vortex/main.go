// Command vortex applies an image filter on the interpreted and native
// backends and reports how long each took.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"

	"github.com/gogpu/vortex"
	_ "github.com/gogpu/vortex/backend/native" // register native backend
	"github.com/gogpu/vortex/imageio"
)

// config holds parsed command-line flags.
type config struct {
	inputs   []string
	out      string
	outDir   string
	filter   vortex.Filter
	backends string
	delta    int
	maxWidth int
	workers  int
	width    int
	height   int
	lang     language.Tag
	debug    bool
}

func main() {
	cfg, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := initLogger(cfg.debug)
	if cfg.debug {
		vortex.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, os.Stdout, logger); err != nil {
		logger.WithError(err).Fatal("vortex failed")
	}
}

func parseFlags(args []string, errOut io.Writer) (config, error) {
	fs := flag.NewFlagSet("vortex", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var (
		in       = fs.String("in", "", "input image (PNG, JPEG, GIF, BMP, TIFF, WebP); further inputs may follow the flags")
		out      = fs.String("out", "", "output image for a single input; format is taken from the extension")
		outDir   = fs.String("out-dir", "", "directory for outputs when processing several inputs")
		filter   = fs.String("filter", "grayscale", "filter: grayscale, brightness or boxblur")
		backends = fs.String("backend", "both", "backend: interpreted, native or both")
		delta    = fs.Int("delta", 0, "brightness delta in [-100, 100]")
		maxWidth = fs.Int("max-width", imageio.DefaultMaxWidth, "downscale wider inputs to this width (0 disables)")
		workers  = fs.Int("workers", 0, "images decoded concurrently (0 uses all CPUs)")
		width    = fs.Int("width", 800, "test pattern width")
		height   = fs.Int("height", 600, "test pattern height")
		lang     = fs.String("lang", "en", "language for the report")
		debug    = fs.Bool("debug", false, "enable debug logging")
	)
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	f, err := vortex.ParseFilter(*filter)
	if err != nil {
		return config{}, err
	}
	switch *backends {
	case "both", vortex.Interpreted.String(), vortex.Native.String():
	default:
		return config{}, fmt.Errorf("%w: %q", vortex.ErrUnknownBackend, *backends)
	}
	if *delta < vortex.UIMinDelta || *delta > vortex.UIMaxDelta {
		return config{}, fmt.Errorf("delta %d out of range [%d, %d]", *delta, vortex.UIMinDelta, vortex.UIMaxDelta)
	}
	var inputs []string
	if *in != "" {
		inputs = append(inputs, *in)
	}
	inputs = append(inputs, fs.Args()...)
	if len(inputs) > 1 && *out != "" {
		return config{}, errors.New("-out takes a single input; use -out-dir")
	}
	if len(inputs) == 0 && (*width <= 0 || *height <= 0) {
		return config{}, fmt.Errorf("test pattern size %dx%d must be positive", *width, *height)
	}
	tag, err := language.Parse(*lang)
	if err != nil {
		return config{}, fmt.Errorf("lang: %w", err)
	}

	return config{
		inputs:   inputs,
		out:      *out,
		outDir:   *outDir,
		filter:   f,
		backends: *backends,
		delta:    *delta,
		maxWidth: *maxWidth,
		workers:  *workers,
		width:    *width,
		height:   *height,
		lang:     tag,
		debug:    *debug,
	}, nil
}

func initLogger(debugMode bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	if debugMode {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
		logger.Debug("Debug logging enabled")
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger
}
