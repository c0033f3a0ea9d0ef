// Package render turns cue frames into PNG previews of the LED ring.
package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/MeKo-Tech/iris/internal/composite"
	"github.com/MeKo-Tech/iris/internal/cue"
	"github.com/MeKo-Tech/iris/internal/raster"
	"github.com/MeKo-Tech/iris/internal/worker"
)

// ErrInvalidOptions is wrapped by every option validation error.
var ErrInvalidOptions = errors.New("invalid render options")

var compressionLevels = map[string]png.CompressionLevel{
	"default": png.DefaultCompression,
	"none":    png.NoCompression,
	"speed":   png.BestSpeed,
	"best":    png.BestCompression,
}

// CompressionNames lists the names accepted by ParseCompression.
func CompressionNames() []string {
	names := make([]string, 0, len(compressionLevels))
	for name := range compressionLevels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseCompression maps a compression name to a PNG compression level.
func ParseCompression(name string) (png.CompressionLevel, error) {
	level, ok := compressionLevels[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: unknown png compression %q (expected one of %s)",
			ErrInvalidOptions, name, strings.Join(CompressionNames(), ", "))
	}
	return level, nil
}

// Options controls the look of rendered frames.
type Options struct {
	Size         int
	GlowSigma    float32 // zero disables the halo
	GlowStrength float64
	Label        bool
	Background   color.NRGBA
	Texture      float64 // noise strength on the background; zero keeps it flat
	Seed         int64
	LabelColor   color.NRGBA
	Compression  png.CompressionLevel
}

// DefaultOptions returns the settings used by the render command.
func DefaultOptions() Options {
	return Options{
		Size:         256,
		GlowSigma:    6,
		GlowStrength: 0.8,
		Label:        true,
		Background:   color.NRGBA{R: 12, G: 12, B: 14, A: 255},
		Texture:      0.3,
		Seed:         1337,
		LabelColor:   color.NRGBA{R: 200, G: 200, B: 200, A: 255},
		Compression:  png.DefaultCompression,
	}
}

// FrameRenderer renders frames of one cue. It is safe for concurrent use.
type FrameRenderer struct {
	cue       *cue.Cue
	opts      Options
	ras       *raster.Renderer
	base      *image.NRGBA
	rim       *image.NRGBA
	encoder   *png.Encoder
	outputDir string
	logger    *slog.Logger
}

// NewFrameRenderer creates a renderer writing into outputDir. The cue is copied,
// so later edits to c do not affect rendering.
func NewFrameRenderer(c *cue.Cue, outputDir string, opts Options, logger *slog.Logger) (*FrameRenderer, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: no cue", ErrInvalidOptions)
	}
	if opts.Size <= 0 {
		return nil, fmt.Errorf("%w: size must be positive, got %d", ErrInvalidOptions, opts.Size)
	}
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	ras := raster.NewRenderer(opts.Size)
	return &FrameRenderer{
		cue:       c.Clone(),
		opts:      opts,
		ras:       ras,
		base:      Texture(opts.Size, opts.Background, opts.Seed, opts.Texture),
		rim:       ras.RenderRim(),
		encoder:   &png.Encoder{CompressionLevel: opts.Compression},
		outputDir: outputDir,
		logger:    logger,
	}, nil
}

// Image renders the frame at timeMS.
func (f *FrameRenderer) Image(timeMS uint32) (*image.NRGBA, error) {
	leds := f.ras.RenderLEDs(f.cue.Frame(timeMS))

	layers := map[composite.Layer]image.Image{
		composite.LayerRim:  f.rim,
		composite.LayerLEDs: leds,
	}
	if glow := Glow(leds, f.opts.GlowSigma, f.opts.GlowStrength); glow != nil {
		layers[composite.LayerGlow] = glow
	}
	if f.opts.Label {
		layers[composite.LayerLabel] = Label(f.opts.Size, f.opts.LabelColor, TimeLabel(timeMS, f.cue.DurationMS()))
	}

	img, err := composite.CompositeLayersOverBase(f.base, layers, nil, f.opts.Size)
	if err != nil {
		return nil, fmt.Errorf("failed to composite frame: %w", err)
	}
	return img, nil
}

// FramePath returns the file a task is written to.
func (f *FrameRenderer) FramePath(index int) string {
	return filepath.Join(f.outputDir, fmt.Sprintf("frame_%05d.png", index))
}

// Render implements worker.Renderer.
func (f *FrameRenderer) Render(ctx context.Context, task worker.Task) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	img, err := f.Image(task.TimeMS)
	if err != nil {
		return "", err
	}

	path := f.FramePath(task.Index)
	f.log().Debug("Writing frame", "frame", task.Index, "time_ms", task.TimeMS, "path", path)

	outFile, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create frame file: %w", err)
	}
	if err := f.encoder.Encode(outFile, img); err != nil {
		_ = outFile.Close()
		return "", fmt.Errorf("failed to encode frame: %w", err)
	}
	if err := outFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close frame file: %w", err)
	}

	return path, nil
}

func (f *FrameRenderer) log() *slog.Logger {
	if f.logger != nil {
		return f.logger
	}
	return slog.Default()
}
