package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/MeKo-Tech/iris/internal/cue"
	"github.com/MeKo-Tech/iris/internal/render"
	"github.com/MeKo-Tech/iris/internal/worker"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render one animation cycle as PNG frames",
	Long: `Render a sequence of PNG previews of the LED ring spread evenly over one cycle
of the launched cue. Frames are rendered in parallel and written as frame_00000.png,
frame_00001.png, ... into the output directory.`,
	Example: `  iris render --cue rainbow --frames 60 --output-dir ./frames
  iris render --size 512 --glow 0 --no-label`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	defaults := render.DefaultOptions()

	renderCmd.Flags().String("output-dir", "./frames", "Output directory for rendered frames")
	renderCmd.Flags().IntP("frames", "n", 24, "Number of frames per cycle")
	renderCmd.Flags().Uint32("start", 0, "Animation time of the first frame in milliseconds")
	renderCmd.Flags().Int("size", defaults.Size, "Frame edge length in pixels")
	renderCmd.Flags().Float32("glow", defaults.GlowSigma, "Gaussian glow sigma in pixels (0 disables the glow)")
	renderCmd.Flags().Float64("glow-strength", defaults.GlowStrength, "Glow opacity between 0 and 1")
	renderCmd.Flags().Float64("texture", defaults.Texture, "Background noise strength between 0 and 1 (0 keeps it flat)")
	renderCmd.Flags().Int64("seed", defaults.Seed, "Deterministic seed for the background texture")
	renderCmd.Flags().Bool("no-label", false, "Do not draw the time label")
	renderCmd.Flags().String("png-compression", "default", "PNG compression (default, speed, best, none)")
	renderCmd.Flags().IntP("workers", "w", 0, "Number of parallel workers (default: number of CPUs)")
	renderCmd.Flags().Bool("progress", true, "Show progress bar while rendering")
	renderCmd.Flags().Bool("allow-failures", false, "Exit successfully even if some frames fail")

	bindFlags(renderCmd, []flagBinding{
		{"render.output_dir", "output-dir"},
		{"render.frames", "frames"},
		{"render.start_ms", "start"},
		{"render.size", "size"},
		{"render.glow_sigma", "glow"},
		{"render.glow_strength", "glow-strength"},
		{"render.texture", "texture"},
		{"render.seed", "seed"},
		{"render.no_label", "no-label"},
		{"render.png_compression", "png-compression"},
		{"render.workers", "workers"},
		{"render.progress", "progress"},
		{"render.allow_failures", "allow-failures"},
	})
}

type renderConfig struct {
	outputDir     string
	frames        int
	startMS       uint32
	workers       int
	progress      bool
	allowFailures bool
	opts          render.Options
}

func renderConfigFromViper(v *viper.Viper) (renderConfig, error) {
	cfg := renderConfig{
		outputDir:     v.GetString("render.output_dir"),
		frames:        v.GetInt("render.frames"),
		startMS:       v.GetUint32("render.start_ms"),
		workers:       v.GetInt("render.workers"),
		progress:      v.GetBool("render.progress"),
		allowFailures: v.GetBool("render.allow_failures"),
		opts:          render.DefaultOptions(),
	}

	if cfg.frames <= 0 {
		return cfg, fmt.Errorf("invalid frame count %d: must be positive", cfg.frames)
	}
	if cfg.outputDir == "" {
		return cfg, errors.New("--output-dir must not be empty")
	}
	if cfg.workers <= 0 {
		cfg.workers = runtime.NumCPU()
	}

	compression, err := render.ParseCompression(v.GetString("render.png_compression"))
	if err != nil {
		return cfg, err
	}
	cfg.opts.Compression = compression
	cfg.opts.Size = v.GetInt("render.size")
	cfg.opts.GlowSigma = float32(v.GetFloat64("render.glow_sigma"))
	cfg.opts.GlowStrength = v.GetFloat64("render.glow_strength")
	cfg.opts.Texture = v.GetFloat64("render.texture")
	cfg.opts.Seed = v.GetInt64("render.seed")
	cfg.opts.Label = !v.GetBool("render.no_label")

	if cfg.opts.Size <= 0 {
		return cfg, fmt.Errorf("invalid size %d: must be positive", cfg.opts.Size)
	}
	if cfg.opts.GlowSigma < 0 {
		return cfg, fmt.Errorf("invalid glow %v: must not be negative", cfg.opts.GlowSigma)
	}
	if cfg.opts.Texture < 0 || cfg.opts.Texture > 1 {
		return cfg, fmt.Errorf("invalid texture %v: must be between 0 and 1", cfg.opts.Texture)
	}
	return cfg, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := renderConfigFromViper(viper.GetViper())
	if err != nil {
		return err
	}

	session, err := activeSession()
	if err != nil {
		return err
	}
	c, _ := session.Snapshot()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("Received interrupt signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return renderFrames(ctx, c, cfg)
}

// renderFrames renders cfg.frames frames of c over one cycle.
func renderFrames(ctx context.Context, c *cue.Cue, cfg renderConfig) error {
	renderer, err := render.NewFrameRenderer(c, cfg.outputDir, cfg.opts, logger)
	if err != nil {
		return fmt.Errorf("failed to init renderer: %w", err)
	}

	tasks := worker.CycleTasks(cfg.startMS, c.DurationMS(), cfg.frames)

	logger.Info("Starting frame rendering",
		"cue", c.String(),
		"frames", len(tasks),
		"start_ms", cfg.startMS,
		"workers", cfg.workers,
		"size", cfg.opts.Size,
		"seed", cfg.opts.Seed,
		"output_dir", cfg.outputDir,
	)

	progress := worker.NewProgress(len(tasks), cfg.progress)
	pool := worker.New(worker.Config{
		Workers:    cfg.workers,
		Renderer:   renderer,
		OnProgress: progress.Callback(),
	})

	results := pool.Run(ctx, tasks)
	progress.Done()

	var failedCount int
	for _, r := range results {
		if r.Err != nil {
			failedCount++
			logger.Error("Frame rendering failed", "frame", r.Task.Index, "time_ms", r.Task.TimeMS, "error", r.Err)
		}
	}
	progress.Log(logger)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("rendering cancelled: %w", err)
	}
	if failedCount > 0 {
		if cfg.allowFailures {
			logger.Warn("Some frames failed to render, but continuing due to --allow-failures flag", "failed_count", failedCount)
			return nil
		}
		return fmt.Errorf("%d frames failed to render", failedCount)
	}
	return nil
}
