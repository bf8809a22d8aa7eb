package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/taigrr/blockfield/pkg/config"
	"github.com/taigrr/blockfield/pkg/models"
)

type options struct {
	configPath string
	fps        int
	verbose    bool

	pngPath string
	width   int
	height  int

	frames int
	outDir string

	exportCube string
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "blockfield",
		Short: "Instanced cuboid renderer for the terminal",
		Long: `blockfield draws a scene of instanced cubes with a software rasterizer.

Without output flags it opens an interactive terminal viewer. --png renders a
single frame, --frames renders an animated sequence and --export-cube writes
the base cuboid as GLB.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "Scene file (YAML)")
	f.IntVar(&opts.fps, "fps", 60, "Target FPS")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Debug logging")
	f.StringVar(&opts.pngPath, "png", "", "Render one frame to this PNG file and exit")
	f.IntVar(&opts.width, "width", 0, "Headless output width (default: scene display width)")
	f.IntVar(&opts.height, "height", 0, "Headless output height (default: scene display height)")
	f.IntVar(&opts.frames, "frames", 0, "Render this many animated frames to --out")
	f.StringVar(&opts.outDir, "out", "frames", "Directory for --frames output")
	f.StringVar(&opts.exportCube, "export-cube", "", "Write the base cuboid to this GLB file and exit")

	return cmd
}

func run(cmd *cobra.Command, opts options) error {
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if opts.fps <= 0 {
		return fmt.Errorf("fps must be positive, got %d", opts.fps)
	}

	if opts.exportCube != "" {
		if err := models.SaveGLB(opts.exportCube, models.Cube()); err != nil {
			return fmt.Errorf("export cube: %w", err)
		}
		slog.Info("exported cube", "path", opts.exportCube)
		return nil
	}

	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	if opts.pngPath == "" && opts.frames <= 0 {
		return runViewer(ctx, cfg, opts.fps)
	}

	w, h := headlessSize(cfg, opts)
	s, err := newScene(cfg, w, h)
	if err != nil {
		return err
	}
	if opts.pngPath != "" {
		return s.renderPNG(ctx, opts.pngPath)
	}
	return s.renderFrames(ctx, opts.frames, opts.fps, opts.outDir)
}

func headlessSize(cfg config.Config, opts options) (int, int) {
	size := cfg.DisplaySize()
	w, h := int(size[0]), int(size[1])
	if opts.width > 0 {
		w = opts.width
	}
	if opts.height > 0 {
		h = opts.height
	}
	return w, h
}
