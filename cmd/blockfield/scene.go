package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"

	"github.com/taigrr/blockfield/pkg/config"
	"github.com/taigrr/blockfield/pkg/models"
	"github.com/taigrr/blockfield/pkg/pipeline"
	"github.com/taigrr/blockfield/pkg/render"
	"github.com/taigrr/blockfield/pkg/world"
)

// scene ties the world, camera and pipeline to one framebuffer.
type scene struct {
	cfg    config.Config
	pipe   *pipeline.Pipeline
	world  *world.World
	camera *render.Camera
	geom   render.Geometry

	fb   *render.Framebuffer
	rast *render.Rasterizer
}

func newScene(cfg config.Config, width, height int) (*scene, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("new scene %dx%d: %w", width, height, config.ErrZeroDisplay)
	}

	pc, err := cfg.PipelineConfig()
	if err != nil {
		return nil, err
	}
	pipe, err := pipeline.New(pc)
	if err != nil {
		return nil, fmt.Errorf("create pipeline: %w", err)
	}

	var geom render.Geometry
	switch {
	case cfg.Geometry != "":
		mesh, err := models.LoadGLB(cfg.Geometry)
		if err != nil {
			return nil, fmt.Errorf("load geometry: %w", err)
		}
		slog.Info("loaded geometry", "path", cfg.Geometry, "vertices", mesh.VertexCount(), "triangles", mesh.TriangleCount())
		geom = mesh
	case pc.Projection == pipeline.ProjectionScreen:
		geom = models.Square()
	default:
		geom = models.Cube()
	}

	fb := render.NewFramebuffer(width, height)
	camera := cfg.NewCamera(float32(width) / float32(height))

	s := &scene{
		cfg:    cfg,
		pipe:   pipe,
		world:  cfg.NewWorld(),
		camera: camera,
		geom:   geom,
		fb:     fb,
		rast:   render.NewRasterizer(fb, render.DepthGreater),
	}
	if pc.Projection == pipeline.ProjectionScreen {
		s.rast.Depth = render.DepthNone
	}
	return s, nil
}

// resize reallocates the framebuffer and updates the camera aspect.
func (s *scene) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.fb.Resize(width, height)
	s.rast.Resize()
	s.camera.SetAspectRatio(float32(width) / float32(height))
}

// globals builds the frame globals for the current camera and selection.
func (s *scene) globals() pipeline.FrameGlobals {
	size := [2]uint32{uint32(s.fb.Width), uint32(s.fb.Height)}
	if s.pipe.Config().Projection == pipeline.ProjectionScreen {
		return pipeline.FrameGlobals{DisplaySize: size, Selected: pipeline.NoMarker, Selected2: pipeline.NoMarker}
	}
	return s.world.Globals(s.camera.Globals(size))
}

// draw renders one frame into the framebuffer.
func (s *scene) draw(ctx context.Context) error {
	s.fb.Clear(render.ToRGBA(s.world.Background.Color()))
	s.rast.ClearDepth()
	s.rast.ResetCullingStats()

	if err := s.rast.DrawInstances(ctx, s.pipe, s.globals(), s.geom, s.world.Instances()); err != nil {
		return err
	}
	slog.Debug("frame",
		"instances", s.world.Len(),
		"culled", s.rast.CullingStats.InstancesCulled,
		"drawn", s.rast.CullingStats.InstancesDrawn)
	return nil
}

func (s *scene) renderPNG(ctx context.Context, path string) error {
	if err := s.draw(ctx); err != nil {
		return err
	}
	if err := s.fb.SavePNG(path); err != nil {
		return err
	}
	slog.Info("wrote frame", "path", path, "width", s.fb.Width, "height", s.fb.Height)
	return nil
}

// renderFrames animates the world at a fixed step and writes each frame.
func (s *scene) renderFrames(ctx context.Context, n, fps int, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	dt := 1 / float32(fps)
	pb := progressbar.Default(int64(n), "rendering")
	defer pb.Close()

	for i := range n {
		path := filepath.Join(dir, fmt.Sprintf("frame_%04d.png", i))
		if err := s.draw(ctx); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		if err := s.fb.SavePNG(path); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		s.world.Update(dt)
		pb.Add(1)
	}

	slog.Info("wrote frames", "dir", dir, "count", n)
	return nil
}
