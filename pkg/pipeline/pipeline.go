package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/taigrr/blockfield/pkg/math3d"
)

// minShard is the smallest number of instances handed to one goroutine.
const minShard = 256

// Config fixes the stages of a Pipeline at creation time.
type Config struct {
	Orientation Orientation
	Projection  Projection
	// Lighting enables the directional light. Scene projection only.
	Lighting bool
	// Selection enables marker highlighting. Scene projection only.
	Selection bool
	// Highlight overrides the selection colors. Nil means
	// DefaultHighlight.
	Highlight *Highlight
}

// Pipeline evaluates instances, vertices and fragments for one
// configuration. It holds no per-frame state and is safe for concurrent use.
type Pipeline struct {
	cfg       Config
	lighting  Lighting
	highlight Highlight
}

// Prepared is the per-instance result shared by all of its vertices.
type Prepared struct {
	Model math3d.Mat4
	Color math3d.Vec4
	Flags SelectionFlags
}

// New validates cfg and returns a pipeline for it.
func New(cfg Config) (*Pipeline, error) {
	switch cfg.Orientation {
	case OrientationAngles, OrientationMatrix:
	default:
		return nil, fmt.Errorf("invalid orientation %d", cfg.Orientation)
	}

	switch cfg.Projection {
	case ProjectionScene:
	case ProjectionScreen:
		if cfg.Lighting {
			return nil, errors.New("lighting requires the scene projection")
		}
		if cfg.Selection {
			return nil, errors.New("selection requires the scene projection")
		}
	default:
		return nil, fmt.Errorf("invalid projection %d", cfg.Projection)
	}

	p := &Pipeline{
		cfg:       cfg,
		lighting:  DefaultLighting(),
		highlight: DefaultHighlight(),
	}
	if cfg.Highlight != nil {
		p.highlight = *cfg.Highlight
	}
	return p, nil
}

// Config returns the configuration the pipeline was created with.
func (p *Pipeline) Config() Config {
	return p.cfg
}

// ObjectTransform builds the model matrix of inst for the configured
// orientation mode.
func (p *Pipeline) ObjectTransform(inst Instance) math3d.Mat4 {
	if p.cfg.Orientation == OrientationMatrix {
		return PrecomputedTransform(inst.Matrix, inst.Translation)
	}
	return AnglesTransform(inst.Translation, inst.Rotation, inst.Scale)
}

// PrepareInstance runs the per-instance stages for one instance.
func (p *Pipeline) PrepareInstance(g FrameGlobals, inst Instance) Prepared {
	out := Prepared{
		Model: p.ObjectTransform(inst),
		Color: inst.Color,
	}
	if p.cfg.Selection {
		out.Flags = Select(g, inst.Translation)
	}
	return out
}

// Prepare runs the per-instance stages for a whole buffer, spreading the
// work across GOMAXPROCS goroutines. The result is in instance order.
func (p *Pipeline) Prepare(ctx context.Context, g FrameGlobals, instances []Instance) ([]Prepared, error) {
	out := make([]Prepared, len(instances))

	shard := max(minShard, (len(instances)+runtime.GOMAXPROCS(0)-1)/runtime.GOMAXPROCS(0))

	eg, ctx := errgroup.WithContext(ctx)
	for start := 0; start < len(instances); start += shard {
		end := min(start+shard, len(instances))
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for i := start; i < end; i++ {
				out[i] = p.PrepareInstance(g, instances[i])
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("prepare instances: %w", err)
	}
	return out, nil
}

// Vertex runs the vertex stage for one base vertex of a prepared instance.
func (p *Pipeline) Vertex(g FrameGlobals, inst Prepared, v Vertex) Varying {
	out := Varying{
		Color: inst.Color,
		Flags: inst.Flags,
	}

	if p.cfg.Projection == ProjectionScreen {
		out.Clip = ProjectScreen(inst.Model, v.Position, g.DisplaySize)
		return out
	}

	out.Clip = ProjectScene(g.Perspective, g.View, inst.Model, v.Position)
	if p.cfg.Lighting {
		out.Normal = WorldNormal(inst.Model, v.Normal)
	}
	return out
}

// Fragment shades an interpolated varying into the final straight-alpha
// color.
func (p *Pipeline) Fragment(in Varying) math3d.Vec4 {
	c := in.Color
	if p.cfg.Lighting {
		c = p.lighting.Shade(c, in.Normal)
	}
	if p.cfg.Selection {
		c = p.highlight.Resolve(c, in.Flags)
	}
	return c
}
