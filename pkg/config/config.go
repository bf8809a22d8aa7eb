// Package config loads blockfield scene files.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/taigrr/blockfield/pkg/math3d"
	"github.com/taigrr/blockfield/pkg/pipeline"
	"github.com/taigrr/blockfield/pkg/render"
	"github.com/taigrr/blockfield/pkg/world"
)

var (
	// ErrZeroDisplay is returned for a display with no pixels.
	ErrZeroDisplay = errors.New("display size must be non-zero")
	// ErrInvalidOption is returned for an unknown variant or orientation.
	ErrInvalidOption = errors.New("invalid option")
)

// Config is a scene file.
type Config struct {
	Variant     string  `yaml:"variant"`     // scene or screen
	Orientation string  `yaml:"orientation"` // angles or matrix
	Lighting    bool    `yaml:"lighting"`
	Selection   bool    `yaml:"selection"`
	Display     Display `yaml:"display"`
	Camera      Camera  `yaml:"camera"`
	Spin        bool    `yaml:"spin"`
	Geometry    string  `yaml:"geometry"` // optional GLB replacing the unit cube

	Background *[3]float32 `yaml:"background"` // nil keeps the animated default
	Chunks     []Chunk     `yaml:"chunks"`
	Cubes      []Cube      `yaml:"cubes"`
	Markers    Markers     `yaml:"markers"`
}

// Display is the output size in pixels.
type Display struct {
	Width  uint32 `yaml:"width"`
	Height uint32 `yaml:"height"`
}

// Camera configures the scene camera. FOV is in degrees.
type Camera struct {
	FOV      float32     `yaml:"fov"`
	Near     float32     `yaml:"near"`
	Far      float32     `yaml:"far"`
	Position [3]float32  `yaml:"position"`
	Yaw      float32     `yaml:"yaw"`
	Pitch    float32     `yaml:"pitch"`
	Target   *[3]float32 `yaml:"target"` // overrides yaw and pitch; null to use them
}

// Chunk is a 16 x height x 16 column of cubes.
type Chunk struct {
	X      int        `yaml:"x"`
	Height int        `yaml:"height"`
	Z      int        `yaml:"z"`
	Color  [4]float32 `yaml:"color"`
}

// Cube is a single cube.
type Cube struct {
	Position [3]float32 `yaml:"position"`
	Rotation [3]float32 `yaml:"rotation"`
	Scale    *float32   `yaml:"scale"` // nil means 1; 0 hides the cube
	Color    [4]float32 `yaml:"color"`
}

// Markers selects cubes by index into the final cube list. Negative
// entries leave the slot empty.
type Markers struct {
	Primary   int `yaml:"primary"`
	Secondary int `yaml:"secondary"`
}

// Default returns the configuration used when no scene file is given: a
// lit, selectable chunk in front of the camera.
func Default() Config {
	return Config{
		Variant:     pipeline.ProjectionScene.String(),
		Orientation: pipeline.OrientationAngles.String(),
		Lighting:    true,
		Selection:   true,
		Display:     Display{Width: 800, Height: 600},
		Camera: Camera{
			FOV:      60,
			Near:     0.1,
			Far:      200,
			Position: [3]float32{8, 12, -20},
			Target:   &[3]float32{8, 0, 8},
		},
		Spin:    true,
		Chunks:  []Chunk{{X: 0, Height: 2, Z: 0, Color: [4]float32{0.3, 0.7, 0.4, 1}}},
		Markers: Markers{Primary: -1, Secondary: -1},
	}
}

// Load reads and validates a scene file. Fields missing from the file keep
// their Default values.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}

	slog.Info("loaded scene", "path", path, "variant", cfg.Variant, "chunks", len(cfg.Chunks), "cubes", len(cfg.Cubes))
	return cfg, nil
}

// Parse decodes a scene from r. Unknown keys are rejected.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks option names and ranges.
func (c Config) Validate() error {
	if c.Display.Width == 0 || c.Display.Height == 0 {
		return fmt.Errorf("validate %dx%d: %w", c.Display.Width, c.Display.Height, ErrZeroDisplay)
	}
	if _, err := c.PipelineConfig(); err != nil {
		return err
	}
	if c.Variant == pipeline.ProjectionScene.String() {
		if !(c.Camera.Near > 0) || !(c.Camera.Far > c.Camera.Near) {
			return fmt.Errorf("camera clip planes %v..%v: %w", c.Camera.Near, c.Camera.Far, ErrInvalidOption)
		}
	}
	for i, ch := range c.Chunks {
		if ch.Height < 0 {
			return fmt.Errorf("chunk %d height %d: %w", i, ch.Height, ErrInvalidOption)
		}
	}
	return nil
}

// PipelineConfig converts the variant and feature switches to a
// pipeline.Config, rejecting combinations pipeline.New would refuse.
func (c Config) PipelineConfig() (pipeline.Config, error) {
	var pc pipeline.Config

	switch c.Variant {
	case pipeline.ProjectionScene.String():
		pc.Projection = pipeline.ProjectionScene
		pc.Lighting = c.Lighting
		pc.Selection = c.Selection
	case pipeline.ProjectionScreen.String():
		pc.Projection = pipeline.ProjectionScreen
		if c.Lighting || c.Selection {
			return pc, fmt.Errorf("variant %q supports neither lighting nor selection: %w", c.Variant, ErrInvalidOption)
		}
	default:
		return pc, fmt.Errorf("variant %q: %w", c.Variant, ErrInvalidOption)
	}

	switch c.Orientation {
	case pipeline.OrientationAngles.String():
		pc.Orientation = pipeline.OrientationAngles
	case pipeline.OrientationMatrix.String():
		pc.Orientation = pipeline.OrientationMatrix
	default:
		return pc, fmt.Errorf("orientation %q: %w", c.Orientation, ErrInvalidOption)
	}

	return pc, nil
}

// DisplaySize returns the display as the pipeline expects it.
func (c Config) DisplaySize() [2]uint32 {
	return [2]uint32{c.Display.Width, c.Display.Height}
}

// NewCamera builds the configured camera for the given aspect ratio.
func (c Config) NewCamera(aspect float32) *render.Camera {
	cam := render.NewCamera(c.Camera.FOV, aspect, c.Camera.Near, c.Camera.Far, vec3(c.Camera.Position))
	if c.Camera.Target != nil {
		cam.LookAt(vec3(*c.Camera.Target))
	} else {
		cam.SetRotation(c.Camera.Yaw, c.Camera.Pitch)
	}
	return cam
}

// NewWorld builds the world: chunks first, then individual cubes, then the
// selection.
func (c Config) NewWorld() *world.World {
	w := world.New()
	w.Spin = c.Spin
	if c.Background != nil {
		w.Background.RGB = vec3(*c.Background)
	}

	for _, ch := range c.Chunks {
		w.CreateChunk(ch.X, ch.Height, ch.Z, vec4(ch.Color))
	}
	for _, cube := range c.Cubes {
		w.PushCube(world.Cube{
			Center:   vec3(cube.Position),
			Rotation: vec3(cube.Rotation),
			Scale:    cube.scale(),
			Color:    vec4(cube.Color),
		})
	}

	w.Selection.Set(c.Markers.Primary, c.Markers.Secondary)
	slog.Debug("built world", "cubes", w.Len())
	return w
}

func (c Cube) scale() float32 {
	if c.Scale == nil {
		return 1
	}
	return *c.Scale
}

func vec3(a [3]float32) math3d.Vec3 {
	return math3d.V3(a[0], a[1], a[2])
}

func vec4(a [4]float32) math3d.Vec4 {
	return math3d.V4(a[0], a[1], a[2], a[3])
}
