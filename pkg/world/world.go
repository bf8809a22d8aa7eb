// Package world holds the host-side scene: the cubes drawn as instances,
// the animated background and the selection slots exported as markers.
package world

import (
	"time"

	"github.com/taigrr/blockfield/pkg/math3d"
	"github.com/taigrr/blockfield/pkg/pipeline"
)

// ChunkSize is the horizontal edge of a chunk column.
const ChunkSize = 16

// Per-frame animation rates, scaled by elapsed seconds.
var (
	spinRate       = math3d.V3(0.01, 0.03, 0.05).Scale(60)
	backgroundRate = math3d.V3(0.006, 0.01, 0.015).Scale(100)
)

// Cube is one instance of the base cuboid.
type Cube struct {
	Center   math3d.Vec3
	Rotation math3d.Vec3 // Euler XYZ, radians
	Scale    float32
	Color    math3d.Vec4
}

// World is a list of cubes plus the animation state around them.
type World struct {
	cubes     []Cube
	instances []pipeline.Instance
	dirty     bool

	Background Background
	Spin       bool // advance cube rotations in Update
	Selection  Selection

	clock func() time.Time
}

// New creates an empty world with spinning enabled and the background
// starting at red.
func New() *World {
	return &World{
		Background: NewBackground(),
		Spin:       true,
		Selection:  NewSelection(),
		clock:      time.Now,
	}
}

// PushCube appends a cube. A zero Scale is kept and hides the cube.
func (w *World) PushCube(c Cube) {
	w.cubes = append(w.cubes, c)
	w.dirty = true
}

// Cubes returns the cubes in insertion order. The slice must not be modified.
func (w *World) Cubes() []Cube {
	return w.cubes
}

// Len returns the number of cubes.
func (w *World) Len() int {
	return len(w.cubes)
}

// Reset removes every cube and clears the selection.
func (w *World) Reset() {
	w.cubes = w.cubes[:0]
	w.Selection.Clear()
	w.dirty = true
}

// CreateChunk fills a 16 x height x 16 column of unrotated cubes. x and z are
// truncated to a multiple of 16 towards zero; y is the column height.
func (w *World) CreateChunk(x, height, z int, color math3d.Vec4) {
	startX := (x / ChunkSize) * ChunkSize
	startZ := (z / ChunkSize) * ChunkSize

	for cx := startX; cx < startX+ChunkSize; cx++ {
		for cy := 0; cy < height; cy++ {
			for cz := startZ; cz < startZ+ChunkSize; cz++ {
				w.PushCube(Cube{
					Center: math3d.V3(float32(cx), float32(cy), float32(cz)),
					Scale:  1,
					Color:  color,
				})
			}
		}
	}
}

// Instances returns the instance buffer for the current cubes. It is only
// rebuilt after the cube list changed. Both the angles and the matrix
// attributes are filled, so either orientation can draw it; Matrix is the
// full model matrix T·R·S.
func (w *World) Instances() []pipeline.Instance {
	if !w.dirty && len(w.instances) == len(w.cubes) {
		return w.instances
	}

	w.instances = w.instances[:0]
	for _, c := range w.cubes {
		w.instances = append(w.instances, pipeline.Instance{
			Translation: c.Center,
			Rotation:    c.Rotation,
			Scale:       c.Scale,
			Matrix:      modelMatrix(c),
			Color:       c.Color,
		})
	}
	w.dirty = false
	return w.instances
}

func modelMatrix(c Cube) math3d.Mat4 {
	s := math3d.Scale(math3d.V3(c.Scale, c.Scale, c.Scale))
	return math3d.Translate(c.Center).Mul(pipeline.RotationXYZ(c.Rotation).Mat4()).Mul(s)
}

// Update advances the background cycle and, when Spin is set, every cube's
// rotation. dt is in seconds.
func (w *World) Update(dt float32) {
	w.Background.Update(dt)

	if !w.Spin || len(w.cubes) == 0 {
		return
	}
	step := spinRate.Scale(dt)
	for i := range w.cubes {
		w.cubes[i].Rotation = w.cubes[i].Rotation.Add(step)
	}
	w.dirty = true
}

// PlaceBlock adds a cube under the mouse position (mx, my) in a viewport of
// size (vw, vh). The position only follows the mouse direction, it is not
// unprojected: x and y span [-2, 2] and depth is pseudo-random in [5, 70).
// The cube takes the current background color.
func (w *World) PlaceBlock(mx, my, vw, vh float32) Cube {
	c := Cube{
		Center: math3d.V3(
			(mx-vw/2)/vw*4,
			(my-vh/2)/vh*-4,
			float32(xorshift(uint64(w.clock().UnixMilli()))%65+5),
		),
		Scale: 1,
		Color: w.Background.Color(),
	}
	w.PushCube(c)
	return c
}

// xorshift is one step of Marsaglia's xorshift generator.
func xorshift(x uint64) uint64 {
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	return x
}

// Globals returns g with the selection markers filled in.
func (w *World) Globals(g pipeline.FrameGlobals) pipeline.FrameGlobals {
	g.Selected, g.Selected2 = w.Markers()
	return g
}

// Markers returns the primary and secondary selection markers. An empty or
// stale slot yields pipeline.NoMarker.
func (w *World) Markers() (primary, secondary math3d.Vec4) {
	return w.marker(w.Selection.primary), w.marker(w.Selection.secondary)
}

func (w *World) marker(i int) math3d.Vec4 {
	if i < 0 || i >= len(w.cubes) {
		return pipeline.NoMarker
	}
	return pipeline.Marker(w.cubes[i].Center)
}
