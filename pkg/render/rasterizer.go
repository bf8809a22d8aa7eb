package render

import (
	"context"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/taigrr/blockfield/pkg/math3d"
	"github.com/taigrr/blockfield/pkg/pipeline"
)

// DepthTest selects how fragments compete for a pixel.
type DepthTest int

const (
	// DepthNone draws every fragment; later draws win.
	DepthNone DepthTest = iota
	// DepthLess keeps the smallest depth. Clears to +Inf.
	DepthLess
	// DepthGreater keeps the greatest depth, for reversed-depth
	// projections. Clears to 0.
	DepthGreater
)

// Geometry is the base mesh every instance is drawn with.
type Geometry interface {
	VertexCount() int
	TriangleCount() int
	GetVertex(i int) pipeline.Vertex
	GetFace(i int) [3]int
}

// BoundedGeometry extends Geometry with bounding box support for frustum culling.
type BoundedGeometry interface {
	Geometry
	GetBounds() (min, max math3d.Vec3)
}

// FragmentShader turns an interpolated varying into a color.
// *pipeline.Pipeline implements it.
type FragmentShader interface {
	Fragment(in pipeline.Varying) math3d.Vec4
}

// CullingStats tracks frustum culling performance.
type CullingStats struct {
	InstancesTested int // Total instances tested for culling
	InstancesCulled int // Instances culled (not rendered)
	InstancesDrawn  int // Instances that passed culling
}

// Rasterizer handles software triangle rasterization.
type Rasterizer struct {
	fb      *Framebuffer
	zbuffer []float32 // Depth buffer (1D array, row-major)

	Depth          DepthTest
	DisableCulling bool         // If true, skip frustum culling of instances
	CullingStats   CullingStats // Statistics for debugging/benchmarking

	varyings []pipeline.Varying // per-vertex scratch, reused across instances
}

// NewRasterizer creates a new rasterizer drawing into fb.
func NewRasterizer(fb *Framebuffer, depth DepthTest) *Rasterizer {
	r := &Rasterizer{
		fb:    fb,
		Depth: depth,
	}
	r.Resize()
	return r
}

// Resize resizes the rasterizer's buffer to match the framebuffer.
func (r *Rasterizer) Resize() {
	if r.fb == nil {
		r.zbuffer = nil
		return
	}
	r.zbuffer = make([]float32, r.fb.Width*r.fb.Height)
	r.ClearDepth()
}

// Width returns the framebuffer width.
func (r *Rasterizer) Width() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Width
}

// Height returns the framebuffer height.
func (r *Rasterizer) Height() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Height
}

// ClearDepth resets the Z-buffer to the clear value of the depth test
// (call before each frame).
func (r *Rasterizer) ClearDepth() {
	n := len(r.zbuffer)
	if n == 0 {
		return
	}
	r.zbuffer[0] = 0
	if r.Depth == DepthLess {
		r.zbuffer[0] = math32.Inf(1)
	}
	// Use copy-doubling for faster clearing
	for i := 1; i < n; i *= 2 {
		copy(r.zbuffer[i:], r.zbuffer[:i])
	}
}

// ResetCullingStats resets the culling statistics (call once per frame).
func (r *Rasterizer) ResetCullingStats() {
	r.CullingStats = CullingStats{}
}

// getDepth returns the depth at (x, y).
func (r *Rasterizer) getDepth(x, y int) float32 {
	return r.zbuffer[y*r.Width()+x]
}

// depthPass runs the depth test at (x, y) and records z when it passes.
func (r *Rasterizer) depthPass(x, y int, z float32) bool {
	switch r.Depth {
	case DepthLess:
		if !(z < r.getDepth(x, y)) {
			return false
		}
	case DepthGreater:
		if !(z > r.getDepth(x, y)) {
			return false
		}
	default:
		return true
	}
	r.zbuffer[y*r.Width()+x] = z
	return true
}

// DrawInstances runs the pipeline over instances and rasterizes geom once
// per instance, in instance order.
func (r *Rasterizer) DrawInstances(ctx context.Context, p *pipeline.Pipeline, g pipeline.FrameGlobals, geom Geometry, instances []pipeline.Instance) error {
	prepared, err := p.Prepare(ctx, g, instances)
	if err != nil {
		return fmt.Errorf("draw instances: %w", err)
	}
	r.DrawPrepared(p, g, geom, prepared)
	return nil
}

// DrawPrepared rasterizes geom for each prepared instance. With the scene
// projection and bounded geometry, instances outside the view frustum are
// skipped.
func (r *Rasterizer) DrawPrepared(p *pipeline.Pipeline, g pipeline.FrameGlobals, geom Geometry, prepared []pipeline.Prepared) {
	var (
		frustum Frustum
		local   AABB
		cull    bool
	)
	if bounded, ok := geom.(BoundedGeometry); ok && !r.DisableCulling && p.Config().Projection == pipeline.ProjectionScene {
		frustum = NewFrustumFromMatrix(g.Perspective.Mul(g.View))
		minBounds, maxBounds := bounded.GetBounds()
		local = NewAABB(minBounds, maxBounds)
		cull = true
	}

	n := geom.VertexCount()
	if cap(r.varyings) < n {
		r.varyings = make([]pipeline.Varying, n)
	}
	vs := r.varyings[:n]

	for _, inst := range prepared {
		if cull {
			r.CullingStats.InstancesTested++
			if !frustum.IntersectAABB(local.Transform(inst.Model)) {
				r.CullingStats.InstancesCulled++
				continue
			}
			r.CullingStats.InstancesDrawn++
		}

		for i := range vs {
			vs[i] = p.Vertex(g, inst, geom.GetVertex(i))
		}
		for i := 0; i < geom.TriangleCount(); i++ {
			face := geom.GetFace(i)
			r.DrawTriangle(p, [3]pipeline.Varying{vs[face[0]], vs[face[1]], vs[face[2]]})
		}
	}
}

// screenVertex holds a vertex transformed to screen space.
type screenVertex struct {
	X, Y float32 // Screen coordinates, y down
	Z    float32 // NDC depth
	InvW float32 // 1/w for perspective-correct interpolation
}

// DrawTriangle rasterizes one triangle of clip-space varyings. Both
// windings are drawn. There is no clipping: a triangle with any vertex at
// w <= 0 is dropped, and fragments with depth outside [0, 1] are discarded.
// Color and normal are interpolated perspective-correct; flags come from
// the first vertex.
func (r *Rasterizer) DrawTriangle(fs FragmentShader, tri [3]pipeline.Varying) {
	if r.Width() == 0 || r.Height() == 0 {
		return
	}

	var sv [3]screenVertex
	w, h := float32(r.Width()), float32(r.Height())

	for i := range 3 {
		clip := tri[i].Clip
		if !(clip.W > 0) {
			return
		}
		invW := 1 / clip.W
		sv[i] = screenVertex{
			X:    (clip.X*invW + 1) * 0.5 * w,
			Y:    (clip.Y*invW + 1) * 0.5 * h,
			Z:    clip.Z * invW,
			InvW: invW,
		}
		if !finite(sv[i].X) || !finite(sv[i].Y) || !finite(sv[i].Z) {
			return
		}
	}

	// Edge i is opposite vertex i, so its value is vertex i's weight.
	a0, b0, c0 := edgeCoeffs(sv[1].X, sv[1].Y, sv[2].X, sv[2].Y)
	a1, b1, c1 := edgeCoeffs(sv[2].X, sv[2].Y, sv[0].X, sv[0].Y)
	a2, b2, c2 := edgeCoeffs(sv[0].X, sv[0].Y, sv[1].X, sv[1].Y)

	area := edgeFunc(a0, b0, c0, sv[0].X, sv[0].Y)
	if area == 0 {
		return
	}
	invArea := 1 / area

	minX := int(clamp(math32.Floor(min3(sv[0].X, sv[1].X, sv[2].X)), 0, w-1))
	maxX := int(clamp(math32.Ceil(max3(sv[0].X, sv[1].X, sv[2].X)), 0, w-1))
	minY := int(clamp(math32.Floor(min3(sv[0].Y, sv[1].Y, sv[2].Y)), 0, h-1))
	maxY := int(clamp(math32.Ceil(max3(sv[0].Y, sv[1].Y, sv[2].Y)), 0, h-1))

	for y := minY; y <= maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5

			w0 := edgeFunc(a0, b0, c0, px, py) * invArea
			w1 := edgeFunc(a1, b1, c1, px, py) * invArea
			w2 := edgeFunc(a2, b2, c2, px, py) * invArea
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			// z/w is affine in screen space
			z := w0*sv[0].Z + w1*sv[1].Z + w2*sv[2].Z
			if z < 0 || z > 1 {
				continue
			}
			if !r.depthPass(x, y, z) {
				continue
			}

			p0, p1, p2 := w0*sv[0].InvW, w1*sv[1].InvW, w2*sv[2].InvW
			norm := 1 / (p0 + p1 + p2)
			p0, p1, p2 = p0*norm, p1*norm, p2*norm

			in := pipeline.Varying{
				Color:  tri[0].Color.Scale(p0).Add(tri[1].Color.Scale(p1)).Add(tri[2].Color.Scale(p2)),
				Normal: tri[0].Normal.Scale(p0).Add(tri[1].Normal.Scale(p1)).Add(tri[2].Normal.Scale(p2)),
				Flags:  tri[0].Flags,
			}
			r.fb.SetPixel(x, y, ToRGBA(fs.Fragment(in)))
		}
	}
}

// edgeCoeffs returns A, B, C for the edge function A*x + B*y + C of the
// directed edge (x0, y0) -> (x1, y1).
func edgeCoeffs(x0, y0, x1, y1 float32) (a, b, c float32) {
	return y0 - y1, x1 - x0, x0*y1 - x1*y0
}

func edgeFunc(a, b, c, x, y float32) float32 {
	return a*x + b*y + c
}

func finite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

func clamp(v, lo, hi float32) float32 {
	return math32.Min(math32.Max(v, lo), hi)
}

func min3(a, b, c float32) float32 {
	return math32.Min(a, math32.Min(b, c))
}

func max3(a, b, c float32) float32 {
	return math32.Max(a, math32.Max(b, c))
}
