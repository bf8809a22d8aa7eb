package pipeline

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/taigrr/blockfield/pkg/math3d"
)

// ErrRaggedBuffer is returned when an instance buffer is not a whole number
// of records.
var ErrRaggedBuffer = errors.New("instance buffer is not a multiple of the stride")

// Attribute describes one per-instance vertex attribute.
type Attribute struct {
	Name       string
	Offset     int // bytes from the start of the record
	Components int // float32 components
}

// Layout describes a packed per-instance record.
type Layout struct {
	Stride     int
	Attributes []Attribute
}

// InstanceLayout returns the packed record layout for an orientation mode.
//
// Angles (44 bytes):
//
//	offset  0: translation vec3
//	offset 12: rotation    vec3
//	offset 24: scale       f32
//	offset 28: color       vec4
//
// Matrix (92 bytes):
//
//	offset  0: translation vec3
//	offset 12: matrix      mat4 (column-major)
//	offset 76: color       vec4
func InstanceLayout(o Orientation) Layout {
	if o == OrientationMatrix {
		return Layout{
			Stride: 92,
			Attributes: []Attribute{
				{Name: "translation", Offset: 0, Components: 3},
				{Name: "matrix", Offset: 12, Components: 16},
				{Name: "color", Offset: 76, Components: 4},
			},
		}
	}
	return Layout{
		Stride: 44,
		Attributes: []Attribute{
			{Name: "translation", Offset: 0, Components: 3},
			{Name: "rotation", Offset: 12, Components: 3},
			{Name: "scale", Offset: 24, Components: 1},
			{Name: "color", Offset: 28, Components: 4},
		},
	}
}

// EncodeInstances packs instances little-endian in the layout of o. Fields
// the mode does not read are not written.
func EncodeInstances(o Orientation, instances []Instance) []byte {
	stride := InstanceLayout(o).Stride
	buf := make([]byte, stride*len(instances))

	for i, inst := range instances {
		rec := buf[i*stride : (i+1)*stride]
		putVec3(rec[0:12], inst.Translation)
		if o == OrientationMatrix {
			putFloats(rec[12:76], inst.Matrix[:]...)
			putVec4(rec[76:92], inst.Color)
			continue
		}
		putVec3(rec[12:24], inst.Rotation)
		putFloats(rec[24:28], inst.Scale)
		putVec4(rec[28:44], inst.Color)
	}
	return buf
}

// DecodeInstances unpacks a buffer written by EncodeInstances.
func DecodeInstances(o Orientation, buf []byte) ([]Instance, error) {
	stride := InstanceLayout(o).Stride
	if len(buf)%stride != 0 {
		return nil, fmt.Errorf("decode %d bytes as %s instances: %w", len(buf), o, ErrRaggedBuffer)
	}

	out := make([]Instance, len(buf)/stride)
	for i := range out {
		rec := buf[i*stride : (i+1)*stride]
		inst := &out[i]
		inst.Translation = getVec3(rec[0:12])
		if o == OrientationMatrix {
			for k := range inst.Matrix {
				inst.Matrix[k] = getFloat(rec[12+k*4:])
			}
			inst.Color = getVec4(rec[76:92])
			continue
		}
		inst.Rotation = getVec3(rec[12:24])
		inst.Scale = getFloat(rec[24:28])
		inst.Color = getVec4(rec[28:44])
	}
	return out, nil
}

// GlobalsSize returns the size in bytes of the frame globals block for cfg.
func GlobalsSize(cfg Config) int {
	switch {
	case cfg.Projection == ProjectionScreen:
		return 8
	case cfg.Selection:
		return 160
	default:
		return 128
	}
}

// EncodeGlobals writes exactly the fields cfg reads, in order:
//
//	screen:    display_size u32x2
//	scene:     perspective mat4, view mat4
//	selection: ... selected vec4, selected2 vec4
func EncodeGlobals(cfg Config, g FrameGlobals) []byte {
	buf := make([]byte, GlobalsSize(cfg))
	if cfg.Projection == ProjectionScreen {
		binary.LittleEndian.PutUint32(buf[0:4], g.DisplaySize[0])
		binary.LittleEndian.PutUint32(buf[4:8], g.DisplaySize[1])
		return buf
	}

	putFloats(buf[0:64], g.Perspective[:]...)
	putFloats(buf[64:128], g.View[:]...)
	if cfg.Selection {
		putVec4(buf[128:144], g.Selected)
		putVec4(buf[144:160], g.Selected2)
	}
	return buf
}

func putFloats(buf []byte, vals ...float32) {
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], math.Float32bits(v))
	}
}

func putVec3(buf []byte, v math3d.Vec3) {
	putFloats(buf, v.X, v.Y, v.Z)
}

func putVec4(buf []byte, v math3d.Vec4) {
	putFloats(buf, v.X, v.Y, v.Z, v.W)
}

func getFloat(buf []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4]))
}

func getVec3(buf []byte) math3d.Vec3 {
	return math3d.Vec3{X: getFloat(buf[0:]), Y: getFloat(buf[4:]), Z: getFloat(buf[8:])}
}

func getVec4(buf []byte) math3d.Vec4 {
	return math3d.Vec4{X: getFloat(buf[0:]), Y: getFloat(buf[4:]), Z: getFloat(buf[8:]), W: getFloat(buf[12:])}
}
