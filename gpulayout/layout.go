// Package gpulayout encodes a tilemap.Map into the byte layouts read by the
// tilemap shader and describes the matching bind group layout.
//
// The encoding follows WGSL host-shareable layout rules: vec2 aligns to 8
// bytes, vec3 and mat3x3 columns to 16, and struct sizes round up to their
// largest member alignment.
package gpulayout

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/tilemap"
)

// UniformSize is the size in bytes of the encoded TileMapUniform.
const UniformSize = 288

// Bindings used by the tilemap shader in bind group 2 (group 0 and 1 belong
// to the host's view and mesh).
const (
	BindingUniform  uint32 = 0
	BindingUserData uint32 = 1
	BindingTiles    uint32 = 2
	BindingAtlas    uint32 = 3
	BindingSampler  uint32 = 4
)

// UniformWGSL declares the uniform struct and bindings matching EncodeUniform.
// Shaders include it verbatim, followed by a UserData struct declaration.
const UniformWGSL = `struct TileMapUniform {
    map_size: vec2<u32>,
    atlas_size: vec2<f32>,
    tile_size: vec2<f32>,
    inner_padding: vec2<f32>,
    outer_padding_topleft: vec2<f32>,
    outer_padding_bottomright: vec2<f32>,
    tile_anchor_point: vec2<f32>,
    projection: mat3x3<f32>,
    inverse_projection: mat2x2<f32>,
    global_transform_matrix: mat3x3<f32>,
    global_transform_translation: vec3<f32>,
    world_size: vec2<f32>,
    world_offset: vec2<f32>,
    n_tiles: vec2<u32>,
    global_inverse_transform_matrix: mat3x3<f32>,
    global_inverse_transform_translation: vec3<f32>,
};

@group(2) @binding(0) var<uniform> tilemap: TileMapUniform;
@group(2) @binding(2) var<storage, read> map_tiles: array<u32>;
@group(2) @binding(3) var atlas_texture: texture_2d<f32>;
@group(2) @binding(4) var atlas_sampler: sampler;
`

var (
	// UniformBufferUsage is the usage for the uniform and user data buffers.
	UniformBufferUsage = gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst

	// TileBufferUsage is the usage for the tile code storage buffer.
	TileBufferUsage = gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst
)

// layoutWriter appends values at WGSL-aligned offsets.
type layoutWriter struct {
	buf []byte
}

func (w *layoutWriter) align(n int) {
	for len(w.buf)%n != 0 {
		w.buf = append(w.buf, 0)
	}
}

func (w *layoutWriter) f32(v float64) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, math.Float32bits(float32(v)))
}

func (w *layoutWriter) u32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

func (w *layoutWriter) vec2(v tilemap.Vec2) {
	w.align(8)
	w.f32(v.X)
	w.f32(v.Y)
}

func (w *layoutWriter) uvec2(v tilemap.UVec2) {
	w.align(8)
	w.u32(v.X)
	w.u32(v.Y)
}

func (w *layoutWriter) vec3(v tilemap.Vec3) {
	w.align(16)
	w.f32(v.X)
	w.f32(v.Y)
	w.f32(v.Z)
}

// mat3 writes three column vectors, each padded to 16 bytes.
func (w *layoutWriter) mat3(m tilemap.Mat3) {
	for i := range 3 {
		w.vec3(m.Column(i))
	}
	w.align(16)
}

// mat2 writes two column vectors of 8 bytes each.
func (w *layoutWriter) mat2(m tilemap.Mat2) {
	w.vec2(tilemap.V2(m.A, m.C))
	w.vec2(tilemap.V2(m.B, m.D))
}

// EncodeUniform encodes the coordinate uniform as TileMapUniform.
func EncodeUniform(u *tilemap.CoordinateUniform) []byte {
	w := layoutWriter{buf: make([]byte, 0, UniformSize)}
	p := u.Padding()

	w.uvec2(u.MapSize())
	w.vec2(u.AtlasSize())
	w.vec2(u.TileSize())
	w.vec2(p.Inner)
	w.vec2(p.TopLeft)
	w.vec2(p.BottomRight)
	w.vec2(u.Projection().Anchor)
	w.mat3(u.Projection().Matrix)
	w.mat2(u.InverseProjection())
	w.mat3(u.Transform().Matrix)
	w.vec3(u.Transform().Translation)
	w.vec2(u.WorldSize())
	w.vec2(u.WorldOffset())
	w.uvec2(u.TileCount())
	w.mat3(u.InverseTransform().Matrix)
	w.vec3(u.InverseTransform().Translation)
	w.align(16)

	return w.buf
}

// EncodeUserData encodes custom shader data.
func EncodeUserData[T tilemap.UserData](d T) []byte {
	return d.AppendUniform(make([]byte, 0, d.UniformSize()))
}

// EncodeTiles encodes tile codes as a little-endian array<u32>. An empty map
// still gets one zero element, since zero-sized bindings are invalid.
func EncodeTiles(tiles []uint32) []byte {
	if len(tiles) == 0 {
		return make([]byte, 4)
	}
	buf := make([]byte, 0, 4*len(tiles))
	for _, t := range tiles {
		buf = binary.LittleEndian.AppendUint32(buf, t)
	}
	return buf
}

// BindGroupLayoutEntries describes the tilemap bind group for a user data
// struct of userDataSize bytes.
func BindGroupLayoutEntries(userDataSize int) []gputypes.BindGroupLayoutEntry {
	return []gputypes.BindGroupLayoutEntry{
		{
			Binding:    BindingUniform,
			Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
			Buffer: &gputypes.BufferBindingLayout{
				Type:           gputypes.BufferBindingTypeUniform,
				MinBindingSize: UniformSize,
			},
		},
		{
			Binding:    BindingUserData,
			Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
			Buffer: &gputypes.BufferBindingLayout{
				Type:           gputypes.BufferBindingTypeUniform,
				MinBindingSize: uint64(userDataSize),
			},
		},
		{
			Binding:    BindingTiles,
			Visibility: gputypes.ShaderStageFragment,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage},
		},
		{
			Binding:    BindingAtlas,
			Visibility: gputypes.ShaderStageFragment,
			Texture: &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeFloat,
				ViewDimension: gputypes.TextureViewDimension2D,
			},
		},
		{
			Binding:    BindingSampler,
			Visibility: gputypes.ShaderStageFragment,
			Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
		},
	}
}
