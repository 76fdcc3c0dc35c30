package gpulayout

import (
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/tilemap"
	"github.com/google/go-cmp/cmp"
)

func readF32(b []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))
}

func readU32(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off:])
}

func testMap() *tilemap.Map[tilemap.NoUserData] {
	m := tilemap.New(tilemap.U2(4, 3), nil, tilemap.V2(16, 16)).
		WithProjection(tilemap.Isometric).
		WithPadding(tilemap.V2(0, 0), tilemap.V2(0, 0), tilemap.V2(0, 0)).
		WithTransform(tilemap.TranslateAffine(7, 8, 9)).
		Build()
	m.AtlasLoaded(tilemap.V2(64, 32))
	return m
}

func TestEncodeUniform_Size(t *testing.T) {
	b := EncodeUniform(testMap().Uniform())
	if len(b) != UniformSize {
		t.Fatalf("len(EncodeUniform) = %d, want %d", len(b), UniformSize)
	}
	if UniformSize%16 != 0 {
		t.Errorf("UniformSize = %d, not a multiple of 16", UniformSize)
	}
}

func TestEncodeUniform_Offsets(t *testing.T) {
	b := EncodeUniform(testMap().Uniform())

	u32s := []struct {
		name string
		off  int
		want uint32
	}{
		{"map_size.x", 0, 4},
		{"map_size.y", 4, 3},
		{"n_tiles.x", 208, 4},
		{"n_tiles.y", 212, 2},
	}
	for _, tt := range u32s {
		if got := readU32(b, tt.off); got != tt.want {
			t.Errorf("%s @%d = %d, want %d", tt.name, tt.off, got, tt.want)
		}
	}

	f32s := []struct {
		name string
		off  int
		want float32
	}{
		{"atlas_size.x", 8, 64},
		{"atlas_size.y", 12, 32},
		{"tile_size.x", 16, 16},
		{"tile_anchor_point.x", 48, 0.5},
		{"tile_anchor_point.y", 52, 0},
		// Projection columns: (0.5, 0.5, 0), (-0.5, 0.5, 0), (0, 0, 1).
		{"projection[0].x", 64, 0.5},
		{"projection[0].y", 68, 0.5},
		{"projection[1].x", 80, -0.5},
		{"projection[1].y", 84, 0.5},
		{"projection[2].z", 104, 1},
		// Inverse of the xy block is [[1, 1], [-1, 1]].
		{"inverse_projection[0].x", 112, 1},
		{"inverse_projection[0].y", 116, -1},
		{"inverse_projection[1].x", 120, 1},
		{"inverse_projection[1].y", 124, 1},
		{"global_transform_matrix[0].x", 128, 1},
		{"global_transform_matrix[1].y", 148, 1},
		{"global_transform_matrix[2].z", 168, 1},
		{"global_transform_translation.x", 176, 7},
		{"global_transform_translation.y", 180, 8},
		{"global_transform_translation.z", 184, 9},
		{"world_size.x", 192, 56},
		{"world_size.y", 196, 56},
		{"world_offset.x", 200, -4},
		{"world_offset.y", 204, -28},
		{"global_inverse_transform_matrix[0].x", 224, 1},
		{"global_inverse_transform_translation.x", 272, -7},
		{"global_inverse_transform_translation.y", 276, -8},
		{"global_inverse_transform_translation.z", 280, -9},
	}
	for _, tt := range f32s {
		if got := readF32(b, tt.off); got != tt.want {
			t.Errorf("%s @%d = %g, want %g", tt.name, tt.off, got, tt.want)
		}
	}

	// Column padding stays zero.
	for _, off := range []int{56, 60, 76, 92, 108, 188, 216, 220, 284} {
		if got := readU32(b, off); got != 0 {
			t.Errorf("padding @%d = %#x, want 0", off, got)
		}
	}
}

func TestUniformWGSL_FieldOrder(t *testing.T) {
	fields := []string{
		"map_size", "atlas_size", "tile_size", "inner_padding",
		"outer_padding_topleft", "outer_padding_bottomright", "tile_anchor_point",
		"projection", "inverse_projection",
		"global_transform_matrix", "global_transform_translation",
		"world_size", "world_offset", "n_tiles",
		"global_inverse_transform_matrix", "global_inverse_transform_translation",
	}
	last := -1
	for _, f := range fields {
		i := strings.Index(UniformWGSL, "    "+f+":")
		if i < 0 {
			t.Fatalf("UniformWGSL lacks field %q", f)
		}
		if i < last {
			t.Errorf("field %q out of order", f)
		}
		last = i
	}
}

func TestEncodeTiles(t *testing.T) {
	got := EncodeTiles([]uint32{1, 0x01020304})
	want := []byte{1, 0, 0, 0, 4, 3, 2, 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("EncodeTiles mismatch (-want +got):\n%s", diff)
	}
	if got := EncodeTiles(nil); len(got) != 4 {
		t.Errorf("len(EncodeTiles(nil)) = %d, want 4", len(got))
	}
}

func TestEncodeUserData(t *testing.T) {
	got := EncodeUserData(tilemap.NoUserData{})
	if diff := cmp.Diff(make([]byte, 16), got); diff != "" {
		t.Errorf("EncodeUserData(NoUserData) mismatch (-want +got):\n%s", diff)
	}
}

func TestBindGroupLayoutEntries(t *testing.T) {
	entries := BindGroupLayoutEntries(32)
	if len(entries) != 5 {
		t.Fatalf("len(entries) = %d, want 5", len(entries))
	}
	for i, e := range entries {
		if e.Binding != uint32(i) {
			t.Errorf("entries[%d].Binding = %d", i, e.Binding)
		}
	}

	if b := entries[BindingUniform].Buffer; b == nil || b.Type != gputypes.BufferBindingTypeUniform || b.MinBindingSize != UniformSize {
		t.Errorf("uniform entry = %+v", b)
	}
	if b := entries[BindingUserData].Buffer; b == nil || b.MinBindingSize != 32 {
		t.Errorf("user data entry = %+v", b)
	}
	if b := entries[BindingTiles].Buffer; b == nil || b.Type != gputypes.BufferBindingTypeReadOnlyStorage {
		t.Errorf("tiles entry = %+v", b)
	}
	if entries[BindingAtlas].Texture == nil {
		t.Error("atlas entry has no texture layout")
	}
	if entries[BindingSampler].Sampler == nil {
		t.Error("sampler entry has no sampler layout")
	}
	if entries[BindingTiles].Visibility&gputypes.ShaderStageVertex != 0 {
		t.Error("tiles entry visible to the vertex stage")
	}
}
