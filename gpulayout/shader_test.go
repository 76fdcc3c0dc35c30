package gpulayout

import (
	"encoding/binary"
	"testing"

	"github.com/gogpu/naga"
)

// readAllFieldsWGSL touches every uniform field and binding so that a typo in
// any declaration fails compilation.
const readAllFieldsWGSL = `
@fragment
fn fs_main(@builtin(position) pos: vec4<f32>) -> @location(0) vec4<f32> {
    let sizes = vec2<f32>(tilemap.map_size) + tilemap.atlas_size + tilemap.tile_size
        + tilemap.inner_padding + tilemap.outer_padding_topleft
        + tilemap.outer_padding_bottomright + tilemap.tile_anchor_point
        + tilemap.world_size + tilemap.world_offset + vec2<f32>(tilemap.n_tiles);
    let projected = tilemap.projection * vec3<f32>(sizes, 1.0);
    let unprojected = tilemap.inverse_projection * projected.xy;
    let world = tilemap.global_transform_matrix * vec3<f32>(unprojected, 0.0)
        + tilemap.global_transform_translation;
    let local = tilemap.global_inverse_transform_matrix * world
        + tilemap.global_inverse_transform_translation;
    let code = map_tiles[u32(pos.x)];
    let texel = textureSample(atlas_texture, atlas_sampler, local.xy / tilemap.atlas_size);
    return texel + vec4<f32>(f32(code));
}
`

func TestUniformWGSL_Compiles(t *testing.T) {
	spirv, err := naga.Compile(UniformWGSL + readAllFieldsWGSL)
	if err != nil {
		t.Fatalf("failed to compile UniformWGSL: %v", err)
	}
	if len(spirv) < 4 {
		t.Fatalf("SPIR-V too short: %d bytes", len(spirv))
	}
	if magic := binary.LittleEndian.Uint32(spirv); magic != 0x07230203 {
		t.Errorf("invalid SPIR-V magic: 0x%08X, want 0x07230203", magic)
	}
	t.Logf("UniformWGSL compiled to %d bytes of SPIR-V", len(spirv))
}
