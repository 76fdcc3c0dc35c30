package tilemap

// UserData is custom per-map data passed to the shader next to the
// coordinate uniform.
//
// Implementations must be usable as zero values and copied by value. The
// binding and reflection side of the shader lives with the renderer; the map
// only needs to know the size and byte layout.
type UserData interface {
	// UniformSize is the size in bytes of the encoded value, a multiple of 16.
	UniformSize() int

	// AppendUniform appends the encoded value, laid out as the matching WGSL
	// struct, to dst.
	AppendUniform(dst []byte) []byte
}

// NoUserData is the default UserData. It encodes as a single zero vec4,
// since WGSL does not allow empty structs.
type NoUserData struct{}

// UniformSize implements UserData.
func (NoUserData) UniformSize() int { return 16 }

// AppendUniform implements UserData.
func (NoUserData) AppendUniform(dst []byte) []byte {
	return append(dst, make([]byte, 16)...)
}
