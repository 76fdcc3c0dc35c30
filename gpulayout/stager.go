package gpulayout

import (
	"bytes"
	"log/slog"

	"github.com/gogpu/tilemap"
)

// Frame is the data a renderer uploads for one map in one frame. A nil
// field means the buffer content is unchanged since the previous frame.
type Frame struct {
	Uniform  []byte
	UserData []byte
	Tiles    []byte

	// Ready mirrors Map.Ready. Renderers must not draw a map that is not
	// ready, because the atlas tile counts are still zero.
	Ready bool
}

// Changed reports whether any buffer needs an upload.
func (f Frame) Changed() bool {
	return f.Uniform != nil || f.UserData != nil || f.Tiles != nil
}

// Stager tracks the last uploaded encoding of one map so that unchanged
// buffers are not written again. The zero value is ready to use.
type Stager struct {
	uniform  []byte
	userData []byte
	tiles    []byte

	gen    uint64
	staged bool
}

// Stage encodes m and returns the buffers that differ from the previous call.
// It tracks the map's Generation and leaves the dirty flag alone, so other
// consumers of the same map are not affected.
func Stage[T tilemap.UserData](s *Stager, m *tilemap.Map[T]) Frame {
	f := Frame{Ready: m.Ready()}
	if s.staged && s.gen == m.Generation() {
		return f
	}

	if u := EncodeUniform(m.Uniform()); !bytes.Equal(u, s.uniform) {
		s.uniform = u
		f.Uniform = u
	}
	if d := EncodeUserData(m.UserData()); !bytes.Equal(d, s.userData) {
		s.userData = d
		f.UserData = d
	}
	if t := EncodeTiles(m.Tiles()); !bytes.Equal(t, s.tiles) {
		s.tiles = t
		f.Tiles = t
	}
	s.gen, s.staged = m.Generation(), true

	tilemap.Logger().Debug("gpulayout: staged map",
		slog.Bool("uniform", f.Uniform != nil),
		slog.Bool("user_data", f.UserData != nil),
		slog.Bool("tiles", f.Tiles != nil))
	return f
}

// Reset forgets the previous encoding, forcing a full upload on the next
// Stage, for example after the GPU buffers were recreated.
func (s *Stager) Reset() {
	*s = Stager{}
}
