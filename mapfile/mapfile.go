// Package mapfile reads tile map definitions from YAML.
//
// A definition names the map and tile sizes, a projection, the atlas image
// and the tile codes:
//
//	size: [4, 3]
//	tile_size: [16, 16]
//	projection: isometric
//	atlas: tiles.png
//	padding:
//	  inner: [1, 1]
//	transform:
//	  translate: [100, 50, 0]
//	tiles:
//	  - [0, 1, 2, 3]
//	  - [4, 5, 6, 7]
//	  - [0, 0, 0, 0]
//
// Instead of tiles, fill sets every tile to one code. A custom projection is
// given as a row-major 3x3 matrix plus an anchor.
package mapfile

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/gogpu/tilemap"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by all validation errors.
var ErrInvalid = errors.New("mapfile: invalid map definition")

// MaxCells bounds the number of tiles a definition may declare.
const MaxCells = 1 << 22

// Definition is a parsed map file.
type Definition struct {
	Size       []uint32    `yaml:"size"`
	TileSize   []float64   `yaml:"tile_size"`
	Projection string      `yaml:"projection,omitempty"`
	Matrix     [][]float64 `yaml:"matrix,omitempty"`
	Anchor     []float64   `yaml:"anchor,omitempty"`
	Padding    Padding     `yaml:"padding,omitempty"`
	Atlas      string      `yaml:"atlas"`
	Transform  Transform   `yaml:"transform,omitempty"`
	Fill       uint32      `yaml:"fill,omitempty"`
	Tiles      [][]uint32  `yaml:"tiles,omitempty"`

	// Dir is the directory the file was loaded from. Relative atlas paths
	// resolve against it.
	Dir string `yaml:"-"`
}

// Padding is the atlas padding section.
type Padding struct {
	Inner       []float64 `yaml:"inner,omitempty"`
	TopLeft     []float64 `yaml:"top_left,omitempty"`
	BottomRight []float64 `yaml:"bottom_right,omitempty"`
}

// Transform places the map in the world. It applies scale, then rotation
// about z in degrees, then translation.
type Transform struct {
	Translate []float64 `yaml:"translate,omitempty"`
	Scale     []float64 `yaml:"scale,omitempty"`
	Rotate    float64   `yaml:"rotate,omitempty"`
}

// Parse decodes and validates a definition. Unknown keys are rejected.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("mapfile: failed to parse: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Load reads and parses a definition file.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mapfile: failed to read map file: %w", err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	def.Dir = filepath.Dir(path)
	return def, nil
}

// Validate checks shapes and ranges that the YAML types cannot express.
func (d *Definition) Validate() error {
	if len(d.Size) != 2 {
		return fmt.Errorf("%w: size needs 2 values, got %d", ErrInvalid, len(d.Size))
	}
	if len(d.TileSize) != 2 {
		return fmt.Errorf("%w: tile_size needs 2 values, got %d", ErrInvalid, len(d.TileSize))
	}
	if cells := uint64(d.Size[0]) * uint64(d.Size[1]); cells > MaxCells {
		return fmt.Errorf("%w: size %dx%d exceeds %d tiles", ErrInvalid, d.Size[0], d.Size[1], MaxCells)
	}
	if !positiveFinite(d.TileSize[0]) || !positiveFinite(d.TileSize[1]) {
		return fmt.Errorf("%w: %w: %v", ErrInvalid, tilemap.ErrInvalidTileSize, d.TileSize)
	}

	if d.Matrix != nil {
		if len(d.Matrix) != 3 {
			return fmt.Errorf("%w: matrix needs 3 rows, got %d", ErrInvalid, len(d.Matrix))
		}
		for i, row := range d.Matrix {
			if len(row) != 3 {
				return fmt.Errorf("%w: matrix row %d needs 3 values, got %d", ErrInvalid, i, len(row))
			}
		}
		if d.Projection != "" {
			return fmt.Errorf("%w: projection and matrix are mutually exclusive", ErrInvalid)
		}
	} else if _, ok := tilemap.ProjectionByName(d.Projection); !ok {
		return fmt.Errorf("%w: unknown projection %q", ErrInvalid, d.Projection)
	}

	checks := []struct {
		name string
		v    []float64
		n    int
	}{
		{"anchor", d.Anchor, 2},
		{"padding.inner", d.Padding.Inner, 2},
		{"padding.top_left", d.Padding.TopLeft, 2},
		{"padding.bottom_right", d.Padding.BottomRight, 2},
		{"transform.translate", d.Transform.Translate, 3},
		{"transform.scale", d.Transform.Scale, 3},
	}
	for _, c := range checks {
		if c.v != nil && len(c.v) != c.n {
			return fmt.Errorf("%w: %s needs %d values, got %d", ErrInvalid, c.name, c.n, len(c.v))
		}
	}

	if d.Tiles != nil {
		if len(d.Tiles) != int(d.Size[1]) {
			return fmt.Errorf("%w: tiles has %d rows, map height is %d", ErrInvalid, len(d.Tiles), d.Size[1])
		}
		for y, row := range d.Tiles {
			if len(row) != int(d.Size[0]) {
				return fmt.Errorf("%w: tiles row %d has %d codes, map width is %d", ErrInvalid, y, len(row), d.Size[0])
			}
		}
		if d.Fill != 0 {
			return fmt.Errorf("%w: tiles and fill are mutually exclusive", ErrInvalid)
		}
	}
	return nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// AtlasPath returns the atlas path resolved against Dir.
func (d *Definition) AtlasPath() string {
	if d.Atlas == "" || filepath.IsAbs(d.Atlas) || d.Dir == "" {
		return d.Atlas
	}
	return filepath.Join(d.Dir, d.Atlas)
}

// ProjectionValue returns the projection described by the definition.
func (d *Definition) ProjectionValue() (tilemap.Projection, error) {
	var p tilemap.Projection
	if d.Matrix != nil {
		m := tilemap.Mat3{
			A: d.Matrix[0][0], B: d.Matrix[0][1], C: d.Matrix[0][2],
			D: d.Matrix[1][0], E: d.Matrix[1][1], F: d.Matrix[1][2],
			G: d.Matrix[2][0], H: d.Matrix[2][1], I: d.Matrix[2][2],
		}
		var err error
		if p, err = tilemap.NewProjection(m, tilemap.Vec2{}); err != nil {
			return tilemap.Projection{}, fmt.Errorf("mapfile: %w", err)
		}
	} else {
		p, _ = tilemap.ProjectionByName(d.Projection)
	}
	if d.Anchor != nil {
		p.Anchor = tilemap.V2(d.Anchor[0], d.Anchor[1])
	}
	return p, nil
}

// TransformValue returns the object transform described by the definition.
func (d *Definition) TransformValue() tilemap.Affine3 {
	t := d.Transform
	s := tilemap.V3(1, 1, 1)
	if t.Scale != nil {
		s = tilemap.V3(t.Scale[0], t.Scale[1], t.Scale[2])
	}
	var tr tilemap.Vec3
	if t.Translate != nil {
		tr = tilemap.V3(t.Translate[0], t.Translate[1], t.Translate[2])
	}
	rot := tilemap.RotateZ(t.Rotate * math.Pi / 180)
	return tilemap.Affine3{
		Matrix:      rot.Multiply(tilemap.Scale3(s.X, s.Y, s.Z)),
		Translation: tr,
	}
}

// Build creates the map. The atlas handle is the resolved atlas path; the
// map becomes ready once the caller reports the atlas size.
func (d *Definition) Build() (*tilemap.Map[tilemap.NoUserData], error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	p, err := d.ProjectionValue()
	if err != nil {
		return nil, err
	}
	var pad [3]tilemap.Vec2
	for i, v := range [][]float64{d.Padding.Inner, d.Padding.TopLeft, d.Padding.BottomRight} {
		if v != nil {
			pad[i] = tilemap.V2(v[0], v[1])
		}
	}

	b := tilemap.New(
		tilemap.U2(d.Size[0], d.Size[1]),
		d.AtlasPath(),
		tilemap.V2(d.TileSize[0], d.TileSize[1]),
	).
		WithProjection(p).
		WithPadding(pad[0], pad[1], pad[2]).
		WithTransform(d.TransformValue())

	m := b.BuildAndSet(func(x, y uint32) uint32 {
		if d.Tiles == nil {
			return d.Fill
		}
		return d.Tiles[y][x]
	})

	tilemap.Logger().Debug("mapfile: map built",
		slog.String("atlas", d.AtlasPath()),
		slog.Any("size", m.Size()))
	return m, nil
}
