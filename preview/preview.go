// Package preview rasterizes a tile map on the CPU with gg.
//
// Without an atlas image every tile is filled as its projected quad, with a
// palette color chosen by tile code. With an atlas image each tile is drawn
// as its atlas sprite, placed by the projection anchor; this needs an object
// transform without rotation or shear.
package preview

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/tilemap"
)

// ErrEmptyMap is returned for maps without tiles or with a degenerate world
// footprint.
var ErrEmptyMap = errors.New("preview: map has no visible area")

// DefaultPalette cycles through a few distinguishable colors.
var DefaultPalette = []gg.RGBA{
	gg.Hex("#3b4252"),
	gg.Hex("#88c0d0"),
	gg.Hex("#a3be8c"),
	gg.Hex("#ebcb8b"),
	gg.Hex("#d08770"),
	gg.Hex("#b48ead"),
	gg.Hex("#bf616a"),
	gg.Hex("#e5e9f0"),
}

// Options control the rendering.
type Options struct {
	// Width and Height of the image. Zero fits the map's world footprint at
	// one pixel per world unit.
	Width, Height int

	// Margin around the map, in pixels.
	Margin float64

	Background gg.RGBA

	// Palette colors tiles by code modulo its length. Nil uses DefaultPalette.
	Palette []gg.RGBA

	// OutlineWidth strokes every tile edge when positive.
	OutlineWidth float64
	Outline      gg.RGBA

	// FlipY treats world y as pointing up.
	FlipY bool

	// Atlas is the decoded atlas image. It is used only when the map is ready
	// and its transform keeps sprites axis-aligned.
	Atlas *gg.ImageBuf
}

// view maps world xy to canvas pixels.
type view struct {
	min, max tilemap.Vec2
	scale    float64
	origin   tilemap.Vec2
	flipY    bool
}

func (v view) project(p tilemap.Vec3) (x, y float64) {
	x = (p.X-v.min.X)*v.scale + v.origin.X
	if v.flipY {
		y = (v.max.Y-p.Y)*v.scale + v.origin.Y
	} else {
		y = (p.Y-v.min.Y)*v.scale + v.origin.Y
	}
	return x, y
}

// bounds returns the world-space bounding box of the quads drawn for m.
func bounds[T tilemap.UserData](m *tilemap.Map[T], sprites bool) (lo, hi tilemap.Vec2) {
	size := m.Size()
	lo = tilemap.V2(math.Inf(1), math.Inf(1))
	hi = tilemap.V2(math.Inf(-1), math.Inf(-1))
	for y := range size.Y {
		for x := range size.X {
			corners := m.TileCorners(x, y)
			if sprites {
				corners = m.SpriteCorners(x, y)
			}
			for _, c := range corners {
				lo, hi = lo.Min(c.XY()), hi.Max(c.XY())
			}
		}
	}
	return lo, hi
}

func newView(lo, hi tilemap.Vec2, opts Options) (view, int, int) {
	ext := hi.Sub(lo)
	w, h := opts.Width, opts.Height
	v := view{min: lo, max: hi, scale: 1, flipY: opts.FlipY}
	if w <= 0 || h <= 0 {
		w = int(math.Ceil(ext.X + 2*opts.Margin))
		h = int(math.Ceil(ext.Y + 2*opts.Margin))
	} else {
		v.scale = math.Min(
			(float64(w)-2*opts.Margin)/ext.X,
			(float64(h)-2*opts.Margin)/ext.Y)
	}
	v.origin = tilemap.V2(
		(float64(w)-ext.X*v.scale)/2,
		(float64(h)-ext.Y*v.scale)/2)
	return v, w, h
}

// axisAligned reports whether the object transform keeps sprites
// axis-aligned rectangles.
func axisAligned[T tilemap.UserData](m *tilemap.Map[T]) bool {
	t := m.Uniform().Transform().Matrix
	return t.B == 0 && t.D == 0
}

// Render draws m into a new gg context.
func Render[T tilemap.UserData](m *tilemap.Map[T], opts Options) (*gg.Context, error) {
	size := m.Size()
	if size.Area() == 0 {
		return nil, ErrEmptyMap
	}
	useAtlas := opts.Atlas != nil && m.Ready() && axisAligned(m)
	lo, hi := bounds(m, useAtlas)
	ext := hi.Sub(lo)
	if !(ext.X > 0 && ext.Y > 0) {
		return nil, fmt.Errorf("%w: world extent %v", ErrEmptyMap, ext)
	}
	v, w, h := newView(lo, hi, opts)

	palette := opts.Palette
	if len(palette) == 0 {
		palette = DefaultPalette
	}

	dc := gg.NewContext(w, h)
	dc.ClearWithColor(opts.Background)

	tiles := m.Tiles()
	for y := range size.Y {
		for x := range size.X {
			code := tiles[y*size.X+x]
			if useAtlas {
				drawSprite(dc, m.Uniform(), opts.Atlas, code, m.SpriteCorners(x, y), v)
				continue
			}
			c := palette[int(code)%len(palette)]
			tracePath(dc, m.TileCorners(x, y), v)
			dc.SetRGBA(c.R, c.G, c.B, c.A)
			if err := dc.Fill(); err != nil {
				return nil, fmt.Errorf("preview: fill tile (%d, %d): %w", x, y, err)
			}
		}
	}

	if opts.OutlineWidth > 0 {
		dc.SetLineWidth(opts.OutlineWidth)
		dc.SetRGBA(opts.Outline.R, opts.Outline.G, opts.Outline.B, opts.Outline.A)
		for y := range size.Y {
			for x := range size.X {
				tracePath(dc, m.TileCorners(x, y), v)
			}
		}
		if err := dc.Stroke(); err != nil {
			return nil, fmt.Errorf("preview: stroke outlines: %w", err)
		}
	}

	tilemap.Logger().Debug("preview: rendered map",
		slog.Int("width", w),
		slog.Int("height", h),
		slog.Bool("atlas", useAtlas))
	return dc, nil
}

func tracePath(dc *gg.Context, corners [4]tilemap.Vec3, v view) {
	x, y := v.project(corners[0])
	dc.MoveTo(x, y)
	for _, c := range corners[1:] {
		x, y = v.project(c)
		dc.LineTo(x, y)
	}
	dc.ClosePath()
}

func drawSprite(dc *gg.Context, u *tilemap.CoordinateUniform, atlas *gg.ImageBuf, code uint32, corners [4]tilemap.Vec3, v view) {
	n := u.TileCount()
	if n.X == 0 || n.Y == 0 {
		return
	}
	region, _ := u.AtlasRegion(code % (n.X * n.Y))

	x0, y0 := v.project(corners[0])
	x1, y1 := v.project(corners[2])
	src := image.Rect(
		int(region.Min.X), int(region.Min.Y),
		int(region.Max.X), int(region.Max.Y))
	dc.DrawImageEx(atlas, gg.DrawImageOptions{
		X:         math.Min(x0, x1),
		Y:         math.Min(y0, y1),
		DstWidth:  math.Abs(x1 - x0),
		DstHeight: math.Abs(y1 - y0),
		SrcRect:   &src,
	})
}

// Image renders m and returns the result.
func Image[T tilemap.UserData](m *tilemap.Map[T], opts Options) (image.Image, error) {
	dc, err := Render(m, opts)
	if err != nil {
		return nil, err
	}
	defer dc.Close()
	return dc.Image(), nil
}

// SavePNG renders m to a PNG file.
func SavePNG[T tilemap.UserData](m *tilemap.Map[T], path string, opts Options) error {
	dc, err := Render(m, opts)
	if err != nil {
		return err
	}
	defer dc.Close()
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}
