// Package atlasimage probes atlas images for their pixel size and reports it
// to a map.
//
// Only the image header is read. PNG, JPEG, GIF, BMP, TIFF and WebP are
// supported.
package atlasimage

import (
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"

	// Registered decoders.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/tilemap"
)

// Info is the result of probing an atlas image.
type Info struct {
	Size   tilemap.Vec2
	Format string
}

// Decode reads the image header from r.
func Decode(r io.Reader) (Info, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return Info{}, fmt.Errorf("atlasimage: failed to decode header: %w", err)
	}
	return Info{
		Size:   tilemap.V2(float64(cfg.Width), float64(cfg.Height)),
		Format: format,
	}, nil
}

// Probe reads the image header of the file at path.
func Probe(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("atlasimage: %w", err)
	}
	defer f.Close()

	info, err := Decode(f)
	if err != nil {
		return Info{}, fmt.Errorf("%s: %w", path, err)
	}
	return info, nil
}

// Attach reports an atlas size to m. Unlike Map.AtlasLoaded it returns an
// error instead of panicking when the size does not fit the tile geometry.
// The boolean result is that of AtlasLoaded.
func Attach[T tilemap.UserData](m *tilemap.Map[T], size tilemap.Vec2) (bool, error) {
	if _, err := m.Uniform().CheckAtlasSize(size); err != nil {
		return false, fmt.Errorf("atlasimage: %w", err)
	}
	return m.AtlasLoaded(size), nil
}

// Load probes the atlas file named by the map's atlas handle, which must be a
// path string, and attaches its size.
func Load[T tilemap.UserData](m *tilemap.Map[T]) (Info, error) {
	path, ok := m.Atlas().(string)
	if !ok || path == "" {
		return Info{}, fmt.Errorf("atlasimage: atlas handle %v is not a file path", m.Atlas())
	}
	info, err := Probe(path)
	if err != nil {
		return Info{}, err
	}
	if _, err := Attach(m, info.Size); err != nil {
		return Info{}, fmt.Errorf("%s: %w", path, err)
	}

	tilemap.Logger().Debug("atlasimage: atlas attached",
		slog.String("path", path),
		slog.String("format", info.Format),
		slog.Any("size", info.Size))
	return info, nil
}
