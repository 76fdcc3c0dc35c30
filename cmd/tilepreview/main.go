// Command tilepreview renders a YAML tile map definition to a PNG image.
//
// Usage:
//
//	tilepreview -map level.yaml -output level.png [-sprites] [-outline 1]
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/gg"
	"github.com/gogpu/tilemap"
	"github.com/gogpu/tilemap/atlasimage"
	"github.com/gogpu/tilemap/mapfile"
	"github.com/gogpu/tilemap/preview"
)

func main() {
	var (
		mapPath = flag.String("map", "", "map definition (YAML)")
		output  = flag.String("output", "map.png", "output file")
		width   = flag.Int("width", 0, "image width, 0 fits the map")
		height  = flag.Int("height", 0, "image height, 0 fits the map")
		margin  = flag.Float64("margin", 8, "margin in pixels")
		outline = flag.Float64("outline", 0, "tile outline width, 0 disables")
		flipY   = flag.Bool("flip-y", false, "treat world y as pointing up")
		sprites = flag.Bool("sprites", false, "draw atlas sprites instead of palette colors")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *mapPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	tilemap.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	def, err := mapfile.Load(*mapPath)
	if err != nil {
		log.Fatalf("Failed to load map: %v", err)
	}
	m, err := def.Build()
	if err != nil {
		log.Fatalf("Failed to build map: %v", err)
	}

	opts := preview.Options{
		Width:        *width,
		Height:       *height,
		Margin:       *margin,
		Background:   gg.RGB(0.1, 0.1, 0.12),
		OutlineWidth: *outline,
		Outline:      gg.RGBA2(0, 0, 0, 0.6),
		FlipY:        *flipY,
	}

	if def.Atlas != "" {
		info, err := atlasimage.Load(m)
		if err != nil {
			log.Fatalf("Failed to attach atlas: %v", err)
		}
		if *sprites {
			img, err := gg.LoadImage(def.AtlasPath())
			if err != nil {
				log.Fatalf("Failed to decode %s atlas: %v", info.Format, err)
			}
			opts.Atlas = img
		}
	}

	if err := preview.SavePNG(m, *output, opts); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	size := m.Uniform().WorldSize()
	log.Printf("Map saved to %s (%dx%d tiles, world %.0fx%.0f)\n",
		*output, m.Size().X, m.Size().Y, size.X, size.Y)
}
