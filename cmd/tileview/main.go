// Command tileview shows a YAML tile map definition in a window.
//
// Arrow keys move the map, the mouse wheel zooms and a left click cycles the
// code of the tile under the cursor.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/gogpu/tilemap"
	"github.com/gogpu/tilemap/atlasimage"
	"github.com/gogpu/tilemap/ebitenmap"
	"github.com/gogpu/tilemap/mapfile"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const panSpeed = 4

type game struct {
	m        *tilemap.Map[tilemap.NoUserData]
	renderer *ebitenmap.Renderer[tilemap.NoUserData]
	width    int
	height   int
	zoom     float64
	codes    uint32
}

func (g *game) view() ebiten.GeoM {
	var v ebiten.GeoM
	v.Scale(g.zoom, g.zoom)
	v.Translate(float64(g.width)/2, float64(g.height)/2)
	return v
}

func (g *game) Update() error {
	var dx, dy float64
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dx -= panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dx += panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dy -= panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dy += panSpeed
	}
	if dx != 0 || dy != 0 {
		t := g.m.Uniform().Transform()
		g.m.SetTransform(t.Then(tilemap.TranslateAffine(dx/g.zoom, dy/g.zoom, 0)))
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		g.zoom *= 1 + 0.1*wy
		g.zoom = min(max(g.zoom, 0.25), 8)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		cx, cy := ebiten.CursorPosition()
		if x, y, ok := g.renderer.Pick(g.view(), cx, cy); ok {
			g.m.Edit(func(ix *tilemap.Indexer) {
				ix.Set(x, y, (ix.At(x, y)+1)%g.codes)
			})
		}
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.view())

	cx, cy := ebiten.CursorPosition()
	msg := fmt.Sprintf("zoom %.2f  FPS %.0f", g.zoom, ebiten.ActualFPS())
	if x, y, ok := g.renderer.Pick(g.view(), cx, cy); ok {
		msg += fmt.Sprintf("\ntile (%d, %d) code %d", x, y, g.m.At(x, y))
	}
	ebitenutil.DebugPrint(screen, msg)
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

func main() {
	var (
		mapPath = flag.String("map", "", "map definition (YAML)")
		width   = flag.Int("width", 960, "window width")
		height  = flag.Int("height", 640, "window height")
		codes   = flag.Uint("codes", 8, "number of tile codes a click cycles through")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *mapPath == "" || *codes == 0 || *codes > math.MaxUint32 {
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

	var atlas *ebiten.Image
	if def.Atlas != "" {
		img, _, err := ebitenutil.NewImageFromFile(def.AtlasPath())
		if err != nil {
			log.Fatalf("Failed to load atlas: %v", err)
		}
		b := img.Bounds()
		if _, err := atlasimage.Attach(m, tilemap.V2(float64(b.Dx()), float64(b.Dy()))); err != nil {
			log.Fatalf("Failed to attach atlas: %v", err)
		}
		atlas = img
	}

	g := &game{
		m:        m,
		renderer: ebitenmap.NewRenderer(m, atlas),
		width:    *width,
		height:   *height,
		zoom:     1,
		codes:    uint32(*codes),
	}

	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowTitle("tileview - " + *mapPath)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
