// Command spriteview previews the sprites named in the tuning file at their
// in-game sizes, cycling a highlight over them.
package main

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/catcollector/ecs/render"
	"github.com/milk9111/catcollector/prefabs"
)

const (
	viewWidth  = 512
	viewHeight = 200
	slot       = 120
)

type preview struct {
	key  string
	size float64
	img  *ebiten.Image
}

type demoGame struct {
	sprites     []preview
	current     int
	tick        int
	ticksPerFrm int
}

func (g *demoGame) Update() error {
	if len(g.sprites) <= 1 {
		return nil
	}
	g.tick++
	if g.tick >= g.ticksPerFrm {
		g.tick = 0
		g.current = (g.current + 1) % len(g.sprites)
	}
	return nil
}

func (g *demoGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0xf4, 0xee, 0xe0, 0xff})
	for i, p := range g.sprites {
		x := float64(i*slot) + (slot-p.size)/2
		y := (viewHeight - p.size) / 2
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(p.size/float64(p.img.Bounds().Dx()), p.size/float64(p.img.Bounds().Dy()))
		op.GeoM.Translate(x, y)
		if i != g.current {
			op.ColorScale.ScaleAlpha(0.4)
		}
		screen.DrawImage(p.img, op)
		ebitenutil.DebugPrintAt(screen, p.key, i*slot+10, viewHeight-24)
	}
}

func (g *demoGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return viewWidth, viewHeight
}

func loadPreviews(spec *prefabs.GameSpec) []preview {
	out := []preview{}
	add := func(key string, size float64) {
		img, err := render.LoadImage(key)
		if err != nil {
			log.Printf("spriteview: %v", err)
			return
		}
		out = append(out, preview{key: key, size: size, img: img})
	}
	add(spec.Player.Sprite, spec.Player.Width)
	for _, name := range prefabs.CategoryNames {
		c := spec.Cats.Categories[name]
		add(c.Sprite, c.Size)
	}
	return out
}

func main() {
	spec, err := prefabs.LoadGameSpec()
	if err != nil {
		log.Fatal(err)
	}
	g := &demoGame{sprites: loadPreviews(spec), ticksPerFrm: 30}
	ebiten.SetWindowSize(viewWidth, viewHeight)
	ebiten.SetWindowTitle("Cat Collector sprites")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
