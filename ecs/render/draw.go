// Package render draws session snapshots with ebiten.
package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/catcollector/session"
	"golang.org/x/image/font/basicfont"
)

var (
	backgroundColor = color.RGBA{R: 0xf4, G: 0xee, B: 0xe0, A: 0xff}
	hudColor        = color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}
	bannerColor     = color.RGBA{R: 0xd0, G: 0x30, B: 0x30, A: 0xff}
	overlayColor    = color.RGBA{A: 0xb0}
)

const (
	hudMargin   = 10
	labelScale  = 2
	bannerScale = 4
	titleScale  = 5
)

// Renderer draws the arena, the HUD and the game over overlay.
type Renderer struct {
	face  text.Face
	Debug bool
}

func NewRenderer(debug bool) *Renderer {
	return &Renderer{face: text.NewGoXFace(basicfont.Face7x13), Debug: debug}
}

func (r *Renderer) Draw(screen *ebiten.Image, snap session.Snapshot) {
	if r == nil || screen == nil {
		return
	}

	screen.Fill(backgroundColor)

	for _, c := range snap.Cats {
		r.drawSprite(screen, c.Sprite)
	}
	if snap.State != session.Idle {
		r.drawSprite(screen, snap.Player)
	}

	for _, l := range snap.Labels {
		op := &text.DrawOptions{}
		op.GeoM.Scale(labelScale, labelScale)
		op.GeoM.Translate(l.X, l.Y)
		op.ColorScale.ScaleWithColor(l.Color)
		op.ColorScale.ScaleAlpha(float32(l.Alpha))
		text.Draw(screen, l.Text, r.face, op)
	}

	r.drawHUD(screen, snap)

	if snap.SpeedUp {
		r.drawCentered(screen, "SPEED UP!", snap.Arena, snap.Arena.T/3, bannerScale, bannerColor)
	}
	if snap.GameOver {
		r.drawGameOver(screen, snap)
	}

	if r.Debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.1f  cats: %d  level: %.2f/%.2f", ebiten.ActualFPS(), len(snap.Cats), snap.Level.Speed, snap.Level.BadChance), hudMargin, int(snap.Arena.T)-20)
	}
}

func (r *Renderer) drawSprite(screen *ebiten.Image, s session.Sprite) {
	w, h := s.BB.R-s.BB.L, s.BB.T-s.BB.B
	img := GetImage(s.Key)
	if img == nil {
		vector.FillRect(screen, float32(s.BB.L), float32(s.BB.B), float32(w), float32(h), hudColor, false)
		return
	}

	bounds := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/float64(bounds.Dx()), h/float64(bounds.Dy()))
	op.GeoM.Translate(s.BB.L, s.BB.B)
	screen.DrawImage(img, op)
}

func (r *Renderer) drawHUD(screen *ebiten.Image, snap session.Snapshot) {
	r.drawText(screen, fmt.Sprintf("Score: %d", snap.Score), hudMargin, hudMargin, labelScale, hudColor)
	r.drawText(screen, fmt.Sprintf("Best: %d", snap.HighScore), hudMargin, hudMargin+30, 1, hudColor)

	timeLabel := fmt.Sprintf("Time: %d", snap.Remaining)
	tw, _ := text.Measure(timeLabel, r.face, 0)
	r.drawText(screen, timeLabel, snap.Arena.R-tw*labelScale-hudMargin, hudMargin, labelScale, hudColor)
}

func (r *Renderer) drawGameOver(screen *ebiten.Image, snap session.Snapshot) {
	a := snap.Arena
	vector.FillRect(screen, float32(a.L), float32(a.B), float32(a.R-a.L), float32(a.T-a.B), overlayColor, false)

	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	mid := a.B + (a.T-a.B)/2
	r.drawCentered(screen, "GAME OVER", a, mid-120, titleScale, white)
	r.drawCentered(screen, fmt.Sprintf("Final score: %d   Best: %d", snap.Score, snap.HighScore), a, mid-30, labelScale, white)
	r.drawCentered(screen, fmt.Sprintf("Cats %d   Bad cats %d   Chonky cats %d", snap.Good, snap.Bad, snap.Chonky), a, mid+10, labelScale, white)
}

func (r *Renderer) drawCentered(screen *ebiten.Image, s string, area cp.BB, y, scale float64, clr color.Color) {
	w, _ := text.Measure(s, r.face, 0)
	x := area.L + ((area.R-area.L)-w*scale)/2
	r.drawText(screen, s, x, y, scale, clr)
}

func (r *Renderer) drawText(screen *ebiten.Image, s string, x, y, scale float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, r.face, op)
}
