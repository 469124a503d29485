package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
	"gonum.org/v1/gonum/spatial/r3"
)

type HUDStats struct {
	Frames   int
	FPS      float64
	Targets  int
	Centroid r3.Vec
	Camera   r3.Vec
	Paused   bool
}

// HUD prints frame stats and the camera's tracking state in the top-left
// corner.
type HUD struct {
	face ebtext.Face
}

func NewHUD() *HUD {
	return &HUD{face: ebtext.NewGoXFace(basicfont.Face7x13)}
}

func (h *HUD) Draw(screen *ebiten.Image, s HUDStats) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(8, 8)
	op.ColorScale.ScaleWithColor(color.White)
	op.LineSpacing = 16
	ebtext.Draw(screen, h.Text(s), h.face, op)
}

func (h *HUD) Text(s HUDStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Frames: %d    FPS: %.2f\n", s.Frames, s.FPS)
	fmt.Fprintf(&b, "Targets: %d\n", s.Targets)
	fmt.Fprintf(&b, "Centroid: %.1f, %.1f\n", s.Centroid.X, s.Centroid.Y)
	fmt.Fprintf(&b, "Camera: %.1f, %.1f\n", s.Camera.X, s.Camera.Y)
	if s.Paused {
		b.WriteString("PAUSED\n")
	}
	b.WriteString("[Tab] toggle ally  [C] copy centroid  [F1] debug  [Esc] pause")
	return b.String()
}
