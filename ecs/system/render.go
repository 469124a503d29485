package system

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/trackables/ecs"
	"github.com/milk9111/trackables/ecs/component"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	deadZoneColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x40}
	centroidColor = color.NRGBA{R: 0xff, G: 0x40, B: 0x40, A: 0xff}
)

// View maps world positions onto the screen around a camera.
type View struct {
	Center r3.Vec
	Zoom   float64
	Width  float64
	Height float64
}

// ToScreen projects p. Depth is ignored.
func (v View) ToScreen(p r3.Vec) (float64, float64) {
	zoom := v.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return (p.X-v.Center.X)*zoom + v.Width/2, (p.Y-v.Center.Y)*zoom + v.Height/2
}

type RenderSystem struct {
	// Debug outlines the camera dead zone and marks its centroid.
	Debug bool

	camEntity ecs.Entity
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

// View returns the current camera view for a screen size.
func (r *RenderSystem) View(w *ecs.World, width, height float64) View {
	if !ecs.IsAlive(w, r.camEntity) {
		r.camEntity, _ = ecs.First(w, component.CameraTagComponent.Kind())
	}
	view := View{Zoom: 1, Width: width, Height: height}
	if t, ok := ecs.Get(w, r.camEntity, component.TransformComponent.Kind()); ok {
		view.Center = t.Position
	}
	if c, ok := ecs.Get(w, r.camEntity, component.CameraComponent.Kind()); ok && c.Zoom > 0 {
		view.Zoom = c.Zoom
	}
	return view
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	bounds := screen.Bounds()
	view := r.View(w, float64(bounds.Dx()), float64(bounds.Dy()))

	type drawable struct {
		e ecs.Entity
		s *component.Sprite
		t *component.Transform
	}
	var items []drawable
	ecs.ForEach2(w, component.SpriteComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, s *component.Sprite, t *component.Transform) {
		items = append(items, drawable{e: e, s: s, t: t})
	})
	// far things first
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].t.Position.Z != items[j].t.Position.Z {
			return items[i].t.Position.Z > items[j].t.Position.Z
		}
		return uint64(items[i].e) < uint64(items[j].e)
	})

	for _, it := range items {
		x, y := view.ToScreen(it.t.Position)
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(it.s.Radius*view.Zoom), it.s.Color, true)
	}

	if r.Debug {
		r.drawFollowDebug(w, screen, view)
	}
}

// drawFollowDebug outlines the camera's dead zone and marks the goal it is
// chasing.
func (r *RenderSystem) drawFollowDebug(w *ecs.World, screen *ebiten.Image, view View) {
	f, ok := ecs.Get(w, r.camEntity, component.SmoothFollowComponent.Kind())
	if !ok {
		return
	}
	if f.DeadZone.X > 0 || f.DeadZone.Y > 0 {
		x, y := view.ToScreen(r3.Sub(view.Center, f.DeadZone))
		vector.StrokeRect(screen, float32(x), float32(y), float32(2*f.DeadZone.X*view.Zoom), float32(2*f.DeadZone.Y*view.Zoom), 1, deadZoneColor, false)
	}
	if !HasTargets(w, r.camEntity) {
		return
	}
	cx, cy := view.ToScreen(FollowGoal(w, r.camEntity, f))
	vector.StrokeLine(screen, float32(cx-6), float32(cy), float32(cx+6), float32(cy), 1, centroidColor, false)
	vector.StrokeLine(screen, float32(cx), float32(cy-6), float32(cx), float32(cy+6), 1, centroidColor, false)
}
