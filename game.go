package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/trackables/common"
	"github.com/milk9111/trackables/dispatch"
	"github.com/milk9111/trackables/ecs"
	"github.com/milk9111/trackables/ecs/component"
	"github.com/milk9111/trackables/ecs/entity"
	"github.com/milk9111/trackables/ecs/system"
	"github.com/milk9111/trackables/prefabs"
	"golang.design/x/clipboard"
	"gonum.org/v1/gonum/spatial/r3"
)

type Game struct {
	frames int

	world    *ecs.World
	pipeline *system.Pipeline
	scene    string
	camera   ecs.Entity

	paused  bool
	quit    bool
	pauseUI *ebitenui.UI
	hud     *HUD
	debug   bool

	watcher     *prefabs.Watcher
	clipboardOK bool
}

func NewGame(scene string, watch, debug bool) (*Game, error) {
	world := ecs.NewWorld()
	world.SetPump(dispatch.Global())

	g := &Game{
		world:    world,
		pipeline: system.Install(world),
		scene:    scene,
		hud:      NewHUD(),
		debug:    debug,
	}
	g.pauseUI = NewPauseUI(g)

	if err := g.loadScene(); err != nil {
		return nil, err
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable: %v", err)
	} else {
		g.clipboardOK = true
	}

	if watch && prefabs.Dir() != "" {
		w, err := prefabs.NewWatcher(prefabs.Dir(), filepath.Join(prefabs.Dir(), "scripts"))
		if err != nil {
			log.Printf("prefab watcher disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) loadScene() error {
	if _, err := entity.LoadScene(g.world, g.scene); err != nil {
		return fmt.Errorf("load scene %s: %w", g.scene, err)
	}
	g.camera, _ = ecs.First(g.world, component.CameraTagComponent.Kind())
	return nil
}

// reload swaps the running scene for a fresh build of the prefab. The old
// scene stays in place when the new one fails to build.
func (g *Game) reload() {
	if _, err := prefabs.LoadSceneSpec(g.scene); err != nil {
		log.Printf("reload %s: %v", g.scene, err)
		return
	}
	g.world.UnloadScene()
	g.pipeline.Movers.Invalidate()
	if err := g.loadScene(); err != nil {
		log.Printf("reload: %v", err)
		return
	}
	log.Printf("reloaded %s", g.scene)
}

func (g *Game) setPaused(paused bool) {
	g.paused = paused
	if paused {
		g.world.SetTimeScale(0)
	} else {
		g.world.SetTimeScale(1)
	}
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.frames++

	g.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.setPaused(!g.paused)
	}
	if g.paused {
		g.pauseUI.Update()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.toggleTrackable("ally")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyCentroid()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}

	g.world.Frame(1 / float64(ebiten.TPS()))
	return nil
}

// pollWatcher drains pending file events and reloads once for the batch.
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	changed := false
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("prefab changed: %s", path)
			changed = true
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("prefab watcher: %v", err)
		default:
			if changed {
				g.reload()
			}
			return
		}
	}
}

// toggleTrackable flips Enabled on every trackable entity with the given name.
func (g *Game) toggleTrackable(name string) {
	ecs.ForEach2(g.world, component.NameComponent.Kind(), component.TrackableComponent.Kind(), func(_ ecs.Entity, n *component.Name, t *component.Trackable) {
		if n.Value == name {
			t.Enabled = !t.Enabled
			log.Printf("trackable %s enabled=%t", name, t.Enabled)
		}
	})
}

func (g *Game) copyCentroid() {
	c := system.Centroid(g.world, g.camera)
	s := fmt.Sprintf("%.2f,%.2f,%.2f", c.X, c.Y, c.Z)
	if !g.clipboardOK {
		log.Printf("centroid %s (clipboard unavailable)", s)
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(s))
	log.Printf("copied centroid %s", s)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.pipeline.Render.Debug = g.debug
	g.pipeline.Render.Draw(g.world, screen)

	var camPos r3.Vec
	if t, ok := ecs.Get(g.world, g.camera, component.TransformComponent.Kind()); ok {
		camPos = t.Position
	}
	g.hud.Draw(screen, HUDStats{
		Frames:   g.frames,
		FPS:      ebiten.ActualFPS(),
		Targets:  len(system.Positions(g.world, g.camera)),
		Centroid: system.Centroid(g.world, g.camera),
		Camera:   camPos,
		Paused:   g.paused,
	})

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
