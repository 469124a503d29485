package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/trackables/prefabs"
)

func main() {
	scene := flag.String("scene", "scene.yaml", "scene prefab to load")
	prefabDir := flag.String("prefabs", prefabs.Dir(), "directory checked for edited prefabs before the embedded copies")
	watch := flag.Bool("watch", true, "reload the scene when prefab or script files change")
	debug := flag.Bool("debug", false, "draw the camera dead zone and centroid")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	prefabs.SetDir(*prefabDir)

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle("trackables")

	game, err := NewGame(*scene, *watch, *debug)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
