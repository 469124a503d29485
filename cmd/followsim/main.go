package main

import (
	"flag"
	"log"
	"os"

	"github.com/milk9111/trackables/prefabs"
)

func main() {
	scene := flag.String("scene", "scene.yaml", "scene prefab to simulate")
	prefabDir := flag.String("prefabs", "", "directory checked for edited prefabs before the embedded copies")
	frames := flag.Int("frames", 600, "number of frames to simulate")
	dt := flag.Float64("dt", 1.0/60, "frame delta in seconds")
	plotPath := flag.String("plot", "", "write a PNG chart of camera vs centroid to this path")
	flag.Parse()

	prefabs.SetDir(*prefabDir)

	samples, err := Simulate(*scene, *frames, *dt)
	if err != nil {
		log.Fatal(err)
	}
	if err := WriteCSV(os.Stdout, samples); err != nil {
		log.Fatal(err)
	}
	if *plotPath != "" {
		if err := SavePlot(*plotPath, samples); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %s", *plotPath)
	}
}
