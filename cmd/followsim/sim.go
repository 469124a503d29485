package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/milk9111/trackables/ecs"
	"github.com/milk9111/trackables/ecs/component"
	"github.com/milk9111/trackables/ecs/entity"
	"github.com/milk9111/trackables/ecs/system"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Sample is the camera state after one simulated frame.
type Sample struct {
	Frame    int
	Time     float64
	Targets  int
	Centroid r3.Vec
	Camera   r3.Vec
}

// Simulate builds scene in a fresh world and records the first camera's
// position against its target centroid every frame.
func Simulate(scene string, frames int, dt float64) ([]Sample, error) {
	if frames < 0 {
		return nil, fmt.Errorf("frames must not be negative, got %d", frames)
	}
	if dt <= 0 {
		return nil, fmt.Errorf("dt must be positive, got %g", dt)
	}

	w := ecs.NewWorld()
	system.Install(w)
	if _, err := entity.LoadScene(w, scene); err != nil {
		return nil, err
	}
	camera, ok := ecs.First(w, component.CameraTagComponent.Kind())
	if !ok {
		return nil, fmt.Errorf("scene %s has no camera", scene)
	}

	samples := make([]Sample, 0, frames)
	for i := 0; i < frames; i++ {
		w.Frame(dt)

		s := Sample{
			Frame:    i,
			Time:     w.Time().UnscaledElapsed,
			Targets:  len(system.Positions(w, camera)),
			Centroid: system.Centroid(w, camera),
		}
		if t, ok := ecs.Get(w, camera, component.TransformComponent.Kind()); ok {
			s.Camera = t.Position
		}
		samples = append(samples, s)
	}
	return samples, nil
}

func WriteCSV(out io.Writer, samples []Sample) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"frame", "time", "targets", "centroid_x", "centroid_y", "camera_x", "camera_y"}); err != nil {
		return err
	}
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }
	for _, s := range samples {
		row := []string{
			strconv.Itoa(s.Frame),
			f(s.Time),
			strconv.Itoa(s.Targets),
			f(s.Centroid.X),
			f(s.Centroid.Y),
			f(s.Camera.X),
			f(s.Camera.Y),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// SavePlot charts the camera and centroid X and Y over time.
func SavePlot(path string, samples []Sample) error {
	p := plot.New()
	p.Title.Text = "Camera follow"
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Position"

	series := []struct {
		label string
		value func(Sample) float64
	}{
		{"centroid x", func(s Sample) float64 { return s.Centroid.X }},
		{"camera x", func(s Sample) float64 { return s.Camera.X }},
		{"centroid y", func(s Sample) float64 { return s.Centroid.Y }},
		{"camera y", func(s Sample) float64 { return s.Camera.Y }},
	}
	for i, sr := range series {
		pts := make(plotter.XYs, 0, len(samples))
		for _, s := range samples {
			pts = append(pts, plotter.XY{X: s.Time, Y: sr.value(s)})
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("%s: %w", sr.label, err)
		}
		line.Color = plotColors[i%len(plotColors)]
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(sr.label, line)
	}
	p.Legend.Top = true

	if err := p.Save(10*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}
