package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestHUDText(t *testing.T) {
	h := &HUD{}

	got := h.Text(HUDStats{Frames: 3, FPS: 59.5, Targets: 2, Centroid: r3.Vec{X: 1.3, Y: -4}, Camera: r3.Vec{X: 10}})
	assert.Contains(t, got, "Frames: 3    FPS: 59.50")
	assert.Contains(t, got, "Targets: 2")
	assert.Contains(t, got, "Centroid: 1.3, -4.0")
	assert.Contains(t, got, "Camera: 10.0, 0.0")
	assert.NotContains(t, got, "PAUSED")

	assert.Contains(t, h.Text(HUDStats{Paused: true}), "PAUSED")
}
