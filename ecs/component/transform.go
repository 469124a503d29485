package component

import "gonum.org/v1/gonum/spatial/r3"

type Transform struct {
	Position r3.Vec
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
