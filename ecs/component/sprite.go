package component

import "image/color"

// Sprite is a flat-shaded disc drawn at the entity's transform.
type Sprite struct {
	Color  color.NRGBA
	Radius float64
}

var SpriteComponent = NewComponent[Sprite]()
