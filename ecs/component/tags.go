package component

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

// Name labels an entity for logs and the HUD.
type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()
