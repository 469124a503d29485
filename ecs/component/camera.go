package component

// Camera turns an entity's transform into the view origin. The view is
// centred on the transform position.
type Camera struct {
	Zoom float64
}

var CameraComponent = NewComponent[Camera]()
