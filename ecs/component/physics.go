package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores the Chipmunk2D body that drives an entity's x and y.
// The transform keeps z.
type PhysicsBody struct {
	Body     *cp.Body
	Shape    *cp.Shape
	Radius   float64
	Mass     float64
	Friction float64
	Static   bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
