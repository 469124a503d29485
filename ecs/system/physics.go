package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/trackables/ecs"
	"github.com/milk9111/trackables/ecs/component"
)

// PhysicsSystem owns the Chipmunk space. It creates bodies for new
// PhysicsBody components, steps the space on FixedUpdate and copies body
// positions back into transforms.
type PhysicsSystem struct {
	space  *cp.Space
	bodies map[ecs.Entity]*component.PhysicsBody
	hooked *ecs.World
}

func NewPhysicsSystem() *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})
	return &PhysicsSystem{
		space:  space,
		bodies: make(map[ecs.Entity]*component.PhysicsBody),
	}
}

// Space returns the underlying Chipmunk space.
func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.hooked != w {
		ps.hooked = w
		w.OnDestroy(func(w *ecs.World, e ecs.Entity) {
			ps.removeBody(e)
		})
	}

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, b *component.PhysicsBody, t *component.Transform) {
		if b.Body == nil {
			ps.createBody(e, b, t)
		}
	})

	dt := w.Time().StepDelta()
	if dt > 0 {
		ps.space.Step(dt)
	}

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, b *component.PhysicsBody, t *component.Transform) {
		if b.Body == nil || b.Static {
			return
		}
		pos := b.Body.Position()
		t.Position.X = pos.X
		t.Position.Y = pos.Y
	})
}

func (ps *PhysicsSystem) createBody(e ecs.Entity, b *component.PhysicsBody, t *component.Transform) {
	radius := b.Radius
	if radius <= 0 {
		radius = 8
	}

	var body *cp.Body
	if b.Static {
		body = cp.NewKinematicBody()
	} else {
		mass := b.Mass
		if mass <= 0 {
			mass = 1
		}
		body = cp.NewBody(mass, cp.MomentForCircle(mass, 0, radius, cp.Vector{}))
	}
	body.SetPosition(cp.Vector{X: t.Position.X, Y: t.Position.Y})
	body.SetAngle(t.Rotation)

	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetFriction(b.Friction)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	b.Body = body
	b.Shape = shape
	ps.bodies[e] = b
}

func (ps *PhysicsSystem) removeBody(e ecs.Entity) {
	b, ok := ps.bodies[e]
	if !ok {
		return
	}
	if b.Shape != nil {
		ps.space.RemoveShape(b.Shape)
	}
	if b.Body != nil {
		ps.space.RemoveBody(b.Body)
	}
	b.Body = nil
	b.Shape = nil
	delete(ps.bodies, e)
}
