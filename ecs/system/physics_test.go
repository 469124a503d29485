package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/trackables/ecs"
	"github.com/milk9111/trackables/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func spawnBody(t *testing.T, w *ecs.World, pos r3.Vec, body component.PhysicsBody) (ecs.Entity, *component.PhysicsBody, *component.Transform) {
	t.Helper()
	e := ecs.CreateEntity(w)
	tf := &component.Transform{Position: pos}
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), tf))
	require.NoError(t, ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &body))
	got, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	return e, got, tf
}

func TestPhysicsCreatesBodiesAndSyncs(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem()
	w.AddSystemTo(ecs.PhaseFixedUpdate, ps)

	_, b, tf := spawnBody(t, w, r3.Vec{X: 10, Y: 20, Z: 3}, component.PhysicsBody{Radius: 4, Mass: 2})
	w.Frame(ecs.DefaultFixedDelta * 1.5)

	require.NotNil(t, b.Body)
	require.NotNil(t, b.Shape)
	assert.Equal(t, cp.Vector{X: 10, Y: 20}, b.Body.Position())
	assert.Equal(t, r3.Vec{X: 10, Y: 20, Z: 3}, tf.Position)

	b.Body.SetVelocity(100, 0)
	w.Frame(0.1)

	assert.Greater(t, tf.Position.X, 10.0)
	assert.InDelta(t, b.Body.Position().X, tf.Position.X, 1e-9)
	assert.Equal(t, 3.0, tf.Position.Z, "depth is not simulated")
}

func TestPhysicsStaticBodiesKeepTransform(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem()
	w.AddSystemTo(ecs.PhaseFixedUpdate, ps)

	_, b, tf := spawnBody(t, w, r3.Vec{X: 5}, component.PhysicsBody{Static: true})
	w.Frame(ecs.DefaultFixedDelta * 1.5)
	require.NotNil(t, b.Body)
	assert.Equal(t, cp.BODY_KINEMATIC, b.Body.GetType())

	tf.Position.X = 50
	w.Frame(0.1)
	assert.Equal(t, 50.0, tf.Position.X)
}

func TestPhysicsRemovesBodyOnDestroy(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem()
	w.AddSystemTo(ecs.PhaseFixedUpdate, ps)

	e, b, _ := spawnBody(t, w, r3.Vec{}, component.PhysicsBody{})
	w.Frame(ecs.DefaultFixedDelta * 1.5)
	require.NotNil(t, b.Body)
	require.Len(t, ps.bodies, 1)

	ecs.DestroyEntity(w, e)

	assert.Nil(t, b.Body)
	assert.Nil(t, b.Shape)
	assert.Empty(t, ps.bodies)
}
