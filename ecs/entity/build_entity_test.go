package entity

import (
	"testing"

	"github.com/milk9111/trackables/dispatch"
	"github.com/milk9111/trackables/ecs"
	"github.com/milk9111/trackables/ecs/component"
	"github.com/milk9111/trackables/ecs/system"
	"github.com/milk9111/trackables/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func embeddedPrefabs(t *testing.T) {
	t.Helper()
	prev := prefabs.Dir()
	prefabs.SetDir("")
	t.Cleanup(func() { prefabs.SetDir(prev) })
}

func entityNamed(t *testing.T, w *ecs.World, name string) ecs.Entity {
	t.Helper()
	var found ecs.Entity
	ecs.ForEach(w, component.NameComponent.Kind(), func(e ecs.Entity, n *component.Name) {
		if n.Value == name {
			found = e
		}
	})
	require.NotZero(t, found, "no entity named %q", name)
	return found
}

func TestLoadScene(t *testing.T) {
	embeddedPrefabs(t)
	w := ecs.NewWorld()

	built, err := LoadScene(w, "scene.yaml")
	require.NoError(t, err)
	require.Len(t, built, 4)

	camera := entityNamed(t, w, "camera")
	tracker, ok := ecs.Get(w, camera, component.TrackerComponent.Kind())
	require.True(t, ok)
	assert.True(t, tracker.Awake)
	assert.Len(t, tracker.AllowedIDs, 2)

	follow, ok := ecs.Get(w, camera, component.SmoothFollowComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, component.TimingLateUpdate, follow.Mode)
	assert.Equal(t, r3.Vec{X: 3, Y: 3}, follow.Speed)
	assert.Equal(t, r3.Vec{X: 24, Y: 16}, follow.DeadZone)
	assert.Equal(t, r3.Vec{Y: -20}, follow.Offset)
	assert.False(t, follow.IgnoreWeights)
	assert.True(t, follow.IgnoreBody)
	assert.True(t, follow.Awake)
	assert.Equal(t, r3.Vec{Z: -10}, follow.Last)

	ally := entityNamed(t, w, "ally")
	trackable, ok := ecs.Get(w, ally, component.TrackableComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, component.NotifyOnStart, trackable.NotifyWhen)
	assert.Equal(t, 1.0, trackable.Weight)
	assert.True(t, trackable.Enabled)

	sprite, ok := ecs.Get(w, ally, component.SpriteComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, uint8(0x81), sprite.Color.R)
	assert.Equal(t, 10.0, sprite.Radius)

	crate := entityNamed(t, w, "crate")
	body, ok := ecs.Get(w, crate, component.PhysicsBodyComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 4.0, body.Mass)
}

func TestSceneRunsWithPipeline(t *testing.T) {
	embeddedPrefabs(t)
	w := ecs.NewWorld()
	pipeline := system.Install(w)
	_, err := LoadScene(w, "scene.yaml")
	require.NoError(t, err)

	for i := 0; i < 30; i++ {
		w.Update()
	}

	camera := entityNamed(t, w, "camera")
	player := entityNamed(t, w, "player")
	ally := entityNamed(t, w, "ally")
	assert.ElementsMatch(t, []ecs.Entity{player}, system.AllOfID(w, camera, "player"))
	assert.ElementsMatch(t, []ecs.Entity{ally}, system.AllOfID(w, camera, "ally"))
	assert.Empty(t, system.AllOfID(w, camera, "crate"))

	mover, ok := ecs.Get(w, player, component.ScriptMoverComponent.Kind())
	require.True(t, ok)
	assert.False(t, mover.Disabled)
	assert.Greater(t, mover.Elapsed, 0.0)

	crate := entityNamed(t, w, "crate")
	body, ok := ecs.Get(w, crate, component.PhysicsBodyComponent.Kind())
	require.True(t, ok)
	assert.NotNil(t, body.Body)

	cam, _ := ecs.Get(w, camera, component.TransformComponent.Kind())
	assert.NotEqual(t, r3.Vec{Z: -10}, cam.Position)
	assert.NotNil(t, pipeline.Render)

	w.UnloadScene()
	pipeline.Movers.Invalidate()
	assert.Empty(t, ecs.Entities(w))
	assert.Equal(t, 0, dispatch.BufferedCount[component.TrackableSpawned](w.Pump()))
	assert.Equal(t, 0, dispatch.ListenerCount[component.TrackableSpawned](w.Pump()))

	_, err = LoadScene(w, "scene.yaml")
	require.NoError(t, err)
	w.Update()
	camera = entityNamed(t, w, "camera")
	assert.True(t, system.HasTargets(w, camera))
}

func TestBuildEntitySpecErrors(t *testing.T) {
	cases := []struct {
		name string
		spec prefabs.EntityBuildSpec
	}{
		{"no_components", prefabs.EntityBuildSpec{Name: "empty"}},
		{"unknown_component", prefabs.EntityBuildSpec{Name: "x", Components: map[string]any{"jetpack": nil}}},
		{"follow_without_tracker", prefabs.EntityBuildSpec{Name: "x", Components: map[string]any{
			prefabs.ComponentTransform:    map[string]any{"x": 1},
			prefabs.ComponentSmoothFollow: map[string]any{},
		}}},
		{"bad_notify", prefabs.EntityBuildSpec{Name: "x", Components: map[string]any{
			prefabs.ComponentTrackable: map[string]any{"id": "p", "notify": "sometimes"},
		}}},
		{"bad_mode", prefabs.EntityBuildSpec{Name: "x", Components: map[string]any{
			prefabs.ComponentTracker:      map[string]any{"allowed_ids": []any{"p"}},
			prefabs.ComponentSmoothFollow: map[string]any{"mode": "whenever"},
		}}},
		{"empty_script", prefabs.EntityBuildSpec{Name: "x", Components: map[string]any{
			prefabs.ComponentScriptMover: map[string]any{},
		}}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			_, err := BuildEntitySpec(w, c.spec)
			assert.Error(t, err)
			assert.Empty(t, ecs.Entities(w))
			assert.Equal(t, 0, dispatch.ListenerCount[component.TrackableSpawned](w.Pump()))
		})
	}
}

func TestBuildEntityDefaults(t *testing.T) {
	w := ecs.NewWorld()
	e, err := BuildEntitySpec(w, prefabs.EntityBuildSpec{Name: "dot", Components: map[string]any{
		prefabs.ComponentTransform: map[string]any{"x": 2},
		prefabs.ComponentSprite:    nil,
		prefabs.ComponentCamera:    nil,
		prefabs.ComponentTrackable: map[string]any{"id": "dot"},
	}})
	require.NoError(t, err)

	tf, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	assert.Equal(t, 1.0, tf.ScaleX)
	assert.Equal(t, 1.0, tf.ScaleY)

	sprite, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
	assert.Equal(t, 8.0, sprite.Radius)
	assert.Equal(t, uint8(0xff), sprite.Color.A)

	cam, _ := ecs.Get(w, e, component.CameraComponent.Kind())
	assert.Equal(t, 1.0, cam.Zoom)
	assert.True(t, ecs.Has(w, e, component.CameraTagComponent.Kind()))

	tr, _ := ecs.Get(w, e, component.TrackableComponent.Kind())
	assert.Equal(t, component.NotifyOnEnable, tr.NotifyWhen)
	assert.Equal(t, 1.0, tr.Weight)
	assert.True(t, tr.Enabled)
}

func TestBuildSceneDiscardsOnError(t *testing.T) {
	w := ecs.NewWorld()
	_, err := BuildScene(w, prefabs.SceneSpec{Name: "broken", Entities: []prefabs.EntityBuildSpec{
		{Name: "cam", Components: map[string]any{
			prefabs.ComponentTransform: nil,
			prefabs.ComponentTracker:   map[string]any{"allowed_ids": []any{"p"}},
		}},
		{Name: "bad", Components: map[string]any{"nope": nil}},
	}})

	require.Error(t, err)
	assert.Empty(t, ecs.Entities(w))
	assert.Equal(t, 0, dispatch.ListenerCount[component.TrackableSpawned](w.Pump()))
}

func TestFollowCameraChasesTrackable(t *testing.T) {
	w := ecs.NewWorld()
	system.Install(w)

	follow := component.SmoothFollow{Mode: component.TimingUpdate}
	cam, err := NewFollowCamera(w, r3.Vec{}, follow, "hero")
	require.NoError(t, err)
	_, err = NewTrackable(w, "hero", r3.Vec{X: 100, Y: 50}, 1)
	require.NoError(t, err)

	f, _ := ecs.Get(w, cam, component.SmoothFollowComponent.Kind())
	assert.Equal(t, component.DefaultSmoothFollow().Speed, f.Speed)
	assert.Equal(t, float64(component.DefaultSnapLimit), f.SnapLimit)

	for i := 0; i < 60; i++ {
		w.Update()
	}

	tf, _ := ecs.Get(w, cam, component.TransformComponent.Kind())
	assert.Greater(t, tf.Position.X, 0.0)
	assert.Less(t, tf.Position.X, 100.0)
	assert.Greater(t, tf.Position.Y, 0.0)
	assert.InDelta(t, 100, system.Centroid(w, cam).X, 1e-9)
}

func TestDiscardReleasesHalfBuiltCamera(t *testing.T) {
	w := ecs.NewWorld()
	w.SetPump(dispatch.New())

	// a camera that got as far as subscribing its tracker
	e := ecs.CreateEntity(w)
	tr := &component.Tracker{}
	require.NoError(t, ecs.Add(w, e, component.TrackerComponent.Kind(), tr))
	system.AwakeTracker(w, e, tr)
	require.Equal(t, 1, dispatch.ListenerCount[component.TrackableSpawned](w.Pump()))

	discard(w, e)

	assert.False(t, ecs.IsAlive(w, e))
	assert.Equal(t, 0, dispatch.ListenerCount[component.TrackableSpawned](w.Pump()))
	assert.Equal(t, 0, dispatch.ListenerCount[component.TrackableRemoved](w.Pump()))
}

func TestConstructorsFailWithoutWorld(t *testing.T) {
	_, err := NewTrackable(nil, "player", r3.Vec{}, 1)
	assert.ErrorIs(t, err, component.ErrEntityNotAlive)

	_, err = NewFollowCamera(nil, r3.Vec{}, component.DefaultSmoothFollow(), "player")
	assert.ErrorIs(t, err, component.ErrEntityNotAlive)
}
