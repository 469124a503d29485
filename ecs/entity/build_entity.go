package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/trackables/ecs"
	"github.com/milk9111/trackables/ecs/component"
	"github.com/milk9111/trackables/ecs/system"
	"github.com/milk9111/trackables/prefabs"
	"gonum.org/v1/gonum/spatial/r3"
)

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any) error

var componentRegistry = map[string]componentBuildFn{
	prefabs.ComponentTransform:    addTransform,
	prefabs.ComponentSprite:       addSprite,
	prefabs.ComponentCamera:       addCamera,
	prefabs.ComponentPhysicsBody:  addPhysicsBody,
	prefabs.ComponentTrackable:    addTrackable,
	prefabs.ComponentTracker:      addTracker,
	prefabs.ComponentSmoothFollow: addSmoothFollow,
	prefabs.ComponentScriptMover:  addScriptMover,
}

// transform goes first so followers and bodies start where the prefab puts
// them; the tracker goes before smooth_follow so followers find it.
var componentBuildOrder = []string{
	prefabs.ComponentTransform,
	prefabs.ComponentSprite,
	prefabs.ComponentCamera,
	prefabs.ComponentPhysicsBody,
	prefabs.ComponentTrackable,
	prefabs.ComponentTracker,
	prefabs.ComponentSmoothFollow,
	prefabs.ComponentScriptMover,
}

// BuildEntity loads a single-entity prefab file and builds it.
func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return BuildEntitySpec(w, spec)
}

// BuildEntitySpec creates an entity and adds the components in spec. The
// entity is destroyed again when any component fails.
func BuildEntitySpec(w *ecs.World, spec prefabs.EntityBuildSpec) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: %q does not define components", spec.Name)
	}

	for name := range spec.Components {
		if _, ok := componentRegistry[name]; !ok {
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", spec.Name, name)
		}
	}

	e := ecs.CreateEntity(w)
	if spec.Name != "" {
		if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: spec.Name}); err != nil {
			discard(w, e)
			return 0, fmt.Errorf("build entity: %q: add name: %w", spec.Name, err)
		}
	}

	for _, name := range orderedComponents(spec) {
		if err := componentRegistry[name](w, e, spec.Components[name]); err != nil {
			discard(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", spec.Name, name, err)
		}
	}

	return e, nil
}

// discard destroys a half-built entity, unsubscribing its tracker first since
// the tracker system may not have hooked this world yet.
func discard(w *ecs.World, e ecs.Entity) {
	if tr, ok := ecs.Get(w, e, component.TrackerComponent.Kind()); ok {
		system.SleepTracker(w, tr)
	}
	ecs.DestroyEntity(w, e)
}

func orderedComponents(spec prefabs.EntityBuildSpec) []string {
	out := make([]string, 0, len(spec.Components))
	for _, name := range componentBuildOrder {
		if _, ok := spec.Components[name]; ok {
			out = append(out, name)
		}
	}
	return out
}

func addTransform(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Position: r3.Vec{X: spec.X, Y: spec.Y, Z: spec.Z},
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	})
}

func addSprite(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SpriteSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}
	sprite := component.Sprite{
		Color:  color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Radius: spec.Radius,
	}
	if spec.Color != nil && spec.Color.Color != nil {
		sprite.Color = color.NRGBAModel.Convert(spec.Color.Color).(color.NRGBA)
	}
	if sprite.Radius <= 0 {
		sprite.Radius = 8
	}
	return ecs.Add(w, e, component.SpriteComponent.Kind(), &sprite)
}

func addCamera(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	zoom := spec.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	if err := ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{Zoom: zoom})
}

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PhysicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Radius:   spec.Radius,
		Mass:     spec.Mass,
		Friction: spec.Friction,
		Static:   spec.Static,
	})
}

func addTrackable(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TrackableSpec](raw)
	if err != nil {
		return fmt.Errorf("decode trackable spec: %w", err)
	}
	notify, err := parseNotifyWhen(spec.Notify)
	if err != nil {
		return err
	}
	t := component.Trackable{
		ID:         spec.ID.Normalize(),
		NotifyWhen: notify,
		Weight:     1,
		Enabled:    true,
	}
	if spec.Weight != nil {
		t.Weight = *spec.Weight
	}
	if spec.Enabled != nil {
		t.Enabled = *spec.Enabled
	}
	return ecs.Add(w, e, component.TrackableComponent.Kind(), &t)
}

func addTracker(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TrackerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode tracker spec: %w", err)
	}
	tr := &component.Tracker{
		AllowRepeats: spec.AllowRepeats,
		AllowedIDs:   spec.AllowedIDs,
	}
	if err := ecs.Add(w, e, component.TrackerComponent.Kind(), tr); err != nil {
		return err
	}
	system.AwakeTracker(w, e, tr)
	return nil
}

func addSmoothFollow(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SmoothFollowSpec](raw)
	if err != nil {
		return fmt.Errorf("decode smooth follow spec: %w", err)
	}
	mode, err := parseUpdateTiming(spec.Mode)
	if err != nil {
		return err
	}

	f := component.DefaultSmoothFollow()
	f.Mode = mode
	if spec.Speed != nil {
		f.Speed = r3.Vec{X: spec.Speed.X, Y: spec.Speed.Y, Z: spec.Speed.Z}
	}
	f.DeadZone = r3.Vec{X: spec.DeadZone.X, Y: spec.DeadZone.Y, Z: spec.DeadZone.Z}
	f.Offset = r3.Vec{X: spec.Offset.X, Y: spec.Offset.Y, Z: spec.Offset.Z}
	if spec.IgnoreWeights != nil {
		f.IgnoreWeights = *spec.IgnoreWeights
	}
	f.LimitedWeight = spec.LimitedWeight
	if spec.SnapLimit > 0 {
		f.SnapLimit = spec.SnapLimit
	}
	if spec.IgnoreBody != nil {
		f.IgnoreBody = *spec.IgnoreBody
	}

	if !ecs.Has(w, e, component.TrackerComponent.Kind()) {
		return fmt.Errorf("smooth follow requires a tracker")
	}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		system.AwakeFollower(&f, t)
	}
	return ecs.Add(w, e, component.SmoothFollowComponent.Kind(), &f)
}

func addScriptMover(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ScriptMoverSpec](raw)
	if err != nil {
		return fmt.Errorf("decode script mover spec: %w", err)
	}
	if spec.Script == "" {
		return fmt.Errorf("script mover: script is empty")
	}
	return ecs.Add(w, e, component.ScriptMoverComponent.Kind(), &component.ScriptMover{Script: spec.Script})
}

func parseNotifyWhen(s string) (component.NotifyWhen, error) {
	switch s {
	case "", "enable":
		return component.NotifyOnEnable, nil
	case "start":
		return component.NotifyOnStart, nil
	default:
		return 0, fmt.Errorf("unknown notify %q", s)
	}
}

func parseUpdateTiming(s string) (component.UpdateTiming, error) {
	switch s {
	case "", "update":
		return component.TimingUpdate, nil
	case "late_update":
		return component.TimingLateUpdate, nil
	case "fixed_update":
		return component.TimingFixedUpdate, nil
	default:
		return 0, fmt.Errorf("unknown update mode %q", s)
	}
}
