package system

import (
	"github.com/milk9111/trackables/common"
	"github.com/milk9111/trackables/dispatch"
	"github.com/milk9111/trackables/ecs"
	"github.com/milk9111/trackables/ecs/component"
	"github.com/milk9111/trackables/hashid"
	"gonum.org/v1/gonum/spatial/r3"
)

// TrackerSystem subscribes Tracker components to trackable messages and keeps
// their target lists free of destroyed entities.
type TrackerSystem struct {
	hooked *ecs.World
}

func NewTrackerSystem() *TrackerSystem {
	return &TrackerSystem{}
}

func (s *TrackerSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	if s.hooked != w {
		s.hooked = w
		w.OnDestroy(func(w *ecs.World, e ecs.Entity) {
			if tr, ok := ecs.Get(w, e, component.TrackerComponent.Kind()); ok {
				SleepTracker(w, tr)
			}
		})
	}

	ecs.ForEach(w, component.TrackerComponent.Kind(), func(e ecs.Entity, tr *component.Tracker) {
		if !tr.Awake {
			AwakeTracker(w, e, tr)
		}
		pruneDeadTargets(w, tr)
	})
}

// AwakeTracker hashes the allowed ids and subscribes the tracker. Spawn
// messages retained by the pump are replayed immediately.
func AwakeTracker(w *ecs.World, e ecs.Entity, tr *component.Tracker) {
	if w == nil || tr == nil || tr.Awake {
		return
	}
	tr.Awake = true
	tr.HashAllowed()
	pump := w.Pump()
	tr.Listeners = append(tr.Listeners,
		dispatch.AddListener(pump, func(msg component.TrackableSpawned) {
			handleSpawned(w, e, msg)
		}),
		dispatch.AddListener(pump, func(msg component.TrackableRemoved) {
			handleRemoved(w, e, msg)
		}),
	)
}

// SleepTracker unsubscribes the tracker. Its targets are kept.
func SleepTracker(w *ecs.World, tr *component.Tracker) {
	if w == nil || tr == nil {
		return
	}
	for _, l := range tr.Listeners {
		w.Pump().RemoveListener(l)
	}
	tr.Listeners = nil
	tr.Awake = false
}

func handleSpawned(w *ecs.World, e ecs.Entity, msg component.TrackableSpawned) {
	tr, ok := ecs.Get(w, e, component.TrackerComponent.Kind())
	if !ok || !tr.Allows(msg.ID.Hash) {
		return
	}
	if !ecs.IsAlive(w, ecs.Entity(msg.Target)) {
		// a spawn for an entity that is already gone, usually left over from
		// an unloaded scene
		pruneDeadTargets(w, tr)
		return
	}
	if !tr.AllowRepeats && tr.IndexOf(msg.Target) >= 0 {
		return
	}
	tr.Targets = append(tr.Targets, component.TrackedTarget{
		Entity: msg.Target,
		ID:     msg.ID,
		Weight: msg.Weight,
	})
	if tr.OnBegin != nil {
		tr.OnBegin(msg)
	}
}

func handleRemoved(w *ecs.World, e ecs.Entity, msg component.TrackableRemoved) {
	tr, ok := ecs.Get(w, e, component.TrackerComponent.Kind())
	if !ok {
		return
	}
	idx := tr.IndexOf(msg.Target)
	if idx < 0 {
		return
	}
	tr.RemoveAt(idx)
	if tr.OnEnd != nil {
		tr.OnEnd(msg)
	}
}

func pruneDeadTargets(w *ecs.World, tr *component.Tracker) {
	kept := tr.Targets[:0]
	for _, target := range tr.Targets {
		if ecs.IsAlive(w, ecs.Entity(target.Entity)) {
			kept = append(kept, target)
		}
	}
	clear(tr.Targets[len(kept):])
	tr.Targets = kept
}

// HasTargets reports whether the tracker on e follows anything.
func HasTargets(w *ecs.World, e ecs.Entity) bool {
	tr, ok := ecs.Get(w, e, component.TrackerComponent.Kind())
	return ok && tr.HasTargets()
}

// Positions returns the current positions of e's targets. The slice is
// freshly allocated on every call.
func Positions(w *ecs.World, e ecs.Entity) []r3.Vec {
	points, _ := targetPoints(w, e)
	return points
}

// Centroid is the mean target position, or e's own position without targets.
func Centroid(w *ecs.World, e ecs.Entity) r3.Vec {
	points, _ := targetPoints(w, e)
	if len(points) == 0 {
		return ownPosition(w, e)
	}
	return common.Centroid(points)
}

// WeightedCentroid weights each target by its trackable weight.
func WeightedCentroid(w *ecs.World, e ecs.Entity) r3.Vec {
	points, weights := targetPoints(w, e)
	if len(points) == 0 {
		return ownPosition(w, e)
	}
	return common.WeightedCentroid(points, weights)
}

// WeightLimitedCentroid weights each target by its weight clamped to [0,1].
func WeightLimitedCentroid(w *ecs.World, e ecs.Entity) r3.Vec {
	points, weights := targetPoints(w, e)
	if len(points) == 0 {
		return ownPosition(w, e)
	}
	return common.LimitedCentroid(points, weights)
}

// AllOfID lists the tracked entities whose trackable id is id, once per
// membership entry.
func AllOfID(w *ecs.World, e ecs.Entity, id string) []ecs.Entity {
	tr, ok := ecs.Get(w, e, component.TrackerComponent.Kind())
	if !ok {
		return nil
	}
	hash := hashid.Hash(id)
	var out []ecs.Entity
	for _, target := range tr.Targets {
		if targetID(w, target).Hash == hash {
			out = append(out, ecs.Entity(target.Entity))
		}
	}
	return out
}

// StopTracking removes every entry whose trackable id is id and reports each
// removal through the tracker's OnEnd callback.
func StopTracking(w *ecs.World, e ecs.Entity, id string) {
	tr, ok := ecs.Get(w, e, component.TrackerComponent.Kind())
	if !ok {
		return
	}
	for _, target := range AllOfID(w, e, id) {
		idx := tr.IndexOf(uint64(target))
		if idx < 0 {
			continue
		}
		removed := tr.RemoveAt(idx)
		if tr.OnEnd != nil {
			tr.OnEnd(component.TrackableRemoved{Target: removed.Entity, ID: targetID(w, removed)})
		}
	}
}

// targetID prefers the live trackable id over the one captured at spawn.
func targetID(w *ecs.World, target component.TrackedTarget) hashid.ID {
	if t, ok := ecs.Get(w, ecs.Entity(target.Entity), component.TrackableComponent.Kind()); ok {
		return t.ID
	}
	return target.ID
}

// targetPoints returns positions and weights for targets that still have a
// transform.
func targetPoints(w *ecs.World, e ecs.Entity) ([]r3.Vec, []float64) {
	tr, ok := ecs.Get(w, e, component.TrackerComponent.Kind())
	if !ok || !tr.HasTargets() {
		return nil, nil
	}
	points := make([]r3.Vec, 0, len(tr.Targets))
	weights := make([]float64, 0, len(tr.Targets))
	for _, target := range tr.Targets {
		t, ok := ecs.Get(w, ecs.Entity(target.Entity), component.TransformComponent.Kind())
		if !ok {
			continue
		}
		points = append(points, t.Position)
		weights = append(weights, target.Weight)
	}
	return points, weights
}

func ownPosition(w *ecs.World, e ecs.Entity) r3.Vec {
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		return t.Position
	}
	return r3.Vec{}
}
