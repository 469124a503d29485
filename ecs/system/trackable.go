package system

import (
	"log"

	"github.com/milk9111/trackables/dispatch"
	"github.com/milk9111/trackables/ecs"
	"github.com/milk9111/trackables/ecs/component"
)

// TrackableSystem drives the enable/start/disable/destroy lifecycle of
// Trackable components and posts the matching spawn and removal messages.
type TrackableSystem struct {
	hooked *ecs.World
}

func NewTrackableSystem() *TrackableSystem {
	return &TrackableSystem{}
}

func (s *TrackableSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	s.install(w)

	ecs.ForEach(w, component.TrackableComponent.Kind(), func(e ecs.Entity, t *component.Trackable) {
		switch {
		case t.Enabled && !t.WasEnabled:
			enableTrackable(w, e, t)
		case !t.Enabled && t.WasEnabled:
			disableTrackable(w, e, t)
		}
		if t.Enabled && !t.Started {
			startTrackable(w, e, t)
		}
	})
}

// install registers the destroy and scene-unload hooks once per world.
func (s *TrackableSystem) install(w *ecs.World) {
	if s.hooked == w {
		return
	}
	s.hooked = w

	w.OnDestroy(func(w *ecs.World, e ecs.Entity) {
		t, ok := ecs.Get(w, e, component.TrackableComponent.Kind())
		if !ok {
			return
		}
		if t.WasEnabled {
			disableTrackable(w, e, t)
		}
		destroyTrackable(w, e, t)
	})
	w.OnSceneUnload(func(w *ecs.World) {
		ecs.ForEach(w, component.TrackableComponent.Kind(), func(_ ecs.Entity, t *component.Trackable) {
			cleanupTrackable(w, t)
		})
	})
}

func enableTrackable(w *ecs.World, e ecs.Entity, t *component.Trackable) {
	t.WasEnabled = true
	t.ID = t.ID.Normalize()
	if t.NotifyWhen == component.NotifyOnEnable {
		t.PostedOnEnable = true
		announceTrackable(w, e, t)
	}
}

func startTrackable(w *ecs.World, e ecs.Entity, t *component.Trackable) {
	t.Started = true
	if t.NotifyWhen == component.NotifyOnStart {
		announceTrackable(w, e, t)
	}
}

func disableTrackable(w *ecs.World, e ecs.Entity, t *component.Trackable) {
	t.WasEnabled = false
	cleanupTrackable(w, t)
	if t.Posted && t.PostedOnEnable {
		w.Pump().Post(component.TrackableRemoved{Target: uint64(e), ID: t.ID})
	}
	t.Posted = false
}

func destroyTrackable(w *ecs.World, e ecs.Entity, t *component.Trackable) {
	cleanupTrackable(w, t)
	if t.Posted {
		w.Pump().Post(component.TrackableRemoved{Target: uint64(e), ID: t.ID})
	}
	t.Posted = false
}

// announceTrackable posts the spawn message when this instance has
// authority. A previously retained spawn message is dropped first.
func announceTrackable(w *ecs.World, e ecs.Entity, t *component.Trackable) {
	if t.Authority != nil && !t.Authority(uint64(e)) {
		log.Printf("trackable: entity=%d id=%q has no authority, not announcing", e, t.ID.Value)
		return
	}
	cleanupTrackable(w, t)
	t.Receipt = w.Pump().Post(component.TrackableSpawned{
		Target: uint64(e),
		ID:     t.ID,
		Weight: t.Weight,
	})
	t.Posted = true
}

func cleanupTrackable(w *ecs.World, t *component.Trackable) {
	if !t.Receipt.Valid() {
		return
	}
	w.Pump().Cleanup(t.Receipt)
	t.Receipt = dispatch.Receipt{}
}
