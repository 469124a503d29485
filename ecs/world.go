package ecs

import (
	"github.com/milk9111/trackables/dispatch"
	"github.com/milk9111/trackables/ecs/component"
)

// World owns entities, component stores, the system schedule, the clock and
// the message pump systems talk through.
type World struct {
	entities  entityStore
	stores    map[component.ComponentID]*SparseSet
	scheduler *Scheduler
	time      Time
	pump      *dispatch.Pump

	accumulator  float64
	destroyHooks []DestroyHook
	unloadHooks  []UnloadHook
}

// NewWorld creates an empty ECS world with its own message pump.
func NewWorld() *World {
	return &World{
		stores:    make(map[component.ComponentID]*SparseSet),
		scheduler: NewScheduler(),
		time:      newTime(),
		pump:      dispatch.New(),
	}
}

// AddSystem appends a system to the Update phase.
func (w *World) AddSystem(s System) {
	w.AddSystemTo(PhaseUpdate, s)
}

// AddSystemTo appends a system to a phase.
func (w *World) AddSystemTo(phase Phase, s System) {
	if w == nil || s == nil {
		return
	}
	w.scheduler.AddTo(phase, s)
}

// Update advances one frame at the default frame rate.
func (w *World) Update() {
	w.Frame(DefaultFrameDelta)
}

// Frame advances the clock by dt seconds, runs as many fixed steps as scaled
// time allows, then Update and LateUpdate, and finally flushes deferred
// messages.
func (w *World) Frame(dt float64) {
	if w == nil {
		return
	}
	w.time.advance(dt)

	if w.time.FixedDelta > 0 {
		w.accumulator += w.time.Delta
		steps := 0
		for w.accumulator >= w.time.FixedDelta && steps < maxFixedSteps {
			w.time.InFixedStep = true
			w.scheduler.Run(PhaseFixedUpdate, w)
			w.time.InFixedStep = false
			w.accumulator -= w.time.FixedDelta
			steps++
		}
		if steps == maxFixedSteps {
			w.accumulator = 0
		}
	}

	w.scheduler.Run(PhaseUpdate, w)
	w.scheduler.Run(PhaseLateUpdate, w)
	w.pump.Flush()
}

// Time returns the world clock.
func (w *World) Time() *Time {
	if w == nil {
		return nil
	}
	return &w.time
}

// SetTimeScale changes how fast scaled time runs. Negative scales clamp to 0.
func (w *World) SetTimeScale(scale float64) {
	if w == nil {
		return
	}
	if scale < 0 {
		scale = 0
	}
	w.time.Scale = scale
}

// Pump returns the message pump used by this world's systems.
func (w *World) Pump() *dispatch.Pump {
	if w == nil {
		return nil
	}
	return w.pump
}

// SetPump swaps the message pump, typically for dispatch.Global().
func (w *World) SetPump(p *dispatch.Pump) {
	if w == nil || p == nil {
		return
	}
	w.pump = p
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if w.stores == nil {
		if !create {
			return nil
		}
		w.stores = make(map[component.ComponentID]*SparseSet)
	}
	s, ok := w.stores[id]
	if !ok && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}
