package component

import (
	"github.com/milk9111/trackables/dispatch"
	"github.com/milk9111/trackables/hashid"
)

// TrackedTarget is one membership entry. Weight is copied from the trackable
// when tracking begins.
type TrackedTarget struct {
	Entity uint64 // ecs.Entity
	ID     hashid.ID
	Weight float64
}

// Tracker collects trackables whose ids are in AllowedIDs.
type Tracker struct {
	// AllowRepeats lets the same entity be tracked more than once.
	AllowRepeats bool
	AllowedIDs   []hashid.ID
	Targets      []TrackedTarget

	OnBegin func(msg TrackableSpawned)
	OnEnd   func(msg TrackableRemoved)

	Awake     bool
	allowed   map[uint64]struct{}
	Listeners []dispatch.Listener
}

var TrackerComponent = NewComponent[Tracker]()

// HashAllowed rebuilds the allowed-hash set from AllowedIDs.
func (t *Tracker) HashAllowed() {
	t.allowed = make(map[uint64]struct{}, len(t.AllowedIDs))
	for i, id := range t.AllowedIDs {
		id = id.Normalize()
		t.AllowedIDs[i] = id
		t.allowed[id.Hash] = struct{}{}
	}
}

func (t *Tracker) Allows(hash uint64) bool {
	if t.allowed == nil {
		t.HashAllowed()
	}
	_, ok := t.allowed[hash]
	return ok
}

func (t *Tracker) HasTargets() bool {
	return len(t.Targets) > 0
}

// IndexOf returns the first entry for entity, or -1.
func (t *Tracker) IndexOf(entity uint64) int {
	for i, target := range t.Targets {
		if target.Entity == entity {
			return i
		}
	}
	return -1
}

func (t *Tracker) RemoveAt(i int) TrackedTarget {
	removed := t.Targets[i]
	t.Targets = append(t.Targets[:i], t.Targets[i+1:]...)
	return removed
}

// Weights returns the weights in target order.
func (t *Tracker) Weights() []float64 {
	out := make([]float64, len(t.Targets))
	for i, target := range t.Targets {
		out[i] = target.Weight
	}
	return out
}
