package system

import (
	"github.com/milk9111/trackables/ecs"
	"github.com/milk9111/trackables/ecs/component"
)

// Pipeline is the set of systems that make trackables, trackers and
// followers work, registered in the order they must run.
type Pipeline struct {
	Trackables *TrackableSystem
	Trackers   *TrackerSystem
	Movers     *ScriptMoverSystem
	Physics    *PhysicsSystem
	Followers  []*SmoothFollowSystem
	Render     *RenderSystem
}

// Install registers the pipeline on w. Update runs lifecycle, trackers and
// movers before the Update followers; physics runs before the FixedUpdate
// followers.
func Install(w *ecs.World) *Pipeline {
	p := &Pipeline{
		Trackables: NewTrackableSystem(),
		Trackers:   NewTrackerSystem(),
		Movers:     NewScriptMoverSystem(),
		Physics:    NewPhysicsSystem(),
		Render:     NewRenderSystem(),
	}
	w.AddSystemTo(ecs.PhaseFixedUpdate, p.Physics)
	w.AddSystem(p.Trackables)
	w.AddSystem(p.Trackers)
	w.AddSystem(p.Movers)

	for _, timing := range []component.UpdateTiming{component.TimingFixedUpdate, component.TimingUpdate, component.TimingLateUpdate} {
		f := NewSmoothFollowSystem(timing)
		p.Followers = append(p.Followers, f)
		w.AddSystemTo(f.Phase(), f)
	}
	return p
}
