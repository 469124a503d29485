package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/trackables/common"
	"github.com/milk9111/trackables/ecs"
	"github.com/milk9111/trackables/ecs/component"
	"gonum.org/v1/gonum/spatial/r3"
)

// SmoothFollowSystem steps the followers whose Mode matches Timing. Register
// one instance per phase.
type SmoothFollowSystem struct {
	Timing component.UpdateTiming
}

func NewSmoothFollowSystem(timing component.UpdateTiming) *SmoothFollowSystem {
	return &SmoothFollowSystem{Timing: timing}
}

// Phase maps the follower timing to the scheduler phase it must run in.
func (s *SmoothFollowSystem) Phase() ecs.Phase {
	switch s.Timing {
	case component.TimingLateUpdate:
		return ecs.PhaseLateUpdate
	case component.TimingFixedUpdate:
		return ecs.PhaseFixedUpdate
	default:
		return ecs.PhaseUpdate
	}
}

func (s *SmoothFollowSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	clock := w.Time()
	if clock.Scale == 0 {
		return
	}
	dt := clock.StepDelta()

	ecs.ForEach3(w, component.SmoothFollowComponent.Kind(), component.TrackerComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, f *component.SmoothFollow, _ *component.Tracker, t *component.Transform) {
		if f.Mode != s.Timing {
			return
		}
		AwakeFollower(f, t)
		next := followStep(w, e, f, t.Position, dt)
		f.Last = next
		placeFollower(w, e, f, t, next)
	})
}

// AwakeFollower seeds the blend position from the current transform once.
func AwakeFollower(f *component.SmoothFollow, t *component.Transform) {
	if f.Awake {
		return
	}
	f.Awake = true
	f.Last = t.Position
}

// followStep computes the follower's next position from cur.
func followStep(w *ecs.World, e ecs.Entity, f *component.SmoothFollow, cur r3.Vec, dt float64) r3.Vec {
	if !HasTargets(w, e) {
		return Centroid(w, e)
	}

	goal := FollowGoal(w, e, f)
	if r3.Norm(r3.Sub(cur, goal)) > f.SnapLimit {
		return goal
	}

	return r3.Vec{
		X: followAxis(cur.X, f.Last.X, goal.X, f.Speed.X, f.DeadZone.X, dt),
		Y: followAxis(cur.Y, f.Last.Y, goal.Y, f.Speed.Y, f.DeadZone.Y, dt),
		Z: followAxis(cur.Z, f.Last.Z, goal.Z, f.Speed.Z, f.DeadZone.Z, dt),
	}
}

// FollowGoal is the point a follower chases: the centroid its weighting
// settings select, shifted by Offset.
func FollowGoal(w *ecs.World, e ecs.Entity, f *component.SmoothFollow) r3.Vec {
	var goal r3.Vec
	switch {
	case f.IgnoreWeights:
		goal = Centroid(w, e)
	case f.LimitedWeight:
		goal = WeightLimitedCentroid(w, e)
	default:
		goal = WeightedCentroid(w, e)
	}
	return r3.Add(goal, f.Offset)
}

// followAxis keeps the axis still inside the dead zone and otherwise eases
// toward the dead-zone edge nearest to cur. A zero speed locks the axis.
func followAxis(cur, last, goal, speed, deadZone, dt float64) float64 {
	if speed == 0 {
		return last
	}
	if math.Abs(cur-goal) < deadZone {
		return cur
	}
	edge := goal + deadZone*common.Sign(cur-goal)
	return common.SmoothApproach(cur, last, edge, speed, dt)
}

// placeFollower writes pos to the transform and teleports any body along with
// it, so the physics sync cannot pull the follower back. A follower that
// drives its body also clears the body's velocity; IgnoreBody leaves the
// velocity to the simulation.
func placeFollower(w *ecs.World, e ecs.Entity, f *component.SmoothFollow, t *component.Transform, pos r3.Vec) {
	t.Position = pos
	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok || body.Body == nil {
		return
	}
	body.Body.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})
	if !f.IgnoreBody {
		body.Body.SetVelocity(0, 0)
	}
}
