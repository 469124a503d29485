package component

import "gonum.org/v1/gonum/spatial/r3"

// UpdateTiming picks the frame phase a follower steps in.
type UpdateTiming int

const (
	TimingUpdate UpdateTiming = iota
	TimingLateUpdate
	TimingFixedUpdate
)

func (u UpdateTiming) String() string {
	switch u {
	case TimingLateUpdate:
		return "late_update"
	case TimingFixedUpdate:
		return "fixed_update"
	default:
		return "update"
	}
}

// SmoothFollow moves its entity toward the centroid of the entity's Tracker
// targets.
type SmoothFollow struct {
	// Speed holds the per-axis follow rate. Zero locks the axis.
	Speed    r3.Vec
	Mode     UpdateTiming
	DeadZone r3.Vec
	Offset   r3.Vec
	// IgnoreWeights uses the plain centroid. When false, LimitedWeight picks
	// the clamped weighting.
	IgnoreWeights bool
	LimitedWeight bool
	// SnapLimit is the distance beyond which the follower jumps to the goal.
	SnapLimit float64
	// IgnoreBody moves an attached physics body like a transform write: the
	// body is teleported and keeps its velocity. Otherwise the follower owns the
	// body and clears its velocity each step.
	IgnoreBody bool

	// Last is the position computed on the previous step; the next step
	// blends from it.
	Last  r3.Vec
	Awake bool
}

var SmoothFollowComponent = NewComponent[SmoothFollow]()

const (
	DefaultFollowSpeed = 0.3
	DefaultSnapLimit   = 1000000
)

// DefaultSmoothFollow returns a follower with the stock settings.
func DefaultSmoothFollow() SmoothFollow {
	return SmoothFollow{
		Speed:         r3.Vec{X: DefaultFollowSpeed, Y: DefaultFollowSpeed, Z: DefaultFollowSpeed},
		IgnoreWeights: true,
		SnapLimit:     DefaultSnapLimit,
		IgnoreBody:    true,
	}
}
