package ecs

const (
	DefaultFixedDelta = 1.0 / 50
	DefaultFrameDelta = 1.0 / 60
	maxFixedSteps     = 8
)

// Time is the world clock. Delta is scaled by Scale and UnscaledDelta is the
// raw frame time. FixedDelta is the length of one fixed step; the number of
// fixed steps per frame follows scaled time.
type Time struct {
	Delta           float64
	UnscaledDelta   float64
	FixedDelta      float64
	Scale           float64
	Elapsed         float64
	UnscaledElapsed float64
	Frame           uint64

	// InFixedStep is true while FixedUpdate systems run.
	InFixedStep bool
}

func newTime() Time {
	return Time{FixedDelta: DefaultFixedDelta, Scale: 1}
}

// StepDelta returns FixedDelta inside FixedUpdate and the unscaled frame
// delta otherwise.
func (t *Time) StepDelta() float64 {
	if t.InFixedStep {
		return t.FixedDelta
	}
	return t.UnscaledDelta
}

func (t *Time) advance(dt float64) {
	if dt < 0 {
		dt = 0
	}
	t.Frame++
	t.UnscaledDelta = dt
	t.UnscaledElapsed += dt
	t.Delta = dt * t.Scale
	t.Elapsed += t.Delta
}
