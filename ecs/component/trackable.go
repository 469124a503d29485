package component

import (
	"github.com/milk9111/trackables/dispatch"
	"github.com/milk9111/trackables/hashid"
)

// NotifyWhen selects the lifecycle point at which a trackable announces
// itself.
type NotifyWhen int

const (
	NotifyOnEnable NotifyWhen = iota
	NotifyOnStart
)

func (n NotifyWhen) String() string {
	if n == NotifyOnStart {
		return "start"
	}
	return "enable"
}

// Trackable marks an entity that trackers may follow once it spawns.
type Trackable struct {
	ID         hashid.ID
	NotifyWhen NotifyWhen
	// Weight is applied by trackers that use weighted centroids.
	Weight  float64
	Enabled bool
	// Authority decides whether this instance may announce itself. Nil means
	// always.
	Authority func(entity uint64) bool

	Posted         bool
	PostedOnEnable bool
	Started        bool
	WasEnabled     bool
	Receipt        dispatch.Receipt
}

var TrackableComponent = NewComponent[Trackable]()
