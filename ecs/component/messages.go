package component

import "github.com/milk9111/trackables/hashid"

// TrackableSpawned announces that an entity may now be tracked. It is
// delivered at the end of the frame and retained for trackers that start
// listening later.
type TrackableSpawned struct {
	Target uint64 // ecs.Entity
	ID     hashid.ID
	Weight float64
}

func (TrackableSpawned) Deferred() {}
func (TrackableSpawned) Buffered() {}

// TrackableRemoved announces that an entity should no longer be tracked.
type TrackableRemoved struct {
	Target uint64 // ecs.Entity
	ID     hashid.ID
}
