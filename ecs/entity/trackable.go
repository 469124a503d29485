package entity

import (
	"fmt"

	"github.com/milk9111/trackables/ecs"
	"github.com/milk9111/trackables/ecs/component"
	"github.com/milk9111/trackables/hashid"
	"gonum.org/v1/gonum/spatial/r3"
)

// NewTrackable creates an enabled trackable at pos that announces itself on
// enable.
func NewTrackable(w *ecs.World, id string, pos r3.Vec, weight float64) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos, ScaleX: 1, ScaleY: 1}); err != nil {
		discard(w, e)
		return 0, fmt.Errorf("trackable: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.TrackableComponent.Kind(), &component.Trackable{
		ID:      hashid.New(id),
		Weight:  weight,
		Enabled: true,
	}); err != nil {
		discard(w, e)
		return 0, fmt.Errorf("trackable: add trackable: %w", err)
	}
	return e, nil
}
