package entity

import (
	"fmt"

	"github.com/milk9111/trackables/ecs"
	"github.com/milk9111/trackables/ecs/component"
	"github.com/milk9111/trackables/ecs/system"
	"github.com/milk9111/trackables/hashid"
	"gonum.org/v1/gonum/spatial/r3"
)

// NewFollowCamera creates a camera at pos that tracks the given ids with the
// supplied follow settings. Zero speeds in follow fall back to the defaults.
func NewFollowCamera(w *ecs.World, pos r3.Vec, follow component.SmoothFollow, allowedIDs ...string) (ecs.Entity, error) {
	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
		discard(w, camera)
		return 0, fmt.Errorf("camera: add camera tag: %w", err)
	}
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), &component.Camera{Zoom: 1}); err != nil {
		discard(w, camera)
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}

	transform := &component.Transform{Position: pos, ScaleX: 1, ScaleY: 1}
	if err := ecs.Add(w, camera, component.TransformComponent.Kind(), transform); err != nil {
		discard(w, camera)
		return 0, fmt.Errorf("camera: add transform: %w", err)
	}

	tracker := &component.Tracker{AllowedIDs: hashid.IDs(allowedIDs...)}
	if err := ecs.Add(w, camera, component.TrackerComponent.Kind(), tracker); err != nil {
		discard(w, camera)
		return 0, fmt.Errorf("camera: add tracker: %w", err)
	}
	system.AwakeTracker(w, camera, tracker)

	if follow.Speed == (r3.Vec{}) {
		follow.Speed = component.DefaultSmoothFollow().Speed
	}
	if follow.SnapLimit <= 0 {
		follow.SnapLimit = component.DefaultSnapLimit
	}
	system.AwakeFollower(&follow, transform)
	if err := ecs.Add(w, camera, component.SmoothFollowComponent.Kind(), &follow); err != nil {
		discard(w, camera)
		return 0, fmt.Errorf("camera: add smooth follow: %w", err)
	}

	return camera, nil
}
