package entity

import (
	"fmt"

	"github.com/milk9111/trackables/ecs"
	"github.com/milk9111/trackables/prefabs"
)

// LoadScene builds every entity of a scene prefab in order. On error the
// entities built so far are destroyed.
func LoadScene(w *ecs.World, filename string) ([]ecs.Entity, error) {
	spec, err := prefabs.LoadSceneSpec(filename)
	if err != nil {
		return nil, fmt.Errorf("load scene: %w", err)
	}
	return BuildScene(w, spec)
}

func BuildScene(w *ecs.World, spec prefabs.SceneSpec) ([]ecs.Entity, error) {
	built := make([]ecs.Entity, 0, len(spec.Entities))
	for i, es := range spec.Entities {
		e, err := BuildEntitySpec(w, es)
		if err != nil {
			for _, prev := range built {
				discard(w, prev)
			}
			return nil, fmt.Errorf("scene %q: entity %d: %w", spec.Name, i, err)
		}
		built = append(built, e)
	}
	return built, nil
}
