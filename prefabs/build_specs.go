package prefabs

import "gopkg.in/yaml.v3"

// Component keys understood in an entity's components map.
const (
	ComponentTransform    = "transform"
	ComponentSprite       = "sprite"
	ComponentCamera       = "camera"
	ComponentTrackable    = "trackable"
	ComponentTracker      = "tracker"
	ComponentSmoothFollow = "smooth_follow"
	ComponentPhysicsBody  = "physics_body"
	ComponentScriptMover  = "script_mover"
)

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}
