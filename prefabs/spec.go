package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/trackables/hashid"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// SceneSpec lists the entities of a scene in creation order.
type SceneSpec struct {
	Name     string            `yaml:"name"`
	Entities []EntityBuildSpec `yaml:"entities"`
}

func LoadSceneSpec(filename string) (SceneSpec, error) {
	return LoadSpec[SceneSpec](filename)
}

type Vec3Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

type TransformSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Z        float64 `yaml:"z"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type SpriteSpec struct {
	Color  *YAMLColor `yaml:"color"`
	Radius float64    `yaml:"radius"`
}

type CameraSpec struct {
	Zoom float64 `yaml:"zoom"`
}

type TrackableSpec struct {
	ID hashid.ID `yaml:"id"`
	// Notify is "enable" (default) or "start".
	Notify  string   `yaml:"notify"`
	Weight  *float64 `yaml:"weight"`
	Enabled *bool    `yaml:"enabled"`
}

type TrackerSpec struct {
	AllowRepeats bool        `yaml:"allow_repeats"`
	AllowedIDs   []hashid.ID `yaml:"allowed_ids"`
}

type SmoothFollowSpec struct {
	Speed *Vec3Spec `yaml:"speed"`
	// Mode is "update" (default), "late_update" or "fixed_update".
	Mode          string   `yaml:"mode"`
	DeadZone      Vec3Spec `yaml:"dead_zone"`
	Offset        Vec3Spec `yaml:"offset"`
	IgnoreWeights *bool    `yaml:"ignore_weights"`
	LimitedWeight bool     `yaml:"limited_weight"`
	SnapLimit     float64  `yaml:"snap_limit"`
	IgnoreBody    *bool    `yaml:"ignore_body"`
}

type PhysicsBodySpec struct {
	Radius   float64 `yaml:"radius"`
	Mass     float64 `yaml:"mass"`
	Friction float64 `yaml:"friction"`
	Static   bool    `yaml:"static"`
}

type ScriptMoverSpec struct {
	Script string `yaml:"script"`
}

// YAMLColor reads "#rrggbb" or "#rrggbbaa". The leading # is optional.
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	n, err := parseHexColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = n
	return nil
}

func (c YAMLColor) MarshalYAML() (any, error) {
	if c.Color == nil {
		return "", nil
	}
	n := color.NRGBAModel.Convert(c.Color).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A), nil
}

func parseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color format: %s", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %s: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
