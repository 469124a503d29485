package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/trackables/hashid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func useDir(t *testing.T, dir string) {
	t.Helper()
	prev := Dir()
	SetDir(dir)
	t.Cleanup(func() { SetDir(prev) })
}

func TestLoadEmbeddedScene(t *testing.T) {
	useDir(t, "")

	scene, err := LoadSceneSpec("scene.yaml")
	require.NoError(t, err)

	names := make([]string, 0, len(scene.Entities))
	for _, e := range scene.Entities {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"player", "ally", "crate", "camera"}, names)

	camera := scene.Entities[3]
	tracker, err := DecodeComponentSpec[TrackerSpec](camera.Components[ComponentTracker])
	require.NoError(t, err)
	require.Len(t, tracker.AllowedIDs, 2)
	assert.True(t, tracker.AllowedIDs[0].Equal(hashid.New("player")))
	assert.Equal(t, hashid.Hash("ally"), tracker.AllowedIDs[1].Hash)

	follow, err := DecodeComponentSpec[SmoothFollowSpec](camera.Components[ComponentSmoothFollow])
	require.NoError(t, err)
	assert.Equal(t, "late_update", follow.Mode)
	require.NotNil(t, follow.Speed)
	assert.Equal(t, Vec3Spec{X: 3, Y: 3}, *follow.Speed)
	assert.Equal(t, Vec3Spec{X: 24, Y: 16}, follow.DeadZone)
	require.NotNil(t, follow.IgnoreWeights)
	assert.False(t, *follow.IgnoreWeights)
	assert.Nil(t, follow.IgnoreBody)
	assert.Equal(t, 2000.0, follow.SnapLimit)
}

func TestDecodeTrackableSpec(t *testing.T) {
	var raw map[string]any
	require.NoError(t, yaml.Unmarshal([]byte("{id: Player, notify: start, weight: 0.5}"), &raw))

	spec, err := DecodeComponentSpec[TrackableSpec](raw)
	require.NoError(t, err)
	assert.Equal(t, "Player", spec.ID.Value)
	assert.Equal(t, hashid.Hash("Player"), spec.ID.Hash)
	assert.Equal(t, "start", spec.Notify)
	require.NotNil(t, spec.Weight)
	assert.Equal(t, 0.5, *spec.Weight)
	assert.Nil(t, spec.Enabled)

	empty, err := DecodeComponentSpec[TrackableSpec](nil)
	require.NoError(t, err)
	assert.Equal(t, TrackableSpec{}, empty)
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"rgb", `"#4fc3f7"`, color.NRGBA{R: 0x4f, G: 0xc3, B: 0xf7, A: 0xff}, false},
		{"rgba", `"10203040"`, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}, false},
		{"short", `"#fff"`, color.NRGBA{}, true},
		{"not_hex", `"#zzzzzz"`, color.NRGBA{}, true},
		{"not_scalar", `[1, 2]`, color.NRGBA{}, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var got YAMLColor
			err := yaml.Unmarshal([]byte(c.in), &got)
			if c.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, got.Color)

			out, err := yaml.Marshal(got)
			require.NoError(t, err)
			var back YAMLColor
			require.NoError(t, yaml.Unmarshal(out, &back))
			assert.Equal(t, c.want, back.Color)
		})
	}
}

func TestCleanPaths(t *testing.T) {
	assert.Equal(t, "scene.yaml", cleanPrefabPath("prefabs/scene.yaml"))
	assert.Equal(t, "scene.yaml", cleanPrefabPath("scene.yaml"))
	assert.Equal(t, "", cleanPrefabPath(""))

	assert.Equal(t, "scripts/orbit.tengo", cleanScriptPath("orbit.tengo"))
	assert.Equal(t, "scripts/orbit.tengo", cleanScriptPath("scripts/orbit.tengo"))
	assert.Equal(t, "scripts/orbit.tengo", cleanScriptPath("prefabs/scripts/orbit.tengo"))
	assert.Equal(t, "", cleanScriptPath(""))
}

func TestDiskOverride(t *testing.T) {
	dir := t.TempDir()
	useDir(t, dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "scripts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scene.yaml"), []byte("name: edited\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scripts", "orbit.tengo"), []byte("x = 1"), 0o644))

	scene, err := LoadSceneSpec("prefabs/scene.yaml")
	require.NoError(t, err)
	assert.Equal(t, "edited", scene.Name)

	src, err := LoadScript("orbit.tengo")
	require.NoError(t, err)
	assert.Equal(t, "x = 1", string(src))

	// files missing on disk come from the embedded copy
	wander, err := LoadScript("wander.tengo")
	require.NoError(t, err)
	assert.NotEmpty(t, wander)

	_, ok := ModTime("scene.yaml")
	assert.True(t, ok)
	_, ok = ModTime("missing.yaml")
	assert.False(t, ok)
}

func TestLoadMissing(t *testing.T) {
	useDir(t, "")

	_, err := LoadSceneSpec("missing.yaml")
	assert.ErrorContains(t, err, "missing.yaml")

	_, ok := ModTime("scene.yaml")
	assert.False(t, ok)
}
