package system

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/trackables/ecs"
	"github.com/milk9111/trackables/ecs/component"
	"github.com/milk9111/trackables/prefabs"
)

// ScriptMoverSystem runs a tengo script per ScriptMover entity each frame.
// Scripts read t, dt, x, y and z and assign the new x, y and z.
type ScriptMoverSystem struct {
	compiled map[ecs.Entity]*tengo.Compiled
	hooked   *ecs.World
	load     func(name string) ([]byte, error)
}

func NewScriptMoverSystem() *ScriptMoverSystem {
	return &ScriptMoverSystem{
		compiled: make(map[ecs.Entity]*tengo.Compiled),
		load:     prefabs.LoadScript,
	}
}

// Invalidate drops every compiled script so the next frame recompiles from
// disk.
func (s *ScriptMoverSystem) Invalidate() {
	if s == nil {
		return
	}
	clear(s.compiled)
}

func (s *ScriptMoverSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	if s.hooked != w {
		s.hooked = w
		w.OnDestroy(func(_ *ecs.World, e ecs.Entity) {
			delete(s.compiled, e)
		})
	}

	dt := w.Time().Delta
	ecs.ForEach2(w, component.ScriptMoverComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, m *component.ScriptMover, t *component.Transform) {
		if m.Disabled {
			return
		}
		compiled, err := s.runtime(e, m.Script)
		if err != nil {
			log.Printf("script mover: entity=%d script=%s disabled: %v", e, m.Script, err)
			m.Disabled = true
			return
		}

		m.Elapsed += dt
		if err := runMover(compiled, m.Elapsed, dt, t); err != nil {
			log.Printf("script mover: entity=%d script=%s disabled: %v", e, m.Script, err)
			m.Disabled = true
		}
	})
}

func (s *ScriptMoverSystem) runtime(e ecs.Entity, name string) (*tengo.Compiled, error) {
	if c, ok := s.compiled[e]; ok {
		return c, nil
	}
	src, err := s.load(name)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	c, err := CompileMover(src)
	if err != nil {
		return nil, err
	}
	s.compiled[e] = c
	return c, nil
}

// CompileMover compiles a mover script with the tengo stdlib available.
func CompileMover(src []byte) (*tengo.Compiled, error) {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	for _, name := range []string{"t", "dt", "x", "y", "z"} {
		if err := script.Add(name, 0.0); err != nil {
			return nil, fmt.Errorf("declare %s: %w", name, err)
		}
	}
	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return compiled, nil
}

func runMover(c *tengo.Compiled, elapsed, dt float64, t *component.Transform) error {
	inputs := map[string]float64{
		"t":  elapsed,
		"dt": dt,
		"x":  t.Position.X,
		"y":  t.Position.Y,
		"z":  t.Position.Z,
	}
	for name, v := range inputs {
		if err := c.Set(name, v); err != nil {
			return fmt.Errorf("set %s: %w", name, err)
		}
	}
	if err := c.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	t.Position.X = c.Get("x").Float()
	t.Position.Y = c.Get("y").Float()
	t.Position.Z = c.Get("z").Float()
	return nil
}
