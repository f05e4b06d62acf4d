package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/collide/ecs"
	"github.com/milk9111/collide/ecs/component"
	"github.com/milk9111/collide/prefabs"
)

const collisionDispatchScript = `
if __phase == "enter" {
	onEnter(__self, __other)
} else if __phase == "stay" {
	onStay(__self, __other)
} else if __phase == "exit" {
	onExit(__self, __other)
}
`

// ScriptLoader returns the source of a collision script.
type ScriptLoader func(path string) ([]byte, error)

// CollisionScriptSystem compiles the script named by each CollisionScript
// component and installs it as that entity's Collider callbacks. It must run
// before the collision system so new bindings see this tick's contacts.
type CollisionScriptSystem struct {
	Load   ScriptLoader
	Logger *log.Logger

	runtimes map[ecs.Entity]*collisionScriptRuntime
}

type collisionScriptRuntime struct {
	scriptPath string
	compiled   *tengo.Compiled
	engine     *tengo.ImmutableMap
	// collider the callbacks were installed on; a replaced Collider is rebound
	collider *component.Collider
}

func NewCollisionScriptSystem(load ScriptLoader) *CollisionScriptSystem {
	if load == nil {
		load = prefabs.LoadScript
	}
	return &CollisionScriptSystem{
		Load:     load,
		runtimes: map[ecs.Entity]*collisionScriptRuntime{},
	}
}

func (s *CollisionScriptSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	if s.runtimes == nil {
		s.runtimes = map[ecs.Entity]*collisionScriptRuntime{}
	}

	for e, rt := range s.runtimes {
		if !ecs.Has(w, e, component.CollisionScriptComponent.Kind()) {
			s.unbind(w, e, rt)
			delete(s.runtimes, e)
		}
	}

	ecs.ForEach2(w, component.CollisionScriptComponent.Kind(), component.ColliderComponent.Kind(), func(e ecs.Entity, script *component.CollisionScript, col *component.Collider) {
		path := strings.TrimSpace(script.Path)
		if path == "" {
			return
		}
		if rt, ok := s.runtimes[e]; ok && rt.scriptPath == path {
			if rt.compiled != nil && rt.collider != col {
				s.bind(e, col, rt)
			}
			return
		}

		if old, ok := s.runtimes[e]; ok {
			s.unbind(w, e, old)
		}
		rt, err := s.compile(w, path)
		if err != nil {
			s.logf("collision script: entity=%d load %s error: %v", e, path, err)
			// remember the failure so the script is not recompiled every tick
			s.runtimes[e] = &collisionScriptRuntime{scriptPath: path}
			return
		}
		s.runtimes[e] = rt
		s.bind(e, col, rt)
	})
}

// Reload drops every compiled script so the next Update recompiles them.
func (s *CollisionScriptSystem) Reload() {
	if s == nil {
		return
	}
	s.runtimes = map[ecs.Entity]*collisionScriptRuntime{}
}

func (s *CollisionScriptSystem) compile(w *ecs.World, path string) (*collisionScriptRuntime, error) {
	if s.Load == nil {
		return nil, fmt.Errorf("no script loader")
	}
	src, err := s.Load(path)
	if err != nil {
		return nil, err
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + collisionDispatchScript))
	_ = script.Add("__phase", "")
	_ = script.Add("__self", 0)
	_ = script.Add("__other", 0)
	_ = script.Add("__engine", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}

	return &collisionScriptRuntime{
		scriptPath: path,
		compiled:   compiled,
		engine:     s.buildEngine(w),
	}, nil
}

func (s *CollisionScriptSystem) bind(e ecs.Entity, col *component.Collider, rt *collisionScriptRuntime) {
	call := func(phase string) component.CollisionCallback {
		return func(other uint32) {
			if err := rt.run(phase, e, ecs.Entity(other)); err != nil {
				s.logf("collision script: entity=%d %s error: %v", e, phase, err)
			}
		}
	}
	rt.collider = col
	col.OnEnter = call("enter")
	col.OnStay = call("stay")
	col.OnExit = call("exit")
}

// unbind clears the callbacks rt installed, unless the entity's Collider has
// been replaced since.
func (s *CollisionScriptSystem) unbind(w *ecs.World, e ecs.Entity, rt *collisionScriptRuntime) {
	if rt == nil || rt.collider == nil {
		return
	}
	col, ok := ecs.Get(w, e, component.ColliderComponent.Kind())
	if ok && col == rt.collider {
		col.OnEnter, col.OnStay, col.OnExit = nil, nil, nil
	}
	rt.collider = nil
}

func (rt *collisionScriptRuntime) run(phase string, self, other ecs.Entity) error {
	if rt == nil || rt.compiled == nil {
		return fmt.Errorf("nil script runtime")
	}
	if err := rt.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := rt.compiled.Set("__self", int(self)); err != nil {
		return err
	}
	if err := rt.compiled.Set("__other", int(other)); err != nil {
		return err
	}
	if err := rt.compiled.Set("__engine", rt.engine); err != nil {
		return err
	}
	return rt.compiled.Run()
}

// buildEngine exposes a small world API to scripts. Entity ids are ints.
func (s *CollisionScriptSystem) buildEngine(w *ecs.World) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		s.logf("script: %s", strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	values["alive"] = &tengo.UserFunction{Name: "alive", Value: func(args ...tengo.Object) (tengo.Object, error) {
		e, ok := entityArg(args, 0)
		if !ok || !w.IsAlive(e) {
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	values["destroy"] = &tengo.UserFunction{Name: "destroy", Value: func(args ...tengo.Object) (tengo.Object, error) {
		e, ok := entityArg(args, 0)
		if !ok || !ecs.DestroyEntity(w, e) {
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	values["name"] = &tengo.UserFunction{Name: "name", Value: func(args ...tengo.Object) (tengo.Object, error) {
		e, ok := entityArg(args, 0)
		if !ok {
			return &tengo.String{Value: ""}, nil
		}
		n, ok := ecs.Get(w, e, component.NameComponent.Kind())
		if !ok {
			return &tengo.String{Value: ""}, nil
		}
		return &tengo.String{Value: n.Value}, nil
	}}

	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		e, ok := entityArg(args, 0)
		if !ok {
			return tengo.UndefinedValue, nil
		}
		tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: tr.Position.X}, &tengo.Float{Value: tr.Position.Y}}}, nil
	}}

	values["set_position"] = &tengo.UserFunction{Name: "set_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		e, ok := entityArg(args, 0)
		v, okV := vectorArgs(args, 1)
		if !ok || !okV {
			return tengo.FalseValue, nil
		}
		tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			return tengo.FalseValue, nil
		}
		tr.Position = v
		return tengo.TrueValue, nil
	}}

	values["velocity"] = &tengo.UserFunction{Name: "velocity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		e, ok := entityArg(args, 0)
		if !ok {
			return tengo.UndefinedValue, nil
		}
		vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: vel.Linear.X}, &tengo.Float{Value: vel.Linear.Y}}}, nil
	}}

	values["set_velocity"] = &tengo.UserFunction{Name: "set_velocity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		e, ok := entityArg(args, 0)
		v, okV := vectorArgs(args, 1)
		if !ok || !okV || !w.IsAlive(e) {
			return tengo.FalseValue, nil
		}
		vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
		if !ok {
			vel = &component.Velocity{}
			if err := ecs.Add(w, e, component.VelocityComponent.Kind(), vel); err != nil {
				return tengo.FalseValue, nil
			}
		}
		vel.Linear = v
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func entityArg(args []tengo.Object, i int) (ecs.Entity, bool) {
	if i >= len(args) {
		return 0, false
	}
	id, ok := tengo.ToInt(args[i])
	if !ok || id <= 0 {
		return 0, false
	}
	return ecs.Entity(id), true
}

func vectorArgs(args []tengo.Object, i int) (cp.Vector, bool) {
	if i+1 >= len(args) {
		return cp.Vector{}, false
	}
	x, okX := tengo.ToFloat64(args[i])
	y, okY := tengo.ToFloat64(args[i+1])
	if !okX || !okY {
		return cp.Vector{}, false
	}
	return cp.Vector{X: x, Y: y}, true
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func (s *CollisionScriptSystem) logf(format string, args ...any) {
	if s.Logger != nil {
		s.Logger.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}
