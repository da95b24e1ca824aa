// Package script runs a Tengo update callback against an engine Context.
//
// A script defines
//
//	update := func(engine, state, dt) { ... }
//
// where engine is a table of functions bound to the running context, state
// is a map that survives between ticks and dt is the tick delta in seconds.
package script

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/pixee/engine"
	"github.com/milk9111/pixee/input"
	"github.com/milk9111/pixee/logger"
)

//go:embed scripts/*.tengo
var embedded embed.FS

const logSource = "Script"

const dispatch = `
update(__engine, __state, __dt)
`

// Runtime holds one compiled script and its persistent state.
type Runtime struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
}

// LoadFile reads a script from disk, falling back to the embedded scripts
// directory.
func LoadFile(path string) (*Runtime, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		var embErr error
		data, embErr = fs.ReadFile(embedded, "scripts/"+strings.TrimPrefix(path, "scripts/"))
		if embErr != nil {
			return nil, fmt.Errorf("script: load %s: %w", path, err)
		}
	}
	return Load(path, data)
}

// Load compiles src. A script without an update function fails here rather
// than on the first tick.
func Load(name string, src []byte) (*Runtime, error) {
	s := tengo.NewScript([]byte(string(src) + "\n" + dispatch))
	_ = s.Add("__engine", map[string]any{})
	_ = s.Add("__state", map[string]any{})
	_ = s.Add("__dt", 0.0)
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}
	return &Runtime{
		name:     name,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

func (rt *Runtime) Name() string { return rt.name }

// Run executes one update with dt against c.
func (rt *Runtime) Run(c *engine.Context, dt float64) error {
	if rt == nil || rt.compiled == nil {
		return fmt.Errorf("script: nil runtime")
	}
	if err := rt.compiled.Set("__engine", bindings(c)); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.state); err != nil {
		return err
	}
	if err := rt.compiled.Set("__dt", dt); err != nil {
		return err
	}
	if err := rt.compiled.Run(); err != nil {
		return fmt.Errorf("script: %s: %w", rt.name, err)
	}
	return nil
}

// Update adapts the runtime to an engine update callback.
func (rt *Runtime) Update() engine.UpdateFunc {
	return rt.Run
}

// State returns a Go copy of the script's persistent state.
func (rt *Runtime) State() map[string]any {
	if rt == nil || rt.state == nil {
		return nil
	}
	out := make(map[string]any, len(rt.state.Value))
	for k, v := range rt.state.Value {
		out[k] = objectToAny(v)
	}
	return out
}

// Float reads a numeric state value. Ints are widened.
func (rt *Runtime) Float(key string) (float64, bool) {
	if rt == nil || rt.state == nil {
		return 0, false
	}
	switch v := rt.state.Value[key].(type) {
	case *tengo.Float:
		return v.Value, true
	case *tengo.Int:
		return float64(v.Value), true
	default:
		return 0, false
	}
}

func bindings(c *engine.Context) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["is_down"] = &tengo.UserFunction{Name: "is_down", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		return boolObject(c.Input.IsDown(objectAsString(args[0]))), nil
	}}

	values["just_pressed"] = &tengo.UserFunction{Name: "just_pressed", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		return boolObject(c.Input.ConsumeJustPressed(objectAsString(args[0]))), nil
	}}

	values["just_released"] = &tengo.UserFunction{Name: "just_released", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		return boolObject(c.Input.ConsumeJustReleased(objectAsString(args[0]))), nil
	}}

	values["pointer"] = &tengo.UserFunction{Name: "pointer", Value: func(args ...tengo.Object) (tengo.Object, error) {
		x, y := c.Pointer.Position()
		return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: x}, &tengo.Float{Value: y}}}, nil
	}}

	values["viewport"] = &tengo.UserFunction{Name: "viewport", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Array{Value: []tengo.Object{
			&tengo.Float{Value: float64(c.Config.Width)},
			&tengo.Float{Value: float64(c.Config.Height)},
		}}, nil
	}}

	values["elapsed"] = &tengo.UserFunction{Name: "elapsed", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: c.Clock.Now()}, nil
	}}

	values["elapsed_formatted"] = &tengo.UserFunction{Name: "elapsed_formatted", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.String{Value: c.Clock.ElapsedFormatted()}, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		level := logger.Info
		if len(args) > 1 {
			l, err := logger.ParseLevel(objectAsString(args[1]))
			if err != nil {
				return nil, err
			}
			level = l
		}
		c.Log.Log(logSource, objectAsString(args[0]), level)
		return tengo.UndefinedValue, nil
	}}

	values["play_sound"] = &tengo.UserFunction{Name: "play_sound", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		name := objectAsString(args[0])
		if !c.Audio.HasSound(name) {
			return tengo.FalseValue, nil
		}
		c.Audio.PlaySound(name)
		return tengo.TrueValue, nil
	}}

	values["toggle_music"] = &tengo.UserFunction{Name: "toggle_music", Value: func(args ...tengo.Object) (tengo.Object, error) {
		c.Audio.ToggleMusic()
		return boolObject(c.Audio.MusicPlaying()), nil
	}}

	values["fps"] = &tengo.UserFunction{Name: "fps", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: c.Pacer.MeasuredFPS()}, nil
	}}

	values["stop"] = &tengo.UserFunction{Name: "stop", Value: func(args ...tengo.Object) (tengo.Object, error) {
		c.Stop()
		return tengo.UndefinedValue, nil
	}}

	values["mouse_left"] = &tengo.String{Value: input.MouseLeft}
	values["mouse_middle"] = &tengo.String{Value: input.MouseMiddle}
	values["mouse_right"] = &tengo.String{Value: input.MouseRight}

	return &tengo.ImmutableMap{Value: values}
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
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

func objectToAny(obj tengo.Object) any {
	if obj == nil {
		return nil
	}

	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Array:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.Map:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.Undefined:
		return nil
	default:
		return v.String()
	}
}
