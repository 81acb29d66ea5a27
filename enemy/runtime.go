package enemy

import (
	"embed"
	"fmt"
	"path"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// LoadScript reads an embedded behaviour script.
func LoadScript(name string) ([]byte, error) {
	return ScriptsFS.ReadFile(path.Join("scripts", path.Base(name)))
}

const lifecycleDispatchScript = `
if __phase == "enter" {
	onEnter(__engine, __state, __current_state)
} else if __phase == "update" {
	update(__engine, __state, __current_state)
} else if __phase == "exit" {
	onExit(__engine, __state, __current_state)
}
`

// Runtime compiles behaviour scripts once and hands out per-enemy machines.
type Runtime struct {
	compiled map[string]*tengo.Compiled
}

func NewRuntime() *Runtime {
	return &Runtime{compiled: map[string]*tengo.Compiled{}}
}

// Machine loads a fresh state machine for the named script.
func (r *Runtime) Machine(name string) (*Machine, error) {
	compiled, ok := r.compiled[name]
	if !ok {
		src, err := LoadScript(name)
		if err != nil {
			return nil, fmt.Errorf("enemy: load script %s: %w", name, err)
		}
		compiled, err = compileScript(src)
		if err != nil {
			return nil, fmt.Errorf("enemy: compile script %s: %w", name, err)
		}
		r.compiled[name] = compiled
	}

	m := &Machine{
		compiled: compiled.Clone(),
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
		current:  "idle",
	}
	// Run once with no phase so top-level globals such as initial_state exist.
	noop := &tengo.ImmutableMap{Value: map[string]tengo.Object{}}
	if err := m.runPhase("noop", noop); err != nil {
		return nil, fmt.Errorf("enemy: init script %s: %w", name, err)
	}
	if m.compiled.IsDefined("initial_state") {
		if s := strings.TrimSpace(m.compiled.Get("initial_state").String()); s != "" {
			m.current = s
		}
	}
	return m, nil
}

func compileScript(src []byte) (*tengo.Compiled, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + lifecycleDispatchScript))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__current_state", "")
	script.SetImports(stdlib.GetModuleMap("math"))
	return script.Compile()
}

// Machine is one enemy's scripted state machine.
type Machine struct {
	compiled    *tengo.Compiled
	state       *tengo.Map
	current     string
	pending     string
	initialized bool
}

// Current returns the active state name.
func (m *Machine) Current() string {
	return m.current
}

// Transition requests a state change, applied at the end of the current step.
func (m *Machine) Transition(name string) {
	m.pending = strings.TrimSpace(name)
}

// Step runs the update phase and any transition it requested.
func (m *Machine) Step(engine *tengo.ImmutableMap) error {
	if !m.initialized {
		if err := m.runPhase("enter", engine); err != nil {
			return fmt.Errorf("onEnter %s: %w", m.current, err)
		}
		m.initialized = true
	}
	if err := m.runPhase("update", engine); err != nil {
		return fmt.Errorf("update %s: %w", m.current, err)
	}
	if m.pending == "" || m.pending == m.current {
		m.pending = ""
		return nil
	}
	if err := m.runPhase("exit", engine); err != nil {
		return fmt.Errorf("onExit %s: %w", m.current, err)
	}
	m.current = m.pending
	m.pending = ""
	if err := m.runPhase("enter", engine); err != nil {
		return fmt.Errorf("onEnter %s: %w", m.current, err)
	}
	return nil
}

func (m *Machine) runPhase(phase string, engine *tengo.ImmutableMap) error {
	if err := m.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := m.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := m.compiled.Set("__state", m.state); err != nil {
		return err
	}
	if err := m.compiled.Set("__current_state", m.current); err != nil {
		return err
	}
	return m.compiled.Run()
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

func objectAsFloat(obj tengo.Object, def float64) float64 {
	switch v := obj.(type) {
	case *tengo.Float:
		return v.Value
	case *tengo.Int:
		return float64(v.Value)
	default:
		return def
	}
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}
