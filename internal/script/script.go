// Package script evaluates short JavaScript expressions against a set of
// named variables, using a fresh goja runtime per call for isolation. It
// backs scripted guards and AI considerations whose condition is more
// naturally expressed as an expression than as a registered Go callback.
package script

import (
	"fmt"
	"sync"

	"github.com/dop251/goja"
)

// Engine compiles and caches expression sources, and evaluates them
// against caller-supplied variable bindings.
type Engine struct {
	mu       sync.Mutex
	programs map[string]*goja.Program
}

// New constructs an empty expression engine.
func New() *Engine {
	return &Engine{programs: make(map[string]*goja.Program)}
}

func (e *Engine) compile(src string) (*goja.Program, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if p, ok := e.programs[src]; ok {
		return p, nil
	}
	p, err := goja.Compile("", src, false)
	if err != nil {
		return nil, fmt.Errorf("compile expression: %w", err)
	}
	e.programs[src] = p
	return p, nil
}

// Eval runs src against vars in a fresh runtime and returns its result
// value, exported to a native Go type.
func (e *Engine) Eval(src string, vars map[string]any) (any, error) {
	program, err := e.compile(src)
	if err != nil {
		return nil, err
	}
	vm := goja.New()
	for name, val := range vars {
		if err := vm.Set(name, val); err != nil {
			return nil, fmt.Errorf("bind variable %q: %w", name, err)
		}
	}
	result, err := vm.RunProgram(program)
	if err != nil {
		return nil, fmt.Errorf("run expression: %w", err)
	}
	return result.Export(), nil
}

// EvalBool runs src and coerces its result to a boolean using JavaScript
// truthiness rules. A run that errors returns false.
func (e *Engine) EvalBool(src string, vars map[string]any) (bool, error) {
	v, err := e.Eval(src, vars)
	if err != nil {
		return false, err
	}
	return truthy(v), nil
}

// EvalNumber runs src and coerces its result to a float64. A non-numeric
// result that cannot be coerced returns 0.
func (e *Engine) EvalNumber(src string, vars map[string]any) (float64, error) {
	v, err := e.Eval(src, vars)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	case int:
		return float64(n), nil
	default:
		return 0, nil
	}
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case int64:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}
