package evaluator

import (
	"sort"
	"sync"

	"github.com/funvibe/phasor/internal/diagnostics"
)

// Environment maps each name to a stack of bindings, innermost last.
// It is safe for concurrent use.
type Environment struct {
	mu    sync.RWMutex
	store map[string][]Object
}

func NewEnvironment() *Environment {
	return &Environment{store: make(map[string][]Object)}
}

// Push binds name to val, shadowing any earlier binding.
func (e *Environment) Push(name string, val Object) Object {
	e.mu.Lock()
	e.store[name] = append(e.store[name], val)
	e.mu.Unlock()
	return val
}

// Pop removes the innermost binding of name and returns it.
func (e *Environment) Pop(name string) (Object, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	stack := e.store[name]
	if len(stack) == 0 {
		return nil, false
	}
	val := stack[len(stack)-1]
	if len(stack) == 1 {
		delete(e.store, name)
	} else {
		e.store[name] = stack[:len(stack)-1]
	}
	return val, true
}

// Lookup returns the innermost binding of name.
func (e *Environment) Lookup(name string) (Object, error) {
	e.mu.RLock()
	stack := e.store[name]
	e.mu.RUnlock()
	if len(stack) == 0 {
		return nil, diagnostics.NewError(diagnostics.ErrE001, diagnostics.NoOffset,
			"%s is not defined", name)
	}
	return stack[len(stack)-1], nil
}

// Names returns every bound name in sorted order.
func (e *Environment) Names() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	names := make([]string, 0, len(e.store))
	for name := range e.store {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
