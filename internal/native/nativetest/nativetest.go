// Package nativetest provides an in-memory native.Module for tests.
package nativetest

import (
	"errors"
	"sync"

	"github.com/valpere/eztrans/internal/native"
)

// ErrNotExported is returned by Lookup for names the fake does not define.
var ErrNotExported = errors.New("symbol not exported")

// Func implements native.Proc with a Go function.
type Func func(args ...uintptr) uintptr

func (f Func) Call(args ...uintptr) uintptr { return f(args...) }

// Module is a fake library whose exports are Go functions.
type Module struct {
	mu      sync.Mutex
	funcs   map[string]Func
	lookups map[string]int
	calls   map[string]int
}

func NewModule() *Module {
	return &Module{
		funcs:   make(map[string]Func),
		lookups: make(map[string]int),
		calls:   make(map[string]int),
	}
}

// Export registers fn under name, replacing any earlier definition.
func (m *Module) Export(name string, fn Func) *Module {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.funcs[name] = fn
	return m
}

func (m *Module) Lookup(name string) (native.Proc, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups[name]++
	fn, ok := m.funcs[name]
	if !ok {
		return nil, ErrNotExported
	}
	return Func(func(args ...uintptr) uintptr {
		m.mu.Lock()
		m.calls[name]++
		m.mu.Unlock()
		return fn(args...)
	}), nil
}

// Lookups returns how many times name was looked up.
func (m *Module) Lookups(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lookups[name]
}

// Calls returns how many times the export called name was invoked.
func (m *Module) Calls(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

// Opener returns a native.Opener that hands out m and records every path it
// was asked to open.
func (m *Module) Opener(paths *[]string) native.Opener {
	return func(path string) (native.Module, error) {
		if paths != nil {
			*paths = append(*paths, path)
		}
		return m, nil
	}
}

// FailingOpener returns an Opener that always fails with err and counts calls.
func FailingOpener(err error, calls *int) native.Opener {
	return func(string) (native.Module, error) {
		if calls != nil {
			*calls++
		}
		return nil, err
	}
}
