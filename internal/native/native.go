// Package native loads the engine's shared library and resolves its exported
// functions. Loading happens once, on first use, and each entry point is
// resolved independently and memoised, so an engine build that lacks an
// optional function only fails the calls that need it.
package native

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrEmptyPath is returned by FixPath for an empty module path.
	ErrEmptyPath = errors.New("module path is empty")
	// ErrPathAlreadyFixed is returned when FixPath is called a second time.
	ErrPathAlreadyFixed = errors.New("module path already fixed")
	// ErrPathNotFixed is returned when the module is needed before FixPath.
	ErrPathNotFixed = errors.New("module path not fixed")
	// ErrModuleLoad matches every LoadError.
	ErrModuleLoad = errors.New("failed to load module")
	// ErrSymbolUnresolved matches every SymbolError.
	ErrSymbolUnresolved = errors.New("failed to resolve symbol")
	// ErrUnsupportedPlatform is returned by Open on hosts without a dynamic loader binding.
	ErrUnsupportedPlatform = errors.New("dynamic loading is not supported on this platform")
)

// Proc is a resolved native function. Arguments and the result are machine
// words; pointer arguments must stay alive until Call returns.
type Proc interface {
	Call(args ...uintptr) uintptr
}

// Module is a loaded shared library.
type Module interface {
	Lookup(name string) (Proc, error)
}

// Opener loads the module at path.
type Opener func(path string) (Module, error)

// LoadError records a failed module load.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load module %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) Is(target error) bool { return target == ErrModuleLoad }

// SymbolError records a failed entry point lookup.
type SymbolError struct {
	Name string
	Err  error
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("failed to resolve symbol %s: %v", e.Name, e.Err)
}

func (e *SymbolError) Unwrap() error { return e.Err }

func (e *SymbolError) Is(target error) bool { return target == ErrSymbolUnresolved }

type entry struct {
	once sync.Once
	proc Proc
	err  error
}

// Registry owns the module handle and every entry point resolved from it.
// The module is never unloaded. A Registry is safe for concurrent use.
type Registry struct {
	open Opener

	mu      sync.Mutex
	path    string
	entries map[string]*entry

	loadOnce sync.Once
	mod      Module
	loadErr  error
}

// NewRegistry returns a Registry that loads its module with open. A nil open
// uses the platform loader.
func NewRegistry(open Opener) *Registry {
	if open == nil {
		open = Open
	}
	return &Registry{
		open:    open,
		entries: make(map[string]*entry),
	}
}

// FixPath sets the module location. It succeeds at most once.
func (r *Registry) FixPath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.path != "" {
		return fmt.Errorf("%w: %s", ErrPathAlreadyFixed, r.path)
	}
	r.path = path
	return nil
}

// Path returns the fixed module path, or "" before FixPath.
func (r *Registry) Path() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.path
}

// Load opens the module on first call and returns the cached outcome on every
// later call. A failed load is not retried.
func (r *Registry) Load() (Module, error) {
	path := r.Path()
	if path == "" {
		return nil, ErrPathNotFixed
	}

	r.loadOnce.Do(func() {
		mod, err := r.open(path)
		if err != nil {
			r.loadErr = &LoadError{Path: path, Err: err}
			return
		}
		r.mod = mod
	})
	return r.mod, r.loadErr
}

// Resolve returns the entry point called name, looking it up on first use.
// Both success and failure are cached per name.
func (r *Registry) Resolve(name string) (Proc, error) {
	r.mu.Lock()
	if r.path == "" {
		r.mu.Unlock()
		return nil, ErrPathNotFixed
	}
	e, ok := r.entries[name]
	if !ok {
		e = &entry{}
		r.entries[name] = e
	}
	r.mu.Unlock()

	e.once.Do(func() {
		mod, err := r.Load()
		if err != nil {
			e.err = err
			return
		}
		proc, err := mod.Lookup(name)
		if err != nil {
			e.err = &SymbolError{Name: name, Err: err}
			return
		}
		if proc == nil {
			e.err = &SymbolError{Name: name, Err: errors.New("nil procedure")}
			return
		}
		e.proc = proc
	})
	return e.proc, e.err
}

// Has reports whether name resolves. A failure here is treated as the
// capability being absent, not as an error.
func (r *Registry) Has(name string) bool {
	_, err := r.Resolve(name)
	return err == nil
}

// Capabilities probes every name and reports which ones resolved.
func (r *Registry) Capabilities(names ...string) map[string]bool {
	caps := make(map[string]bool, len(names))
	for _, name := range names {
		caps[name] = r.Has(name)
	}
	return caps
}
