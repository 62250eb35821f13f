// Package engine wraps an ezTrans J2K engine session. An Engine owns the
// initialize → translate → terminate lifecycle, picks the wide or narrow
// translate entry point depending on what the installed engine exports, and
// releases every result buffer the engine hands back.
//
// The native engine is not reentrant. An Engine serialises its own calls, but
// only one Engine should exist per process since the module it drives is
// process-global.
package engine

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/valpere/eztrans/internal/native"
)

const (
	DefaultInstallRoot = "C:/Program Files (x86)/ChangShinSoft/ezTrans XP"
	DefaultInitToken   = "CSUSER123455"
	BinaryName         = "J2KEngine.dll"
	DataDirName        = "Dat"

	initSucceeded = 1
	termSucceeded = 0
)

// State is the lifecycle position of an Engine.
type State int

const (
	StateUnconstructed State = iota
	StateConstructed
	StateInitialized
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateUnconstructed:
		return "unconstructed"
	case StateConstructed:
		return "constructed"
	case StateInitialized:
		return "initialized"
	case StateTerminated:
		return "terminated"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Engine is one engine session.
type Engine struct {
	reg        *native.Registry
	log        *zap.Logger
	root       string
	narrowMode Mode
	narrowOnly bool
	wide       bool

	mu    sync.Mutex
	state State
}

type Option func(*Engine)

// WithInstallRoot sets the ezTrans installation directory.
func WithInstallRoot(root string) Option {
	return func(e *Engine) {
		if root != "" {
			e.root = root
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithNarrowMode picks the entry point used on the narrow path.
func WithNarrowMode(m Mode) Option {
	return func(e *Engine) { e.narrowMode = m }
}

// WithNarrowOnly ignores the wide entry point even when the engine has it.
func WithNarrowOnly() Option {
	return func(e *Engine) { e.narrowOnly = true }
}

// New fixes the registry's module path to <root>/J2KEngine.dll, loads the
// module and probes for the wide translate entry point.
func New(reg *native.Registry, opts ...Option) (*Engine, error) {
	e := &Engine{
		reg:  reg,
		log:  zap.NewNop(),
		root: DefaultInstallRoot,
	}
	for _, opt := range opts {
		opt(e)
	}

	path := filepath.Join(e.root, BinaryName)
	if err := reg.FixPath(path); err != nil {
		return nil, fmt.Errorf("failed to set module path: %w", err)
	}
	if _, err := reg.Load(); err != nil {
		return nil, err
	}

	e.wide = !e.narrowOnly && reg.Has(native.TranslateMMNTW)
	e.state = StateConstructed

	e.log.Info("engine loaded",
		zap.String("path", path),
		zap.Bool("wide", e.wide),
		zap.Stringer("narrow_mode", e.narrowMode))
	return e, nil
}

// InstallRoot returns the installation directory the module was loaded from.
func (e *Engine) InstallRoot() string { return e.root }

// SupportsWide reports whether Translate uses the UTF-16 entry point.
func (e *Engine) SupportsWide() bool { return e.wide }

// NarrowMode returns the entry point used on the narrow path.
func (e *Engine) NarrowMode() Mode { return e.narrowMode }

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Capabilities reports which known entry points the loaded engine exports.
func (e *Engine) Capabilities() map[string]bool {
	if e.reg == nil {
		return map[string]bool{}
	}
	return e.reg.Capabilities(native.EntryPoints...)
}

// Initialize starts the engine with J2K_InitializeEx. An empty initToken uses
// DefaultInitToken and an empty dataDir uses <root>/Dat.
func (e *Engine) Initialize(initToken, dataDir string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case StateUnconstructed:
		return ErrNotConstructed
	case StateInitialized:
		return ErrAlreadyInitialized
	case StateTerminated:
		return ErrTerminated
	}

	if initToken == "" {
		initToken = DefaultInitToken
	}
	if dataDir == "" {
		dataDir = filepath.Join(e.root, DataDirName)
	}

	token, err := cString(initToken)
	if err != nil {
		return err
	}
	dir, err := cString(dataDir)
	if err != nil {
		return err
	}

	proc, err := e.reg.Resolve(native.InitializeEx)
	if err != nil {
		return err
	}

	pin := pinAll(token, dir)
	ret := int32(proc.Call(addr(token), addr(dir)))
	pin.Unpin()

	if ret != initSucceeded {
		return &InitError{Code: ret}
	}

	e.state = StateInitialized
	e.log.Info("engine initialized", zap.String("data_dir", dataDir))
	return nil
}

// Terminate shuts the engine down with J2K_Terminate. It calls the native
// entry even when Initialize never succeeded, and moves the session to
// StateTerminated whatever the outcome. Later calls return
// ErrAlreadyTerminated without touching the engine.
func (e *Engine) Terminate() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case StateUnconstructed:
		return ErrNotConstructed
	case StateTerminated:
		return ErrAlreadyTerminated
	}
	e.state = StateTerminated

	proc, err := e.reg.Resolve(native.Terminate)
	if err != nil {
		return err
	}
	if ret := int32(proc.Call()); ret != termSucceeded {
		return fmt.Errorf("%w: J2K_Terminate returned %d", ErrTermination, ret)
	}

	e.log.Info("engine terminated")
	return nil
}

// Close terminates the session if that has not happened yet. Termination
// errors are logged and dropped, so Close is safe in a defer.
func (e *Engine) Close() error {
	if s := e.State(); s != StateConstructed && s != StateInitialized {
		return nil
	}
	if err := e.Terminate(); err != nil {
		e.log.Warn("engine termination failed", zap.Error(err))
	}
	return nil
}

// cString returns s as a NUL-terminated byte slice.
func cString(s string) ([]byte, error) {
	if strings.IndexByte(s, 0) >= 0 {
		return nil, fmt.Errorf("%w: %q contains a NUL byte", ErrInvalidString, s)
	}
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b, nil
}
