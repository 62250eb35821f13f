package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConstructed is returned by every method of an Engine not built by New.
	ErrNotConstructed = errors.New("engine not constructed")
	// ErrNotInitialized is returned for calls that need a successful Initialize.
	ErrNotInitialized = errors.New("engine not initialized")
	// ErrAlreadyInitialized is returned by a second successful Initialize.
	ErrAlreadyInitialized = errors.New("engine already initialized")
	// ErrTerminated is returned after Terminate. It also matches ErrNotInitialized.
	ErrTerminated = fmt.Errorf("%w: engine terminated", ErrNotInitialized)
	// ErrAlreadyTerminated is returned by a second Terminate.
	ErrAlreadyTerminated = errors.New("engine already terminated")
	// ErrInitialization matches every InitError.
	ErrInitialization = errors.New("failed to initialize engine")
	// ErrTermination is returned when J2K_Terminate reports failure.
	ErrTermination = errors.New("failed to terminate engine")
	// ErrInvalidString is returned for strings with an embedded NUL.
	ErrInvalidString = errors.New("invalid string")

	// ErrTranslation matches every per-call translation failure.
	ErrTranslation = errors.New("translation failed")
	// ErrNullPointer is returned when the engine hands back no result buffer.
	ErrNullPointer = fmt.Errorf("%w: engine returned a null pointer", ErrTranslation)
	// ErrDecodeFailed is returned when the result buffer is not valid text.
	ErrDecodeFailed = fmt.Errorf("%w: result could not be decoded", ErrTranslation)
)

// InitError carries the code J2K_InitializeEx returned instead of success.
type InitError struct {
	Code int32
}

func (e *InitError) Error() string {
	return fmt.Sprintf("failed to initialize engine: J2K_InitializeEx returned %d", e.Code)
}

func (e *InitError) Is(target error) bool { return target == ErrInitialization }
