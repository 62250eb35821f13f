//go:build darwin || freebsd || linux

package native

import (
	"github.com/ebitengine/purego"
)

// Open loads a shared object with dlopen through purego, so no cgo toolchain
// is needed. It exists for engine builds and test doubles exported as
// ELF/Mach-O libraries.
func Open(path string) (Module, error) {
	h, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_LOCAL)
	if err != nil {
		return nil, err
	}
	return dlModule(h), nil
}

type dlModule uintptr

func (m dlModule) Lookup(name string) (Proc, error) {
	addr, err := purego.Dlsym(uintptr(m), name)
	if err != nil {
		return nil, err
	}
	return dlProc(addr), nil
}

type dlProc uintptr

func (p dlProc) Call(args ...uintptr) uintptr {
	r1, _, _ := purego.SyscallN(uintptr(p), args...)
	return r1
}
