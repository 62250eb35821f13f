//go:build windows

package native

import (
	"syscall"

	"golang.org/x/sys/windows"
)

// Open loads a DLL with LoadLibraryEx. LOAD_WITH_ALTERED_SEARCH_PATH makes the
// loader resolve the engine's own dependencies from its install directory.
//
// J2KEngine.dll is a 32-bit stdcall library, so the caller has to be built
// for windows/386.
func Open(path string) (Module, error) {
	h, err := windows.LoadLibraryEx(path, 0, windows.LOAD_WITH_ALTERED_SEARCH_PATH)
	if err != nil {
		return nil, err
	}
	return dllModule(h), nil
}

type dllModule windows.Handle

func (m dllModule) Lookup(name string) (Proc, error) {
	addr, err := windows.GetProcAddress(windows.Handle(m), name)
	if err != nil {
		return nil, err
	}
	return dllProc(addr), nil
}

type dllProc uintptr

func (p dllProc) Call(args ...uintptr) uintptr {
	r1, _, _ := syscall.SyscallN(uintptr(p), args...)
	return r1
}
