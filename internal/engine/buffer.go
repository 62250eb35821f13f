package engine

import (
	"runtime"
	"unsafe"

	"github.com/valpere/eztrans/internal/native"
)

// resultBuffer is a string the engine allocated and the caller must hand back
// to J2K_FreeMem exactly once.
type resultBuffer struct {
	ptr  uintptr
	free native.Proc
}

func (b *resultBuffer) release() {
	if b.ptr == 0 {
		return
	}
	b.free.Call(b.ptr)
	b.ptr = 0
}

// wide copies the NUL-terminated UTF-16 string at b.ptr.
func (b *resultBuffer) wide() []uint16 {
	p := unsafe.Pointer(b.ptr)
	n := 0
	for *(*uint16)(unsafe.Add(p, n*2)) != 0 {
		n++
	}
	out := make([]uint16, n)
	copy(out, unsafe.Slice((*uint16)(p), n))
	return out
}

// narrow copies the NUL-terminated byte string at b.ptr.
func (b *resultBuffer) narrow() []byte {
	p := unsafe.Pointer(b.ptr)
	n := 0
	for *(*byte)(unsafe.Add(p, n)) != 0 {
		n++
	}
	out := make([]byte, n)
	copy(out, unsafe.Slice((*byte)(p), n))
	return out
}

// pinAll keeps the backing arrays of bufs in place while native code reads
// them. Each slice must be non-empty.
func pinAll(bufs ...[]byte) *runtime.Pinner {
	p := new(runtime.Pinner)
	for _, b := range bufs {
		p.Pin(&b[0])
	}
	return p
}

func addr(b []byte) uintptr {
	return uintptr(unsafe.Pointer(&b[0]))
}

func addr16(b []uint16) uintptr {
	return uintptr(unsafe.Pointer(&b[0]))
}
