package engine

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"unicode/utf16"
	"unsafe"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"

	"github.com/valpere/eztrans/internal/native"
	"github.com/valpere/eztrans/internal/native/nativetest"
)

// fakeEngine emulates J2KEngine.dll. It owns the memory it returns from the
// translate exports and records what the facade frees.
type fakeEngine struct {
	mod *nativetest.Module
	reg *native.Registry

	mu        sync.Mutex
	live      map[uintptr]any
	freed     []uintptr
	inputs    []string
	initArgs  []string
	initCode  uintptr
	termCode  uintptr
	translate func(string) string
	rawNarrow []byte
	nullOut   bool
}

func newFakeEngine(t *testing.T, wide bool) *fakeEngine {
	t.Helper()

	f := &fakeEngine{
		mod:       nativetest.NewModule(),
		live:      make(map[uintptr]any),
		initCode:  1,
		translate: func(s string) string { return "[ko]" + s },
	}
	f.mod.
		Export(native.InitializeEx, f.initializeEx).
		Export(native.Terminate, func(...uintptr) uintptr { return f.termCode }).
		Export(native.FreeMem, f.freeMem).
		Export(native.TranslateMMNT, f.translateNarrow).
		Export(native.TranslateMM, func(args ...uintptr) uintptr { return f.translateNarrow(0, args[0]) }).
		Export(native.SetField, func(args ...uintptr) uintptr { return args[0] + 100 }).
		Export(native.SetPriorDict, func(args ...uintptr) uintptr {
			f.record(readNarrow(args[0]))
			return 1
		})
	if wide {
		f.mod.Export(native.TranslateMMNTW, f.translateWide)
	}
	f.reg = native.NewRegistry(f.mod.Opener(nil))
	return f
}

func readNarrow(p uintptr) string {
	return string((&resultBuffer{ptr: p}).narrow())
}

func (f *fakeEngine) record(s string) {
	f.mu.Lock()
	f.inputs = append(f.inputs, s)
	f.mu.Unlock()
}

func (f *fakeEngine) keep(p uintptr, v any) uintptr {
	f.mu.Lock()
	f.live[p] = v
	f.mu.Unlock()
	return p
}

func (f *fakeEngine) initializeEx(args ...uintptr) uintptr {
	f.initArgs = []string{readNarrow(args[0]), readNarrow(args[1])}
	return f.initCode
}

func (f *fakeEngine) freeMem(args ...uintptr) uintptr {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.freed = append(f.freed, args[0])
	delete(f.live, args[0])
	return 0
}

func (f *fakeEngine) translateWide(args ...uintptr) uintptr {
	in := string(utf16.Decode((&resultBuffer{ptr: args[1]}).wide()))
	f.record(in)
	if f.nullOut {
		return 0
	}
	out := append(utf16.Encode([]rune(f.translate(in))), 0)
	return f.keep(uintptr(unsafe.Pointer(&out[0])), out)
}

func (f *fakeEngine) translateNarrow(args ...uintptr) uintptr {
	in, err := japanese.ShiftJIS.NewDecoder().String(readNarrow(args[1]))
	if err != nil {
		panic(err)
	}
	f.record(in)
	if f.nullOut {
		return 0
	}
	raw := f.rawNarrow
	if raw == nil {
		s, err := korean.EUCKR.NewEncoder().String(f.translate(in))
		if err != nil {
			panic(err)
		}
		raw = []byte(s)
	}
	out := append(append([]byte{}, raw...), 0)
	return f.keep(uintptr(unsafe.Pointer(&out[0])), out)
}

func (f *fakeEngine) freedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.freed)
}

func (f *fakeEngine) liveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.live)
}

func (f *fakeEngine) lastInput() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.inputs) == 0 {
		return ""
	}
	return f.inputs[len(f.inputs)-1]
}

func newReadyEngine(t *testing.T, wide bool, opts ...Option) (*Engine, *fakeEngine) {
	t.Helper()
	f := newFakeEngine(t, wide)
	e, err := New(f.reg, append([]Option{WithInstallRoot("/opt/eztrans")}, opts...)...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := e.Initialize("", ""); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	return e, f
}

func TestNew_FixesModulePath(t *testing.T) {
	f := newFakeEngine(t, true)
	var opened []string
	f.reg = native.NewRegistry(f.mod.Opener(&opened))

	e, err := New(f.reg, WithInstallRoot("/opt/eztrans"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	want := filepath.Join("/opt/eztrans", BinaryName)
	if len(opened) != 1 || opened[0] != want {
		t.Errorf("expected module %s to be opened once, got %v", want, opened)
	}
	if !e.SupportsWide() {
		t.Error("expected wide support when TranslateMMNTW is exported")
	}
	if e.State() != StateConstructed {
		t.Errorf("expected constructed state, got %s", e.State())
	}
}

func TestNew_DefaultInstallRoot(t *testing.T) {
	f := newFakeEngine(t, false)
	if _, err := New(f.reg); err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if got, want := f.reg.Path(), filepath.Join(DefaultInstallRoot, BinaryName); got != want {
		t.Errorf("module path = %q, want %q", got, want)
	}
}

func TestNew_SecondEngineOnRegistryFails(t *testing.T) {
	f := newFakeEngine(t, false)
	if _, err := New(f.reg); err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := New(f.reg); !errors.Is(err, native.ErrPathAlreadyFixed) {
		t.Errorf("expected ErrPathAlreadyFixed, got %v", err)
	}
}

func TestNew_ModuleMissing(t *testing.T) {
	reg := native.NewRegistry(nil)
	_, err := New(reg, WithInstallRoot(t.TempDir()))
	if !errors.Is(err, native.ErrModuleLoad) {
		t.Fatalf("expected ErrModuleLoad, got %v", err)
	}
}

func TestNew_NarrowOnly(t *testing.T) {
	f := newFakeEngine(t, true)
	e, err := New(f.reg, WithNarrowOnly())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if e.SupportsWide() {
		t.Error("expected WithNarrowOnly to disable the wide path")
	}
}

func TestInitialize_Defaults(t *testing.T) {
	_, f := newReadyEngine(t, true)

	want := []string{DefaultInitToken, filepath.Join("/opt/eztrans", DataDirName)}
	if len(f.initArgs) != 2 || f.initArgs[0] != want[0] || f.initArgs[1] != want[1] {
		t.Errorf("InitializeEx args = %v, want %v", f.initArgs, want)
	}
}

func TestInitialize_Twice(t *testing.T) {
	e, f := newReadyEngine(t, true)
	if err := e.Initialize("", ""); !errors.Is(err, ErrAlreadyInitialized) {
		t.Errorf("expected ErrAlreadyInitialized, got %v", err)
	}
	if n := f.mod.Calls(native.InitializeEx); n != 1 {
		t.Errorf("expected one native initialize, got %d", n)
	}
}

func TestInitialize_NativeFailure(t *testing.T) {
	f := newFakeEngine(t, true)
	f.initCode = 0
	e, err := New(f.reg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	err = e.Initialize("", "")
	if !errors.Is(err, ErrInitialization) {
		t.Fatalf("expected ErrInitialization, got %v", err)
	}
	var ie *InitError
	if !errors.As(err, &ie) || ie.Code != 0 {
		t.Errorf("expected *InitError with code 0, got %#v", err)
	}
	if e.State() != StateConstructed {
		t.Errorf("expected session to stay constructed, got %s", e.State())
	}

	f.initCode = 1
	if err := e.Initialize("", ""); err != nil {
		t.Errorf("retry after failed initialize: %v", err)
	}
}

func TestInitialize_EmbeddedNUL(t *testing.T) {
	f := newFakeEngine(t, true)
	e, err := New(f.reg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := e.Initialize("CSUSER\x00123", ""); !errors.Is(err, ErrInvalidString) {
		t.Errorf("expected ErrInvalidString for token, got %v", err)
	}
	if err := e.Initialize("", "C:/Dat\x00"); !errors.Is(err, ErrInvalidString) {
		t.Errorf("expected ErrInvalidString for data dir, got %v", err)
	}
	if n := f.mod.Calls(native.InitializeEx); n != 0 {
		t.Errorf("expected no native initialize, got %d", n)
	}
}

func TestInitialize_MissingEntry(t *testing.T) {
	mod := nativetest.NewModule()
	reg := native.NewRegistry(mod.Opener(nil))
	e, err := New(reg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := e.Initialize("", ""); !errors.Is(err, native.ErrSymbolUnresolved) {
		t.Errorf("expected ErrSymbolUnresolved, got %v", err)
	}
}

func TestTranslate_BeforeInitialize(t *testing.T) {
	f := newFakeEngine(t, true)
	e, err := New(f.reg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := e.Translate("おはよう"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
	if _, err := e.TranslateEscaped("가나다"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
	if n := f.mod.Calls(native.TranslateMMNTW); n != 0 {
		t.Errorf("expected no native translate call, got %d", n)
	}
}

func TestTranslate_ZeroValueEngine(t *testing.T) {
	var e Engine
	if _, err := e.Translate("text"); !errors.Is(err, ErrNotConstructed) {
		t.Errorf("expected ErrNotConstructed, got %v", err)
	}
	if err := e.Initialize("", ""); !errors.Is(err, ErrNotConstructed) {
		t.Errorf("expected ErrNotConstructed, got %v", err)
	}
	if err := e.Close(); err != nil {
		t.Errorf("Close on zero engine: %v", err)
	}
}

func TestTerminate_Twice(t *testing.T) {
	e, f := newReadyEngine(t, true)

	if err := e.Terminate(); err != nil {
		t.Fatalf("Terminate failed: %v", err)
	}
	if err := e.Terminate(); !errors.Is(err, ErrAlreadyTerminated) {
		t.Errorf("expected ErrAlreadyTerminated, got %v", err)
	}
	if err := e.Close(); err != nil {
		t.Errorf("Close after Terminate: %v", err)
	}
	if n := f.mod.Calls(native.Terminate); n != 1 {
		t.Errorf("expected one native terminate, got %d", n)
	}
	if _, err := e.Translate("text"); !errors.Is(err, ErrTerminated) {
		t.Errorf("expected ErrTerminated, got %v", err)
	}
}

func TestTerminate_NativeFailure(t *testing.T) {
	e, f := newReadyEngine(t, true)
	f.termCode = 3

	if err := e.Terminate(); !errors.Is(err, ErrTermination) {
		t.Errorf("expected ErrTermination, got %v", err)
	}
	if e.State() != StateTerminated {
		t.Errorf("expected terminated state after failure, got %s", e.State())
	}
}

func TestTerminate_WithoutInitialize(t *testing.T) {
	f := newFakeEngine(t, true)
	e, err := New(f.reg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := e.Terminate(); err != nil {
		t.Errorf("Terminate without Initialize: %v", err)
	}
}

func TestClose_TerminatesOnce(t *testing.T) {
	e, f := newReadyEngine(t, true)
	f.termCode = 1

	if err := e.Close(); err != nil {
		t.Errorf("Close returned %v, want nil even on termination failure", err)
	}
	if err := e.Close(); err != nil {
		t.Errorf("second Close returned %v", err)
	}
	if n := f.mod.Calls(native.Terminate); n != 1 {
		t.Errorf("expected one native terminate, got %d", n)
	}
}

func TestCapabilities(t *testing.T) {
	e, _ := newReadyEngine(t, false)
	caps := e.Capabilities()

	if len(caps) != len(native.EntryPoints) {
		t.Errorf("expected %d capabilities, got %d", len(native.EntryPoints), len(caps))
	}
	if caps[native.TranslateMMNTW] {
		t.Error("expected wide translate to be reported missing")
	}
	if !caps[native.TranslateMMNT] || !caps[native.FreeMem] {
		t.Errorf("expected narrow translate and free to be present: %v", caps)
	}
}

func TestControls(t *testing.T) {
	e, f := newReadyEngine(t, true)

	got, err := e.SetField(5)
	if err != nil {
		t.Fatalf("SetField failed: %v", err)
	}
	if got != 105 {
		t.Errorf("SetField returned %d, want raw code 105", got)
	}

	if _, err := e.SetPriorDict("user.dic"); err != nil {
		t.Fatalf("SetPriorDict failed: %v", err)
	}
	if f.lastInput() != "user.dic" {
		t.Errorf("SetPriorDict passed %q", f.lastInput())
	}
	if _, err := e.SetPriorDict("bad\x00"); !errors.Is(err, ErrInvalidString) {
		t.Errorf("expected ErrInvalidString, got %v", err)
	}

	if _, err := e.ReloadUserDict(); !errors.Is(err, native.ErrSymbolUnresolved) {
		t.Errorf("expected ErrSymbolUnresolved for a missing export, got %v", err)
	}
}

func TestControls_BeforeInitialize(t *testing.T) {
	f := newFakeEngine(t, true)
	e, err := New(f.reg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := e.SetField(1); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
	if n := f.mod.Calls(native.SetField); n != 0 {
		t.Errorf("expected no native call, got %d", n)
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{ModeMMNT, ModeMM, ModeMMEx, ModeFM, ModeChat} {
		got, err := ParseMode(strings.ToUpper(m.String()))
		if err != nil {
			t.Fatalf("ParseMode(%q) failed: %v", m, err)
		}
		if got != m {
			t.Errorf("ParseMode(%q) = %s", m, got)
		}
	}
	if _, err := ParseMode("bogus"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
