//go:build !windows && !darwin && !freebsd && !linux

package native

func Open(path string) (Module, error) {
	return nil, ErrUnsupportedPlatform
}
