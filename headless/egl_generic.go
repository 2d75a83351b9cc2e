//go:build !linux

package headless

import (
	"unsafe"

	"github.com/richinsley/glbootstrap/graphics"
)

type eglDisplay struct {
	major, minor int
}

func (d *eglDisplay) open() error {
	return ErrUnsupported
}

func (d *eglDisplay) createSurface(width, height int, hints graphics.ContextHints) (*eglSurface, error) {
	return nil, ErrUnsupported
}

func (d *eglDisplay) close() {}

type eglSurface struct{}

func (s *eglSurface) makeCurrent() error { return ErrUnsupported }
func (s *eglSurface) swap() error        { return ErrUnsupported }
func (s *eglSurface) destroy()           {}

func procAddress(name string) unsafe.Pointer {
	return nil
}
