// Package headless renders into an offscreen EGL pbuffer instead of a window.
package headless

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/richinsley/glbootstrap/graphics"
)

var ErrUnsupported = errors.New("egl headless rendering is not supported on this platform")

// Platform is an EGL backed graphics.Platform. With no user to close a window,
// the close flag is raised once maxFrames event polls have happened.
type Platform struct {
	maxFrames int
	polls     int
	hints     graphics.ContextHints
	display   eglDisplay
}

func NewPlatform(maxFrames int) *Platform {
	return &Platform{maxFrames: maxFrames}
}

func (p *Platform) Init() error {
	if p.maxFrames <= 0 {
		return fmt.Errorf("headless frame limit must be positive, got %d", p.maxFrames)
	}
	if err := p.display.open(); err != nil {
		return err
	}
	log.Printf("EGL Initialized. Version: %d.%d", p.display.major, p.display.minor)
	return nil
}

func (p *Platform) SetHints(hints graphics.ContextHints) {
	p.hints = hints
}

// CreateWindow creates a pbuffer surface of the requested size and a context
// matching the last hints. The title is ignored.
func (p *Platform) CreateWindow(cfg graphics.WindowConfig) (graphics.Window, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid pbuffer size %dx%d", cfg.Width, cfg.Height)
	}
	s, err := p.display.createSurface(cfg.Width, cfg.Height, p.hints)
	if err != nil {
		return nil, err
	}
	return &Window{platform: p, surface: s, width: cfg.Width, height: cfg.Height}, nil
}

func (p *Platform) ProcAddress() graphics.ProcAddressFunc {
	return procAddress
}

func (p *Platform) PollEvents() error {
	p.polls++
	return nil
}

func (p *Platform) Terminate() {
	p.display.close()
	log.Printf("EGL Terminated")
}

// Window is a pbuffer surface and its context.
type Window struct {
	platform *Platform
	surface  *eglSurface
	width    int
	height   int
}

func (w *Window) MakeCurrent() error {
	return w.surface.makeCurrent()
}

func (w *Window) ShouldClose() bool {
	return w.platform.polls >= w.platform.maxFrames
}

func (w *Window) SwapBuffers() error {
	return w.surface.swap()
}

func (w *Window) FramebufferSize() (int, int) {
	return w.width, w.height
}

func (w *Window) Destroy() {
	w.surface.destroy()
}

// resolvesCoreProcs reports whether eglGetProcAddress returns core GL entry
// points: always on EGL 1.5, otherwise only with get_all_proc_addresses.
func resolvesCoreProcs(major, minor int, extensions string) bool {
	if major > 1 || (major == 1 && minor >= 5) {
		return true
	}
	for _, ext := range strings.Fields(extensions) {
		switch ext {
		case "EGL_KHR_get_all_proc_addresses", "EGL_KHR_client_get_all_proc_addresses":
			return true
		}
	}
	return false
}
