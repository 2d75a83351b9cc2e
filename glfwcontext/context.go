package glfwcontext

import (
	"fmt"
	"log"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/glbootstrap/graphics"
)

// Platform drives GLFW. All methods must be called from the main thread.
type Platform struct{}

// NewPlatform returns a GLFW backed graphics.Platform.
func NewPlatform() *Platform {
	return &Platform{}
}

// Init initializes GLFW and pins the calling goroutine to its OS thread.
func (p *Platform) Init() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	log.Printf("GLFW Initialized")
	return nil
}

func (p *Platform) SetHints(hints graphics.ContextHints) {
	glfw.WindowHint(glfw.ContextVersionMajor, hints.Major)
	glfw.WindowHint(glfw.ContextVersionMinor, hints.Minor)
	glfw.WindowHint(glfw.OpenGLProfile, glfwProfile(hints.Profile))

	// macOS refuses to create a core context without it.
	if hints.ForwardCompatible || runtime.GOOS == "darwin" {
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	}
}

func glfwProfile(p graphics.Profile) int {
	switch p {
	case graphics.CoreProfile:
		return glfw.OpenGLCoreProfile
	case graphics.CompatProfile:
		return glfw.OpenGLCompatProfile
	default:
		return glfw.OpenGLAnyProfile
	}
}

// CreateWindow creates a windowed (not full-screen), unshared window.
func (p *Platform) CreateWindow(cfg graphics.WindowConfig) (graphics.Window, error) {
	resizable := glfw.False
	if cfg.Resizable {
		resizable = glfw.True
	}
	glfw.WindowHint(glfw.Resizable, resizable)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, err
	}
	if win == nil {
		return nil, fmt.Errorf("glfw returned no window")
	}
	return &Window{window: win}, nil
}

func (p *Platform) ProcAddress() graphics.ProcAddressFunc {
	return glfw.GetProcAddress
}

func (p *Platform) PollEvents() error {
	glfw.PollEvents()
	return nil
}

// Terminate shuts down GLFW, destroying any remaining windows.
func (p *Platform) Terminate() {
	glfw.Terminate()
	log.Printf("GLFW Terminated")
}

// Window wraps a *glfw.Window.
type Window struct {
	window *glfw.Window
}

// MakeCurrent makes the context current for the calling thread.
func (w *Window) MakeCurrent() error {
	w.window.MakeContextCurrent()
	return nil
}

func (w *Window) ShouldClose() bool {
	return w.window.ShouldClose()
}

func (w *Window) SwapBuffers() error {
	w.window.SwapBuffers()
	return nil
}

func (w *Window) FramebufferSize() (int, int) {
	return w.window.GetFramebufferSize()
}

func (w *Window) Destroy() {
	w.window.Destroy()
}

