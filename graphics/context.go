package graphics

import "unsafe"

// ProcAddressFunc resolves an OpenGL entry point for the current context.
type ProcAddressFunc func(name string) unsafe.Pointer

// Profile selects the OpenGL context profile.
type Profile int

const (
	AnyProfile Profile = iota
	CoreProfile
	CompatProfile
)

func (p Profile) String() string {
	switch p {
	case CoreProfile:
		return "core"
	case CompatProfile:
		return "compat"
	default:
		return "any"
	}
}

// ContextHints are consumed once, by the next CreateWindow call.
type ContextHints struct {
	Major             int
	Minor             int
	Profile           Profile
	ForwardCompatible bool
}

type WindowConfig struct {
	Width     int
	Height    int
	Title     string
	Resizable bool
}

type Color struct {
	R, G, B, A float32
}

// Platform is the windowing/context library.
type Platform interface {
	Init() error
	SetHints(hints ContextHints)
	CreateWindow(cfg WindowConfig) (Window, error)
	// ProcAddress is only valid once a context is current.
	ProcAddress() ProcAddressFunc
	PollEvents() error
	Terminate()
}

// Window is a window (or surface) together with its GL context.
type Window interface {
	MakeCurrent() error
	ShouldClose() bool
	SwapBuffers() error
	FramebufferSize() (int, int)
	Destroy()
}

// GL defines the subset of the OpenGL API used by the frame loop.
type GL interface {
	Load(procAddr ProcAddressFunc) error
	ClearColor(c Color)
	Clear() error
	// ReadPixels reads the current framebuffer as tightly packed RGBA8, bottom row first.
	ReadPixels(width, height int, dst []byte) error
}
