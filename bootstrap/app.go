// Package bootstrap opens an OpenGL 3.3 core context, clears it every frame
// and tears everything down when the window is closed.
package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/richinsley/glbootstrap/graphics"
)

// Process exit statuses returned by Run.
const (
	ExitOK      = 0
	ExitFailure = -1
)

// Fixed window geometry and title.
const (
	WindowWidth  = 800
	WindowHeight = 600
	WindowTitle  = "CPM Bootstrap OpenGL"
)

// LoaderDiagnostic is written to the diagnostics writer when GL loading fails.
const LoaderDiagnostic = "Failed to initialize OpenGL function loader"

// ClearColor is the color every frame is cleared to. ContextHints request
// an OpenGL 3.3 core profile context.
var (
	ClearColor   = graphics.Color{R: 0.2, G: 0.3, B: 0.3, A: 1.0}
	ContextHints = graphics.ContextHints{Major: 3, Minor: 3, Profile: graphics.CoreProfile}
)

// Initialization failures, one per step that can fail. Errors returned by
// Initialize wrap one of these together with the backend error.
var (
	ErrPlatformInit = errors.New("failed to initialize windowing library")
	ErrCreateWindow = errors.New("failed to create window")
	ErrMakeCurrent  = errors.New("failed to make context current")
	ErrLoader       = errors.New("failed to load OpenGL functions")
	ErrNotRunning   = errors.New("application is not running")
	ErrFrameSize    = errors.New("framebuffer size does not match frame sink")
)

// State is the lifecycle state of an App.
type State int

const (
	Uninitialized State = iota
	Initializing
	Running
	Terminated
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initializing:
		return "initializing"
	case Running:
		return "running"
	case Terminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// FrameSink receives a copy of every presented frame.
type FrameSink interface {
	Size() (int, int)
	WriteFrame(pixels []byte) error
	Close() error
}

// Option configures an App in New.
type Option func(*App)

// WithFrameSink attaches a sink. The App owns it and closes it on Shutdown.
func WithFrameSink(sink FrameSink) Option {
	return func(a *App) { a.sink = sink }
}

// WithLogger replaces log.Default for lifecycle messages.
func WithLogger(l *log.Logger) Option {
	return func(a *App) { a.logger = l }
}

// WithDiagnostics redirects the loader diagnostic, which goes to stdout by default.
func WithDiagnostics(w io.Writer) Option {
	return func(a *App) { a.diag = w }
}

// App owns the platform, the window and the loaded GL function table for
// the lifetime of the process. It must be driven from the main thread.
type App struct {
	platform graphics.Platform
	gl       graphics.GL
	sink     FrameSink
	logger   *log.Logger
	diag     io.Writer

	state      State
	window     graphics.Window
	platformUp bool
	shutdown   bool
	frames     int
	pixels     []byte
}

// New returns an Uninitialized App. Nothing is acquired until Initialize.
func New(platform graphics.Platform, gl graphics.GL, opts ...Option) *App {
	a := &App{
		platform: platform,
		gl:       gl,
		logger:   log.Default(),
		diag:     os.Stdout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// State returns the current lifecycle state.
func (a *App) State() State {
	return a.state
}

// Frames returns the number of completed frame loop iterations.
func (a *App) Frames() int {
	return a.frames
}

// Initialize brings up the platform, the window, the context and the GL
// function table. Any failure releases whatever was acquired and leaves the
// App Terminated.
func (a *App) Initialize() error {
	if a.state != Uninitialized {
		return fmt.Errorf("initialize called while %s", a.state)
	}
	a.state = Initializing

	if err := a.platform.Init(); err != nil {
		a.release()
		return fmt.Errorf("%w: %w", ErrPlatformInit, err)
	}
	a.platformUp = true

	a.platform.SetHints(ContextHints)

	// A recording has a fixed frame size, so the window must not be resized.
	win, err := a.platform.CreateWindow(graphics.WindowConfig{
		Width:     WindowWidth,
		Height:    WindowHeight,
		Title:     WindowTitle,
		Resizable: a.sink == nil,
	})
	if err == nil && win == nil {
		err = errors.New("no window handle")
	}
	if err != nil {
		a.release()
		return fmt.Errorf("%w: %w", ErrCreateWindow, err)
	}
	a.window = win

	if err := win.MakeCurrent(); err != nil {
		a.release()
		return fmt.Errorf("%w: %w", ErrMakeCurrent, err)
	}

	if err := a.gl.Load(a.platform.ProcAddress()); err != nil {
		fmt.Fprintln(a.diag, LoaderDiagnostic)
		a.release()
		return fmt.Errorf("%w: %w", ErrLoader, err)
	}

	a.state = Running
	return nil
}

// RunFrame clears, presents and polls once. It reports whether the loop
// should continue, which is false once the close flag is set.
func (a *App) RunFrame() (bool, error) {
	if a.state != Running {
		return false, ErrNotRunning
	}

	a.gl.ClearColor(ClearColor)
	if err := a.gl.Clear(); err != nil {
		return false, fmt.Errorf("clear: %w", err)
	}
	if a.sink != nil {
		if err := a.capture(); err != nil {
			return false, err
		}
	}
	if err := a.window.SwapBuffers(); err != nil {
		return false, fmt.Errorf("swap buffers: %w", err)
	}
	if err := a.platform.PollEvents(); err != nil {
		return false, fmt.Errorf("poll events: %w", err)
	}

	a.frames++
	return !a.window.ShouldClose(), nil
}

func (a *App) capture() error {
	w, h := a.sink.Size()
	fw, fh := a.window.FramebufferSize()
	if fw != w || fh != h {
		return fmt.Errorf("%w: framebuffer is %dx%d, recording is %dx%d", ErrFrameSize, fw, fh, w, h)
	}
	if n := w * h * 4; len(a.pixels) != n {
		a.pixels = make([]byte, n)
	}
	if err := a.gl.ReadPixels(w, h, a.pixels); err != nil {
		return fmt.Errorf("read pixels: %w", err)
	}
	if err := a.sink.WriteFrame(a.pixels); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// release tears down after a failed step; teardown errors are only logged so
// the step's error is the one returned.
func (a *App) release() {
	if err := a.Shutdown(); err != nil {
		a.logger.Printf("Shutdown failed: %v", err)
	}
}

// Shutdown releases the sink, the window and the platform. Only the first
// call has any effect; the platform is terminated only if it was initialized.
func (a *App) Shutdown() error {
	if a.shutdown {
		return nil
	}
	a.shutdown = true
	a.state = Terminated

	var err error
	if a.sink != nil {
		if cerr := a.sink.Close(); cerr != nil {
			err = fmt.Errorf("close frame sink: %w", cerr)
		}
	}
	if a.window != nil {
		a.window.Destroy()
		a.window = nil
	}
	if a.platformUp {
		a.platform.Terminate()
		a.platformUp = false
	}
	return err
}

// Run executes the whole lifecycle and returns the process exit status. An
// App already brought up by Initialize goes straight to the frame loop.
func (a *App) Run() int {
	if a.state != Running {
		if err := a.Initialize(); err != nil {
			a.logger.Printf("Initialization failed: %v", err)
			a.release()
			return ExitFailure
		}
	}

	status := ExitOK
	for !a.window.ShouldClose() {
		more, err := a.RunFrame()
		if err != nil {
			a.logger.Printf("Frame %d failed: %v", a.frames, err)
			status = ExitFailure
			break
		}
		if !more {
			break
		}
	}

	if err := a.Shutdown(); err != nil {
		a.logger.Printf("Shutdown failed: %v", err)
		status = ExitFailure
	}
	if status == ExitOK {
		a.logger.Printf("Window closed after %d frames", a.frames)
	}
	return status
}
