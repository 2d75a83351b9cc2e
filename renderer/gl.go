package renderer

import (
	"fmt"
	"log"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/richinsley/glbootstrap/graphics"
)

// GL implements graphics.GL on top of the OpenGL 3.3 core bindings.
type GL struct {
	loaded bool
}

func New() *GL {
	return &GL{}
}

// Load resolves the GL entry points for the context current on this thread.
func (g *GL) Load(procAddr graphics.ProcAddressFunc) error {
	if procAddr == nil {
		return fmt.Errorf("no proc address function")
	}
	if err := gl.InitWithProcAddrFunc(procAddr); err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	g.loaded = true
	log.Printf("OpenGL version: %s", gl.GoStr(gl.GetString(gl.VERSION)))
	return nil
}

func (g *GL) ClearColor(c graphics.Color) {
	gl.ClearColor(c.R, c.G, c.B, c.A)
}

func (g *GL) Clear() error {
	gl.Clear(gl.COLOR_BUFFER_BIT)
	return glError("glClear")
}

func (g *GL) ReadPixels(width, height int, dst []byte) error {
	if !g.loaded {
		return fmt.Errorf("OpenGL functions not loaded")
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid read size %dx%d", width, height)
	}
	if need := width * height * 4; len(dst) < need {
		return fmt.Errorf("pixel buffer too small: have %d bytes, need %d", len(dst), need)
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(dst))
	return glError("glReadPixels")
}

func glError(op string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("%s: %s", op, errorName(code))
	}
	return nil
}

func errorName(code uint32) string {
	switch code {
	case gl.INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	default:
		return fmt.Sprintf("GL error %#x", code)
	}
}
