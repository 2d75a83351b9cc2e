//go:build linux

package headless

import (
	"fmt"
	"log"
	"unsafe"

	"github.com/richinsley/glbootstrap/graphics"
)

/*
#cgo LDFLAGS: -lEGL
#include <stdlib.h>
#include <EGL/egl.h>
#include <EGL/eglext.h>

// Extension entry points have to be resolved at runtime and called through C.
static PFNEGLQUERYDEVICESEXTPROC eglQueryDevicesEXT_ptr = NULL;
static PFNEGLGETPLATFORMDISPLAYEXTPROC eglGetPlatformDisplayEXT_ptr = NULL;

static void initialize_egl_extension_pointers() {
    eglQueryDevicesEXT_ptr = (PFNEGLQUERYDEVICESEXTPROC) eglGetProcAddress("eglQueryDevicesEXT");
    eglGetPlatformDisplayEXT_ptr = (PFNEGLGETPLATFORMDISPLAYEXTPROC) eglGetProcAddress("eglGetPlatformDisplayEXT");
}

static EGLDisplay get_platform_display(EGLenum platform, void *native_display, const EGLint *attrib_list) {
    if (eglGetPlatformDisplayEXT_ptr) {
        return eglGetPlatformDisplayEXT_ptr(platform, native_display, attrib_list);
    }
    return EGL_NO_DISPLAY;
}

static EGLBoolean query_devices(EGLint max_devices, EGLDeviceEXT *devices, EGLint *num_devices) {
    if (eglQueryDevicesEXT_ptr) {
        return eglQueryDevicesEXT_ptr(max_devices, devices, num_devices);
    }
    return EGL_FALSE;
}
*/
import "C"

type eglDisplay struct {
	handle       C.EGLDisplay
	major, minor int
}

// getEGLDisplay prefers device enumeration and falls back to the default display.
func getEGLDisplay() (C.EGLDisplay, error) {
	C.initialize_egl_extension_pointers()

	var numDevices C.EGLint
	if C.query_devices(0, nil, &numDevices) == C.EGL_FALSE || numDevices == 0 {
		log.Println("EGL_EXT_device_query not supported or no devices found, falling back to EGL_DEFAULT_DISPLAY")
		display := C.eglGetDisplay(C.EGLNativeDisplayType(C.EGL_DEFAULT_DISPLAY))
		if display == C.EGLDisplay(C.EGL_NO_DISPLAY) {
			return C.EGLDisplay(C.EGL_NO_DISPLAY), fmt.Errorf("eglGetDisplay(EGL_DEFAULT_DISPLAY) failed")
		}
		return display, nil
	}

	devices := make([]C.EGLDeviceEXT, numDevices)
	if C.query_devices(numDevices, &devices[0], &numDevices) == C.EGL_FALSE {
		return C.EGLDisplay(C.EGL_NO_DISPLAY), fmt.Errorf("failed to query EGL devices")
	}

	for i := 0; i < int(numDevices); i++ {
		display := C.get_platform_display(C.EGL_PLATFORM_DEVICE_EXT, unsafe.Pointer(devices[i]), nil)
		if display != C.EGLDisplay(C.EGL_NO_DISPLAY) {
			log.Printf("Using EGL display from device %d of %d", i, numDevices)
			return display, nil
		}
	}
	return C.EGLDisplay(C.EGL_NO_DISPLAY), fmt.Errorf("no usable EGL display among %d device(s)", numDevices)
}

func (d *eglDisplay) open() error {
	display, err := getEGLDisplay()
	if err != nil {
		return fmt.Errorf("failed to get EGL display: %w", err)
	}

	var major, minor C.EGLint
	if C.eglInitialize(display, &major, &minor) == C.EGL_FALSE {
		return fmt.Errorf("eglInitialize failed: %s", eglError())
	}
	exts := C.GoString(C.eglQueryString(display, C.EGL_EXTENSIONS))
	if client := C.eglQueryString(C.EGLDisplay(C.EGL_NO_DISPLAY), C.EGL_EXTENSIONS); client != nil {
		exts += " " + C.GoString(client)
	}
	if !resolvesCoreProcs(int(major), int(minor), exts) {
		C.eglTerminate(display)
		return fmt.Errorf("EGL %d.%d cannot resolve core OpenGL functions through eglGetProcAddress", major, minor)
	}

	d.handle = display
	d.major, d.minor = int(major), int(minor)
	return nil
}

func (d *eglDisplay) createSurface(width, height int, hints graphics.ContextHints) (*eglSurface, error) {
	if d.handle == C.EGLDisplay(C.EGL_NO_DISPLAY) {
		return nil, fmt.Errorf("EGL display not initialized")
	}
	if C.eglBindAPI(C.EGL_OPENGL_API) == C.EGL_FALSE {
		return nil, fmt.Errorf("eglBindAPI(EGL_OPENGL_API) failed: %s", eglError())
	}

	configAttribs := []C.EGLint{
		C.EGL_SURFACE_TYPE, C.EGL_PBUFFER_BIT,
		C.EGL_RED_SIZE, 8,
		C.EGL_GREEN_SIZE, 8,
		C.EGL_BLUE_SIZE, 8,
		C.EGL_ALPHA_SIZE, 8,
		C.EGL_RENDERABLE_TYPE, C.EGL_OPENGL_BIT,
		C.EGL_NONE,
	}
	var config C.EGLConfig
	var numConfig C.EGLint
	if C.eglChooseConfig(d.handle, &configAttribs[0], &config, 1, &numConfig) == C.EGL_FALSE || numConfig == 0 {
		return nil, fmt.Errorf("failed to choose EGL config: %s", eglError())
	}

	pbufferAttribs := []C.EGLint{
		C.EGL_WIDTH, C.EGLint(width),
		C.EGL_HEIGHT, C.EGLint(height),
		C.EGL_NONE,
	}
	surface := C.eglCreatePbufferSurface(d.handle, config, &pbufferAttribs[0])
	if surface == C.EGLSurface(C.EGL_NO_SURFACE) {
		return nil, fmt.Errorf("failed to create pbuffer surface: %s", eglError())
	}

	contextAttribs := []C.EGLint{
		C.EGL_CONTEXT_MAJOR_VERSION, C.EGLint(hints.Major),
		C.EGL_CONTEXT_MINOR_VERSION, C.EGLint(hints.Minor),
	}
	switch hints.Profile {
	case graphics.CoreProfile:
		contextAttribs = append(contextAttribs, C.EGL_CONTEXT_OPENGL_PROFILE_MASK, C.EGL_CONTEXT_OPENGL_CORE_PROFILE_BIT)
	case graphics.CompatProfile:
		contextAttribs = append(contextAttribs, C.EGL_CONTEXT_OPENGL_PROFILE_MASK, C.EGL_CONTEXT_OPENGL_COMPATIBILITY_PROFILE_BIT)
	}
	if hints.ForwardCompatible {
		contextAttribs = append(contextAttribs, C.EGL_CONTEXT_OPENGL_FORWARD_COMPATIBLE, C.EGL_TRUE)
	}
	contextAttribs = append(contextAttribs, C.EGL_NONE)

	context := C.eglCreateContext(d.handle, config, C.EGLContext(C.EGL_NO_CONTEXT), &contextAttribs[0])
	if context == C.EGLContext(C.EGL_NO_CONTEXT) {
		C.eglDestroySurface(d.handle, surface)
		return nil, fmt.Errorf("failed to create OpenGL %d.%d %s context: %s", hints.Major, hints.Minor, hints.Profile, eglError())
	}

	return &eglSurface{display: d.handle, surface: surface, context: context}, nil
}

func (d *eglDisplay) close() {
	if d.handle != C.EGLDisplay(C.EGL_NO_DISPLAY) {
		C.eglTerminate(d.handle)
		d.handle = C.EGLDisplay(C.EGL_NO_DISPLAY)
	}
}

type eglSurface struct {
	display C.EGLDisplay
	surface C.EGLSurface
	context C.EGLContext
}

func (s *eglSurface) makeCurrent() error {
	if C.eglMakeCurrent(s.display, s.surface, s.surface, s.context) == C.EGL_FALSE {
		return fmt.Errorf("eglMakeCurrent failed: %s", eglError())
	}
	return nil
}

func (s *eglSurface) swap() error {
	if C.eglSwapBuffers(s.display, s.surface) == C.EGL_FALSE {
		return fmt.Errorf("eglSwapBuffers failed: %s", eglError())
	}
	return nil
}

func (s *eglSurface) destroy() {
	C.eglMakeCurrent(s.display, C.EGLSurface(C.EGL_NO_SURFACE), C.EGLSurface(C.EGL_NO_SURFACE), C.EGLContext(C.EGL_NO_CONTEXT))
	if s.context != C.EGLContext(C.EGL_NO_CONTEXT) {
		C.eglDestroyContext(s.display, s.context)
		s.context = C.EGLContext(C.EGL_NO_CONTEXT)
	}
	if s.surface != C.EGLSurface(C.EGL_NO_SURFACE) {
		C.eglDestroySurface(s.display, s.surface)
		s.surface = C.EGLSurface(C.EGL_NO_SURFACE)
	}
}

func eglError() string {
	return fmt.Sprintf("egl error %#x", int(C.eglGetError()))
}

func procAddress(name string) unsafe.Pointer {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return unsafe.Pointer(C.eglGetProcAddress(cname))
}
