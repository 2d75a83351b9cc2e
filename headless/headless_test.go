package headless

import (
	"testing"

	"github.com/richinsley/glbootstrap/graphics"
)

func TestCloseAfterFrameLimit(t *testing.T) {
	p := NewPlatform(3)
	w := &Window{platform: p}
	for i := 0; i < 3; i++ {
		if w.ShouldClose() {
			t.Fatalf("closed after %d polls", i)
		}
		if err := p.PollEvents(); err != nil {
			t.Fatal(err)
		}
	}
	if !w.ShouldClose() {
		t.Error("not closed after frame limit")
	}
}

func TestInitRejectsFrameLimit(t *testing.T) {
	for _, n := range []int{0, -1} {
		if err := NewPlatform(n).Init(); err == nil {
			t.Errorf("Init with frame limit %d succeeded", n)
		}
	}
}

func TestCreateWindowRejectsSize(t *testing.T) {
	p := NewPlatform(1)
	if _, err := p.CreateWindow(graphics.WindowConfig{Width: 0, Height: 600}); err == nil {
		t.Error("zero width accepted")
	}
}

func TestPbufferContext(t *testing.T) {
	p := NewPlatform(1)
	if err := p.Init(); err != nil {
		t.Skipf("no EGL display: %v", err)
	}
	defer p.Terminate()

	p.SetHints(graphics.ContextHints{Major: 3, Minor: 3, Profile: graphics.CoreProfile})
	w, err := p.CreateWindow(graphics.WindowConfig{Width: 16, Height: 8})
	if err != nil {
		t.Skipf("no OpenGL 3.3 core support: %v", err)
	}
	defer w.Destroy()

	if err := w.MakeCurrent(); err != nil {
		t.Fatal(err)
	}
	if fw, fh := w.FramebufferSize(); fw != 16 || fh != 8 {
		t.Errorf("framebuffer size = %dx%d", fw, fh)
	}
	if p.ProcAddress()("glClear") == nil {
		t.Error("glClear did not resolve")
	}
}

func TestResolvesCoreProcs(t *testing.T) {
	tests := []struct {
		major, minor int
		extensions   string
		want         bool
	}{
		{1, 5, "", true},
		{2, 0, "", true},
		{1, 4, "", false},
		{1, 4, "EGL_KHR_image_base EGL_KHR_get_all_proc_addresses", true},
		{1, 4, "EGL_EXT_platform_base EGL_KHR_client_get_all_proc_addresses", true},
		{1, 4, "EGL_KHR_get_all_proc_addresses_extra", false},
	}
	for _, tt := range tests {
		if got := resolvesCoreProcs(tt.major, tt.minor, tt.extensions); got != tt.want {
			t.Errorf("resolvesCoreProcs(%d, %d, %q) = %v, want %v", tt.major, tt.minor, tt.extensions, got, tt.want)
		}
	}
}
