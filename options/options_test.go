package options

import (
	"errors"
	"flag"
	"io"
	"testing"
)

func TestParseDefaults(t *testing.T) {
	o, err := Parse("glbootstrap", nil, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if *o.Backend != BackendWindow {
		t.Errorf("backend = %q, want %q", *o.Backend, BackendWindow)
	}
	if o.Recording() {
		t.Error("recording enabled by default")
	}
	if *o.FPS != 60 {
		t.Errorf("fps = %d", *o.FPS)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"headless", []string{"-backend", "headless", "-frames", "10"}, false},
		{"headless without frames", []string{"-backend", "headless"}, true},
		{"headless negative frames", []string{"-backend=headless", "-frames=-1"}, true},
		{"unknown backend", []string{"-backend", "vulkan"}, true},
		{"record", []string{"-record", "out.mp4", "-fps", "30"}, false},
		{"record zero fps", []string{"-record", "out.mp4", "-fps", "0"}, true},
		{"stray argument", []string{"extra"}, true},
		{"help skips validation", []string{"-help", "-backend", "vulkan"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("glbootstrap", tt.args, io.Discard)
			if (err != nil) != tt.wantErr {
				t.Errorf("Parse(%v) err = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
		})
	}
}

func TestParseHelpFlag(t *testing.T) {
	_, err := Parse("glbootstrap", []string{"-h"}, io.Discard)
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("err = %v, want flag.ErrHelp", err)
	}
}
