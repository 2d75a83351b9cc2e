package options

import (
	"flag"
	"fmt"
	"io"
)

const (
	BackendWindow   = "window"
	BackendHeadless = "headless"
)

type Options struct {
	Backend    *string
	Frames     *int    // Headless only: the close flag is raised after this many frames
	OutputFile *string // Enables recording when set
	FPS        *int
	FFMPEGPath *string
	Help       *bool
}

// NewFlagSet registers all options on a new flag set.
func NewFlagSet(name string, output io.Writer) (*flag.FlagSet, *Options) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	o := &Options{
		Backend:    fs.String("backend", BackendWindow, "Context backend: window (GLFW) or headless (EGL pbuffer)"),
		Frames:     fs.Int("frames", 0, "Headless: number of frames to render before closing"),
		OutputFile: fs.String("record", "", "Record presented frames to this video file"),
		FPS:        fs.Int("fps", 60, "Frame rate written to the recording"),
		FFMPEGPath: fs.String("ffmpeg", "", "Path to ffmpeg executable"),
		Help:       fs.Bool("help", false, "Show help message"),
	}
	return fs, o
}

// Parse parses args (without the program name) and validates the result.
func Parse(name string, args []string, output io.Writer) (*Options, error) {
	fs, o := NewFlagSet(name, output)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if *o.Help {
		return o, nil
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Options) Validate() error {
	switch *o.Backend {
	case BackendWindow:
	case BackendHeadless:
		if *o.Frames <= 0 {
			return fmt.Errorf("-frames must be positive with the headless backend")
		}
	default:
		return fmt.Errorf("unknown backend %q", *o.Backend)
	}
	if *o.OutputFile != "" && *o.FPS <= 0 {
		return fmt.Errorf("-fps must be positive, got %d", *o.FPS)
	}
	return nil
}

func (o *Options) Recording() bool {
	return *o.OutputFile != ""
}
