package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/richinsley/glbootstrap/bootstrap"
	"github.com/richinsley/glbootstrap/encoder"
	"github.com/richinsley/glbootstrap/glfwcontext"
	"github.com/richinsley/glbootstrap/graphics"
	"github.com/richinsley/glbootstrap/headless"
	"github.com/richinsley/glbootstrap/options"
	"github.com/richinsley/glbootstrap/renderer"
)

func init() {
	// GLFW and GL contexts are bound to the main thread.
	runtime.LockOSThread()
}

func newPlatform(opts *options.Options) graphics.Platform {
	if *opts.Backend == options.BackendHeadless {
		return headless.NewPlatform(*opts.Frames)
	}
	return glfwcontext.NewPlatform()
}

func run() int {
	opts, err := options.Parse(os.Args[0], os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return bootstrap.ExitOK
		}
		log.Printf("Invalid options: %v", err)
		return bootstrap.ExitFailure
	}
	if *opts.Help {
		fmt.Println("OpenGL 3.3 core bootstrap")
		fs, _ := options.NewFlagSet(os.Args[0], os.Stdout)
		fs.PrintDefaults()
		return bootstrap.ExitOK
	}

	var appOpts []bootstrap.Option
	if opts.Recording() {
		rec, err := encoder.NewRecorder(encoder.RecorderOptions{
			OutputFile: *opts.OutputFile,
			FFMPEGPath: *opts.FFMPEGPath,
			Width:      bootstrap.WindowWidth,
			Height:     bootstrap.WindowHeight,
			FPS:        *opts.FPS,
		})
		if err != nil {
			log.Printf("Failed to start recorder: %v", err)
			return bootstrap.ExitFailure
		}
		appOpts = append(appOpts, bootstrap.WithFrameSink(rec))
	}

	app := bootstrap.New(newPlatform(opts), renderer.New(), appOpts...)
	return app.Run()
}

func main() {
	os.Exit(run())
}
