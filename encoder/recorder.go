// Package encoder records presented frames to a video file through ffmpeg.
package encoder

import (
	"errors"
	"fmt"
	"io"
	"log"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

var ErrClosed = errors.New("recorder is closed")

type RecorderOptions struct {
	OutputFile string
	FFMPEGPath string
	Width      int
	Height     int
	FPS        int
}

func (o RecorderOptions) validate() error {
	if o.OutputFile == "" {
		return fmt.Errorf("no output file")
	}
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("invalid frame size %dx%d", o.Width, o.Height)
	}
	if o.FPS <= 0 {
		return fmt.Errorf("invalid frame rate %d", o.FPS)
	}
	return nil
}

// Recorder streams raw RGBA frames into an ffmpeg process. It is not safe for
// concurrent use.
type Recorder struct {
	width  int
	height int
	pw     *io.PipeWriter
	errc   chan error
	frames int64
	closed bool
}

// NewRecorder starts ffmpeg and returns a Recorder feeding its stdin.
func NewRecorder(opts RecorderOptions) (*Recorder, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	log.Printf("Recording %dx%d@%d to %s", opts.Width, opts.Height, opts.FPS, opts.OutputFile)
	return startRecorder(opts, func(r io.Reader) error {
		cmd := ffmpeg.Input("pipe:", inputArgs(opts)).
			Output(opts.OutputFile, outputArgs()).
			OverWriteOutput().WithInput(r)
		if opts.FFMPEGPath != "" {
			cmd = cmd.SetFfmpegPath(opts.FFMPEGPath)
		}
		return cmd.Run()
	}), nil
}

func startRecorder(opts RecorderOptions, run func(io.Reader) error) *Recorder {
	pr, pw := io.Pipe()
	rec := &Recorder{
		width:  opts.Width,
		height: opts.Height,
		pw:     pw,
		errc:   make(chan error, 1),
	}
	go func() {
		err := run(pr)
		// Unblock any pending WriteFrame if ffmpeg exits early.
		pr.CloseWithError(err)
		rec.errc <- err
	}()
	return rec
}

func inputArgs(opts RecorderOptions) ffmpeg.KwArgs {
	return ffmpeg.KwArgs{
		"format":    "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		"framerate": opts.FPS,
	}
}

// GL reads rows bottom up.
func outputArgs() ffmpeg.KwArgs {
	return ffmpeg.KwArgs{
		"vf":      "vflip",
		"pix_fmt": "yuv420p",
	}
}

func (r *Recorder) Size() (int, int) {
	return r.width, r.height
}

// WriteFrame writes one tightly packed RGBA frame.
func (r *Recorder) WriteFrame(pixels []byte) error {
	if r.closed {
		return ErrClosed
	}
	if want := r.width * r.height * 4; len(pixels) != want {
		return fmt.Errorf("frame is %d bytes, want %d", len(pixels), want)
	}
	if _, err := r.pw.Write(pixels); err != nil {
		return fmt.Errorf("failed to write frame %d to ffmpeg: %w", r.frames, err)
	}
	r.frames++
	return nil
}

func (r *Recorder) Frames() int64 {
	return r.frames
}

// Close ends the stream and waits for ffmpeg to exit.
func (r *Recorder) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.pw.Close()
	err := <-r.errc
	log.Printf("Recorder finished after %d frames", r.frames)
	if err != nil {
		return fmt.Errorf("ffmpeg failed: %w", err)
	}
	return nil
}
