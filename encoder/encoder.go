// Package encoder streams rendered RGBA frames into an ffmpeg process and
// writes a video file. It backs the viewer's record mode.
package encoder

import (
	"fmt"
	"io"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Options configures one encoding session. Width and height must match the
// frames written; FPS drives both input pacing and the output stream.
type Options struct {
	Width      int
	Height     int
	FPS        int
	OutputFile string
	FFMPEGPath string // optional explicit ffmpeg executable
	Codec      string // "h264" (default) or "hevc"
}

// Session is a running ffmpeg pipe. Frames go in through WriteFrame in
// render order; Close flushes the pipe and waits for the encode to finish.
type Session struct {
	writer    *io.PipeWriter
	errc      chan error
	frameSize int
	closed    bool
}

// NewSession starts ffmpeg reading rawvideo RGBA from a pipe.
func NewSession(opts Options) (*Session, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", opts.Width, opts.Height)
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}

	codec := "libx264"
	if opts.Codec == "hevc" {
		codec = "libx265"
	}

	inputArgs := ffmpeg.KwArgs{
		"f":         "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		"framerate": opts.FPS,
	}
	outputArgs := ffmpeg.KwArgs{
		"c:v":     codec,
		"pix_fmt": "yuv420p",
		"crf":     18,
		// GL reads pixels bottom-up; flip to scanline order.
		"vf": "vflip",
	}

	pipeReader, pipeWriter := io.Pipe()
	cmd := ffmpeg.Input("pipe:", inputArgs).
		Output(opts.OutputFile, outputArgs).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()

	if opts.FFMPEGPath != "" {
		cmd = cmd.SetFfmpegPath(opts.FFMPEGPath)
	}

	s := &Session{
		writer:    pipeWriter,
		errc:      make(chan error, 1),
		frameSize: opts.Width * opts.Height * 4,
	}
	go func() {
		s.errc <- cmd.Run()
	}()
	return s, nil
}

// WriteFrame submits one RGBA frame. The slice length must be exactly
// width*height*4.
func (s *Session) WriteFrame(pixels []byte) error {
	if s.closed {
		return fmt.Errorf("encoder session already closed")
	}
	if len(pixels) != s.frameSize {
		return fmt.Errorf("frame size %d; want %d", len(pixels), s.frameSize)
	}
	_, err := s.writer.Write(pixels)
	return err
}

// Close flushes the input pipe and waits for ffmpeg to finish.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.writer.Close(); err != nil {
		return err
	}
	return <-s.errc
}
