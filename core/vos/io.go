package vos

import (
	"io"
	"os"
)

// Stdio holds the standard streams of the interpreter or of a single stage.
//
// Streams that are *os.File values are handed to child processes directly,
// anything else is copied through a pipe by os/exec.
type Stdio struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewStdio creates a Stdio, nil writers discard their output.
func NewStdio(stdin io.Reader, stdout, stderr io.Writer) Stdio {
	return Stdio{
		Stdin:  stdin,
		Stdout: writerOrDiscard(stdout),
		Stderr: writerOrDiscard(stderr),
	}
}

// OSStdio returns the process's own standard streams.
func OSStdio() Stdio {
	return Stdio{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// In returns the input stream, an empty one if there is none.
func (s Stdio) In() io.Reader {
	if s.Stdin == nil {
		return devNull{}
	}
	return s.Stdin
}

// WithInput returns a copy with stdin replaced if f isn't nil.
func (s Stdio) WithInput(f *os.File) Stdio {
	if f != nil {
		s.Stdin = f
	}
	return s
}

// WithOutput returns a copy with stdout replaced if f isn't nil.
func (s Stdio) WithOutput(f *os.File) Stdio {
	if f != nil {
		s.Stdout = f
	}
	return s
}

func writerOrDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}

// devNull reads like /dev/null.
type devNull struct{}

var _ io.Reader = devNull{}

func (devNull) Read([]byte) (int, error) {
	return 0, io.EOF
}
