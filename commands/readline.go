package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/josephlewis42/pipesh/core/vos"
	"golang.org/x/term"
)

// LineReader supplies the shell with lines of input.
type LineReader interface {
	SetPrompt(prompt string)
	Readline() (string, error)
}

// LineReadCloser is a LineReader holding resources that must be released.
type LineReadCloser interface {
	LineReader
	io.Closer
}

// NewLineReader returns a line editor when stdin is a terminal and a plain
// reader otherwise.
func NewLineReader(stdio vos.Stdio) (LineReadCloser, error) {
	if f, ok := stdio.Stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return newEditor(stdio)
	}
	return NewPlainReader(stdio.In(), stdio.Stdout), nil
}

func newEditor(stdio vos.Stdio) (LineReadCloser, error) {
	cfg := &readline.Config{
		Stdin:  readline.NewCancelableStdin(stdio.Stdin),
		Stdout: stdio.Stdout,
		Stderr: stdio.Stderr,
	}

	if err := cfg.Init(); err != nil {
		return nil, err
	}

	return readline.NewEx(cfg)
}

var _ LineReadCloser = (*readline.Instance)(nil)

// PlainReader reads lines without editing or history.
//
// Input is consumed a byte at a time so nothing past the current line is
// taken from a stream that children started later also read.
type PlainReader struct {
	in     io.Reader
	out    io.Writer
	prompt string
}

var _ LineReadCloser = (*PlainReader)(nil)

// NewPlainReader creates a reader that writes the prompt to out before each
// line is read from in.
func NewPlainReader(in io.Reader, out io.Writer) *PlainReader {
	return &PlainReader{in: in, out: out}
}

func (r *PlainReader) SetPrompt(prompt string) {
	r.prompt = prompt
}

// Readline returns the next line without its terminator. A final line
// without a newline is returned before io.EOF.
func (r *PlainReader) Readline() (string, error) {
	fmt.Fprint(r.out, r.prompt)

	var line strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := r.in.Read(buf)
		if n == 1 {
			if buf[0] == '\n' {
				return strings.TrimSuffix(line.String(), "\r"), nil
			}
			line.WriteByte(buf[0])
			continue
		}

		switch {
		case err == io.EOF && line.Len() > 0:
			return line.String(), nil
		case err != nil:
			return "", err
		}
	}
}

func (r *PlainReader) Close() error {
	return nil
}
