package pipeline

import (
	"fmt"
	"os"
	"sync"

	"github.com/pkg/errors"
)

// MaxStages is the number of stages a single line may hold.
const MaxStages = 2

// Endpoint is where a stage reads its input from or writes its output to.
//
// An Endpoint is one of Inherited, *File, PipeRead or PipeWrite.
type Endpoint interface {
	// Descriptor returns the open file backing the endpoint, nil if the
	// stage inherits the interpreter's stream.
	Descriptor() *os.File

	// Close releases the interpreter's copy of the descriptor. It is safe to
	// call more than once.
	Close() error

	fmt.Stringer

	isEndpoint()
}

// descriptor is an open file that is closed at most once. A builtin feeding
// the pipe may close its end while the interpreter closes the pipeline.
type descriptor struct {
	mu     sync.Mutex
	f      *os.File
	closed bool
}

func (d *descriptor) file() *os.File {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	return d.f
}

func (d *descriptor) Close() error {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.f == nil || d.closed {
		return nil
	}
	d.closed = true
	return d.f.Close()
}

// Inherited uses the interpreter's own standard stream.
type Inherited struct{}

var _ Endpoint = Inherited{}

func (Inherited) Descriptor() *os.File { return nil }
func (Inherited) Close() error         { return nil }
func (Inherited) String() string       { return "inherited" }
func (Inherited) isEndpoint()          {}

// File is an explicit redirection to or from a path.
type File struct {
	Path string

	desc *descriptor
}

var _ Endpoint = (*File)(nil)

// Descriptor implements Endpoint.Descriptor, it's nil until resolved.
func (f *File) Descriptor() *os.File { return f.desc.file() }

// Close implements Endpoint.Close.
func (f *File) Close() error { return f.desc.Close() }

func (f *File) String() string { return fmt.Sprintf("file(%s)", f.Path) }
func (*File) isEndpoint()      {}

// Pipe is the single OS pipe joining two stages.
type Pipe struct {
	r descriptor
	w descriptor
}

// NewPipe allocates an OS pipe.
func NewPipe() (*Pipe, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, errors.Wrap(err, "pipe")
	}
	return &Pipe{r: descriptor{f: r}, w: descriptor{f: w}}, nil
}

// Close both ends of the pipe.
func (p *Pipe) Close() error {
	rerr := p.r.Close()
	if werr := p.w.Close(); werr != nil {
		return werr
	}
	return rerr
}

// PipeRead is the read end of a Pipe.
type PipeRead struct{ Pipe *Pipe }

var _ Endpoint = PipeRead{}

func (p PipeRead) Descriptor() *os.File { return p.Pipe.r.file() }
func (p PipeRead) Close() error         { return p.Pipe.r.Close() }
func (PipeRead) String() string         { return "pipe(read)" }
func (PipeRead) isEndpoint()            {}

// PipeWrite is the write end of a Pipe.
type PipeWrite struct{ Pipe *Pipe }

var _ Endpoint = PipeWrite{}

func (p PipeWrite) Descriptor() *os.File { return p.Pipe.w.file() }
func (p PipeWrite) Close() error         { return p.Pipe.w.Close() }
func (PipeWrite) String() string         { return "pipe(write)" }
func (PipeWrite) isEndpoint()            {}

// Stage is one command of a pipeline.
type Stage struct {
	// Text holds the program and its arguments, unsplit.
	Text string

	Input  Endpoint
	Output Endpoint

	// Peer is the half of the inter-stage pipe this stage doesn't use, nil
	// when the stage isn't connected to a pipe.
	Peer Endpoint
}

// Release closes the interpreter's copies of the stage's own descriptors.
// The peer is owned by the other stage and is left alone.
func (s *Stage) Release() error {
	inErr := s.Input.Close()
	if err := s.Output.Close(); err != nil {
		return err
	}
	return inErr
}

func (s *Stage) String() string {
	return fmt.Sprintf("%q <%s >%s", s.Text, s.Input, s.Output)
}

// Pipeline is the parsed form of one input line.
type Pipeline struct {
	Stages []*Stage
}

// Validate checks the stage count and the inter-stage wiring.
func (p *Pipeline) Validate() error {
	switch n := len(p.Stages); {
	case n == 0:
		return ErrEmptyCommand
	case n > MaxStages:
		return ErrTooManyStages
	case n == 1:
		return nil
	}

	first, second := p.Stages[0], p.Stages[1]
	w, writesPipe := first.Output.(PipeWrite)
	r, readsPipe := second.Input.(PipeRead)
	switch {
	case writesPipe != readsPipe:
		return errors.Errorf("stages half connected: %s -> %s", first.Output, second.Input)
	case writesPipe && w.Pipe != r.Pipe:
		return errors.New("stages connected to different pipes")
	}
	if _, ok := first.Input.(PipeRead); ok {
		return errors.New("first stage can't read from a pipe")
	}
	if _, ok := second.Output.(PipeWrite); ok {
		return errors.New("last stage can't write to a pipe")
	}
	return nil
}

// Close releases every descriptor the interpreter holds for the pipeline.
func (p *Pipeline) Close() error {
	var lastErr error
	for _, s := range p.Stages {
		if err := s.Release(); err != nil {
			lastErr = err
		}
		if s.Peer != nil {
			if err := s.Peer.Close(); err != nil {
				lastErr = err
			}
		}
	}
	return lastErr
}
