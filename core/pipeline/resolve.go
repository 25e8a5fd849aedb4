package pipeline

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// OutputPerm is the mode output redirections are created with.
const OutputPerm os.FileMode = 0644

// Resolve opens every redirection of the pipeline and, for two stages,
// connects them with a pipe. Relative paths are taken from dir.
//
// If stage 0 redirects its output to a file the file wins: no pipe is
// created and stage 1 keeps the interpreter's input.
//
// On error every descriptor opened so far is closed again.
func Resolve(p *Pipeline, dir string) (err error) {
	defer func() {
		if err != nil {
			p.Close()
		}
	}()

	for _, stage := range p.Stages {
		if in, ok := stage.Input.(*File); ok {
			fd, err := os.Open(resolvePath(dir, in.Path))
			if err != nil {
				return &InputFileError{Path: in.Path, Err: reason(err)}
			}
			in.desc = &descriptor{f: fd}
		}

		if out, ok := stage.Output.(*File); ok {
			fd, err := os.OpenFile(resolvePath(dir, out.Path), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, OutputPerm)
			if err != nil {
				return &OutputFileError{Path: out.Path, Err: reason(err)}
			}
			out.desc = &descriptor{f: fd}
		}
	}

	if len(p.Stages) == MaxStages {
		first, second := p.Stages[0], p.Stages[1]
		_, firstInherits := first.Output.(Inherited)
		_, secondInherits := second.Input.(Inherited)

		if firstInherits && secondInherits {
			pipe, err := NewPipe()
			if err != nil {
				return &SpawnError{Name: "pipe", Err: err}
			}
			first.Output, first.Peer = PipeWrite{pipe}, PipeRead{pipe}
			second.Input, second.Peer = PipeRead{pipe}, PipeWrite{pipe}
		}
	}

	return p.Validate()
}

func resolvePath(dir, path string) string {
	if filepath.IsAbs(path) || dir == "" {
		return path
	}
	return filepath.Join(dir, path)
}

// reason strips the operation and path from filesystem errors, the caller
// reports the path the user typed instead.
func reason(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}
