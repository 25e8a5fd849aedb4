package commands

import (
	"io/fs"
	"os/exec"
	"strings"
	"syscall"

	"github.com/josephlewis42/pipesh/core/pipeline"
	"github.com/pkg/errors"
)

// Exit statuses for commands that couldn't be run.
const (
	StatusNotExecutable = 126
	StatusNotFound      = 127
)

var errCommandNotFound = errors.New("command not found")

// job is a started stage, either a child process or a builtin running
// alongside the next stage.
type job struct {
	stage *pipeline.Stage
	name  string
	cmd   *exec.Cmd

	// done delivers the builtin's status, nil for children.
	done chan int
}

// start launches the stages in order. Builtins run to completion, programs
// are started and returned to be waited for.
func (s *Shell) start(p *pipeline.Pipeline) []*job {
	var jobs []*job
	for _, stage := range p.Stages {
		j, err := s.dispatch(stage)

		var spawnErr *pipeline.SpawnError
		switch {
		case errors.As(err, &spawnErr):
			// Stages after this one are never started.
			s.report(err)
			return jobs
		case err != nil:
			s.report(err)
		case j != nil:
			jobs = append(jobs, j)
		}

		if s.Quit {
			return jobs
		}
	}
	return jobs
}

// dispatch runs a single stage. The interpreter's copies of the stage's
// descriptors are closed once the stage no longer needs them, so a reader
// sees end of file as soon as the writing child exits.
func (s *Shell) dispatch(stage *pipeline.Stage) (*job, error) {
	args := strings.Fields(stage.Text)
	builtin, isBuiltin := s.Builtins[args[0]]
	if _, toPipe := stage.Output.(pipeline.PipeWrite); isBuiltin && toPipe && builtin.Mode == WithStreams {
		return s.startBuiltin(stage, builtin, args), nil
	}

	defer stage.Release()
	if isBuiltin {
		stdio := s.Stdio
		if builtin.Mode == WithStreams {
			stdio = stdio.WithInput(stage.Input.Descriptor()).WithOutput(stage.Output.Descriptor())
		}
		s.lastRet = builtin.Main(s, stdio, args)
		return nil, nil
	}

	stdio := s.Stdio.WithInput(stage.Input.Descriptor()).WithOutput(stage.Output.Descriptor())
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Dir = s.State.Getwd()
	cmd.Env = s.State.Environ()
	cmd.Stdin = stdio.Stdin
	cmd.Stdout = stdio.Stdout
	cmd.Stderr = stdio.Stderr

	if err := cmd.Start(); err != nil {
		return nil, s.startError(args[0], err)
	}
	s.Logger.Printf("started %q pid %d", args[0], cmd.Process.Pid)
	return &job{stage: stage, name: args[0], cmd: cmd}, nil
}

// startBuiltin runs a builtin feeding the pipe in the background, the reader
// isn't started until dispatch returns. The builtin's descriptors are released
// as soon as it returns so the reader sees end of file.
func (s *Shell) startBuiltin(stage *pipeline.Stage, builtin *Builtin, args []string) *job {
	stdio := s.Stdio.WithInput(stage.Input.Descriptor()).WithOutput(stage.Output.Descriptor())
	done := make(chan int, 1)
	go func() {
		status := builtin.Main(s, stdio, args)
		stage.Release()
		done <- status
	}()

	s.Logger.Printf("started builtin %q", args[0])
	return &job{stage: stage, name: args[0], done: done}
}

// startError sorts failures to start a program into ones local to the stage
// and ones that stop the whole command line.
func (s *Shell) startError(name string, err error) error {
	var execErr *exec.Error
	var pathErr *fs.PathError
	switch {
	case errors.As(err, &pathErr) && pathErr.Op == "chdir":
		// The working directory was removed or made inaccessible after cd.
		s.lastRet = 1
		return &pipeline.SpawnError{Name: name, Err: errors.Wrapf(pathErr.Err, "working directory %s", pathErr.Path)}

	case errors.As(err, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound):
		s.lastRet = StatusNotFound
		return &pipeline.ExecImageError{Name: name, Err: errCommandNotFound}

	case errors.Is(err, fs.ErrNotExist):
		s.lastRet = StatusNotFound
		return &pipeline.ExecImageError{Name: name, Err: reason(err)}

	case errors.Is(err, fs.ErrPermission), errors.Is(err, syscall.ENOEXEC):
		s.lastRet = StatusNotExecutable
		return &pipeline.ExecImageError{Name: name, Err: reason(err)}

	default:
		s.lastRet = 1
		return &pipeline.SpawnError{Name: name, Err: err}
	}
}

// wait collects the started children in stage order.
func (s *Shell) wait(jobs []*job) {
	for _, j := range jobs {
		if j.done != nil {
			// Only ever the first stage, the reader's status wins.
			s.Logger.Printf("builtin %q finished with status %d", j.name, <-j.done)
			continue
		}

		err := j.cmd.Wait()

		var exitErr *exec.ExitError
		switch {
		case err == nil:
			s.lastRet = 0

		case errors.As(err, &exitErr):
			s.lastRet = exitErr.ExitCode()
			status, ok := exitErr.Sys().(syscall.WaitStatus)
			if ok && status.Signaled() {
				s.lastRet = 128 + int(status.Signal())
				if status.Signal() == syscall.SIGPIPE {
					// The reader went away first, that's expected.
					continue
				}
			}
			s.report(errors.Wrap(exitErr, j.name))

		default:
			s.lastRet = 1
			s.report(&pipeline.WaitError{Name: j.name, Err: err})
		}
		s.Logger.Printf("%q finished with status %d", j.name, s.lastRet)
	}
}

func reason(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}
