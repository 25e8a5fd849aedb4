package pipeline

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrEmptyCommand is returned for lines (or stages) with no program;
	// callers treat it as a no-op.
	ErrEmptyCommand = errors.New("empty command")

	ErrTooManyStages     = errors.Errorf("only %d commands may be piped together", MaxStages)
	ErrMisplacedInput    = errors.New("input redirection is only allowed on the first command")
	ErrDuplicateRedirect = errors.New("duplicate redirection")
	ErrMissingTarget     = errors.New("missing file name after redirection")
)

// InputFileError is returned when an input redirection can't be opened.
type InputFileError struct {
	Path string
	Err  error
}

func (e *InputFileError) Error() string { return fmt.Sprintf("%s: %v", e.Path, e.Err) }
func (e *InputFileError) Unwrap() error { return e.Err }

// OutputFileError is returned when an output redirection can't be opened.
type OutputFileError struct {
	Path string
	Err  error
}

func (e *OutputFileError) Error() string { return fmt.Sprintf("%s: %v", e.Path, e.Err) }
func (e *OutputFileError) Unwrap() error { return e.Err }

// SpawnError is returned when the OS couldn't create a process or pipe.
type SpawnError struct {
	Name string
	Err  error
}

func (e *SpawnError) Error() string { return fmt.Sprintf("%s: can't start: %v", e.Name, e.Err) }
func (e *SpawnError) Unwrap() error { return e.Err }

// ExecImageError is returned when a program couldn't be loaded because it
// doesn't exist or isn't executable. It only affects its own stage.
type ExecImageError struct {
	Name string
	Err  error
}

func (e *ExecImageError) Error() string { return fmt.Sprintf("%s: %v", e.Name, e.Err) }
func (e *ExecImageError) Unwrap() error { return e.Err }

// WaitError is returned when waiting on a child failed, as opposed to the
// child exiting unsuccessfully.
type WaitError struct {
	Name string
	Err  error
}

func (e *WaitError) Error() string { return fmt.Sprintf("%s: wait: %v", e.Name, e.Err) }
func (e *WaitError) Unwrap() error { return e.Err }
