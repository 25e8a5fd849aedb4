package vos

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/afero"
)

// Well known environment variables.
const (
	EnvHome = "HOME"
	EnvPWD  = "PWD"
	EnvUser = "USER"
)

// DirectoryChangeError is returned when cd can't enter a directory.
type DirectoryChangeError struct {
	Path string
	Err  error
}

func (e *DirectoryChangeError) Error() string { return fmt.Sprintf("%s: %v", e.Path, e.Err) }
func (e *DirectoryChangeError) Unwrap() error { return e.Err }

// State is the interpreter state that outlives a single command line: the
// working directory and the environment handed to children.
//
// The working directory of the interpreter process itself is never changed,
// children are started in Getwd() instead.
type State struct {
	fs  afero.Fs
	env *MapEnv
	cwd string
}

// NewState creates the state for an interpreter started in cwd with the
// given environment. PWD is set to cwd.
func NewState(fs afero.Fs, environ []string, cwd string) *State {
	s := &State{
		fs:  fs,
		env: NewMapEnvFromEnvList(environ),
		cwd: filepath.Clean(cwd),
	}
	s.env.Setenv(EnvPWD, s.cwd)
	return s
}

// NewOSState creates the state from the running process.
func NewOSState() (*State, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return NewState(afero.NewOsFs(), os.Environ(), wd), nil
}

// Fs returns the filesystem paths are checked against.
func (s *State) Fs() afero.Fs {
	return s.fs
}

// Env returns the environment.
func (s *State) Env() VEnv {
	return s.env
}

// Environ materializes the environment for a child process.
func (s *State) Environ() []string {
	return s.env.Environ()
}

// Getwd returns the current working directory.
func (s *State) Getwd() string {
	return s.cwd
}

// Abs resolves path against the working directory.
func (s *State) Abs(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(s.cwd, path)
}

// Chdir changes the working directory and replaces PWD. On failure nothing
// changes and a *DirectoryChangeError is returned.
func (s *State) Chdir(dir string) error {
	target := s.Abs(dir)

	info, err := s.fs.Stat(target)
	switch {
	case err != nil:
		return &DirectoryChangeError{Path: dir, Err: unwrapPathError(err)}
	case !info.IsDir():
		return &DirectoryChangeError{Path: dir, Err: syscall.ENOTDIR}
	case !searchable(info):
		return &DirectoryChangeError{Path: dir, Err: syscall.EACCES}
	}

	s.cwd = target
	return s.env.Setenv(EnvPWD, target)
}

// DisplayDir returns the working directory with the home directory replaced
// by ~.
func (s *State) DisplayDir() string {
	home := s.env.Getenv(EnvHome)
	if home == "" || home == "/" {
		return s.cwd
	}
	if s.cwd == home || strings.HasPrefix(s.cwd, home+string(filepath.Separator)) {
		return "~" + strings.TrimPrefix(s.cwd, home)
	}
	return s.cwd
}

func unwrapPathError(err error) error {
	if pathErr, ok := err.(*os.PathError); ok {
		return pathErr.Err
	}
	return err
}
