package vos

import (
	"io/fs"
	"os"
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestState(t *testing.T) *State {
	t.Helper()

	memfs := afero.NewMemMapFs()
	require.NoError(t, memfs.MkdirAll("/home/user/src", 0755))
	require.NoError(t, afero.WriteFile(memfs, "/home/user/notes.txt", []byte("hi"), 0644))

	return NewState(memfs, []string{"HOME=/home/user", "PWD=/somewhere/else"}, "/home/user")
}

func TestNewState(t *testing.T) {
	s := newTestState(t)

	assert.Equal(t, "/home/user", s.Getwd())
	assert.Equal(t, "/home/user", s.Env().Getenv(EnvPWD), "PWD follows the starting directory")
}

func TestState_Chdir(t *testing.T) {
	cases := map[string]struct {
		dir      string
		expected string
	}{
		"relative": {"src", "/home/user/src"},
		"absolute": {"/home", "/home"},
		"parent":   {"..", "/home"},
		"dot":      {".", "/home/user"},
		"cleaned":  {"src/../src/", "/home/user/src"},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			s := newTestState(t)

			require.NoError(t, s.Chdir(tc.dir))

			assert.Equal(t, tc.expected, s.Getwd())
			assert.Contains(t, s.Environ(), "PWD="+tc.expected)
		})
	}
}

func TestState_Chdir_failures(t *testing.T) {
	cases := map[string]struct {
		dir string
		is  error
	}{
		"missing-relative": {"nope", fs.ErrNotExist},
		"missing-absolute": {"/nope", fs.ErrNotExist},
		"not-a-directory":  {"notes.txt", nil},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			s := newTestState(t)

			err := s.Chdir(tc.dir)

			var dirErr *DirectoryChangeError
			require.True(t, errors.As(err, &dirErr), "got %v", err)
			assert.Equal(t, tc.dir, dirErr.Path)
			if tc.is != nil {
				assert.True(t, errors.Is(err, tc.is))
			}

			assert.Equal(t, "/home/user", s.Getwd(), "directory unchanged")
			assert.Equal(t, "/home/user", s.Env().Getenv(EnvPWD), "PWD unchanged")
		})
	}
}

func TestState_Chdir_noSearchPermission(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can enter any directory")
	}
	s := newTestState(t)
	require.NoError(t, s.Fs().Mkdir("/home/user/locked", 0600))

	err := s.Chdir("locked")

	assert.EqualError(t, err, "locked: permission denied")
	assert.True(t, errors.Is(err, fs.ErrPermission))
	assert.Equal(t, "/home/user", s.Getwd(), "directory unchanged")
	assert.Equal(t, "/home/user", s.Env().Getenv(EnvPWD), "PWD unchanged")

	require.NoError(t, s.Fs().Chmod("/home/user/locked", 0700))
	assert.NoError(t, s.Chdir("locked"))
}

func TestState_DisplayDir(t *testing.T) {
	s := newTestState(t)
	assert.Equal(t, "~", s.DisplayDir())

	require.NoError(t, s.Chdir("src"))
	assert.Equal(t, "~/src", s.DisplayDir())

	require.NoError(t, s.Chdir("/home"))
	assert.Equal(t, "/home", s.DisplayDir())
}

func TestState_Abs(t *testing.T) {
	s := newTestState(t)

	assert.Equal(t, "/home/user/a.txt", s.Abs("a.txt"))
	assert.Equal(t, "/tmp/a.txt", s.Abs("/tmp/./a.txt"))
}
