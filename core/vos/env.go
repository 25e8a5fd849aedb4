package vos

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// VEnv is an environment block held as key/value pairs.
type VEnv interface {
	EnvironFetcher

	// Setenv sets the value of the environment variable named by the key,
	// replacing any previous entry.
	Setenv(key, value string) error

	// Unsetenv unsets a single environment variable.
	Unsetenv(key string) error

	// LookupEnv retrieves the value of the environment variable named by the
	// key and whether it was present.
	LookupEnv(key string) (string, bool)

	// Getenv retrieves the value of the environment variable named by the key.
	Getenv(key string) string
}

// EnvironFetcher can produce an environment in "key=value" form.
type EnvironFetcher interface {
	Environ() []string
}

func splitEnv(entry string) (key, value string) {
	split := strings.SplitN(entry, "=", 2)
	key = split[0]
	if len(split) > 1 {
		value = split[1]
	}
	return
}

// NewMapEnv creates a new environment backed by a map.
func NewMapEnv() *MapEnv {
	return &MapEnv{}
}

// NewMapEnvFromEnvList creates an environment from "key=value" entries.
// Later duplicates win, malformed entries are dropped.
func NewMapEnvFromEnvList(environ []string) *MapEnv {
	out := NewMapEnv()
	for _, e := range environ {
		_ = out.Setenv(splitEnv(e))
	}
	return out
}

// MapEnv implements an in-memory VEnv.
type MapEnv struct {
	rw  sync.RWMutex
	env map[string]string
}

var _ VEnv = (*MapEnv)(nil)

// Unsetenv implements VEnv.Unsetenv.
func (m *MapEnv) Unsetenv(key string) error {
	m.rw.Lock()
	defer m.rw.Unlock()
	if m.env != nil {
		delete(m.env, key)
	}
	return nil
}

// Setenv implements VEnv.Setenv.
func (m *MapEnv) Setenv(key, value string) error {
	if key == "" || strings.ContainsAny(key, "=\x00") {
		return fmt.Errorf("setenv: invalid variable name %q", key)
	}

	m.rw.Lock()
	defer m.rw.Unlock()

	if m.env == nil {
		m.env = make(map[string]string)
	}
	m.env[key] = value
	return nil
}

// LookupEnv implements VEnv.LookupEnv.
func (m *MapEnv) LookupEnv(key string) (string, bool) {
	m.rw.RLock()
	defer m.rw.RUnlock()

	val, ok := m.env[key]
	return val, ok
}

// Getenv implements VEnv.Getenv.
func (m *MapEnv) Getenv(key string) string {
	val, _ := m.LookupEnv(key)
	return val
}

// Environ implements VEnv.Environ. Entries are sorted by key so the block
// is stable between calls.
func (m *MapEnv) Environ() []string {
	m.rw.RLock()
	defer m.rw.RUnlock()

	keys := make([]string, 0, len(m.env))
	for k := range m.env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	env := make([]string, 0, len(keys))
	for _, k := range keys {
		env = append(env, fmt.Sprintf("%s=%s", k, m.env[k]))
	}

	return env
}
