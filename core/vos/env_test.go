package vos

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ExampleNewMapEnvFromEnvList() {
	env := NewMapEnvFromEnvList([]string{"PWD=/old", "HOME=/root", "PWD=/new"})

	fmt.Printf("Environ(): %q\n", env.Environ())

	// Output: Environ(): ["HOME=/root" "PWD=/new"]
}

func ExampleMapEnv_Unsetenv() {
	env := NewMapEnv()
	env.Setenv("A", "B")
	env.Setenv("C", "D")

	fmt.Println("Before:", env.Environ())
	env.Unsetenv("A")
	fmt.Println("After:", env.Environ())

	// Output: Before: [A=B C=D]
	// After: [C=D]
}

func ExampleMapEnv_LookupEnv() {
	env := NewMapEnv()
	env.Setenv("A", "B")

	val, ok := env.LookupEnv("A")
	fmt.Println("Existing", "val:", val, "ok:", ok)
	val, ok = env.LookupEnv("B")
	fmt.Println("Missing", "val:", val, "ok:", ok)

	// Output: Existing val: B ok: true
	// Missing val:  ok: false
}

func TestMapEnv_Setenv(t *testing.T) {
	env := NewMapEnv()

	assert.NoError(t, env.Setenv("PWD", "/a"))
	assert.NoError(t, env.Setenv("PWD", "/b"))
	assert.Equal(t, []string{"PWD=/b"}, env.Environ(), "entry replaced in place")

	assert.Error(t, env.Setenv("", "x"))
	assert.Error(t, env.Setenv("A=B", "x"))
}
