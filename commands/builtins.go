package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/josephlewis42/pipesh/core/vos"
)

const (
	cdUse        = "cd [DIRECTORY]"
	cdShort      = "Change the working directory, print it when no DIRECTORY is given."
	echoUse      = "echo [TEXT]..."
	echoShort    = "Display a line of text."
	environUse   = "environ"
	environShort = "List the environment."
	exitUse      = "exit"
	exitShort    = "Exit the shell."
)

// Cd is the cd shell builtin, it only changes the interpreter state so
// children started afterwards run in the new directory.
func Cd(s *Shell, stdio vos.Stdio, args []string) int {
	switch len(args) {
	case 1:
		fmt.Fprintln(stdio.Stdout, s.State.Getwd())
	case 2:
		if err := s.State.Chdir(args[1]); err != nil {
			fmt.Fprintf(stdio.Stderr, "%s: %v\n", args[0], err)
			return 1
		}
		s.Logger.Printf("cd: now in %q", s.State.Getwd())
	default:
		fmt.Fprintf(stdio.Stderr, "%s: too many arguments\n", args[0])
		return 1
	}
	return 0
}

// Echo writes its arguments separated by single spaces.
func Echo(s *Shell, stdio vos.Stdio, args []string) int {
	fmt.Fprintln(stdio.Stdout, strings.Join(args[1:], " "))
	return 0
}

// Environ prints the shell environment, one NAME=VALUE per line.
func Environ(s *Shell, stdio vos.Stdio, args []string) int {
	cmd := &SimpleCommand{
		Use:   environUse,
		Short: environShort,
	}

	return cmd.Run(stdio, args, func() int {
		env := s.State.Environ()
		sort.Strings(env)
		for _, envDef := range env {
			fmt.Fprintln(stdio.Stdout, envDef)
		}

		return 0
	})
}

// Exit quits the shell.
func Exit(s *Shell, stdio vos.Stdio, args []string) int {
	s.terminate(stdio, 0)
	return 0
}

func init() {
	addBuiltin("cd", &Builtin{Use: cdUse, Short: cdShort, Main: Cd})
	addBuiltin("echo", &Builtin{Use: echoUse, Short: echoShort, Main: Echo})
	addBuiltin("environ", &Builtin{Use: environUse, Short: environShort, Main: Environ})
	addBuiltin("exit", &Builtin{Use: exitUse, Short: exitShort, Main: Exit})
}
