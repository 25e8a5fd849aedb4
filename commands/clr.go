package commands

import (
	"fmt"
	"io"
	"os/exec"

	"github.com/anmitsu/go-shlex"
	"github.com/josephlewis42/pipesh/core/vos"
	"github.com/pkg/errors"
)

const (
	clrUse   = "clr"
	clrShort = "Clear the screen."

	// Home the cursor and erase the display, assumes VT100 compatibility.
	clearSequence = "\033[H\033[2J"
)

// Clr clears the screen with the configured clear command, writing the
// escape sequence directly if that fails.
func Clr(s *Shell, stdio vos.Stdio, args []string) int {
	cmd := &SimpleCommand{
		Use:   clrUse,
		Short: clrShort,
	}

	return cmd.Run(stdio, args, func() int {
		if err := s.runClearCommand(stdio); err != nil {
			s.Logger.Printf("clr: %q failed, writing escape sequence: %v", s.Config.ClearCommand, err)
			fmt.Fprint(stdio.Stdout, clearSequence)
		}
		return 0
	})
}

func (s *Shell) runClearCommand(stdio vos.Stdio) error {
	argv, err := shlex.Split(s.Config.ClearCommand, true)
	switch {
	case err != nil:
		return err
	case len(argv) == 0:
		return errors.New("empty command")
	}

	clear := exec.Command(argv[0], argv[1:]...)
	clear.Dir = s.State.Getwd()
	clear.Env = s.State.Environ()
	clear.Stdout = stdio.Stdout
	clear.Stderr = io.Discard
	return clear.Run()
}

func init() {
	addBuiltin("clr", &Builtin{Use: clrUse, Short: clrShort, Main: Clr})
}
