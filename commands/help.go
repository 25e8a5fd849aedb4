package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/josephlewis42/pipesh/core/vos"
)

const (
	helpUse    = "help"
	helpShort  = "Show the builtin commands and the command line syntax."
	aboutUse   = "about"
	aboutShort = "Show information about the shell."
)

var syntaxHelp = []string{
	"A line holds one command, or two joined by a pipe:",
	"",
	"  command [ARG]... [< INPUT] [> OUTPUT]",
	"  command [ARG]... [< INPUT] | command [ARG]... [> OUTPUT]",
	"",
	"Words are separated by blanks, there is no quoting or expansion.",
	"Input may only be redirected for the first command, OUTPUT is truncated.",
	"Anything that isn't a builtin is looked up in $PATH.",
}

// Help lists the registered builtins and the command line syntax.
func Help(s *Shell, stdio vos.Stdio, args []string) int {
	cmd := &SimpleCommand{
		Use:   helpUse,
		Short: helpShort,
	}

	return cmd.Run(stdio, args, func() int {
		w := stdio.Stdout
		fmt.Fprintln(w, "Builtins:")
		tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
		for _, name := range ListBuiltins(s.Builtins) {
			b := s.Builtins[name]
			fmt.Fprintf(tw, "  %s\t%s\n", b.Use, b.Short)
		}
		tw.Flush()
		fmt.Fprintln(w)
		for _, line := range syntaxHelp {
			fmt.Fprintln(w, line)
		}
		return 0
	})
}

// About prints the configured about text.
func About(s *Shell, stdio vos.Stdio, args []string) int {
	cmd := &SimpleCommand{
		Use:   aboutUse,
		Short: aboutShort,
	}

	return cmd.Run(stdio, args, func() int {
		for _, line := range s.Config.About {
			fmt.Fprintln(stdio.Stdout, line)
		}
		return 0
	})
}

func init() {
	addBuiltin("help", &Builtin{Use: helpUse, Short: helpShort, Main: Help})
	addBuiltin("about", &Builtin{Use: aboutUse, Short: aboutShort, Main: About})
}
