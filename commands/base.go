package commands

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/josephlewis42/pipesh/core/config"
	"github.com/josephlewis42/pipesh/core/vos"
	getopt "github.com/pborman/getopt/v2"
	"golang.org/x/term"
)

// Mode tags how a builtin is wired to the descriptors of its stage.
type Mode int

const (
	// InProcess builtins run on the interpreter's own streams, redirections
	// and pipes of their stage are opened but not used.
	InProcess Mode = iota

	// WithStreams builtins read and write the resolved descriptors of their
	// stage. One writing into the pipe runs on its own goroutine alongside the
	// reader, so it must not change the shell.
	WithStreams
)

// Builtin is a command run inside the interpreter rather than as a child
// process.
type Builtin struct {
	// Use holds a one line usage string.
	Use string
	// Short holds a one line description of the command.
	Short string
	Mode  Mode
	Main  func(s *Shell, stdio vos.Stdio, args []string) int
}

// AllBuiltins holds a list of all registered shell builtins.
var AllBuiltins = make(map[string]*Builtin)

func addBuiltin(name string, b *Builtin) {
	AllBuiltins[name] = b
}

// ListBuiltins returns the names in the registry, sorted.
func ListBuiltins(registry map[string]*Builtin) []string {
	var names []string
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type SimpleCommand struct {
	// Use holds a one line usage string
	Use string
	// Short holds a one line description of the command.
	Short string
	// ShowHelp sets whether help is displayed or not.
	// If this is non-nil when Run() is called, then the default help flag isn't
	// added.
	ShowHelp *bool
	// NeverBail skips interacting with stdout/stderr on failure and
	// always runs the callback.
	NeverBail bool

	flags *getopt.Set
}

// Flags gets the command's flag set.
func (s *SimpleCommand) Flags() *getopt.Set {
	if s.flags == nil {
		s.flags = getopt.New()
	}

	return s.flags
}

// PrintHelp writes help for the command to the given writer.
func (s *SimpleCommand) PrintHelp(w io.Writer) {
	fmt.Fprint(w, "usage: ")
	fmt.Fprintln(w, s.Use)
	fmt.Fprintln(w, s.Short)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	s.Flags().PrintOptions(w)
}

// Run the command, if flag parsing was succcessful call the callback.
func (s *SimpleCommand) Run(stdio vos.Stdio, args []string, callback func() int) int {
	opts := s.Flags()

	// Add help flag if not overridden.
	if s.ShowHelp == nil {
		s.ShowHelp = opts.BoolLong("help", 'h', "show this help and exit")
	}

	err := opts.Getopt(args, nil)
	if err != nil && !s.NeverBail {
		fmt.Fprintf(stdio.Stderr, "error: %s\n\n", err)

		s.PrintHelp(stdio.Stdout)
		return 1
	}

	if *s.ShowHelp {
		s.PrintHelp(stdio.Stdout)
		return 0
	}

	return callback()
}

var (
	ColorBoldBlue  = color.New(color.FgBlue, color.Bold)
	ColorBoldCyan  = color.New(color.FgCyan, color.Bold)
	ColorBoldGreen = color.New(color.FgGreen, color.Bold)
	ColorBoldRed   = color.New(color.FgRed, color.Bold)
	ColorPlain     = color.New(color.Reset)
)

func init() {
	// Whether to color is decided by ColorPrinter, not by the terminal
	// detection of the color package.
	for _, c := range []*color.Color{ColorBoldBlue, ColorBoldCyan, ColorBoldGreen, ColorBoldRed, ColorPlain} {
		c.EnableColor()
	}
}

// ColorPrinter colors output according to the configured color mode.
type ColorPrinter struct {
	mode       string
	isTerminal bool
}

// NewColorPrinter creates a printer for output written to w.
func NewColorPrinter(mode string, w io.Writer) *ColorPrinter {
	c := &ColorPrinter{mode: mode}
	if f, ok := w.(*os.File); ok {
		c.isTerminal = term.IsTerminal(int(f.Fd()))
	}
	return c
}

func (c *ColorPrinter) ShouldColor() bool {
	switch c.mode {
	case config.ColorNever:
		return false
	case config.ColorAlways:
		return true
	default:
		return c.isTerminal
	}
}

func (c *ColorPrinter) Sprintf(color *color.Color, format string, a ...interface{}) string {
	if c.ShouldColor() {
		return color.Sprintf(format, a...)
	}
	return fmt.Sprintf(format, a...)
}
