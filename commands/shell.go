package commands

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/josephlewis42/pipesh/core/config"
	"github.com/josephlewis42/pipesh/core/pipeline"
	"github.com/josephlewis42/pipesh/core/vos"
	"github.com/pkg/errors"
)

type Shell struct {
	State  *vos.State
	Config *config.Configuration
	Stdio  vos.Stdio
	Logger *log.Logger

	// Builtins maps command names to the builtins run in process, it starts
	// as a copy of AllBuiltins.
	Builtins map[string]*Builtin

	// Exit is called by the exit builtin after the farewell message is
	// written, defaults to os.Exit.
	Exit func(code int)

	// Set to true to quit the shell
	Quit bool

	color   *ColorPrinter
	lastRet int
}

// NewShell creates an interpreter over the given state.
func NewShell(cfg *config.Configuration, state *vos.State, stdio vos.Stdio, logger *log.Logger) *Shell {
	builtins := make(map[string]*Builtin)
	for name, b := range AllBuiltins {
		builtins[name] = b
	}

	return &Shell{
		State:    state,
		Config:   cfg,
		Stdio:    stdio,
		Logger:   logger,
		Builtins: builtins,
		Exit:     os.Exit,
		color:    NewColorPrinter(cfg.Color, stdio.Stdout),
	}
}

// LastStatus returns the status of the last stage that ran.
func (s *Shell) LastStatus() int {
	return s.lastRet
}

func (s *Shell) prompt() string {
	prompt := s.Config.Prompt
	prompt = strings.ReplaceAll(prompt, `\u`, s.State.Env().Getenv(vos.EnvUser))
	prompt = strings.ReplaceAll(prompt, `\w`, s.State.DisplayDir())
	if os.Geteuid() == 0 {
		prompt = strings.ReplaceAll(prompt, `\$`, "#")
	} else {
		prompt = strings.ReplaceAll(prompt, `\$`, "$")
	}

	return s.color.Sprintf(ColorBoldGreen, "%s", prompt)
}

// Run reads and runs lines until the shell quits or the input ends,
// returning the exit status.
func (s *Shell) Run(lines LineReader) int {
	for !s.Quit {
		lines.SetPrompt(s.prompt())
		line, err := lines.Readline()

		switch {
		case err == io.EOF:
			// Input closed, behave as if exit was typed.
			s.terminate(s.Stdio, 0)
			return 0

		case err == readline.ErrInterrupt:
			// Interrupt clears line.
			continue

		case err != nil:
			s.Logger.Printf("Error readline: %v", err)
			s.report(errors.Wrap(err, "read"))
			return 1

		default:
			s.RunLine(line)
		}
	}
	return 0
}

// RunLine runs a single command line: it is parsed into stages, the
// redirections and the pipe are opened, every stage is started and the
// children are waited for.
func (s *Shell) RunLine(line string) {
	p, err := pipeline.Parse(line)
	switch {
	case errors.Is(err, pipeline.ErrEmptyCommand):
		// Blank lines and lines with an empty stage, like "ls |", run nothing.
		return
	case err != nil:
		s.lastRet = 2
		s.report(errors.Wrap(err, "syntax error"))
		return
	}

	if err := pipeline.Resolve(p, s.State.Getwd()); err != nil {
		s.lastRet = 1
		s.report(err)
		return
	}
	defer p.Close()

	for _, stage := range p.Stages {
		s.Logger.Printf("stage %v", stage)
	}

	jobs := s.start(p)
	if s.Quit {
		// Anything still running is abandoned along with the shell.
		return
	}
	s.wait(jobs)
}

// terminate says goodbye and stops the shell.
func (s *Shell) terminate(stdio vos.Stdio, code int) {
	if s.Config.ExitMessage != "" {
		fmt.Fprintln(stdio.Stdout, s.Config.ExitMessage)
	}
	s.Quit = true
	s.lastRet = code
	s.Logger.Printf("exiting with status %d", code)
	s.Exit(code)
}

// report writes a diagnostic to the shell's standard error.
func (s *Shell) report(err error) {
	fmt.Fprintln(s.Stdio.Stderr, s.color.Sprintf(ColorBoldRed, "pipesh: %v", err))
}
