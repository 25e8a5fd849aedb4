package cmd

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/josephlewis42/pipesh/commands"
	"github.com/josephlewis42/pipesh/core/config"
	"github.com/josephlewis42/pipesh/core/vos"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	cfgPath   string
	verbose   bool
	command   string
	plainRead bool
)

func defaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "pipesh")
}

func newLogger(cmd *cobra.Command) *log.Logger {
	var w io.Writer = io.Discard
	if verbose {
		w = cmd.ErrOrStderr()
	}
	return log.New(w, "[pipesh] ", 0)
}

func loadConfig(logger *log.Logger) (*config.Configuration, error) {
	return config.LoadOrDefault(afero.NewOsFs(), cfgPath, logger)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pipesh",
	Short: "A line oriented shell",
	Long: `A line oriented shell that runs one command, or two joined by a
pipe, with input and output redirected to files.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		logger := newLogger(cmd)
		cfg, err := loadConfig(logger)
		if err != nil {
			return err
		}

		state, err := vos.NewOSState()
		if err != nil {
			return err
		}

		shell := commands.NewShell(cfg, state, vos.OSStdio(), logger)

		if cmd.Flags().Changed("command") {
			shell.RunLine(command)
			exitOnFailure(shell.LastStatus())
			return nil
		}

		var lines commands.LineReadCloser
		if plainRead {
			lines = commands.NewPlainReader(os.Stdin, os.Stdout)
		} else if lines, err = commands.NewLineReader(shell.Stdio); err != nil {
			return err
		}
		shell.Exit = func(code int) {
			lines.Close()
			os.Exit(code)
		}

		status := shell.Run(lines)
		lines.Close()
		exitOnFailure(status)
		return nil
	},
}

func exitOnFailure(status int) {
	if status != 0 {
		os.Exit(status)
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigDir(), "config path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log what the shell does to stderr")
	rootCmd.Flags().StringVarP(&command, "command", "c", "", "run a single command line and exit")
	rootCmd.Flags().BoolVar(&plainRead, "plain", false, "read lines without the line editor")
}
