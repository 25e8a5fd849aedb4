package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/josephlewis42/pipesh/commands"
	"github.com/spf13/cobra"
)

// builtinsCmd lists the commands the shell runs itself
var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the builtin commands of the shell.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
		for _, name := range commands.ListBuiltins(commands.AllBuiltins) {
			fmt.Fprintf(tw, "%s\t%s\n", name, commands.AllBuiltins[name].Short)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
