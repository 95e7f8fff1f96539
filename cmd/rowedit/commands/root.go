package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// rootOptions holds global flags for all commands.
type rootOptions struct {
	configPath string
	verbose    bool
}

// Execute runs the root command.
func Execute(ctx context.Context, version, commit string) error {
	return newRootCommand(version, commit).ExecuteContext(ctx)
}

func newRootCommand(version, commit string) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "rowedit",
		Short: "Edit an ordered list in the terminal",
		Long: `rowedit shows an editable list: select rows, add rows at the top, and in
editing mode delete rows or drag them to a new position.

Every gesture is written to a sqlite journal unless journal.path is empty.`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(cmd.Context(), opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file path (default $ROWEDIT_CONFIG or ~/.config/rowedit/config.toml)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(newRunCommand(opts))
	cmd.AddCommand(newApplyCommand(opts))
	cmd.AddCommand(newHistoryCommand(opts))
	cmd.AddCommand(newConfigCommand(opts))

	return cmd
}
