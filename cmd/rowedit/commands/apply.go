package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jask/rowedit/internal/ordered"
	"github.com/jask/rowedit/internal/script"
	"github.com/jask/rowedit/internal/service"
)

func newApplyCommand(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "apply <script.yaml>",
		Short: "Apply a YAML gesture script and print the resulting list",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "json" {
				return fmt.Errorf("invalid format %q: must be text or json", format)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(opts)
			if err != nil {
				return err
			}
			defer e.Close()

			s, err := script.Load(args[0])
			if err != nil {
				return err
			}
			seed := e.cfg.List.Seed
			if s.Seed != nil {
				seed = s.Seed
			}

			ctx := cmd.Context()
			ed := service.NewEditor(ordered.New(seed...), e.editorJournal(), e.log, e.cfg.List.NewItemLabel)
			if err := ed.Begin(ctx, "apply "+filepath.Base(args[0])); err != nil {
				return err
			}
			res, applyErr := script.Apply(ed, s, func(ev service.Event) error {
				return ed.Record(ctx, ev)
			})

			out := cmd.OutOrStdout()
			if format == "json" {
				err = script.WriteJSON(out, res)
			} else {
				err = script.WriteText(out, res)
			}
			if applyErr != nil {
				return applyErr
			}
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format (text|json)")
	return cmd
}
