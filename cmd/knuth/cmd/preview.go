package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/msto63/knuth/internal/tui/preview"
)

func newPreviewCommand(root *rootOptions) *cobra.Command {
	var style string
	var plain bool

	cmd := &cobra.Command{
		Use:   "preview [markup]",
		Short: "Interactive terminal preview",
		Long: `Start the interactive preview.

Keys:
  Enter       render the input
  Tab         switch between box tree and parse tree
  PgUp/PgDn   scroll
  Ctrl+C      quit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			// the alternate screen owns the terminal; keep logs out of it
			svc, closer, err := newService(cfg, root.newLogger(cfg, "knuth-preview", io.Discard), true)
			if err != nil {
				return err
			}
			defer closer()

			input := cfg.Preview.InitialInput
			if len(args) > 0 {
				if input, err = readInput(args, cmd.InOrStdin()); err != nil {
					return err
				}
			}
			return preview.Run(preview.Config{
				Backend: svc,
				Input:   input,
				Style:   style,
				Plain:   plain,
			})
		},
	}

	cmd.Flags().StringVarP(&style, "style", "s", "", "style: display, text, script, scriptscript")
	cmd.Flags().BoolVar(&plain, "plain", false, "no colors in the box tree")
	return cmd
}
