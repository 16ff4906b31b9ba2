package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/knuth/pkg/core/version"
)

func newVersionCommand() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			if short {
				fmt.Fprintln(w, version.Platform)
				return
			}
			fmt.Fprintln(w, version.Info())
			for _, name := range []string{"engine", "server", "preview"} {
				fmt.Fprintf(w, "  %-8s %s\n", name, version.ComponentVersion(name))
			}
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "print only the version number")
	return cmd
}
