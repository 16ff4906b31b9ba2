package cmd

import (
	"github.com/spf13/cobra"
)

// rootOptions holds the persistent flags shared by all commands
type rootOptions struct {
	cfgFile string
	verbose bool
}

// NewRootCommand builds the knuth command tree
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "knuth",
		Short: "knuth - math markup typesetting",
		Long: `knuth parses TeX-style math markup and lays it out as a tree of
styled boxes with vertical metrics.

Commands:
  render   - lay out markup as HTML, JSON, text or a box outline
  parse    - print the parse tree
  symbols  - list the supported commands
  serve    - run the gRPC and HTTP render service
  preview  - interactive terminal preview
  cache    - inspect and prune the persistent render cache
  config   - write or show the configuration`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default: $KNUTH_CONFIG or ./configs/knuth.toml)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		newRenderCommand(opts),
		newParseCommand(opts),
		newSymbolsCommand(),
		newServeCommand(opts),
		newPreviewCommand(opts),
		newCacheCommand(opts),
		newConfigCommand(opts),
		newVersionCommand(),
	)
	return root
}

// Execute runs the root command
func Execute() error {
	return NewRootCommand().Execute()
}
