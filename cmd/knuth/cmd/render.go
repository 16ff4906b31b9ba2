package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/knuth/internal/knuth/api"
	"github.com/msto63/knuth/internal/knuth/client"
	"github.com/msto63/knuth/internal/knuth/service"
	"github.com/msto63/knuth/internal/renderer/html"
	"github.com/msto63/knuth/internal/renderer/terminal"
)

type renderOptions struct {
	style    string
	format   string
	remote   string
	plain    bool
	metrics  bool
	document bool
}

func newRenderCommand(root *rootOptions) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render [markup]",
		Short: "Lay out math markup",
		Long: `Lay out math markup and print the result.

Without arguments, or with "-", the markup is read from stdin.

Formats:
  html  - span markup (default)
  json  - result with box tree
  text  - the drawn characters
  tree  - indented box outline with metrics

Examples:
  knuth render 'x^2+y^2'
  knuth render --style display --format tree '\frac{a}{b}'
  echo '\sqrt{x}' | knuth render --remote localhost:9310`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, root, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.style, "style", "s", "", "style: display, text, script, scriptscript")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "html", "output format: html, json, text, tree")
	cmd.Flags().StringVar(&opts.remote, "remote", "", "render on a knuth server at this address")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "no colors in tree output")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", false, "add height and depth attributes to html output")
	cmd.Flags().BoolVar(&opts.document, "document", false, "wrap html output in a standalone page")
	return cmd
}

func runRender(cmd *cobra.Command, root *rootOptions, opts *renderOptions, args []string) error {
	input, err := readInput(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	resp, err := renderMarkup(cmd.Context(), root, opts, input, cmd.ErrOrStderr())
	if err != nil {
		printPosition(cmd.ErrOrStderr(), input, err)
		return err
	}
	return writeRender(cmd.OutOrStdout(), opts, resp)
}

func renderMarkup(ctx context.Context, root *rootOptions, opts *renderOptions, input string, logOut io.Writer) (*api.RenderResponse, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.remote != "" {
		c, err := client.New(client.Config{Target: opts.remote})
		if err != nil {
			return nil, err
		}
		defer c.Close()
		return c.Render(ctx, input, opts.style)
	}

	cfg, err := root.loadConfig()
	if err != nil {
		return nil, err
	}
	svc, closer, err := newService(cfg, root.newLogger(cfg, "knuth-render", logOut), false)
	if err != nil {
		return nil, err
	}
	defer closer()

	result, err := svc.Render(ctx, service.RenderRequest{Input: input, Style: opts.style})
	if err != nil {
		return nil, err
	}
	resp := api.NewRenderResponse(result)
	return &resp, nil
}

func writeRender(w io.Writer, opts *renderOptions, resp *api.RenderResponse) error {
	switch strings.ToLower(opts.format) {
	case "html":
		if !opts.document && !opts.metrics {
			_, err := fmt.Fprintln(w, resp.HTML)
			return err
		}
		tree, err := client.Tree(resp)
		if err != nil {
			return err
		}
		htmlOpts := html.Options{Metrics: opts.metrics}
		if opts.document {
			return html.Document(w, resp.Input, tree, htmlOpts)
		}
		if err := html.Render(w, tree, htmlOpts); err != nil {
			return err
		}
		_, err = fmt.Fprintln(w)
		return err

	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)

	case "text":
		_, err := fmt.Fprintln(w, resp.Text)
		return err

	case "tree":
		tree, err := client.Tree(resp)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, terminal.Render(tree, terminal.Options{Plain: opts.plain, Metrics: true}))
		return err

	default:
		return fmt.Errorf("unknown format %q (use html, json, text or tree)", opts.format)
	}
}
