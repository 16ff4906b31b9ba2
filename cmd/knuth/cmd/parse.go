package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/msto63/knuth/internal/knuth/api"
	"github.com/msto63/knuth/internal/knuth/client"
)

type parseOptions struct {
	format string
	remote string
}

func newParseCommand(root *rootOptions) *cobra.Command {
	opts := &parseOptions{}

	cmd := &cobra.Command{
		Use:   "parse [markup]",
		Short: "Print the parse tree of math markup",
		Long: `Parse math markup and print the resulting tree.

Formats:
  text  - compact one-line form (default)
  json  - node dump
  yaml  - node dump`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			resp, err := parseMarkup(cmd.Context(), root, opts, input, cmd.ErrOrStderr())
			if err != nil {
				printPosition(cmd.ErrOrStderr(), input, err)
				return err
			}
			return writeParse(cmd.OutOrStdout(), opts.format, resp)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "output format: text, json, yaml")
	cmd.Flags().StringVar(&opts.remote, "remote", "", "parse on a knuth server at this address")
	return cmd
}

func parseMarkup(ctx context.Context, root *rootOptions, opts *parseOptions, input string, logOut io.Writer) (*api.ParseResponse, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.remote != "" {
		c, err := client.New(client.Config{Target: opts.remote})
		if err != nil {
			return nil, err
		}
		defer c.Close()
		return c.Parse(ctx, input)
	}

	cfg, err := root.loadConfig()
	if err != nil {
		return nil, err
	}
	svc, closer, err := newService(cfg, root.newLogger(cfg, "knuth-parse", logOut), false)
	if err != nil {
		return nil, err
	}
	defer closer()

	result, err := svc.Parse(ctx, input)
	if err != nil {
		return nil, err
	}
	resp, err := api.NewParseResponse(result)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func writeParse(w io.Writer, format string, resp *api.ParseResponse) error {
	switch strings.ToLower(format) {
	case "text":
		_, err := fmt.Fprintln(w, resp.Formatted)
		return err

	case "json":
		var nodes interface{}
		if err := json.Unmarshal(resp.AST, &nodes); err != nil {
			return err
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(nodes)

	case "yaml":
		var nodes interface{}
		if err := json.Unmarshal(resp.AST, &nodes); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(nodes)

	default:
		return fmt.Errorf("unknown format %q (use text, json or yaml)", format)
	}
}
