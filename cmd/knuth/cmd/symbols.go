package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/msto63/knuth/foundation/texmath/registry"
)

func newSymbolsCommand() *cobra.Command {
	var category, format string

	cmd := &cobra.Command{
		Use:   "symbols",
		Short: "List the supported commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := registry.Default()

			var entries []registry.Entry
			for _, e := range reg.Entries() {
				if category == "" || e.Category == category {
					entries = append(entries, e)
				}
			}
			if len(entries) == 0 {
				return fmt.Errorf("no commands in category %q (categories: %s)",
					category, strings.Join(reg.Categories(), ", "))
			}

			w := cmd.OutOrStdout()
			switch strings.ToLower(format) {
			case "table":
				rows := make([][]string, 0, len(entries))
				for _, e := range entries {
					rows = append(rows, []string{e.Command, e.Category, strconv.Itoa(e.Args)})
				}
				t := table.New().
					Border(lipgloss.NormalBorder()).
					Headers("COMMAND", "CATEGORY", "ARGS").
					Rows(rows...)
				_, err := fmt.Fprintln(w, t.String())
				return err
			case "json":
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			case "yaml":
				enc := yaml.NewEncoder(w)
				defer enc.Close()
				return enc.Encode(entries)
			default:
				return fmt.Errorf("unknown format %q (use table, json or yaml)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "only list one category, e.g. rel or color")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table, json, yaml")
	return cmd
}
