package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/knuth/foundation/core/error"
	"github.com/msto63/knuth/internal/knuth/store"
	"github.com/msto63/knuth/pkg/core/config"
)

func newCacheCommand(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and prune the persistent render cache",
	}
	cmd.AddCommand(newCacheStatsCommand(root), newCachePruneCommand(root))
	return cmd
}

func newCacheStatsCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(root)
			if err != nil {
				return err
			}
			defer st.Close()

			stats, err := st.Statistics(cmd.Context())
			if err != nil {
				return err
			}

			keys := make([]string, 0, len(stats))
			for k := range stats {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %v\n", k+":", stats[k])
			}
			return nil
		},
	}
}

func newCachePruneCommand(root *rootOptions) *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove cached renders older than a given age",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(root)
			if err != nil {
				return err
			}
			defer st.Close()

			removed, err := st.Prune(cmd.Context(), time.Now().Add(-olderThan))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d render(s)\n", removed)
			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 7*24*time.Hour, "minimum age of removed renders")
	return cmd
}

func openStore(root *rootOptions) (*store.SQLiteStore, error) {
	cfg, err := root.loadConfig()
	if err != nil {
		return nil, err
	}
	return openStoreFor(cfg)
}

func openStoreFor(cfg *config.Config) (*store.SQLiteStore, error) {
	path := cfg.CachePath()
	if path == "" {
		return nil, mdwerror.New("no persistent cache configured, set cache.path").
			WithCode(mdwerror.CodeMissingConfig).
			WithOperation("cache.open")
	}
	return store.New(store.Config{Path: path})
}
