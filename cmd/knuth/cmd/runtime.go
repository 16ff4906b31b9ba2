package cmd

import (
	"io"
	"strings"
	"time"

	"github.com/msto63/knuth/foundation/texmath"
	"github.com/msto63/knuth/foundation/texmath/layout"
	"github.com/msto63/knuth/internal/knuth/service"
	"github.com/msto63/knuth/internal/knuth/store"
	"github.com/msto63/knuth/pkg/core/cache"
	"github.com/msto63/knuth/pkg/core/config"
	"github.com/msto63/knuth/pkg/core/logging"
)

func (o *rootOptions) loadConfig() (*config.Config, error) {
	return config.LoadOrDefault(o.cfgFile)
}

func (o *rootOptions) newLogger(cfg *config.Config, name string, w io.Writer) *logging.Logger {
	level := cfg.General.LogLevel
	if o.verbose {
		level = "debug"
	}
	return logging.Wrap(logging.NewLogger(logging.LoggerConfig{
		ServiceName: name,
		Level:       level,
		Format:      cfg.General.LogFormat,
		Output:      w,
	}))
}

func engineOptions(cfg *config.Config, logger *logging.Logger) texmath.Options {
	return texmath.Options{
		Logger:         logger.Logger,
		MaxInputLength: cfg.Render.MaxInputLength,
		MaxDepth:       cfg.Render.MaxDepth,
		Environment:    layout.Environment{FractionsUnsupported: cfg.Render.DisableFractions},
		DefaultStyle:   cfg.Render.DefaultStyle,
	}
}

// newService builds the render service. With persistent set and a cache
// path configured, renders are also kept in the SQLite store.
func newService(cfg *config.Config, logger *logging.Logger, persistent bool) (*service.Service, func(), error) {
	svcCfg := service.Config{
		Engine:       engineOptions(cfg, logger),
		CacheEnabled: cfg.Cache.Enabled,
		Cache: cache.Config{
			MaxItems:        cfg.Cache.MaxItems,
			TTL:             cfg.Cache.TTL.Duration,
			CleanupInterval: time.Minute,
		},
		Logger: logger,
	}

	var st *store.SQLiteStore
	if persistent && cfg.Cache.Enabled && cfg.CachePath() != "" {
		var err error
		st, err = store.New(store.Config{Path: cfg.CachePath()})
		if err != nil {
			return nil, nil, err
		}
		svcCfg.Store = st
	}

	svc, err := service.NewService(svcCfg)
	if err != nil {
		if st != nil {
			st.Close()
		}
		return nil, nil, err
	}

	closer := func() {
		svc.Close()
		if st != nil {
			st.Close()
		}
	}
	return svc, closer, nil
}

// readInput joins the arguments, or reads stdin when there are none or the
// only argument is "-"
func readInput(args []string, stdin io.Reader) (string, error) {
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", err
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}
	return strings.Join(args, " "), nil
}
