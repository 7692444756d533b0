package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/claytono/go-itemcmd/internal/catalog"
	"github.com/claytono/go-itemcmd/internal/config"
	"github.com/claytono/go-itemcmd/internal/dispatch"
	"github.com/claytono/go-itemcmd/internal/host"
	"github.com/claytono/go-itemcmd/internal/indexer"
)

// app is the wiring shared by every subcommand.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	ix     *indexer.Indexer
}

// loadConfig reads the configuration and applies global flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if catalogFlag != "" {
		cfg.Catalog = catalogFlag
	}
	if logLevelFlag != "" {
		if cfg.LogLevel, err = config.ParseLogLevel(logLevelFlag); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// newApp loads configuration and the catalog. A catalog that cannot be
// loaded leaves the index absent: commands still run, with best-effort
// names and no item IDs.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger()

	var src catalog.Source
	if cfg.Catalog != "" {
		src, err = catalog.ParseSource(cfg.Catalog)
		if err != nil {
			return nil, err
		}
	}

	ix := indexer.New(src, logger)
	if src != nil {
		if err := ix.Load(ctx); err != nil {
			logger.Warn("catalog unavailable, item IDs will not resolve", "source", src.String(), "error", err)
		}
	} else {
		logger.Info("no catalog configured, item IDs will not resolve")
	}
	return &app{cfg: cfg, logger: logger, ix: ix}, nil
}

// watch keeps the index current while ctx is live, when enabled.
func (a *app) watch(ctx context.Context) {
	if !a.cfg.Watch {
		return
	}
	if err := a.ix.Watch(ctx, indexer.DefaultDebounce); err != nil {
		a.logger.Warn("catalog watch failed", "error", err)
	}
}

// terminal builds a host that renders actions to out.
func (a *app) terminal(out io.Writer) *host.Terminal {
	var opts []host.Option
	if a.cfg.MarketURL != "" {
		opts = append(opts, host.WithMarketURL(a.cfg.MarketURL))
	}
	return host.NewTerminal(out, a.ix.Item, opts...)
}

// dispatcher builds a dispatcher that acts on h.
func (a *app) dispatcher(h host.Host) (*dispatch.Dispatcher, error) {
	d, err := dispatch.New(dispatch.Options{
		Index:       a.ix.Current,
		Host:        h,
		WikiBaseURL: a.cfg.WikiURL,
		Logger:      a.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create dispatcher: %w", err)
	}
	return d, nil
}
