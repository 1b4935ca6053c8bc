package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"astrobrasil/internal/blob"
	"astrobrasil/internal/config"
	"astrobrasil/internal/contact"
	"astrobrasil/internal/core"
	"astrobrasil/internal/logging"
	"astrobrasil/internal/seed"
	"astrobrasil/internal/status"
	"astrobrasil/internal/views"
)

// cli holds state shared by every subcommand.
type cli struct {
	env      map[string]string // nil reads the process environment
	logLevel string
	cfg      config.Config
	logger   *zap.Logger
}

func newRootCmd(env map[string]string) *cobra.Command {
	c := &cli{env: env}
	root := &cobra.Command{
		Use:           "astrobrasil",
		Short:         "AstroBrasil mission and research center catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(
		c.serveCmd(),
		c.missionsCmd(),
		c.centersCmd(),
		c.summaryCmd(),
		c.prefCmd(),
		c.seedCmd(),
		c.statusCmd(),
	)
	return root
}

func (c *cli) init(cmd *cobra.Command) error {
	var (
		cfg config.Config
		err error
	)
	if c.env != nil {
		cfg, err = config.LoadFrom(c.env)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
	}
	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.logger = logger
	return nil
}

// runtime is the wired application graph.
type runtime struct {
	registry  *prometheus.Registry
	docs      blob.Store
	service   *core.Service
	loader    *seed.Loader
	board     *views.NoticeBoard
	router    *views.Router
	announcer *status.Announcer
}

func (r *runtime) Close() error {
	if r.board != nil {
		r.board.Close()
	}
	if r.service != nil {
		return r.service.Close()
	}
	return nil
}

// open wires storage, the seed catalog and the view layer from configuration.
func (c *cli) open(ctx context.Context) (*runtime, error) {
	docs, err := blob.Open(ctx, c.cfg.BlobOptions())
	if err != nil {
		return nil, fmt.Errorf("open document store: %w", err)
	}
	loader := &seed.Loader{
		Store:       docs,
		Key:         c.cfg.CatalogKey,
		MaxAttempts: c.cfg.LoadAttempts,
		Logger:      c.logger,
	}
	loaded, err := loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	prefs, err := core.OpenPreferenceStore(ctx, c.cfg.StorageDriver, c.cfg.StorageOptions())
	if err != nil {
		return nil, fmt.Errorf("open preference store: %w", err)
	}
	registry := prometheus.NewRegistry()
	recorder, err := core.NewPrometheusRecorder(registry)
	if err != nil {
		_ = prefs.Close()
		return nil, err
	}
	svc := core.NewService(loaded.Catalog, prefs, core.WithLogger(c.logger), core.WithMetrics(recorder))
	board := views.NewNoticeBoard(nil, c.cfg.NoticeTimeout, c.logger)
	rt := &runtime{
		registry:  registry,
		docs:      docs,
		service:   svc,
		loader:    loader,
		board:     board,
		router:    views.NewRouter(svc, contact.NewService(docs, c.logger), board),
		announcer: status.NewAnnouncer(docs, "admin", c.cfg.Version, c.logger),
	}
	return rt, nil
}

// withRuntime opens the runtime for the duration of fn.
func (c *cli) withRuntime(cmd *cobra.Command, fn func(*runtime) error) (err error) {
	rt, err := c.open(cmd.Context())
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, rt.Close())
	}()
	return fn(rt)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
