package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"astrobrasil/internal/adapters/httpapi"
)

const shutdownTimeout = 10 * time.Second

const startupStatus = "Serviços online e estáveis."

func (c *cli) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.withRuntime(cmd, func(rt *runtime) error {
				return c.serve(ctx, rt)
			})
		},
	}
}

func (c *cli) serve(ctx context.Context, rt *runtime) error {
	ln, err := net.Listen("tcp", c.cfg.HTTPAddr)
	if err != nil {
		return err
	}
	metrics := promhttp.HandlerFor(rt.registry, promhttp.HandlerOpts{})
	srv := &http.Server{
		Handler:           httpapi.NewHandler(rt.service, rt.router, rt.board, rt.announcer, metrics),
		ReadHeaderTimeout: 5 * time.Second,
	}
	if _, err := rt.announcer.Announce(ctx, startupStatus); err != nil {
		c.logger.Warn("startup status not announced", zap.Error(err))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c.logger.Info("http server listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		c.logger.Info("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
