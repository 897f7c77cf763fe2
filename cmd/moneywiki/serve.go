package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/moneywiki/internal/cache"
	"github.com/iwvelando/moneywiki/internal/scheduler"
	"github.com/iwvelando/moneywiki/internal/server"
	"github.com/iwvelando/moneywiki/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func (a *app) serveCmd() *cobra.Command {
	var serverConfigPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculators as a JSON HTTP API",
		Long: `Starts the HTTP API and, unless the policy year is pinned in the
configuration, the scheduler that rolls the active policy year over at the
start of each year.

Server settings come from the "server" section of the configuration and may be
overridden by a standalone server config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, serverConfigPath)
		},
	}
	cmd.Flags().StringVar(&serverConfigPath, "server-config", constants.DefaultServerConfigFile, "path to the standalone server config file")
	return cmd
}

func (a *app) serve(ctx context.Context, serverConfigPath string) error {
	const op = "main.serve"

	base, err := server.NewConfig(a.conf.Server)
	if err != nil {
		return fmt.Errorf("invalid server configuration: %w", err)
	}
	srvCfg, err := server.LoadConfig(serverConfigPath, base)
	if err != nil {
		return err
	}

	repo := cache.FromConfig(a.conf.Cache)
	if closer, ok := repo.(io.Closer); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				a.logger.Warn("failed to close cache", zap.String("op", op), zap.Error(err))
			}
		}()
	}
	if redis, ok := repo.(*cache.Redis); ok {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redis.Ping(pingCtx); err != nil {
			a.logger.Warn("redis cache unreachable, continuing without cached results",
				zap.String("op", op),
				zap.String("address", a.conf.Cache.RedisAddr),
				zap.Error(err),
			)
		}
		cancel()
	}

	handler, err := server.NewHandler(server.Options{
		Logger:      a.logger,
		Service:     a.service,
		Cache:       repo,
		CacheTTL:    a.conf.Cache.TTL,
		MaxBodySize: srvCfg.BodySizeBytes(),
		Version:     a.version,
	})
	if err != nil {
		return err
	}

	var sched *scheduler.Scheduler
	if a.conf.Scheduler.Enabled && a.conf.Policy.Year == 0 {
		if sched, err = scheduler.New(a.conf.Scheduler.Rollover, a.service, a.logger); err != nil {
			return err
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(ctx, server.NewHTTPServer(srvCfg, handler), a.logger)
	})
	if sched != nil {
		g.Go(func() error {
			return sched.Run(ctx)
		})
	}

	return g.Wait()
}
