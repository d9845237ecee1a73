package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/opsfloor/opevents/pkg/cli/config"
	httpctrl "github.com/opsfloor/opevents/pkg/controller/http"
	"github.com/opsfloor/opevents/pkg/usecase"
	"github.com/opsfloor/opevents/pkg/utils/logging"
	"github.com/opsfloor/opevents/pkg/utils/safe"
)

func cmdServe(version string) *cli.Command {
	var addr string
	var lockTerminal bool
	var repoCfg config.Repository
	var catalogCfg config.Catalog
	var notifyCfg config.Notify
	var sentryCfg config.Sentry

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Listen address",
			Value:       "127.0.0.1:8080",
			Sources:     cli.EnvVars("OPEVENTS_ADDR"),
			Destination: &addr,
		},
		&cli.BoolFlag{
			Name:        "lock-terminal-records",
			Usage:       "Forbid edits to closed and cancelled events",
			Sources:     cli.EnvVars("OPEVENTS_LOCK_TERMINAL_RECORDS"),
			Destination: &lockTerminal,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, catalogCfg.Flags()...)
	flags = append(flags, notifyCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start the Operation Events API server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			flushSentry, err := sentryCfg.Configure(version)
			if err != nil {
				return err
			}
			defer flushSentry()

			store, err := catalogCfg.Configure()
			if err != nil {
				return err
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer safe.Close(ctx, repo)

			notifier, err := notifyCfg.Configure()
			if err != nil {
				return err
			}

			opts := []usecase.Option{
				usecase.WithLockTerminal(lockTerminal),
			}
			if notifier != nil {
				opts = append(opts, usecase.WithNotifier(notifier))
			}
			uc := usecase.New(repo, store, opts...)
			uc.Catalog.SetPersistPath(catalogCfg.Path())

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 10 * time.Second,
			}

			sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			eg, egCtx := errgroup.WithContext(sigCtx)
			eg.Go(func() error {
				logger.Info("Starting HTTP server", "addr", addr, "notify", notifyCfg)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return goerr.Wrap(err, "failed to serve HTTP")
				}
				return nil
			})
			eg.Go(func() error {
				<-egCtx.Done()
				logger.Info("Shutting down HTTP server")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return server.Shutdown(shutdownCtx)
			})

			return eg.Wait()
		},
	}
}
