// Serve command runs the interactive catalog service.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mesh-intelligence/cardkeeper/internal/bot"
	"github.com/mesh-intelligence/cardkeeper/internal/i18n"
	"github.com/mesh-intelligence/cardkeeper/internal/sched"
	"github.com/mesh-intelligence/cardkeeper/internal/session"
)

// janitorInterval is how often idle workflow sessions are swept.
const janitorInterval = time.Minute

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the catalog service",
	Long: `Serve runs the catalog service with a console front end on
stdin/stdout. Workflow sessions are swept for idleness in the
background, and config.yaml changes are picked up while running.

Type "help" at the prompt for the command list.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := sched.New(logger)
	defer scheduler.Shutdown()

	engine := session.NewEngine(store, auditor, appCfg, logger)
	svc := bot.NewService(bot.Deps{
		Store:     store,
		Engine:    engine,
		Prefs:     i18n.LoadPrefs(appCfg.DataDir, logger),
		Audit:     auditor,
		Sched:     scheduler,
		Messenger: bot.NewWriterMessenger(os.Stdout),
		Config:    appCfg,
		Log:       logger,
	})
	console := bot.NewConsole(svc, os.Stdout, logger)

	// Pick up config.yaml edits while running. Admin ids, limiter
	// settings, and workflow limits apply immediately; the store keeps
	// its attach-time settings until a restart.
	appVp.OnConfigChange(func(e fsnotify.Event) {
		logger.Info("config file changed", zap.String("path", e.Name))
		reloadDynamicConfig(appVp, appCfg, svc, logger)
	})
	appVp.WatchConfig()

	logger.Info("service started",
		zap.String("data_dir", appCfg.DataDir),
		zap.Int("admins", len(appCfg.AdminIDs)))
	fmt.Println(`cardkeeper ready — type "help" for commands`)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ticker := time.NewTicker(janitorInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if n := engine.ExpireIdle(); n > 0 {
					logger.Info("idle sessions expired", zap.Int("count", n))
				}
			}
		}
	})

	g.Go(func() error {
		if err := console.Run(ctx, os.Stdin); err != nil {
			return err
		}
		// EOF on stdin ends the service.
		return errShutdown
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) || errors.Is(err, errShutdown) {
		logger.Info("service stopped")
		return nil
	}
	return err
}

// errShutdown unwinds the errgroup on a clean console exit.
var errShutdown = errors.New("shutdown")
