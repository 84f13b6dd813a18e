// Package main provides the cardkeeper CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/cardkeeper/internal/audit"
	"github.com/mesh-intelligence/cardkeeper/internal/logging"
	"github.com/mesh-intelligence/cardkeeper/internal/paths"
	"github.com/mesh-intelligence/cardkeeper/internal/yamlstore"
	"github.com/mesh-intelligence/cardkeeper/pkg/types"
)

// operatorID marks audit entries produced by the CLI rather than a chat
// user.
const operatorID int64 = 0

var (
	// configDirFlag and dataDirFlag are set by the persistent flags.
	configDirFlag string
	dataDirFlag   string

	// Initialized by initApp before any command runs.
	appCfg  types.Config
	appVp   *viper.Viper
	store   types.Store
	logger  *zap.Logger
	auditor *audit.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cardkeeper",
	Short: "Cardkeeper manages a collectible card catalog",
	Long: `Cardkeeper is a catalog service for a collectible card shop. Cards
live in a YAML flat file with rotated backups; customers browse by
category and leave rated reviews, admins manage the catalog through
guided workflows.`,
	PersistentPreRunE: initApp,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeApp()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "", "config directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "data directory (default: from config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(cardAddCmd)
	rootCmd.AddCommand(cardListCmd)
	rootCmd.AddCommand(cardShowCmd)
	rootCmd.AddCommand(cardDeleteCmd)
	rootCmd.AddCommand(reviewAddCmd)
	rootCmd.AddCommand(backupsCmd)
}

// initApp loads config, builds the logger, and attaches the store.
func initApp(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	vp, cfg, err := loadConfig(configDirFlag, dataDirFlag)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	appVp, appCfg = vp, cfg

	// serve keeps a rotated log file under the data dir; one-shot
	// commands log to stderr only.
	if cmd.Name() == "serve" {
		logger, err = logging.New(paths.AppLogFile(cfg.DataDir), cfg.LogLevel)
	} else {
		logger, err = logging.NewConsole(cfg.LogLevel)
	}
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	auditor = audit.New(paths.AuditLogFile(cfg.DataDir), 10, cfg.MaxBackups, logger)

	backend := yamlstore.NewBackend(logger)
	if err := backend.Attach(cfg); err != nil {
		return fmt.Errorf("attach store: %w", err)
	}
	store = backend
	return nil
}

// closeApp detaches the store and releases resources.
func closeApp() error {
	if auditor != nil {
		if err := auditor.Close(); err != nil && logger != nil {
			logger.Warn("closing audit log", zap.Error(err))
		}
	}
	if logger != nil {
		_ = logger.Sync()
	}
	if store != nil {
		return store.Detach()
	}
	return nil
}
