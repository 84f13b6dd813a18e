// Config loading for the cardkeeper CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/cardkeeper/internal/bot"
	"github.com/mesh-intelligence/cardkeeper/internal/paths"
	"github.com/mesh-intelligence/cardkeeper/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	envPrefix = "CARDKEEPER"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# Cardkeeper configuration

# User ids allowed to run admin workflows (required)
admin_ids: []

# Card categories
categories: [yugioh, pokemon, magic, altro]

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Retained store snapshots
max_backups: 5

# Workflow idle timeout
session_timeout: 5m

# Media auto-delete delay
auto_delete_after: 60s

# Logging: debug, info, warn, error
log_level: info
`

// loadConfig reads config.yaml from the resolved config directory,
// layering CARDKEEPER_* environment variables and the shipped defaults
// under it. It creates the config directory and a default config.yaml on
// first run; a missing config.yaml is not an error.
func loadConfig(configDirFlag, dataDirFlag string) (*viper.Viper, types.Config, error) {
	configDir, err := paths.ResolveConfigDir(configDirFlag)
	if err != nil {
		return nil, types.Config{}, fmt.Errorf("resolve config dir: %w", err)
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, types.Config{}, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, types.Config{}, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	setDefaults(v, types.DefaultConfig())
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, types.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, types.Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	dataDir, err := paths.ResolveDataDir(dataDirFlag, v.GetString("data_dir"))
	if err != nil {
		return nil, types.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}
	cfg.DataDir = dataDir

	if err := cfg.Validate(); err != nil {
		return nil, types.Config{}, err
	}
	return v, cfg, nil
}

// reloadDynamicConfig pushes the dynamic subset of an edited config.yaml
// into a running service: admin ids, rate limits, workflow limits, and
// paging. The store, data dir, and logger keep their startup settings
// until a restart; an edit that no longer validates is rejected
// wholesale and the last good configuration stays in force.
func reloadDynamicConfig(v *viper.Viper, base types.Config, svc *bot.Service, log *zap.Logger) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Warn("config change ignored", zap.Error(err))
		return
	}
	cfg.DataDir = base.DataDir
	cfg.LogLevel = base.LogLevel

	if err := cfg.Validate(); err != nil {
		log.Warn("config change rejected", zap.Error(err))
		return
	}
	svc.ApplyConfig(cfg)
}

// setDefaults registers every config key so viper can layer file and
// environment values over the shipped defaults.
func setDefaults(v *viper.Viper, d types.Config) {
	v.SetDefault("categories", d.Categories)
	v.SetDefault("admin_ids", d.AdminIDs)
	v.SetDefault("max_backups", d.MaxBackups)
	v.SetDefault("max_title_len", d.MaxTitleLen)
	v.SetDefault("max_description_len", d.MaxDescriptionLen)
	v.SetDefault("max_media_bytes", d.MaxMediaBytes)
	v.SetDefault("session_timeout", d.SessionTimeout)
	v.SetDefault("message_window", d.MessageWindow)
	v.SetDefault("message_max", d.MessageMax)
	v.SetDefault("review_window", d.ReviewWindow)
	v.SetDefault("review_max", d.ReviewMax)
	v.SetDefault("auto_delete_after", d.AutoDeleteAfter)
	v.SetDefault("cards_per_page", d.CardsPerPage)
	v.SetDefault("default_locale", d.DefaultLocale)
	v.SetDefault("log_level", d.LogLevel)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does
// not exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
