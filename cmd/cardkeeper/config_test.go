package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/cardkeeper/internal/audit"
	"github.com/mesh-intelligence/cardkeeper/internal/bot"
	"github.com/mesh-intelligence/cardkeeper/internal/i18n"
	"github.com/mesh-intelligence/cardkeeper/internal/sched"
	"github.com/mesh-intelligence/cardkeeper/internal/session"
	"github.com/mesh-intelligence/cardkeeper/internal/yamlstore"
	"github.com/mesh-intelligence/cardkeeper/pkg/types"
)

func TestLoadConfigFirstRunWritesDefaultFile(t *testing.T) {
	configDir := t.TempDir()

	// The shipped default has no admins, so the first run fails
	// validation but leaves a config.yaml to edit.
	_, _, err := loadConfig(configDir, t.TempDir())
	assert.ErrorIs(t, err, types.ErrNoAdmins)

	raw, readErr := os.ReadFile(filepath.Join(configDir, configFileExt))
	require.NoError(t, readErr)
	assert.Contains(t, string(raw), "admin_ids")
}

func writeConfig(t *testing.T, configDir, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(configDir, configFileExt), []byte(body), 0o644))
}

func TestLoadConfigAppliesFileValues(t *testing.T) {
	configDir := t.TempDir()
	writeConfig(t, configDir, "admin_ids: [42]\nsession_timeout: 2m\ncategories: [pokemon]\n")

	_, cfg, err := loadConfig(configDir, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, []int64{42}, cfg.AdminIDs)
	assert.Equal(t, 2*time.Minute, cfg.SessionTimeout)
	assert.Equal(t, []string{"pokemon"}, cfg.Categories)

	// Unset keys keep the shipped defaults.
	assert.Equal(t, 8, cfg.CardsPerPage)
	assert.Equal(t, 5, cfg.MaxBackups)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	configDir := t.TempDir()
	writeConfig(t, configDir, "admin_ids: [42]\n")
	t.Setenv("CARDKEEPER_LOG_LEVEL", "debug")

	_, cfg, err := loadConfig(configDir, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigDataDirPrecedence(t *testing.T) {
	configDir := t.TempDir()
	fileDataDir := t.TempDir()
	flagDataDir := t.TempDir()
	writeConfig(t, configDir, "admin_ids: [42]\ndata_dir: "+fileDataDir+"\n")

	// Flag wins over the file value.
	_, cfg, err := loadConfig(configDir, flagDataDir)
	require.NoError(t, err)
	assert.Equal(t, flagDataDir, cfg.DataDir)

	// Without the flag, the file value applies.
	_, cfg, err = loadConfig(configDir, "")
	require.NoError(t, err)
	assert.Equal(t, fileDataDir, cfg.DataDir)
}

type nopSink struct{ io.Writer }

func (nopSink) Close() error { return nil }

func TestReloadDynamicConfigAdmitsNewAdmin(t *testing.T) {
	configDir := t.TempDir()
	writeConfig(t, configDir, "admin_ids: [1]\n")

	v, cfg, err := loadConfig(configDir, t.TempDir())
	require.NoError(t, err)

	store := yamlstore.NewBackend(nil)
	require.NoError(t, store.Attach(cfg))
	t.Cleanup(func() { _ = store.Detach() })

	scheduler := sched.New(nil)
	t.Cleanup(scheduler.Shutdown)

	auditor := audit.NewWithWriter(nopSink{io.Discard}, nil)
	svc := bot.NewService(bot.Deps{
		Store:     store,
		Engine:    session.NewEngine(store, auditor, cfg, nil),
		Prefs:     i18n.LoadPrefs(cfg.DataDir, nil),
		Audit:     auditor,
		Sched:     scheduler,
		Messenger: bot.NewWriterMessenger(io.Discard),
		Config:    cfg,
	})

	require.ErrorIs(t, svc.BeginUpload(2, "magic"), types.ErrAccessDenied)

	// The operator adds a second admin to config.yaml while serving.
	writeConfig(t, configDir, "admin_ids: [1, 2]\n")
	require.NoError(t, v.ReadInConfig())
	reloadDynamicConfig(v, cfg, svc, zap.NewNop())

	assert.NoError(t, svc.BeginUpload(2, "magic"))

	// An edit that no longer validates is rejected and the last good
	// settings stay in force.
	writeConfig(t, configDir, "admin_ids: []\n")
	require.NoError(t, v.ReadInConfig())
	reloadDynamicConfig(v, cfg, svc, zap.NewNop())

	assert.NoError(t, svc.BeginUpload(2, "magic"))
}

func TestLoadConfigRejectsBadLevel(t *testing.T) {
	configDir := t.TempDir()
	writeConfig(t, configDir, "admin_ids: [42]\nlog_level: loud\n")

	_, _, err := loadConfig(configDir, t.TempDir())
	assert.Error(t, err)
}
