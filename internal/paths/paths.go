// Package paths owns the on-disk geography of cardkeeper: where the
// config and data directories live, and the fixed layout inside the
// data directory.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// Environment overrides for the two directory roots.
const (
	EnvConfigDir = "CARDKEEPER_CONFIG_DIR"
	EnvDataDir   = "CARDKEEPER_DATA_DIR"
)

const (
	appDirName = "cardkeeper"

	// DefaultDataDirName is the CWD-relative data directory used when
	// nothing else selects one.
	DefaultDataDirName = ".cardkeeper-data"
)

// Names fixed inside the data directory. Everything worth backing up
// lives under one root: the card store and its snapshots, the logs, and
// the language preferences.
const (
	storeFileName    = "cards.yaml"
	backupsDirName   = "backups"
	auditLogFileName = "audit.log"
	appLogFileName   = "cardkeeper.log"
	prefsFileName    = "user_languages.json"
)

// StoreFile returns the live card store file inside dataDir.
func StoreFile(dataDir string) string {
	return filepath.Join(dataDir, storeFileName)
}

// BackupsDir returns the directory holding timestamped store snapshots.
func BackupsDir(dataDir string) string {
	return filepath.Join(dataDir, backupsDirName)
}

// AuditLogFile returns the privileged-action log file.
func AuditLogFile(dataDir string) string {
	return filepath.Join(dataDir, auditLogFileName)
}

// AppLogFile returns the rotated application log file.
func AppLogFile(dataDir string) string {
	return filepath.Join(dataDir, appLogFileName)
}

// PrefsFile returns the per-user language preference file.
func PrefsFile(dataDir string) string {
	return filepath.Join(dataDir, prefsFileName)
}

// ResolveConfigDir picks the config directory: the flag wins, then
// CARDKEEPER_CONFIG_DIR, then the platform default. Relative inputs
// come back absolute.
func ResolveConfigDir(flag string) (string, error) {
	for _, dir := range []string{flag, os.Getenv(EnvConfigDir)} {
		if dir != "" {
			return filepath.Abs(dir)
		}
	}
	return platformConfigDir()
}

// ResolveDataDir picks the data directory: the flag wins, then the
// config.yaml value, then CARDKEEPER_DATA_DIR, then
// $(CWD)/.cardkeeper-data.
func ResolveDataDir(flag, fromConfig string) (string, error) {
	for _, dir := range []string{flag, fromConfig, os.Getenv(EnvDataDir)} {
		if dir != "" {
			return filepath.Abs(dir)
		}
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

// platformConfigDir returns the per-user configuration directory. Linux
// follows XDG; macOS and Windows go through os.UserConfigDir, which
// yields ~/Library/Application Support and %APPDATA% respectively.
func platformConfigDir() (string, error) {
	if runtime.GOOS != "linux" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appDirName), nil
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appDirName), nil
}
