// This file owns backup snapshots and rotation for the flat-file store.
package yamlstore

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

const (
	backupPrefix = "cards_backup_"
	backupExt    = ".yaml"

	// backupTimestamp is sortable: lexicographic order by name equals
	// chronological order.
	backupTimestamp = "20060102_150405"
)

// snapshot copies the live store file into the backup directory with a
// timestamped name, then prunes old backups. Snapshot failures are logged
// and never fail the triggering operation.
func (b *Backend) snapshot() {
	if err := os.MkdirAll(b.backupDir, 0o755); err != nil {
		b.log.Error("cannot create backup directory", zap.Error(err))
		return
	}

	data, err := os.ReadFile(b.path)
	if err != nil {
		b.log.Error("cannot read store file for backup", zap.Error(err))
		return
	}

	name := fmt.Sprintf("%s%s%s", backupPrefix, b.now().UTC().Format(backupTimestamp), backupExt)
	dest := filepath.Join(b.backupDir, name)
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		b.log.Error("cannot write backup", zap.String("file", name), zap.Error(err))
		return
	}
	b.log.Info("store backup created", zap.String("file", name))

	b.pruneBackups()
}

// pruneBackups deletes all but the most recent MaxBackups snapshots,
// sorted descending by name. Deletion failures are logged and skipped.
func (b *Backend) pruneBackups() {
	entries, err := os.ReadDir(b.backupDir)
	if err != nil {
		b.log.Error("cannot list backup directory", zap.Error(err))
		return
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, backupPrefix) && strings.HasSuffix(name, backupExt) {
			names = append(names, name)
		}
	}

	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	for _, name := range names[min(len(names), b.config.MaxBackups):] {
		if err := os.Remove(filepath.Join(b.backupDir, name)); err != nil {
			b.log.Warn("cannot delete old backup", zap.String("file", name), zap.Error(err))
			continue
		}
		b.log.Info("old backup removed", zap.String("file", name))
	}
}
