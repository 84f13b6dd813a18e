package yamlstore

import (
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backupNames lists the snapshot files currently in the backup directory.
func backupNames(t *testing.T, b *Backend) []string {
	t.Helper()
	entries, err := os.ReadDir(b.backupDir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), backupPrefix) {
			names = append(names, e.Name())
		}
	}
	return names
}

func TestBackupCreatedOnAdd(t *testing.T) {
	b := setupBackend(t)

	_, err := b.AddCard("yugioh", "Dark Magician", "D", "m")
	require.NoError(t, err)

	names := backupNames(t, b)
	require.Len(t, names, 1)
	assert.True(t, strings.HasSuffix(names[0], backupExt))
}

func TestBackupRotationBounded(t *testing.T) {
	b := setupBackend(t)
	b.config.MaxBackups = 3

	// Distinct timestamps so every mutation produces a distinct snapshot.
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	step := 0
	b.now = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Second)
	}

	for i := 0; i < 8; i++ {
		_, err := b.AddCard("yugioh", fmt.Sprintf("card %d", i), "D", "m")
		require.NoError(t, err)
	}

	names := backupNames(t, b)
	assert.Len(t, names, 3)
}

func TestBackupKeepsMostRecent(t *testing.T) {
	b := setupBackend(t)
	b.config.MaxBackups = 2

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	step := 0
	b.now = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Minute)
	}

	for i := 0; i < 4; i++ {
		_, err := b.AddCard("magic", fmt.Sprintf("card %d", i), "D", "m")
		require.NoError(t, err)
	}

	names := backupNames(t, b)
	require.Len(t, names, 2)
	// Lexicographic order equals chronological order for these names.
	assert.Contains(t, names, backupPrefix+"20260301_120300"+backupExt)
	assert.Contains(t, names, backupPrefix+"20260301_120400"+backupExt)
}

func TestDeleteSnapshotsBeforeRemoval(t *testing.T) {
	b := setupBackend(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	step := 0
	b.now = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Second)
	}

	id, err := b.AddCard("pokemon", "Charizard", "rare holo", "m")
	require.NoError(t, err)
	require.NoError(t, b.DeleteCard(id))

	// The newest snapshot was taken before the removal, so it still holds
	// the deleted card.
	names := backupNames(t, b)
	require.NotEmpty(t, names)
	newest := names[len(names)-1]

	doc, err := readDocument(b.backupDir + string(os.PathSeparator) + newest)
	require.NoError(t, err)
	assert.Contains(t, doc.Cards, id)
}

func TestSnapshotFailureIsNotFatal(t *testing.T) {
	b := setupBackend(t)

	// Make the backup directory path unusable by occupying it with a file.
	require.NoError(t, os.WriteFile(b.backupDir, []byte("not a dir"), 0o644))

	_, err := b.AddCard("yugioh", "Exodia", "D", "m")
	assert.NoError(t, err)
}
