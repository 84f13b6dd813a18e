package yamlstore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/cardkeeper/internal/paths"
	"github.com/mesh-intelligence/cardkeeper/pkg/types"
)

func TestWriteThenReadDocument(t *testing.T) {
	path := paths.StoreFile(t.TempDir())

	doc := newDocument()
	doc.NextID = 3
	doc.Cards[1] = &types.Card{ID: 1, Category: "yugioh", Title: "Dark Magician", MediaRef: "m1"}
	doc.Cards[2] = &types.Card{ID: 2, Category: "magic", Title: "Black Lotus", MediaRef: "m2"}

	require.NoError(t, writeDocument(path, doc))

	got, err := readDocument(path)
	require.NoError(t, err)
	assert.Equal(t, 3, got.NextID)
	require.Len(t, got.Cards, 2)
	assert.Equal(t, "Dark Magician", got.Cards[1].Title)
	assert.Equal(t, 2, got.Cards[2].ID)
}

func TestWriteDocumentLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := paths.StoreFile(dir)

	require.NoError(t, writeDocument(path, newDocument()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "cards.yaml", entries[0].Name())
}

func TestWriteDocumentIsHumanReadable(t *testing.T) {
	path := paths.StoreFile(t.TempDir())

	doc := newDocument()
	doc.NextID = 2
	doc.Cards[1] = &types.Card{ID: 1, Category: "pokemon", Title: "Charizard", Description: "Holo"}
	require.NoError(t, writeDocument(path, doc))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	assert.True(t, strings.Contains(text, "cards:"))
	assert.True(t, strings.Contains(text, "next_id: 2"))
	assert.True(t, strings.Contains(text, "title: Charizard"))
}

func TestReadDocumentMissingFile(t *testing.T) {
	_, err := readDocument(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestReadDocumentRepairsCounter(t *testing.T) {
	path := paths.StoreFile(t.TempDir())

	// Hand-edited file: cards present, next_id missing.
	raw := "cards:\n  5:\n    category: yugioh\n    title: Exodia\n    media_ref: m\n    description: D\n    reviews: []\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	doc, err := readDocument(path)
	require.NoError(t, err)
	assert.Equal(t, 6, doc.NextID)
	assert.Equal(t, 5, doc.Cards[5].ID)
}
