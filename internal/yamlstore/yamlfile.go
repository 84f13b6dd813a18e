// This file provides YAML document read/write helpers with atomic
// persistence for the flat-file store.
package yamlstore

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/cardkeeper/pkg/types"
)

// document is the on-disk tree: a mapping of card id to record plus the
// monotonic id counter. The file stays diff-friendly and hand-editable.
type document struct {
	NextID int                 `yaml:"next_id"`
	Cards  map[int]*types.Card `yaml:"cards"`
}

// newDocument returns an empty store document.
func newDocument() *document {
	return &document{
		NextID: 1,
		Cards:  make(map[int]*types.Card),
	}
}

// readDocument reads and parses the store file. The caller decides how to
// handle errors; a missing or corrupt file degrades to an empty store at
// the backend level.
func readDocument(path string) (*document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	doc := newDocument()
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if doc.Cards == nil {
		doc.Cards = make(map[int]*types.Card)
	}

	// Hydrate ids from the map keys and repair the counter when a
	// hand-edited file left it behind the highest id in use.
	for id, card := range doc.Cards {
		card.ID = id
		if id >= doc.NextID {
			doc.NextID = id + 1
		}
	}

	return doc, nil
}

// writeDocument atomically writes the document using the temp-file, fsync,
// rename pattern. The live file is always either the prior consistent
// state or the new one, never a partial write.
func writeDocument(path string, doc *document) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".cards-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	enc := yaml.NewEncoder(tmp)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("encoding document: %w", err)
	}
	if err := enc.Close(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing encoder: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
