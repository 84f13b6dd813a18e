// Package yamlstore implements the flat-file YAML backend for the
// cardkeeper catalog. The store file is the source of truth; every
// mutation rewrites it atomically and triggers backup rotation.
package yamlstore

import (
	"errors"
	"os"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/cardkeeper/internal/paths"
	"github.com/mesh-intelligence/cardkeeper/internal/sanitize"
	"github.com/mesh-intelligence/cardkeeper/pkg/types"
)

// maxCommentLen bounds review comments.
const maxCommentLen = 200

// Compile-time interface check: Backend must implement Store.
var _ types.Store = (*Backend)(nil)

// Backend implements the Store interface over a single YAML file. A
// read-write mutex serializes every {read-modify, write, backup} sequence;
// at most one in-flight write exists at any time. Readers see either the
// pre- or post-write state, never a torn one.
type Backend struct {
	mu        sync.RWMutex
	attached  bool
	config    types.Config
	path      string
	backupDir string
	doc       *document
	log       *zap.Logger

	// now is replaced in tests to control backup names and timestamps.
	now func() time.Time
}

// NewBackend creates a detached backend. Call Attach with a Config before
// use.
func NewBackend(log *zap.Logger) *Backend {
	if log == nil {
		log = zap.NewNop()
	}
	return &Backend{
		log: log.Named("yamlstore"),
		now: time.Now,
	}
}

// Attach loads the store file from the configured data directory, creating
// the directory if needed. A missing or unreadable file yields an empty
// store: availability is favored over strictness on the read path.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return &types.PersistenceError{Op: "attach", Err: err}
	}

	b.config = config
	b.path = paths.StoreFile(dataDir)
	b.backupDir = paths.BackupsDir(dataDir)

	doc, err := readDocument(b.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			b.log.Warn("store file unreadable, starting empty", zap.Error(err))
		}
		doc = newDocument()
	}
	b.doc = doc
	b.attached = true

	b.log.Info("store attached",
		zap.String("path", b.path),
		zap.Int("cards", len(doc.Cards)))
	return nil
}

// Detach releases the in-memory document. Idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.attached = false
	b.doc = nil
	return nil
}

// AddCard validates the category, sanitizes the text fields, assigns a
// fresh id, persists, and snapshots a backup.
func (b *Backend) AddCard(category, title, description, mediaRef string) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return 0, types.ErrStoreDetached
	}
	if !b.config.ValidCategory(category) {
		return 0, types.ErrInvalidCategory
	}

	title = sanitize.Clean(sanitize.TitleCase(title), b.config.MaxTitleLen, false)
	description = sanitize.FormatDescription(description, b.config.MaxDescriptionLen)
	if title == "" {
		return 0, types.ErrInvalidInput
	}

	id := b.doc.NextID
	b.doc.NextID++
	b.doc.Cards[id] = &types.Card{
		ID:          id,
		Category:    category,
		Title:       title,
		MediaRef:    mediaRef,
		Description: description,
		Reviews:     []types.Review{},
	}

	if err := b.persist("add card"); err != nil {
		// Roll the insert back so memory matches the file.
		delete(b.doc.Cards, id)
		b.doc.NextID = id
		return 0, err
	}
	b.snapshot()

	b.log.Info("card added",
		zap.Int("id", id),
		zap.String("category", category),
		zap.String("title", title))
	return id, nil
}

// Card returns a copy of the card with the given id.
func (b *Backend) Card(id int) (*types.Card, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	card, ok := b.doc.Cards[id]
	if !ok {
		return nil, types.ErrNotFound
	}
	return copyCard(card), nil
}

// Cards returns (id, title) pairs for the category in insertion order.
func (b *Backend) Cards(category string) ([]types.CardSummary, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	var out []types.CardSummary
	for _, card := range b.sortedLocked() {
		if card.Category == category {
			out = append(out, types.CardSummary{ID: card.ID, Title: card.Title})
		}
	}
	return out, nil
}

// AllCards returns copies of every card in insertion order.
func (b *Backend) AllCards() ([]*types.Card, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	var out []*types.Card
	for _, card := range b.sortedLocked() {
		out = append(out, copyCard(card))
	}
	return out, nil
}

// UpdateTitle replaces the title of an existing card after re-sanitizing.
func (b *Backend) UpdateTitle(id int, title string) error {
	return b.mutateCard(id, "update title", func(card *types.Card) error {
		clean := sanitize.Clean(sanitize.TitleCase(title), b.config.MaxTitleLen, false)
		if clean == "" {
			return types.ErrInvalidInput
		}
		card.Title = clean
		return nil
	})
}

// UpdateDescription replaces the description of an existing card after
// re-sanitizing and formatting.
func (b *Backend) UpdateDescription(id int, description string) error {
	return b.mutateCard(id, "update description", func(card *types.Card) error {
		clean := sanitize.FormatDescription(description, b.config.MaxDescriptionLen)
		if clean == "" {
			return types.ErrInvalidInput
		}
		card.Description = clean
		return nil
	})
}

// UpdateMedia replaces the media reference of an existing card.
func (b *Backend) UpdateMedia(id int, mediaRef string) error {
	return b.mutateCard(id, "update media", func(card *types.Card) error {
		if mediaRef == "" {
			return types.ErrInvalidInput
		}
		card.MediaRef = mediaRef
		return nil
	})
}

// DeleteCard snapshots the store before removing the record, so the
// pre-delete state is always recoverable. The id is never reused.
func (b *Backend) DeleteCard(id int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrStoreDetached
	}
	card, ok := b.doc.Cards[id]
	if !ok {
		return types.ErrNotFound
	}

	b.snapshot()
	delete(b.doc.Cards, id)

	if err := b.persist("delete card"); err != nil {
		b.doc.Cards[id] = card
		return err
	}

	b.log.Info("card deleted", zap.Int("id", id), zap.String("title", card.Title))
	return nil
}

// AddReview appends a review to a card. The duplicate check and the append
// run under the same held lock, closing the check-then-act window between
// two near-simultaneous reviews from one user.
func (b *Backend) AddReview(id int, userID int64, rating int, comment string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrStoreDetached
	}
	card, ok := b.doc.Cards[id]
	if !ok {
		return types.ErrNotFound
	}
	if rating < 1 || rating > 5 {
		return types.ErrInvalidInput
	}
	if card.HasReviewBy(userID) {
		return types.ErrDuplicateReview
	}

	card.Reviews = append(card.Reviews, types.Review{
		UserID:    userID,
		Rating:    rating,
		Comment:   sanitize.Clean(comment, maxCommentLen, false),
		CreatedAt: b.now().UTC(),
	})

	if err := b.persist("add review"); err != nil {
		card.Reviews = card.Reviews[:len(card.Reviews)-1]
		return err
	}

	b.log.Info("review added",
		zap.Int("card_id", id),
		zap.Int64("user_id", userID),
		zap.Int("rating", rating))
	return nil
}

// mutateCard applies fn to one card under the write lock, persists, and
// snapshots a backup. The mutation is undone when persisting fails.
func (b *Backend) mutateCard(id int, op string, fn func(*types.Card) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrStoreDetached
	}
	card, ok := b.doc.Cards[id]
	if !ok {
		return types.ErrNotFound
	}

	before := *card
	if err := fn(card); err != nil {
		*card = before
		return err
	}

	if err := b.persist(op); err != nil {
		*card = before
		return err
	}
	b.snapshot()

	b.log.Info("card updated", zap.String("op", op), zap.Int("id", id))
	return nil
}

// persist writes the document atomically. Callers hold the write lock.
func (b *Backend) persist(op string) error {
	if err := writeDocument(b.path, b.doc); err != nil {
		b.log.Error("store write failed", zap.String("op", op), zap.Error(err))
		return &types.PersistenceError{Op: op, Err: err}
	}
	return nil
}

// sortedLocked returns the cards ordered by id, which equals insertion
// order because ids are monotonic. Callers hold at least the read lock.
func (b *Backend) sortedLocked() []*types.Card {
	ids := make([]int, 0, len(b.doc.Cards))
	for id := range b.doc.Cards {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]*types.Card, 0, len(ids))
	for _, id := range ids {
		out = append(out, b.doc.Cards[id])
	}
	return out
}

// copyCard returns a deep copy so callers never alias the live document.
func copyCard(card *types.Card) *types.Card {
	cp := *card
	cp.Reviews = make([]types.Review, len(card.Reviews))
	copy(cp.Reviews, card.Reviews)
	return &cp
}
