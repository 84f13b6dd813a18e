package types

// Store defines the interface for the persistent card catalog. Callers
// attach to a backend, perform card operations, and detach when done.
//
// Implementations serialize every mutation: at most one in-flight write to
// the persisted file at any time, with the duplicate-review check held
// under the same lock as the append.
type Store interface {
	// Attach connects the store to its data directory described by config.
	// Creates the directory if it does not exist. A missing or corrupt
	// store file yields an empty store, not an error. Returns
	// ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls
	// succeed. After Detach, operations return ErrStoreDetached.
	Detach() error

	// AddCard validates the category, sanitizes title and description,
	// assigns a fresh id, persists, snapshots a backup, and returns the id.
	// Ids are monotonic and never reused after deletion.
	AddCard(category, title, description, mediaRef string) (int, error)

	// Card returns the card with the given id, or ErrNotFound.
	Card(id int) (*Card, error)

	// Cards returns (id, title) pairs for every card in the category, in
	// insertion order. A read failure degrades to an empty result.
	Cards(category string) ([]CardSummary, error)

	// AllCards returns every card in the store in insertion order.
	AllCards() ([]*Card, error)

	// UpdateTitle replaces the card's title after re-sanitizing it.
	UpdateTitle(id int, title string) error

	// UpdateDescription replaces the card's description after
	// re-sanitizing and formatting it.
	UpdateDescription(id int, description string) error

	// UpdateMedia replaces the card's media reference.
	UpdateMedia(id int, mediaRef string) error

	// DeleteCard snapshots the store, then removes the card permanently.
	DeleteCard(id int) error

	// AddReview appends a review, enforcing at most one review per
	// (card, user) pair. Returns ErrDuplicateReview on a repeat attempt.
	AddReview(id int, userID int64, rating int, comment string) error
}
