package types

import (
	"errors"
	"fmt"
	"time"
)

// Store operation errors. These are expected outcomes, recovered locally by
// every caller and surfaced as user-facing guidance.
var (
	ErrNotFound        = errors.New("card not found")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidInput    = errors.New("invalid input")
	ErrDuplicateReview = errors.New("user has already reviewed this card")
	ErrSessionExpired  = errors.New("session expired")
	ErrRateLimited     = errors.New("rate limited")
	ErrAccessDenied    = errors.New("access denied")
)

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)

// RateLimitError wraps ErrRateLimited with the time until the limiter
// window frees a slot, for "try again in N minutes" messaging.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
}

// Unwrap makes errors.Is(err, ErrRateLimited) hold for RateLimitError.
func (e *RateLimitError) Unwrap() error { return ErrRateLimited }

// PersistenceError wraps an I/O or serialization failure on a store write.
// The caller must not consider the mutation committed.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
