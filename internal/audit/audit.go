// Package audit records privileged mutations and security events to an
// append-only, size-rotated log file. Logging failures never propagate to
// the triggering operation.
package audit

import (
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Action names recorded in the log.
const (
	ActionCardAdd           = "CARD_ADD"
	ActionCardDelete        = "CARD_DELETE"
	ActionMediaUpdate       = "MEDIA_UPDATE"
	ActionTitleUpdate       = "TITLE_UPDATE"
	ActionDescriptionUpdate = "DESCRIPTION_UPDATE"
)

// Security event types.
const (
	EventRateLimit       = "RATE_LIMIT"
	EventDuplicateReview = "DUPLICATE_REVIEW"
	EventAccessDenied    = "ACCESS_DENIED"
)

// detailLimit truncates free-text detail values so one runaway title
// cannot bloat the log.
const detailLimit = 50

// Logger writes one pipe-delimited line per privileged action:
//
//	timestamp | user_id=... | action=... | details=...
type Logger struct {
	mu  sync.Mutex
	out io.WriteCloser
	log *zap.Logger

	// now is replaced in tests.
	now func() time.Time
}

// New creates a Logger writing to path, rotated by size with a bounded
// number of retained backups.
func New(path string, maxSizeMB, maxBackups int, log *zap.Logger) *Logger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Logger{
		out: &lumberjack.Logger{
			Filename:   path,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
		},
		log: log.Named("audit"),
		now: time.Now,
	}
}

// NewWithWriter creates a Logger over an arbitrary writer. Used in tests.
func NewWithWriter(w io.WriteCloser, log *zap.Logger) *Logger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Logger{out: w, log: log.Named("audit"), now: time.Now}
}

// Close flushes and closes the underlying log file.
func (a *Logger) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.out.Close()
}

// record writes one audit line. Failures are swallowed and reported only
// through the general error channel.
func (a *Logger) record(userID int64, action, details string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	line := fmt.Sprintf("%s | user_id=%d | action=%s | details=%s\n",
		a.now().UTC().Format("2006-01-02 15:04:05"), userID, action, details)
	if _, err := io.WriteString(a.out, line); err != nil {
		a.log.Error("audit write failed", zap.Error(err))
	}
}

// CardAdd records a card creation.
func (a *Logger) CardAdd(userID int64, cardID int, title, category string) {
	a.record(userID, ActionCardAdd,
		fmt.Sprintf("card_id=%d | title=%s | category=%s", cardID, clip(title), category))
}

// CardDelete records a card deletion.
func (a *Logger) CardDelete(userID int64, cardID int, title string) {
	a.record(userID, ActionCardDelete,
		fmt.Sprintf("card_id=%d | title=%s", cardID, clip(title)))
}

// MediaUpdate records a media reference replacement.
func (a *Logger) MediaUpdate(userID int64, cardID int, title string) {
	a.record(userID, ActionMediaUpdate,
		fmt.Sprintf("card_id=%d | title=%s", cardID, clip(title)))
}

// TitleUpdate records a title change.
func (a *Logger) TitleUpdate(userID int64, cardID int, oldTitle, newTitle string) {
	a.record(userID, ActionTitleUpdate,
		fmt.Sprintf("card_id=%d | old_title=%s | new_title=%s", cardID, clip(oldTitle), clip(newTitle)))
}

// DescriptionUpdate records a description change.
func (a *Logger) DescriptionUpdate(userID int64, cardID int, title string) {
	a.record(userID, ActionDescriptionUpdate,
		fmt.Sprintf("card_id=%d | title=%s", cardID, clip(title)))
}

// Security records a security-related event such as a rate-limit trip, a
// duplicate-review attempt, or an access-denied attempt.
func (a *Logger) Security(event string, userID int64, details string) {
	a.record(userID, "SECURITY_"+event, details)
}

// clip bounds free-text values to detailLimit runes.
func clip(s string) string {
	runes := []rune(s)
	if len(runes) <= detailLimit {
		return s
	}
	return string(runes[:detailLimit])
}
