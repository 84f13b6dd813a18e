package audit

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureWriter is an in-memory WriteCloser for assertions.
type captureWriter struct {
	bytes.Buffer
	failWrites bool
}

func (w *captureWriter) Write(p []byte) (int, error) {
	if w.failWrites {
		return 0, errors.New("disk full")
	}
	return w.Buffer.Write(p)
}

func (w *captureWriter) Close() error { return nil }

func newTestLogger() (*Logger, *captureWriter) {
	w := &captureWriter{}
	a := NewWithWriter(w, nil)
	a.now = func() time.Time {
		return time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	}
	return a, w
}

func TestCardAddLineFormat(t *testing.T) {
	a, w := newTestLogger()

	a.CardAdd(42, 7, "Dark Magician", "yugioh")

	line := strings.TrimRight(w.String(), "\n")
	assert.Equal(t,
		"2026-03-01 12:30:00 | user_id=42 | action=CARD_ADD | details=card_id=7 | title=Dark Magician | category=yugioh",
		line)
}

func TestSecurityEvent(t *testing.T) {
	a, w := newTestLogger()

	a.Security(EventDuplicateReview, 100, "card_id=3")

	assert.Contains(t, w.String(), "action=SECURITY_DUPLICATE_REVIEW")
	assert.Contains(t, w.String(), "user_id=100")
}

func TestTitleUpdateClipsLongTitles(t *testing.T) {
	a, w := newTestLogger()

	long := strings.Repeat("x", 120)
	a.TitleUpdate(1, 2, long, "short")

	require.Contains(t, w.String(), "old_title="+strings.Repeat("x", detailLimit)+" |")
	assert.NotContains(t, w.String(), strings.Repeat("x", detailLimit+1))
}

func TestWriteFailureIsSwallowed(t *testing.T) {
	w := &captureWriter{failWrites: true}
	a := NewWithWriter(w, nil)

	// Must not panic or propagate.
	a.CardDelete(1, 2, "gone")
	a.Security(EventRateLimit, 3, "")
}

func TestEachActionWritesOneLine(t *testing.T) {
	a, w := newTestLogger()

	a.CardAdd(1, 1, "T", "magic")
	a.CardDelete(1, 1, "T")
	a.MediaUpdate(1, 1, "T")
	a.TitleUpdate(1, 1, "T", "U")
	a.DescriptionUpdate(1, 1, "U")

	lines := strings.Split(strings.TrimRight(w.String(), "\n"), "\n")
	assert.Len(t, lines, 5)
	for _, line := range lines {
		assert.Contains(t, line, " | user_id=1 | action=")
	}
}
