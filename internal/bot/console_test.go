package bot

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/cardkeeper/pkg/types"
)

type consoleFixture struct {
	*fixture
	console *Console
	chat    *bytes.Buffer
}

func newConsoleFixture(t *testing.T, mutate func(*types.Config)) *consoleFixture {
	t.Helper()

	chat := &bytes.Buffer{}
	f := newFixtureWithMessenger(t, mutate, NewWriterMessenger(chat))
	return &consoleFixture{
		fixture: f,
		console: NewConsole(f.svc, &bytes.Buffer{}, nil),
		chat:    chat,
	}
}

func (f *consoleFixture) run(t *testing.T, line string) string {
	t.Helper()
	return f.console.Handle(context.Background(), line)
}

func TestConsoleUploadFlow(t *testing.T) {
	f := newConsoleFixture(t, nil)

	reply := f.run(t, fmt.Sprintf("upload %d pokemon", adminID))
	assert.Contains(t, reply, "pokemon")

	f.run(t, fmt.Sprintf("text %d charizard holo", adminID))
	f.run(t, fmt.Sprintf("media %d file-1 clip.mp4 2048", adminID))
	reply = f.run(t, fmt.Sprintf("text %d near mint, 50 eur", adminID))
	assert.Equal(t, "✅ Card published successfully!", reply)

	page, err := f.svc.CategoryPage("pokemon", 1)
	require.NoError(t, err)
	require.Len(t, page.Cards, 1)
	assert.Equal(t, "Charizard Holo", page.Cards[0].Title)
}

func TestConsoleUploadDeniedForUser(t *testing.T) {
	f := newConsoleFixture(t, nil)

	reply := f.run(t, "upload 5 pokemon")
	assert.Equal(t, "⛔️ Access denied", reply)
}

func TestConsoleReviewFlow(t *testing.T) {
	f := newConsoleFixture(t, nil)
	ids := f.addCards(t, "magic", 1)

	f.run(t, fmt.Sprintf("review 5 %d", ids[0]))
	f.run(t, "rate 5 4")
	reply := f.run(t, "text 5 great seller")
	assert.Equal(t, "✅ Review saved! Thank you for your feedback. ⭐", reply)

	reply = f.run(t, fmt.Sprintf("review 5 %d", ids[0]))
	assert.Contains(t, reply, "already left a review")
}

func TestConsoleLocalizedReplies(t *testing.T) {
	f := newConsoleFixture(t, nil)

	reply := f.run(t, "lang 5 it")
	assert.Equal(t, "✅ Lingua impostata su Italiano", reply)

	reply = f.run(t, "upload 5 pokemon")
	assert.Equal(t, "⛔️ Accesso negato", reply)

	reply = f.run(t, "card 5 99")
	assert.Equal(t, "Carta non trovata.", reply)
}

func TestConsoleCategoryListing(t *testing.T) {
	f := newConsoleFixture(t, nil)
	f.addCards(t, "yugioh", 2)

	reply := f.run(t, "cat yugioh")
	assert.Empty(t, reply)
	assert.Contains(t, f.chat.String(), "yugioh")
	assert.Contains(t, f.chat.String(), "Card 01")
	assert.Contains(t, f.chat.String(), "Card 02")

	f.run(t, "cat pokemon")
	assert.Contains(t, f.chat.String(), "No cards available")
}

func TestConsolePageTurnEditsListing(t *testing.T) {
	f := newConsoleFixture(t, nil)
	f.addCards(t, "yugioh", 10)

	f.run(t, "cat yugioh")
	require.Contains(t, f.chat.String(), "1/2")

	reply := f.run(t, "next")
	assert.Empty(t, reply)
	assert.Contains(t, f.chat.String(), "(edited)")
	assert.Contains(t, f.chat.String(), "2/2")
	assert.Contains(t, f.chat.String(), "Card 09")

	f.run(t, "prev")
	assert.Contains(t, f.chat.String(), "1/2")

	// Without a listing there is nothing to page.
	g := newConsoleFixture(t, nil)
	assert.Contains(t, g.run(t, "next"), "commands:")
}

func TestConsoleCardAutoDeletes(t *testing.T) {
	f := newConsoleFixture(t, func(cfg *types.Config) {
		cfg.AutoDeleteAfter = 10 * time.Millisecond
	})
	ids := f.addCards(t, "altro", 1)

	reply := f.run(t, fmt.Sprintf("card 5 %d", ids[0]))
	assert.Empty(t, reply)
	assert.Contains(t, f.chat.String(), "[media media]")

	assert.Eventually(t, func() bool {
		return strings.Contains(f.chat.String(), "deleted")
	}, 2*time.Second, 5*time.Millisecond)
}

func TestConsoleWrongPayloadHints(t *testing.T) {
	f := newConsoleFixture(t, nil)

	f.run(t, fmt.Sprintf("upload %d magic", adminID))

	// Media during the title step.
	reply := f.run(t, fmt.Sprintf("media %d file-1 clip.mp4 10", adminID))
	assert.Contains(t, reply, "don't send files")

	// Text during the media step.
	f.run(t, fmt.Sprintf("text %d black lotus", adminID))
	reply = f.run(t, fmt.Sprintf("text %d oops", adminID))
	assert.Contains(t, reply, "send a video")
}

func TestConsoleCancel(t *testing.T) {
	f := newConsoleFixture(t, nil)

	f.run(t, fmt.Sprintf("upload %d magic", adminID))
	f.run(t, fmt.Sprintf("cancel %d", adminID))

	_, _, active := f.svc.engine.Active(adminID)
	assert.False(t, active)
}

func TestConsoleHelpOnGarbage(t *testing.T) {
	f := newConsoleFixture(t, nil)

	assert.Contains(t, f.run(t, "frobnicate"), "commands:")
	assert.Contains(t, f.run(t, "upload"), "commands:")
	assert.Empty(t, f.run(t, "   "))
}

func TestConsoleRunStopsOnEOF(t *testing.T) {
	f := newConsoleFixture(t, nil)

	in := strings.NewReader("help\ncat yugioh\n")
	err := f.console.Run(context.Background(), in)
	assert.NoError(t, err)
}

func TestConsoleRunStopsOnCancel(t *testing.T) {
	f := newConsoleFixture(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := f.console.Run(ctx, blockingReader{})
	assert.ErrorIs(t, err, context.Canceled)
}

// blockingReader never returns data, standing in for an idle stdin.
type blockingReader struct{}

func (blockingReader) Read(p []byte) (int, error) {
	time.Sleep(10 * time.Millisecond)
	return 0, nil
}
