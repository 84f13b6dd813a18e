package bot

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/cardkeeper/internal/audit"
	"github.com/mesh-intelligence/cardkeeper/internal/i18n"
	"github.com/mesh-intelligence/cardkeeper/internal/ratelimit"
	"github.com/mesh-intelligence/cardkeeper/internal/sched"
	"github.com/mesh-intelligence/cardkeeper/internal/session"
	"github.com/mesh-intelligence/cardkeeper/pkg/types"
)

// Deps carries everything a Service needs.
type Deps struct {
	Store     types.Store
	Engine    *session.Engine
	Prefs     *i18n.Prefs
	Audit     *audit.Logger
	Sched     *sched.Scheduler
	Messenger Messenger
	Config    types.Config
	Log       *zap.Logger
}

// Service guards the store and the session engine with access control
// and rate limiting, and shapes store data into view models.
type Service struct {
	store     types.Store
	engine    *session.Engine
	prefs     *i18n.Prefs
	auditor   *audit.Logger
	sched     *sched.Scheduler
	messenger Messenger
	log       *zap.Logger

	// mu guards cfg, which can be swapped by a config reload while
	// requests are in flight.
	mu  sync.RWMutex
	cfg types.Config

	msgLimit    *ratelimit.Limiter
	reviewLimit *ratelimit.Limiter
}

// NewService wires the service from its dependencies.
func NewService(d Deps) *Service {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:       d.Store,
		engine:      d.Engine,
		prefs:       d.Prefs,
		auditor:     d.Audit,
		sched:       d.Sched,
		messenger:   d.Messenger,
		cfg:         d.Config,
		log:         log.Named("bot"),
		msgLimit:    ratelimit.New(d.Config.MessageWindow, d.Config.MessageMax),
		reviewLimit: ratelimit.New(d.Config.ReviewWindow, d.Config.ReviewMax),
	}
}

// ApplyConfig swaps in a reloaded configuration. Admin ids, paging, and
// limiter settings take effect on the next request; events already
// recorded by the limiters stay counted.
func (s *Service) ApplyConfig(cfg types.Config) {
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()

	s.msgLimit.Configure(cfg.MessageWindow, cfg.MessageMax)
	s.reviewLimit.Configure(cfg.ReviewWindow, cfg.ReviewMax)
	s.engine.ApplyConfig(cfg)
	s.log.Info("configuration applied", zap.Int("admins", len(cfg.AdminIDs)))
}

func (s *Service) config() types.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Locale returns the string table for the user's chosen language.
func (s *Service) Locale(userID int64) *i18n.Locale {
	return s.prefs.Locale(userID)
}

// SetLanguage records the user's language preference.
func (s *Service) SetLanguage(userID int64, code string) error {
	return s.prefs.Set(userID, code)
}

// AllowMessage is the anti-spam gate for unsolicited messages. Admins
// always pass. Every rejected event lands in the audit log.
func (s *Service) AllowMessage(userID int64) bool {
	if s.config().IsAdmin(userID) {
		return true
	}
	ok, _ := s.msgLimit.Allow(userID)
	if !ok {
		s.auditor.Security(audit.EventRateLimit, userID, "message_flood")
		s.log.Info("message rate limit hit", zap.Int64("user_id", userID))
	}
	return ok
}

// BeginReview opens the review workflow after the review-cadence gate.
// A user over the limit gets a RateLimitError carrying the wait time.
func (s *Service) BeginReview(userID int64, cardID int) error {
	ok, retryAfter := s.reviewLimit.Allow(userID)
	if !ok {
		s.auditor.Security(audit.EventRateLimit, userID,
			fmt.Sprintf("review_attempt | retry_after=%s", retryAfter))
		return &types.RateLimitError{RetryAfter: retryAfter}
	}
	return s.engine.StartReview(userID, cardID)
}

// CategoryPage returns one page of a category listing. Out-of-range
// pages are clamped rather than rejected.
func (s *Service) CategoryPage(category string, page int) (*CategoryPage, error) {
	summaries, err := s.store.Cards(category)
	if err != nil {
		return nil, err
	}

	perPage := s.config().CardsPerPage
	total := len(summaries)
	totalPages := (total + perPage - 1) / perPage

	if totalPages == 0 {
		return &CategoryPage{Category: category, Page: 1}, nil
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * perPage
	end := min(start+perPage, total)

	rows := make([]CategoryRow, 0, end-start)
	for _, c := range summaries[start:end] {
		rows = append(rows, CategoryRow{ID: c.ID, Title: c.Title})
	}

	return &CategoryPage{
		Category:   category,
		Page:       page,
		TotalPages: totalPages,
		TotalCards: total,
		Cards:      rows,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}, nil
}

// SendCategoryPage delivers a category listing page to the chat and
// returns the message reference for later page turns.
func (s *Service) SendCategoryPage(ctx context.Context, chatID, userID int64, category string, page int) (MessageRef, *CategoryPage, error) {
	p, err := s.CategoryPage(category, page)
	if err != nil {
		return MessageRef{}, nil, err
	}
	ref, err := s.messenger.Send(ctx, chatID, Content{Text: CategoryText(s.Locale(userID), p)})
	if err != nil {
		return MessageRef{}, nil, fmt.Errorf("sending category %s: %w", category, err)
	}
	return ref, p, nil
}

// TurnCategoryPage re-renders an already-delivered category listing at
// another page, editing the message in place instead of sending a new
// one.
func (s *Service) TurnCategoryPage(ctx context.Context, ref MessageRef, userID int64, category string, page int) (*CategoryPage, error) {
	p, err := s.CategoryPage(category, page)
	if err != nil {
		return nil, err
	}
	if err := s.messenger.Edit(ctx, ref, Content{Text: CategoryText(s.Locale(userID), p)}); err != nil {
		return nil, fmt.Errorf("editing category %s: %w", category, err)
	}
	return p, nil
}

// CardView loads a card shaped for display.
func (s *Service) CardView(cardID int) (*CardView, error) {
	card, err := s.store.Card(cardID)
	if err != nil {
		return nil, err
	}
	return &CardView{
		ID:            card.ID,
		Category:      card.Category,
		Title:         card.Title,
		Description:   card.Description,
		MediaRef:      card.MediaRef,
		AverageRating: types.AverageRating(card.Reviews),
		ReviewCount:   len(card.Reviews),
	}, nil
}

// ShowCard sends the card's media to the chat and schedules its
// deletion, so media does not linger in chat history. It returns the
// delivered message and the deletion job id.
func (s *Service) ShowCard(ctx context.Context, chatID, userID int64, cardID int) (MessageRef, string, error) {
	view, err := s.CardView(cardID)
	if err != nil {
		return MessageRef{}, "", err
	}

	ref, err := s.messenger.Send(ctx, chatID, Content{
		Text:     Caption(s.Locale(userID), view),
		MediaRef: view.MediaRef,
	})
	if err != nil {
		return MessageRef{}, "", fmt.Errorf("sending card %d: %w", cardID, err)
	}

	jobID := s.sched.After(s.config().AutoDeleteAfter, func() {
		if err := s.messenger.Delete(context.Background(), ref); err != nil {
			s.log.Debug("auto-delete failed",
				zap.Int("message_id", ref.MessageID), zap.Error(err))
			return
		}
		s.log.Info("message auto-deleted", zap.Int("message_id", ref.MessageID))
	})
	return ref, jobID, nil
}

// ReviewsSummary aggregates review stats across every category, in
// catalog order.
func (s *Service) ReviewsSummary() (*ReviewsSummary, error) {
	cards, err := s.store.AllCards()
	if err != nil {
		return nil, err
	}

	sum := &ReviewsSummary{}
	var totalRating int
	for _, card := range cards {
		if len(card.Reviews) == 0 {
			continue
		}
		sum.Rows = append(sum.Rows, ReviewRow{
			Title:   card.Title,
			Average: types.AverageRating(card.Reviews),
			Count:   len(card.Reviews),
		})
		sum.TotalReviews += len(card.Reviews)
		for _, r := range card.Reviews {
			totalRating += r.Rating
		}
	}
	if sum.TotalReviews > 0 {
		sum.OverallAvg = float64(totalRating) / float64(sum.TotalReviews)
	}
	return sum, nil
}

// BeginUpload opens the card upload workflow for an admin.
func (s *Service) BeginUpload(userID int64, category string) error {
	if err := s.requireAdmin(userID, "card_upload"); err != nil {
		return err
	}
	return s.engine.StartUpload(userID, category)
}

// BeginUpdateTitle opens the title update workflow for an admin.
func (s *Service) BeginUpdateTitle(userID int64, cardID int) error {
	if err := s.requireAdmin(userID, "title_update"); err != nil {
		return err
	}
	return s.engine.StartUpdateTitle(userID, cardID)
}

// BeginUpdateDescription opens the description update workflow for an
// admin.
func (s *Service) BeginUpdateDescription(userID int64, cardID int) error {
	if err := s.requireAdmin(userID, "description_update"); err != nil {
		return err
	}
	return s.engine.StartUpdateDescription(userID, cardID)
}

// BeginUpdateMedia opens the media update workflow for an admin.
func (s *Service) BeginUpdateMedia(userID int64, cardID int) error {
	if err := s.requireAdmin(userID, "media_update"); err != nil {
		return err
	}
	return s.engine.StartUpdateMedia(userID, cardID)
}

// DeleteCard removes a card on behalf of an admin and records the
// deletion.
func (s *Service) DeleteCard(userID int64, cardID int) error {
	if err := s.requireAdmin(userID, "card_delete"); err != nil {
		return err
	}

	card, err := s.store.Card(cardID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteCard(cardID); err != nil {
		return err
	}

	s.auditor.CardDelete(userID, cardID, card.Title)
	return nil
}

// Cancel abandons the user's workflow. Navigation away from a workflow
// always lands here.
func (s *Service) Cancel(userID int64) {
	s.engine.Clear(userID)
}

func (s *Service) requireAdmin(userID int64, op string) error {
	if s.config().IsAdmin(userID) {
		return nil
	}
	s.auditor.Security(audit.EventAccessDenied, userID, op)
	s.log.Warn("access denied",
		zap.Int64("user_id", userID), zap.String("op", op))
	return types.ErrAccessDenied
}
