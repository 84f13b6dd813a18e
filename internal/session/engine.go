package session

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/cardkeeper/internal/audit"
	"github.com/mesh-intelligence/cardkeeper/internal/sanitize"
	"github.com/mesh-intelligence/cardkeeper/pkg/types"
)

// Outcome reports what an accepted event did to the workflow.
type Outcome struct {
	Kind Kind
	// Step is the next expected input; zero when the workflow finished.
	Step Step
	// Done is true when the terminal step committed to the store.
	Done bool
	// CardID is the affected card on terminal outcomes (the fresh id for
	// uploads).
	CardID int
}

// Engine owns every active session, keyed by user id. One workflow per
// user at a time: starting a new one implicitly abandons the prior one.
// Nothing is committed to the store until a workflow's terminal step, so
// discarding accumulated fields on timeout or cancellation needs no
// rollback.
type Engine struct {
	mu       sync.Mutex
	sessions map[int64]*Session

	store   types.Store
	auditor *audit.Logger
	cfg     types.Config
	log     *zap.Logger

	// now is replaced in tests.
	now func() time.Time
}

// NewEngine creates an Engine committing terminal steps to store and
// recording privileged mutations through auditor.
func NewEngine(store types.Store, auditor *audit.Logger, cfg types.Config, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		sessions: make(map[int64]*Session),
		store:    store,
		auditor:  auditor,
		cfg:      cfg,
		log:      log.Named("session"),
		now:      time.Now,
	}
}

// ApplyConfig swaps in a reloaded configuration. The idle timeout and
// the input limits apply from the next event on every session.
func (e *Engine) ApplyConfig(cfg types.Config) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cfg = cfg
}

func (e *Engine) config() types.Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// StartUpload begins the card upload workflow for an admin:
// write_title -> send_media -> write_description -> persisted.
func (e *Engine) StartUpload(userID int64, category string) error {
	if !e.config().ValidCategory(category) {
		return types.ErrInvalidCategory
	}
	e.start(userID, KindUpload, StepWriteTitle, map[string]string{
		FieldCategory: category,
	})
	return nil
}

// StartUpdateMedia begins the single-step media replacement workflow.
func (e *Engine) StartUpdateMedia(userID int64, cardID int) error {
	return e.startForCard(userID, KindUpdateMedia, StepSendMedia, cardID)
}

// StartUpdateTitle begins the single-step title replacement workflow.
func (e *Engine) StartUpdateTitle(userID int64, cardID int) error {
	return e.startForCard(userID, KindUpdateTitle, StepWriteTitle, cardID)
}

// StartUpdateDescription begins the single-step description replacement
// workflow.
func (e *Engine) StartUpdateDescription(userID int64, cardID int) error {
	return e.startForCard(userID, KindUpdateDescription, StepWriteDescription, cardID)
}

// StartReview begins the review workflow: choose_rating ->
// write_comment_or_skip -> persisted. A user who already reviewed the card
// is rejected up front with ErrDuplicateReview.
func (e *Engine) StartReview(userID int64, cardID int) error {
	card, err := e.store.Card(cardID)
	if err != nil {
		return err
	}
	if card.HasReviewBy(userID) {
		e.auditor.Security(audit.EventDuplicateReview, userID, fmt.Sprintf("card_id=%d", cardID))
		return types.ErrDuplicateReview
	}
	e.start(userID, KindReview, StepChooseRating, map[string]string{
		FieldCardID: strconv.Itoa(cardID),
	})
	return nil
}

// ChooseRating advances the review workflow past choose_rating.
func (e *Engine) ChooseRating(userID int64, rating int) (*Outcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.activeLocked(userID)
	if err != nil {
		return nil, err
	}
	if s.Kind != KindReview || s.Step != StepChooseRating {
		return nil, ErrWrongPayload
	}
	if rating < 1 || rating > 5 {
		return nil, types.ErrInvalidInput
	}

	s.Fields[FieldRating] = strconv.Itoa(rating)
	s.Step = StepWriteComment
	return &Outcome{Kind: KindReview, Step: StepWriteComment}, nil
}

// HandleText feeds a text payload to the user's workflow. Steps that
// expect media reject it with ErrWrongPayload and stay active.
func (e *Engine) HandleText(userID int64, text string) (*Outcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.activeLocked(userID)
	if err != nil {
		return nil, err
	}

	switch {
	case s.Kind == KindUpload && s.Step == StepWriteTitle:
		if err := validTitle(text, e.cfg.MaxTitleLen); err != nil {
			return nil, err
		}
		s.Fields[FieldTitle] = text
		s.Step = StepSendMedia
		return &Outcome{Kind: s.Kind, Step: StepSendMedia}, nil

	case s.Kind == KindUpload && s.Step == StepWriteDescription:
		if err := validDescription(text, e.cfg.MaxDescriptionLen); err != nil {
			return nil, err
		}
		return e.commitUploadLocked(s, text)

	case s.Kind == KindUpdateTitle && s.Step == StepWriteTitle:
		if err := validTitle(text, e.cfg.MaxTitleLen); err != nil {
			return nil, err
		}
		return e.commitUpdateTitleLocked(s, text)

	case s.Kind == KindUpdateDescription && s.Step == StepWriteDescription:
		if err := validDescription(text, e.cfg.MaxDescriptionLen); err != nil {
			return nil, err
		}
		return e.commitUpdateDescriptionLocked(s, text)

	case s.Kind == KindReview && s.Step == StepWriteComment:
		if len([]rune(text)) > 200 {
			return nil, types.ErrInvalidInput
		}
		return e.commitReviewLocked(s, text)

	default:
		return nil, ErrWrongPayload
	}
}

// HandleMedia feeds a media payload to the user's workflow. Only
// send_media steps accept it.
func (e *Engine) HandleMedia(userID int64, m Media) (*Outcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.activeLocked(userID)
	if err != nil {
		return nil, err
	}
	if s.Step != StepSendMedia {
		return nil, ErrWrongPayload
	}
	if e.cfg.MaxMediaBytes > 0 && m.Size > e.cfg.MaxMediaBytes {
		return nil, types.ErrInvalidInput
	}
	if !sanitize.ValidMediaFilename(m.Filename) {
		return nil, types.ErrInvalidInput
	}
	if m.Ref == "" {
		return nil, types.ErrInvalidInput
	}

	switch s.Kind {
	case KindUpload:
		s.Fields[FieldMediaRef] = m.Ref
		s.Step = StepWriteDescription
		return &Outcome{Kind: s.Kind, Step: StepWriteDescription}, nil

	case KindUpdateMedia:
		return e.commitUpdateMediaLocked(s, m.Ref)

	default:
		return nil, ErrWrongPayload
	}
}

// SkipComment commits the review without a comment.
func (e *Engine) SkipComment(userID int64) (*Outcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.activeLocked(userID)
	if err != nil {
		return nil, err
	}
	if s.Kind != KindReview || s.Step != StepWriteComment {
		return nil, ErrWrongPayload
	}
	return e.commitReviewLocked(s, "")
}

// Clear cancels the user's workflow, discarding accumulated fields.
// Called for any navigation event outside the workflow's expected inputs.
func (e *Engine) Clear(userID int64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if s, ok := e.sessions[userID]; ok {
		delete(e.sessions, userID)
		e.log.Info("session cleared",
			zap.Int64("user_id", userID),
			zap.Stringer("kind", s.Kind))
	}
}

// Active returns the user's current workflow kind and expected step.
func (e *Engine) Active(userID int64) (Kind, Step, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.sessions[userID]
	if !ok {
		return 0, 0, false
	}
	return s.Kind, s.Step, true
}

// ExpireIdle discards every session idle past the timeout and returns how
// many were dropped. Run periodically by the serve janitor.
func (e *Engine) ExpireIdle() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	var dropped int
	for userID, s := range e.sessions {
		if now.Sub(s.LastActive) > e.cfg.SessionTimeout {
			delete(e.sessions, userID)
			dropped++
			e.log.Info("session expired",
				zap.Int64("user_id", userID),
				zap.Stringer("kind", s.Kind))
		}
	}
	return dropped
}

// start installs a fresh session, overwriting any workflow in progress.
func (e *Engine) start(userID int64, kind Kind, step Step, fields map[string]string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.sessions[userID] = &Session{
		UserID:     userID,
		Kind:       kind,
		Step:       step,
		Fields:     fields,
		LastActive: e.now(),
	}
	e.log.Info("session started",
		zap.Int64("user_id", userID),
		zap.Stringer("kind", kind),
		zap.Stringer("step", step))
}

// startForCard verifies the card exists before installing a single-step
// update session.
func (e *Engine) startForCard(userID int64, kind Kind, step Step, cardID int) error {
	if _, err := e.store.Card(cardID); err != nil {
		return err
	}
	e.start(userID, kind, step, map[string]string{
		FieldCardID: strconv.Itoa(cardID),
	})
	return nil
}

// activeLocked returns the user's session after the timeout check. An
// expired session is discarded and the event rejected; otherwise
// last_active is refreshed.
func (e *Engine) activeLocked(userID int64) (*Session, error) {
	s, ok := e.sessions[userID]
	if !ok {
		return nil, ErrNoSession
	}

	now := e.now()
	if now.Sub(s.LastActive) > e.cfg.SessionTimeout {
		delete(e.sessions, userID)
		e.log.Info("session expired on event",
			zap.Int64("user_id", userID),
			zap.Stringer("kind", s.Kind))
		return nil, types.ErrSessionExpired
	}
	s.LastActive = now
	return s, nil
}

// commitUploadLocked runs the upload terminal step: persist the card,
// audit, clear the session. The session is cleared even when the store
// rejects the write, matching the workflow's start-over semantics.
func (e *Engine) commitUploadLocked(s *Session, description string) (*Outcome, error) {
	defer delete(e.sessions, s.UserID)

	id, err := e.store.AddCard(s.Fields[FieldCategory], s.Fields[FieldTitle], description, s.Fields[FieldMediaRef])
	if err != nil {
		return nil, err
	}

	e.auditor.CardAdd(s.UserID, id, s.Fields[FieldTitle], s.Fields[FieldCategory])
	e.log.Info("card published",
		zap.Int64("user_id", s.UserID),
		zap.Int("card_id", id))
	return &Outcome{Kind: KindUpload, Done: true, CardID: id}, nil
}

func (e *Engine) commitUpdateMediaLocked(s *Session, mediaRef string) (*Outcome, error) {
	cardID, _ := strconv.Atoi(s.Fields[FieldCardID])

	card, err := e.store.Card(cardID)
	if err != nil {
		delete(e.sessions, s.UserID)
		return nil, err
	}
	if err := e.store.UpdateMedia(cardID, mediaRef); err != nil {
		return nil, err
	}

	delete(e.sessions, s.UserID)
	e.auditor.MediaUpdate(s.UserID, cardID, card.Title)
	return &Outcome{Kind: KindUpdateMedia, Done: true, CardID: cardID}, nil
}

func (e *Engine) commitUpdateTitleLocked(s *Session, title string) (*Outcome, error) {
	cardID, _ := strconv.Atoi(s.Fields[FieldCardID])

	card, err := e.store.Card(cardID)
	if err != nil {
		delete(e.sessions, s.UserID)
		return nil, err
	}
	if err := e.store.UpdateTitle(cardID, title); err != nil {
		return nil, err
	}

	delete(e.sessions, s.UserID)
	e.auditor.TitleUpdate(s.UserID, cardID, card.Title, title)
	return &Outcome{Kind: KindUpdateTitle, Done: true, CardID: cardID}, nil
}

func (e *Engine) commitUpdateDescriptionLocked(s *Session, description string) (*Outcome, error) {
	cardID, _ := strconv.Atoi(s.Fields[FieldCardID])

	card, err := e.store.Card(cardID)
	if err != nil {
		delete(e.sessions, s.UserID)
		return nil, err
	}
	if err := e.store.UpdateDescription(cardID, description); err != nil {
		return nil, err
	}

	delete(e.sessions, s.UserID)
	e.auditor.DescriptionUpdate(s.UserID, cardID, card.Title)
	return &Outcome{Kind: KindUpdateDescription, Done: true, CardID: cardID}, nil
}

// commitReviewLocked runs the review terminal step. The duplicate check
// happens again inside the store, under the same lock as the append.
func (e *Engine) commitReviewLocked(s *Session, comment string) (*Outcome, error) {
	defer delete(e.sessions, s.UserID)

	cardID, _ := strconv.Atoi(s.Fields[FieldCardID])
	rating, _ := strconv.Atoi(s.Fields[FieldRating])

	if err := e.store.AddReview(cardID, s.UserID, rating, comment); err != nil {
		if errors.Is(err, types.ErrDuplicateReview) {
			e.auditor.Security(audit.EventDuplicateReview, s.UserID, fmt.Sprintf("card_id=%d", cardID))
		}
		return nil, err
	}

	e.log.Info("review saved",
		zap.Int64("user_id", s.UserID),
		zap.Int("card_id", cardID),
		zap.Int("rating", rating))
	return &Outcome{Kind: KindReview, Done: true, CardID: cardID}, nil
}

// validTitle rejects empty or over-long titles before the terminal step.
func validTitle(text string, maxLen int) error {
	n := len([]rune(text))
	if n == 0 || n > maxLen {
		return types.ErrInvalidInput
	}
	return nil
}

// validDescription rejects empty or over-long descriptions.
func validDescription(text string, maxLen int) error {
	n := len([]rune(text))
	if n == 0 || n > maxLen {
		return types.ErrInvalidInput
	}
	return nil
}
