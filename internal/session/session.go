// Package session implements per-user finite-state-machine sessions that
// drive the multi-step admin and user workflows, with idle timeout.
package session

import (
	"errors"
	"time"
)

// Kind identifies which workflow a session is running.
type Kind int

const (
	KindUpload Kind = iota + 1
	KindUpdateMedia
	KindUpdateTitle
	KindUpdateDescription
	KindReview
)

// String returns the workflow name for logs.
func (k Kind) String() string {
	switch k {
	case KindUpload:
		return "upload"
	case KindUpdateMedia:
		return "update_media"
	case KindUpdateTitle:
		return "update_title"
	case KindUpdateDescription:
		return "update_description"
	case KindReview:
		return "review"
	default:
		return "unknown"
	}
}

// Step identifies the input a workflow expects next.
type Step int

const (
	StepWriteTitle Step = iota + 1
	StepSendMedia
	StepWriteDescription
	StepChooseRating
	StepWriteComment
)

// String returns the step name for logs.
func (s Step) String() string {
	switch s {
	case StepWriteTitle:
		return "write_title"
	case StepSendMedia:
		return "send_media"
	case StepWriteDescription:
		return "write_description"
	case StepChooseRating:
		return "choose_rating"
	case StepWriteComment:
		return "write_comment"
	default:
		return "unknown"
	}
}

// Field names for the partially collected form data.
const (
	FieldCategory = "category"
	FieldCardID   = "card_id"
	FieldTitle    = "title"
	FieldMediaRef = "media_ref"
	FieldRating   = "rating"
)

// Session is the ephemeral per-user workflow state. Sessions are created
// on workflow entry and destroyed on completion, cancellation, or timeout;
// they are never persisted across restarts.
type Session struct {
	UserID     int64
	Kind       Kind
	Step       Step
	Fields     map[string]string
	LastActive time.Time
}

// Media is the payload of a media event at a send_media step.
type Media struct {
	Ref      string
	Filename string
	Size     int64
}

// ErrNoSession is returned when an event arrives for a user with no
// workflow in progress.
var ErrNoSession = errors.New("no active session")

// ErrWrongPayload is returned when the event type does not match what the
// current step expects; the session stays active so the user can retry.
var ErrWrongPayload = errors.New("payload does not match the expected step input")
