package bot

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/cardkeeper/internal/i18n"
	"github.com/mesh-intelligence/cardkeeper/internal/session"
	"github.com/mesh-intelligence/cardkeeper/pkg/types"
)

// WriterMessenger delivers messages by printing them. It stands in for a
// chat platform client during local operation and in tests.
type WriterMessenger struct {
	out    io.Writer
	nextID atomic.Int64
}

// NewWriterMessenger creates a Messenger printing to out.
func NewWriterMessenger(out io.Writer) *WriterMessenger {
	return &WriterMessenger{out: out}
}

var _ Messenger = (*WriterMessenger)(nil)

func (m *WriterMessenger) Send(_ context.Context, chatID int64, c Content) (MessageRef, error) {
	id := int(m.nextID.Add(1))
	if c.MediaRef != "" {
		fmt.Fprintf(m.out, "[chat %d] #%d [media %s] %s\n", chatID, id, c.MediaRef, c.Text)
	} else {
		fmt.Fprintf(m.out, "[chat %d] #%d %s\n", chatID, id, c.Text)
	}
	return MessageRef{ChatID: chatID, MessageID: id}, nil
}

func (m *WriterMessenger) Edit(_ context.Context, ref MessageRef, c Content) error {
	fmt.Fprintf(m.out, "[chat %d] #%d (edited) %s\n", ref.ChatID, ref.MessageID, c.Text)
	return nil
}

func (m *WriterMessenger) Delete(_ context.Context, ref MessageRef) error {
	fmt.Fprintf(m.out, "[chat %d] #%d deleted\n", ref.ChatID, ref.MessageID)
	return nil
}

// Console is a line-oriented front end over the Service. Each command
// names the acting user first, so one console session can play several
// users, which is how the chat flows are exercised without a platform
// connection.
type Console struct {
	svc *Service
	out io.Writer
	log *zap.Logger

	// Last delivered category listing; next/prev page it in place by
	// editing the message rather than sending a new one.
	lastCat     string
	lastCatPage int
	lastCatRef  MessageRef
	hasListing  bool
}

// NewConsole creates a Console writing responses to out.
func NewConsole(svc *Service, out io.Writer, log *zap.Logger) *Console {
	if log == nil {
		log = zap.NewNop()
	}
	return &Console{svc: svc, out: out, log: log.Named("console")}
}

// Run reads commands from in until EOF or context cancellation.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- sc.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			reply := c.Handle(ctx, line)
			if reply == "" {
				continue
			}
			fmt.Fprintln(c.out, reply)
		}
	}
}

const consoleHelp = `commands:
  lang <user> <code>             set language (en, it)
  cat <category> [page]          list a category page
  next / prev                    page the last listing in place
  card <user> <card>             show a card (media auto-deletes)
  reviews                        catalog-wide review summary
  review <user> <card>           start a review
  rate <user> <1-5>              pick a rating
  skip <user>                    save review without comment
  upload <user> <category>       start a card upload (admin)
  settitle <user> <card>         start a title update (admin)
  setdesc <user> <card>          start a description update (admin)
  setmedia <user> <card>         start a media update (admin)
  delete <user> <card>           delete a card (admin)
  text <user> <text...>          send text to the active workflow
  media <user> <ref> <name> <bytes>  send media to the active workflow
  cancel <user>                  abandon the active workflow
  help                           this text`

// Handle executes one command line and returns the response text.
func (c *Console) Handle(ctx context.Context, line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		return consoleHelp

	case "lang":
		userID, ok := c.userArg(args)
		if !ok || len(args) < 2 {
			return consoleHelp
		}
		if err := c.svc.SetLanguage(userID, args[1]); err != nil {
			return fmt.Sprintf("⚠️ %v", err)
		}
		return c.svc.Locale(userID).MsgLanguageChanged

	case "cat":
		if len(args) < 1 {
			return consoleHelp
		}
		page := 1
		if len(args) > 1 {
			page, _ = strconv.Atoi(args[1])
		}
		ref, p, err := c.svc.SendCategoryPage(ctx, 0, 0, args[0], page)
		if err != nil {
			return c.errText(i18n.English, 0, err)
		}
		c.lastCat, c.lastCatPage, c.lastCatRef, c.hasListing = p.Category, p.Page, ref, true
		return ""

	case "next", "prev":
		if !c.hasListing {
			return consoleHelp
		}
		page := c.lastCatPage + 1
		if cmd == "prev" {
			page = c.lastCatPage - 1
		}
		p, err := c.svc.TurnCategoryPage(ctx, c.lastCatRef, 0, c.lastCat, page)
		if err != nil {
			return c.errText(i18n.English, 0, err)
		}
		c.lastCatPage = p.Page
		return ""

	case "card":
		userID, ok := c.userArg(args)
		if !ok || len(args) < 2 {
			return consoleHelp
		}
		cardID, _ := strconv.Atoi(args[1])
		if !c.svc.AllowMessage(userID) {
			return c.svc.Locale(userID).WarnTooManyRequests
		}
		if _, _, err := c.svc.ShowCard(ctx, userID, userID, cardID); err != nil {
			return c.errText(c.svc.Locale(userID), userID, err)
		}
		return ""

	case "reviews":
		sum, err := c.svc.ReviewsSummary()
		if err != nil {
			return fmt.Sprintf("⚠️ %v", err)
		}
		return ReviewsText(i18n.English, sum)

	case "review":
		return c.startWorkflow(args, func(userID int64, cardID int) error {
			return c.svc.BeginReview(userID, cardID)
		}, func(l *i18n.Locale) string { return "⭐ 1-5?" })

	case "rate":
		userID, ok := c.userArg(args)
		if !ok || len(args) < 2 {
			return consoleHelp
		}
		rating, _ := strconv.Atoi(args[1])
		l := c.svc.Locale(userID)
		out, err := c.svc.engine.ChooseRating(userID, rating)
		if err != nil {
			return c.errText(l, userID, err)
		}
		return c.outcomeText(l, out)

	case "skip":
		userID, ok := c.userArg(args)
		if !ok {
			return consoleHelp
		}
		l := c.svc.Locale(userID)
		out, err := c.svc.engine.SkipComment(userID)
		if err != nil {
			return c.errText(l, userID, err)
		}
		return c.outcomeText(l, out)

	case "upload":
		userID, ok := c.userArg(args)
		if !ok || len(args) < 2 {
			return consoleHelp
		}
		l := c.svc.Locale(userID)
		if err := c.svc.BeginUpload(userID, args[1]); err != nil {
			return c.errText(l, userID, err)
		}
		return fmt.Sprintf(l.MsgWriteTitle, args[1], c.svc.config().MaxTitleLen)

	case "settitle":
		return c.startWorkflow(args, c.svc.BeginUpdateTitle,
			func(l *i18n.Locale) string { return "📝" })

	case "setdesc":
		return c.startWorkflow(args, c.svc.BeginUpdateDescription,
			func(l *i18n.Locale) string { return "📝" })

	case "setmedia":
		return c.startWorkflow(args, c.svc.BeginUpdateMedia,
			func(l *i18n.Locale) string { return "🎥" })

	case "delete":
		userID, ok := c.userArg(args)
		if !ok || len(args) < 2 {
			return consoleHelp
		}
		cardID, _ := strconv.Atoi(args[1])
		l := c.svc.Locale(userID)
		if err := c.svc.DeleteCard(userID, cardID); err != nil {
			return c.errText(l, userID, err)
		}
		return l.MsgCardDeleted

	case "text":
		userID, ok := c.userArg(args)
		if !ok || len(args) < 2 {
			return consoleHelp
		}
		l := c.svc.Locale(userID)
		if !c.svc.AllowMessage(userID) {
			return l.WarnTooManyRequests
		}
		out, err := c.svc.engine.HandleText(userID, strings.Join(args[1:], " "))
		if err != nil {
			return c.errText(l, userID, err)
		}
		return c.outcomeText(l, out)

	case "media":
		userID, ok := c.userArg(args)
		if !ok || len(args) < 4 {
			return consoleHelp
		}
		size, _ := strconv.ParseInt(args[3], 10, 64)
		l := c.svc.Locale(userID)
		if !c.svc.AllowMessage(userID) {
			return l.WarnTooManyRequests
		}
		out, err := c.svc.engine.HandleMedia(userID, session.Media{
			Ref: args[1], Filename: args[2], Size: size,
		})
		if err != nil {
			return c.errText(l, userID, err)
		}
		return c.outcomeText(l, out)

	case "cancel":
		userID, ok := c.userArg(args)
		if !ok {
			return consoleHelp
		}
		c.svc.Cancel(userID)
		return "❌"

	default:
		return consoleHelp
	}
}

func (c *Console) userArg(args []string) (int64, bool) {
	if len(args) == 0 {
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// startWorkflow handles the "<cmd> <user> <card>" family.
func (c *Console) startWorkflow(args []string, begin func(int64, int) error, prompt func(*i18n.Locale) string) string {
	userID, ok := c.userArg(args)
	if !ok || len(args) < 2 {
		return consoleHelp
	}
	cardID, _ := strconv.Atoi(args[1])
	l := c.svc.Locale(userID)
	if err := begin(userID, cardID); err != nil {
		return c.errText(l, userID, err)
	}
	return prompt(l)
}

// outcomeText maps an accepted workflow event to the next prompt or the
// final confirmation.
func (c *Console) outcomeText(l *i18n.Locale, out *session.Outcome) string {
	if out.Done {
		switch out.Kind {
		case session.KindUpload:
			return l.MsgCardPublished
		case session.KindReview:
			return l.MsgReviewSaved
		default:
			return l.MsgCardUpdated
		}
	}
	switch out.Step {
	case session.StepSendMedia:
		return "🎥"
	case session.StepWriteDescription:
		return fmt.Sprintf(l.MsgVideoOK, c.svc.config().MaxDescriptionLen)
	case session.StepWriteComment:
		return "💬"
	default:
		return "…"
	}
}

// errText maps service errors to localized user-facing warnings.
func (c *Console) errText(l *i18n.Locale, userID int64, err error) string {
	var rle *types.RateLimitError
	switch {
	case errors.As(err, &rle):
		minutes := int(rle.RetryAfter/time.Minute) + 1
		return fmt.Sprintf(l.WarnReviewCooldown, minutes)
	case errors.Is(err, types.ErrAccessDenied):
		return l.WarnAccessDenied
	case errors.Is(err, types.ErrNotFound):
		return l.WarnCardNotFound
	case errors.Is(err, types.ErrInvalidCategory):
		return l.WarnInvalidCategory
	case errors.Is(err, types.ErrDuplicateReview):
		return l.WarnAlreadyRated
	case errors.Is(err, types.ErrSessionExpired):
		return l.WarnSessionExpired
	case errors.Is(err, types.ErrRateLimited):
		return l.WarnTooManyRequests
	case errors.Is(err, session.ErrWrongPayload):
		if _, step, ok := c.svc.engine.Active(userID); ok && step == session.StepSendMedia {
			return l.WarnVideoRequired
		}
		return l.WarnTextRequired
	case errors.Is(err, session.ErrNoSession):
		return "…"
	default:
		c.log.Warn("command failed", zap.Error(err))
		return l.WarnSaveError
	}
}
