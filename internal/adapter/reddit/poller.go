package reddit

import (
	"context"
	"log/slog"
	"time"

	"github.com/vbalak/kanjibot/internal/domain"
	"github.com/vbalak/kanjibot/pkg/ctxutil"
)

// maxAttempts bounds how many times a single mention is retried before
// the poller gives up. A given-up mention is still marked read so the
// next pass does not pick it up again.
const maxAttempts = 3

// MentionHandler produces the reply body for one mention. An empty body
// with a nil error means the mention needs no reply.
type MentionHandler interface {
	HandleMention(ctx context.Context, m domain.Mention) (string, error)
}

// inbox is the transport surface the poller drives. Implemented by Client.
type inbox interface {
	FetchUnread(ctx context.Context) ([]domain.Mention, error)
	Reply(ctx context.Context, fullname, text string) error
	MarkRead(ctx context.Context, fullname string) error
}

// Poller drains the unread inbox on a fixed interval and hands each
// mention to the handler. One failing mention never stops the loop.
type Poller struct {
	log      *slog.Logger
	client   inbox
	handler  MentionHandler
	interval time.Duration
}

// NewPoller creates a Poller.
func NewPoller(logger *slog.Logger, client inbox, handler MentionHandler, interval time.Duration) *Poller {
	return &Poller{
		log:      logger.With("component", "poller"),
		client:   client,
		handler:  handler,
		interval: interval,
	}
}

// Run polls until the context is cancelled. A fetch failure is logged
// and retried on the next tick rather than terminating the loop.
func (p *Poller) Run(ctx context.Context) error {
	p.log.InfoContext(ctx, "poller started", slog.Duration("interval", p.interval))

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		p.poll(ctx)

		select {
		case <-ctx.Done():
			p.log.InfoContext(ctx, "poller stopped")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	mentions, err := p.client.FetchUnread(ctx)
	if err != nil {
		p.log.WarnContext(ctx, "fetch unread failed", slog.String("error", err.Error()))
		return
	}

	for _, m := range mentions {
		if ctx.Err() != nil {
			return
		}
		p.process(ctx, m)
	}
}

// process retries one mention up to maxAttempts. The reply is posted at
// most once; after it is out, only the mark-read step is retried. An
// exhausted mention is marked read anyway so the next pass does not
// repeat it.
func (p *Poller) process(ctx context.Context, m domain.Mention) {
	ctx = ctxutil.WithCorrelationID(ctx)

	replied := false
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := p.handleOnce(ctx, m, &replied)
		if err == nil {
			return
		}

		p.log.WarnContext(ctx, "mention attempt failed",
			slog.String("fullname", m.Fullname),
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()),
		)

		if ctx.Err() != nil {
			return
		}
	}

	p.log.ErrorContext(ctx, "giving up on mention", slog.String("fullname", m.Fullname))

	if err := p.client.MarkRead(ctx, m.Fullname); err != nil {
		p.log.ErrorContext(ctx, "mark read after giving up failed",
			slog.String("fullname", m.Fullname),
			slog.String("error", err.Error()),
		)
	}
}

// handleOnce runs one attempt. The replied flag survives across
// attempts so a retry never posts the same comment twice.
func (p *Poller) handleOnce(ctx context.Context, m domain.Mention, replied *bool) error {
	if !*replied {
		body, err := p.handler.HandleMention(ctx, m)
		if err != nil {
			return err
		}

		if body != "" {
			if err := p.client.Reply(ctx, m.Fullname, body); err != nil {
				return err
			}
		}
		*replied = true
	}

	return p.client.MarkRead(ctx, m.Fullname)
}
