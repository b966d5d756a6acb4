// Package reply composes the response to a single mention: it finds the
// summoning line, tokenizes it, renders every token and joins the
// sections into one reply body.
package reply

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vbalak/kanjibot/internal/domain"
	"github.com/vbalak/kanjibot/internal/render"
	"github.com/vbalak/kanjibot/internal/tokenizer"
	"github.com/vbalak/kanjibot/pkg/ctxutil"
)

type renderer interface {
	RenderKanji(ctx context.Context, character string, mode render.Mode) (string, error)
	RenderWord(ctx context.Context, text string) (string, error)
}

// Service builds reply bodies for inbound mentions. It holds no state
// across calls; each mention is processed fully before the next.
type Service struct {
	log      *slog.Logger
	renderer renderer
	oracle   tokenizer.WordOracle
	account  string // reddit account name, without the u/ prefix
	footer   string
}

// NewService creates the reply service.
func NewService(logger *slog.Logger, r renderer, oracle tokenizer.WordOracle, account, footer string) *Service {
	return &Service{
		log:      logger.With("service", "reply"),
		renderer: r,
		oracle:   oracle,
		account:  account,
		footer:   footer,
	}
}

// HandleMention builds the reply body for a mention, or "" when no line
// of the message both summons the bot and yields tokens. Lookup misses
// become "couldn't find" sections; only store failures surface as
// errors, for the caller to log and retry.
func (s *Service) HandleMention(ctx context.Context, m domain.Mention) (string, error) {
	log := s.log.With(
		slog.String("correlation_id", ctxutil.CorrelationIDFromCtx(ctx)),
		slog.String("author", m.Author),
	)
	if m.Subreddit != nil {
		log = log.With(slog.String("subreddit", *m.Subreddit))
	}
	log.InfoContext(ctx, "processing mention")

	summon := "u/" + s.account
	for _, line := range strings.Split(m.Body, "\n") {
		if !strings.Contains(line, summon) {
			continue
		}

		tokens := tokenizer.Parse(ctx, line, s.oracle)
		if tokens.Empty() {
			continue
		}

		body, err := s.buildReply(ctx, tokens)
		if err != nil {
			return "", err
		}

		log.InfoContext(ctx, "reply built",
			slog.Int("kanji_tokens", len(tokens.Kanji)),
			slog.Int("word_tokens", len(tokens.Words)),
		)
		return body, nil
	}

	log.InfoContext(ctx, "no tokens found")
	return "", nil
}

func (s *Service) buildReply(ctx context.Context, tokens domain.Tokens) (string, error) {
	mode := render.Expanded
	if len(tokens.Kanji) > 1 {
		mode = render.Compact
	}

	sections := make([]string, 0, len(tokens.Kanji)+len(tokens.Words))
	for _, ch := range tokens.Kanji {
		section, err := s.renderer.RenderKanji(ctx, ch, mode)
		if err != nil {
			return "", fmt.Errorf("render kanji %q: %w", ch, err)
		}
		sections = append(sections, section)
	}
	for _, w := range tokens.Words {
		section, err := s.renderer.RenderWord(ctx, w)
		if err != nil {
			return "", fmt.Errorf("render word %q: %w", w, err)
		}
		sections = append(sections, section)
	}

	return strings.Join(sections, render.SectionDivider) + render.SectionDivider + s.footer, nil
}
