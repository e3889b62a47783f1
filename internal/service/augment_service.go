package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pawconnect/pawsyncd/internal/ai"
	"github.com/pawconnect/pawsyncd/internal/common"
	"github.com/pawconnect/pawsyncd/internal/domain"
	"github.com/pawconnect/pawsyncd/internal/feed"
)

// Canned fallbacks: augmentation is best-effort and must never surface a
// hard failure to the user.
const (
	msgNoReplies       = "No replies to summarize."
	msgNothingToDo     = "Nothing to summarize."
	msgSummaryFailed   = "Summary unavailable. Please try again later."
	msgDisabled        = "AI is currently disabled."
	msgEnhanceEmpty    = "Post content cannot be empty for enhancement."
	msgEnhanceFailed   = "Could not enhance post at this time. Please try again later."
	defaultTitle       = "Suggested Title"
	titleEnhanceFailed = "Enhancement Failed"
	titleEnhanceEmpty  = "Error"
)

// Tolerant extraction of the generator's labeled output. The format is not
// contractually guaranteed, so missing labels fall back to the raw text.
var (
	titleRe        = regexp.MustCompile(`(?i)Title:\s*(.*)`)
	improvedPostRe = regexp.MustCompile(`(?is)Improved Post:\s*(.*)`)
)

// AugmentService produces ephemeral AI enrichments of feed content. It
// reads the feed store but never writes to it.
type AugmentService interface {
	SummarizeReplies(ctx context.Context, postID string) (string, error)
	SummarizePost(ctx context.Context, content string, category domain.Category) string
	EnhancePost(ctx context.Context, content string, category domain.Category) domain.Enhancement
}

type augmentService struct {
	gen   ai.Generator
	store *feed.Store
	log   zerolog.Logger
}

// NewAugmentService creates a new AugmentService.
func NewAugmentService(gen ai.Generator, store *feed.Store, log zerolog.Logger) AugmentService {
	return &augmentService{gen: gen, store: store, log: log}
}

// SummarizeReplies batches all comment bodies of one post into a single
// summary. A post with no comments short-circuits without calling the
// generator. Only an unknown post id is a real error.
func (s *augmentService) SummarizeReplies(ctx context.Context, postID string) (string, error) {
	post, ok := s.store.Get(postID)
	if !ok {
		return "", common.ErrPostNotFound
	}
	if len(post.Comments) == 0 {
		return msgNoReplies, nil
	}

	var b strings.Builder
	b.WriteString("Summarize these community replies into 3-5 simple bullet points:\n\n")
	for _, c := range post.Comments {
		fmt.Fprintf(&b, "- %s\n", c.Content)
	}

	return s.generate(ctx, "summarize_replies", b.String(), msgSummaryFailed), nil
}

// SummarizePost summarizes a single post's content. Blank content
// short-circuits with a canned message.
func (s *augmentService) SummarizePost(ctx context.Context, content string, category domain.Category) string {
	if strings.TrimSpace(content) == "" {
		return msgNothingToDo
	}

	var b strings.Builder
	b.WriteString("Summarize this post in simple bullet points")
	if category != "" {
		fmt.Fprintf(&b, " (category: %s)", category)
	}
	fmt.Fprintf(&b, ":\n%s", content)

	return s.generate(ctx, "summarize_post", b.String(), msgSummaryFailed)
}

// EnhancePost rewrites a post to be clearer and friendlier, returning a
// suggested title alongside. The generator is asked for a strict labeled
// format but the response is parsed tolerantly.
func (s *augmentService) EnhancePost(ctx context.Context, content string, category domain.Category) domain.Enhancement {
	if strings.TrimSpace(content) == "" {
		return domain.Enhancement{Title: titleEnhanceEmpty, ImprovedPost: msgEnhanceEmpty}
	}

	categoryLine := "None provided"
	if category != "" {
		categoryLine = string(category)
	}

	prompt := fmt.Sprintf(`You are an AI assistant inside a pet-owner community app.
Help the pet owner improve their community post so it is clear, friendly,
and easy to understand for other pet parents.

INPUT:
1. The user's raw post text: %q
2. Optional category: %s

RULES:
- Rewrite the post in a warm, supportive tone
- Fix grammar and clarity without changing meaning
- Keep it short and readable
- Suggest ONE clear and engaging title
- Do NOT add medical advice or facts the user didn't mention

OUTPUT FORMAT (STRICT):
Title:
<suggested title>

Improved Post:
<improved post text>
`, content, categoryLine)

	start := time.Now()
	raw, err := s.gen.Generate(ctx, prompt)
	augmentDuration.WithLabelValues("enhance_post").Observe(time.Since(start).Seconds())
	if err != nil {
		if err == ai.ErrDisabled {
			return domain.Enhancement{Title: msgDisabled, ImprovedPost: content}
		}
		s.log.Warn().Err(err).Msg("post enhancement failed")
		return domain.Enhancement{Title: titleEnhanceFailed, ImprovedPost: msgEnhanceFailed}
	}

	return parseEnhancement(raw)
}

// generate runs one prompt and downgrades every failure to fallback.
func (s *augmentService) generate(ctx context.Context, kind, prompt, fallback string) string {
	start := time.Now()
	text, err := s.gen.Generate(ctx, prompt)
	augmentDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	if err != nil {
		if err == ai.ErrDisabled {
			return msgDisabled
		}
		s.log.Warn().Err(err).Str("kind", kind).Msg("augmentation failed")
		return fallback
	}
	if strings.TrimSpace(text) == "" {
		return fallback
	}
	return text
}

// parseEnhancement extracts the labeled title and body. A missing Title
// label falls back to a generic one; a missing Improved Post label means
// the whole raw output is treated as the improved content.
func parseEnhancement(raw string) domain.Enhancement {
	title := defaultTitle
	if m := titleRe.FindStringSubmatch(raw); m != nil {
		if t := strings.TrimSpace(m[1]); t != "" {
			title = t
		}
	}

	improved := strings.TrimSpace(raw)
	if m := improvedPostRe.FindStringSubmatch(raw); m != nil {
		improved = strings.TrimSpace(m[1])
	}

	return domain.Enhancement{Title: title, ImprovedPost: improved}
}
