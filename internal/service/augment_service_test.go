package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawconnect/pawsyncd/internal/ai"
	"github.com/pawconnect/pawsyncd/internal/common"
	"github.com/pawconnect/pawsyncd/internal/domain"
	"github.com/pawconnect/pawsyncd/internal/feed"
)

// fakeGenerator records prompts and replies with a fixed response.
type fakeGenerator struct {
	prompts []string
	reply   string
	err     error
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func storeWith(posts ...domain.Post) *feed.Store {
	s := feed.NewStore()
	s.Replace(posts, 1)
	return s
}

func TestSummarizeReplies_BatchesAllComments(t *testing.T) {
	gen := &fakeGenerator{reply: "- be patient\n- use treats"}
	store := storeWith(domain.Post{
		ID: "p-1",
		Comments: []domain.Comment{
			{Content: "Try shorter walks"},
			{Content: "Treats help a lot"},
		},
	})
	svc := NewAugmentService(gen, store, zerolog.Nop())

	summary, err := svc.SummarizeReplies(context.Background(), "p-1")

	require.NoError(t, err)
	assert.Equal(t, "- be patient\n- use treats", summary)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "- Try shorter walks")
	assert.Contains(t, gen.prompts[0], "- Treats help a lot")
}

func TestSummarizeReplies_NoComments_ShortCircuits(t *testing.T) {
	gen := &fakeGenerator{reply: "should never be used"}
	store := storeWith(domain.Post{ID: "p-1"})
	svc := NewAugmentService(gen, store, zerolog.Nop())

	summary, err := svc.SummarizeReplies(context.Background(), "p-1")

	require.NoError(t, err)
	assert.Equal(t, "No replies to summarize.", summary)
	assert.Empty(t, gen.prompts, "empty input must not reach the generator")
}

func TestSummarizeReplies_UnknownPost(t *testing.T) {
	svc := NewAugmentService(&fakeGenerator{}, feed.NewStore(), zerolog.Nop())

	_, err := svc.SummarizeReplies(context.Background(), "nope")

	assert.ErrorIs(t, err, common.ErrPostNotFound)
}

func TestSummarizePost_BlankContent_ShortCircuits(t *testing.T) {
	gen := &fakeGenerator{}
	svc := NewAugmentService(gen, feed.NewStore(), zerolog.Nop())

	got := svc.SummarizePost(context.Background(), "  \n ", domain.CategoryHealth)

	assert.Equal(t, "Nothing to summarize.", got)
	assert.Empty(t, gen.prompts)
}

func TestSummarizePost_FailureDowngradesToFallback(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("upstream 500")}
	svc := NewAugmentService(gen, feed.NewStore(), zerolog.Nop())

	got := svc.SummarizePost(context.Background(), "Milo refuses kibble", domain.CategoryHealth)

	assert.Equal(t, "Summary unavailable. Please try again later.", got)
}

func TestSummarizePost_DisabledBackend(t *testing.T) {
	gen := &fakeGenerator{err: ai.ErrDisabled}
	svc := NewAugmentService(gen, feed.NewStore(), zerolog.Nop())

	got := svc.SummarizePost(context.Background(), "Milo refuses kibble", "")

	assert.Equal(t, "AI is currently disabled.", got)
}

func TestEnhancePost_ParsesLabeledOutput(t *testing.T) {
	gen := &fakeGenerator{reply: "Title:\nHelp With Picky Eating\n\nImproved Post:\nMy pup Milo has been skipping meals lately. Any gentle tips?"}
	svc := NewAugmentService(gen, feed.NewStore(), zerolog.Nop())

	got := svc.EnhancePost(context.Background(), "milo not eating help", domain.CategoryHealth)

	assert.Equal(t, "Help With Picky Eating", got.Title)
	assert.Equal(t, "My pup Milo has been skipping meals lately. Any gentle tips?", got.ImprovedPost)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Health")
}

func TestEnhancePost_MissingLabels_FallsBackToRawOutput(t *testing.T) {
	gen := &fakeGenerator{reply: "Here is a nicer version of your post about Milo."}
	svc := NewAugmentService(gen, feed.NewStore(), zerolog.Nop())

	got := svc.EnhancePost(context.Background(), "milo not eating", "")

	assert.Equal(t, "Suggested Title", got.Title)
	assert.Equal(t, "Here is a nicer version of your post about Milo.", got.ImprovedPost)
}

func TestEnhancePost_BlankContent(t *testing.T) {
	gen := &fakeGenerator{}
	svc := NewAugmentService(gen, feed.NewStore(), zerolog.Nop())

	got := svc.EnhancePost(context.Background(), "", domain.CategoryUpdate)

	assert.Equal(t, "Error", got.Title)
	assert.Equal(t, "Post content cannot be empty for enhancement.", got.ImprovedPost)
	assert.Empty(t, gen.prompts)
}

func TestEnhancePost_FailureKeepsUserContentOutOfResult(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("timeout")}
	svc := NewAugmentService(gen, feed.NewStore(), zerolog.Nop())

	got := svc.EnhancePost(context.Background(), "original text", "")

	assert.Equal(t, "Enhancement Failed", got.Title)
	assert.Equal(t, "Could not enhance post at this time. Please try again later.", got.ImprovedPost)
}

func TestEnhancePost_DisabledKeepsOriginalText(t *testing.T) {
	gen := &fakeGenerator{err: ai.ErrDisabled}
	svc := NewAugmentService(gen, feed.NewStore(), zerolog.Nop())

	got := svc.EnhancePost(context.Background(), "original text", "")

	assert.Equal(t, "AI is currently disabled.", got.Title)
	assert.Equal(t, "original text", got.ImprovedPost)
}
