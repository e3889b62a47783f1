package service

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/pawconnect/pawsyncd/internal/common"
	"github.com/pawconnect/pawsyncd/internal/domain"
	"github.com/pawconnect/pawsyncd/internal/feed"
	"github.com/pawconnect/pawsyncd/internal/gateway"
	"github.com/pawconnect/pawsyncd/internal/identity"
	"github.com/pawconnect/pawsyncd/pkg/cache"
)

// FeedService coordinates feed mutations against the remote store. Every
// successful mutation is treated as an invalidation signal: the whole feed
// is refetched, normalized, and swapped into the store. There is no
// optimistic merge.
type FeedService interface {
	Refresh(ctx context.Context) error
	CreatePost(ctx context.Context, content string, category domain.Category) error
	LikePost(ctx context.Context, postID string) error
	AddComment(ctx context.Context, postID, text string) error
	Posts() []domain.Post
	Post(id string) (domain.Post, bool)
	WarmFromCache(ctx context.Context) bool
}

type feedService struct {
	gw    gateway.FeedGateway
	store *feed.Store
	cache cache.Service
	id    identity.Provider
	gen   atomic.Uint64
	now   func() time.Time
	log   zerolog.Logger
}

// NewFeedService creates a new FeedService. cache may be backed by a nil
// Redis client; snapshot persistence then degrades to a no-op.
func NewFeedService(gw gateway.FeedGateway, store *feed.Store, c cache.Service, id identity.Provider, log zerolog.Logger) FeedService {
	return &feedService{
		gw:    gw,
		store: store,
		cache: c,
		id:    id,
		now:   time.Now,
		log:   log,
	}
}

// Refresh runs a full fetchAll -> normalize -> replace cycle. The generation
// stamp is taken before the fetch starts, so when two refreshes overlap the
// one that started later wins regardless of completion order.
func (s *feedService) Refresh(ctx context.Context) error {
	gen := s.gen.Add(1)

	raw, err := s.gw.FetchAll(ctx)
	if err != nil {
		refreshTotal.WithLabelValues(resultFailure).Inc()
		s.log.Warn().Err(err).Uint64("generation", gen).Msg("feed refresh failed")
		return err
	}

	posts := feed.Normalize(raw, s.now)
	applied := s.store.Replace(posts, gen)
	refreshTotal.WithLabelValues(resultSuccess).Inc()

	if !applied {
		// A newer snapshot landed while this fetch was in flight.
		s.log.Debug().Uint64("generation", gen).Msg("stale refresh dropped")
		return nil
	}

	s.log.Info().Int("posts", len(posts)).Uint64("generation", gen).Msg("feed refreshed")

	if err := s.cache.SetSnapshot(ctx, posts); err != nil {
		// Snapshot persistence is comfort, not correctness.
		s.log.Warn().Err(err).Msg("snapshot cache write failed")
	}
	return nil
}

// CreatePost publishes a post and refreshes the feed on success. On failure
// the caller's compose state stays intact for a manual retry.
func (s *feedService) CreatePost(ctx context.Context, content string, category domain.Category) error {
	if err := s.requireIdentity(); err != nil {
		return err
	}
	if strings.TrimSpace(content) == "" {
		return common.ErrEmptyContent
	}
	if !category.Valid() {
		return common.ErrInvalidCategory
	}

	if err := s.gw.CreatePost(ctx, content, category); err != nil {
		mutationTotal.WithLabelValues("create", resultFailure).Inc()
		return err
	}
	mutationTotal.WithLabelValues("create", resultSuccess).Inc()

	return s.Refresh(ctx)
}

// LikePost toggles the caller's like on the remote side and refreshes. On
// failure the store stays stale rather than guessing the toggle outcome.
func (s *feedService) LikePost(ctx context.Context, postID string) error {
	if err := s.requireIdentity(); err != nil {
		return err
	}

	if err := s.gw.LikePost(ctx, postID); err != nil {
		mutationTotal.WithLabelValues("like", resultFailure).Inc()
		return err
	}
	mutationTotal.WithLabelValues("like", resultSuccess).Inc()

	return s.Refresh(ctx)
}

// AddComment appends a comment and refreshes on success.
func (s *feedService) AddComment(ctx context.Context, postID, text string) error {
	if err := s.requireIdentity(); err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return common.ErrEmptyContent
	}

	if err := s.gw.AddComment(ctx, postID, text); err != nil {
		mutationTotal.WithLabelValues("comment", resultFailure).Inc()
		return err
	}
	mutationTotal.WithLabelValues("comment", resultSuccess).Inc()

	return s.Refresh(ctx)
}

// Posts exposes the current store snapshot.
func (s *feedService) Posts() []domain.Post {
	return s.store.Posts()
}

// Post returns one post from the current snapshot.
func (s *feedService) Post(id string) (domain.Post, bool) {
	return s.store.Get(id)
}

// WarmFromCache seeds the store from the persisted snapshot so the UI has
// something to show before the first refresh completes. Cache contents never
// override a snapshot that already arrived from the network: the warm load
// uses generation 0, which any real refresh outranks.
func (s *feedService) WarmFromCache(ctx context.Context) bool {
	var posts []domain.Post
	if err := s.cache.GetSnapshot(ctx, &posts); err != nil {
		return false
	}
	if len(posts) == 0 {
		return false
	}
	if !s.store.Replace(posts, 0) {
		return false
	}
	s.log.Info().Int("posts", len(posts)).Msg("feed warmed from snapshot cache")
	return true
}

func (s *feedService) requireIdentity() error {
	if s.id.Username() == "" {
		return common.ErrNoIdentity
	}
	return nil
}
