package feed

import (
	"sync"

	"github.com/pawconnect/pawsyncd/internal/domain"
)

// Store is the single source of truth for the community feed. It only
// supports full replacement: no partial patching exists, so the contents
// always reflect one consistent remote snapshot.
//
// Replace calls carry a generation stamp. A refresh that finishes after a
// newer one started is rejected, so a slow early response can never clobber
// a later snapshot.
type Store struct {
	mu    sync.RWMutex
	posts []domain.Post
	gen   uint64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Replace swaps the entire post collection if gen is at least the last
// applied generation. Returns false when the snapshot was stale and dropped.
func (s *Store) Replace(posts []domain.Post, gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen < s.gen {
		return false
	}
	s.gen = gen
	s.posts = make([]domain.Post, len(posts))
	copy(s.posts, posts)
	return true
}

// Posts returns a copy of the current snapshot.
func (s *Store) Posts() []domain.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Post, len(s.posts))
	copy(out, s.posts)
	return out
}

// Get returns the post with the given id from the current snapshot.
func (s *Store) Get(id string) (domain.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.posts {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Post{}, false
}

// Len returns the number of posts in the current snapshot.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.posts)
}

// Generation returns the last applied generation stamp.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}
