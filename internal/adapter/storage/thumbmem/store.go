// Package thumbmem keeps thumbnails in process memory. No eviction, and
// everything is lost on restart; it suits dev setups without a writable
// assets directory.
package thumbmem

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/bnema/reelvault/internal/asset"
	"github.com/bnema/reelvault/internal/domain"
	"github.com/bnema/reelvault/internal/port"
)

type Store struct {
	mu         sync.RWMutex
	thumbnails map[uuid.UUID]*domain.Thumbnail
}

func NewStore() *Store {
	return &Store{
		thumbnails: make(map[uuid.UUID]*domain.Thumbnail),
	}
}

func (s *Store) Put(ctx context.Context, videoID uuid.UUID, t *domain.Thumbnail) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.thumbnails[videoID] = t
	return videoID.String() + asset.MediaTypeToExt(t.MediaType), nil
}

func (s *Store) Get(ctx context.Context, videoID uuid.UUID) (*domain.Thumbnail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.thumbnails[videoID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

func (s *Store) Delete(ctx context.Context, videoID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.thumbnails, videoID)
	return nil
}

var _ port.ThumbnailStore = (*Store)(nil)
