package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/bnema/reelvault/internal/domain"
)

// ThumbnailStore persists at most one thumbnail per video; a re-upload
// overwrites the previous one.
type ThumbnailStore interface {
	Put(ctx context.Context, videoID uuid.UUID, t *domain.Thumbnail) (assetName string, err error)
	Get(ctx context.Context, videoID uuid.UUID) (*domain.Thumbnail, error)
	Delete(ctx context.Context, videoID uuid.UUID) error
}
