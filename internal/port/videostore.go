package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/bnema/reelvault/internal/domain"
)

type VideoStore interface {
	Create(ctx context.Context, v *domain.Video) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Video, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Video, error)
	Update(ctx context.Context, v *domain.Video) error
	Delete(ctx context.Context, id uuid.UUID) error
}
