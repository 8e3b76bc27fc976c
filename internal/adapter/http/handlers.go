package http

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/bnema/reelvault/internal/adapter/http/ratelimit"
	"github.com/bnema/reelvault/internal/domain"
)

type VideoService interface {
	Create(ctx context.Context, userID uuid.UUID, title, description string) (*domain.Video, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Video, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Video, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	UploadThumbnail(ctx context.Context, userID, videoID uuid.UUID, t *domain.Thumbnail) error
	GetThumbnail(ctx context.Context, videoID uuid.UUID) (*domain.Thumbnail, error)
	UploadVideo(ctx context.Context, userID, videoID uuid.UUID, body io.Reader, mediaType string) error
}

type Handlers struct {
	authSvc        AuthService
	videoSvc       VideoService
	rateLimiter    *ratelimit.LoginRateLimiter
	attemptTracker *ratelimit.LoginAttemptTracker
	backoff        *ratelimit.Backoff

	maxThumbnailBytes int64
	maxVideoBytes     int64
}

func NewHandlers(authSvc AuthService, videoSvc VideoService, maxThumbnailBytes, maxVideoBytes int64) *Handlers {
	return &Handlers{
		authSvc:           authSvc,
		videoSvc:          videoSvc,
		rateLimiter:       ratelimit.NewLoginRateLimiter(5, 15*time.Minute, 30*time.Minute),
		attemptTracker:    ratelimit.NewLoginAttemptTracker(),
		backoff:           ratelimit.NewBackoff(500*time.Millisecond, 10*time.Second, 2.0),
		maxThumbnailBytes: maxThumbnailBytes,
		maxVideoBytes:     maxVideoBytes,
	}
}
