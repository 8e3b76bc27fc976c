package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/bnema/reelvault/internal/asset"
	"github.com/bnema/reelvault/internal/domain"
	"github.com/bnema/reelvault/internal/infrastructure/logger"
	"github.com/bnema/reelvault/internal/port"
)

var (
	ErrMissingFields = errors.New("title and description are required")
)

type VideoService struct {
	videos        port.VideoStore
	thumbnails    port.ThumbnailStore
	objects       port.ObjectStore
	media         port.MediaTool
	resolver      asset.Resolver
	publicBase    string
	presignTTL    time.Duration
	ffmpegTimeout time.Duration
}

func NewVideoService(
	videos port.VideoStore,
	thumbnails port.ThumbnailStore,
	objects port.ObjectStore,
	media port.MediaTool,
	resolver asset.Resolver,
	publicBase string,
	presignTTL time.Duration,
	ffmpegTimeout time.Duration,
) *VideoService {
	return &VideoService{
		videos:        videos,
		thumbnails:    thumbnails,
		objects:       objects,
		media:         media,
		resolver:      resolver,
		publicBase:    publicBase,
		presignTTL:    presignTTL,
		ffmpegTimeout: ffmpegTimeout,
	}
}

func (s *VideoService) Create(ctx context.Context, userID uuid.UUID, title, description string) (*domain.Video, error) {
	if title == "" || description == "" {
		return nil, ErrMissingFields
	}

	video := domain.NewVideo(userID, title, description)
	if err := s.videos.Create(ctx, video); err != nil {
		return nil, fmt.Errorf("create video: %w", err)
	}

	logger.Info.Printf("video created: id=%s user=%s title=%q",
		video.ID, userID, logger.SanitizeForLog(title))
	return video, nil
}

// Get returns the video with its stored object key swapped for a fresh
// presigned playback URL. Reads are not authenticated.
func (s *VideoService) Get(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	video, err := s.videos.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.signed(ctx, video)
}

func (s *VideoService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Video, error) {
	videos, err := s.videos.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i, v := range videos {
		signed, err := s.signed(ctx, v)
		if err != nil {
			return nil, err
		}
		videos[i] = signed
	}
	return videos, nil
}

func (s *VideoService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	video, err := s.videos.Get(ctx, id)
	if err != nil {
		return err
	}
	if !video.OwnedBy(userID) {
		return domain.ErrForbidden
	}

	if err := s.videos.Delete(ctx, id); err != nil {
		return err
	}

	// Best effort; the metadata row is already gone.
	if err := s.thumbnails.Delete(ctx, id); err != nil {
		logger.Warn.Printf("delete thumbnail for %s: %v", id, err)
	}
	return nil
}

// UploadThumbnail stores the validated thumbnail bytes and points the video's
// thumbnail URL at the fetch endpoint. A re-upload overwrites the previous
// thumbnail.
func (s *VideoService) UploadThumbnail(ctx context.Context, userID, videoID uuid.UUID, t *domain.Thumbnail) error {
	video, err := s.videos.Get(ctx, videoID)
	if err != nil {
		return err
	}
	if !video.OwnedBy(userID) {
		return domain.ErrForbidden
	}

	if _, err := s.thumbnails.Put(ctx, videoID, t); err != nil {
		return fmt.Errorf("store thumbnail: %w", err)
	}

	thumbURL := fmt.Sprintf("%s/api/thumbnails/%s", s.publicBase, videoID)
	video.ThumbnailURL = &thumbURL
	if err := s.videos.Update(ctx, video); err != nil {
		return fmt.Errorf("update video: %w", err)
	}

	logger.Info.Printf("thumbnail uploaded: video=%s user=%s type=%s size=%d",
		videoID, userID, t.MediaType, len(t.Data))
	return nil
}

func (s *VideoService) GetThumbnail(ctx context.Context, videoID uuid.UUID) (*domain.Thumbnail, error) {
	if _, err := s.videos.Get(ctx, videoID); err != nil {
		return nil, err
	}
	return s.thumbnails.Get(ctx, videoID)
}

// UploadVideo runs the publish pipeline for an already-validated mp4 upload:
// persist to a temp path, probe the aspect ratio, rewrite for fast start,
// push the rewritten file to the object store under an aspect-namespaced key,
// and record that key on the video row. Temp files are removed on every exit
// path.
func (s *VideoService) UploadVideo(ctx context.Context, userID, videoID uuid.UUID, body io.Reader, mediaType string) error {
	video, err := s.videos.Get(ctx, videoID)
	if err != nil {
		return err
	}
	if !video.OwnedBy(userID) {
		return domain.ErrForbidden
	}

	assetName, err := asset.NewAssetName(mediaType)
	if err != nil {
		return err
	}

	tempPath := s.resolver.TempPath(assetName)
	if err := writeTemp(tempPath, body); err != nil {
		return err
	}
	defer removeQuietly(tempPath)

	toolCtx, cancel := context.WithTimeout(ctx, s.ffmpegTimeout)
	defer cancel()

	width, height, err := s.media.Probe(toolCtx, tempPath)
	if err != nil {
		return fmt.Errorf("probe video: %w", err)
	}
	ratio := domain.ClassifyAspectRatio(width, height)

	processedPath, err := s.media.FastStart(toolCtx, tempPath)
	if err != nil {
		return fmt.Errorf("fast-start rewrite: %w", err)
	}
	defer removeQuietly(processedPath)

	processed, err := os.Open(processedPath)
	if err != nil {
		return fmt.Errorf("open processed video: %w", err)
	}
	defer processed.Close()

	key := fmt.Sprintf("%s/%s", ratio, assetName)
	if err := s.objects.Put(ctx, key, processed, mediaType); err != nil {
		return fmt.Errorf("push to object store: %w", err)
	}

	video.VideoURL = &key
	if err := s.videos.Update(ctx, video); err != nil {
		return fmt.Errorf("update video: %w", err)
	}

	logger.Info.Printf("video published: id=%s user=%s %dx%d -> %s",
		videoID, userID, width, height, s.resolver.ObjectURL(key))
	return nil
}

// signed swaps a stored object key for a presigned URL. Videos without an
// upload pass through unchanged.
func (s *VideoService) signed(ctx context.Context, v *domain.Video) (*domain.Video, error) {
	if v.VideoURL == nil || *v.VideoURL == "" {
		return v, nil
	}
	url, err := s.objects.Presign(ctx, *v.VideoURL, s.presignTTL)
	if err != nil {
		return nil, fmt.Errorf("presign %s: %w", *v.VideoURL, err)
	}
	signed := *v
	signed.VideoURL = &url
	return &signed, nil
}

func writeTemp(path string, body io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		_ = f.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	// Close before ffmpeg reads it.
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	return nil
}

func removeQuietly(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Warn.Printf("remove temp file %s: %v", path, err)
	}
}
