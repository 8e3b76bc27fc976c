// Package thumbdisk stores thumbnails as files under the assets root,
// one per video, named <videoID><ext>.
package thumbdisk

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/bnema/reelvault/internal/asset"
	"github.com/bnema/reelvault/internal/domain"
	"github.com/bnema/reelvault/internal/port"
)

type Store struct {
	resolver asset.Resolver
}

func NewStore(resolver asset.Resolver) (*Store, error) {
	if err := os.MkdirAll(resolver.AssetsRoot, 0755); err != nil {
		return nil, fmt.Errorf("create assets root: %w", err)
	}
	return &Store{resolver: resolver}, nil
}

func (s *Store) Put(ctx context.Context, videoID uuid.UUID, t *domain.Thumbnail) (string, error) {
	// Drop any previous thumbnail first; a re-upload may change the extension.
	if err := s.Delete(ctx, videoID); err != nil {
		return "", err
	}

	assetName := videoID.String() + asset.MediaTypeToExt(t.MediaType)
	if err := os.WriteFile(s.resolver.DiskPath(assetName), t.Data, 0644); err != nil {
		return "", fmt.Errorf("write thumbnail: %w", err)
	}
	return assetName, nil
}

func (s *Store) Get(ctx context.Context, videoID uuid.UUID) (*domain.Thumbnail, error) {
	path, err := s.find(videoID)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	mediaType := mime.TypeByExtension(filepath.Ext(path))
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	return &domain.Thumbnail{Data: data, MediaType: mediaType}, nil
}

func (s *Store) Delete(ctx context.Context, videoID uuid.UUID) error {
	matches, err := filepath.Glob(s.resolver.DiskPath(videoID.String() + ".*"))
	if err != nil {
		return err
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

func (s *Store) find(videoID uuid.UUID) (string, error) {
	matches, err := filepath.Glob(s.resolver.DiskPath(videoID.String() + ".*"))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", domain.ErrNotFound
	}
	return matches[0], nil
}

var _ port.ThumbnailStore = (*Store)(nil)
