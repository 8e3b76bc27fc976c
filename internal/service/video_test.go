package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/reelvault/internal/asset"
	"github.com/bnema/reelvault/internal/domain"
)

type fakeVideoStore struct {
	videos    map[uuid.UUID]*domain.Video
	updateErr error
}

func newFakeVideoStore() *fakeVideoStore {
	return &fakeVideoStore{videos: make(map[uuid.UUID]*domain.Video)}
}

func (f *fakeVideoStore) Create(_ context.Context, v *domain.Video) error {
	f.videos[v.ID] = v
	return nil
}

func (f *fakeVideoStore) Get(_ context.Context, id uuid.UUID) (*domain.Video, error) {
	v, ok := f.videos[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *v
	return &clone, nil
}

func (f *fakeVideoStore) ListByUser(_ context.Context, userID uuid.UUID) ([]*domain.Video, error) {
	var out []*domain.Video
	for _, v := range f.videos {
		if v.UserID == userID {
			clone := *v
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeVideoStore) Update(_ context.Context, v *domain.Video) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.videos[v.ID]; !ok {
		return domain.ErrNotFound
	}
	clone := *v
	f.videos[v.ID] = &clone
	return nil
}

func (f *fakeVideoStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.videos[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.videos, id)
	return nil
}

type fakeThumbnailStore struct {
	thumbs map[uuid.UUID]*domain.Thumbnail
}

func newFakeThumbnailStore() *fakeThumbnailStore {
	return &fakeThumbnailStore{thumbs: make(map[uuid.UUID]*domain.Thumbnail)}
}

func (f *fakeThumbnailStore) Put(_ context.Context, id uuid.UUID, t *domain.Thumbnail) (string, error) {
	f.thumbs[id] = t
	return id.String() + asset.MediaTypeToExt(t.MediaType), nil
}

func (f *fakeThumbnailStore) Get(_ context.Context, id uuid.UUID) (*domain.Thumbnail, error) {
	t, ok := f.thumbs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

func (f *fakeThumbnailStore) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.thumbs, id)
	return nil
}

type fakeObjectStore struct {
	putKeys  []string
	putData  map[string][]byte
	putTypes map[string]string
	putErr   error
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{
		putData:  make(map[string][]byte),
		putTypes: make(map[string]string),
	}
}

func (f *fakeObjectStore) Put(_ context.Context, key string, body io.Reader, contentType string) error {
	if f.putErr != nil {
		return f.putErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.putKeys = append(f.putKeys, key)
	f.putData[key] = data
	f.putTypes[key] = contentType
	return nil
}

func (f *fakeObjectStore) Presign(_ context.Context, key string, expires time.Duration) (string, error) {
	return fmt.Sprintf("https://signed.example.com/%s?ttl=%d", key, int(expires.Seconds())), nil
}

type fakeMediaTool struct {
	width, height int
	probeErr      error
	fastErr       error
}

func (f *fakeMediaTool) Probe(_ context.Context, path string) (int, int, error) {
	if f.probeErr != nil {
		return 0, 0, f.probeErr
	}
	return f.width, f.height, nil
}

func (f *fakeMediaTool) FastStart(_ context.Context, path string) (string, error) {
	if f.fastErr != nil {
		return "", f.fastErr
	}
	out := path + ".processed"
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(out, append([]byte("faststart:"), data...), 0644); err != nil {
		return "", err
	}
	return out, nil
}

type videoServiceFixture struct {
	svc     *VideoService
	videos  *fakeVideoStore
	thumbs  *fakeThumbnailStore
	objects *fakeObjectStore
	tool    *fakeMediaTool
}

func newVideoServiceFixture(t *testing.T) *videoServiceFixture {
	t.Helper()
	f := &videoServiceFixture{
		videos:  newFakeVideoStore(),
		thumbs:  newFakeThumbnailStore(),
		objects: newFakeObjectStore(),
		tool:    &fakeMediaTool{width: 1920, height: 1080},
	}
	resolver := asset.Resolver{
		AssetsRoot: t.TempDir(),
		PublicBase: "http://localhost:8091",
		Bucket:     "reelvault-test",
		Region:     "us-east-1",
	}
	f.svc = NewVideoService(f.videos, f.thumbs, f.objects, f.tool,
		resolver, "http://localhost:8091", 5*time.Minute, time.Minute)
	return f
}

func (f *videoServiceFixture) seedVideo(t *testing.T, userID uuid.UUID) *domain.Video {
	t.Helper()
	v, err := f.svc.Create(context.Background(), userID, "a title", "a description")
	require.NoError(t, err)
	return v
}

func TestVideoService_Create(t *testing.T) {
	f := newVideoServiceFixture(t)
	userID := uuid.New()

	v, err := f.svc.Create(context.Background(), userID, "t", "d")
	require.NoError(t, err)
	assert.Equal(t, userID, v.UserID)
	assert.Equal(t, "t", v.Title)
	assert.Nil(t, v.VideoURL)

	_, err = f.svc.Create(context.Background(), userID, "", "d")
	assert.ErrorIs(t, err, ErrMissingFields)
	_, err = f.svc.Create(context.Background(), userID, "t", "")
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestVideoService_Get_SignsStoredKey(t *testing.T) {
	f := newVideoServiceFixture(t)
	v := f.seedVideo(t, uuid.New())

	// No upload yet: URL passes through as nil.
	got, err := f.svc.Get(context.Background(), v.ID)
	require.NoError(t, err)
	assert.Nil(t, got.VideoURL)

	key := "landscape/abc.mp4"
	stored := f.videos.videos[v.ID]
	stored.VideoURL = &key

	got, err = f.svc.Get(context.Background(), v.ID)
	require.NoError(t, err)
	require.NotNil(t, got.VideoURL)
	assert.Equal(t, "https://signed.example.com/landscape/abc.mp4?ttl=300", *got.VideoURL)

	// The stored row still holds the raw key.
	assert.Equal(t, key, *f.videos.videos[v.ID].VideoURL)
}

func TestVideoService_Get_NotFound(t *testing.T) {
	f := newVideoServiceFixture(t)
	_, err := f.svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVideoService_Delete_Ownership(t *testing.T) {
	f := newVideoServiceFixture(t)
	owner := uuid.New()
	v := f.seedVideo(t, owner)

	err := f.svc.Delete(context.Background(), uuid.New(), v.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, stillThere := f.videos.videos[v.ID]
	assert.True(t, stillThere)

	require.NoError(t, f.svc.Delete(context.Background(), owner, v.ID))
	_, err = f.svc.Get(context.Background(), v.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = f.svc.Delete(context.Background(), owner, v.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVideoService_UploadThumbnail(t *testing.T) {
	f := newVideoServiceFixture(t)
	owner := uuid.New()
	v := f.seedVideo(t, owner)

	thumb := &domain.Thumbnail{Data: []byte("png bytes"), MediaType: "image/png"}
	require.NoError(t, f.svc.UploadThumbnail(context.Background(), owner, v.ID, thumb))

	got, err := f.svc.Get(context.Background(), v.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ThumbnailURL)
	assert.Equal(t, "http://localhost:8091/api/thumbnails/"+v.ID.String(), *got.ThumbnailURL)

	fetched, err := f.svc.GetThumbnail(context.Background(), v.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("png bytes"), fetched.Data)
	assert.Equal(t, "image/png", fetched.MediaType)
}

func TestVideoService_UploadThumbnail_NotOwner(t *testing.T) {
	f := newVideoServiceFixture(t)
	v := f.seedVideo(t, uuid.New())

	thumb := &domain.Thumbnail{Data: []byte("x"), MediaType: "image/png"}
	err := f.svc.UploadThumbnail(context.Background(), uuid.New(), v.ID, thumb)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err := f.svc.Get(context.Background(), v.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ThumbnailURL)
	assert.Empty(t, f.thumbs.thumbs)
}

func TestVideoService_GetThumbnail_Missing(t *testing.T) {
	f := newVideoServiceFixture(t)
	v := f.seedVideo(t, uuid.New())

	_, err := f.svc.GetThumbnail(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound, "unknown video")

	_, err = f.svc.GetThumbnail(context.Background(), v.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "video without thumbnail")
}

func TestVideoService_UploadVideo_Pipeline(t *testing.T) {
	f := newVideoServiceFixture(t)
	owner := uuid.New()
	v := f.seedVideo(t, owner)

	body := bytes.NewReader([]byte("raw mp4 bytes"))
	require.NoError(t, f.svc.UploadVideo(context.Background(), owner, v.ID, body, "video/mp4"))

	require.Len(t, f.objects.putKeys, 1)
	key := f.objects.putKeys[0]
	assert.True(t, strings.HasPrefix(key, "landscape/"), "1920x1080 goes to the landscape prefix, got %s", key)
	assert.True(t, strings.HasSuffix(key, ".mp4"))
	assert.Equal(t, "video/mp4", f.objects.putTypes[key])
	// The pushed bytes are the fast-start rewrite, not the raw upload.
	assert.Equal(t, []byte("faststart:raw mp4 bytes"), f.objects.putData[key])

	stored := f.videos.videos[v.ID]
	require.NotNil(t, stored.VideoURL)
	assert.Equal(t, key, *stored.VideoURL)

	// Both temp artifacts are gone.
	name := strings.TrimPrefix(key, "landscape/")
	tempPath := filepath.Join(os.TempDir(), name)
	_, err := os.Stat(tempPath)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(tempPath + ".processed")
	assert.True(t, os.IsNotExist(err))
}

func TestVideoService_UploadVideo_PortraitPrefix(t *testing.T) {
	f := newVideoServiceFixture(t)
	f.tool.width, f.tool.height = 1080, 1920
	owner := uuid.New()
	v := f.seedVideo(t, owner)

	body := bytes.NewReader([]byte("data"))
	require.NoError(t, f.svc.UploadVideo(context.Background(), owner, v.ID, body, "video/mp4"))

	require.Len(t, f.objects.putKeys, 1)
	assert.True(t, strings.HasPrefix(f.objects.putKeys[0], "portrait/"))
}

func TestVideoService_UploadVideo_NotOwner(t *testing.T) {
	f := newVideoServiceFixture(t)
	v := f.seedVideo(t, uuid.New())

	err := f.svc.UploadVideo(context.Background(), uuid.New(), v.ID,
		bytes.NewReader([]byte("data")), "video/mp4")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, f.objects.putKeys)
	assert.Nil(t, f.videos.videos[v.ID].VideoURL)
}

func TestVideoService_UploadVideo_ProbeFailure(t *testing.T) {
	f := newVideoServiceFixture(t)
	f.tool.probeErr = errors.New("no video streams")
	owner := uuid.New()
	v := f.seedVideo(t, owner)

	err := f.svc.UploadVideo(context.Background(), owner, v.ID,
		bytes.NewReader([]byte("data")), "video/mp4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "probe video")
	assert.Empty(t, f.objects.putKeys)
	assert.Nil(t, f.videos.videos[v.ID].VideoURL)
}

func TestVideoService_UploadVideo_StoreFailure(t *testing.T) {
	f := newVideoServiceFixture(t)
	f.objects.putErr = errors.New("s3 is down")
	owner := uuid.New()
	v := f.seedVideo(t, owner)

	err := f.svc.UploadVideo(context.Background(), owner, v.ID,
		bytes.NewReader([]byte("data")), "video/mp4")
	require.Error(t, err)
	assert.Nil(t, f.videos.videos[v.ID].VideoURL, "metadata is untouched when the push fails")
}

func TestVideoService_ListByUser_SignsEach(t *testing.T) {
	f := newVideoServiceFixture(t)
	owner := uuid.New()
	a := f.seedVideo(t, owner)
	b := f.seedVideo(t, owner)
	f.seedVideo(t, uuid.New())

	keyA := "landscape/a.mp4"
	f.videos.videos[a.ID].VideoURL = &keyA

	videos, err := f.svc.ListByUser(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, videos, 2)

	for _, v := range videos {
		switch v.ID {
		case a.ID:
			require.NotNil(t, v.VideoURL)
			assert.Contains(t, *v.VideoURL, "https://signed.example.com/landscape/a.mp4")
		case b.ID:
			assert.Nil(t, v.VideoURL)
		}
	}
}
