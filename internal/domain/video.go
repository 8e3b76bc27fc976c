package domain

import (
	"time"

	"github.com/google/uuid"
)

// Video is the metadata record for a hosted video. The owner is fixed at
// creation; only URL fields change afterwards.
type Video struct {
	ID           uuid.UUID `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	UserID       uuid.UUID `json:"user_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ThumbnailURL *string   `json:"thumbnail_url"`
	VideoURL     *string   `json:"video_url"`
}

func NewVideo(userID uuid.UUID, title, description string) *Video {
	now := time.Now().UTC()
	return &Video{
		ID:          uuid.New(),
		CreatedAt:   now,
		UpdatedAt:   now,
		UserID:      userID,
		Title:       title,
		Description: description,
	}
}

// OwnedBy reports whether the given user may mutate or delete the video.
func (v *Video) OwnedBy(userID uuid.UUID) bool {
	return v.UserID == userID
}

// Thumbnail holds the raw bytes of an uploaded thumbnail together with the
// MIME type it was uploaded with.
type Thumbnail struct {
	Data      []byte
	MediaType string
}
