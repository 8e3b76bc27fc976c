package validation

import (
	"errors"
	"testing"
)

func TestThumbnailMediaType(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		want        string
		wantErr     bool
	}{
		{"jpeg", "image/jpeg", "image/jpeg", false},
		{"png", "image/png", "image/png", false},
		{"jpeg with charset", "image/jpeg; charset=utf-8", "image/jpeg", false},
		{"gif rejected", "image/gif", "", true},
		{"webp rejected", "image/webp", "", true},
		{"video rejected", "video/mp4", "", true},
		{"garbage", "not a mime", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ThumbnailMediaType(tt.contentType)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ThumbnailMediaType(%q): expected error, got %q", tt.contentType, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ThumbnailMediaType(%q): %v", tt.contentType, err)
			}
			if got != tt.want {
				t.Errorf("ThumbnailMediaType(%q) = %q, want %q", tt.contentType, got, tt.want)
			}
		})
	}
}

func TestVideoMediaType(t *testing.T) {
	got, err := VideoMediaType("video/mp4")
	if err != nil || got != "video/mp4" {
		t.Fatalf("VideoMediaType(video/mp4) = %q, %v", got, err)
	}

	for _, ct := range []string{"video/webm", "video/quicktime", "image/png", "", "mp4"} {
		if _, err := VideoMediaType(ct); err == nil {
			t.Errorf("VideoMediaType(%q): expected error", ct)
		}
	}

	if _, err := VideoMediaType("video/webm"); !errors.Is(err, ErrDisallowedFileType) {
		t.Errorf("want ErrDisallowedFileType, got %v", err)
	}
}
