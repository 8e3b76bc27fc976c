package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyAspectRatio(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		want   AspectRatio
	}{
		{"1080p landscape", 1920, 1080, AspectLandscape},
		{"720p landscape", 1280, 720, AspectLandscape},
		{"4k landscape", 3840, 2160, AspectLandscape},
		{"1080p portrait", 1080, 1920, AspectPortrait},
		{"720p portrait", 720, 1280, AspectPortrait},
		{"square", 1000, 1000, AspectOther},
		{"4:3", 640, 480, AspectOther},
		{"cinema 21:9", 2560, 1080, AspectOther},
		{"near 16:9 inside tolerance", 1778, 1000, AspectLandscape},
		{"near 16:9 outside tolerance", 1790, 1000, AspectOther},
		{"zero width", 0, 1080, AspectOther},
		{"zero height", 1920, 0, AspectOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyAspectRatio(tt.width, tt.height))
		})
	}
}
