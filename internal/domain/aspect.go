package domain

import "math"

// AspectRatio is the coarse orientation bucket used to namespace object keys.
type AspectRatio string

const (
	AspectLandscape AspectRatio = "landscape"
	AspectPortrait  AspectRatio = "portrait"
	AspectOther     AspectRatio = "other"
)

// aspectTolerance is the absolute tolerance when comparing against 16:9 and
// 9:16. 1920x1080 and friends land well inside it; square video does not.
const aspectTolerance = 0.01

func ClassifyAspectRatio(width, height int) AspectRatio {
	if width <= 0 || height <= 0 {
		return AspectOther
	}

	ratio := float64(width) / float64(height)
	if math.Abs(ratio-16.0/9.0) < aspectTolerance {
		return AspectLandscape
	}
	if math.Abs(ratio-9.0/16.0) < aspectTolerance {
		return AspectPortrait
	}
	return AspectOther
}
