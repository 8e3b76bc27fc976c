// Package validation provides upload content-type validation.
package validation

import (
	"errors"
	"fmt"
	"mime"
)

var ErrDisallowedFileType = errors.New("file type not allowed")

// thumbnailMIMETypes is the allowlist for thumbnail uploads.
var thumbnailMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// videoMIMETypes is the allowlist for video uploads.
var videoMIMETypes = map[string]bool{
	"video/mp4": true,
}

// ThumbnailMediaType parses a multipart part's Content-Type and checks it
// against the thumbnail allowlist. Parameters (charset etc.) are ignored.
func ThumbnailMediaType(contentType string) (string, error) {
	return parseAllowed(contentType, thumbnailMIMETypes)
}

// VideoMediaType parses a multipart part's Content-Type and checks it against
// the video allowlist.
func VideoMediaType(contentType string) (string, error) {
	return parseAllowed(contentType, videoMIMETypes)
}

func parseAllowed(contentType string, allowed map[string]bool) (string, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", fmt.Errorf("invalid content type %q: %w", contentType, err)
	}
	if !allowed[mediaType] {
		return "", fmt.Errorf("%w: %s", ErrDisallowedFileType, mediaType)
	}
	return mediaType, nil
}
