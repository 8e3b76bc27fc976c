// Package asset maps logical asset identifiers to disk paths, temp paths,
// public URLs, and object-store URLs.
package asset

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MediaTypeToExt derives a file extension from a MIME type. Anything that is
// not a well-formed type/subtype pair falls back to a generic binary
// extension.
func MediaTypeToExt(mediaType string) string {
	parts := strings.Split(mediaType, "/")
	if len(parts) != 2 {
		return ".bin"
	}
	return "." + parts[1]
}

// NewAssetName returns a fresh unguessable asset filename: 32 random bytes as
// URL-safe unpadded base64, plus the MIME-derived extension.
func NewAssetName(mediaType string) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate asset name: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b) + MediaTypeToExt(mediaType), nil
}

// Resolver composes paths and URLs for assets. It is pure string/path
// composition; nothing here touches the filesystem or the network.
type Resolver struct {
	AssetsRoot string
	PublicBase string
	Bucket     string
	Region     string
}

func (r Resolver) DiskPath(assetName string) string {
	return filepath.Join(r.AssetsRoot, assetName)
}

func (r Resolver) TempPath(assetName string) string {
	return filepath.Join(os.TempDir(), assetName)
}

func (r Resolver) PublicURL(assetName string) string {
	return fmt.Sprintf("%s/assets/%s", strings.TrimRight(r.PublicBase, "/"), assetName)
}

// ObjectURL returns the virtual-hosted-style URL for an object key.
func (r Resolver) ObjectURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", r.Bucket, r.Region, key)
}
