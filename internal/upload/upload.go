// Package upload stores user-submitted media files and hands back a URL
// the frontend can embed.
package upload

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"regexp"
	"strings"
)

var ErrStoreFailed = errors.New("couldn't store file")

// Store saves an uploaded file and returns a URL where it can be fetched.
type Store interface {
	Save(ctx context.Context, filename string, contentType string, data io.Reader) (string, error)
}

// AllowedType accepts the media types the site works with.
func AllowedType(contentType string) bool {
	t := strings.ToLower(contentType)
	return strings.HasPrefix(t, "image/") || strings.HasPrefix(t, "video/")
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// sanitizeName reduces a client-supplied filename to a safe base and
// extension, capping the base at 80 characters.
func sanitizeName(filename string) (base string, ext string) {
	ext = filepath.Ext(filename)
	base = strings.TrimSuffix(filepath.Base(filename), ext)
	base = unsafeChars.ReplaceAllString(base, "_")
	if base == "" {
		base = "file"
	}
	if len(base) > 80 {
		base = base[:80]
	}
	return base, ext
}
