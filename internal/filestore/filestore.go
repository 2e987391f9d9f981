// Package filestore persists uploaded festival images and hands back the
// public reference stored on the festival record.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/vietanh2810/festivals-api/internal/config"
)

var (
	ErrUnsupportedType = errors.New("unsupported image type")
)

type Store interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
}

var imageExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
}

// Extension returns the lower-cased extension of filename if it is an
// accepted image type.
func Extension(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := imageExtensions[ext]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}

	return ext, nil
}

func contentType(ext string) string {
	return imageExtensions[ext]
}

// objectName derives a collision-resistant name from the upload time,
// keeping the original extension.
func objectName(now time.Time, ext string) string {
	return fmt.Sprintf("%d%s", now.UnixMilli(), ext)
}

// sequence hands out upload timestamps that are strictly increasing at
// millisecond precision, so two uploads in the same millisecond still get
// distinct names.
type sequence struct {
	mu   sync.Mutex
	last time.Time
}

func (q *sequence) next(now time.Time) time.Time {
	q.mu.Lock()
	defer q.mu.Unlock()

	t := now.Truncate(time.Millisecond)
	if !t.After(q.last) {
		t = q.last.Add(time.Millisecond)
	}
	q.last = t

	return t
}

// New builds the store selected by the upload driver.
func New(ctx context.Context, conf *config.UploadConfig) (Store, error) {
	switch conf.Driver {
	case config.UploadLocal:
		return NewLocalStore(conf.Dir, conf.PublicPath)
	case config.UploadS3:
		return NewS3Store(ctx, conf.S3)
	default:
		return nil, fmt.Errorf("unsupported upload driver %q", conf.Driver)
	}
}
