package storage

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
)

// SaveTemp spools an incoming upload to a local temporary file so it can be
// handed to the blob store by path. The returned cleanup removes the file and
// is safe to defer immediately.
func SaveTemp(r io.Reader, prefix string) (string, func(), error) {
	f, err := os.CreateTemp("", fmt.Sprintf("%s-%s-*", prefix, uuid.NewString()[:8]))
	if err != nil {
		return "", nil, fmt.Errorf("create temp file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", nil, fmt.Errorf("spool upload: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", nil, err
	}
	path := f.Name()
	return path, func() { os.Remove(path) }, nil
}
