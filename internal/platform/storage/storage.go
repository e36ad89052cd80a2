package storage

import (
	"context"
	"errors"
)

// ErrFileTooLarge is returned when the blob store rejects an upload because
// the file exceeds its size limit.
var ErrFileTooLarge = errors.New("file too large")

// Asset is a stored blob reference as persisted on documents.
type Asset struct {
	URL      string `bson:"url" json:"url"`
	PublicID string `bson:"public_id" json:"public_id"`
}

// Uploader abstracts the external blob store used for images, videos and PDFs.
// Upload retries transient failures internally; Delete is idempotent, deleting
// an already-removed asset is not an error.
type Uploader interface {
	// Upload sends a local file to the blob store under the given folder.
	Upload(ctx context.Context, localPath, folder string) (Asset, error)

	// UploadRaw sends a non-media file (PDF and similar) under the given folder.
	UploadRaw(ctx context.Context, localPath, folder string) (Asset, error)

	// Update replaces the asset identified by publicID with a new file.
	Update(ctx context.Context, publicID, localPath, folder string) (Asset, error)

	// Delete removes the asset identified by publicID.
	Delete(ctx context.Context, publicID string) error
}
