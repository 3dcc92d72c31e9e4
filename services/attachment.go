package services

import (
	"context"

	"scoreboard/storage"
	"scoreboard/utils/logger"
)

// Attachment carries the raw bytes of an uploaded image or avatar together
// with the metadata the storage layer needs.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

func (a *Attachment) empty() bool {
	return a == nil || len(a.Data) == 0
}

// discardBlob deletes a stored blob without letting a failure reach the
// caller. Blob cleanup is hygiene: the row update or delete that triggered it
// must succeed either way, so failures are only logged.
func discardBlob(ctx context.Context, blobs storage.Store, url string) {
	if url == "" {
		return
	}
	if err := blobs.Delete(ctx, url); err != nil {
		logger.Errorf("Failed to delete blob %s: %v", url, err)
	}
}
