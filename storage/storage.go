// Package storage holds the blob store boundary used for game images and
// player avatars. Stores hand back a stable public URL on upload; that URL is
// the only key a caller ever holds, including for deletion.
package storage

import "context"

type Store interface {
	// Upload writes data under a namespaced pathname (for example
	// "games/catan.png") and returns the public URL of the stored blob.
	Upload(ctx context.Context, pathname string, data []byte, contentType string) (string, error)

	// Delete removes the blob behind a previously returned URL. Deleting a
	// blob that no longer exists is not an error.
	Delete(ctx context.Context, url string) error
}

// Error wraps a failed storage operation.
type Error struct {
	Op  string // "upload" or "delete"
	Err error
}

func (e *Error) Error() string {
	return "storage: " + e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}
