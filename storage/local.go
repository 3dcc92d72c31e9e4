package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalDisk stores blobs under a directory on the local filesystem and serves
// them back through the application's /uploads route. Meant for development
// and single-node deployments without a blob store token.
type LocalDisk struct {
	dir     string
	baseURL string
}

func NewLocalDisk(dir, baseURL string) *LocalDisk {
	return &LocalDisk{
		dir:     dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

func (l *LocalDisk) Upload(ctx context.Context, pathname string, data []byte, contentType string) (string, error) {
	pathname = path.Clean("/" + pathname)[1:]
	ext := path.Ext(pathname)
	stem := strings.TrimSuffix(path.Base(pathname), ext)
	dir := path.Dir(pathname)

	// Random suffix to avoid collisions, same contract as the remote store.
	name := fmt.Sprintf("%s-%s%s", stem, uuid.NewString()[:8], ext)
	rel := path.Join(dir, name)

	full := filepath.Join(l.dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", &Error{Op: "upload", Err: err}
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", &Error{Op: "upload", Err: err}
	}

	return l.baseURL + "/uploads/" + rel, nil
}

func (l *LocalDisk) Delete(ctx context.Context, url string) error {
	idx := strings.Index(url, "/uploads/")
	if idx < 0 {
		return nil
	}
	rel := url[idx+len("/uploads/"):]

	// Normalize so the delete cannot escape the upload directory.
	rel = path.Clean("/" + rel)[1:]

	err := os.Remove(filepath.Join(l.dir, filepath.FromSlash(rel)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return &Error{Op: "delete", Err: err}
	}
	return nil
}
