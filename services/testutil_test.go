package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"scoreboard/models"
	"scoreboard/storage"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB creates a fresh sqlite database with the full schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&models.Game{}, &models.Player{}, &models.Score{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// fakeStore records uploads and delete requests instead of talking to a blob
// backend. Each upload yields a distinct URL.
type fakeStore struct {
	uploads    []string
	deletes    []string
	failDelete bool
	seq        int
}

func (f *fakeStore) Upload(ctx context.Context, pathname string, data []byte, contentType string) (string, error) {
	f.seq++
	url := fmt.Sprintf("https://blobs.test/%s-%d", pathname, f.seq)
	f.uploads = append(f.uploads, url)
	return url, nil
}

func (f *fakeStore) Delete(ctx context.Context, url string) error {
	f.deletes = append(f.deletes, url)
	if f.failDelete {
		return &storage.Error{Op: "delete", Err: errors.New("blob backend unavailable")}
	}
	return nil
}

func countDeletes(f *fakeStore, url string) int {
	n := 0
	for _, d := range f.deletes {
		if d == url {
			n++
		}
	}
	return n
}
