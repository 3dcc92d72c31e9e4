package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalDiskRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalDisk(dir, "http://localhost:8080")

	url, err := store.Upload(context.Background(), "games/catan.png", []byte("png bytes"), "image/png")
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	if !strings.HasPrefix(url, "http://localhost:8080/uploads/games/") {
		t.Fatalf("URL = %q, want an /uploads/games/ URL", url)
	}

	rel := strings.TrimPrefix(url, "http://localhost:8080/uploads/")
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("Stored file unreadable: %v", err)
	}
	if string(data) != "png bytes" {
		t.Errorf("Stored content = %q", data)
	}

	if err := store.Delete(context.Background(), url); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel))); !os.IsNotExist(err) {
		t.Error("File still present after delete")
	}
}

func TestLocalDiskUploadAvoidsCollisions(t *testing.T) {
	store := NewLocalDisk(t.TempDir(), "http://localhost:8080")

	first, err := store.Upload(context.Background(), "games/catan.png", []byte("a"), "image/png")
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	second, err := store.Upload(context.Background(), "games/catan.png", []byte("b"), "image/png")
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if first == second {
		t.Errorf("Two uploads of the same filename produced the same URL %q", first)
	}
}

func TestLocalDiskDeleteMissingFile(t *testing.T) {
	store := NewLocalDisk(t.TempDir(), "http://localhost:8080")

	if err := store.Delete(context.Background(), "http://localhost:8080/uploads/games/gone.png"); err != nil {
		t.Errorf("Delete of a missing file errored: %v", err)
	}
	if err := store.Delete(context.Background(), "https://elsewhere.example.com/not-ours.png"); err != nil {
		t.Errorf("Delete of a foreign URL errored: %v", err)
	}
}

func TestLocalDiskDeleteStaysInsideDir(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalDisk(dir, "http://localhost:8080")

	outside := filepath.Join(filepath.Dir(dir), "victim.txt")
	if err := os.WriteFile(outside, []byte("keep me"), 0o644); err != nil {
		t.Fatal(err)
	}

	store.Delete(context.Background(), "http://localhost:8080/uploads/../victim.txt")

	if _, err := os.Stat(outside); err != nil {
		t.Error("Delete escaped the upload directory")
	}
}
