package storage

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestVercelBlobUpload(t *testing.T) {
	var gotAuth, gotContentType, gotSuffix, gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("Method = %s, want PUT", r.Method)
		}
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("x-content-type")
		gotSuffix = r.Header.Get("x-add-random-suffix")
		gotPath = r.URL.Path

		json.NewEncoder(w).Encode(map[string]string{
			"url": "https://blobs.example.com/games/catan-abc123.png",
		})
	}))
	defer server.Close()

	store := NewVercelBlobWithURL("secret-token", server.URL)
	url, err := store.Upload(context.Background(), "games/catan.png", []byte("png bytes"), "image/png")
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	if url != "https://blobs.example.com/games/catan-abc123.png" {
		t.Errorf("URL = %q", url)
	}
	if gotAuth != "Bearer secret-token" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotContentType != "image/png" {
		t.Errorf("x-content-type = %q", gotContentType)
	}
	if gotSuffix != "1" {
		t.Errorf("x-add-random-suffix = %q", gotSuffix)
	}
	if gotPath != "/games/catan.png" {
		t.Errorf("Path = %q", gotPath)
	}
}

func TestVercelBlobUploadGuessesContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("x-content-type"); ct != "image/png" {
			t.Errorf("x-content-type = %q, want image/png", ct)
		}
		json.NewEncoder(w).Encode(map[string]string{"url": "https://blobs.example.com/x.png"})
	}))
	defer server.Close()

	store := NewVercelBlobWithURL("t", server.URL)
	if _, err := store.Upload(context.Background(), "games/x.png", []byte("x"), ""); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
}

func TestVercelBlobUploadErrors(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		store := NewVercelBlobWithURL("t", server.URL)
		_, err := store.Upload(context.Background(), "games/x.png", []byte("x"), "image/png")
		if err == nil {
			t.Fatal("Expected an error on 500")
		}
	})

	t.Run("missing url in response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("{}"))
		}))
		defer server.Close()

		store := NewVercelBlobWithURL("t", server.URL)
		_, err := store.Upload(context.Background(), "games/x.png", []byte("x"), "image/png")
		if err == nil {
			t.Fatal("Expected an error when the response has no url")
		}
	})
}

func TestVercelBlobDelete(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusNoContent, http.StatusNotFound} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodDelete {
				t.Errorf("Method = %s, want DELETE", r.Method)
			}
			w.WriteHeader(status)
		}))

		store := NewVercelBlobWithURL("t", server.URL)
		if err := store.Delete(context.Background(), server.URL+"/games/x.png"); err != nil {
			t.Errorf("Delete with status %d failed: %v", status, err)
		}
		server.Close()
	}
}

func TestVercelBlobDeleteServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	store := NewVercelBlobWithURL("t", server.URL)
	err := store.Delete(context.Background(), server.URL+"/games/x.png")
	if err == nil {
		t.Fatal("Expected an error on 403")
	}

	var storageErr *Error
	if !errors.As(err, &storageErr) {
		t.Fatalf("Error type = %T, want *storage.Error", err)
	}
	if storageErr.Op != "delete" {
		t.Errorf("Op = %q, want delete", storageErr.Op)
	}
}

func TestVercelBlobDeleteIgnoresNonURLs(t *testing.T) {
	store := NewVercelBlob("t")
	if err := store.Delete(context.Background(), ""); err != nil {
		t.Errorf("Delete of empty url errored: %v", err)
	}
	if err := store.Delete(context.Background(), "games/x.png"); err != nil {
		t.Errorf("Delete of relative path errored: %v", err)
	}
}
