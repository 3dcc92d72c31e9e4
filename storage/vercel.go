package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"
)

const (
	defaultAPIURL = "https://blob.vercel-storage.com"

	uploadTimeout = 30 * time.Second
	deleteTimeout = 10 * time.Second
)

// VercelBlob talks to Vercel Blob Storage over its REST API. Uploads get a
// random suffix appended by the service so repeated filenames never collide;
// the URL in the response is the canonical reference.
type VercelBlob struct {
	token  string
	apiURL string
	client *http.Client
}

func NewVercelBlob(token string) *VercelBlob {
	return &VercelBlob{
		token:  token,
		apiURL: defaultAPIURL,
		client: http.DefaultClient,
	}
}

// NewVercelBlobWithURL points the client at a non-default API endpoint.
func NewVercelBlobWithURL(token, apiURL string) *VercelBlob {
	return &VercelBlob{
		token:  token,
		apiURL: strings.TrimSuffix(apiURL, "/"),
		client: http.DefaultClient,
	}
}

func (v *VercelBlob) Upload(ctx context.Context, pathname string, data []byte, contentType string) (string, error) {
	if contentType == "" {
		contentType = mime.TypeByExtension(path.Ext(pathname))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, v.apiURL+"/"+pathname, bytes.NewReader(data))
	if err != nil {
		return "", &Error{Op: "upload", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+v.token)
	req.Header.Set("x-content-type", contentType)
	req.Header.Set("x-add-random-suffix", "1")

	resp, err := v.client.Do(req)
	if err != nil {
		return "", &Error{Op: "upload", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &Error{Op: "upload", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var result struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &Error{Op: "upload", Err: err}
	}
	if result.URL == "" {
		return "", &Error{Op: "upload", Err: fmt.Errorf("no url in response")}
	}

	return result.URL, nil
}

// Delete issues a DELETE against the blob URL itself. 404 counts as success:
// the blob being gone is the desired end state.
func (v *VercelBlob) Delete(ctx context.Context, url string) error {
	if !strings.HasPrefix(url, "http") {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, deleteTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return &Error{Op: "delete", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+v.token)

	resp, err := v.client.Do(req)
	if err != nil {
		return &Error{Op: "delete", Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent, http.StatusNotFound:
		return nil
	}
	return &Error{Op: "delete", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
}
