package gcs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// UploadResult describes one stored object. PublicID is the object key and is
// what image rows persist; URL is the public media link.
type UploadResult struct {
	PublicID string
	URL      string
	Name     string
}

// UploadObject writes the payload under the given object key in the default
// bucket and returns the stored reference.
func (c *Client) UploadObject(ctx context.Context, key, contentType string, payload []byte) (*UploadResult, error) {
	if c == nil || c.tokenSource == nil {
		return nil, fmt.Errorf("gcs client not initialized")
	}
	if key == "" {
		return nil, fmt.Errorf("object key required")
	}

	token, err := c.tokenSource.Token(ctx)
	if err != nil {
		return nil, err
	}

	u := fmt.Sprintf(
		"https://storage.googleapis.com/upload/storage/v1/b/%s/o?uploadType=media&name=%s",
		url.PathEscape(c.defaultBucket),
		url.QueryEscape(key),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("uploading object %s: %w", key, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("gcs upload failed for %s: %s: %s", key, resp.Status, strings.TrimSpace(string(b)))
	}

	return &UploadResult{
		PublicID: key,
		URL:      c.ObjectURL(key),
		Name:     baseName(key),
	}, nil
}

// DeleteObject removes the object with the given key. A missing object is not
// an error so deletes stay idempotent.
func (c *Client) DeleteObject(ctx context.Context, key string) error {
	if c == nil || c.tokenSource == nil {
		return fmt.Errorf("gcs client not initialized")
	}
	if key == "" {
		return fmt.Errorf("object key required")
	}

	token, err := c.tokenSource.Token(ctx)
	if err != nil {
		return err
	}

	u := fmt.Sprintf(
		"https://storage.googleapis.com/storage/v1/b/%s/o/%s",
		url.PathEscape(c.defaultBucket),
		url.PathEscape(key),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("deleting object %s: %w", key, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusNotFound {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("gcs delete failed for %s: %s: %s", key, resp.Status, strings.TrimSpace(string(b)))
	}

	return nil
}

// ObjectURL returns the public URL for an object key.
func (c *Client) ObjectURL(key string) string {
	host := c.publicHost
	if host == "" {
		host = "https://storage.googleapis.com"
	}
	return fmt.Sprintf("%s/%s/%s", host, c.defaultBucket, key)
}

func baseName(key string) string {
	if idx := strings.LastIndex(key, "/"); idx >= 0 {
		return key[idx+1:]
	}
	return key
}
