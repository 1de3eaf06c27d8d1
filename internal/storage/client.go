package storage

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/spec-kit/resort-admin-service/internal/config"
)

// ObjectRemover deletes objects from the hosted storage service. The room
// deletion workflow treats these calls as best-effort.
type ObjectRemover interface {
	RemoveObject(ctx context.Context, bucket, key string) error
}

// Client talks to the storage REST API with the server-only service key.
type Client struct {
	http *resty.Client
}

// NewClient builds a storage client from configuration.
func NewClient(cfg config.StorageConfig) *Client {
	http := resty.New().
		SetBaseURL(cfg.URL).
		SetTimeout(cfg.RequestTimeout).
		SetHeader("Authorization", "Bearer "+cfg.ServiceKey).
		SetHeader("apikey", cfg.ServiceKey)
	return &Client{http: http}
}

// RemoveObject deletes a single object. A 404 from the storage service is
// treated as success since the object is already gone.
func (c *Client) RemoveObject(ctx context.Context, bucket, key string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/object/%s/%s", bucket, key))
	if err != nil {
		return err
	}
	if resp.IsError() && resp.StatusCode() != 404 {
		return fmt.Errorf("storage delete %s/%s: status %d", bucket, key, resp.StatusCode())
	}
	return nil
}

var _ ObjectRemover = (*Client)(nil)
