// internal/common/http/client.go
package http

import (
	"net/http"
	"time"
)

// Client is the shared timeout-bound HTTP client all scope managers and
// the geo reference client issue requests through. Callers carry their
// own deadline by building requests with http.NewRequestWithContext.
type Client struct {
	httpClient *http.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}
