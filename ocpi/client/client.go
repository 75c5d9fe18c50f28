package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const requestTimeout = 5 * time.Second

// Client pushes JSON payloads to one receiver's roaming endpoint.
// Retry pacing is owned by the caller; every call here is a single
// attempt.
type Client struct {
	client *http.Client
	url    string
	token  string
}

func New(url, token string) *Client {
	return &Client{
		url:    url,
		token:  token,
		client: &http.Client{},
	}
}

func (c *Client) Post(ctx context.Context, endpoint string, data interface{}) error {
	body, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshalling body: %w", err)
	}
	_, err = c.doRequest(ctx, http.MethodPost, endpoint, body)
	return err
}

func (c *Client) Put(ctx context.Context, endpoint string, data interface{}) error {
	body, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshalling body: %w", err)
	}
	_, err = c.doRequest(ctx, http.MethodPut, endpoint, body)
	return err
}

func (c *Client) doRequest(ctx context.Context, method, endpoint string, body []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	url := fmt.Sprintf("%v%v", c.url, endpoint)

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Token "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("received non-2xx status code: %d", resp.StatusCode)
	}

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}
