package delivery

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const maxErrorBody = 512

// HTTPSender POSTs the raw payload to a URL
type HTTPSender struct {
	url    string
	token  string
	client *http.Client
}

// NewHTTPSender creates an HTTP sender. A nil client uses http.DefaultClient.
func NewHTTPSender(url, token string, client *http.Client) (*HTTPSender, error) {
	if url == "" {
		return nil, ErrMissingURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSender{url: url, token: token, client: client}, nil
}

func (h *HTTPSender) Send(ctx context.Context, _ map[string]interface{}, raw []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post payload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	io.Copy(io.Discard, resp.Body)
	return nil
}
