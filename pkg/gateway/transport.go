package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/zkgateway/gateway-client/internal/envelope"
)

// send POSTs the sealed envelope to the configured gateway path and
// decodes the reply envelope. The caller is responsible for translating a
// context deadline into a CancelledError; send returns the raw transport
// error otherwise.
func (c *Client) send(ctx context.Context, env *envelope.Envelope) (*envelope.Envelope, int, error) {
	body, err := json.Marshal(env)
	if err != nil {
		return nil, 0, fmt.Errorf("gateway: marshal request envelope: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.GatewayURL+c.cfg.Path, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("gateway: build request: %w", err)
	}
	req.Header.Set("content-type", "application/json")
	req.Header.Set("accept", "application/json")
	if c.cfg.BearerToken != "" {
		req.Header.Set("authorization", "Bearer "+c.cfg.BearerToken)
	}
	for k, v := range c.cfg.ExtraHeaders {
		req.Header.Set(k, v)
	}

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("gateway: read response body: %w", err)
	}

	var respEnv envelope.Envelope
	if err := json.Unmarshal(respBody, &respEnv); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("gateway: decode response envelope: %w", err)
	}
	return &respEnv, resp.StatusCode, nil
}
