package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/zkgateway/gateway-client/internal/gwerr"
	"github.com/zkgateway/gateway-client/internal/sizeclass"
	"go.uber.org/zap"
)

const (
	retryInitialInterval = 500 * time.Millisecond
	retryMaxInterval     = 5 * time.Second
	retryMultiplier      = 1.5
	retryMaxElapsedTime  = 2 * time.Minute
)

// InferWithRetry retries Infer across transient transport failures (HTTP
// 5xx, connection errors) with exponential backoff. A structured gateway
// error, a protocol error, or a crypto error is never retried since
// retrying would not change the outcome. Because tickets are single-use,
// a fresh ticket is pulled from the configured ticket source on every
// attempt, including retries.
func (c *Client) InferWithRetry(ctx context.Context, class sizeclass.Class, upstreamPayload any) (any, error) {
	attempts := 0
	operation := func() (any, error) {
		attempts++
		result, err := c.Infer(ctx, class, upstreamPayload)
		if err == nil {
			return result, nil
		}
		if !isRetryable(err) {
			return nil, backoff.Permanent(err)
		}
		c.cfg.Logger.Warn("retrying inference", zap.Int("attempt", attempts), zap.Error(err))
		return nil, err
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = retryInitialInterval
	exp.MaxInterval = retryMaxInterval
	exp.Multiplier = retryMultiplier

	return backoff.Retry(ctx, operation, backoff.WithBackOff(exp), backoff.WithMaxElapsedTime(retryMaxElapsedTime))
}

// isRetryable reports whether err represents a transient transport failure
// worth retrying. A structured gateway error, a protocol error, or a
// crypto error is never retryable: the gateway has spoken, or the envelope
// itself is malformed, and a retry would reach the same outcome.
func isRetryable(err error) bool {
	var gatewayErr *gwerr.GatewayError
	var protoErr *gwerr.ProtocolError
	var cryptoErr *gwerr.CryptoError
	if errors.As(err, &gatewayErr) || errors.As(err, &protoErr) || errors.As(err, &cryptoErr) {
		return false
	}

	var httpErr *gwerr.HttpError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= 500
	}

	// Any other transport-layer failure (connection refused, DNS, timeout)
	// is retried.
	return true
}
