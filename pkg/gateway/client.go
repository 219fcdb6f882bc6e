// Package gateway is the request orchestrator: it assembles the plaintext
// payload, drives seal -> transport -> open, and maps the decrypted reply
// into a typed result or a typed error. It is the public entry point to
// the envelope protocol core.
package gateway

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/zkgateway/gateway-client/internal/envelope"
	"github.com/zkgateway/gateway-client/internal/gwerr"
	"github.com/zkgateway/gateway-client/internal/sizeclass"
	"github.com/zkgateway/gateway-client/internal/ticket"
	"go.uber.org/zap"
)

// Client drives one-request-at-a-time calls against a gateway using a
// pluggable ticket source. A single Client may be used concurrently by
// multiple callers provided the supplied ticket.Source and http.Client are
// themselves safe for concurrent use; the core holds no shared mutable
// state beyond per-call seal state.
type Client struct {
	cfg          Config
	ticketSource ticket.Source
}

// New constructs a Client. ticketSource may be ticket.NewDummySource() for
// development, a *ticket.FilePool, or any other ticket.Source
// implementation.
func New(cfg Config, ticketSource ticket.Source) (*Client, error) {
	if cfg.GatewayURL == "" {
		return nil, fmt.Errorf("gateway: GatewayURL is required")
	}
	if cfg.PublicKey == nil {
		return nil, fmt.Errorf("gateway: PublicKey is required")
	}
	if ticketSource == nil {
		return nil, fmt.Errorf("gateway: ticketSource is required")
	}
	return &Client{cfg: cfg.withDefaults(), ticketSource: ticketSource}, nil
}

// Infer pulls a ticket from the configured ticket source for class,
// assembles the plaintext request payload, seals it, submits it, and
// opens the reply.
func (c *Client) Infer(ctx context.Context, class sizeclass.Class, upstreamPayload any) (any, error) {
	if !class.Valid() {
		return nil, &gwerr.InvalidTokenClassError{Input: class.String()}
	}
	tk, err := c.ticketSource.NextTicket(ctx, class)
	if err != nil {
		return nil, err
	}
	return c.inferWithTicket(ctx, class, tk, upstreamPayload)
}

// InferWithTicket is the same call path using a caller-supplied ticket
// instead of pulling one from the configured source.
func (c *Client) InferWithTicket(ctx context.Context, class sizeclass.Class, tk *ticket.Ticket, upstreamPayload any) (any, error) {
	if !class.Valid() {
		return nil, &gwerr.InvalidTokenClassError{Input: class.String()}
	}
	if tk.TokenClass != class.Name() {
		return nil, &gwerr.ProtocolError{Reason: "ticket token_class does not match requested class"}
	}
	return c.inferWithTicket(ctx, class, tk, upstreamPayload)
}

func (c *Client) inferWithTicket(ctx context.Context, class sizeclass.Class, tk *ticket.Ticket, upstreamPayload any) (any, error) {
	logger := c.cfg.Logger.With(zap.String("token_class", class.Name()))

	chatBody, err := coerceUpstreamPayload(upstreamPayload)
	if err != nil {
		return nil, err
	}

	requestID, err := newRequestID()
	if err != nil {
		return nil, err
	}
	logger = logger.With(zap.String("request_id", requestID))

	if c.cfg.SignRequests && c.cfg.ClientKeys != nil {
		sig, err := c.cfg.ClientKeys.SignRequestID(requestID)
		if err != nil {
			logger.Warn("request signing failed", zap.Error(err))
		} else {
			logger.Info("signed request_id for audit log",
				zap.String("signer_address", c.cfg.ClientKeys.Address),
				zap.String("signature", base64.StdEncoding.EncodeToString(sig)))
		}
	}

	plaintext := buildRequestPayload(requestID, class, chatBody, tk)

	env, state, err := envelope.Seal(c.cfg.PublicKey, class, plaintext)
	if err != nil {
		logger.Error("seal failed", zap.Error(err))
		return nil, err
	}
	defer state.Drop()

	callCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	respEnv, status, err := c.send(callCtx, env)
	if err != nil {
		if callCtx.Err() != nil {
			return nil, &gwerr.CancelledError{Reason: callCtx.Err().Error()}
		}
		logger.Error("transport failed", zap.Error(err))
		return nil, err
	}

	var decrypted map[string]any
	if err := envelope.Open(state, respEnv, &decrypted); err != nil {
		logger.Error("open failed", zap.Error(err))
		return nil, err
	}

	result, err := interpretReply(decrypted, status)
	if err != nil {
		logger.Warn("gateway reply interpreted as error", zap.Error(err))
		return nil, err
	}
	logger.Info("infer succeeded")
	return result, nil
}
