package gateway

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/zkgateway/gateway-client/internal/gwerr"
	"github.com/zkgateway/gateway-client/internal/sizeclass"
)

// coerceUpstreamPayload accepts either a chat-style object ({model,
// messages, ...}) directly, or a transport-envelope-style object
// ({path: "/v1/chat/completions", body: {...}}), and returns the chat body
// as a generic map. Any other shape is a ProtocolError.
func coerceUpstreamPayload(upstream any) (map[string]any, error) {
	raw, err := json.Marshal(upstream)
	if err != nil {
		return nil, &gwerr.ProtocolError{Reason: "upstream payload is not JSON-marshalable: " + err.Error()}
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, &gwerr.ProtocolError{Reason: "upstream payload must be a JSON object"}
	}

	if body, ok := obj["body"]; ok {
		if _, hasPath := obj["path"]; hasPath {
			bodyObj, ok := body.(map[string]any)
			if !ok {
				return nil, &gwerr.ProtocolError{Reason: "transport-envelope-style payload's body must be an object"}
			}
			return bodyObj, nil
		}
	}

	if _, hasModel := obj["model"]; hasModel {
		return obj, nil
	}
	return nil, &gwerr.ProtocolError{Reason: "upstream payload is neither chat-shaped nor transport-envelope-shaped"}
}

// buildRequestPayload assembles the plaintext object the envelope core
// seals: {request_id, model, messages, max_tokens, temperature,
// token_class, ticket}.
func buildRequestPayload(requestID string, class sizeclass.Class, chatBody map[string]any, ticketObj any) map[string]any {
	out := map[string]any{
		"request_id": requestID,
		"token_class": class.Name(),
		"ticket":      ticketObj,
	}
	for _, key := range []string{"model", "messages", "max_tokens", "temperature"} {
		if v, ok := chatBody[key]; ok {
			out[key] = v
		}
	}
	if _, ok := out["max_tokens"]; !ok {
		out["max_tokens"] = class.MaxOutputTokensHint()
	}
	return out
}

// newRequestID returns a freshly generated random 128-bit identifier
// rendered canonically (RFC 4122 UUID string form).
func newRequestID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", &gwerr.CryptoError{Reason: "request id generation failed"}
	}
	return id.String(), nil
}
