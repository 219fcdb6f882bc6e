package gateway

import (
	"errors"
	"testing"

	"github.com/zkgateway/gateway-client/internal/gwerr"
)

func TestInterpretReply_OKTakesPriorityOverHTTPStatus(t *testing.T) {
	decrypted := map[string]any{"kind": "ok", "response": map[string]any{"output": "hi"}}
	result, err := interpretReply(decrypted, 500)
	if err != nil {
		t.Fatalf("interpretReply: %v", err)
	}
	if result == nil {
		t.Fatalf("expected a response")
	}
}

func TestInterpretReply_StructuredErrorTakesPriorityOverHTTPStatus(t *testing.T) {
	decrypted := map[string]any{"kind": "err", "error": map[string]any{"code": "rate_limited", "message": "slow down"}}
	_, err := interpretReply(decrypted, 500)

	var gatewayErr *gwerr.GatewayError
	if !errors.As(err, &gatewayErr) {
		t.Fatalf("expected GatewayError, got %v (%T)", err, err)
	}
	if gatewayErr.Code != "rate_limited" {
		t.Fatalf("Code = %q, want rate_limited", gatewayErr.Code)
	}
}

func TestInterpretReply_LegacyErrorFieldWithoutKind(t *testing.T) {
	decrypted := map[string]any{"error": map[string]any{"code": "bad_request"}}
	_, err := interpretReply(decrypted, 200)

	var gatewayErr *gwerr.GatewayError
	if !errors.As(err, &gatewayErr) {
		t.Fatalf("expected GatewayError, got %v (%T)", err, err)
	}
}

func TestInterpretReply_HTTPStatusWithoutStructuredError(t *testing.T) {
	decrypted := map[string]any{}
	_, err := interpretReply(decrypted, 500)

	var httpErr *gwerr.HttpError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HttpError, got %v (%T)", err, err)
	}
	if httpErr.StatusCode != 500 {
		t.Fatalf("StatusCode = %d, want 500", httpErr.StatusCode)
	}
}

func TestInterpretReply_LegacyUpstreamFallback(t *testing.T) {
	decrypted := map[string]any{"upstream": map[string]any{"ok": true}}
	result, err := interpretReply(decrypted, 200)
	if err != nil {
		t.Fatalf("interpretReply: %v", err)
	}
	m, ok := result.(map[string]any)
	if !ok || m["ok"] != true {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestInterpretReply_MissingRecognizedShapeIsProtocolError(t *testing.T) {
	_, err := interpretReply(map[string]any{}, 200)

	var protoErr *gwerr.ProtocolError
	if !errors.As(err, &protoErr) {
		t.Fatalf("expected ProtocolError, got %v (%T)", err, err)
	}
}
