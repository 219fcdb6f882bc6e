package gateway

import (
	"context"
	"crypto/ecdh"
	"crypto/rand"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zkgateway/gateway-client/internal/envelope"
	"github.com/zkgateway/gateway-client/internal/ticket"
)

func mustGatewayPublicKey(t *testing.T) *envelope.GatewayPublicKey {
	t.Helper()
	priv, err := ecdh.X25519().GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	gw, err := envelope.NewGatewayPublicKey(priv.PublicKey().Bytes())
	if err != nil {
		t.Fatalf("NewGatewayPublicKey: %v", err)
	}
	return gw
}

func TestNew_RequiresGatewayURL(t *testing.T) {
	_, err := New(Config{PublicKey: mustGatewayPublicKey(t)}, ticket.NewDummySource())
	if err == nil {
		t.Fatalf("expected error for missing GatewayURL")
	}
}

func TestNew_RequiresPublicKey(t *testing.T) {
	_, err := New(Config{GatewayURL: "https://gw.example.com"}, ticket.NewDummySource())
	if err == nil {
		t.Fatalf("expected error for missing PublicKey")
	}
}

func TestNew_RequiresTicketSource(t *testing.T) {
	_, err := New(Config{GatewayURL: "https://gw.example.com", PublicKey: mustGatewayPublicKey(t)}, nil)
	if err == nil {
		t.Fatalf("expected error for missing ticket source")
	}
}

func TestClient_send_SetsHeadersAndReturnsStatus(t *testing.T) {
	var gotAuth, gotExtra string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("authorization")
		gotExtra = r.Header.Get("x-trace-id")
		w.WriteHeader(http.StatusTeapot)
		_ = json.NewEncoder(w).Encode(envelope.Envelope{
			V:             1,
			TokenClass:    "c256",
			EphPubKeyB64:  "AA==",
			NonceB64:      "BB==",
			CiphertextB64: "CC==",
		})
	}))
	defer srv.Close()

	client, err := New(Config{
		GatewayURL:   srv.URL,
		PublicKey:    mustGatewayPublicKey(t),
		BearerToken:  "tok-123",
		ExtraHeaders: map[string]string{"x-trace-id": "abc"},
	}, ticket.NewDummySource())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	env := &envelope.Envelope{V: 1, TokenClass: "c256", EphPubKeyB64: "x", NonceB64: "y", CiphertextB64: "z"}
	respEnv, status, err := client.send(context.Background(), env)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if status != http.StatusTeapot {
		t.Fatalf("status = %d, want %d", status, http.StatusTeapot)
	}
	if respEnv.TokenClass != "c256" {
		t.Fatalf("unexpected response envelope: %+v", respEnv)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("authorization header = %q", gotAuth)
	}
	if gotExtra != "abc" {
		t.Fatalf("x-trace-id header = %q", gotExtra)
	}
}

func TestClient_send_PropagatesConnectionFailure(t *testing.T) {
	client, err := New(Config{
		GatewayURL: "http://127.0.0.1:1",
		PublicKey:  mustGatewayPublicKey(t),
	}, ticket.NewDummySource())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	env := &envelope.Envelope{V: 1, TokenClass: "c256", EphPubKeyB64: "x", NonceB64: "y", CiphertextB64: "z"}
	if _, _, err := client.send(context.Background(), env); err == nil {
		t.Fatalf("expected a connection error")
	}
}
