package envelope

import (
	"crypto/ecdh"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/zkgateway/gateway-client/internal/padding"
	"github.com/zkgateway/gateway-client/internal/sizeclass"
)

func mustMarshal(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	return b
}

func padFrame(payload []byte, target int) ([]byte, error) {
	return padding.Pad(payload, target)
}

func mustGatewayKeyPair(t *testing.T) (*ecdh.PrivateKey, *GatewayPublicKey) {
	t.Helper()
	priv, err := ecdh.X25519().GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	gw, err := NewGatewayPublicKey(priv.PublicKey().Bytes())
	if err != nil {
		t.Fatalf("NewGatewayPublicKey: %v", err)
	}
	return priv, gw
}

type testPayload struct {
	Hello string `json:"hello"`
	N     int    `json:"n"`
}

func TestSeal_ProducesWellFormedEnvelope(t *testing.T) {
	_, gw := mustGatewayKeyPair(t)
	env, state, err := Seal(gw, sizeclass.C1024, testPayload{Hello: "world", N: 123})
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	defer state.Drop()

	if env.V != 1 {
		t.Fatalf("V = %d, want 1", env.V)
	}
	if env.TokenClass != "c1024" {
		t.Fatalf("TokenClass = %q, want c1024", env.TokenClass)
	}
	for _, f := range []string{env.EphPubKeyB64, env.NonceB64, env.CiphertextB64} {
		if f == "" {
			t.Fatalf("expected all base64 fields to be populated")
		}
	}
	ct, err := base64.StdEncoding.DecodeString(env.CiphertextB64)
	if err != nil {
		t.Fatalf("decode ciphertext: %v", err)
	}
	want := sizeclass.C1024.RequestPaddedLen() + 16
	if len(ct) != want {
		t.Fatalf("ciphertext length = %d, want %d", len(ct), want)
	}
}

func TestSealOpen_RoundTrip_AllClasses(t *testing.T) {
	_, gw := mustGatewayKeyPair(t)
	for _, class := range sizeclass.All() {
		env, state, err := Seal(gw, class, testPayload{Hello: "world", N: 123})
		if err != nil {
			t.Fatalf("Seal(%v): %v", class, err)
		}

		var got testPayload
		if err := Open(state, env, &got); err != nil {
			t.Fatalf("Open self-sealed (%v): %v", class, err)
		}
		if got.Hello != "world" || got.N != 123 {
			t.Fatalf("roundtrip mismatch: %+v", got)
		}
		state.Drop()
	}
}

// buildResponseEnvelope simulates the gateway's reply: encrypts payload
// under the seal state's K_resp with AAD (1, id, 2) and a fresh 12-byte
// nonce, echoing the seal state's ephemeral public key unless overridden.
func buildResponseEnvelope(t *testing.T, state *SealState, payload any, ephOverride *[32]byte) *Envelope {
	t.Helper()
	plain := mustMarshal(t, payload)
	frame, err := padFrame(plain, state.class.ResponsePaddedLen())
	if err != nil {
		t.Fatalf("pad: %v", err)
	}
	nonce, ct, err := aeadSeal(state.keys.resp, frame, aad(state.class, DirResponse))
	if err != nil {
		t.Fatalf("aeadSeal: %v", err)
	}
	eph := state.ephPubKey
	if ephOverride != nil {
		eph = *ephOverride
	}
	return &Envelope{
		V:             ProtocolVersion,
		TokenClass:    state.class.Name(),
		EphPubKeyB64:  base64.StdEncoding.EncodeToString(eph[:]),
		NonceB64:      base64.StdEncoding.EncodeToString(nonce),
		CiphertextB64: base64.StdEncoding.EncodeToString(ct),
	}
}

func TestOpen_ResponseShapedRoundTrip(t *testing.T) {
	_, gw := mustGatewayKeyPair(t)
	env, state, err := Seal(gw, sizeclass.C1024, testPayload{Hello: "world", N: 1})
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	_ = env

	respEnv := buildResponseEnvelope(t, state, map[string]any{"upstream": map[string]any{"ok": true}}, nil)

	var got map[string]any
	if err := Open(state, respEnv, &got); err != nil {
		t.Fatalf("Open: %v", err)
	}
	upstream, ok := got["upstream"].(map[string]any)
	if !ok || upstream["ok"] != true {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestOpen_EchoedEphemeralBinding(t *testing.T) {
	_, gw := mustGatewayKeyPair(t)
	_, state, err := Seal(gw, sizeclass.C1024, testPayload{Hello: "x"})
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	var otherEph [32]byte
	if _, err := rand.Read(otherEph[:]); err != nil {
		t.Fatalf("rand: %v", err)
	}
	respEnv := buildResponseEnvelope(t, state, map[string]any{"ok": true}, &otherEph)

	var got map[string]any
	if err := Open(state, respEnv, &got); err == nil {
		t.Fatalf("expected CryptoError on mismatched echoed ephemeral key")
	}
}

func TestOpen_ClassBinding(t *testing.T) {
	_, gw := mustGatewayKeyPair(t)
	_, state, err := Seal(gw, sizeclass.C1024, testPayload{Hello: "x"})
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	respEnv := buildResponseEnvelope(t, state, map[string]any{"ok": true}, nil)
	respEnv.TokenClass = "c2048"

	var got map[string]any
	if err := Open(state, respEnv, &got); err == nil {
		t.Fatalf("expected CryptoError on class mismatch")
	}
}

func TestOpen_VersionBinding(t *testing.T) {
	_, gw := mustGatewayKeyPair(t)
	_, state, err := Seal(gw, sizeclass.C1024, testPayload{Hello: "x"})
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	respEnv := buildResponseEnvelope(t, state, map[string]any{"ok": true}, nil)
	respEnv.V = 2

	var got map[string]any
	if err := Open(state, respEnv, &got); err == nil {
		t.Fatalf("expected CryptoError on version mismatch")
	}
}

func TestOpen_AADBinding_FlippedDirectionByte(t *testing.T) {
	_, gw := mustGatewayKeyPair(t)
	_, state, err := Seal(gw, sizeclass.C1024, testPayload{Hello: "x"})
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	plain := mustMarshal(t, map[string]any{"ok": true})
	frame, err := padFrame(plain, state.class.ResponsePaddedLen())
	if err != nil {
		t.Fatalf("pad: %v", err)
	}
	// Flip a bit in the direction byte of the AAD tuple built by aad() to
	// simulate a tampered direction byte.
	tamperedAAD := aad(state.class, DirResponse)
	tamperedAAD[2] ^= 0x01
	nonce, ct, err := aeadSeal(state.keys.resp, frame, tamperedAAD)
	if err != nil {
		t.Fatalf("aeadSeal: %v", err)
	}
	respEnv := &Envelope{
		V:             ProtocolVersion,
		TokenClass:    state.class.Name(),
		EphPubKeyB64:  base64.StdEncoding.EncodeToString(state.ephPubKey[:]),
		NonceB64:      base64.StdEncoding.EncodeToString(nonce),
		CiphertextB64: base64.StdEncoding.EncodeToString(ct),
	}

	var got map[string]any
	if err := Open(state, respEnv, &got); err == nil {
		t.Fatalf("expected CryptoError on AAD tampering")
	}
}

func TestEnvelope_AliasDecoding(t *testing.T) {
	raw := []byte(`{"version":1,"token_class":"c256","kem_pub_b64":"AA==","nonce_b64":"BB==","ciphertext_b64":"CC=="}`)
	var env Envelope
	if err := env.UnmarshalJSON(raw); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if env.V != 1 || env.EphPubKeyB64 != "AA==" {
		t.Fatalf("alias decode failed: %+v", env)
	}
}
