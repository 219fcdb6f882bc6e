// Package envelope implements the hybrid-encryption envelope protocol core:
// ephemeral X25519 key agreement, a direction-separated HKDF key schedule,
// ChaCha20-Poly1305 sealing, and the wire envelope's JSON (de)serialization.
//
// The wire format, AAD, and HKDF inputs are bit-exact with peer
// implementations in other languages; do not change field names or byte
// layouts here without a protocol version bump.
package envelope

import (
	"encoding/json"

	"github.com/zkgateway/gateway-client/internal/gwerr"
)

// ProtocolVersion is the only version this client speaks.
const ProtocolVersion = 1

// Direction distinguishes client->gateway and gateway->client AEAD keys and
// AAD tuples. The values are wire-significant.
type Direction byte

const (
	DirRequest  Direction = 1
	DirResponse Direction = 2
)

// Envelope is the wire object carried in both directions.
type Envelope struct {
	V             int    `json:"v"`
	TokenClass    string `json:"token_class"`
	EphPubKeyB64  string `json:"eph_pubkey_b64"`
	NonceB64      string `json:"nonce_b64"`
	CiphertextB64 string `json:"ciphertext_b64"`
}

// wireAlias mirrors the tolerant aliases a peer implementation may use on
// parse: "kem_pub_b64" for the ephemeral key field and "version" for "v".
// Emission always uses the canonical names in Envelope.
type wireAlias struct {
	V             *int    `json:"v"`
	Version       *int    `json:"version"`
	TokenClass    string  `json:"token_class"`
	EphPubKeyB64  string  `json:"eph_pubkey_b64"`
	KemPubB64     string  `json:"kem_pub_b64"`
	NonceB64      string  `json:"nonce_b64"`
	CiphertextB64 string  `json:"ciphertext_b64"`
}

// MarshalJSON emits the canonical field spelling.
func (e Envelope) MarshalJSON() ([]byte, error) {
	type canonical struct {
		V             int    `json:"v"`
		TokenClass    string `json:"token_class"`
		EphPubKeyB64  string `json:"eph_pubkey_b64"`
		NonceB64      string `json:"nonce_b64"`
		CiphertextB64 string `json:"ciphertext_b64"`
	}
	return json.Marshal(canonical{
		V:             e.V,
		TokenClass:    e.TokenClass,
		EphPubKeyB64:  e.EphPubKeyB64,
		NonceB64:      e.NonceB64,
		CiphertextB64: e.CiphertextB64,
	})
}

// UnmarshalJSON accepts both the canonical spelling and the tolerant
// aliases ("kem_pub_b64", "version").
func (e *Envelope) UnmarshalJSON(data []byte) error {
	var alias wireAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return &gwerr.ProtocolError{Reason: "malformed envelope JSON: " + err.Error()}
	}

	switch {
	case alias.V != nil:
		e.V = *alias.V
	case alias.Version != nil:
		e.V = *alias.Version
	default:
		e.V = 0
	}

	e.TokenClass = alias.TokenClass
	e.NonceB64 = alias.NonceB64
	e.CiphertextB64 = alias.CiphertextB64

	if alias.EphPubKeyB64 != "" {
		e.EphPubKeyB64 = alias.EphPubKeyB64
	} else {
		e.EphPubKeyB64 = alias.KemPubB64
	}
	return nil
}
