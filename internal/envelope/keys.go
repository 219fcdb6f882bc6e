package envelope

import (
	"bytes"
	"crypto/ecdh"
	"crypto/rand"
	"encoding/base64"

	"github.com/zkgateway/gateway-client/internal/gwerr"
)

// x25519SPKIPrefix is the fixed DER header prefixed to a raw 32-byte X25519
// public key to form a SPKI-wrapped key. Only used at wrap/unwrap
// use-sites; the gateway public key itself is stored raw.
var x25519SPKIPrefix = []byte{0x30, 0x2a, 0x30, 0x05, 0x06, 0x03, 0x2b, 0x65, 0x6e, 0x03, 0x21, 0x00}

// GatewayPublicKey holds the gateway's static X25519 public key, stored as
// its raw 32 bytes.
type GatewayPublicKey struct {
	raw [32]byte
	key *ecdh.PublicKey
}

// NewGatewayPublicKeyFromBase64 decodes exactly 32 raw bytes.
func NewGatewayPublicKeyFromBase64(b64 string) (*GatewayPublicKey, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, &gwerr.Base64Error{Field: "gateway_public_key", Err: err}
	}
	return NewGatewayPublicKey(raw)
}

// NewGatewayPublicKey builds a GatewayPublicKey from exactly 32 raw bytes.
func NewGatewayPublicKey(raw []byte) (*GatewayPublicKey, error) {
	if len(raw) != 32 {
		return nil, &gwerr.InvalidGatewayPublicKeyError{Reason: "expected 32 raw bytes"}
	}
	key, err := ecdh.X25519().NewPublicKey(raw)
	if err != nil {
		return nil, &gwerr.InvalidGatewayPublicKeyError{Reason: err.Error()}
	}
	gpk := &GatewayPublicKey{key: key}
	copy(gpk.raw[:], raw)
	return gpk, nil
}

// Raw returns the 32 raw bytes of the gateway's public key.
func (g *GatewayPublicKey) Raw() []byte {
	out := make([]byte, 32)
	copy(out, g.raw[:])
	return out
}

// SPKI wraps the raw key into X25519 SPKI DER form by prefixing the fixed
// header. This is an implementation detail never sent on the wire by this
// client; it exists for interop with tooling that expects SPKI-encoded
// X25519 keys.
func (g *GatewayPublicKey) SPKI() []byte {
	out := make([]byte, 0, len(x25519SPKIPrefix)+32)
	out = append(out, x25519SPKIPrefix...)
	out = append(out, g.raw[:]...)
	return out
}

// GatewayPublicKeyFromSPKI strips and verifies the fixed SPKI prefix,
// returning the unwrapped raw key.
func GatewayPublicKeyFromSPKI(spki []byte) (*GatewayPublicKey, error) {
	if len(spki) != len(x25519SPKIPrefix)+32 {
		return nil, &gwerr.InvalidGatewayPublicKeyError{Reason: "unexpected SPKI length"}
	}
	prefix, raw := spki[:len(x25519SPKIPrefix)], spki[len(x25519SPKIPrefix):]
	if !bytes.Equal(prefix, x25519SPKIPrefix) {
		return nil, &gwerr.InvalidGatewayPublicKeyError{Reason: "unexpected SPKI prefix"}
	}
	return NewGatewayPublicKey(raw)
}

// ephemeralKeyPair is a freshly generated X25519 keypair used for exactly
// one request/response exchange.
type ephemeralKeyPair struct {
	priv *ecdh.PrivateKey
	pub  [32]byte
}

func generateEphemeralKeyPair() (*ephemeralKeyPair, error) {
	priv, err := ecdh.X25519().GenerateKey(rand.Reader)
	if err != nil {
		return nil, &gwerr.CryptoError{Reason: "ephemeral key generation failed"}
	}
	kp := &ephemeralKeyPair{priv: priv}
	copy(kp.pub[:], priv.PublicKey().Bytes())
	return kp, nil
}

// sharedSecret computes the X25519 ECDH shared secret between this
// ephemeral private key and the gateway's static public key.
func (kp *ephemeralKeyPair) sharedSecret(gw *GatewayPublicKey) ([32]byte, error) {
	var out [32]byte
	shared, err := kp.priv.ECDH(gw.key)
	if err != nil {
		return out, &gwerr.CryptoError{Reason: "x25519 ecdh failed"}
	}
	if len(shared) != 32 {
		return out, &gwerr.CryptoError{Reason: "unexpected shared secret length"}
	}
	copy(out[:], shared)
	return out, nil
}

// zeroize overwrites sensitive key material and keeps the slice alive
// through the call so the compiler does not elide the stores.
func zeroize(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
	keepAlive(buf)
}

func zeroize32(buf *[32]byte) {
	for i := range buf {
		buf[i] = 0
	}
	keepAlive(buf[:])
}
