package envelope

import (
	"encoding/base64"
	"encoding/json"

	"github.com/zkgateway/gateway-client/internal/gwerr"
	"github.com/zkgateway/gateway-client/internal/padding"
	"github.com/zkgateway/gateway-client/internal/sizeclass"
)

// Seal serializes payload to JSON, pads it to the request padded length
// for class, generates a fresh ephemeral X25519 keypair, derives the
// direction-separated keys against the gateway's static public key, and
// AEAD-encrypts the padded frame under K_req. It returns the wire
// envelope and the seal state retained for Open.
func Seal(gw *GatewayPublicKey, class sizeclass.Class, payload any) (*Envelope, *SealState, error) {
	if !class.Valid() {
		return nil, nil, &gwerr.InvalidTokenClassError{Input: class.String()}
	}

	plain, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, &gwerr.ProtocolError{Reason: "payload marshal failed: " + err.Error()}
	}

	frame, err := padding.Pad(plain, class.RequestPaddedLen())
	if err != nil {
		return nil, nil, err
	}

	kp, err := generateEphemeralKeyPair()
	if err != nil {
		return nil, nil, err
	}

	shared, err := kp.sharedSecret(gw)
	if err != nil {
		return nil, nil, err
	}
	defer zeroize32(&shared)

	keys, err := deriveDirectionKeys(shared, class)
	if err != nil {
		return nil, nil, err
	}

	nonce, ciphertext, err := aeadSeal(keys.req, frame, aad(class, DirRequest))
	if err != nil {
		zeroize32(&keys.req)
		zeroize32(&keys.resp)
		return nil, nil, err
	}

	env := &Envelope{
		V:             ProtocolVersion,
		TokenClass:    class.Name(),
		EphPubKeyB64:  base64.StdEncoding.EncodeToString(kp.pub[:]),
		NonceB64:      base64.StdEncoding.EncodeToString(nonce),
		CiphertextB64: base64.StdEncoding.EncodeToString(ciphertext),
	}

	state := &SealState{
		class:     class,
		ephPubKey: kp.pub,
		keys:      keys,
	}
	return env, state, nil
}

// Open validates and decrypts a reply envelope using the retained seal
// state, returning the decrypted JSON payload unmarshaled into v.
//
// Version mismatch, class mismatch, unexpected echoed ephemeral key,
// malformed base64/length fields, AEAD authentication failure and an
// invalid padding frame all surface as CryptoError with a short reason
// string. A decrypted payload that is not valid JSON is a ProtocolError.
func Open(state *SealState, env *Envelope, v any) error {
	if env.V != ProtocolVersion {
		return &gwerr.CryptoError{Reason: "unsupported envelope version"}
	}

	class, err := sizeclass.Parse(env.TokenClass)
	if err != nil || class != state.class {
		return &gwerr.CryptoError{Reason: "token class mismatch"}
	}

	ephPub, err := decodeFixed(env.EphPubKeyB64, 32)
	if err != nil {
		return &gwerr.CryptoError{Reason: "malformed ephemeral key field"}
	}
	if [32]byte(ephPub) != state.ephPubKey {
		return &gwerr.CryptoError{Reason: "unexpected eph_pubkey in response"}
	}

	nonce, err := decodeFixed(env.NonceB64, 12)
	if err != nil {
		return &gwerr.CryptoError{Reason: "malformed nonce field"}
	}

	ciphertext, err := base64.StdEncoding.DecodeString(env.CiphertextB64)
	if err != nil {
		return &gwerr.CryptoError{Reason: "malformed ciphertext field"}
	}

	frame, err := aeadOpen(state.keys.resp, nonce, ciphertext, aad(class, DirResponse))
	if err != nil {
		return err
	}

	plain, err := padding.Unpad(frame)
	if err != nil {
		return &gwerr.CryptoError{Reason: "padding frame invalid"}
	}

	if err := json.Unmarshal(plain, v); err != nil {
		return &gwerr.ProtocolError{Reason: "decrypted payload is not valid JSON: " + err.Error()}
	}
	return nil
}

func decodeFixed(b64 string, n int) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, err
	}
	if len(raw) != n {
		return nil, &gwerr.CryptoError{Reason: "unexpected field length"}
	}
	return raw, nil
}
