package clientkeys

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	secp256k1ecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

const gatewayResponseSigHeader = "ZK_LLM_GATEWAY_RESPONSE_SIG_V1"

// GatewayResponseSignatureDigest returns the 32-byte digest the gateway is
// expected to have signed for an optional X-Gateway-Signature header. This
// lives entirely outside the wire envelope; it is an out-of-band integrity
// check some deployments layer on top.
//
// Canonical bytes:
//
//	"ZK_LLM_GATEWAY_RESPONSE_SIG_V1" || 0x00 ||
//	sha256(ciphertext) || 0x00 ||
//	token_class_id(u32be) || 0x00 || request_id
func GatewayResponseSignatureDigest(ciphertext []byte, tokenClassID int, requestID string) [32]byte {
	ctHash := sha256.Sum256(ciphertext)

	var buf bytes.Buffer
	buf.WriteString(gatewayResponseSigHeader)
	buf.WriteByte(0x00)
	buf.Write(ctHash[:])
	buf.WriteByte(0x00)

	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], uint32(tokenClassID))
	buf.Write(tmp[:])
	buf.WriteByte(0x00)
	buf.WriteString(requestID)

	return sha256.Sum256(buf.Bytes())
}

// VerifyGatewaySignature verifies a base64 compact secp256k1 signature
// against the gateway's configured signing public key (raw compressed
// bytes) and the expected digest.
func VerifyGatewaySignature(gatewaySigPubCompressed []byte, digest32 []byte, sigB64 string) (bool, error) {
	pub, err := secp256k1.ParsePubKey(gatewaySigPubCompressed)
	if err != nil {
		return false, fmt.Errorf("parse gateway signing public key: %w", err)
	}
	sig, err := base64.StdEncoding.DecodeString(sigB64)
	if err != nil {
		return false, fmt.Errorf("decode signature: %w", err)
	}
	recovered, _, err := secp256k1ecdsa.RecoverCompact(sig, digest32)
	if err != nil {
		return false, nil
	}
	return recovered.IsEqual(pub), nil
}
