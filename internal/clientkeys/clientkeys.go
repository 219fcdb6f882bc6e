// Package clientkeys implements the optional signing identity supplemental
// to the envelope protocol core: a secp256k1 keypair derived from a BIP-39
// mnemonic, used only to sign a request's canonical request_id for local
// audit logging, and to verify an out-of-band gateway response signature
// header. Nothing here touches the wire envelope itself.
package clientkeys

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	secp256k1ecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/sha3"
)

const sigInfoV1 = "zk-llm-gateway-client-sig/v1"

// Keys holds the client's optional signing identity.
type Keys struct {
	SigPriv *secp256k1.PrivateKey
	SigPub  *secp256k1.PublicKey

	// Address is the EVM-style address derived from SigPub (lowercase hex,
	// 0x-prefixed), used only as a human-readable identity label in logs.
	Address string
}

// DeriveFromMnemonic derives a signing identity from a BIP-39 mnemonic.
// Callers who do not want request signing simply never construct Keys.
func DeriveFromMnemonic(mnemonic string) (*Keys, error) {
	mnemonic = strings.TrimSpace(mnemonic)
	if mnemonic == "" {
		return nil, fmt.Errorf("mnemonic is required")
	}
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, fmt.Errorf("mnemonic is not a valid BIP-39 mnemonic")
	}

	seed := bip39.NewSeed(mnemonic, "")
	sigSk := hkdfExpand32(seed, []byte(sigInfoV1))
	sigPriv := secp256k1.PrivKeyFromBytes(sigSk[:])
	sigPub := sigPriv.PubKey()

	addr, err := evmAddressFromSecp256k1Pub(sigPub)
	if err != nil {
		return nil, err
	}

	return &Keys{SigPriv: sigPriv, SigPub: sigPub, Address: addr}, nil
}

func hkdfExpand32(seed, info []byte) [32]byte {
	rd := hkdf.New(sha256.New, seed, nil, info) // salt=nil; domain separation via info
	var out [32]byte
	_, _ = rd.Read(out[:])
	return out
}

func evmAddressFromSecp256k1Pub(pub *secp256k1.PublicKey) (string, error) {
	if pub == nil {
		return "", fmt.Errorf("nil secp256k1 public key")
	}
	uncompressed := pub.SerializeUncompressed() // 65 bytes: 0x04 || X(32) || Y(32)
	if len(uncompressed) != 65 || uncompressed[0] != 0x04 {
		return "", fmt.Errorf("unexpected secp256k1 uncompressed pubkey encoding")
	}
	h := sha3.NewLegacyKeccak256()
	_, _ = h.Write(uncompressed[1:])
	sum := h.Sum(nil)
	addr := sum[len(sum)-20:]
	return "0x" + hex.EncodeToString(addr), nil
}

// SignRequestID signs the sha256 digest of a request_id string, returning a
// 65-byte compact recoverable signature suitable for base64 encoding in an
// audit log line.
func (k *Keys) SignRequestID(requestID string) ([]byte, error) {
	digest := sha256.Sum256([]byte(requestID))
	return secp256k1ecdsa.SignCompact(k.SigPriv, digest[:], false), nil
}
