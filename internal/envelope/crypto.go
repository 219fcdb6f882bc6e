package envelope

import (
	"crypto/rand"
	"crypto/sha256"
	"io"

	"github.com/zkgateway/gateway-client/internal/gwerr"
	"github.com/zkgateway/gateway-client/internal/sizeclass"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// kdfInfoBase is the ASCII info prefix mixed into every HKDF expansion,
// followed by "/req" or "/resp" and the single byte equal to the
// size-class id. Domain separation prevents reflection across directions
// and key confusion across size classes.
const kdfInfoBase = "zk-llm-gateway-envelope-v1"

// directionKeys holds the two direction-separated symmetric keys derived
// from one X25519 shared secret.
type directionKeys struct {
	req  [32]byte
	resp [32]byte
}

// deriveDirectionKeys runs HKDF-SHA-256 twice over the same shared secret,
// once per direction, with a 32 zero-byte salt and info bound to the
// size-class id.
func deriveDirectionKeys(shared [32]byte, class sizeclass.Class) (directionKeys, error) {
	var salt [32]byte // all-zero per protocol
	var out directionKeys

	reqInfo := append([]byte(kdfInfoBase+"/req"), byte(class.ID()))
	if err := hkdfExpand(shared, salt, reqInfo, out.req[:]); err != nil {
		return out, err
	}

	respInfo := append([]byte(kdfInfoBase+"/resp"), byte(class.ID()))
	if err := hkdfExpand(shared, salt, respInfo, out.resp[:]); err != nil {
		return out, err
	}
	return out, nil
}

func hkdfExpand(ikm, salt [32]byte, info []byte, out []byte) error {
	rd := hkdf.New(sha256.New, ikm[:], salt[:], info)
	if _, err := io.ReadFull(rd, out); err != nil {
		return &gwerr.CryptoError{Reason: "hkdf expand failed"}
	}
	return nil
}

// aad builds the 3-byte AAD tuple [v, id(class), direction] that binds the
// protocol version and size class into the AEAD authentication tag.
func aad(class sizeclass.Class, dir Direction) []byte {
	return []byte{byte(ProtocolVersion), byte(class.ID()), byte(dir)}
}

// aeadSeal draws a fresh random 12-byte nonce and seals plaintext under
// key with the given AAD, returning nonce || (ciphertext || tag) split.
func aeadSeal(key [32]byte, plaintext, associatedData []byte) (nonce, ciphertext []byte, err error) {
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nil, nil, &gwerr.CryptoError{Reason: "aead init failed"}
	}
	nonce = make([]byte, chacha20poly1305.NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, &gwerr.CryptoError{Reason: "nonce generation failed"}
	}
	ciphertext = aead.Seal(nil, nonce, plaintext, associatedData)
	return nonce, ciphertext, nil
}

// aeadOpen authenticates and decrypts ciphertext (which includes its
// 16-byte tag) under key with the given nonce and AAD.
func aeadOpen(key [32]byte, nonce, ciphertext, associatedData []byte) ([]byte, error) {
	if len(nonce) != chacha20poly1305.NonceSize {
		return nil, &gwerr.CryptoError{Reason: "bad nonce length"}
	}
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nil, &gwerr.CryptoError{Reason: "aead init failed"}
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, associatedData)
	if err != nil {
		return nil, &gwerr.CryptoError{Reason: "authentication failed"}
	}
	return plaintext, nil
}
