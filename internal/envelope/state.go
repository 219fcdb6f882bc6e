package envelope

import "github.com/zkgateway/gateway-client/internal/sizeclass"

// SealState is the per-request secret context retained by the client
// between sealing and opening. It must never outlive a single
// request/response pair; call Drop as soon as Open has returned (or the
// call has been abandoned) to zero the derived key material.
type SealState struct {
	class     sizeclass.Class
	ephPubKey [32]byte
	keys      directionKeys
	dropped   bool
}

// Class returns the size class this seal state was created for.
func (s *SealState) Class() sizeclass.Class { return s.class }

// EphemeralPublicKey returns the 32-byte client ephemeral public key bound
// into this seal state, used to verify the gateway echoes it back.
func (s *SealState) EphemeralPublicKey() [32]byte { return s.ephPubKey }

// Drop zeroizes the derived symmetric keys. Safe to call more than once.
func (s *SealState) Drop() {
	if s == nil || s.dropped {
		return
	}
	zeroize32(&s.keys.req)
	zeroize32(&s.keys.resp)
	s.dropped = true
}
