// Package ticket defines the pluggable authorization-ticket contract and
// two implementations: a development-only random source and a file-backed
// single-use pool.
package ticket

import (
	"context"
	"encoding/base64"

	"github.com/zkgateway/gateway-client/internal/sizeclass"
)

// Ticket is an opaque, single-use authorization record presented with a
// request.
type Ticket struct {
	Nullifier      string `json:"nullifier"`
	CommitmentRoot string `json:"commitment_root"`
	TokenClass     string `json:"token_class"`
	Proof          string `json:"proof"`
}

// Source is the single asynchronous operation every ticket provider
// implements. A single-use guarantee means the same ticket is never
// returned twice.
type Source interface {
	NextTicket(ctx context.Context, class sizeclass.Class) (*Ticket, error)
}

// zeroCommitmentRootB64 is 32 zero bytes, base64-encoded, used as the
// default commitment root when a raw entry omits one.
var zeroCommitmentRootB64 = base64.StdEncoding.EncodeToString(make([]byte, 32))
