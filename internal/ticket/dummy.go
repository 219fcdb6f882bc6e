package ticket

import (
	"context"
	"crypto/rand"
	"encoding/base64"

	"github.com/zkgateway/gateway-client/internal/sizeclass"
)

// DummySource returns a fresh random ticket for every request. Development
// only: it never talks to an actual gateway-side issuer and is never
// single-use in the sense the file-backed pool is (every call succeeds).
type DummySource struct{}

// NewDummySource constructs a DummySource.
func NewDummySource() *DummySource { return &DummySource{} }

func (d *DummySource) NextTicket(ctx context.Context, class sizeclass.Class) (*Ticket, error) {
	nullifier := make([]byte, 32)
	if _, err := rand.Read(nullifier); err != nil {
		return nil, err
	}
	return &Ticket{
		Nullifier:      base64.StdEncoding.EncodeToString(nullifier),
		CommitmentRoot: zeroCommitmentRootB64,
		TokenClass:     class.Name(),
		Proof:          "",
	}, nil
}
