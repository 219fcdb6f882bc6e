package ticket

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/zkgateway/gateway-client/internal/gwerr"
	"github.com/zkgateway/gateway-client/internal/sizeclass"
)

// rawEntry is a loosely-typed ticket file record tolerating both the
// bare and "_b64"-suffixed field spellings.
type rawEntry struct {
	Nullifier        string `json:"nullifier"`
	NullifierB64     string `json:"nullifier_b64"`
	CommitmentRoot   string `json:"commitment_root"`
	CommitmentRootB64 string `json:"commitment_root_b64"`
	Proof            string `json:"proof"`
	ProofB64         string `json:"proof_b64"`
	TokenClass       string `json:"token_class"`
}

// poolEntry is a normalized, load-time-validated entry held by FilePool.
type poolEntry struct {
	nullifier      string
	commitmentRoot string
	proof          string
	declaredClass  string          // "" means wildcard
	class          sizeclass.Class // zero value when declaredClass == ""
}

// FilePool is a single-use, in-memory ticket pool loaded eagerly from a
// JSON array. NextTicket removes exactly one entry per call; access is
// serialized with a mutex, mirroring the lock-guarded cache pattern used
// elsewhere in this client for shared mutable state.
type FilePool struct {
	mu      sync.Mutex
	entries []poolEntry
}

// LoadFilePool parses a UTF-8 JSON array of ticket entries. Non-object
// entries are dropped; a present-but-unparseable token_class causes that
// single entry to be dropped (it can never be selected) rather than
// failing the whole load.
func LoadFilePool(data []byte) (*FilePool, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, &gwerr.TicketExhaustedError{Reason: "ticket file is not a JSON array: " + err.Error()}
	}

	pool := &FilePool{}
	for _, raw := range raws {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			continue // not an object; drop
		}
		var re rawEntry
		if err := json.Unmarshal(raw, &re); err != nil {
			continue
		}
		entry, ok := normalizeEntry(re)
		if !ok {
			continue
		}
		pool.entries = append(pool.entries, entry)
	}
	return pool, nil
}

func normalizeEntry(re rawEntry) (poolEntry, bool) {
	nullifier := firstNonEmpty(re.Nullifier, re.NullifierB64)
	if nullifier == "" {
		return poolEntry{}, false // missing nullifier is fatal to this entry
	}
	commitmentRoot := firstNonEmpty(re.CommitmentRoot, re.CommitmentRootB64)
	if commitmentRoot == "" {
		commitmentRoot = zeroCommitmentRootB64
	}
	proof := firstNonEmpty(re.Proof, re.ProofB64)

	entry := poolEntry{
		nullifier:      nullifier,
		commitmentRoot: commitmentRoot,
		proof:          proof,
	}
	if re.TokenClass == "" {
		return entry, true // wildcard
	}
	class, err := sizeclass.Parse(re.TokenClass)
	if err != nil {
		return poolEntry{}, false // declared-but-unparseable class: reject entry
	}
	entry.declaredClass = class.Name()
	entry.class = class
	return entry, true
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// Len returns the number of tickets remaining in the pool.
func (p *FilePool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}

// NextTicket prefers the first remaining entry whose declared class equals
// the request; otherwise the first wildcard entry (stamped with the
// requested class); otherwise TicketExhausted. The selected entry is
// removed from the pool before return.
func (p *FilePool) NextTicket(ctx context.Context, class sizeclass.Class) (*Ticket, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if idx := p.findIndex(func(e poolEntry) bool {
		return e.declaredClass != "" && e.class == class
	}); idx >= 0 {
		return p.takeAt(idx, class), nil
	}

	if idx := p.findIndex(func(e poolEntry) bool {
		return e.declaredClass == ""
	}); idx >= 0 {
		return p.takeAt(idx, class), nil
	}

	return nil, &gwerr.TicketExhaustedError{
		Reason: fmt.Sprintf("no ticket available for class %s", class.Name()),
	}
}

func (p *FilePool) findIndex(pred func(poolEntry) bool) int {
	for i, e := range p.entries {
		if pred(e) {
			return i
		}
	}
	return -1
}

func (p *FilePool) takeAt(idx int, stampClass sizeclass.Class) *Ticket {
	e := p.entries[idx]
	p.entries = append(p.entries[:idx], p.entries[idx+1:]...)

	tokenClass := e.declaredClass
	if tokenClass == "" {
		tokenClass = stampClass.Name()
	}
	return &Ticket{
		Nullifier:      e.nullifier,
		CommitmentRoot: e.commitmentRoot,
		TokenClass:     tokenClass,
		Proof:          e.proof,
	}
}

var _ Source = (*FilePool)(nil)
