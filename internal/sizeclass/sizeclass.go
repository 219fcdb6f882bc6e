// Package sizeclass implements the closed enumeration of coarse request/
// response size buckets used to mask message-size fingerprints on the wire.
package sizeclass

import (
	"strconv"
	"strings"

	"github.com/zkgateway/gateway-client/internal/gwerr"
	"github.com/zkgateway/gateway-client/internal/padding"
)

// Class is one of the five canonical size buckets.
type Class int

const (
	C256 Class = iota + 1
	C512
	C1024
	C2048
	C4096
)

type descriptor struct {
	name           string
	id             int
	reqPaddedLen   int
	respPaddedLen  int
	maxOutputHint  int
}

var table = map[Class]descriptor{
	C256:  {name: "c256", id: 1, reqPaddedLen: 8192, respPaddedLen: 8192, maxOutputHint: 256},
	C512:  {name: "c512", id: 2, reqPaddedLen: 12288, respPaddedLen: 16384, maxOutputHint: 512},
	C1024: {name: "c1024", id: 3, reqPaddedLen: 20480, respPaddedLen: 32768, maxOutputHint: 1024},
	C2048: {name: "c2048", id: 4, reqPaddedLen: 36864, respPaddedLen: 65536, maxOutputHint: 2048},
	C4096: {name: "c4096", id: 5, reqPaddedLen: 69632, respPaddedLen: 131072, maxOutputHint: 4096},
}

var byName = func() map[string]Class {
	m := make(map[string]Class, len(table))
	for c, d := range table {
		m[d.name] = c
	}
	return m
}()

var byID = func() map[int]Class {
	m := make(map[int]Class, len(table))
	for c, d := range table {
		m[d.id] = c
	}
	return m
}()

// Parse accepts either the symbolic name ("c512") or the bare numeric
// suffix ("512"), case-insensitive and whitespace-trimmed.
func Parse(text string) (Class, error) {
	trimmed := strings.ToLower(strings.TrimSpace(text))
	if trimmed == "" {
		return 0, &gwerr.InvalidTokenClassError{Input: text}
	}
	if c, ok := byName[trimmed]; ok {
		return c, nil
	}
	if c, ok := byName["c"+trimmed]; ok {
		return c, nil
	}
	return 0, &gwerr.InvalidTokenClassError{Input: text}
}

// ByID resolves the symbolic class for a 1..5 numeric id.
func ByID(id int) (Class, error) {
	if c, ok := byID[id]; ok {
		return c, nil
	}
	return 0, &gwerr.InvalidTokenClassError{Input: strconv.Itoa(id)}
}

// Name returns the canonical symbolic name ("c512").
func (c Class) Name() string {
	d, ok := table[c]
	if !ok {
		return ""
	}
	return d.name
}

// String implements fmt.Stringer.
func (c Class) String() string { return c.Name() }

// ID returns the 1..5 numeric id mixed into HKDF info and AEAD AAD.
func (c Class) ID() int { return table[c].id }

// RequestPaddedLen returns the exact padded length of a request frame for
// this class, in bytes.
func (c Class) RequestPaddedLen() int { return table[c].reqPaddedLen }

// ResponsePaddedLen returns the exact padded length of a response frame for
// this class, in bytes.
func (c Class) ResponsePaddedLen() int { return table[c].respPaddedLen }

// MaxPromptBytes returns how much plaintext prompt fits in this class's
// request frame once the padding header is accounted for. This is the
// capacity padding.Pad actually enforces, not the raw padded frame length.
func (c Class) MaxPromptBytes() int { return c.RequestPaddedLen() - padding.HeaderLen }

// MaxOutputTokensHint returns the default max_tokens hint for this class.
func (c Class) MaxOutputTokensHint() int { return table[c].maxOutputHint }

// Valid reports whether c is one of the five canonical variants.
func (c Class) Valid() bool {
	_, ok := table[c]
	return ok
}

// All returns the five canonical variants in ascending id order, useful for
// exhaustive iteration in tests and CLI help text.
func All() []Class {
	return []Class{C256, C512, C1024, C2048, C4096}
}
