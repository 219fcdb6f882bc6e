// Package gwerr defines the stable, distinguishable error kinds surfaced by
// the gateway client. Callers match on kind via errors.As, never on message
// text.
package gwerr

import "fmt"

// Error is the common base every taxonomy member satisfies, so callers can
// match broadly with errors.As(err, new(gwerr.Error)) before narrowing.
type Error interface {
	error
	Kind() string
}

// InvalidTokenClassError is returned when a size-class string does not match
// any of the five canonical variants.
type InvalidTokenClassError struct {
	Input string
}

func (e *InvalidTokenClassError) Error() string {
	return fmt.Sprintf("invalid token class %q", e.Input)
}

func (e *InvalidTokenClassError) Kind() string { return "InvalidTokenClass" }

// InvalidGatewayPublicKeyError is returned when the gateway's static X25519
// public key is malformed.
type InvalidGatewayPublicKeyError struct {
	Reason string
}

func (e *InvalidGatewayPublicKeyError) Error() string {
	return fmt.Sprintf("invalid gateway public key: %s", e.Reason)
}

func (e *InvalidGatewayPublicKeyError) Kind() string { return "InvalidGatewayPublicKey" }

// Base64Error is returned when an envelope field fails to base64-decode.
type Base64Error struct {
	Field string
	Err   error
}

func (e *Base64Error) Error() string {
	return fmt.Sprintf("base64 decode of %s: %v", e.Field, e.Err)
}

func (e *Base64Error) Unwrap() error { return e.Err }

func (e *Base64Error) Kind() string { return "Base64Error" }

// InvalidPaddingError is returned by the padding codec on a malformed frame
// or an invalid target length.
type InvalidPaddingError struct {
	Reason string
}

func (e *InvalidPaddingError) Error() string {
	return fmt.Sprintf("invalid padding: %s", e.Reason)
}

func (e *InvalidPaddingError) Kind() string { return "InvalidPadding" }

// PayloadTooLargeError is returned when a payload exceeds the padding
// codec's capacity for the requested target length.
type PayloadTooLargeError struct {
	Actual int
	Limit  int
}

func (e *PayloadTooLargeError) Error() string {
	return fmt.Sprintf("payload too large: %d bytes exceeds limit of %d", e.Actual, e.Limit)
}

func (e *PayloadTooLargeError) Kind() string { return "PayloadTooLarge" }

// CryptoError wraps every decryption, authentication, or binding-check
// failure (AAD, class, version, echoed ephemeral). The reason string is a
// short phrase for local debugging; callers match on the kind, not on it.
type CryptoError struct {
	Reason string
}

func (e *CryptoError) Error() string {
	return fmt.Sprintf("crypto error: %s", e.Reason)
}

func (e *CryptoError) Kind() string { return "CryptoError" }

// ProtocolError is returned when a decrypted payload is not well-formed
// JSON, is not JSON-object-shaped, or otherwise fails to match any
// recognized reply shape.
type ProtocolError struct {
	Reason string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error: %s", e.Reason)
}

func (e *ProtocolError) Kind() string { return "ProtocolError" }

// TicketExhaustedError is returned by a ticket source that has no more
// tickets (or no matching entry) for the requested size class.
type TicketExhaustedError struct {
	Reason string
}

func (e *TicketExhaustedError) Error() string {
	return fmt.Sprintf("ticket exhausted: %s", e.Reason)
}

func (e *TicketExhaustedError) Kind() string { return "TicketExhausted" }

// HttpError is raised only when the gateway's HTTP status was not 2xx and
// the body did not decrypt into a recognized structured error.
type HttpError struct {
	StatusCode int
}

func (e *HttpError) Error() string {
	return fmt.Sprintf("gateway returned HTTP %d", e.StatusCode)
}

func (e *HttpError) Kind() string { return "HttpError" }

// GatewayError is raised from a decrypted {kind:"err"} (or legacy
// {error:{...}}) reply; it always takes priority over HttpError.
type GatewayError struct {
	Code    string
	Message string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway error %s: %s", e.Code, e.Message)
}

func (e *GatewayError) Kind() string { return "GatewayError" }

// CancelledError is returned when the caller-configured timeout trips and
// the in-flight transport call is aborted. Distinct from HttpError, which
// implies a completed round trip.
type CancelledError struct {
	Reason string
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("request cancelled: %s", e.Reason)
}

func (e *CancelledError) Kind() string { return "Cancelled" }

var (
	_ Error = (*InvalidTokenClassError)(nil)
	_ Error = (*InvalidGatewayPublicKeyError)(nil)
	_ Error = (*Base64Error)(nil)
	_ Error = (*InvalidPaddingError)(nil)
	_ Error = (*PayloadTooLargeError)(nil)
	_ Error = (*CryptoError)(nil)
	_ Error = (*ProtocolError)(nil)
	_ Error = (*TicketExhaustedError)(nil)
	_ Error = (*HttpError)(nil)
	_ Error = (*GatewayError)(nil)
	_ Error = (*CancelledError)(nil)
)
