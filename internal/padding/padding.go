// Package padding frames a plaintext blob into an exact target length so
// the ciphertext length never leaks the true payload size beyond its size
// class. The frame is produced only inside the ciphertext, never on the
// wire as a separate field.
package padding

import (
	"encoding/binary"

	"github.com/zkgateway/gateway-client/internal/gwerr"
)

// tag is the 4-byte literal frame header.
var tag = [4]byte{'Z', 'K', 'L', 'G'}

// HeaderLen is the frame header size: a 4-byte tag plus a 4-byte
// little-endian length. Callers sizing a payload against a padded target
// must subtract HeaderLen to get the usable capacity.
const HeaderLen = 8

const headerLen = HeaderLen

// filler is the repeating 2-byte pattern used to pad out a frame.
var filler = [2]byte{' ', '\n'}

// Pad frames payload into exactly target bytes: the ZKLG tag, a
// little-endian uint32 length, the payload, and repeating " \n" filler.
func Pad(payload []byte, target int) ([]byte, error) {
	if target < headerLen {
		return nil, &gwerr.InvalidPaddingError{Reason: "target below minimum frame size"}
	}
	limit := target - headerLen
	if len(payload) > limit {
		return nil, &gwerr.PayloadTooLargeError{Actual: len(payload), Limit: limit}
	}

	frame := make([]byte, target)
	copy(frame[0:4], tag[:])
	binary.LittleEndian.PutUint32(frame[4:8], uint32(len(payload)))
	copy(frame[headerLen:], payload)

	for i := headerLen + len(payload); i < target; i++ {
		frame[i] = filler[(i-headerLen-len(payload))%2]
	}
	return frame, nil
}

// Unpad reverses Pad, returning the exact declared payload slice.
func Unpad(frame []byte) ([]byte, error) {
	if len(frame) < headerLen {
		return nil, &gwerr.InvalidPaddingError{Reason: "frame shorter than header"}
	}
	if frame[0] != tag[0] || frame[1] != tag[1] || frame[2] != tag[2] || frame[3] != tag[3] {
		return nil, &gwerr.InvalidPaddingError{Reason: "bad frame tag"}
	}
	declared := binary.LittleEndian.Uint32(frame[4:8])
	limit := uint32(len(frame) - headerLen)
	if declared > limit {
		return nil, &gwerr.InvalidPaddingError{Reason: "declared length exceeds frame capacity"}
	}
	payload := make([]byte, declared)
	copy(payload, frame[headerLen:headerLen+int(declared)])
	return payload, nil
}
