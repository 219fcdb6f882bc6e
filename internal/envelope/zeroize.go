package envelope

import "runtime"

// keepAlive prevents the compiler from eliding the zeroing stores in
// zeroize/zeroize32 via dead-store elimination (golang/go#33325). This
// cannot guarantee the key material never lingers in a GC-moved copy, but
// it is the Go ecosystem's current best practice for best-effort secret
// wiping.
func keepAlive(buf []byte) {
	runtime.KeepAlive(buf)
}
