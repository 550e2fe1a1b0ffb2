package crypto

import "runtime"

// Wipe zeroes every buffer it is given. Copies made elsewhere, such as
// strings built from a buffer, are out of its reach.
//
//go:noinline
func Wipe(bufs ...[]byte) {
	for _, b := range bufs {
		clear(b)
	}
	runtime.KeepAlive(bufs)
}
