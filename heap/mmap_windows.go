//go:build windows

package heap

// Go allocations do not move, a plain slice gives the pool a stable
// address for the process lifetime.
func osmalloc(size int64) []byte {
	return make([]byte, size)
}

func osfree(buf []byte) {
}
