//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd

package heap

import "golang.org/x/sys/unix"

// osmalloc map an anonymous, page aligned byte range outside the Go
// heap, so pool addresses stay stable for the process lifetime.
func osmalloc(size int64) []byte {
	prot := unix.PROT_READ | unix.PROT_WRITE
	flags := unix.MAP_ANON | unix.MAP_PRIVATE
	buf, err := unix.Mmap(-1, 0, int(size), prot, flags)
	if err != nil {
		panicerr("mmap %v bytes: %v", size, err)
	}
	return buf
}

func osfree(buf []byte) {
	if err := unix.Munmap(buf); err != nil {
		panicerr("munmap: %v", err)
	}
}
