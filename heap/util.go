package heap

import "fmt"
import "errors"
import "unsafe"

// ErrorOutofMemory heap exhausted even after a collection attempt.
var ErrorOutofMemory = errors.New("heap.outofmemory")

// ErrorLocked allocation attempted while the heap is locked.
var ErrorLocked = errors.New("heap.locked")

func panicerr(fmsg string, args ...interface{}) {
	panic(fmt.Errorf(fmsg, args...))
}

func ceil(divident, divisor int64) int64 {
	if divident%divisor == 0 {
		return divident / divisor
	}
	return (divident / divisor) + 1
}

// memset fill `size` bytes at block address with `v`.
func memset(block uintptr, size int64, v byte) {
	dst := unsafe.Slice((*byte)(unsafe.Pointer(block)), size)
	for i := range dst {
		dst[i] = v
	}
}

// readword fetch one pointer sized word at addr.
func readword(addr uintptr) uintptr {
	return *(*uintptr)(unsafe.Pointer(addr))
}

const wordsize = int64(unsafe.Sizeof(uintptr(0)))
