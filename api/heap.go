package api

import "unsafe"
import "io"

// Mallocer interface for garbage collected memory management.
type Mallocer interface {
	// Alloc a chunk of `n` bytes. Allocated memory is always
	// block aligned. If finalise is true the object's finaliser
	// shall be dispatched when the chunk is reclaimed.
	Alloc(n int64, finalise bool) (unsafe.Pointer, bool)

	// Realloc chunk to a new size. If allowmove is false the chunk
	// is never relocated and resize fails when it cannot be done
	// in place.
	Realloc(ptr unsafe.Pointer, n int64, allowmove bool) (unsafe.Pointer, bool)

	// Free chunk back to the heap, without waiting for a collection.
	Free(ptr unsafe.Pointer) bool

	// Nbytes return the number of pool bytes backing ptr, zero if
	// ptr is not an owned head pointer.
	Nbytes(ptr unsafe.Pointer) int64

	// Collect run a full stop-the-world mark and sweep, return the
	// number of objects reclaimed.
	Collect() int64

	// Info of memory accounting for this heap.
	Info() HeapInfo

	// Dump block states, one character per block, for diagnostics.
	Dump(w io.Writer)

	// Release heap and all its resources.
	Release()
}

// HeapInfo memory accounting, returned by Mallocer.Info().
type HeapInfo struct {
	Total   int64 // total pool bytes managed by the heap
	Used    int64 // bytes held by live allocations
	Free    int64 // bytes available for allocation
	N1block int64 // number of single block allocations
	N2block int64 // number of two block allocations
	Maxblck int64 // longest contiguous used run, in blocks
	Maxfree int64 // longest contiguous free run, in blocks
}
