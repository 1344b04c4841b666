package heap

import "unsafe"

// Alloc reserve a run of blocks covering nbytes. Returns (nil, false)
// for zero byte requests, while the heap is locked, and on
// exhaustion. When the pool cannot satisfy the request the allocator
// runs one collection over the configured root supplier and retries
// exactly once, it never loops collecting speculatively. If finalise
// is true the run's finaliser bit is set and the runtime finaliser
// is dispatched when the run is reclaimed.
func (h *Heap) Alloc(nbytes int64, finalise bool) (unsafe.Pointer, bool) {
	if nbytes == 0 {
		return nil, false
	} else if nbytes < 0 {
		panicerr("%v alloc: negative size %v", h.logprefix, nbytes)
	}
	want := ceil(nbytes, h.blocksize)

	h.gcenter()
	if h.lockdepth > 0 {
		h.gcexit()
		return nil, false
	}

	// proactive trigger: bound live garbage between collections.
	if h.threshold >= 0 && h.allocamount > h.threshold && h.cancollect() {
		h.gcexit()
		h.Collect()
		h.gcenter()
	}

	head := h.findfree(want)
	if head < 0 && h.cancollect() {
		// reactive trigger: pool exhausted, collect once and retry.
		h.gcexit()
		h.Collect()
		h.gcenter()
		head = h.findfree(want)
	}
	if head < 0 {
		h.gcexit()
		warnf("%v alloc %v bytes: %v\n", h.logprefix, nbytes, ErrorOutofMemory)
		return nil, false
	}
	ptr := h.reserve(head, want, nbytes, finalise)
	h.gcexit()
	return ptr, true
}

// cancollect whether Alloc may run a collection on its own.
func (h *Heap) cancollect() bool {
	return h.autocollect && h.roots != nil && h.lockdepth == 0
}

// reserve mark the run [head, head+want) as one allocation and zero
// the bytes beyond nbytes, so stale pointers in the slack cannot be
// retained by future traces.
func (h *Heap) reserve(head, want, nbytes int64, finalise bool) unsafe.Pointer {
	h.table.sethead(head)
	for block := head + 1; block < head+want; block++ {
		h.table.settail(block)
	}
	if finalise {
		h.table.setfinal(head)
	}
	h.allocblocks += want
	h.allocamount += want
	h.n_allocs++
	h.h_allocsz.Add(nbytes)
	h.h_runlen.Add(want)

	ptr := h.blockptr(head)
	if h.conservativeclear {
		memset(ptr, want*h.blocksize, 0)
	} else {
		memset(ptr+uintptr(nbytes), want*h.blocksize-nbytes, 0)
	}
	return unsafe.Pointer(ptr)
}

// findfree locate `want` contiguous free blocks and return the index
// of the first, -1 on exhaustion. The cursor memo satisfies small
// requests without scanning; otherwise the scan walks forward from
// the memo, counting free runs and skipping used runs with
// trailing-zero arithmetic over whole table entries.
func (h *Heap) findfree(want int64) int64 {
	if h.freehint >= want {
		head := h.lastfree
		h.lastfree += want
		h.freehint -= want
		return head
	}

	bt := h.table
	block, run, start := h.lastfree, int64(0), int64(-1)
	for block < h.nblocks {
		q, r := entryof(block)
		mask := bt.freemask(q) >> r
		if mask == 0 {
			// rest of this entry is fully used
			run, start = 0, -1
			block += blocksperentry - int64(r)
			continue
		}
		if n := mask.Findfirstset(); n > 0 {
			// skip the used run in front of the next free block
			run, start = 0, -1
			block += int64(n)
			continue
		}
		// count consecutive free blocks from here
		free := blocksperentry - int64(r)
		if x := (^mask).Findfirstset(); x >= 0 {
			free = int64(x)
		}
		if block+free > h.nblocks { // clamp table slack
			free = h.nblocks - block
		}
		if start < 0 {
			start = block
		}
		run += free
		block += free
		if run >= want {
			if start == h.lastfree {
				h.lastfree, h.freehint = start+want, run-want
			}
			return start
		}
	}
	return -1
}
