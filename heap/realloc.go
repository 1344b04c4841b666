package heap

import "unsafe"

// Realloc resize the run at ptr to cover nbytes. A nil ptr degrades
// to Alloc, nbytes == 0 degrades to Free. Shrinking and growing into
// immediately following free blocks happen in place and preserve the
// pointer; otherwise, with allowmove, the run is relocated to a
// fresh allocation inheriting the finaliser flag, and without
// allowmove the call fails with no side effects. Realloc never
// triggers a collection, the caller is holding a live object that a
// collection could not see.
func (h *Heap) Realloc(ptr unsafe.Pointer, nbytes int64, allowmove bool) (unsafe.Pointer, bool) {
	if ptr == nil {
		return h.Alloc(nbytes, false)
	} else if nbytes == 0 {
		h.Free(ptr)
		return nil, true
	} else if nbytes < 0 {
		panicerr("%v realloc: negative size %v", h.logprefix, nbytes)
	}

	h.gcenter()
	if h.lockdepth > 0 {
		h.gcexit()
		return nil, false
	}
	head, ok := h.ownedhead(uintptr(ptr))
	if ok == false {
		panicerr("%v realloc: %p not an owned head pointer", h.logprefix, ptr)
	}
	old := h.table.runlength(head)
	want := ceil(nbytes, h.blocksize)

	if want == old {
		h.gcexit()
		return ptr, true
	}

	if want < old { // shrink in place, the head block never moves
		for block := head + want; block < head+old; block++ {
			h.table.tofree(block)
		}
		h.allocblocks -= old - want
		if head+want < h.lastfree {
			h.lastfree, h.freehint = head+want, old-want
		} else if head+want == h.lastfree+h.freehint {
			h.freehint += old - want
		}
		memset(uintptr(ptr)+uintptr(nbytes), want*h.blocksize-nbytes, 0)
		h.gcexit()
		return ptr, true
	}

	// grow: bounded probe of the blocks just behind the run
	inplace := head+want <= h.nblocks
	for block := head + old; inplace && block < head+want; block++ {
		if h.table.isfree(block) == false {
			inplace = false
		}
	}
	if inplace {
		for block := head + old; block < head+want; block++ {
			h.table.settail(block)
		}
		h.allocblocks += want - old
		h.allocamount += want - old
		// the extension may have eaten into the cursor memo
		if head+want > h.lastfree && head+old < h.lastfree+h.freehint {
			h.freehint = 0
		}
		memset(uintptr(ptr)+uintptr(old*h.blocksize), (want-old)*h.blocksize, 0)
		h.gcexit()
		return ptr, true
	}

	if allowmove == false {
		h.gcexit()
		return nil, false
	}

	// relocate to a fresh run, inheriting the finaliser flag
	newhead := h.findfree(want)
	if newhead < 0 {
		h.gcexit()
		warnf("%v realloc %v bytes: %v\n", h.logprefix, nbytes, ErrorOutofMemory)
		return nil, false
	}
	newptr := h.reserve(newhead, want, nbytes, h.table.hasfinal(head))
	copyblocks(newptr, ptr, old*h.blocksize)
	memset(uintptr(newptr)+uintptr(old*h.blocksize), (want-old)*h.blocksize, 0)
	h.freerun(head)
	h.gcexit()
	return newptr, true
}

func copyblocks(dst, src unsafe.Pointer, n int64) {
	copy(unsafe.Slice((*byte)(dst), n), unsafe.Slice((*byte)(src), n))
}
