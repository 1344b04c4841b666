package heap

import "unsafe"

// sweep single linear pass over the block table. Unmarked heads are
// finalised, when flagged, and reclaimed together with their tails;
// marked heads survive and return to HEAD state. Returns the number
// of runs reclaimed.
func (h *Heap) sweep() int64 {
	freetail, reclaimed := false, int64(0)
	for block := int64(0); block < h.nblocks; block++ {
		switch h.table.kind(block) {
		case blkhead:
			// unreachable head, reclaim it and the tails behind it
			if h.table.hasfinal(block) {
				h.runfinaliser(unsafe.Pointer(h.blockptr(block)))
				h.table.clearfinal(block)
			}
			freetail = true
			reclaimed++
			h.table.tofree(block)
			h.allocblocks--
			if h.clearonsweep {
				memset(h.blockptr(block), h.blocksize, 0)
			}

		case blktail:
			if freetail {
				h.table.tofree(block)
				h.allocblocks--
				if h.clearonsweep {
					memset(h.blockptr(block), h.blocksize, 0)
				}
			}

		case blkmark:
			h.table.marktohead(block)
			freetail = false
		}
	}
	return reclaimed
}

// runfinaliser dispatch the runtime finaliser for a reclaimed run.
// Panics raised by the finaliser are caught and discarded, a broken
// finaliser must not abort the sweep. The collection window's raised
// lock depth guarantees any allocation attempted here fails fast.
func (h *Heap) runfinaliser(ptr unsafe.Pointer) {
	if h.final == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			errorf("%v finaliser: %v\n", h.logprefix, r)
		}
	}()
	h.final.Finalise(ptr)
}

// SweepAll finalise and reclaim every live run without marking,
// used at runtime teardown.
func (h *Heap) SweepAll() int64 {
	h.gcenter()
	h.lockdepth++
	h.overflow = false
	reclaimed := h.sweep()
	h.n_reclaimed += reclaimed
	h.lastfree, h.freehint = 0, 0
	h.lockdepth--
	h.gcexit()
	return reclaimed
}
