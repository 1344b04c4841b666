package heap

// CollectStart open a stop-the-world collection window. The lock
// depth is raised so that allocation, from finalisers in particular,
// fails fast instead of reentering collection. Roots are then fed in
// through CollectRoot and the window closed with CollectEnd.
func (h *Heap) CollectStart() {
	h.gcenter()
	h.lockdepth++
	h.allocamount = 0
	h.overflow = false
}

// CollectRoot conservatively scan one root range. Every candidate
// word that is block aligned, falls inside the pool and addresses an
// unmarked live head is marked and its subtree traced.
func (h *Heap) CollectRoot(ptrs []uintptr) {
	for _, p := range ptrs {
		if block, ok := h.ownedblock(p); ok && h.table.ishead(block) {
			h.table.headtomark(block)
			h.marksubtree(block)
		}
	}
}

// CollectEnd close the collection window: converge overflowed
// traces, sweep, reset the allocator cursor and unlock. Returns the
// number of runs reclaimed.
func (h *Heap) CollectEnd() int64 {
	h.dealwithstackoverflow()
	reclaimed := h.sweep()
	h.lastfree, h.freehint = 0, 0
	h.lockdepth--
	h.n_collects++
	h.n_reclaimed += reclaimed
	h.gcexit()
	return reclaimed
}

// Collect run a full collection over the configured root supplier.
func (h *Heap) Collect() int64 {
	if h.roots == nil {
		panicerr("%v collect: no root supplier configured", h.logprefix)
	}
	h.CollectStart()
	for _, ptrs := range h.roots.Roots() {
		h.CollectRoot(ptrs)
	}
	return h.CollectEnd()
}

// marksubtree iterative depth-first trace from a freshly marked
// head. Every pointer sized word across the whole run, head and
// tails, is treated as a candidate child. Newly marked heads are
// pushed on the fixed capacity mark stack; when the stack is full
// the overflow flag is raised and the block is left MARK with its
// children untraced, to be revisited by dealwithstackoverflow. The
// explicit stack bounds trace memory regardless of graph depth.
func (h *Heap) marksubtree(block int64) {
	sp := 0
	for {
		nblocks := h.table.runlength(block)
		addr := h.blockptr(block)
		for off := int64(0); off < nblocks*h.blocksize; off += wordsize {
			child, ok := h.ownedblock(readword(addr + uintptr(off)))
			if ok == false || h.table.ishead(child) == false {
				continue
			}
			h.table.headtomark(child)
			if sp < len(h.markstack) {
				h.markstack[sp] = child
				sp++
			} else {
				h.overflow = true
			}
		}
		if sp == 0 {
			break
		}
		sp--
		block = h.markstack[sp]
	}
}

// dealwithstackoverflow restore completeness after a mark stack
// overflow: rescan the whole table and re-trace every block still
// MARK, repeating until a pass completes without overflowing again.
// The reachable set only grows and is bounded by the pool, so this
// terminates.
func (h *Heap) dealwithstackoverflow() {
	for h.overflow {
		h.overflow = false
		for block := int64(0); block < h.nblocks; block++ {
			if h.table.ismark(block) {
				h.marksubtree(block)
			}
		}
	}
}
