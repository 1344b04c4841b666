package heap

import humanize "github.com/dustin/go-humanize"

import "github.com/bnclabs/goheap/api"

// Info walk the block table and report memory accounting: total,
// used and free bytes, the population of one and two block runs and
// the longest contiguous used and free runs. O(N) over the table,
// lock guarded, read only.
func (h *Heap) Info() api.HeapInfo {
	h.gcenter()
	defer h.gcexit()

	info := api.HeapInfo{Total: h.poolsize}
	var used, ulen, flen int64
	closerun := func() {
		if ulen == 1 {
			info.N1block++
		} else if ulen == 2 {
			info.N2block++
		}
		if ulen > info.Maxblck {
			info.Maxblck = ulen
		}
		ulen = 0
	}
	for block := int64(0); block < h.nblocks; block++ {
		switch h.table.kind(block) {
		case blkfree:
			closerun()
			flen++
			if flen > info.Maxfree {
				info.Maxfree = flen
			}

		case blkhead, blkmark:
			closerun()
			used, ulen, flen = used+1, 1, 0

		case blktail:
			used, ulen, flen = used+1, ulen+1, 0
		}
	}
	closerun()
	info.Used = used * h.blocksize
	info.Free = info.Total - info.Used
	return info
}

// Stats accounting counters and allocation size distribution for
// this heap, keyed the same way across collections of heaps.
func (h *Heap) Stats() map[string]interface{} {
	h.gcenter()
	defer h.gcexit()
	stats := map[string]interface{}{
		"n_allocs":    h.n_allocs,
		"n_frees":     h.n_frees,
		"n_collects":  h.n_collects,
		"n_reclaimed": h.n_reclaimed,
		"allocblocks": h.allocblocks,
		"nblocks":     h.nblocks,
		"blocksize":   h.blocksize,
		"overhead":    h.table.sizeof(),
		"lockdepth":   h.lockdepth,
	}
	stats["h_allocsz"] = h.h_allocsz.Stats()
	stats["h_runlen"] = h.h_runlen.Stats()
	return stats
}

// Dumpinfo log a human readable rendering of Info().
func (h *Heap) Dumpinfo() {
	info := h.Info()
	fmsg := "%v total: %v, used: %v, free: %v\n"
	infof(fmsg, h.logprefix,
		humanize.Bytes(uint64(info.Total)),
		humanize.Bytes(uint64(info.Used)),
		humanize.Bytes(uint64(info.Free)))
	fmsg = "%v 1-blocks: %v, 2-blocks: %v, max blk sz: %v, max free sz: %v\n"
	infof(fmsg, h.logprefix,
		info.N1block, info.N2block, info.Maxblck, info.Maxfree)
	infof("%v run lengths: %v\n", h.logprefix, h.h_runlen.Logstring())
}

// Threshold return the current auto-collect threshold in blocks,
// -1 when disabled.
func (h *Heap) Threshold() int64 {
	h.gcenter()
	defer h.gcexit()
	return h.threshold
}

// SetThreshold adjust the auto-collect threshold: once more than
// `threshold` blocks are reserved since the last collection, the
// next allocation proactively collects. -1 disables the trigger.
func (h *Heap) SetThreshold(threshold int64) {
	h.gcenter()
	h.threshold = threshold
	h.gcexit()
}
