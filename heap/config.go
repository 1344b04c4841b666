package heap

import s "github.com/bnclabs/gosettings"
import "github.com/cloudfoundry/gosigar"

// Blockalign block size shall be a multiple of Blockalign, so that
// every block can hold whole pointer words.
const Blockalign = int64(8)

// Minpoolsize smallest heap worth managing, anything less cannot
// hold the block table and a handful of blocks.
const Minpoolsize = int64(1024)

// Markstacksize default capacity of the mark stack, in blocks.
const Markstacksize = int64(64)

// Heap configurable parameters and default settings.
//
// "capacity" (int64, default: freeRAM/64)
//		Size of the backing memory in bytes, used only when the
//		application does not hand over its own byte range. The block
//		table is carved out of this capacity.
//
// "blocksize" (int64, default: 16)
//		Allocation granularity in bytes. Must be a multiple of 8.
//
// "markstack.size" (int64, default: 64)
//		Capacity of the trace stack used by the mark phase. When the
//		stack overflows the collector falls back to whole table
//		rescans, trading time for a hard bound on trace memory.
//
// "gc.threshold" (int64, default: -1)
//		Number of allocated blocks after which the next allocation
//		proactively collects. -1 disables threshold collection.
//
// "gc.autocollect" (bool, default: true)
//		Allow the allocator to collect when the pool is exhausted,
//		provided a root supplier is configured.
//
// "gc.conservativeclear" (bool, default: false)
//		Zero entire runs on allocation, not just the tail slack.
//
// "gc.clearonsweep" (bool, default: false)
//		Zero reclaimed blocks during sweep, to detect stale access
//		to collected objects more eagerly.
//
// "threadsafe" (bool, default: false)
//		Guard all heap mutation with a mutex. Leave disabled when
//		the embedding runtime already serialises mutator activity.
func Defaultsettings() s.Settings {
	_, _, free := getsysmem()
	capacity := int64(free / 64)
	if capacity < Minpoolsize {
		capacity = Minpoolsize
	}
	return s.Settings{
		"capacity":             capacity,
		"blocksize":            int64(16),
		"markstack.size":       Markstacksize,
		"gc.threshold":         int64(-1),
		"gc.autocollect":       true,
		"gc.conservativeclear": false,
		"gc.clearonsweep":      false,
		"threadsafe":           false,
	}
}

func (h *Heap) readsettings(setts s.Settings) {
	h.capacity = setts.Int64("capacity")
	h.blocksize = setts.Int64("blocksize")
	h.markstacksz = setts.Int64("markstack.size")
	h.threshold = setts.Int64("gc.threshold")
	h.autocollect = setts.Bool("gc.autocollect")
	h.conservativeclear = setts.Bool("gc.conservativeclear")
	h.clearonsweep = setts.Bool("gc.clearonsweep")
	h.threadsafe = setts.Bool("threadsafe")

	if h.blocksize <= 0 || (h.blocksize%Blockalign) != 0 {
		panicerr("blocksize %v is not a multiple of %v", h.blocksize, Blockalign)
	} else if h.markstacksz < 1 {
		panicerr("markstack.size %v should be positive", h.markstacksz)
	}
}

func getsysmem() (total, used, free uint64) {
	mem := sigar.Mem{}
	mem.Get()
	return mem.Total, mem.Used, mem.Free
}

func validatecapacity(capacity int64) {
	if capacity < Minpoolsize {
		panicerr("capacity %v less than %v", capacity, Minpoolsize)
	}
}
