package heap

import "fmt"
import "sync"
import "unsafe"

import "github.com/bnclabs/goheap/api"
import "github.com/bnclabs/goheap/lib"
import s "github.com/bnclabs/gosettings"

// Heap manage a single contiguous pool of fixed size blocks with
// tracing mark and sweep collection. All heap book-keeping, the block
// table included, lives inside the backing range handed over at
// creation time. A heap is created once at runtime start, never
// relocated, and released at process exit.
type Heap struct {
	// 64-bit aligned stats
	n_allocs    int64
	n_frees     int64
	n_collects  int64
	n_reclaimed int64
	h_allocsz   *lib.AverageInt64
	h_runlen    *lib.HistogramInt64

	name      string
	logprefix string

	// pool geometry, fixed after New()
	base     uintptr
	nblocks  int64
	poolsize int64
	table    *blocktable

	// cursor memo: at least freehint free blocks start at lastfree
	lastfree int64
	freehint int64

	// allocation accounting
	allocblocks int64 // blocks held by live runs
	allocamount int64 // blocks reserved since the last collection

	// collection state
	markstack []int64
	overflow  bool
	lockdepth int64

	// external collaborators
	roots api.RootSupplier
	final api.Finaliser

	// settings
	capacity          int64
	blocksize         int64
	markstacksz       int64
	threshold         int64
	autocollect       bool
	conservativeclear bool
	clearonsweep      bool
	threadsafe        bool
	setts             s.Settings

	mu      sync.Mutex
	backing []byte
	owned   bool
}

var _ api.Mallocer = &Heap{}

// New create a heap over the supplied backing memory. If backing is
// nil, "capacity" bytes are mapped anonymously from the OS and
// returned to it on Release(). The block table is carved from the
// tail of the backing range, the rest becomes the block pool.
func New(name string, setts s.Settings, backing []byte) *Heap {
	h := &Heap{
		name:      name,
		h_allocsz: &lib.AverageInt64{},
		h_runlen:  lib.NewhistogramInt64(1, 64, 1),
	}
	h.logprefix = fmt.Sprintf("HEAP [%s]", name)

	setts = make(s.Settings).Mixin(Defaultsettings(), setts)
	h.readsettings(setts)
	h.setts = setts

	if backing == nil {
		validatecapacity(h.capacity)
		backing = osmalloc(h.capacity)
		h.owned = true
	} else {
		validatecapacity(int64(len(backing)))
		h.capacity = int64(len(backing))
	}
	h.backing = backing
	h.initpool()
	h.markstack = make([]int64, h.markstacksz)

	infof("%v started ...\n", h.logprefix)
	fmsg := "%v pool of %v blocks x %v bytes, table overhead %v bytes\n"
	infof(fmsg, h.logprefix, h.nblocks, h.blocksize, h.table.sizeof())
	return h
}

// initpool partition the backing range into pool blocks and the
// block table bit-vectors. The block count is derived from the
// range, never supplied directly, so out of range blocks are
// impossible by construction.
func (h *Heap) initpool() {
	start := uintptr(unsafe.Pointer(&h.backing[0]))
	base := (start + uintptr(h.blocksize-1)) &^ uintptr(h.blocksize-1)
	avail := int64(len(h.backing)) - int64(base-start)

	// each block costs blocksize pool bytes plus three table bits
	nblocks := (avail * blocksperentry) / (blocksperentry*h.blocksize + 3*8)
	for nblocks > 0 && nblocks*h.blocksize+3*ceil(nblocks, blocksperentry)*8 > avail {
		nblocks--
	}
	if nblocks < 8 {
		panicerr("%v %v bytes cannot hold a pool and its table",
			h.logprefix, len(h.backing))
	}

	entries := ceil(nblocks, blocksperentry)
	tb := base + uintptr(nblocks*h.blocksize)
	h.table = &blocktable{
		nblocks:    nblocks,
		allocbits:  tableslice(tb, entries),
		statusbits: tableslice(tb+uintptr(entries*8), entries),
		finalbits:  tableslice(tb+uintptr(2*entries*8), entries),
	}
	h.table.zero()

	h.base, h.nblocks, h.poolsize = base, nblocks, nblocks*h.blocksize
	h.lastfree, h.freehint = 0, nblocks
}

func tableslice(addr uintptr, entries int64) []lib.Bit64 {
	return unsafe.Slice((*lib.Bit64)(unsafe.Pointer(addr)), entries)
}

// Setroots configure the runtime's conservative root supplier. Until
// one is configured the allocator never collects on its own and the
// application drives CollectStart/CollectRoot/CollectEnd.
func (h *Heap) Setroots(roots api.RootSupplier) *Heap {
	h.roots = roots
	return h
}

// Setfinaliser configure the runtime's finaliser dispatch, invoked
// by the sweeper for reclaimed chunks allocated with finalise=true.
func (h *Heap) Setfinaliser(final api.Finaliser) *Heap {
	h.final = final
	return h
}

//---- lifecycle & locking

// Lock open a critical section in which allocation fails fast
// instead of recursing into a collection. Locks nest.
func (h *Heap) Lock() {
	h.gcenter()
	h.lockdepth++
	h.gcexit()
}

// Unlock close the innermost critical section.
func (h *Heap) Unlock() {
	h.gcenter()
	if h.lockdepth == 0 {
		panicerr("%v unlock: heap is not locked", h.logprefix)
	}
	h.lockdepth--
	h.gcexit()
}

// Islocked return whether allocation is currently refused.
func (h *Heap) Islocked() bool {
	h.gcenter()
	defer h.gcexit()
	return h.lockdepth > 0
}

// Release the heap and, when the backing range was mapped by New,
// hand the memory back to the OS. No operation is valid afterwards.
func (h *Heap) Release() {
	h.gcenter()
	defer h.gcexit()
	if h.backing == nil {
		panicerr("%v released", h.logprefix)
	}
	if h.owned {
		osfree(h.backing)
	}
	h.backing, h.table = nil, nil
	h.base, h.nblocks, h.poolsize = 0, 0, 0
	infof("%v released\n", h.logprefix)
}

//---- pointer predicates

// blockptr pool address of block.
func (h *Heap) blockptr(block int64) uintptr {
	return h.base + uintptr(block*h.blocksize)
}

// ownedblock map a candidate word to a pool block index. The word
// qualifies only if it is block aligned and falls inside the pool,
// anything else is not ours.
func (h *Heap) ownedblock(p uintptr) (int64, bool) {
	if p < h.base || p >= h.base+uintptr(h.poolsize) {
		return 0, false
	}
	off := int64(p - h.base)
	if (off % h.blocksize) != 0 {
		return 0, false
	}
	return off / h.blocksize, true
}

// ownedhead like ownedblock, further requiring the block to be the
// head of a live run, marked or not.
func (h *Heap) ownedhead(p uintptr) (int64, bool) {
	block, ok := h.ownedblock(p)
	if ok == false {
		return 0, false
	}
	if kind := h.table.kind(block); kind == blkhead || kind == blkmark {
		return block, true
	}
	return 0, false
}

// Nbytes return the number of pool bytes backing ptr, zero if ptr is
// not an owned head pointer.
func (h *Heap) Nbytes(ptr unsafe.Pointer) int64 {
	if ptr == nil {
		return 0
	}
	h.gcenter()
	defer h.gcexit()
	head, ok := h.ownedhead(uintptr(ptr))
	if ok == false {
		return 0
	}
	return h.table.runlength(head) * h.blocksize
}

//---- explicit free

// Free force the reclamation of the run at ptr, without invoking its
// finaliser. Fails while the heap is locked. Freeing a pointer the
// heap does not own is heap corruption and panics.
func (h *Heap) Free(ptr unsafe.Pointer) bool {
	h.gcenter()
	defer h.gcexit()
	if h.lockdepth > 0 {
		return false
	} else if ptr == nil {
		return true
	}
	head, ok := h.ownedhead(uintptr(ptr))
	if ok == false {
		panicerr("%v free: %p not an owned head pointer", h.logprefix, ptr)
	}
	h.freerun(head)
	h.n_frees++
	return true
}

// freerun free head and all its tail blocks, fix the cursor memo.
func (h *Heap) freerun(head int64) int64 {
	n := h.table.runlength(head)
	for block := head; block < head+n; block++ {
		h.table.tofree(block)
	}
	h.table.clearfinal(head)
	h.allocblocks -= n
	if h.clearonsweep {
		memset(h.blockptr(head), n*h.blocksize, 0)
	}
	if head+n == h.lastfree {
		h.lastfree, h.freehint = head, h.freehint+n
	} else if head < h.lastfree {
		h.lastfree, h.freehint = head, n
	} else if head == h.lastfree+h.freehint {
		h.freehint += n
	}
	return n
}

func (h *Heap) gcenter() {
	if h.threadsafe {
		h.mu.Lock()
	}
}

func (h *Heap) gcexit() {
	if h.threadsafe {
		h.mu.Unlock()
	}
}
