package heap

import "github.com/bnclabs/goheap/lib"

// Each block's 2-bit state is composed from one bit in each of two
// packed bit-vectors, alloc and status:
//
//   alloc status
//     0     0    FREE  free block
//     0     1    MARK  reachable head, exists only mid collection
//     1     0    TAIL  continuation of a multi block run
//     1     1    HEAD  first block of a live run
const (
	blkfree = 0
	blkmark = 1
	blktail = 2
	blkhead = 3
)

// blocksperentry number of blocks tracked by one bit-vector entry.
const blocksperentry = int64(64)

// blocktable tracks the state of every pool block. The bit-vectors
// alias the tail of the heap's backing memory, they are not Go
// allocations. State transitions assert their precondition, a
// violation means the heap is corrupt and is not recoverable.
type blocktable struct {
	nblocks    int64
	allocbits  []lib.Bit64
	statusbits []lib.Bit64
	finalbits  []lib.Bit64
}

func (bt *blocktable) zero() {
	for i := range bt.allocbits {
		bt.allocbits[i], bt.statusbits[i], bt.finalbits[i] = 0, 0, 0
	}
}

func (bt *blocktable) sizeof() int64 {
	n := len(bt.allocbits) + len(bt.statusbits) + len(bt.finalbits)
	return int64(n) * 8
}

func entryof(block int64) (int64, uint8) {
	return block / blocksperentry, uint8(block % blocksperentry)
}

func (bt *blocktable) kind(block int64) int {
	q, r := entryof(block)
	kind := 0
	if bt.allocbits[q].Isset(r) {
		kind |= 2
	}
	if bt.statusbits[q].Isset(r) {
		kind |= 1
	}
	return kind
}

func (bt *blocktable) isfree(block int64) bool {
	return bt.kind(block) == blkfree
}

func (bt *blocktable) isused(block int64) bool {
	return bt.kind(block) != blkfree
}

func (bt *blocktable) ishead(block int64) bool {
	return bt.kind(block) == blkhead
}

func (bt *blocktable) istail(block int64) bool {
	return bt.kind(block) == blktail
}

func (bt *blocktable) ismark(block int64) bool {
	return bt.kind(block) == blkmark
}

//---- transitions

// sethead FREE -> HEAD.
func (bt *blocktable) sethead(block int64) {
	if bt.kind(block) != blkfree {
		panicerr("sethead: block %v not free", block)
	}
	q, r := entryof(block)
	bt.allocbits[q] = bt.allocbits[q].Setbit(r)
	bt.statusbits[q] = bt.statusbits[q].Setbit(r)
}

// settail FREE -> TAIL.
func (bt *blocktable) settail(block int64) {
	if bt.kind(block) != blkfree {
		panicerr("settail: block %v not free", block)
	}
	q, r := entryof(block)
	bt.allocbits[q] = bt.allocbits[q].Setbit(r)
}

// headtomark HEAD -> MARK, only the mark phase does this.
func (bt *blocktable) headtomark(block int64) {
	if bt.kind(block) != blkhead {
		panicerr("headtomark: block %v not a head", block)
	}
	q, r := entryof(block)
	bt.allocbits[q] = bt.allocbits[q].Clearbit(r)
}

// marktohead MARK -> HEAD, sweep restores survivors with this.
func (bt *blocktable) marktohead(block int64) {
	if bt.kind(block) != blkmark {
		panicerr("marktohead: block %v not marked", block)
	}
	q, r := entryof(block)
	bt.allocbits[q] = bt.allocbits[q].Setbit(r)
}

// tofree HEAD/TAIL/MARK -> FREE.
func (bt *blocktable) tofree(block int64) {
	if bt.kind(block) == blkfree {
		panicerr("tofree: block %v already free", block)
	}
	q, r := entryof(block)
	bt.allocbits[q] = bt.allocbits[q].Clearbit(r)
	bt.statusbits[q] = bt.statusbits[q].Clearbit(r)
}

//---- finaliser bits, tracked per HEAD block.

func (bt *blocktable) hasfinal(block int64) bool {
	q, r := entryof(block)
	return bt.finalbits[q].Isset(r)
}

func (bt *blocktable) setfinal(block int64) {
	q, r := entryof(block)
	bt.finalbits[q] = bt.finalbits[q].Setbit(r)
}

func (bt *blocktable) clearfinal(block int64) {
	q, r := entryof(block)
	bt.finalbits[q] = bt.finalbits[q].Clearbit(r)
}

//---- bulk scanning helpers

// freemask bit-vector entry with one bit set per free block. Bits
// past nblocks in the last entry read as free, callers shall clamp.
func (bt *blocktable) freemask(entry int64) lib.Bit64 {
	return ^(bt.allocbits[entry] | bt.statusbits[entry])
}

// runlength number of blocks in the run starting at head.
func (bt *blocktable) runlength(head int64) int64 {
	n := int64(1)
	for head+n < bt.nblocks && bt.istail(head+n) {
		n++
	}
	return n
}
