package main

import "flag"
import "fmt"
import "math/rand"
import "os"
import "time"
import "unsafe"

import "github.com/bnclabs/goheap/api"
import "github.com/bnclabs/goheap/heap"
import s "github.com/bnclabs/gosettings"
import hm "github.com/dustin/go-humanize"

var options struct {
	capacity  int
	blocksize int
	maxalloc  int
	n         int
	seed      int
	threshold int
	dump      bool
}

func argParse() {
	flag.IntVar(&options.capacity, "capacity", 1024*1024,
		"backing memory for the heap, in bytes")
	flag.IntVar(&options.blocksize, "blocksize", 16,
		"allocation granularity, in bytes")
	flag.IntVar(&options.maxalloc, "maxalloc", 256,
		"maximum allocation request, in bytes")
	flag.IntVar(&options.n, "n", 100000,
		"number of operations to run against the heap")
	flag.IntVar(&options.seed, "seed", 42,
		"random seed for the workload")
	flag.IntVar(&options.threshold, "threshold", -1,
		"auto-collect threshold in blocks, -1 to disable")
	flag.BoolVar(&options.dump, "dump", false,
		"dump the block table after the workload")
	flag.Parse()
}

// the workload's root set: every pointer in `live` keeps its object
// reachable across collections.
var live []uintptr

func main() {
	argParse()

	setts := s.Settings{
		"capacity":     int64(options.capacity),
		"blocksize":    int64(options.blocksize),
		"gc.threshold": int64(options.threshold),
	}
	roots := api.RootsFunc(func() [][]uintptr {
		return [][]uintptr{live}
	})
	h := heap.New("cmdline", setts, nil).Setroots(roots)

	rnd := rand.New(rand.NewSource(int64(options.seed)))
	now := time.Now()
	allocs, drops, reallocs, frees, fails := 0, 0, 0, 0, 0
	for i := 0; i < options.n; i++ {
		switch op := rnd.Intn(10); {
		case op < 6: // allocate and root the object
			size := int64(rnd.Intn(options.maxalloc) + 1)
			if ptr, ok := h.Alloc(size, false); ok {
				live = append(live, uintptr(ptr))
				allocs++
			} else {
				fails++
			}

		case op < 8: // drop a reference, collection reclaims it
			if len(live) > 0 {
				j := rnd.Intn(len(live))
				live[j] = live[len(live)-1]
				live = live[:len(live)-1]
				drops++
			}

		case op < 9: // resize a live object
			if len(live) > 0 {
				j := rnd.Intn(len(live))
				size := int64(rnd.Intn(options.maxalloc) + 1)
				ptr := unsafe.Pointer(live[j])
				if newptr, ok := h.Realloc(ptr, size, true); ok {
					live[j] = uintptr(newptr)
					reallocs++
				} else {
					fails++
				}
			}

		default: // free explicitly
			if len(live) > 0 {
				j := rnd.Intn(len(live))
				h.Free(unsafe.Pointer(live[j]))
				live[j] = live[len(live)-1]
				live = live[:len(live)-1]
				frees++
			}
		}
	}
	fmt.Printf("Took %v for %v operations\n", time.Since(now), options.n)
	fmt.Printf(
		"allocs: %v, drops: %v, reallocs: %v, frees: %v, failures: %v\n",
		allocs, drops, reallocs, frees, fails)

	printinfo(h)
	reclaimed := h.Collect()
	fmt.Printf("collection reclaimed %v objects\n", reclaimed)
	printinfo(h)
	if options.dump {
		h.Dump(os.Stdout)
	}
	h.Release()
}

func printinfo(h *heap.Heap) {
	info := h.Info()
	fmt.Printf("total: %v, used: %v, free: %v\n",
		hm.Bytes(uint64(info.Total)),
		hm.Bytes(uint64(info.Used)),
		hm.Bytes(uint64(info.Free)))
	fmt.Printf("1-blocks: %v, 2-blocks: %v, max blk sz: %v, max free sz: %v\n",
		info.N1block, info.N2block, info.Maxblck, info.Maxfree)
}
