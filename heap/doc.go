// Package heap supplies a tracing, non-moving, stop-the-world memory
// manager for language runtimes embedded in a fixed memory budget,
// with a limited scope:
//
//  * Types and Functions exported by this package are not thread
//    safe unless the heap is created with "threadsafe" settings.
//  * A heap manages exactly one contiguous byte range, handed over
//    at creation time, and never asks for more.
//  * The range is partitioned into fixed size blocks, tracked by
//    packed bit-vectors living at the tail of the same range.
//  * An allocation is a run of blocks, one HEAD followed by zero or
//    more TAIL blocks. Runs never move while alive, except through
//    Realloc with allowmove.
//  * Collection is conservative mark and sweep over caller supplied
//    root ranges, synchronous on the calling goroutine.
//
// Applications create one heap at startup and keep it for the
// process lifetime. Collection is either driven manually through
// CollectStart/CollectRoot/CollectEnd, or delegated to a configured
// api.RootSupplier, in which case the allocator collects on demand
// when the pool is exhausted or the allocation threshold trips.
package heap
