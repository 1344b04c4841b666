package api

import "unsafe"

// RootSupplier is the embedding runtime's boundary for conservative
// root scanning. Roots shall return every word range the runtime
// considers always reachable: interpreter globals, secondary
// execution stacks and so on. Ranges omitted here lead to premature
// reclamation, the heap cannot detect the omission.
type RootSupplier interface {
	Roots() [][]uintptr
}

// RootsFunc adapt a plain function into a RootSupplier.
type RootsFunc func() [][]uintptr

func (fn RootsFunc) Roots() [][]uintptr {
	return fn()
}

// Finaliser is the runtime's boundary for object finalisation. The
// heap calls Finalise for every reclaimed chunk whose finalise flag
// was set at allocation time. Panics raised by Finalise are caught
// and discarded by the sweeper. Finalise must not assume it can
// allocate, allocation during a sweep always fails.
type Finaliser interface {
	Finalise(ptr unsafe.Pointer)
}

// FinaliserFunc adapt a plain function into a Finaliser.
type FinaliserFunc func(ptr unsafe.Pointer)

func (fn FinaliserFunc) Finalise(ptr unsafe.Pointer) {
	fn(ptr)
}
