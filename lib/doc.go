// Package lib provide bit twiddling and statistics helpers that are
// not particularly tied up with the heap algorithm. They are meant to
// be small, self-contained and shall not depend on anything other
// than the standard library.
package lib
