package lib

import "math/bits"

// Bit64 alias for uint64, provides bit twiddling methods on 64-bit number.
type Bit64 uint64

func (b Bit64) Ones() int8 {
	return int8(bits.OnesCount64(uint64(b)))
}

func (b Bit64) Zeros() int8 {
	return 64 - b.Ones()
}

// Findfirstset return the position of the least significant set bit,
// -1 if all bits are clear.
func (b Bit64) Findfirstset() int8 {
	if b == 0 {
		return -1
	}
	return int8(bits.TrailingZeros64(uint64(b)))
}

// Findfirstclear return the position of the least significant clear bit,
// -1 if all bits are set.
func (b Bit64) Findfirstclear() int8 {
	return (^b).Findfirstset()
}

func (b Bit64) Setbit(n uint8) Bit64 {
	return b | (1 << n)
}

func (b Bit64) Clearbit(n uint8) Bit64 {
	return b & ^(Bit64(1) << n)
}

func (b Bit64) Isset(n uint8) bool {
	return (b & (1 << n)) != 0
}
