package heap

import "fmt"
import "io"

const dumpblocksperline = int64(64)

// Dump render the block table onto w, one character per block:
// '.' free, 'h' head, '=' tail, 'm' marked head. A diagnostic
// surface, not part of the functional contract.
func (h *Heap) Dump(w io.Writer) {
	h.gcenter()
	defer h.gcexit()

	for block := int64(0); block < h.nblocks; block++ {
		if (block % dumpblocksperline) == 0 {
			if block > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "%05x: ", block)
		}
		c := byte('.')
		switch h.table.kind(block) {
		case blkhead:
			c = 'h'
		case blktail:
			c = '='
		case blkmark:
			c = 'm'
		}
		w.Write([]byte{c})
	}
	fmt.Fprintln(w)
}
