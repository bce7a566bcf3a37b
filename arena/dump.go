package arena

import (
	"fmt"
	"strings"
)

// Dump renders the block chain as text: a line naming the arena, then one
// line per block, in the format used by the original implementation's
// dump_pool_layout. For a 4096-byte arena after Alloc(100):
//
//	=== arena "demo" ===
//	block 0: USED size=104 addr=0x0
//	block 1: FREE size=3880 addr=0xa0
//
// The walk is bounded the same way Validate's is, to stay safe against
// catastrophic corruption.
func (a *Arena) Dump() string {
	a.checkOwner()

	var out strings.Builder

	fmt.Fprintf(&out, "=== arena %q ===\n", a.name)

	cur := a.firstBlock
	n := 0
	for cur != nullOffset && n < maxValidateBlocks {
		b := a.blockAt(cur)
		if !b.valid() {
			fmt.Fprintf(&out, "block %d: INVALID HEADER addr=0x%x\n", n, cur)
			break
		}

		status := "USED"
		if b.isFree() {
			status = "FREE"
		}

		fmt.Fprintf(&out, "block %d: %s size=%d addr=0x%x\n", n, status, b.payloadSize(), cur)

		cur = b.physNext()
		n++
	}

	if n >= maxValidateBlocks {
		fmt.Fprintf(&out, "... (truncated after %d blocks)\n", maxValidateBlocks)
	}

	return out.String()
}
