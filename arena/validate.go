package arena

import (
	"fmt"

	"github.com/flier/memarena/arena/arenaerr"
)

// maxValidateBlocks bounds the validator's chain walk so that
// catastrophic corruption (e.g. a physical-link cycle) cannot turn
// Validate into an infinite loop.
const maxValidateBlocks = 10000

// Validate walks the block chain and every free-list bucket and returns
// the first violation it finds. It checks the arena signature, every
// block header, that each block ends where the next begins (the last at
// the region's end), the tracked block count, that no two adjacent
// blocks are both free, that every free-list member is free, in its
// proper class and on the chain, and that the in-use payload sum equals
// the tracked used bytes. It does not check the physPrev links, the
// per-bucket counts, or that every free block on the chain is in a
// bucket. A nil return means none of these checks failed.
func (a *Arena) Validate() error {
	a.checkOwner()

	if a.sig != arenaSignature {
		return &arenaerr.Violation{Kind: "signature", Detail: "arena signature mismatch"}
	}

	seen := make(map[int64]bool, a.blockCount)

	var (
		count       int
		usedSum     uint64
		prevWasFree bool
	)

	cur := a.firstBlock
	for cur != nullOffset {
		if count >= maxValidateBlocks {
			return &arenaerr.Violation{Kind: "chain", Detail: "block count exceeds bound, possible corruption"}
		}

		b := a.blockAt(cur)
		if !b.valid() {
			return &arenaerr.Violation{Kind: "header", Detail: fmt.Sprintf("invalid header at offset %d", cur)}
		}

		if b.isFree() && prevWasFree {
			return &arenaerr.Violation{Kind: "coalescing", Detail: fmt.Sprintf("two adjacent free blocks at offset %d", cur)}
		}

		next := b.physNext()
		if next != nullOffset {
			if b.end() != next {
				return &arenaerr.Violation{Kind: "chain", Detail: fmt.Sprintf("block at %d does not end where block at %d begins", cur, next)}
			}
		} else if b.end() != int64(len(a.region)) {
			return &arenaerr.Violation{Kind: "chain", Detail: fmt.Sprintf("last block at %d does not end at region boundary", cur)}
		}

		if !b.isFree() {
			usedSum += b.payloadSize()
		}

		seen[cur] = true
		prevWasFree = b.isFree()
		count++
		cur = next
	}

	if count != a.blockCount {
		return &arenaerr.Violation{Kind: "accounting", Detail: fmt.Sprintf("chain has %d blocks, tracked block_count is %d", count, a.blockCount)}
	}

	for i := range a.free {
		for cur := a.free[i].head; cur != nullOffset; {
			b := a.blockAt(cur)

			if !b.valid() || !b.isFree() {
				return &arenaerr.Violation{Kind: "free-list", Detail: fmt.Sprintf("non-free or invalid block at offset %d in bucket %d", cur, i)}
			}
			if classOf(b.payloadSize()) != i {
				return &arenaerr.Violation{Kind: "free-list", Detail: fmt.Sprintf("block at offset %d belongs in class %d, found in bucket %d", cur, classOf(b.payloadSize()), i)}
			}
			if !seen[cur] {
				return &arenaerr.Violation{Kind: "free-list", Detail: fmt.Sprintf("block at offset %d in bucket %d is not reachable from the physical chain", cur, i)}
			}

			cur = b.freeNext()
		}
	}

	if usedSum != a.usedBytes {
		return &arenaerr.Violation{Kind: "accounting", Detail: fmt.Sprintf("computed used bytes %d does not match tracked %d", usedSum, a.usedBytes)}
	}

	return nil
}
