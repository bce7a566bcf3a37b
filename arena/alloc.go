package arena

import (
	"fmt"

	"github.com/flier/memarena/arena/arenaerr"
)

// alignUp rounds n up to the nearest multiple of alignment, which must be
// a power of two.
func alignUp(n, alignment int) int {
	return (n + alignment - 1) &^ (alignment - 1)
}

// Alloc returns a payload address of at least n bytes, aligned to the
// arena's configured alignment. It maps size to a starting size class,
// searches classes from there upward for a best fit (smallest
// satisfying block, stopping at the first perfect fit), splits the
// chosen block if the remainder is large enough to host another block,
// and marks it in-use.
//
// Alloc fails with arenaerr.ErrBadArgument if n <= 0, and with
// arenaerr.ErrOutOfMemory if no free-list bucket at or above the
// requested class holds a satisfying block (including the case where
// enough free bytes exist in aggregate but fragmented into blocks too
// small individually).
func (a *Arena) Alloc(n int) (int64, error) {
	a.checkOwner()

	if !a.alive() {
		return 0, fmt.Errorf("%w: arena %q is not initialized", arenaerr.ErrBadArgument, a.name)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: size must be positive, got %d", arenaerr.ErrBadArgument, n)
	}

	needed := uint64(alignUp(n, a.alignment))
	if minPayload > 0 && needed < minPayload {
		needed = minPayload
	}

	chosen, chosenClass, ok := a.findBestFit(needed)
	if !ok {
		a.log("alloc", "no fit for %d bytes (class %d)", needed, classOf(needed))
		return 0, fmt.Errorf("%w: no free block >= %d bytes", arenaerr.ErrOutOfMemory, needed)
	}

	a.removeFree(chosenClass, chosen)

	b := a.blockAt(chosen)
	a.maybeSplit(b, needed)

	b.setFree(false)

	a.allocCount++
	a.usedBytes += b.payloadSize()
	if a.usedBytes > a.peakUsedBytes {
		a.peakUsedBytes = a.usedBytes
	}

	a.log("alloc", "%d bytes at offset %d (requested %d)", b.payloadSize(), chosen, n)

	return b.payloadOffset(), nil
}

// findBestFit walks free-list buckets starting at classOf(needed),
// returning the smallest eligible block found, short-circuiting on the
// first perfect fit encountered during the walk.
func (a *Arena) findBestFit(needed uint64) (off int64, cls int, ok bool) {
	start := classOf(needed)

	for i := start; i < numSizeClasses; i++ {
		bucket := &a.free[i]

		var best int64 = nullOffset
		var bestSize uint64

		for cur := bucket.head; cur != nullOffset; {
			b := a.blockAt(cur)
			size := b.payloadSize()

			if size >= needed && (best == nullOffset || size < bestSize) {
				best = cur
				bestSize = size

				if size == needed {
					break // perfect fit: stop scanning this bucket immediately
				}
			}

			cur = b.freeNext()
		}

		if best != nullOffset {
			return best, i, true
		}
	}

	return 0, 0, false
}

// maybeSplit carves a free tail off b when the remainder after serving
// needed bytes is large enough to host another header plus the minimum
// payload. The tail is pushed onto its own size-class bucket; b's
// payload size shrinks to needed.
func (a *Arena) maybeSplit(b block, needed uint64) {
	total := b.payloadSize()
	if total-needed < uint64(headerSize)+minPayload {
		return
	}

	tailOff := b.off + int64(headerSize) + int64(needed)
	tailSize := total - needed - uint64(headerSize)

	tail := a.blockAt(tailOff)
	tail.setSignatures()
	tail.setPayloadSize(tailSize)
	tail.setFree(true)
	tail.setFreeLinks(nullOffset, nullOffset)

	oldNext := b.physNext()
	tail.setPhysLinks(oldNext, b.off)
	if oldNext != nullOffset {
		a.blockAt(oldNext).setPhysPrev(tailOff)
	}
	b.setPhysNext(tailOff)

	b.setPayloadSize(needed)

	a.blockCount++

	a.pushFree(classOf(tailSize), tailOff)

	a.log("split", "%d -> %d + %d", total, needed, tailSize)
}
