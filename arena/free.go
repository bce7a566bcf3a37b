package arena

import (
	"fmt"

	"github.com/flier/memarena/arena/arenaerr"
)

// NullAddr is the sentinel "no address" value. Free(NullAddr) is a no-op;
// Alloc never returns it, since every real payload starts at least
// headerSize bytes into the region.
const NullAddr int64 = 0

// Free returns a payload address previously returned by Alloc on this
// same arena. It validates the header, rejects double frees, subtracts
// the block from used-byte accounting, coalesces with physical
// neighbors that are also free, and reinserts the resulting block into
// its size-class bucket.
//
// Free(NullAddr) is a no-op. An address whose header position does not
// hold a valid block header is reported as arenaerr.ErrCorruption, and
// the arena's state is left unmodified in that case. Addresses are
// offsets into the arena's own region, so an address from another arena
// that equals one of this arena's payload offsets is not detected and
// frees that block. A second Free of an already-freed address is reported as
// arenaerr.ErrDoubleFree and is likewise a no-op.
func (a *Arena) Free(addr int64) error {
	a.checkOwner()

	if addr == NullAddr {
		return nil
	}
	if !a.alive() {
		return fmt.Errorf("%w: arena %q is not initialized", arenaerr.ErrBadArgument, a.name)
	}

	off := addr - headerSize
	b := a.blockAt(off)

	if !b.valid() {
		a.log("free", "corruption at offset %d", off)
		return fmt.Errorf("%w: invalid header at offset %d", arenaerr.ErrCorruption, off)
	}

	if b.isFree() {
		a.log("free", "double free at offset %d", off)
		return fmt.Errorf("%w: offset %d already free", arenaerr.ErrDoubleFree, off)
	}

	a.usedBytes -= b.payloadSize()
	a.deallocCount++
	b.setFree(true)

	a.log("free", "%d bytes at offset %d", b.payloadSize(), off)

	merged := a.coalesce(b)

	a.pushFree(classOf(merged.payloadSize()), merged.off)

	return nil
}

// coalesce merges b with its physical neighbors while they are free,
// first forward (absorbing the next block into b) and then backward
// (absorbing b into its predecessor, which becomes the surviving,
// lower-address block). Adjacency is implied by construction: every
// block in one arena's physical chain is, by definition, adjacent to its
// physNext/physPrev, so unlike the original C implementation this does
// not re-derive adjacency from address arithmetic — see the debug.Assert
// in requireAdjacent for the defensive check this replaces.
func (a *Arena) coalesce(b block) block {
	for {
		next := b.physNext()
		if next == nullOffset {
			break
		}
		nb := a.blockAt(next)
		if !nb.valid() || !nb.isFree() {
			break
		}

		a.requireAdjacent(b, nb)
		a.removeFree(classOf(nb.payloadSize()), next)

		absorbed := uint64(headerSize) + nb.payloadSize()
		b.setPayloadSize(b.payloadSize() + absorbed)

		newNext := nb.physNext()
		b.setPhysNext(newNext)
		if newNext != nullOffset {
			a.blockAt(newNext).setPhysPrev(b.off)
		}

		a.blockCount--
		a.log("coalesce", "forward: new size %d", b.payloadSize())
	}

	for {
		prev := b.physPrev()
		if prev == nullOffset {
			break
		}
		pb := a.blockAt(prev)
		if !pb.valid() || !pb.isFree() {
			break
		}

		a.requireAdjacent(pb, b)
		a.removeFree(classOf(pb.payloadSize()), prev)

		absorbed := uint64(headerSize) + b.payloadSize()
		pb.setPayloadSize(pb.payloadSize() + absorbed)

		newNext := b.physNext()
		pb.setPhysNext(newNext)
		if newNext != nullOffset {
			a.blockAt(newNext).setPhysPrev(pb.off)
		}

		a.blockCount--
		b = pb
		a.log("coalesce", "backward: new size %d", b.payloadSize())
	}

	return b
}

// requireAdjacent is a defensive assertion, not a logical guard: within
// one arena every physical-chain neighbor is adjacent by construction.
func (a *Arena) requireAdjacent(lower, upper block) {
	debugAssertAdjacent(lower, upper)
}
