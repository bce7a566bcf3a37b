package arena

import "encoding/binary"

// headerSize is the fixed width of a block header, in bytes. Offsets
// within the arena's region are always header-aligned: a block's header
// starts at its offset, and its payload starts headerSize bytes later.
//
// Layout (all fields little-endian):
//
//	 0  sigHeader   uint32  headerSignature constant
//	 4  sigFooter   uint32  headerFooter constant (redundant check)
//	 8  payloadSize uint64  bytes of payload following the header
//	16  flags       uint8   bit 0: free
//	17  _           [7]byte reserved
//	24  freeNext    int64   offset of next block in this size-class bucket
//	32  freePrev    int64   offset of previous block in this size-class bucket
//	40  physNext    int64   offset of the next block in physical order
//	48  physPrev    int64   offset of the previous block in physical order
const headerSize = 56

const (
	offSigHeader   = 0
	offSigFooter   = 4
	offPayloadSize = 8
	offFlags       = 16
	offFreeNext    = 24
	offFreePrev    = 32
	offPhysNext    = 40
	offPhysPrev    = 48
)

const flagFree = 1 << 0

// block is a view onto one block header living at offset within a's
// region. It holds no data of its own; every accessor reads or writes
// directly into a.region, so a block is cheap to construct and never
// stale.
type block struct {
	a   *Arena
	off int64
}

// blockAt returns a view of the block header at off.
func (a *Arena) blockAt(off int64) block {
	return block{a: a, off: off}
}

func (b block) header() []byte {
	return b.a.region[b.off : b.off+headerSize]
}

func (b block) setSignatures() {
	h := b.header()
	binary.LittleEndian.PutUint32(h[offSigHeader:], headerSignature)
	binary.LittleEndian.PutUint32(h[offSigFooter:], headerFooter)
}

func (b block) valid() bool {
	if b.off < 0 || b.off+headerSize > int64(len(b.a.region)) {
		return false
	}
	h := b.header()
	return binary.LittleEndian.Uint32(h[offSigHeader:]) == headerSignature &&
		binary.LittleEndian.Uint32(h[offSigFooter:]) == headerFooter &&
		b.payloadSize() > 0
}

func (b block) payloadSize() uint64 {
	return binary.LittleEndian.Uint64(b.header()[offPayloadSize:])
}

func (b block) setPayloadSize(n uint64) {
	binary.LittleEndian.PutUint64(b.header()[offPayloadSize:], n)
}

func (b block) isFree() bool {
	return b.header()[offFlags]&flagFree != 0
}

func (b block) setFree(free bool) {
	h := b.header()
	if free {
		h[offFlags] |= flagFree
	} else {
		h[offFlags] &^= flagFree
	}
}

func (b block) freeNext() int64 { return int64(binary.LittleEndian.Uint64(b.header()[offFreeNext:])) }
func (b block) freePrev() int64 { return int64(binary.LittleEndian.Uint64(b.header()[offFreePrev:])) }

func (b block) setFreeLinks(next, prev int64) {
	h := b.header()
	binary.LittleEndian.PutUint64(h[offFreeNext:], uint64(next))
	binary.LittleEndian.PutUint64(h[offFreePrev:], uint64(prev))
}

func (b block) physNext() int64 { return int64(binary.LittleEndian.Uint64(b.header()[offPhysNext:])) }
func (b block) physPrev() int64 { return int64(binary.LittleEndian.Uint64(b.header()[offPhysPrev:])) }

func (b block) setPhysLinks(next, prev int64) {
	h := b.header()
	binary.LittleEndian.PutUint64(h[offPhysNext:], uint64(next))
	binary.LittleEndian.PutUint64(h[offPhysPrev:], uint64(prev))
}

func (b block) setPhysNext(next int64) {
	binary.LittleEndian.PutUint64(b.header()[offPhysNext:], uint64(next))
}

func (b block) setPhysPrev(prev int64) {
	binary.LittleEndian.PutUint64(b.header()[offPhysPrev:], uint64(prev))
}

// payloadOffset returns the offset of the first payload byte.
func (b block) payloadOffset() int64 { return b.off + headerSize }

// payload returns the block's payload bytes.
func (b block) payload() []byte {
	return b.a.region[b.payloadOffset() : b.payloadOffset()+int64(b.payloadSize())]
}

// end returns the offset one past the block's payload — where the next
// physical block, if any, must begin.
func (b block) end() int64 { return b.payloadOffset() + int64(b.payloadSize()) }
