package arena

import (
	"fmt"

	"github.com/timandy/routine"

	"github.com/flier/memarena/arena/arenaerr"
	"github.com/flier/memarena/internal/debug"
)

const (
	// arenaSignature marks a live Arena. Zeroed by Destroy so that Alloc,
	// Free and Validate on a destroyed (or zero-value) Arena fail their
	// check. Stats, Dump, LargestFreeBlock and Payload do not check it.
	arenaSignature uint32 = 0xDEADBEEF

	// headerSignature and headerFooter are the first two words of every
	// block header (offsets 0 and 4, see block.go). Sitting at the front
	// of the header, they catch an overrun from the preceding block's
	// payload. A write into the bytes just before this block's payload
	// lands on the physical links, not on either signature, and is not
	// detected by them.
	headerSignature uint32 = 0xCAFEBABE
	headerFooter    uint32 = 0xCAFEBABE

	// numSizeClasses is the number of free-list buckets.
	numSizeClasses = 32

	// minPayload is the smallest payload size a block may carry; also the
	// minimum remainder that justifies splitting a block.
	minPayload = 16

	// nullOffset marks the absence of a link (free-list or physical).
	nullOffset int64 = -1

	// defaultAlignment is used when Config.Alignment is zero.
	defaultAlignment = 8
)

// Config configures a new Arena. Size, Alignment and Name mirror the
// CLI's -s/-a/-n flags.
type Config struct {
	// Size is the number of bytes the arena should manage. Rounded up to
	// the OS page size by Init.
	Size int

	// Alignment is the payload alignment, a power of two >= 8. Zero means
	// defaultAlignment.
	Alignment int

	// Name is a human-readable label used in diagnostics and logs.
	Name string

	// Debug enables verbose per-operation logging via internal/debug.
	Debug bool
}

// noCopy causes `go vet` to flag accidental copies of an Arena, the same
// trick sync.Mutex itself relies on: implementing Lock/Unlock makes
// copylocks treat any containing struct as uncopyable.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// freeListBucket is one of the 32 size-class buckets: an unordered,
// doubly-linked list of free blocks, threaded through block headers by
// offset, plus a running count.
type freeListBucket struct {
	head  int64
	count int
}

// Arena owns one contiguous, page-aligned region of memory and serves
// Alloc/Free requests from it. See the package doc for usage.
//
// A zero Arena is not ready to use; call Init first.
type Arena struct {
	_ noCopy

	sig        uint32
	name       string
	region     []byte
	alignment  int
	firstBlock int64 // offset of the first physical block, or nullOffset

	free [numSizeClasses]freeListBucket

	usedBytes     uint64
	peakUsedBytes uint64
	allocCount    uint64
	deallocCount  uint64
	blockCount    int

	debugMode bool
	ownerGoid int64
	ownerSet  bool
}

// Init reserves a region of at least cfg.Size bytes (rounded up to the OS
// page size) and prepares the arena to serve Alloc/Free. It corresponds
// to the reference implementation's memory_pool_init.
//
// Init fails with arenaerr.ErrBadArgument if Size is zero or Alignment is
// not a power of two, and with arenaerr.ErrResourceExhausted if the OS
// refuses the reservation.
func (a *Arena) Init(cfg Config) error {
	if cfg.Size <= 0 {
		return fmt.Errorf("%w: size must be positive, got %d", arenaerr.ErrBadArgument, cfg.Size)
	}

	alignment := cfg.Alignment
	if alignment == 0 {
		alignment = defaultAlignment
	}
	if alignment < 8 || alignment&(alignment-1) != 0 {
		return fmt.Errorf("%w: alignment must be a power of two >= 8, got %d", arenaerr.ErrBadArgument, alignment)
	}

	region, err := reserveRegion(cfg.Size)
	if err != nil {
		return fmt.Errorf("%w: %v", arenaerr.ErrResourceExhausted, err)
	}

	name := cfg.Name
	if name == "" {
		name = "unnamed"
	}

	a.sig = arenaSignature
	a.name = name
	a.region = region
	a.alignment = alignment
	a.debugMode = cfg.Debug
	a.usedBytes = 0
	a.peakUsedBytes = 0
	a.allocCount = 0
	a.deallocCount = 0
	a.ownerGoid = routine.Goid()
	a.ownerSet = true

	for i := range a.free {
		a.free[i] = freeListBucket{head: nullOffset}
	}

	// The whole region starts as a single free block.
	a.firstBlock = 0
	b := a.blockAt(0)
	b.setSignatures()
	b.setPayloadSize(uint64(len(region) - headerSize))
	b.setFree(true)
	b.setFreeLinks(nullOffset, nullOffset)
	b.setPhysLinks(nullOffset, nullOffset)
	a.blockCount = 1

	cls := classOf(b.payloadSize())
	a.pushFree(cls, 0)

	a.log("init", "region=%d bytes, alignment=%d, name=%q", len(region), alignment, name)

	return nil
}

// Name returns the arena's human-readable label.
func (a *Arena) Name() string { return a.name }

// SetDebug toggles verbose per-operation logging via internal/debug.
func (a *Arena) SetDebug(enabled bool) {
	a.checkOwner()
	a.debugMode = enabled
}

// Debug reports whether verbose per-operation logging is enabled.
func (a *Arena) Debug() bool { return a.debugMode }

// Destroy releases the arena's region. After Destroy, every payload
// address previously returned by Alloc is invalid, and the arena's
// signature is zeroed so that further Alloc, Free and Validate calls
// fail their liveness check. Stats, Dump, LargestFreeBlock and Payload
// do not check liveness.
//
// If the number of allocations does not match the number of
// deallocations, Destroy releases the region anyway and returns a
// *arenaerr.LeakReport describing the imbalance.
func (a *Arena) Destroy() error {
	if a.sig != arenaSignature {
		return nil
	}

	a.checkOwner()

	var leak error
	if a.allocCount != a.deallocCount {
		leak = &arenaerr.LeakReport{Allocations: a.allocCount, Deallocations: a.deallocCount}
		a.log("destroy", "leak detected: %v", leak)
	}

	if err := releaseRegion(a.region); err != nil {
		debug.Assert(false, "failed to release region for arena %q: %v", a.name, err)
	}

	a.log("destroy", "pool %q released", a.name)

	a.sig = 0
	a.region = nil
	a.firstBlock = nullOffset
	for i := range a.free {
		a.free[i] = freeListBucket{head: nullOffset}
	}

	return leak
}

// checkOwner asserts, in debug builds only, that the calling goroutine is
// the one that called Init. This is the "mark it so" thread-affinity
// check the design calls for in lieu of real synchronization.
func (a *Arena) checkOwner() {
	if !a.ownerSet {
		return
	}
	debug.Assert(routine.Goid() == a.ownerGoid,
		"arena %q used from goroutine %d, but was initialized on goroutine %d",
		a.name, routine.Goid(), a.ownerGoid)
}

func (a *Arena) log(op, format string, args ...any) {
	if !a.debugMode {
		return
	}
	debug.Log([]any{"%q", a.name}, op, format, args...)
}

// alive reports whether the arena has been initialized and not yet
// destroyed.
func (a *Arena) alive() bool { return a.sig == arenaSignature }
