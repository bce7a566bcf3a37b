// Package arenaerr defines the error taxonomy shared by package arena:
// the sentinel kinds an Arena operation can fail with, plus the richer
// values returned by Validate and Destroy.
package arenaerr

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per kind in the arena's error taxonomy. Operations
// wrap these with fmt.Errorf("%w: ...") to attach context; callers should
// compare with errors.Is against these values, not against the wrapped
// message.
var (
	// ErrBadArgument is returned when a caller passes a zero size, a
	// non-power-of-two alignment, or otherwise malformed input. Detected
	// at entry; the operation is a no-op.
	ErrBadArgument = errors.New("arena: bad argument")

	// ErrResourceExhausted is returned by Init when the OS refuses the
	// initial region reservation.
	ErrResourceExhausted = errors.New("arena: resource exhausted")

	// ErrOutOfMemory is returned by Alloc when no free-list bucket at or
	// above the requested class holds a satisfying block, whether because
	// the region is genuinely full or because of fragmentation.
	ErrOutOfMemory = errors.New("arena: out of memory")

	// ErrCorruption is returned by Free (and surfaced by Validate) when a
	// block header's signatures do not match their expected constants.
	ErrCorruption = errors.New("arena: corruption detected")

	// ErrDoubleFree is returned by Free when called on a block already
	// marked free.
	ErrDoubleFree = errors.New("arena: double free detected")
)

// Violation describes the first invariant Validate found broken while
// walking the block chain and free lists.
type Violation struct {
	Kind   string
	Detail string
}

func (v *Violation) Error() string {
	return fmt.Sprintf("arena: validation failed: %s: %s", v.Kind, v.Detail)
}

// LeakReport is returned by Arena.Destroy when the allocation count does
// not match the deallocation count. It is a warning, not a fatal error:
// the arena's region is still released.
type LeakReport struct {
	Allocations   uint64
	Deallocations uint64
}

func (l *LeakReport) Error() string {
	return fmt.Sprintf("arena: leak detected: %d allocations, %d deallocations (%d outstanding)",
		l.Allocations, l.Deallocations, l.Allocations-l.Deallocations)
}

// AsA is a generic wrapper around errors.As for recovering a specific
// error value (or *Violation / *LeakReport) from a possibly-wrapped error.
func AsA[T error](err error) (_ T, ok bool) {
	var e T

	if errors.As(err, &e) {
		return e, true
	}

	var zero T

	return zero, false
}
