package arena

// Payload returns the raw bytes backing the block at addr, a value
// previously returned by Alloc. The returned slice aliases the arena's
// region directly: writes through it are visible to later reads of the
// same address, and the slice must not be retained past the matching
// Free or the arena's Destroy.
//
// This is the "type-erased payload" the design calls for: callers that
// want a typed view can wrap this slice themselves (e.g. via
// encoding/binary, or an unsafe cast when the layout is known to be
// pointer-free), but the arena itself never assumes a type.
func (a *Arena) Payload(addr int64) []byte {
	a.checkOwner()

	off := addr - headerSize
	b := a.blockAt(off)
	if !b.valid() {
		return nil
	}
	return b.payload()
}
