// Package arena provides a general-purpose, single-threaded intra-process
// heap allocator backed by one page-aligned region of memory.
//
// # Key Concepts
//
// Arena: one allocator instance, owning one contiguous region reserved
// from the OS at Init and released at Destroy. Unlike a bump allocator,
// an Arena supports individual Alloc/Free pairs: it maintains 32
// size-segregated free lists, does best-fit search within a class,
// splits oversized blocks, and coalesces freed blocks with their
// physical neighbors.
//
// Block: a run within the region, either free or in-use, carrying a
// fixed-size header immediately before its payload. Headers are
// addressed by byte offset from the region's base, never by raw
// pointer: the whole region is one []byte, so the Go garbage collector
// never has to trace pointers between blocks, and blocks remain valid
// across any slice backing-array relocation that never actually happens
// here (the region is reserved once, for the Arena's lifetime).
//
// # Usage
//
//	a := new(arena.Arena)
//	if err := a.Init(arena.Config{Size: 1 << 20, Alignment: 8, Name: "demo"}); err != nil {
//		// handle ResourceExhausted / BadArgument
//	}
//	defer a.Destroy()
//
//	p, err := a.Alloc(128)
//	if err != nil {
//		// OutOfMemory
//	}
//	// ... use the 128 bytes at p ...
//	if err := a.Free(p); err != nil {
//		// Corruption / DoubleFree
//	}
//
// # Memory Safety
//
//   - A payload address returned by Alloc is valid until passed to Free
//     or until Destroy is called, whichever comes first.
//   - Addresses from one Arena must never be passed to another Arena's
//     Free. Addresses are offsets into the issuing Arena's region, so
//     another Arena reports such an address as corruption only when the
//     offset does not land on a valid block header there; an offset that
//     matches one of its own blocks frees that block.
//   - The Arena is not safe for concurrent use. All operations must run
//     on the goroutine that called Init, and in debug builds this is
//     asserted (see internal/debug). Callers needing concurrent access
//     must wrap the Arena in their own mutex; the allocator itself stays
//     unaware of threading.
//
// # Non-goals
//
// No multithreaded allocator, no global allocator installation, no
// garbage collection or compaction, no large-object mmap fallback
// (a single allocation larger than the region simply fails), no
// per-allocation debug metadata beyond the header, and no cross-arena
// transfers.
package arena
