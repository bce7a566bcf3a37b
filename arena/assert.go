package arena

import "github.com/flier/memarena/internal/debug"

// debugAssertAdjacent checks, in debug builds only, that lower's payload
// ends exactly where upper's header begins. This is redundant with the
// physical-chain links by construction (every block in one arena is
// adjacent to its physNext/physPrev), so it is kept as a defensive
// assertion rather than a condition coalesce branches on.
func debugAssertAdjacent(lower, upper block) {
	debug.Assert(lower.end() == upper.off,
		"non-adjacent blocks in physical chain: %d + header != %d", lower.end(), upper.off)
}
