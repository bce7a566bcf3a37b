package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/flier/memarena/arena"
)

// selfTestSizes mirrors the allocation sizes the reference
// test_memory_pool harness exercises: one per size class near the lower
// cut-points, so splitting and class routing both get covered.
var selfTestSizes = []int{16, 32, 64, 128, 256, 512, 1024, 2048}

// runSelfTest allocates selfTestSizes, writes and verifies a byte pattern
// through Payload, frees every other allocation, reports stats,
// reallocates the freed slots at double size, reports stats again, then
// frees everything and validates the arena is back to a clean state.
func runSelfTest(a *arena.Arena, logger *zap.Logger) {
	fmt.Println("running self-test...")

	addrs := make([]int64, len(selfTestSizes))

	for i, n := range selfTestSizes {
		addr, err := a.Alloc(n)
		if err != nil {
			logger.Error("self-test alloc failed", zap.Int("size", n), zap.Error(err))
			fmt.Printf("FAIL: alloc(%d): %v\n", n, err)
			return
		}
		addrs[i] = addr

		payload := a.Payload(addr)
		for j := range payload {
			payload[j] = byte(i)
		}
	}

	for i, n := range selfTestSizes {
		payload := a.Payload(addrs[i])
		for j, b := range payload {
			if b != byte(i) {
				fmt.Printf("FAIL: pattern mismatch at slot %d byte %d: got %d want %d\n", i, j, b, i)
				return
			}
		}
		_ = n
	}
	fmt.Println("pattern verification: ok")

	for i := 0; i < len(addrs); i += 2 {
		if err := a.Free(addrs[i]); err != nil {
			logger.Error("self-test free failed", zap.Error(err))
			fmt.Printf("FAIL: free(0x%x): %v\n", addrs[i], err)
			return
		}
		addrs[i] = arena.NullAddr
	}

	fmt.Println("after freeing every other allocation:")
	printStats(a)

	for i := 0; i < len(addrs); i += 2 {
		addr, err := a.Alloc(selfTestSizes[i] * 2)
		if err != nil {
			logger.Error("self-test realloc failed", zap.Error(err))
			fmt.Printf("FAIL: alloc(%d): %v\n", selfTestSizes[i]*2, err)
			return
		}
		addrs[i] = addr
	}

	fmt.Println("after reallocating freed slots at double size:")
	printStats(a)

	for _, addr := range addrs {
		if addr == arena.NullAddr {
			continue
		}
		if err := a.Free(addr); err != nil {
			logger.Error("self-test cleanup free failed", zap.Error(err))
			fmt.Printf("FAIL: free(0x%x): %v\n", addr, err)
			return
		}
	}

	fmt.Println("after freeing everything:")
	printStats(a)

	if err := a.Validate(); err != nil {
		fmt.Println("FAIL: validate:", err)
		return
	}

	fmt.Println("self-test: PASS")
}

func printStats(a *arena.Arena) {
	s := a.Stats()
	fmt.Printf("  used=%d peak=%d allocs=%d frees=%d blocks=%d free_blocks=%d\n",
		s.UsedBytes, s.PeakUsedBytes, s.AllocationCount, s.DeallocationCount,
		s.BlockCount, s.FreeBlockTotal())
}
