package arena

// Stats is a point-in-time snapshot of an arena's accounting, maintained
// continuously so that Stats() itself is O(1). See LargestFreeBlock and
// FragmentationRatio for the two values computed on demand instead.
type Stats struct {
	UsedBytes         uint64
	PeakUsedBytes     uint64
	AllocationCount   uint64
	DeallocationCount uint64
	BlockCount        int
	FreeBlockCounts   [numSizeClasses]int
}

// FreeBlockTotal sums FreeBlockCounts across every size class.
func (s Stats) FreeBlockTotal() int {
	total := 0
	for _, c := range s.FreeBlockCounts {
		total += c
	}
	return total
}

// Stats returns a snapshot of the arena's current accounting.
func (a *Arena) Stats() Stats {
	a.checkOwner()

	var s Stats
	s.UsedBytes = a.usedBytes
	s.PeakUsedBytes = a.peakUsedBytes
	s.AllocationCount = a.allocCount
	s.DeallocationCount = a.deallocCount
	s.BlockCount = a.blockCount
	for i := range a.free {
		s.FreeBlockCounts[i] = a.free[i].count
	}
	return s
}

// LargestFreeBlock returns the largest payload size among all free
// blocks, or zero if none are free.
func (a *Arena) LargestFreeBlock() uint64 {
	a.checkOwner()

	var largest uint64
	for i := range a.free {
		for cur := a.free[i].head; cur != nullOffset; {
			b := a.blockAt(cur)
			if sz := b.payloadSize(); sz > largest {
				largest = sz
			}
			cur = b.freeNext()
		}
	}
	return largest
}

// FragmentationRatio returns block_count * headerSize / region_length,
// expressed as a percentage.
func (a *Arena) FragmentationRatio() float64 {
	if len(a.region) == 0 {
		return 0
	}
	return float64(a.blockCount*headerSize) / float64(len(a.region)) * 100
}
