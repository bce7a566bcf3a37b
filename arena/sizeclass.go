package arena

// cutPoints holds the nine fixed size-class boundaries classes 0-8 cover,
// mirroring get_free_list_index in the original memory_pool.c exactly.
var cutPoints = [9]uint64{16, 32, 64, 128, 256, 512, 1024, 2048, 4096}

// classOf maps a requested or actual payload size to its free-list bucket
// index in [0, numSizeClasses). It is monotonic: size1 <= size2 implies
// classOf(size1) <= classOf(size2), which is what makes the best-fit
// search in Alloc correct.
//
// Classes 0-8 cover the fixed cut points {16, 32, ..., 4096}. Beyond that,
// class 9 starts at threshold 8192 and the threshold doubles per class
// until the size fits or class 31 (the last bucket) is reached.
func classOf(size uint64) int {
	for i, cut := range cutPoints {
		if size <= cut {
			return i
		}
	}

	index := 9
	threshold := uint64(8192)
	for index < numSizeClasses-1 && size > threshold {
		threshold *= 2
		index++
	}

	return index
}
