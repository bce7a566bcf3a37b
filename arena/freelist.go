package arena

// pushFree inserts the block at off into the head of bucket cls's list.
// Insertion is O(1); the bucket's LIFO ordering means recently freed
// blocks (cache-warm) are favored by the allocation path's tie-break.
func (a *Arena) pushFree(cls int, off int64) {
	bucket := &a.free[cls]
	b := a.blockAt(off)

	b.setFree(true)
	b.setFreeLinks(bucket.head, nullOffset)

	if bucket.head != nullOffset {
		a.blockAt(bucket.head).setFreeLinks(a.blockAt(bucket.head).freeNext(), off)
	}

	bucket.head = off
	bucket.count++
}

// removeFree unlinks the block at off from bucket cls's list. The caller
// must know off is actually a member of that bucket.
func (a *Arena) removeFree(cls int, off int64) {
	bucket := &a.free[cls]
	b := a.blockAt(off)

	next, prev := b.freeNext(), b.freePrev()

	if prev != nullOffset {
		p := a.blockAt(prev)
		p.setFreeLinks(next, p.freePrev())
	} else {
		bucket.head = next
	}

	if next != nullOffset {
		n := a.blockAt(next)
		n.setFreeLinks(n.freeNext(), prev)
	}

	b.setFreeLinks(nullOffset, nullOffset)
	bucket.count--
}
