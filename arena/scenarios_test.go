package arena_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/flier/memarena/arena"
)

// TestScenarioSplitThenCoalesce covers S1: allocating a block out of a
// fresh region splits off a free tail, and freeing it restores a single
// free block.
func TestScenarioSplitThenCoalesce(t *testing.T) {
	Convey("Given a 4096-byte arena", t, func() {
		a := new(arena.Arena)
		So(a.Init(arena.Config{Size: 4096, Alignment: 8, Name: "t1"}), ShouldBeNil)
		Reset(func() { _ = a.Destroy() })

		Convey("alloc(100) splits off a free tail", func() {
			p1, err := a.Alloc(100)
			So(err, ShouldBeNil)

			s := a.Stats()
			So(s.UsedBytes, ShouldEqual, 104)
			So(s.BlockCount, ShouldEqual, 2)

			Convey("freeing it restores a single free block", func() {
				So(a.Free(p1), ShouldBeNil)

				s := a.Stats()
				So(s.UsedBytes, ShouldEqual, 0)
				So(s.BlockCount, ShouldEqual, 1)
			})
		})
	})
}

// TestScenarioBestFitWithinClass covers S2: freeing the middle of three
// equal allocations, then a smaller request, must reuse that exact hole.
func TestScenarioBestFitWithinClass(t *testing.T) {
	Convey("Given a 64 KiB arena with three equal allocations", t, func() {
		a := new(arena.Arena)
		So(a.Init(arena.Config{Size: 64 * 1024, Name: "t2"}), ShouldBeNil)
		Reset(func() { _ = a.Destroy() })

		p1, err := a.Alloc(48)
		So(err, ShouldBeNil)
		p2, err := a.Alloc(48)
		So(err, ShouldBeNil)
		p3, err := a.Alloc(48)
		So(err, ShouldBeNil)

		So(a.Free(p2), ShouldBeNil)

		Convey("alloc(40) reuses the freed hole at p2's address", func() {
			p4, err := a.Alloc(40)
			So(err, ShouldBeNil)
			So(p4, ShouldEqual, p2)
		})

		_ = p1
		_ = p3
	})
}

// TestScenarioForwardAndBackwardCoalescing covers S3: freeing the two
// outer blocks of a formerly-split three-block run merges everything
// back into one.
func TestScenarioForwardAndBackwardCoalescing(t *testing.T) {
	Convey("Given three adjacent allocations with the middle one freed", t, func() {
		a := new(arena.Arena)
		So(a.Init(arena.Config{Size: 64 * 1024, Name: "t3"}), ShouldBeNil)
		Reset(func() { _ = a.Destroy() })

		p1, err := a.Alloc(48)
		So(err, ShouldBeNil)
		p2, err := a.Alloc(48)
		So(err, ShouldBeNil)
		p3, err := a.Alloc(48)
		So(err, ShouldBeNil)

		So(a.Free(p2), ShouldBeNil)

		Convey("freeing both outer blocks merges the whole run into one free block", func() {
			So(a.Free(p1), ShouldBeNil)
			So(a.Free(p3), ShouldBeNil)

			s := a.Stats()
			So(s.BlockCount, ShouldEqual, 1)
			So(s.UsedBytes, ShouldEqual, 0)
		})
	})
}

// TestScenarioDoubleFree covers S4: a second Free of the same address
// reports DoubleFree and does not double-count the deallocation.
func TestScenarioDoubleFree(t *testing.T) {
	Convey("Given one live allocation", t, func() {
		a := new(arena.Arena)
		So(a.Init(arena.Config{Size: 4096, Name: "t4"}), ShouldBeNil)
		Reset(func() { _ = a.Destroy() })

		p, err := a.Alloc(32)
		So(err, ShouldBeNil)

		Convey("the first free succeeds and the second reports DoubleFree", func() {
			So(a.Free(p), ShouldBeNil)

			err := a.Free(p)
			So(err, ShouldNotBeNil)

			So(a.Stats().DeallocationCount, ShouldEqual, 1)
		})
	})
}

// TestScenarioFragmentationInducedOOM covers S6: many small allocations
// leave the region fully fragmented into pieces too small to satisfy a
// slightly larger request, even though half the bytes are free.
func TestScenarioFragmentationInducedOOM(t *testing.T) {
	Convey("Given a 16 KiB arena filled with 16-byte blocks", t, func() {
		a := new(arena.Arena)
		So(a.Init(arena.Config{Size: 16 * 1024, Name: "t6"}), ShouldBeNil)
		Reset(func() { _ = a.Destroy() })

		var addrs []int64
		for {
			addr, err := a.Alloc(16)
			if err != nil {
				break
			}
			addrs = append(addrs, addr)
		}
		So(len(addrs), ShouldBeGreaterThan, 0)

		for i := 0; i < len(addrs); i += 2 {
			So(a.Free(addrs[i]), ShouldBeNil)
		}

		Convey("alloc(32) fails despite roughly half the region being free", func() {
			_, err := a.Alloc(32)
			So(err, ShouldNotBeNil)
			So(a.Validate(), ShouldBeNil)
		})
	})
}
