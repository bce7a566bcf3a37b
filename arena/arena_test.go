package arena_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/flier/memarena/arena"
	"github.com/flier/memarena/arena/arenaerr"
)

func TestArena(t *testing.T) {
	Convey("Given a freshly initialized Arena", t, func() {
		a := new(arena.Arena)
		err := a.Init(arena.Config{Size: 64 * 1024, Name: "test"})
		So(err, ShouldBeNil)

		Convey("Then it reports its configured name", func() {
			So(a.Name(), ShouldEqual, "test")
		})

		Convey("Then it starts with no outstanding allocations", func() {
			s := a.Stats()
			So(s.UsedBytes, ShouldEqual, 0)
			So(s.AllocationCount, ShouldEqual, 0)
			So(s.BlockCount, ShouldEqual, 1)
		})

		Convey("Then it validates as internally consistent", func() {
			So(a.Validate(), ShouldBeNil)
		})

		Convey("When destroyed cleanly", func() {
			err := a.Destroy()

			Convey("Then Destroy reports no leak", func() {
				So(err, ShouldBeNil)
			})
		})

		Convey("When destroyed with an outstanding allocation", func() {
			_, err := a.Alloc(16)
			So(err, ShouldBeNil)

			err = a.Destroy()

			Convey("Then Destroy reports a leak", func() {
				So(err, ShouldNotBeNil)
				leak, ok := arenaerr.AsA[*arenaerr.LeakReport](err)
				So(ok, ShouldBeTrue)
				So(leak.Allocations, ShouldEqual, 1)
				So(leak.Deallocations, ShouldEqual, 0)
			})
		})

		Reset(func() {
			_ = a.Destroy()
		})
	})

	Convey("Given an Arena with a default (unnamed) config", t, func() {
		a := new(arena.Arena)
		err := a.Init(arena.Config{Size: 4096})
		So(err, ShouldBeNil)

		Convey("Then it gets a fallback name", func() {
			So(a.Name(), ShouldEqual, "unnamed")
		})

		Reset(func() {
			_ = a.Destroy()
		})
	})

	Convey("Given a bad configuration", t, func() {
		Convey("Zero size is rejected", func() {
			a := new(arena.Arena)
			err := a.Init(arena.Config{Size: 0})
			So(err, ShouldNotBeNil)
		})

		Convey("Non-power-of-two alignment is rejected", func() {
			a := new(arena.Arena)
			err := a.Init(arena.Config{Size: 4096, Alignment: 3})
			So(err, ShouldNotBeNil)
		})
	})
}
