package arena_test

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/flier/memarena/arena"
)

func TestStatsAndDump(t *testing.T) {
	Convey("Given an Arena with mixed allocations", t, func() {
		a := new(arena.Arena)
		So(a.Init(arena.Config{Size: 16 * 1024, Name: "dump"}), ShouldBeNil)
		Reset(func() { _ = a.Destroy() })

		a1, err := a.Alloc(32)
		So(err, ShouldBeNil)
		_, err = a.Alloc(64)
		So(err, ShouldBeNil)
		So(a.Free(a1), ShouldBeNil)

		Convey("LargestFreeBlock reflects the biggest free span", func() {
			So(a.LargestFreeBlock(), ShouldBeGreaterThan, 0)
		})

		Convey("FragmentationRatio is a small positive percentage", func() {
			ratio := a.FragmentationRatio()
			So(ratio, ShouldBeGreaterThan, 0)
			So(ratio, ShouldBeLessThan, 100)
		})

		Convey("Dump renders one line per block and includes the arena name", func() {
			out := a.Dump()
			So(out, ShouldContainSubstring, `"dump"`)
			lines := strings.Split(strings.TrimSpace(out), "\n")
			So(len(lines), ShouldBeGreaterThanOrEqualTo, 3)
		})
	})
}
