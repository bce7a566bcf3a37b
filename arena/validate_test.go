package arena_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/flier/memarena/arena"
)

func TestValidate(t *testing.T) {
	Convey("Given a freshly initialized Arena", t, func() {
		a := new(arena.Arena)
		So(a.Init(arena.Config{Size: 32 * 1024, Name: "validate"}), ShouldBeNil)
		Reset(func() { _ = a.Destroy() })

		Convey("It validates cleanly with no allocations", func() {
			So(a.Validate(), ShouldBeNil)
		})

		Convey("It validates cleanly after a sequence of alloc/free churn", func() {
			var addrs []int64
			for i := 0; i < 20; i++ {
				addr, err := a.Alloc(16 * (i%4 + 1))
				So(err, ShouldBeNil)
				addrs = append(addrs, addr)
			}
			for i, addr := range addrs {
				if i%3 == 0 {
					So(a.Free(addr), ShouldBeNil)
				}
			}

			So(a.Validate(), ShouldBeNil)
		})
	})
}
