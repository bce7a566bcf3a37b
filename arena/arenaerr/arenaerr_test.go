package arenaerr_test

import (
	"errors"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	. "github.com/flier/memarena/arena/arenaerr"
)

func TestSentinels(t *testing.T) {
	Convey("Given a wrapped sentinel error", t, func() {
		err := fmt.Errorf("%w: size must be positive, got %d", ErrBadArgument, -1)

		Convey("errors.Is matches the sentinel", func() {
			So(errors.Is(err, ErrBadArgument), ShouldBeTrue)
		})

		Convey("errors.Is does not match an unrelated sentinel", func() {
			So(errors.Is(err, ErrOutOfMemory), ShouldBeFalse)
		})
	})
}

func TestViolation(t *testing.T) {
	Convey("Given a Violation", t, func() {
		v := &Violation{Kind: "header", Detail: "invalid header at offset 0"}

		Convey("Its message names the kind and detail", func() {
			So(v.Error(), ShouldContainSubstring, "header")
			So(v.Error(), ShouldContainSubstring, "invalid header at offset 0")
		})

		Convey("AsA recovers it through a wrapping layer", func() {
			wrapped := fmt.Errorf("validate failed: %w", v)

			got, ok := AsA[*Violation](wrapped)
			So(ok, ShouldBeTrue)
			So(got, ShouldEqual, v)
		})
	})
}

func TestLeakReport(t *testing.T) {
	Convey("Given a LeakReport with outstanding allocations", t, func() {
		l := &LeakReport{Allocations: 5, Deallocations: 3}

		Convey("Its message reports the imbalance", func() {
			So(l.Error(), ShouldContainSubstring, "5 allocations")
			So(l.Error(), ShouldContainSubstring, "3 deallocations")
			So(l.Error(), ShouldContainSubstring, "2 outstanding")
		})

		Convey("AsA recovers it directly", func() {
			got, ok := AsA[*LeakReport](l)
			So(ok, ShouldBeTrue)
			So(got, ShouldEqual, l)
		})
	})
}

func TestAsANoMatch(t *testing.T) {
	Convey("Given an error that is not a Violation", t, func() {
		err := ErrCorruption

		Convey("AsA for Violation fails", func() {
			_, ok := AsA[*Violation](err)
			So(ok, ShouldBeFalse)
		})
	})
}
