package scoring_test

import (
	"testing"

	"github.com/jose-valero/fantasy-vct-bot/internal/app/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCache(t *testing.T) {
	Convey("Given an empty cache", t, func() {
		c := scoring.NewCache()

		Convey("Unknown athletes have no entries and a zero total", func() {
			_, ok := c.Retrieve(99, 1)
			So(ok, ShouldBeFalse)
			_, ok = c.RetrieveAll(99)
			So(ok, ShouldBeFalse)
			So(c.RetrieveTotal(99), ShouldEqual, 0)
		})

		Convey("When scores are stored", func() {
			c.Store(1, 101, 10.0)
			c.Store(1, 102, 15.25)
			c.Store(2, 101, 99.0)

			Convey("Retrieve returns the exact stored value", func() {
				v, ok := c.Retrieve(1, 102)
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, 15.25)
			})

			Convey("Retrieve of an unknown game misses", func() {
				_, ok := c.Retrieve(1, 999)
				So(ok, ShouldBeFalse)
			})

			Convey("RetrieveAll returns a copy", func() {
				all, ok := c.RetrieveAll(1)
				So(ok, ShouldBeTrue)
				So(all, ShouldResemble, map[int64]float64{101: 10.0, 102: 15.25})
				all[101] = -1
				v, _ := c.Retrieve(1, 101)
				So(v, ShouldEqual, 10.0)
			})

			Convey("RetrieveTotal is the rounded sum per athlete", func() {
				So(c.RetrieveTotal(1), ShouldEqual, 25.3)
				So(c.RetrieveTotal(2), ShouldEqual, 99.0)
			})

			Convey("A cached total survives new stores until invalidated", func() {
				So(c.RetrieveTotal(1), ShouldEqual, 25.3)
				c.Store(1, 103, 5.0)
				So(c.RetrieveTotal(1), ShouldEqual, 25.3)

				c.Invalidate()
				So(c.RetrieveTotal(1), ShouldEqual, 30.3)
			})

			Convey("Invalidate keeps per-game entries and reproduces the same total", func() {
				before := c.RetrieveTotal(1)
				c.Invalidate()
				_, ok := c.Retrieve(1, 101)
				So(ok, ShouldBeTrue)
				So(c.RetrieveTotal(1), ShouldEqual, before)
			})

			Convey("Stats track hits, misses and invalidations", func() {
				c.RetrieveTotal(1)
				c.RetrieveTotal(1)
				c.Invalidate()
				st := c.Stats()
				So(st.Athletes, ShouldEqual, 2)
				So(st.Misses, ShouldEqual, 1)
				So(st.Hits, ShouldEqual, 1)
				So(st.Invalidations, ShouldEqual, 1)
			})
		})
	})
}
