package draft_test

import (
	"errors"
	"testing"

	"github.com/jose-valero/fantasy-vct-bot/internal/app/draft"
	"github.com/jose-valero/fantasy-vct-bot/internal/domain"
	. "github.com/smartystreets/goconvey/convey"
)

func drain(c *draft.Coordinator) []string {
	order := []string{c.Current()}
	for {
		next, ok := c.Advance()
		if !ok {
			return order
		}
		order = append(order, next)
	}
}

func TestBuildQueue(t *testing.T) {
	Convey("Given owners without shuffling", t, func() {
		Convey("Two owners and two rounds snake as B,A,A,B", func() {
			q := draft.BuildQueue([]string{"A", "B"}, 2, draft.NoShuffle{})
			So(q, ShouldResemble, []string{"B", "A", "A", "B"})
		})

		Convey("Three owners and three rounds produce k*r picks in serpentine order", func() {
			q := draft.BuildQueue([]string{"A", "B", "C"}, 3, draft.NoShuffle{})
			So(len(q), ShouldEqual, 9)
			So(q, ShouldResemble, []string{"C", "B", "A", "A", "B", "C", "C", "B", "A"})
		})

		Convey("The caller's slice is not mutated", func() {
			owners := []string{"A", "B", "C"}
			_ = draft.BuildQueue(owners, 2, draft.NoShuffle{})
			So(owners, ShouldResemble, []string{"A", "B", "C"})
		})
	})

	Convey("Given a seeded shuffler", t, func() {
		owners := []string{"A", "B", "C", "D", "E"}
		q1 := draft.BuildQueue(owners, 4, draft.NewSeededShuffler(7))
		q2 := draft.BuildQueue(owners, 4, draft.NewSeededShuffler(7))

		Convey("The same seed gives the same queue", func() {
			So(q1, ShouldResemble, q2)
		})

		Convey("Every round is the reverse of the previous one", func() {
			k := len(owners)
			So(len(q1), ShouldEqual, k*4)
			for r := 1; r < 4; r++ {
				prev := q1[(r-1)*k : r*k]
				cur := q1[r*k : (r+1)*k]
				for i := range k {
					So(cur[i], ShouldEqual, prev[k-1-i])
				}
			}
		})
	})
}

func TestCoordinator(t *testing.T) {
	Convey("Given a coordinator that has not started", t, func() {
		c := draft.New(draft.WithShuffler(draft.NoShuffle{}), draft.WithRounds(2))

		Convey("Nobody can pick", func() {
			So(c.State(), ShouldEqual, draft.NotStarted)
			So(c.CanPick("A"), ShouldBeFalse)
		})

		Convey("Starting with no owners is a validation error", func() {
			_, err := c.Start(nil)
			So(errors.Is(err, domain.ErrValidation), ShouldBeTrue)
			So(c.State(), ShouldEqual, draft.NotStarted)
		})

		Convey("When started with [A,B]", func() {
			first, err := c.Start([]string{"A", "B"})
			So(err, ShouldBeNil)

			Convey("The first drafter is B and only B can pick", func() {
				So(first, ShouldEqual, "B")
				So(c.State(), ShouldEqual, draft.InProgress)
				So(c.CanPick("B"), ShouldBeTrue)
				So(c.CanPick("A"), ShouldBeFalse)
			})

			Convey("Advancing yields A, A, B and then signals the end", func() {
				n1, ok1 := c.Advance()
				n2, ok2 := c.Advance()
				n3, ok3 := c.Advance()
				So([]string{n1, n2, n3}, ShouldResemble, []string{"A", "A", "B"})
				So(ok1 && ok2 && ok3, ShouldBeTrue)

				_, ok := c.Advance()
				So(ok, ShouldBeFalse)
				So(c.State(), ShouldEqual, draft.Complete)
				So(c.CanPick("A"), ShouldBeTrue)
				So(c.CanPick("anyone"), ShouldBeTrue)
			})

			Convey("Starting again is a state error", func() {
				_, err := c.Start([]string{"A", "B"})
				So(errors.Is(err, domain.ErrState), ShouldBeTrue)
			})

			Convey("SetRounds no longer has an effect", func() {
				So(c.SetRounds(5), ShouldBeNil)
				So(c.Rounds(), ShouldEqual, 2)
				So(len(c.Remaining()), ShouldEqual, 3)
			})
		})

		Convey("SetRounds before start changes the number of picks", func() {
			So(c.SetRounds(3), ShouldBeNil)
			_, err := c.Start([]string{"A", "B", "C"})
			So(err, ShouldBeNil)
			So(len(drain(c)), ShouldEqual, 9)
		})

		Convey("SetRounds rejects values below one", func() {
			So(errors.Is(c.SetRounds(0), domain.ErrValidation), ShouldBeTrue)
		})

		Convey("A single owner with one round completes on the first advance", func() {
			_ = c.SetRounds(1)
			first, _ := c.Start([]string{"A"})
			So(first, ShouldEqual, "A")
			_, ok := c.Advance()
			So(ok, ShouldBeFalse)
			So(c.Completed(), ShouldBeTrue)
		})

		Convey("Skip completes the draft from any state", func() {
			c.Skip()
			So(c.State(), ShouldEqual, draft.Complete)
			So(c.CanPick("whoever"), ShouldBeTrue)

			_, err := c.Start([]string{"A"})
			So(errors.Is(err, domain.ErrState), ShouldBeTrue)
		})

		Convey("Skip in the middle of a draft drops the remaining queue", func() {
			_, _ = c.Start([]string{"A", "B"})
			c.Skip()
			So(c.Remaining(), ShouldBeEmpty)
			So(c.Completed(), ShouldBeTrue)
		})
	})
}
