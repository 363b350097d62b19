package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jose-valero/fantasy-vct-bot/internal/app/service"
	"github.com/jose-valero/fantasy-vct-bot/internal/domain"
	. "github.com/smartystreets/goconvey/convey"
)

type stubUploader struct {
	err   error
	calls []string
}

func (u *stubUploader) UploadMatch(_ context.Context, matchID, event string) (string, error) {
	u.calls = append(u.calls, matchID+"@"+event)
	return "", u.err
}

func TestFetcher(t *testing.T) {
	ctx := context.Background()

	Convey("Given a tracked event and a feed of recent results", t, func() {
		st, src, l := scoredLeague()
		_, _ = l.TrackEvent(ctx, "Masters Shanghai")
		st.addResult(11, 103, 700, domain.StatLine{Kills: 1})
		src.matches["100"] = oneGame(100, 500, "TenZ", "Derke", 5, 5)

		feed := &fakeFeed{recent: []domain.RecentMatch{
			{MatchID: 100, Event: "Masters Shanghai"},
			{MatchID: 101, Event: "Challengers NA"},
			{MatchID: 102, Event: "masters shanghai"},
			{MatchID: 103, Event: "Masters Shanghai"},
		}}

		Convey("Only new matches of tracked events are uploaded", func() {
			f := service.NewFetcher(feed, st, l, 0, nil)
			sum, err := f.RunOnce(ctx)
			So(err, ShouldBeNil)
			So(sum.Seen, ShouldEqual, 3)
			So(sum.Uploaded, ShouldEqual, 1)
			So(sum.Failed, ShouldEqual, 1)
			So(sum.Duplicates, ShouldEqual, 0)

			exists, _ := st.MatchExists(ctx, 100)
			So(exists, ShouldBeTrue)
			exists, _ = st.MatchExists(ctx, 101)
			So(exists, ShouldBeFalse)
		})

		Convey("The tracked event name is passed to the uploader", func() {
			up := &stubUploader{}
			f := service.NewFetcher(feed, st, up, 0, nil)
			_, err := f.RunOnce(ctx)
			So(err, ShouldBeNil)
			So(up.calls, ShouldResemble, []string{"100@Masters Shanghai", "102@Masters Shanghai"})
		})

		Convey("Conflicts count as duplicates", func() {
			up := &stubUploader{err: domain.Conflict("This match has already been uploaded.")}
			sum, err := service.NewFetcher(feed, st, up, 0, nil).RunOnce(ctx)
			So(err, ShouldBeNil)
			So(sum.Duplicates, ShouldEqual, 2)
		})

		Convey("Nothing tracked means nothing uploaded", func() {
			_, _ = l.UntrackEvent(ctx, "Masters Shanghai")
			up := &stubUploader{}
			sum, err := service.NewFetcher(feed, st, up, 0, nil).RunOnce(ctx)
			So(err, ShouldBeNil)
			So(sum.Seen, ShouldEqual, 0)
			So(up.calls, ShouldBeEmpty)
		})

		Convey("Feed errors abort the pass", func() {
			feed.err = errBoom
			_, err := service.NewFetcher(feed, st, &stubUploader{}, 0, nil).RunOnce(ctx)
			So(errors.Is(err, errBoom), ShouldBeTrue)
		})

		Convey("Run stops when the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			up := &stubUploader{}
			err := service.NewFetcher(feed, st, up, 0, nil).Run(cctx, 1)
			So(err, ShouldBeNil)
		})
	})
}
