package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func scrape(m *Metrics) string {
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	return rec.Body.String()
}

func TestMetrics(t *testing.T) {
	Convey("Given a fresh metrics set", t, func() {
		m := New()

		Convey("Commands are counted by name and outcome", func() {
			m.Command("draft", OutcomeOK, 120*time.Millisecond)
			m.Command("draft", OutcomeOK, 80*time.Millisecond)
			m.Command("draft", OutcomeUserError, time.Millisecond)
			out := scrape(m)
			So(out, ShouldContainSubstring, `fantasy_discord_commands_total{command="draft",outcome="ok"} 2`)
			So(out, ShouldContainSubstring, `fantasy_discord_commands_total{command="draft",outcome="user_error"} 1`)
			So(out, ShouldContainSubstring, `fantasy_discord_command_duration_seconds_count{command="draft"} 3`)
		})

		Convey("Draft picks update the remaining gauge", func() {
			m.DraftPick(5)
			m.DraftPick(4)
			out := scrape(m)
			So(out, ShouldContainSubstring, "fantasy_draft_picks_total 2")
			So(out, ShouldContainSubstring, "fantasy_draft_remaining_picks 4")
		})

		Convey("Cache snapshots are mirrored", func() {
			m.Cache(CacheStats{Athletes: 3, Hits: 10, Misses: 2, Invalidations: 1})
			out := scrape(m)
			So(out, ShouldContainSubstring, `fantasy_score_cache_lookups{result="hit"} 10`)
			So(out, ShouldContainSubstring, "fantasy_score_cache_athletes 3")
		})

		Convey("Uploads are counted by outcome", func() {
			m.Upload(OutcomeDuplicate)
			So(scrape(m), ShouldContainSubstring, `fantasy_results_uploads_total{outcome="duplicate"} 1`)
		})
	})

	Convey("A nil metrics set is a no-op", t, func() {
		var m *Metrics
		So(func() {
			m.Command("x", OutcomeOK, 0)
			m.DraftPick(1)
			m.Upload(OutcomeOK)
			m.Cache(CacheStats{})
		}, ShouldNotPanic)
	})
}
