package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/jose-valero/fantasy-vct-bot/internal/domain"
)

func TestMapErr(t *testing.T) {
	Convey("Driver errors become domain errors", t, func() {
		So(mapErr(nil, "x"), ShouldBeNil)

		Convey("No rows is not found", func() {
			err := mapErr(sql.ErrNoRows, "team abc")
			So(errors.Is(err, domain.ErrNotFound), ShouldBeTrue)
			So(domain.UserMessage(err), ShouldEqual, "team abc not found")
		})

		Convey("Known unique constraints get their own message", func() {
			pg := &pgconn.PgError{Code: "23505", ConstraintName: "fantasy_teams_abbrev_lower_uq"}
			err := mapErr(fmt.Errorf("exec: %w", pg), "team")
			So(errors.Is(err, domain.ErrConflict), ShouldBeTrue)
			So(domain.UserMessage(err), ShouldEqual, "that abbreviation is taken")

			var got *pgconn.PgError
			So(errors.As(err, &got), ShouldBeTrue)
		})

		Convey("Unknown unique constraints fall back to the subject", func() {
			err := mapErr(&pgconn.PgError{Code: "23505", ConstraintName: "other"}, "owner")
			So(domain.UserMessage(err), ShouldEqual, "owner already exists")
		})

		Convey("Anything else passes through untouched", func() {
			pg := &pgconn.PgError{Code: "23503"}
			So(mapErr(pg, "slot") == error(pg), ShouldBeTrue)
		})
	})
}

func TestDurToInterval(t *testing.T) {
	Convey("Durations render as postgres intervals", t, func() {
		So(durToInterval(7*24*time.Hour), ShouldEqual, "604800 seconds")
		So(durToInterval(0), ShouldEqual, "0 seconds")
		So(durToInterval(-time.Second), ShouldEqual, "0 seconds")
	})
}
