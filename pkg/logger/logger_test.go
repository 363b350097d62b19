package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInitWriter(t *testing.T) {
	Convey("Given a JSON logger at warn level", t, func() {
		var buf bytes.Buffer
		InitWriter(&buf, "WARN", false)
		Reset(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

		Convey("Info lines are dropped", func() {
			log.Info().Msg("hidden")
			So(buf.Len(), ShouldEqual, 0)
		})

		Convey("Component loggers tag their lines", func() {
			l := Component("draft")
			l.Warn().Str("owner", "42").Msg("turn skipped")

			var line map[string]any
			So(json.Unmarshal(buf.Bytes(), &line), ShouldBeNil)
			So(line["component"], ShouldEqual, "draft")
			So(line["owner"], ShouldEqual, "42")
			So(line["message"], ShouldEqual, "turn skipped")
		})
	})

	Convey("Unknown levels fall back to info", t, func() {
		var buf bytes.Buffer
		InitWriter(&buf, "loud", false)
		So(zerolog.GlobalLevel(), ShouldEqual, zerolog.InfoLevel)
	})
}
