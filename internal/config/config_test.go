package config

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNew(t *testing.T) {
	Convey("Given a default config", t, func() {
		cfg := New(context.Background())

		Convey("Then it should carry sane defaults", func() {
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.Addr, ShouldEqual, ":9080")
			So(cfg.DBPath, ShouldEqual, "proctord.db")
			So(cfg.PointsPerSlot, ShouldEqual, 10)
			So(cfg.MaxLeaderboardLimit, ShouldEqual, 100)
		})
	})
}
