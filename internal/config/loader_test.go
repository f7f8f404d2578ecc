package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad(t *testing.T) {
	Convey("Given the config loader", t, func() {
		// t.Setenv cleanup only runs when the whole test ends, so values set
		// in one Convey branch would leak into siblings; clear them after
		// each branch instead.
		Reset(func() {
			os.Unsetenv("PROCTORD_ADDR")
			os.Unsetenv("PROCTORD_POINTS_PER_SLOT")
			os.Unsetenv("PROCTORD_CONFIG")
		})

		Convey("When no file or env overrides exist", func() {
			cfg, err := Load(context.Background())

			Convey("Then defaults should win", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":9080")
				So(cfg.PointsPerSlot, ShouldEqual, 10)
			})
		})

		Convey("When env overrides are set", func() {
			t.Setenv("PROCTORD_ADDR", ":7070")
			t.Setenv("PROCTORD_POINTS_PER_SLOT", "25")
			cfg, err := Load(context.Background())

			Convey("Then env values should override defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":7070")
				So(cfg.PointsPerSlot, ShouldEqual, 25)
			})
		})

		Convey("When a YAML file is provided", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			So(os.WriteFile(path, []byte("addr: \":6060\"\ndb_path: state.db\n"), 0o600), ShouldBeNil)
			t.Setenv("PROCTORD_CONFIG", path)
			cfg, err := Load(context.Background())

			Convey("Then file values should override defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":6060")
				So(cfg.DBPath, ShouldEqual, "state.db")
			})

			Convey("And env should override the file", func() {
				t.Setenv("PROCTORD_ADDR", ":5050")
				cfg, err := Load(context.Background())
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":5050")
			})
		})

		Convey("When validation fails", func() {
			t.Setenv("PROCTORD_POINTS_PER_SLOT", "0")
			_, err := Load(context.Background())

			Convey("Then an error should surface", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
