package main

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/okian/proctord/internal/adapters/http/api"
	"github.com/okian/proctord/internal/adapters/repository"
	app "github.com/okian/proctord/internal/app"
	"github.com/okian/proctord/internal/config"
	"github.com/okian/proctord/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartystreets/goconvey/convey"
)

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("PROCTORD_ADDR", ":8080")
			_ = os.Setenv("PROCTORD_POINTS_PER_SLOT", "25")
			defer func() {
				_ = os.Unsetenv("PROCTORD_ADDR")
				_ = os.Unsetenv("PROCTORD_POINTS_PER_SLOT")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.PointsPerSlot, convey.ShouldEqual, 25)
			})
		})

		convey.Convey("When testing service creation", func() {
			convey.Convey("Then service should be creatable with default options", func() {
				svc := app.New()
				convey.So(svc, convey.ShouldNotBeNil)
			})

			convey.Convey("And service should be creatable with custom options", func() {
				svc := app.New(
					app.WithStore(repository.NewMemoryStore()),
					app.WithAdminSecret("s3cret"),
					app.WithPointsPerSlot(20),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing HTTP server creation", func() {
			svc := app.New()
			convey.So(svc, convey.ShouldNotBeNil)

			convey.Convey("Then HTTP server should be creatable", func() {
				server := api.NewServer(svc, svc, 100)
				convey.So(server, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing metrics initialization", func() {
			convey.Convey("Then metrics manager should be creatable", func() {
				registry := prometheus.NewRegistry()
				manager := metrics.NewManager(metrics.WithPrometheusRegistry(registry))
				convey.So(manager, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestMainApplicationIntegration(t *testing.T) {
	convey.Convey("Given main application integration", t, func() {
		convey.Convey("When testing full application setup", func() {
			_ = os.Setenv("PROCTORD_ADDR", ":8080")
			defer func() { _ = os.Unsetenv("PROCTORD_ADDR") }()

			convey.Convey("Then all components should work together", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)

				svc := app.New(
					app.WithStore(repository.NewMemoryStore()),
					app.WithAdminSecret(cfg.AdminSecret),
					app.WithPointsPerSlot(cfg.PointsPerSlot),
				)
				convey.So(svc, convey.ShouldNotBeNil)

				server := api.NewServer(svc, svc, cfg.MaxLeaderboardLimit)
				convey.So(server, convey.ShouldNotBeNil)

				mux := http.NewServeMux()
				convey.So(mux, convey.ShouldNotBeNil)

				server.Register(ctx, mux)

				svc.Stop()
			})
		})
	})
}

func TestMainApplicationErrorHandling(t *testing.T) {
	convey.Convey("Given main application error handling", t, func() {
		convey.Convey("When testing invalid configuration", func() {
			_ = os.Setenv("PROCTORD_ADDR", "")
			defer func() { _ = os.Unsetenv("PROCTORD_ADDR") }()

			convey.Convey("Then configuration loading should fail", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When testing service creation with zero-value options", func() {
			convey.Convey("Then service should fall back to defaults", func() {
				svc := app.New(
					app.WithStore(nil),
					app.WithPointsPerSlot(0),
				)
				convey.So(svc, convey.ShouldNotBeNil)

				stats := svc.GetStats()
				convey.So(stats.Started, convey.ShouldBeFalse)
				convey.So(stats.PointsPerSlot, convey.ShouldEqual, 0)
			})
		})
	})
}
