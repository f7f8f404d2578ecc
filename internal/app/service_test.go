package app

import (
	"context"
	"testing"
	"time"

	"github.com/okian/proctord/internal/adapters/repository"
	"github.com/okian/proctord/internal/domain/model"
	"github.com/okian/proctord/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func newTestService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	if err := logger.Init(); err != nil {
		t.Fatalf("logger init: %v", err)
	}
	svc := New(opts...)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("service start: %v", err)
	}
	t.Cleanup(svc.Stop)
	return svc
}

func TestServiceStart(t *testing.T) {
	convey.Convey("Given a service with an empty store", t, func() {
		ctx := context.Background()
		svc := newTestService(t, WithStore(repository.NewMemoryStore()))

		convey.Convey("Then it seeds the default snapshot", func() {
			snap := svc.Snapshot(ctx)
			convey.So(len(snap.Proctors), convey.ShouldBeGreaterThan, 30)
			convey.So(snap.Exams, convey.ShouldHaveLength, 4)
			convey.So(snap.PointsPerSlot, convey.ShouldEqual, model.DefaultPointsPerSlot)
		})
	})

	convey.Convey("Given a store holding a previous snapshot", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryStore()
		stored := model.Snapshot{
			Proctors:      []model.Person{{ID: "p1", Name: "Stored"}},
			PointsPerSlot: 25,
		}
		convey.So(store.Save(ctx, stored), convey.ShouldBeNil)

		svc := newTestService(t, WithStore(store))

		convey.Convey("Then the stored state wins over the defaults", func() {
			snap := svc.Snapshot(ctx)
			convey.So(snap.Proctors, convey.ShouldHaveLength, 1)
			convey.So(snap.PointsPerSlot, convey.ShouldEqual, 25)
		})

		convey.Convey("And nil collections are normalized at load", func() {
			snap := svc.Snapshot(ctx)
			convey.So(snap.Volunteers, convey.ShouldNotBeNil)
			convey.So(snap.Exams, convey.ShouldNotBeNil)
		})
	})

	convey.Convey("Given a store holding an unreadable blob", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryStore()
		store.SeedPayload([]byte("{this is not json"))

		svc := newTestService(t, WithStore(store))

		convey.Convey("Then startup falls back to the default snapshot", func() {
			snap := svc.Snapshot(ctx)
			convey.So(len(snap.Proctors), convey.ShouldBeGreaterThan, 30)
			convey.So(snap.Exams, convey.ShouldHaveLength, 4)
			convey.So(snap.PointsPerSlot, convey.ShouldEqual, model.DefaultPointsPerSlot)
		})
	})
}

func TestServicePeople(t *testing.T) {
	convey.Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := newTestService(t, WithStore(repository.NewMemoryStore()))

		convey.Convey("When adding a proctor with a fresh id", func() {
			err := svc.AddProctor(ctx, model.Person{ID: "new1", Name: "New Proctor"})

			convey.Convey("Then the roster grows", func() {
				convey.So(err, convey.ShouldBeNil)
				_, ok := svc.Snapshot(ctx).FindProctor("new1")
				convey.So(ok, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When adding a proctor with a taken id", func() {
			convey.So(svc.AddProctor(ctx, model.Person{ID: "dup", Name: "First"}), convey.ShouldBeNil)
			err := svc.AddProctor(ctx, model.Person{ID: "dup", Name: "Second"})

			convey.Convey("Then the duplicate is rejected as a validation error", func() {
				convey.So(err, convey.ShouldWrap, model.ErrDuplicateID)
				convey.So(err, convey.ShouldWrap, model.ErrValidation)
			})
		})

		convey.Convey("When adding an invalid person", func() {
			err := svc.AddVolunteer(ctx, model.Person{ID: "", Name: "No ID"})
			convey.So(err, convey.ShouldWrap, model.ErrValidation)
		})

		convey.Convey("When deleting an assigned proctor", func() {
			convey.So(svc.AddProctor(ctx, model.Person{ID: "busy", Name: "Busy"}), convey.ShouldBeNil)
			start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
			_, err := svc.GenerateExamSlots(ctx, "exam00", start)
			convey.So(err, convey.ShouldBeNil)
			convey.So(svc.AssignToExamSlot(ctx, "exam00", "exam00-slot-1", "busy"), convey.ShouldBeNil)

			convey.So(svc.DeleteProctor(ctx, "busy"), convey.ShouldBeNil)

			convey.Convey("Then the cascade scrubs every slot", func() {
				snap := svc.Snapshot(ctx)
				_, ok := snap.FindProctor("busy")
				convey.So(ok, convey.ShouldBeFalse)
				exam, _ := snap.FindExam("exam00")
				for _, sl := range exam.Slots {
					convey.So(sl.PersonIDs, convey.ShouldNotContain, "busy")
				}
			})
		})

		convey.Convey("When updating an unknown person", func() {
			before := svc.Snapshot(ctx)
			convey.So(svc.UpdateProctor(ctx, model.Person{ID: "ghost", Name: "Ghost"}), convey.ShouldBeNil)

			convey.Convey("Then the update is a soft no-op", func() {
				convey.So(svc.Snapshot(ctx).Proctors, convey.ShouldResemble, before.Proctors)
			})
		})
	})
}

func TestServiceScheduling(t *testing.T) {
	convey.Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := newTestService(t, WithStore(repository.NewMemoryStore()))
		start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

		convey.Convey("When generating exam slots", func() {
			slots, err := svc.GenerateExamSlots(ctx, "exam00", start)

			convey.Convey("Then the schedule is duration+1 with leading preparation", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(slots, convey.ShouldHaveLength, 5)
				convey.So(slots[0].IsPreparation, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When generating slots for a missing exam", func() {
			_, err := svc.GenerateExamSlots(ctx, "nope", start)
			convey.So(err, convey.ShouldWrap, ErrNotFound)
		})

		convey.Convey("When regenerating after assignment", func() {
			_, err := svc.GenerateExamSlots(ctx, "exam00", start)
			convey.So(err, convey.ShouldBeNil)
			convey.So(svc.AssignToExamSlot(ctx, "exam00", "exam00-slot-1", "neali"), convey.ShouldBeNil)

			_, err = svc.GenerateExamSlots(ctx, "exam00", start.Add(24*time.Hour))
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then prior assignments are discarded", func() {
				exam, _ := svc.Snapshot(ctx).FindExam("exam00")
				for _, sl := range exam.Slots {
					convey.So(sl.PersonIDs, convey.ShouldBeEmpty)
				}
			})
		})

		convey.Convey("When a slot reaches capacity", func() {
			_, err := svc.GenerateExamSlots(ctx, "exam00", start)
			convey.So(err, convey.ShouldBeNil)
			members := []string{"m1", "m2", "m3", "m4", "m5"}
			for _, id := range members {
				convey.So(svc.AssignToExamSlot(ctx, "exam00", "exam00-slot-1", id), convey.ShouldBeNil)
			}

			convey.Convey("Then a sixth member is rejected", func() {
				err := svc.AssignToExamSlot(ctx, "exam00", "exam00-slot-1", "m6")
				convey.So(err, convey.ShouldWrap, model.ErrSlotFull)
				convey.So(err, convey.ShouldWrap, model.ErrValidation)
			})

			convey.Convey("And re-assigning an existing member stays a no-op", func() {
				convey.So(svc.AssignToExamSlot(ctx, "exam00", "exam00-slot-1", "m3"), convey.ShouldBeNil)
				exam, _ := svc.Snapshot(ctx).FindExam("exam00")
				slot, _ := exam.FindSlot("exam00-slot-1")
				convey.So(slot.PersonIDs, convey.ShouldResemble, members)
			})

			convey.Convey("And removing a member frees the seat", func() {
				convey.So(svc.RemoveFromExamSlot(ctx, "exam00", "exam00-slot-1", "m5"), convey.ShouldBeNil)
				convey.So(svc.AssignToExamSlot(ctx, "exam00", "exam00-slot-1", "m6"), convey.ShouldBeNil)
			})
		})

		convey.Convey("When adding an event", func() {
			err := svc.AddEvent(ctx, model.Event{
				ID: "event-new", Name: "Open Day", Duration: 3,
				Date: "2026-09-02", StartTime: "10:00", RequiredVolunteers: 2,
			})

			convey.Convey("Then slots are generated from the event schedule without preparation", func() {
				convey.So(err, convey.ShouldBeNil)
				event, ok := svc.Snapshot(ctx).FindEvent("event-new")
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(event.Slots, convey.ShouldHaveLength, 3)
				convey.So(event.Slots[0].IsPreparation, convey.ShouldBeFalse)
				convey.So(event.VolunteerIDs, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When updating an event with a roster", func() {
			convey.So(svc.AddEvent(ctx, model.Event{
				ID: "event-upd", Name: "Open Day", Duration: 2,
				Date: "2026-09-02", StartTime: "10:00", RequiredVolunteers: 2,
			}), convey.ShouldBeNil)
			convey.So(svc.AddVolunteer(ctx, model.Person{ID: "v1", Name: "Vol"}), convey.ShouldBeNil)
			convey.So(svc.AssignToEventRoster(ctx, "event-upd", "v1"), convey.ShouldBeNil)

			err := svc.UpdateEvent(ctx, model.Event{
				ID: "event-upd", Name: "Open Day Extended", Duration: 4,
				Date: "2026-09-03", StartTime: "11:00", RequiredVolunteers: 3,
			})

			convey.Convey("Then the roster survives while slots regenerate", func() {
				convey.So(err, convey.ShouldBeNil)
				event, _ := svc.Snapshot(ctx).FindEvent("event-upd")
				convey.So(event.Name, convey.ShouldEqual, "Open Day Extended")
				convey.So(event.Slots, convey.ShouldHaveLength, 4)
				convey.So(event.VolunteerIDs, convey.ShouldResemble, []string{"v1"})
			})
		})
	})
}

func TestServiceQueries(t *testing.T) {
	convey.Convey("Given a service with assignments", t, func() {
		ctx := context.Background()
		svc := newTestService(t, WithStore(repository.NewMemoryStore()))
		start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

		_, err := svc.GenerateExamSlots(ctx, "exam00", start)
		convey.So(err, convey.ShouldBeNil)
		convey.So(svc.AssignToExamSlot(ctx, "exam00", "exam00-slot-1", "neali"), convey.ShouldBeNil)
		convey.So(svc.AssignToExamSlot(ctx, "exam00", "exam00-slot-2", "neali"), convey.ShouldBeNil)
		convey.So(svc.AssignToExamSlot(ctx, "exam00", "exam00-slot-3", "meid"), convey.ShouldBeNil)

		convey.Convey("When querying the leaderboard", func() {
			ranked := svc.Leaderboard(ctx, 0)

			convey.Convey("Then the heaviest assignee leads", func() {
				convey.So(ranked[0].ID, convey.ShouldEqual, "neali")
				convey.So(ranked[0].Points, convey.ShouldEqual, 2*model.DefaultPointsPerSlot)
			})

			convey.Convey("And a positive limit truncates", func() {
				convey.So(svc.Leaderboard(ctx, 1), convey.ShouldHaveLength, 1)
			})
		})

		convey.Convey("When listing a person's slots", func() {
			slots := svc.PersonSlots(ctx, "neali")

			convey.Convey("Then their assignments come back ordered", func() {
				convey.So(slots, convey.ShouldHaveLength, 2)
				convey.So(slots[0].StartTime.Before(slots[1].StartTime), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When checking availability inside a commitment window", func() {
			available := svc.AvailableProctors(ctx, []time.Time{start.Add(time.Hour)})

			convey.Convey("Then the committed proctor is excluded", func() {
				for _, p := range available {
					convey.So(p.ID, convey.ShouldNotEqual, "neali")
				}
			})
		})

		convey.Convey("When checking availability elsewhere", func() {
			available := svc.AvailableProctors(ctx, []time.Time{start.Add(48 * time.Hour)})
			total := len(svc.Snapshot(ctx).Proctors)

			convey.Convey("Then everyone is free", func() {
				convey.So(available, convey.ShouldHaveLength, total)
			})
		})
	})
}

func TestServiceAdminSession(t *testing.T) {
	convey.Convey("Given a service with an admin secret", t, func() {
		ctx := context.Background()
		svc := newTestService(t,
			WithStore(repository.NewMemoryStore()),
			WithAdminSecret("hunter2"),
		)

		convey.Convey("When logging in with the right secret", func() {
			ok := svc.Login(ctx, "hunter2")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(svc.IsAdminLoggedIn(ctx), convey.ShouldBeTrue)

			convey.Convey("And logging out clears the flag", func() {
				svc.Logout(ctx)
				convey.So(svc.IsAdminLoggedIn(ctx), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When logging in with a wrong secret", func() {
			ok := svc.Login(ctx, "wrong")
			convey.So(ok, convey.ShouldBeFalse)
			convey.So(svc.IsAdminLoggedIn(ctx), convey.ShouldBeFalse)
		})
	})
}

func TestServicePersistence(t *testing.T) {
	convey.Convey("Given a store that fails every save", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryStore()
		store.FailSaves = true
		svc := newTestService(t, WithStore(store))

		convey.Convey("When applying a command", func() {
			err := svc.AddProctor(ctx, model.Person{ID: "p1", Name: "One"})

			convey.Convey("Then the in-memory state still advances", func() {
				convey.So(err, convey.ShouldBeNil)
				_, ok := svc.Snapshot(ctx).FindProctor("p1")
				convey.So(ok, convey.ShouldBeTrue)
			})
		})
	})

	convey.Convey("Given a working store", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryStore()
		svc := newTestService(t, WithStore(store))

		convey.Convey("When applying a command", func() {
			convey.So(svc.AddProctor(ctx, model.Person{ID: "p1", Name: "One"}), convey.ShouldBeNil)

			convey.Convey("Then the snapshot is written through", func() {
				stored, err := store.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				_, ok := stored.FindProctor("p1")
				convey.So(ok, convey.ShouldBeTrue)
			})
		})
	})
}
