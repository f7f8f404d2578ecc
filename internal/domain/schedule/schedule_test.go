package schedule

import (
	"testing"
	"time"

	"github.com/okian/proctord/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestGenerate(t *testing.T) {
	convey.Convey("Given a slot generator", t, func() {
		start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

		convey.Convey("When generating an exam schedule with preparation", func() {
			slots, err := Generate("exam01", start, 4, true)

			convey.Convey("Then it should produce duration+1 contiguous slots", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(slots, convey.ShouldHaveLength, 5)

				for i, sl := range slots {
					convey.So(sl.ID, convey.ShouldEqual, SlotID("exam01", i))
					convey.So(sl.ContainerID, convey.ShouldEqual, "exam01")
					convey.So(sl.StartTime, convey.ShouldEqual, start.Add(time.Duration(i)*time.Hour))
					convey.So(sl.EndTime, convey.ShouldEqual, sl.StartTime.Add(time.Hour))
					convey.So(sl.PersonIDs, convey.ShouldBeEmpty)
					convey.So(sl.PersonIDs, convey.ShouldNotBeNil)
				}
			})

			convey.Convey("And only the first slot should be preparation", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(slots[0].IsPreparation, convey.ShouldBeTrue)
				for _, sl := range slots[1:] {
					convey.So(sl.IsPreparation, convey.ShouldBeFalse)
				}
			})
		})

		convey.Convey("When generating an event schedule without preparation", func() {
			slots, err := Generate("event01", start, 3, false)

			convey.Convey("Then it should produce exactly duration slots", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(slots, convey.ShouldHaveLength, 3)
				for _, sl := range slots {
					convey.So(sl.IsPreparation, convey.ShouldBeFalse)
				}
			})
		})

		convey.Convey("When the duration is out of bounds", func() {
			convey.Convey("Then zero hours should be rejected", func() {
				slots, err := Generate("exam01", start, 0, true)
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err, convey.ShouldWrap, model.ErrValidation)
				convey.So(slots, convey.ShouldBeNil)
			})

			convey.Convey("And thirteen hours should be rejected", func() {
				slots, err := Generate("exam01", start, model.MaxDurationHours+1, false)
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(slots, convey.ShouldBeNil)
			})

			convey.Convey("And the bounds themselves should be accepted", func() {
				_, err := Generate("exam01", start, model.MinDurationHours, false)
				convey.So(err, convey.ShouldBeNil)
				_, err = Generate("exam01", start, model.MaxDurationHours, false)
				convey.So(err, convey.ShouldBeNil)
			})
		})

		convey.Convey("When regenerating with the same inputs", func() {
			first, err1 := Generate("exam01", start, 4, true)
			second, err2 := Generate("exam01", start, 4, true)

			convey.Convey("Then slot ids should be stable", func() {
				convey.So(err1, convey.ShouldBeNil)
				convey.So(err2, convey.ShouldBeNil)
				for i := range first {
					convey.So(second[i].ID, convey.ShouldEqual, first[i].ID)
				}
			})
		})
	})
}

func TestSlotID(t *testing.T) {
	convey.Convey("Given a container id", t, func() {
		convey.Convey("Then slot ids should follow the id-slot-index form", func() {
			convey.So(SlotID("exam02", 0), convey.ShouldEqual, "exam02-slot-0")
			convey.So(SlotID("event00", 7), convey.ShouldEqual, "event00-slot-7")
		})
	})
}
