package transition

import (
	"testing"
	"time"

	"github.com/okian/proctord/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func seed() model.Snapshot {
	nine := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	return model.Snapshot{
		Proctors:   []model.Person{{ID: "p1", Name: "One"}},
		Volunteers: []model.Person{{ID: "v1", Name: "Vol"}},
		Exams: []model.Exam{{
			ID: "exam01", Name: "Final", Duration: 2,
			Slots: []model.Slot{
				{ID: "exam01-slot-0", StartTime: nine, PersonIDs: []string{"p1"}},
			},
		}},
		Events: []model.Event{{
			ID: "event01", Name: "Orientation", Duration: 1,
			VolunteerIDs: []string{"v1"},
			Slots: []model.Slot{
				{ID: "event01-slot-0", StartTime: nine, PersonIDs: []string{"v1"}},
			},
		}},
		PointsPerSlot: 10,
	}
}

type unknownCommand struct{}

func (unknownCommand) Name() string { return "unknown" }

func TestApplyPeople(t *testing.T) {
	convey.Convey("Given the transition reducer", t, func() {
		snap := seed()

		convey.Convey("When adding a proctor", func() {
			out := Apply(snap, AddProctor{Person: model.Person{ID: "p2", Name: "Two"}})

			convey.Convey("Then the roster grows and the input stays intact", func() {
				convey.So(out.Proctors, convey.ShouldHaveLength, 2)
				convey.So(snap.Proctors, convey.ShouldHaveLength, 1)
			})
		})

		convey.Convey("When updating a proctor", func() {
			out := Apply(snap, UpdateProctor{Person: model.Person{ID: "p1", Name: "Renamed"}})

			convey.Convey("Then the record is replaced in place", func() {
				convey.So(out.Proctors[0].Name, convey.ShouldEqual, "Renamed")
				convey.So(snap.Proctors[0].Name, convey.ShouldEqual, "One")
			})
		})

		convey.Convey("When updating an unknown proctor", func() {
			out := Apply(snap, UpdateProctor{Person: model.Person{ID: "ghost", Name: "Ghost"}})

			convey.Convey("Then nothing changes", func() {
				convey.So(out, convey.ShouldResemble, snap)
			})
		})

		convey.Convey("When deleting a proctor with assignments", func() {
			out := Apply(snap, DeleteProctor{ID: "p1"})

			convey.Convey("Then the person and every reference are gone", func() {
				convey.So(out.Proctors, convey.ShouldBeEmpty)
				convey.So(out.Exams[0].Slots[0].PersonIDs, convey.ShouldNotContain, "p1")
			})
		})

		convey.Convey("When deleting a volunteer on an event roster", func() {
			out := Apply(snap, DeleteVolunteer{ID: "v1"})

			convey.Convey("Then slots and rosters are scrubbed", func() {
				convey.So(out.Volunteers, convey.ShouldBeEmpty)
				convey.So(out.Events[0].VolunteerIDs, convey.ShouldBeEmpty)
				convey.So(out.Events[0].Slots[0].PersonIDs, convey.ShouldBeEmpty)
			})
		})
	})
}

func TestApplyContainers(t *testing.T) {
	convey.Convey("Given the transition reducer", t, func() {
		snap := seed()

		convey.Convey("When adding and deleting an exam", func() {
			grown := Apply(snap, AddExam{Exam: model.Exam{ID: "exam02", Name: "Midterm", Duration: 2, Slots: []model.Slot{}}})
			shrunk := Apply(grown, DeleteExam{ID: "exam01"})

			convey.Convey("Then the container set follows the commands", func() {
				convey.So(grown.Exams, convey.ShouldHaveLength, 2)
				convey.So(shrunk.Exams, convey.ShouldHaveLength, 1)
				convey.So(shrunk.Exams[0].ID, convey.ShouldEqual, "exam02")
			})
		})

		convey.Convey("When replacing exam slots", func() {
			fresh := []model.Slot{{ID: "exam01-slot-0", PersonIDs: []string{}}}
			out := Apply(snap, SetExamSlots{ExamID: "exam01", Slots: fresh})

			convey.Convey("Then prior assignments are discarded", func() {
				convey.So(out.Exams[0].Slots[0].PersonIDs, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When assigning and removing slot members", func() {
			assigned := Apply(snap, AssignToExamSlot{ExamID: "exam01", SlotID: "exam01-slot-0", MemberID: "p2"})
			removed := Apply(assigned, RemoveFromExamSlot{ExamID: "exam01", SlotID: "exam01-slot-0", MemberID: "p1"})

			convey.Convey("Then membership follows set semantics", func() {
				convey.So(assigned.Exams[0].Slots[0].PersonIDs, convey.ShouldResemble, []string{"p1", "p2"})
				convey.So(removed.Exams[0].Slots[0].PersonIDs, convey.ShouldResemble, []string{"p2"})
			})
		})

		convey.Convey("When managing the event roster", func() {
			added := Apply(snap, AssignToEventRoster{EventID: "event01", VolunteerID: "v2"})
			removed := Apply(added, RemoveFromEventRoster{EventID: "event01", VolunteerID: "v1"})

			convey.Convey("Then roster changes leave slots alone", func() {
				convey.So(added.Events[0].VolunteerIDs, convey.ShouldResemble, []string{"v1", "v2"})
				convey.So(removed.Events[0].VolunteerIDs, convey.ShouldResemble, []string{"v2"})
				convey.So(removed.Events[0].Slots[0].PersonIDs, convey.ShouldResemble, []string{"v1"})
			})
		})
	})
}

func TestApplyTotality(t *testing.T) {
	convey.Convey("Given the transition reducer", t, func() {
		snap := seed()

		convey.Convey("When applying an unknown command", func() {
			out := Apply(snap, unknownCommand{})

			convey.Convey("Then the snapshot passes through unchanged", func() {
				convey.So(out, convey.ShouldResemble, snap)
			})
		})

		convey.Convey("When flipping the admin flag", func() {
			on := Apply(snap, SetAdminFlag{LoggedIn: true})
			off := Apply(on, SetAdminFlag{LoggedIn: false})

			convey.Convey("Then only the flag changes", func() {
				convey.So(on.IsAdminLoggedIn, convey.ShouldBeTrue)
				convey.So(off.IsAdminLoggedIn, convey.ShouldBeFalse)
				convey.So(on.Proctors, convey.ShouldResemble, snap.Proctors)
			})
		})

		convey.Convey("When loading a snapshot wholesale", func() {
			replacement := model.Snapshot{PointsPerSlot: 25}
			out := Apply(snap, LoadSnapshot{Snapshot: replacement})

			convey.Convey("Then the state is replaced and normalized", func() {
				convey.So(out.PointsPerSlot, convey.ShouldEqual, 25)
				convey.So(out.Proctors, convey.ShouldNotBeNil)
				convey.So(out.Proctors, convey.ShouldBeEmpty)
			})
		})
	})
}
