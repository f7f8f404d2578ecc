package model

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestParseAssignee(t *testing.T) {
	convey.Convey("Given raw member ids", t, func() {
		convey.Convey("When the id carries the role prefix", func() {
			a := ParseAssignee("role-breaktime-coordinator")

			convey.Convey("Then it parses as a role with the prefix stripped", func() {
				convey.So(a.Kind, convey.ShouldEqual, AssigneeRole)
				convey.So(a.ID, convey.ShouldEqual, "breaktime-coordinator")
			})

			convey.Convey("And MemberID restores the stored form", func() {
				convey.So(a.MemberID(), convey.ShouldEqual, "role-breaktime-coordinator")
			})
		})

		convey.Convey("When the id is a plain person id", func() {
			a := ParseAssignee("mkhalil")

			convey.Convey("Then it parses as a person", func() {
				convey.So(a.Kind, convey.ShouldEqual, AssigneePerson)
				convey.So(a.ID, convey.ShouldEqual, "mkhalil")
				convey.So(a.MemberID(), convey.ShouldEqual, "mkhalil")
			})
		})
	})
}

func TestAssigneeDisplayName(t *testing.T) {
	convey.Convey("Given parsed assignees", t, func() {
		convey.Convey("When rendering a role name", func() {
			a := ParseAssignee("role-breaktime-coordinator")
			convey.So(a.DisplayName(), convey.ShouldEqual, "Breaktime Coordinator")
		})

		convey.Convey("When rendering a single-word role", func() {
			a := ParseAssignee("role-coordinator")
			convey.So(a.DisplayName(), convey.ShouldEqual, "Coordinator")
		})

		convey.Convey("When rendering a person assignee", func() {
			a := ParseAssignee("mkhalil")
			convey.So(a.DisplayName(), convey.ShouldEqual, "mkhalil")
		})
	})
}
