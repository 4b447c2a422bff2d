package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/okian/portfolio/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestParseTimestamp(t *testing.T) {
	convey.Convey("Given timestamp strings in the formats found in data files", t, func() {
		convey.Convey("When the value is a bare date", func() {
			ts, err := model.ParseTimestamp("2024-03-05")

			convey.Convey("Then it is midnight UTC", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(ts.Time.Equal(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the value carries a zone offset", func() {
			ts, err := model.ParseTimestamp("2024-03-05T10:00:00+02:00")

			convey.Convey("Then it is normalised to UTC", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(ts.Hour(), convey.ShouldEqual, 8)
				convey.So(ts.Location(), convey.ShouldEqual, time.UTC)
			})
		})

		convey.Convey("When the value is empty", func() {
			ts, err := model.ParseTimestamp("  ")

			convey.Convey("Then the timestamp is absent", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(ts.Valid(), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When the value is garbage", func() {
			_, err := model.ParseTimestamp("last tuesday")

			convey.Convey("Then an error is returned", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestProjectDecoding(t *testing.T) {
	convey.Convey("Given a project exported with a numeric id and lastUpdated", t, func() {
		data := `{
			"id": 7,
			"title": "Shop",
			"technologies": ["React", " Node.js "],
			"category": "Web",
			"featured": true,
			"createdAt": "2023-01-10",
			"lastUpdated": "2024-06-01T12:00:00Z"
		}`
		var p model.Project
		err := json.Unmarshal([]byte(data), &p)

		convey.Convey("Then ids become strings and lastUpdated fills UpdatedAt", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(p.ID, convey.ShouldEqual, "7")
			convey.So(p.Featured, convey.ShouldBeTrue)
			convey.So(p.Technologies, convey.ShouldResemble, []string{"React", " Node.js "})
			convey.So(p.UpdatedAt.Year(), convey.ShouldEqual, 2024)
			convey.So(p.LastActivity(), convey.ShouldResemble, p.UpdatedAt)
			convey.So(p.FirstActivity(), convey.ShouldResemble, p.CreatedAt)
		})
	})

	convey.Convey("Given a project with snake_case timestamps and a string id", t, func() {
		data := `{"id": "abc", "title": "CLI", "created_at": "2022-05-01", "updated_at": null}`
		var p model.Project
		err := json.Unmarshal([]byte(data), &p)

		convey.Convey("Then the alternate keys are honoured", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(p.ID, convey.ShouldEqual, "abc")
			convey.So(p.CreatedAt.Year(), convey.ShouldEqual, 2022)
			convey.So(p.UpdatedAt.Valid(), convey.ShouldBeFalse)
			convey.So(p.LastActivity(), convey.ShouldResemble, p.CreatedAt)
		})
	})

	convey.Convey("Given a project without timestamps", t, func() {
		p := model.Project{Title: "Bare"}

		convey.Convey("Then both activity timestamps are absent and encode as null", func() {
			convey.So(p.LastActivity().Valid(), convey.ShouldBeFalse)
			convey.So(p.FirstActivity().Valid(), convey.ShouldBeFalse)
			out, err := json.Marshal(p)
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(out), convey.ShouldContainSubstring, `"createdAt":null`)
		})
	})

	convey.Convey("Given a project whose timestamp is malformed", t, func() {
		var p model.Project
		err := json.Unmarshal([]byte(`{"title": "x", "createdAt": "soon"}`), &p)

		convey.Convey("Then decoding fails", func() {
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestContactMessageDefaults(t *testing.T) {
	convey.Convey("Given a submission with empty fields", t, func() {
		msg := model.ContactMessage{Email: "a@b.c"}.WithDefaults()

		convey.Convey("Then placeholders fill the gaps and set fields are kept", func() {
			convey.So(msg.Name, convey.ShouldEqual, model.DefaultContactName)
			convey.So(msg.Email, convey.ShouldEqual, "a@b.c")
			convey.So(msg.Subject, convey.ShouldEqual, model.DefaultContactSubject)
			convey.So(msg.Message, convey.ShouldEqual, model.DefaultContactMessage)
		})
	})
}
