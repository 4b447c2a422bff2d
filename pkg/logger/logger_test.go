package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}
}

func TestLoggerFormats(t *testing.T) {
	Convey("Given a logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		ctx := context.Background()

		Convey("When the format is json", func() {
			So(InitWithOptions(Options{Format: FormatJSON, Writer: &buf}), ShouldBeNil)
			Get().Named("skills").Info(ctx, "aggregated",
				Int("categories", 3),
				Bool("cached", false),
				Duration("took", 2*time.Millisecond),
			)

			Convey("Then each record is a JSON object with fields and source", func() {
				var rec map[string]any
				So(json.Unmarshal(buf.Bytes(), &rec), ShouldBeNil)
				So(rec["msg"], ShouldEqual, "aggregated")
				So(rec["component"], ShouldEqual, "skills")
				So(rec["categories"], ShouldEqual, 3.0)
				So(rec["cached"], ShouldEqual, false)
				So(rec["source"], ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When the format is text", func() {
			So(InitWithOptions(Options{Writer: &buf}), ShouldBeNil)
			Get().Error(ctx, "send failed", Error(errors.New("boom")))

			Convey("Then the record is a logfmt line", func() {
				line := buf.String()
				So(line, ShouldContainSubstring, "level=ERROR")
				So(line, ShouldContainSubstring, "error=boom")
			})
		})

		Convey("When the format is unknown", func() {
			err := InitWithOptions(Options{Format: "xml", Writer: &buf})

			Convey("Then initialization fails", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given an initialized logger", t, func() {
		var buf bytes.Buffer
		So(InitWithOptions(Options{Writer: &buf}), ShouldBeNil)
		ctx := context.Background()

		Convey("When the level is raised to warn", func() {
			So(SetLevelString("WARNING"), ShouldBeNil)
			Get().Info(ctx, "hidden")
			Get().Warn(ctx, "shown")

			Convey("Then info records are dropped", func() {
				So(strings.Contains(buf.String(), "hidden"), ShouldBeFalse)
				So(buf.String(), ShouldContainSubstring, "shown")
			})
		})

		Convey("When the level is debug", func() {
			So(SetLevelString("debug"), ShouldBeNil)
			Named("worker").Debug(ctx, "tick")

			Convey("Then debug records are written", func() {
				So(buf.String(), ShouldContainSubstring, "tick")
				So(buf.String(), ShouldContainSubstring, "component=worker")
			})
		})

		Convey("When the level is invalid", func() {
			Convey("Then an error is returned", func() {
				So(SetLevelString("verbose"), ShouldNotBeNil)
			})
		})
	})
}
