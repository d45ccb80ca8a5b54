package qsim

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNewConfig(t *testing.T) {
	Convey("Given the default config", t, func() {
		config := NewConfig()

		Convey("It should carry the documented defaults", func() {
			So(config.Shots, ShouldEqual, 1024)
			So(config.Tolerance, ShouldEqual, 1e-6)
			So(config.ValidateUnitary, ShouldBeTrue)
			So(config.Workers, ShouldEqual, 4)
			So(config.LogLevel, ShouldEqual, "info")
			So(config.SchedulingTimeout, ShouldEqual, 10*time.Second)
		})
	})
}

func TestLoadConfig(t *testing.T) {
	Convey("Given no config file", t, func() {
		config, err := LoadConfig("")

		Convey("It should fall back to the defaults", func() {
			So(err, ShouldBeNil)
			So(config, ShouldResemble, NewConfig())
		})
	})

	Convey("Given a YAML config file", t, func() {
		path := filepath.Join(t.TempDir(), "qsim.yaml")
		So(os.WriteFile(path, []byte("shots: 2048\nworkers: 0\nlog_level: debug\nscheduling_timeout: 2s\n"), 0o600), ShouldBeNil)

		config, err := LoadConfig(path)

		Convey("It should override the defaults it names", func() {
			So(err, ShouldBeNil)
			So(config.Shots, ShouldEqual, 2048)
			So(config.LogLevel, ShouldEqual, "debug")
			So(config.SchedulingTimeout, ShouldEqual, 2*time.Second)
			So(config.Tolerance, ShouldEqual, 1e-6)
		})

		Convey("It should clamp the worker count to at least one", func() {
			So(config.Workers, ShouldEqual, 1)
		})
	})

	Convey("Given QSIM_ environment variables", t, func() {
		t.Setenv("QSIM_SHOTS", "512")
		t.Setenv("QSIM_VALIDATE_UNITARY", "false")

		config, err := LoadConfig("")

		Convey("They should take precedence over the defaults", func() {
			So(err, ShouldBeNil)
			So(config.Shots, ShouldEqual, 512)
			So(config.ValidateUnitary, ShouldBeFalse)
		})
	})

	Convey("Given a negative shot count", t, func() {
		t.Setenv("QSIM_SHOTS", "-1")

		_, err := LoadConfig("")

		Convey("It should be rejected", func() {
			So(err, ShouldWrap, ErrInvalidShots)
		})
	})

	Convey("Given a config path that does not exist", t, func() {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))

		Convey("It should fail", func() {
			So(err, ShouldNotBeNil)
		})
	})
}
