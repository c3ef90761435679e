package reviewctl

import (
	"strconv"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSlugify(t *testing.T) {
	at := time.Unix(0, 1700000000000000000)
	suffix := "-" + strconv.FormatInt(at.UnixNano(), 10)

	Convey("Slugify", t, func() {
		Convey("lowercases and dashes the title", func() {
			So(Slugify("Hello World", at), ShouldEqual, "hello-world"+suffix)
		})
		Convey("squeezes symbol runs into one dash", func() {
			So(Slugify("Hello,   World!!!", at), ShouldEqual, "hello-world"+suffix)
		})
		Convey("drops leading and trailing separators", func() {
			So(Slugify("  --Spaced Out--  ", at), ShouldEqual, "spaced-out"+suffix)
		})
		Convey("keeps digits", func() {
			So(Slugify("Release 2.4", at), ShouldEqual, "release-2-4"+suffix)
		})
		Convey("falls back when nothing survives", func() {
			So(Slugify("!!!", at), ShouldEqual, "article"+suffix)
			So(Slugify("发布说明", at), ShouldEqual, "article"+suffix)
		})
	})
}
