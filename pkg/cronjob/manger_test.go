package cronjob

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"gorm.io/datatypes"
	"k8s.io/utils/ptr"

	"github.com/redink-lab/redink/dao/model"
	"github.com/redink-lab/redink/pkg/maintain"
)

func TestCronJob(t *testing.T) {
	t.Run("newCronJobFunc", func(t *testing.T) {
		manager := NewCronJobManager(nil, nil, nil)
		Convey("newCronJobFunc", t, func() {
			jobName := maintain.REMIND_STALE_REVIEW_JOB
			jobConfig := datatypes.JSON(`{"staleDays": 3}`)
			jobFunc, err := manager.newCronJobFunc(jobName, model.CronJobTypeMaintainFunc, jobConfig)
			So(err, ShouldBeNil)
			So(jobFunc, ShouldNotBeNil)

			jobName = maintain.REMIND_STALE_DRAFT_JOB
			jobConfig = datatypes.JSON(`{"staleDays": 14}`)
			jobFunc, err = manager.newCronJobFunc(jobName, model.CronJobTypeMaintainFunc, jobConfig)
			So(err, ShouldBeNil)
			So(jobFunc, ShouldNotBeNil)

			jobName = maintain.DIGEST_UNREAD_NOTIFICATION_JOB
			jobConfig = datatypes.JSON(`{"minUnread": 5}`)
			jobFunc, err = manager.newCronJobFunc(jobName, model.CronJobTypeMaintainFunc, jobConfig)
			So(err, ShouldBeNil)
			So(jobFunc, ShouldNotBeNil)

			jobName = "unknown"
			jobConfig = datatypes.JSON(`{"unknown": "unknown"}`)
			jobFunc, err = manager.newCronJobFunc(jobName, model.CronJobTypeMaintainFunc, jobConfig)
			So(err, ShouldNotBeNil)
			So(jobFunc, ShouldBeNil)

			jobFunc, err = manager.newCronJobFunc(jobName, "unknown_type", jobConfig)
			So(err, ShouldNotBeNil)
			So(jobFunc, ShouldBeNil)
		})
	})

	t.Run("prepareUpdateConfig", func(t *testing.T) {
		Convey("prepareUpdateConfig", t, func() {
			manager := NewCronJobManager(nil, nil, nil)
			cur := &model.CronJobConfig{
				Name:    "test",
				Type:    model.CronJobTypeMaintainFunc,
				Spec:    "0 0 * * *",
				Suspend: ptr.To(false),
				Config:  datatypes.JSON(`{"test": "test"}`),
			}
			update := manager.prepareUpdateConfig(
				cur,
				ptr.To(model.CronJobTypeMaintainFunc),
				ptr.To("1 1 * * *"),
				ptr.To(true),
				ptr.To(`{"test": "test"}`),
			)
			So(update, ShouldNotBeNil)
			So(update.Name, ShouldEqual, "test")
			So(update.Type, ShouldEqual, model.CronJobTypeMaintainFunc)
			So(update.Spec, ShouldEqual, "1 1 * * *")
			So(*update.Suspend, ShouldEqual, true)
			So(update.Config, ShouldEqual, datatypes.JSON(`{"test": "test"}`))
		})
	})

	t.Run("shouldSuspendJob", func(t *testing.T) {
		Convey("shouldSuspendJob", t, func() {
			manager := NewCronJobManager(nil, nil, nil)
			So(manager.shouldSuspendJob(false, true), ShouldBeTrue)
			So(manager.shouldSuspendJob(true, true), ShouldBeFalse)
			So(manager.shouldSuspendJob(false, false), ShouldBeFalse)
		})
	})
}
