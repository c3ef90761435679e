package dao

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"k8s.io/utils/ptr"

	"github.com/redink-lab/redink/dao/model"
)

// InitMigration brings the schema up to date. A fresh database is
// built in one shot through InitSchema; existing databases replay the
// pending migrations in order.
func InitMigration(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250218_init",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.SetupJoinTable(&model.Article{}, "Tags", &model.ArticleTag{}); err != nil {
					return err
				}
				return tx.AutoMigrate(
					&model.User{},
					&model.Workspace{},
					&model.WorkspaceMember{},
					&model.Article{},
					&model.ArticleVersion{},
					&model.Comment{},
					&model.Tag{},
					&model.Approval{},
					&model.Notification{},
				)
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(
					&model.Notification{},
					&model.Approval{},
					"article_tags",
					&model.Tag{},
					&model.Comment{},
					&model.ArticleVersion{},
					&model.Article{},
					&model.WorkspaceMember{},
					&model.Workspace{},
					&model.User{},
				)
			},
		},
		{
			// 记录文章最近一次编辑的时间与编辑者
			ID: "20250412_article_edit_tracking",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&model.Article{})
			},
			Rollback: func(tx *gorm.DB) error {
				if err := tx.Migrator().DropColumn(&model.Article{}, "last_edited_at"); err != nil {
					return err
				}
				return tx.Migrator().DropColumn(&model.Article{}, "last_edited_by_id")
			},
		},
		{
			ID: "20250530_alert_records",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&model.Alert{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&model.Alert{})
			},
		},
		{
			// 调度三类内容维护任务：审核积压提醒、沉睡草稿提醒和未读摘要
			ID: "20250615_cron_jobs",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.AutoMigrate(&model.CronJobConfig{}, &model.CronJobRecord{}); err != nil {
					return err
				}
				return seedDefaultCronJobs(tx)
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&model.CronJobRecord{}, &model.CronJobConfig{})
			},
		},
	})

	m.InitSchema(func(tx *gorm.DB) error {
		if err := tx.SetupJoinTable(&model.Article{}, "Tags", &model.ArticleTag{}); err != nil {
			return err
		}
		err := tx.AutoMigrate(
			&model.User{},
			&model.Workspace{},
			&model.WorkspaceMember{},
			&model.Article{},
			&model.ArticleVersion{},
			&model.Comment{},
			&model.Tag{},
			&model.Approval{},
			&model.Notification{},
			&model.Alert{},
			&model.CronJobConfig{},
			&model.CronJobRecord{},
		)
		if err != nil {
			return err
		}
		return seedDefaultCronJobs(tx)
	})

	return m.Migrate()
}

// seedDefaultCronJobs 写入默认的维护任务配置。任务名是维护函数注册表
// 中的键，迁移里固化为字面量，避免依赖可能变动的代码常量。
func seedDefaultCronJobs(tx *gorm.DB) error {
	defaults := []model.CronJobConfig{
		{
			Name:    "remind-stale-review-job",
			Type:    model.CronJobTypeMaintainFunc,
			Spec:    "0 9 * * *",
			Suspend: ptr.To(false),
			Config:  datatypes.JSON(`{"staleDays": 3}`),
		},
		{
			Name:    "remind-stale-draft-job",
			Type:    model.CronJobTypeMaintainFunc,
			Spec:    "0 9 * * 1",
			Suspend: ptr.To(false),
			Config:  datatypes.JSON(`{"staleDays": 14}`),
		},
		{
			// 摘要依赖邮件通道，默认暂停，由管理员按需开启
			Name:    "digest-unread-notification-job",
			Type:    model.CronJobTypeMaintainFunc,
			Spec:    "0 8 * * *",
			Suspend: ptr.To(true),
			Config:  datatypes.JSON(`{"minUnread": 5}`),
		},
	}
	return tx.Create(&defaults).Error
}
