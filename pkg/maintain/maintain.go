package maintain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"k8s.io/klog/v2"

	"github.com/redink-lab/redink/dao/model"
	"github.com/redink-lab/redink/pkg/alert"
	"github.com/redink-lab/redink/pkg/notify"
)

const (
	REMIND_STALE_REVIEW_JOB        = "remind-stale-review-job"
	REMIND_STALE_DRAFT_JOB         = "remind-stale-draft-job"
	DIGEST_UNREAD_NOTIFICATION_JOB = "digest-unread-notification-job"
)

// Clients 包含维护任务所需的所有依赖
type Clients struct {
	DB         *gorm.DB
	Dispatcher *notify.Dispatcher
	Alerter    alert.AlertInterface
}

// MaintainFunc 定义维护函数的类型
type MaintainFunc func(ctx context.Context) (any, error)

// GetMaintainFunc 根据作业名称返回对应的维护函数
func GetMaintainFunc(jobName string, clients *Clients, jobConfig datatypes.JSON) (MaintainFunc, error) {
	switch jobName {
	case REMIND_STALE_REVIEW_JOB:
		req := &RemindStaleReviewsRequest{}
		if err := json.Unmarshal(jobConfig, req); err != nil {
			return nil, err
		}
		return func(ctx context.Context) (any, error) {
			return RemindStaleReviews(ctx, clients, req)
		}, nil

	case REMIND_STALE_DRAFT_JOB:
		req := &RemindStaleDraftsRequest{}
		if err := json.Unmarshal(jobConfig, req); err != nil {
			return nil, err
		}
		return func(ctx context.Context) (any, error) {
			return RemindStaleDrafts(ctx, clients, req)
		}, nil

	case DIGEST_UNREAD_NOTIFICATION_JOB:
		req := &DigestUnreadRequest{}
		if err := json.Unmarshal(jobConfig, req); err != nil {
			return nil, err
		}
		return func(ctx context.Context) (any, error) {
			return DigestUnreadNotifications(ctx, clients, req)
		}, nil

	default:
		return nil, fmt.Errorf("unsupported maintain job name: %s", jobName)
	}
}

// GetWrapMaintainFunc 获取并封装维护函数（GetMaintainFunc + WrapMaintainFunc 的组合）
func GetWrapMaintainFunc(jobName string, clients *Clients, jobConfig datatypes.JSON) (func(), error) {
	maintainFunc, err := GetMaintainFunc(jobName, clients, jobConfig)
	if err != nil {
		return nil, err
	}
	return WrapMaintainFunc(clients.DB, jobName, maintainFunc), nil
}

// WrapMaintainFunc 封装维护函数，添加通用的错误处理和记录逻辑
func WrapMaintainFunc(db *gorm.DB, jobName string, maintainFunc MaintainFunc) func() {
	return func() {
		ctx := context.Background()
		jobResult, err := maintainFunc(ctx)
		status := model.CronJobRecordStatusSuccess
		message := ""
		if err != nil {
			status = model.CronJobRecordStatusFailed
			message = err.Error()
			klog.Errorf("MaintainFunc %s failed: %v", jobName, err)
		}

		rec := &model.CronJobRecord{
			Name:        jobName,
			ExecuteTime: time.Now(),
			Message:     message,
			Status:      status,
		}

		// 将结果序列化为JSON
		if jobResult != nil {
			if data, err := json.Marshal(jobResult); err != nil {
				klog.Errorf("WrapMaintainFunc failed to marshal job result: %v", err)
			} else {
				rec.JobData = datatypes.JSON(data)
			}
		}

		if err := db.Model(rec).Create(rec).Error; err != nil {
			klog.Errorf("WrapMaintainFunc failed to create record: %v", err)
		}
	}
}
