package alert

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"
	"k8s.io/klog/v2"

	"github.com/redink-lab/redink/dao"
	"github.com/redink-lab/redink/dao/model"
	"github.com/redink-lab/redink/pkg/config"
)

type alertMgr struct {
	handler alertHandlerInterface
	db      *gorm.DB
}

var (
	once    sync.Once
	alerter *alertMgr
)

func GetAlertMgr() AlertInterface {
	once.Do(func() {
		alerter = initAlertMgr(dao.GetDB())
	})
	return alerter
}

func initAlertMgr(db *gorm.DB) *alertMgr {
	// 根据 Config 初始化选择具体要使用的 alert handler
	// SMTP 优先，其次 Webhook，都没有配置时降级为日志
	cfg := config.GetConfig()
	var handler alertHandlerInterface
	switch {
	case cfg.SMTP.Host != "":
		smtpHandler, err := newSMTPAlerter()
		if err != nil {
			panic(err)
		}
		handler = smtpHandler
	case cfg.Webhook.URL != "":
		handler = newWebhookAlerter()
	default:
		handler = newStubAlerter()
	}
	return &alertMgr{
		handler: handler,
		db:      db,
	}
}

// shouldSend 查询审计记录，阻止不允许重复的告警再次发送
func (a *alertMgr) shouldSend(ctx context.Context, articleName, alertType string, allowRepeat bool) bool {
	var record model.Alert
	err := a.db.WithContext(ctx).
		Where("article_name = ? AND alert_type = ?", articleName, alertType).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true
	}
	if err != nil {
		klog.Errorf("query alert record failed: %v", err)
		return true
	}
	return allowRepeat || record.AllowRepeat
}

// recordSend 留下所有发送邮件记录
func (a *alertMgr) recordSend(ctx context.Context, articleName, alertType string, allowRepeat bool) {
	var record model.Alert
	err := a.db.WithContext(ctx).
		Where("article_name = ? AND alert_type = ?", articleName, alertType).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		record = model.Alert{
			ArticleName:    articleName,
			AlertType:      alertType,
			AlertTimestamp: time.Now(),
			AllowRepeat:    allowRepeat,
			SendCount:      1,
		}
		if err := a.db.WithContext(ctx).Create(&record).Error; err != nil {
			klog.Errorf("record alert failed: %v", err)
		}
		return
	}
	if err != nil {
		klog.Errorf("query alert record failed: %v", err)
		return
	}
	err = a.db.WithContext(ctx).Model(&record).Updates(map[string]any{
		"alert_timestamp": time.Now(),
		"send_count":      record.SendCount + 1,
	}).Error
	if err != nil {
		klog.Errorf("update alert record failed: %v", err)
	}
}

func (a *alertMgr) send(ctx context.Context, receiver *model.User, articleName, alertType, subject, body string, allowRepeat bool) error {
	if !a.shouldSend(ctx, articleName, alertType, allowRepeat) {
		return nil
	}
	if err := a.handler.SendMessageTo(ctx, receiver, subject, body); err != nil {
		return err
	}
	a.recordSend(ctx, articleName, alertType, allowRepeat)
	return nil
}

func (a *alertMgr) ApprovalAlert(ctx context.Context, article *model.Article, receiver *model.User,
	status model.ApprovalStatus, feedback string) error {
	subject := "文章收到审批意见"
	body := fmt.Sprintf(`用户 %s 您好：您的文章《%s》收到了一条审批意见（%s）。%s`,
		receiver.Name, article.Title, status, feedback)
	return a.send(ctx, receiver, article.Slug, "approval", subject, body, true)
}

func (a *alertMgr) ArticleDecidedAlert(ctx context.Context, article *model.Article, receiver *model.User,
	status model.ArticleStatus) error {
	subject := "文章审核结论通知"
	body := fmt.Sprintf(`用户 %s 您好：您的文章《%s》审核已有结论：%s。`,
		receiver.Name, article.Title, status)
	return a.send(ctx, receiver, article.Slug, "decided-"+string(status), subject, body, false)
}

func (a *alertMgr) ArticleSubmittedAlert(ctx context.Context, article *model.Article, receiver *model.User) error {
	subject := "文章已提交审核"
	body := fmt.Sprintf(`用户 %s 您好：文章《%s》已进入审核流程。`,
		receiver.Name, article.Title)
	return a.send(ctx, receiver, article.Slug, "submitted", subject, body, true)
}

func (a *alertMgr) UnreadDigestAlert(ctx context.Context, receiver *model.User, unread int64) error {
	subject := "未读通知摘要"
	body := fmt.Sprintf(`用户 %s 您好：您有 %d 条未读的站内通知，请及时登录查看。`,
		receiver.Name, unread)
	// 摘要由定时任务按周期触发，每次发送都是有意的
	return a.send(ctx, receiver, "digest-"+receiver.Name, "digest", subject, body, true)
}
