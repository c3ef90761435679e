package maintain

import (
	"context"
	"errors"

	"k8s.io/klog/v2"

	"github.com/redink-lab/redink/dao/model"
)

type DigestUnreadRequest struct {
	MinUnread int `form:"minUnread" binding:"required"`
}

// DigestUnreadNotifications 为未读通知积压的用户发送邮件摘要
func DigestUnreadNotifications(c context.Context, clients *Clients, req *DigestUnreadRequest) (map[string][]string, error) {
	if req == nil || req.MinUnread <= 0 {
		err := errors.New("invalid request")
		return nil, err
	}
	mailed := digestUnreadForUsers(c, clients, req.MinUnread)
	ret := map[string][]string{
		"mailed": mailed,
	}
	return ret, nil
}

func digestUnreadForUsers(c context.Context, clients *Clients, minUnread int) []string {
	var rows []struct {
		UserID uint
		Total  int64
	}
	err := clients.DB.WithContext(c).
		Model(&model.Notification{}).
		Select("user_id, COUNT(*) as total").
		Where("read = ?", false).
		Group("user_id").
		Having("COUNT(*) >= ?", minUnread).
		Scan(&rows).Error
	if err != nil {
		klog.Errorf("Failed to count unread notifications: %v", err)
		return nil
	}

	mailed := []string{}
	for _, row := range rows {
		var user model.User
		if err := clients.DB.WithContext(c).First(&user, row.UserID).Error; err != nil {
			klog.Errorf("Failed to load user %d: %v", row.UserID, err)
			continue
		}
		if user.Status != model.StatusActive {
			continue
		}
		if err := clients.Alerter.UnreadDigestAlert(c, &user, row.Total); err != nil {
			klog.Errorf("Failed to mail digest to %s: %v", user.Name, err)
			continue
		}
		mailed = append(mailed, user.Name)
	}

	return mailed
}
