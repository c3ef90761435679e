package alert

import (
	"context"

	"github.com/redink-lab/redink/dao/model"
)

// AlertMgr 是封装好的通知组件，提供：
// 支持四种初步场景：
//  1. 文章收到审批意见通知
//  2. 文章审核结论（通过/拒绝）通知
//  3. 文章被提交审核通知
//  4. 未读站内通知的定期摘要
type AlertInterface interface {
	ApprovalAlert(ctx context.Context, article *model.Article, receiver *model.User, status model.ApprovalStatus, feedback string) error
	ArticleDecidedAlert(ctx context.Context, article *model.Article, receiver *model.User, status model.ArticleStatus) error
	ArticleSubmittedAlert(ctx context.Context, article *model.Article, receiver *model.User) error
	UnreadDigestAlert(ctx context.Context, receiver *model.User, unread int64) error
}

// alertHandlerInterface 是具体的通知组件对外部提供的接口，Webhook 或者 SMTP 邮件通知都应该实现这个接口
type alertHandlerInterface interface {
	SendMessageTo(ctx context.Context, receiver *model.User, subject, body string) error
}
