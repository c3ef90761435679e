// Package notify writes in-app notifications. Delivery is best effort:
// a failed insert is logged and the triggering request proceeds, so a
// broken notification never loses an article edit or a comment.
package notify

import (
	"context"
	"regexp"

	"github.com/samber/lo"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"k8s.io/klog/v2"

	"github.com/redink-lab/redink/dao/model"
)

type Dispatcher struct {
	db *gorm.DB
}

func NewDispatcher(db *gorm.DB) *Dispatcher {
	return &Dispatcher{db: db}
}

// dispatch inserts one notification row. The actor never receives a
// notification about their own action.
func (d *Dispatcher) dispatch(ctx context.Context, n *model.Notification) {
	if n.UserID == n.ActorID || n.UserID == 0 {
		return
	}
	if err := d.db.WithContext(ctx).Create(n).Error; err != nil {
		klog.Errorf("dispatch %s notification to user %d failed: %v", n.Type, n.UserID, err)
	}
}

// CommentCreated notifies the article author, and the author of the
// parent comment when the new comment is a reply.
func (d *Dispatcher) CommentCreated(ctx context.Context, comment *model.Comment, article *model.Article, actor *model.User) {
	payload := model.NotificationPayload{
		WorkspaceID: article.WorkspaceID,
		ArticleID:   article.ID,
		ActorName:   actor.Name,
		Preview:     preview(comment.Content),
	}

	d.dispatch(ctx, &model.Notification{
		UserID:   article.AuthorID,
		Type:     model.NotificationTypeComment,
		EntityID: comment.ID,
		ActorID:  actor.ID,
		Message:  actor.Name + " commented on \"" + article.Title + "\"",
		Payload:  datatypes.NewJSONType(payload),
	})

	if comment.ParentID != nil {
		var parent model.Comment
		if err := d.db.WithContext(ctx).First(&parent, *comment.ParentID).Error; err != nil {
			klog.Errorf("load parent comment %d failed: %v", *comment.ParentID, err)
			return
		}
		// The article author was already notified above.
		if parent.AuthorID != article.AuthorID {
			d.dispatch(ctx, &model.Notification{
				UserID:   parent.AuthorID,
				Type:     model.NotificationTypeComment,
				EntityID: comment.ID,
				ActorID:  actor.ID,
				Message:  actor.Name + " replied to your comment",
				Payload:  datatypes.NewJSONType(payload),
			})
		}
	}
}

// ApprovalRecorded notifies the article author of a new verdict.
func (d *Dispatcher) ApprovalRecorded(ctx context.Context, approval *model.Approval, article *model.Article, actor *model.User) {
	payload := model.NotificationPayload{
		WorkspaceID: article.WorkspaceID,
		ArticleID:   article.ID,
		ActorName:   actor.Name,
		Preview:     preview(approval.Feedback),
	}
	d.dispatch(ctx, &model.Notification{
		UserID:   article.AuthorID,
		Type:     model.NotificationTypeApproval,
		EntityID: approval.ID,
		ActorID:  actor.ID,
		Message:  actor.Name + " reviewed \"" + article.Title + "\": " + string(approval.Status),
		Payload:  datatypes.NewJSONType(payload),
	})
}

var mentionPattern = regexp.MustCompile(`@([A-Za-z0-9_.-]+)`)

// ParseMentions extracts the unique usernames mentioned as @name.
func ParseMentions(content string) []string {
	matches := mentionPattern.FindAllStringSubmatch(content, -1)
	names := lo.Map(matches, func(m []string, _ int) string { return m[1] })
	return lo.Uniq(names)
}

// MentionsInComment resolves @username tokens against the workspace
// membership and notifies each mentioned member.
func (d *Dispatcher) MentionsInComment(ctx context.Context, comment *model.Comment, article *model.Article, actor *model.User) {
	names := ParseMentions(comment.Content)
	if len(names) == 0 {
		return
	}

	// Only members of the article's workspace can be mentioned.
	var users []model.User
	err := d.db.WithContext(ctx).
		Joins("JOIN workspace_members ON workspace_members.user_id = users.id").
		Where("workspace_members.workspace_id = ? AND workspace_members.deleted_at IS NULL", article.WorkspaceID).
		Where("users.name IN ?", names).
		Find(&users).Error
	if err != nil {
		klog.Errorf("resolve mentions failed: %v", err)
		return
	}

	payload := model.NotificationPayload{
		WorkspaceID: article.WorkspaceID,
		ArticleID:   article.ID,
		ActorName:   actor.Name,
		Preview:     preview(comment.Content),
	}
	for i := range users {
		d.dispatch(ctx, &model.Notification{
			UserID:   users[i].ID,
			Type:     model.NotificationTypeMention,
			EntityID: comment.ID,
			ActorID:  actor.ID,
			Message:  actor.Name + " mentioned you in \"" + article.Title + "\"",
			Payload:  datatypes.NewJSONType(payload),
		})
	}
}

// ReviewStalled reminds each reviewer that an article has been sitting
// in review. Driven by the scheduled maintenance jobs, not by a user
// action, so the notification carries no actor.
func (d *Dispatcher) ReviewStalled(ctx context.Context, article *model.Article, reviewerIDs []uint) {
	payload := model.NotificationPayload{
		WorkspaceID: article.WorkspaceID,
		ArticleID:   article.ID,
		Preview:     preview(article.Title),
	}
	for _, id := range reviewerIDs {
		d.dispatch(ctx, &model.Notification{
			UserID:   id,
			Type:     model.NotificationTypeSystem,
			EntityID: article.ID,
			Message:  "\"" + article.Title + "\" is still waiting for review",
			Payload:  datatypes.NewJSONType(payload),
		})
	}
}

// DraftStalled nudges the author of a draft that has not been touched
// for a while.
func (d *Dispatcher) DraftStalled(ctx context.Context, article *model.Article) {
	payload := model.NotificationPayload{
		WorkspaceID: article.WorkspaceID,
		ArticleID:   article.ID,
		Preview:     preview(article.Title),
	}
	d.dispatch(ctx, &model.Notification{
		UserID:   article.AuthorID,
		Type:     model.NotificationTypeSystem,
		EntityID: article.ID,
		Message:  "your draft \"" + article.Title + "\" has not been edited recently",
		Payload:  datatypes.NewJSONType(payload),
	})
}

const previewLimit = 120

func preview(content string) string {
	runes := []rune(content)
	if len(runes) <= previewLimit {
		return content
	}
	return string(runes[:previewLimit]) + "…"
}
