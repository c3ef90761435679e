package maintain

import (
	"context"
	"errors"
	"time"

	"k8s.io/klog/v2"

	"github.com/redink-lab/redink/dao/model"
)

type RemindStaleReviewsRequest struct {
	StaleDays int `form:"staleDays" binding:"required"`
}

// RemindStaleReviews 查找长时间停留在审核中的文章并提醒审稿人
func RemindStaleReviews(c context.Context, clients *Clients, req *RemindStaleReviewsRequest) (map[string][]string, error) {
	if req == nil || req.StaleDays <= 0 {
		err := errors.New("invalid request")
		return nil, err
	}
	reminded := remindStaleReviewArticles(c, clients, req.StaleDays)
	ret := map[string][]string{
		"reminded": reminded,
	}
	return ret, nil
}

func remindStaleReviewArticles(c context.Context, clients *Clients, staleDays int) []string {
	cutoff := time.Now().AddDate(0, 0, -staleDays)

	var articles []model.Article
	err := clients.DB.WithContext(c).
		Joins("JOIN workspaces ON workspaces.id = articles.workspace_id").
		Where("articles.status = ? AND articles.archived = ? AND articles.updated_at < ?",
			model.ArticleStatusInReview, false, cutoff).
		Where("workspaces.archived = ? AND workspaces.deleted_at IS NULL", false).
		Find(&articles).Error
	if err != nil {
		klog.Errorf("Failed to get stale in-review articles: %v", err)
		return nil
	}

	reminded := []string{}
	for i := range articles {
		ids := reviewerIDs(c, clients, articles[i].WorkspaceID)
		if len(ids) == 0 {
			continue
		}
		clients.Dispatcher.ReviewStalled(c, &articles[i], ids)
		reminded = append(reminded, articles[i].Slug)
	}

	return reminded
}

// 审稿提醒发给审稿人和空间所有者
func reviewerIDs(c context.Context, clients *Clients, workspaceID uint) []uint {
	var ids []uint
	err := clients.DB.WithContext(c).
		Model(&model.WorkspaceMember{}).
		Where("workspace_id = ? AND role IN ?", workspaceID,
			[]model.WorkspaceRole{model.WorkspaceRoleReviewer, model.WorkspaceRoleOwner}).
		Pluck("user_id", &ids).Error
	if err != nil {
		klog.Errorf("Failed to get reviewers of workspace %d: %v", workspaceID, err)
		return nil
	}
	return ids
}
