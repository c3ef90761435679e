package maintain

import (
	"context"
	"errors"
	"time"

	"k8s.io/klog/v2"

	"github.com/redink-lab/redink/dao/model"
)

type RemindStaleDraftsRequest struct {
	StaleDays int `form:"staleDays" binding:"required"`
}

// RemindStaleDrafts 提醒作者处理长期未编辑的草稿
func RemindStaleDrafts(c context.Context, clients *Clients, req *RemindStaleDraftsRequest) (map[string][]string, error) {
	if req == nil || req.StaleDays <= 0 {
		err := errors.New("invalid request")
		return nil, err
	}
	reminded := remindStaleDraftArticles(c, clients, req.StaleDays)
	ret := map[string][]string{
		"reminded": reminded,
	}
	return ret, nil
}

func remindStaleDraftArticles(c context.Context, clients *Clients, staleDays int) []string {
	cutoff := time.Now().AddDate(0, 0, -staleDays)

	// 编辑会刷新 updated_at，所以用它衡量草稿是否被搁置
	var articles []model.Article
	err := clients.DB.WithContext(c).
		Joins("JOIN workspaces ON workspaces.id = articles.workspace_id").
		Where("articles.status = ? AND articles.archived = ? AND articles.updated_at < ?",
			model.ArticleStatusDraft, false, cutoff).
		Where("workspaces.archived = ? AND workspaces.deleted_at IS NULL", false).
		Find(&articles).Error
	if err != nil {
		klog.Errorf("Failed to get stale draft articles: %v", err)
		return nil
	}

	reminded := []string{}
	for i := range articles {
		clients.Dispatcher.DraftStalled(c, &articles[i])
		reminded = append(reminded, articles[i].Slug)
	}

	return reminded
}
