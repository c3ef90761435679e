// Package reviewctl implements the article lifecycle and the approval
// aggregation rules: draft articles are submitted for review, reviewers
// file one verdict each, and the collected verdicts decide whether the
// article ends up approved or rejected.
package reviewctl

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/redink-lab/redink/dao/model"
	"github.com/redink-lab/redink/pkg/alert"
	"github.com/redink-lab/redink/pkg/apperror"
	"github.com/redink-lab/redink/pkg/notify"
)

type Controller struct {
	db         *gorm.DB
	dispatcher *notify.Dispatcher
	alerter    alert.AlertInterface
}

// NewController wires the lifecycle service. alerter may be nil when no
// out-of-band channel is configured.
func NewController(db *gorm.DB, dispatcher *notify.Dispatcher, alerter alert.AlertInterface) *Controller {
	return &Controller{
		db:         db,
		dispatcher: dispatcher,
		alerter:    alerter,
	}
}

// getArticle loads a live article scoped to the workspace. Archived
// articles are invisible to every operation.
func (c *Controller) getArticle(ctx context.Context, workspaceID, articleID uint) (*model.Article, error) {
	var article model.Article
	err := c.db.WithContext(ctx).
		Where("workspace_id = ? AND archived = ?", workspaceID, false).
		First(&article, articleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("article not found")
	}
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// nextVersionNumber returns max(number)+1 for the article, starting at 1.
func nextVersionNumber(tx *gorm.DB, articleID uint) (uint, error) {
	var current uint
	err := tx.Model(&model.ArticleVersion{}).
		Where("article_id = ?", articleID).
		Select("COALESCE(MAX(number), 0)").
		Scan(&current).Error
	if err != nil {
		return 0, err
	}
	return current + 1, nil
}
