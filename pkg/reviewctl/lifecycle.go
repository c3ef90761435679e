package reviewctl

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"k8s.io/klog/v2"

	"github.com/redink-lab/redink/dao/model"
	"github.com/redink-lab/redink/pkg/apperror"
)

type (
	CreateArticleReq struct {
		Title   string
		Content string
	}

	UpdateArticleReq struct {
		Title   *string
		Content *string
		Summary string
		Status  *model.ArticleStatus
	}

	CreateVersionReq struct {
		Title   *string
		Content *string
		Summary string
	}

	ArticleListQuery struct {
		Page     int
		Limit    int
		Status   model.ArticleStatus
		AuthorID uint
		TagID    uint
	}
)

// CreateArticle opens a new draft and its first version in one
// transaction.
func (c *Controller) CreateArticle(ctx context.Context, member *model.WorkspaceMember, req *CreateArticleReq) (*model.Article, error) {
	now := time.Now()
	article := &model.Article{
		WorkspaceID:    member.WorkspaceID,
		AuthorID:       member.UserID,
		Title:          req.Title,
		Slug:           Slugify(req.Title, now),
		Content:        req.Content,
		Status:         model.ArticleStatusDraft,
		CurrentVersion: 1,
	}
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(article).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperror.Conflict("article slug already exists")
			}
			return err
		}
		version := &model.ArticleVersion{
			ArticleID: article.ID,
			Number:    1,
			Title:     article.Title,
			Content:   article.Content,
			EditorID:  member.UserID,
		}
		return tx.Create(version).Error
	})
	if err != nil {
		return nil, err
	}
	return article, nil
}

// GetArticle returns the article and counts the view. Every fetch
// increments ViewCount, readers included.
func (c *Controller) GetArticle(ctx context.Context, workspaceID, articleID uint) (*model.Article, error) {
	var article model.Article
	err := c.db.WithContext(ctx).Preload("Tags").
		Where("workspace_id = ? AND archived = ?", workspaceID, false).
		First(&article, articleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("article not found")
	}
	if err != nil {
		return nil, err
	}
	err = c.db.WithContext(ctx).Model(&article).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
	if err != nil {
		return nil, err
	}
	article.ViewCount++
	return &article, nil
}

// ListArticles returns the live articles of a workspace, newest first.
func (c *Controller) ListArticles(ctx context.Context, workspaceID uint, q *ArticleListQuery) ([]model.Article, int64, error) {
	tx := c.db.WithContext(ctx).Model(&model.Article{}).
		Where("articles.workspace_id = ? AND articles.archived = ?", workspaceID, false)
	if q.Status != "" {
		tx = tx.Where("articles.status = ?", q.Status)
	}
	if q.AuthorID != 0 {
		tx = tx.Where("articles.author_id = ?", q.AuthorID)
	}
	if q.TagID != 0 {
		tx = tx.Joins("JOIN article_tags ON article_tags.article_id = articles.id").
			Where("article_tags.tag_id = ?", q.TagID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var articles []model.Article
	err := tx.Preload("Tags").
		Order("articles.created_at DESC").
		Offset((q.Page - 1) * q.Limit).Limit(q.Limit).
		Find(&articles).Error
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

// UpdateArticle applies a content edit, a reviewer's request-changes,
// or both checks and rejects what the caller may not do.
//
// Content edits require the author or an owner/editor and always append
// an immutable version. A reviewer may only push the status back to
// in_review and may not touch the text.
func (c *Controller) UpdateArticle(ctx context.Context, member *model.WorkspaceMember, articleID uint, req *UpdateArticleReq) (*model.Article, error) {
	article, err := c.getArticle(ctx, member.WorkspaceID, articleID)
	if err != nil {
		return nil, err
	}

	isAuthor := article.AuthorID == member.UserID
	isOwnerOrEditor := member.Role == model.WorkspaceRoleOwner || member.Role == model.WorkspaceRoleEditor
	contentEdit := req.Title != nil || req.Content != nil

	if contentEdit {
		if member.Role == model.WorkspaceRoleReviewer {
			return nil, apperror.Forbidden("reviewers may not edit article content")
		}
		if !isAuthor && !isOwnerOrEditor {
			return nil, apperror.Forbidden("only the author or an editor may edit this article")
		}
	}

	if req.Status != nil {
		if *req.Status != model.ArticleStatusInReview {
			return nil, apperror.Conflict("invalid status transition")
		}
		if article.Status == model.ArticleStatusDraft {
			return nil, apperror.Conflict("invalid status transition")
		}
		if !isAuthor && !isOwnerOrEditor && member.Role != model.WorkspaceRoleReviewer {
			return nil, apperror.Forbidden("insufficient workspace role")
		}
	}

	err = c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{}
		if contentEdit {
			if req.Title != nil {
				article.Title = *req.Title
			}
			if req.Content != nil {
				article.Content = *req.Content
			}
			number, err := nextVersionNumber(tx, article.ID)
			if err != nil {
				return err
			}
			version := &model.ArticleVersion{
				ArticleID: article.ID,
				Number:    number,
				Title:     article.Title,
				Content:   article.Content,
				EditorID:  member.UserID,
				Summary:   req.Summary,
			}
			if err := tx.Create(version).Error; err != nil {
				return err
			}
			now := time.Now()
			article.CurrentVersion = number
			article.LastEditedAt = &now
			article.LastEditedByID = &member.UserID
			updates["title"] = article.Title
			updates["content"] = article.Content
			updates["current_version"] = number
			updates["last_edited_at"] = &now
			updates["last_edited_by_id"] = member.UserID
		}
		if req.Status != nil {
			article.Status = *req.Status
			updates["status"] = *req.Status
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(article).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return article, nil
}

// SubmitForReview moves the author's draft into review.
func (c *Controller) SubmitForReview(ctx context.Context, member *model.WorkspaceMember, articleID uint) (*model.Article, error) {
	article, err := c.getArticle(ctx, member.WorkspaceID, articleID)
	if err != nil {
		return nil, err
	}
	if article.AuthorID != member.UserID {
		return nil, apperror.Forbidden("only the author may submit an article for review")
	}
	if article.Status != model.ArticleStatusDraft {
		return nil, apperror.Conflict("invalid status transition")
	}

	article.Status = model.ArticleStatusInReview
	err = c.db.WithContext(ctx).Model(article).
		Update("status", model.ArticleStatusInReview).Error
	if err != nil {
		return nil, err
	}

	c.alertOwnersOnSubmit(ctx, article)
	return article, nil
}

// alertOwnersOnSubmit emails the workspace owners that a new article is
// waiting for review. Best effort only.
func (c *Controller) alertOwnersOnSubmit(ctx context.Context, article *model.Article) {
	if c.alerter == nil {
		return
	}
	var owners []model.User
	err := c.db.WithContext(ctx).
		Joins("JOIN workspace_members ON workspace_members.user_id = users.id").
		Where("workspace_members.workspace_id = ? AND workspace_members.role = ? AND workspace_members.deleted_at IS NULL",
			article.WorkspaceID, model.WorkspaceRoleOwner).
		Find(&owners).Error
	if err != nil {
		klog.Errorf("load workspace owners failed: %v", err)
		return
	}
	for i := range owners {
		if owners[i].ID == article.AuthorID {
			continue
		}
		if err := c.alerter.ArticleSubmittedAlert(ctx, article, &owners[i]); err != nil {
			klog.Errorf("submit alert to %s failed: %v", owners[i].Name, err)
		}
	}
}

// ArchiveArticle soft-removes the article from every surface.
func (c *Controller) ArchiveArticle(ctx context.Context, member *model.WorkspaceMember, articleID uint) error {
	article, err := c.getArticle(ctx, member.WorkspaceID, articleID)
	if err != nil {
		return err
	}
	return c.db.WithContext(ctx).Model(article).Update("archived", true).Error
}

// ListVersions returns the immutable history, newest number first.
func (c *Controller) ListVersions(ctx context.Context, workspaceID, articleID uint, page, limit int) ([]model.ArticleVersion, int64, error) {
	if _, err := c.getArticle(ctx, workspaceID, articleID); err != nil {
		return nil, 0, err
	}

	tx := c.db.WithContext(ctx).Model(&model.ArticleVersion{}).Where("article_id = ?", articleID)
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var versions []model.ArticleVersion
	err := tx.Order("number DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&versions).Error
	if err != nil {
		return nil, 0, err
	}
	return versions, total, nil
}

// GetVersion fetches one snapshot by its number.
func (c *Controller) GetVersion(ctx context.Context, workspaceID, articleID, number uint) (*model.ArticleVersion, error) {
	if _, err := c.getArticle(ctx, workspaceID, articleID); err != nil {
		return nil, err
	}
	var version model.ArticleVersion
	err := c.db.WithContext(ctx).
		Where("article_id = ? AND number = ?", articleID, number).
		First(&version).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("version not found")
	}
	if err != nil {
		return nil, err
	}
	return &version, nil
}

// CreateVersion appends a snapshot explicitly. Omitted fields default
// from the article header, never from the previous snapshot.
func (c *Controller) CreateVersion(ctx context.Context, member *model.WorkspaceMember, articleID uint, req *CreateVersionReq) (*model.ArticleVersion, error) {
	article, err := c.getArticle(ctx, member.WorkspaceID, articleID)
	if err != nil {
		return nil, err
	}

	title := article.Title
	if req.Title != nil {
		title = *req.Title
	}
	content := ""
	if req.Content != nil {
		content = *req.Content
	}

	version := &model.ArticleVersion{
		ArticleID: article.ID,
		Title:     title,
		Content:   content,
		EditorID:  member.UserID,
		Summary:   req.Summary,
	}
	// Only the version pointer moves; the article header keeps its own
	// title and content until the next content edit.
	err = c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		number, err := nextVersionNumber(tx, article.ID)
		if err != nil {
			return err
		}
		version.Number = number
		if err := tx.Create(version).Error; err != nil {
			return err
		}
		now := time.Now()
		return tx.Model(article).Updates(map[string]any{
			"current_version":   number,
			"last_edited_at":    &now,
			"last_edited_by_id": member.UserID,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return version, nil
}
