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

type ApprovalReq struct {
	Status   model.ApprovalStatus
	Feedback string
}

// ListApprovals returns every verdict filed for the article.
func (c *Controller) ListApprovals(ctx context.Context, workspaceID, articleID uint) ([]model.Approval, error) {
	if _, err := c.getArticle(ctx, workspaceID, articleID); err != nil {
		return nil, err
	}
	var approvals []model.Approval
	err := c.db.WithContext(ctx).
		Preload("Reviewer").
		Where("article_id = ?", articleID).
		Order("created_at ASC").
		Find(&approvals).Error
	if err != nil {
		return nil, err
	}
	return approvals, nil
}

// RecordApproval files one reviewer's verdict and recomputes the
// article status. A reviewer gets exactly one verdict per article; the
// unique index backs up the existence check.
//
// Drafts take no verdicts. Once an article has been submitted, late
// verdicts keep arriving and recompute may flip the article between
// approved and rejected.
func (c *Controller) RecordApproval(ctx context.Context, member *model.WorkspaceMember, articleID uint, req *ApprovalReq) (*model.Approval, error) {
	if req.Status != model.ApprovalStatusApproved && req.Status != model.ApprovalStatusRejected {
		return nil, apperror.BadRequest("approval status must be Approved or Rejected")
	}

	article, err := c.getArticle(ctx, member.WorkspaceID, articleID)
	if err != nil {
		return nil, err
	}
	if article.Status == model.ArticleStatusDraft {
		return nil, apperror.Conflict("article is not in review")
	}

	var count int64
	err = c.db.WithContext(ctx).Model(&model.Approval{}).
		Where("article_id = ? AND reviewer_id = ?", articleID, member.UserID).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperror.Conflict("approval already submitted for this article")
	}

	now := time.Now()
	approval := &model.Approval{
		ArticleID:  article.ID,
		ReviewerID: member.UserID,
		Status:     req.Status,
		Feedback:   req.Feedback,
		ReviewedAt: &now,
	}
	err = c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(approval).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperror.Conflict("approval already submitted for this article")
			}
			return err
		}
		_, err := c.recompute(tx, article)
		return err
	})
	if err != nil {
		return nil, err
	}

	c.notifyApproval(ctx, approval, article)
	return approval, nil
}

// UpdateApproval lets the reviewer who filed the verdict, or an
// owner/editor, flip it. The article status is recomputed afterwards,
// which is the only path between approved and rejected.
func (c *Controller) UpdateApproval(ctx context.Context, member *model.WorkspaceMember, approvalID uint, req *ApprovalReq) (*model.Approval, error) {
	if req.Status != model.ApprovalStatusApproved && req.Status != model.ApprovalStatusRejected {
		return nil, apperror.BadRequest("approval status must be Approved or Rejected")
	}

	var approval model.Approval
	err := c.db.WithContext(ctx).First(&approval, approvalID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("approval not found")
	}
	if err != nil {
		return nil, err
	}

	article, err := c.getArticle(ctx, member.WorkspaceID, approval.ArticleID)
	if err != nil {
		// Covers approvals from other workspaces as well.
		return nil, apperror.NotFound("approval not found")
	}

	isOwnReview := approval.ReviewerID == member.UserID
	isOwnerOrEditor := member.Role == model.WorkspaceRoleOwner || member.Role == model.WorkspaceRoleEditor
	if !isOwnReview && !isOwnerOrEditor {
		return nil, apperror.Forbidden("insufficient workspace role")
	}

	now := time.Now()
	err = c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&approval).Updates(map[string]any{
			"status":      req.Status,
			"feedback":    req.Feedback,
			"reviewed_at": &now,
		}).Error
		if err != nil {
			return err
		}
		_, err = c.recompute(tx, article)
		return err
	})
	if err != nil {
		return nil, err
	}
	approval.Status = req.Status
	approval.Feedback = req.Feedback
	approval.ReviewedAt = &now
	return &approval, nil
}

// recompute derives the article status from the full approval set:
// one rejection is enough to reject, a non-empty unanimously approved
// set approves, anything else leaves the status alone. The result does
// not depend on the order verdicts arrived in. Draft articles are
// never touched.
func (c *Controller) recompute(tx *gorm.DB, article *model.Article) (bool, error) {
	if article.Status == model.ArticleStatusDraft {
		return false, nil
	}

	var approvals []model.Approval
	if err := tx.Where("article_id = ?", article.ID).Find(&approvals).Error; err != nil {
		return false, err
	}

	next := article.Status
	rejected := false
	allApproved := len(approvals) > 0
	for i := range approvals {
		switch approvals[i].Status {
		case model.ApprovalStatusRejected:
			rejected = true
		case model.ApprovalStatusApproved:
		default:
			allApproved = false
		}
	}
	switch {
	case rejected:
		next = model.ArticleStatusRejected
	case allApproved:
		next = model.ArticleStatusApproved
	}

	if next == article.Status {
		return false, nil
	}
	article.Status = next
	return true, tx.Model(article).Update("status", next).Error
}

// notifyApproval fans out the in-app notification and the best-effort
// alert channels after a verdict is created.
func (c *Controller) notifyApproval(ctx context.Context, approval *model.Approval, article *model.Article) {
	var reviewer, author model.User
	if err := c.db.WithContext(ctx).First(&reviewer, approval.ReviewerID).Error; err != nil {
		klog.Errorf("load reviewer %d failed: %v", approval.ReviewerID, err)
		return
	}
	if c.dispatcher != nil {
		c.dispatcher.ApprovalRecorded(ctx, approval, article, &reviewer)
	}

	if c.alerter == nil || article.AuthorID == approval.ReviewerID {
		return
	}
	if err := c.db.WithContext(ctx).First(&author, article.AuthorID).Error; err != nil {
		klog.Errorf("load author %d failed: %v", article.AuthorID, err)
		return
	}
	if err := c.alerter.ApprovalAlert(ctx, article, &author, approval.Status, approval.Feedback); err != nil {
		klog.Errorf("approval alert failed: %v", err)
	}
	if article.Status == model.ArticleStatusApproved || article.Status == model.ArticleStatusRejected {
		if err := c.alerter.ArticleDecidedAlert(ctx, article, &author, article.Status); err != nil {
			klog.Errorf("decision alert failed: %v", err)
		}
	}
}
