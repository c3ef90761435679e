package model

import (
	"time"

	"gorm.io/gorm"
)

// Approval is one reviewer's verdict on one article. The composite
// unique index limits a reviewer to a single approval row per article;
// changing one's mind goes through an update of the existing row.
type Approval struct {
	gorm.Model
	ArticleID  uint           `gorm:"uniqueIndex:idx_article_reviewer;not null;comment:文章ID"`
	Article    Article        `gorm:"foreignKey:ArticleID"`
	ReviewerID uint           `gorm:"uniqueIndex:idx_article_reviewer;not null;comment:审稿人ID"`
	Reviewer   User           `gorm:"foreignKey:ReviewerID"`
	Status     ApprovalStatus `gorm:"type:varchar(32);not null;default:Pending;comment:审批状态"`
	Feedback   string         `gorm:"type:varchar(512);comment:审批意见"`
	ReviewedAt *time.Time     `gorm:"comment:审批时间"`
}
