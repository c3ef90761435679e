package model

import (
	"gorm.io/gorm"
)

// Tag is a workspace-scoped label. Names are unique inside a workspace
// but two workspaces may both define "draft-notes".
type Tag struct {
	gorm.Model
	WorkspaceID uint      `gorm:"uniqueIndex:idx_workspace_tag;not null;comment:工作空间ID"`
	Workspace   Workspace `gorm:"foreignKey:WorkspaceID"`
	Name        string    `gorm:"uniqueIndex:idx_workspace_tag;type:varchar(64);not null;comment:标签名"`
	Color       string    `gorm:"type:varchar(16);comment:标签颜色"`

	Articles []Article `gorm:"many2many:article_tags;"`
}

// ArticleTag is the join row between articles and tags. The composite
// primary key makes attaching a tag twice a duplicate-key conflict
// instead of a second row.
type ArticleTag struct {
	ArticleID uint `gorm:"primaryKey;comment:文章ID"`
	TagID     uint `gorm:"primaryKey;comment:标签ID"`
}
