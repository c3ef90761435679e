package model

import (
	"time"

	"gorm.io/gorm"
)

// Article is the unit of content inside a workspace. The row holds the
// workflow state and bookkeeping; the text itself lives in the
// ArticleVersion history, with CurrentVersion pointing at the number
// readers should see.
type Article struct {
	gorm.Model
	WorkspaceID    uint          `gorm:"uniqueIndex:idx_workspace_slug;not null;comment:工作空间ID"`
	Workspace      Workspace     `gorm:"foreignKey:WorkspaceID"`
	AuthorID       uint          `gorm:"not null;comment:作者ID"`
	Author         User          `gorm:"foreignKey:AuthorID"`
	Title          string        `gorm:"type:varchar(256);not null;comment:标题"`
	Slug           string        `gorm:"uniqueIndex:idx_workspace_slug;type:varchar(256);not null;comment:短链接"`
	Content        string        `gorm:"type:text;comment:当前内容"`
	Status         ArticleStatus `gorm:"type:varchar(32);not null;default:draft;comment:生命周期状态"`
	CurrentVersion uint          `gorm:"not null;default:1;comment:当前版本号"`
	ViewCount      uint          `gorm:"not null;default:0;comment:浏览次数"`
	Archived       bool          `gorm:"type:boolean;not null;default:false;comment:是否归档"`
	LastEditedAt   *time.Time    `gorm:"comment:最近编辑时间"`
	LastEditedByID *uint         `gorm:"comment:最近编辑者ID"`

	Versions []ArticleVersion `gorm:"foreignKey:ArticleID"`
	Tags     []Tag            `gorm:"many2many:article_tags;"`
}

// ArticleVersion is an immutable snapshot of an article. Version
// numbers start at 1 and grow by one per snapshot; rows are never
// updated after creation.
type ArticleVersion struct {
	gorm.Model
	ArticleID uint    `gorm:"uniqueIndex:idx_article_version;not null;comment:文章ID"`
	Article   Article `gorm:"foreignKey:ArticleID"`
	Number    uint    `gorm:"uniqueIndex:idx_article_version;not null;comment:版本号"`
	Title     string  `gorm:"type:varchar(256);not null;comment:标题快照"`
	Content   string  `gorm:"type:text;comment:内容快照"`
	EditorID  uint    `gorm:"not null;comment:编辑者ID"`
	Editor    User    `gorm:"foreignKey:EditorID"`
	Summary   string  `gorm:"type:varchar(512);comment:修改说明"`
}
