package model

import (
	"gorm.io/gorm"
)

// Comment is a remark on an article. Threading is one level deep: a
// reply points at a top-level comment through ParentID, replies to
// replies are rejected at the service layer. Deleting a comment only
// flips Deleted so existing replies keep their anchor.
type Comment struct {
	gorm.Model
	ArticleID uint     `gorm:"index;not null;comment:文章ID"`
	Article   Article  `gorm:"foreignKey:ArticleID"`
	AuthorID  uint     `gorm:"not null;comment:评论者ID"`
	Author    User     `gorm:"foreignKey:AuthorID"`
	ParentID  *uint    `gorm:"comment:父评论ID"`
	Parent    *Comment `gorm:"foreignKey:ParentID"`
	Content   string   `gorm:"type:text;not null;comment:评论内容"`
	Deleted   bool     `gorm:"type:boolean;not null;default:false;comment:是否已删除"`

	Replies []Comment `gorm:"foreignKey:ParentID"`
}
