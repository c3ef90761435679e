package model

import (
	"gorm.io/gorm"
)

// Workspace is the tenant boundary: every article, tag and membership
// belongs to exactly one workspace.
type Workspace struct {
	gorm.Model
	Name        string `gorm:"type:varchar(64);not null;comment:工作空间名称"`
	Description string `gorm:"type:varchar(512);comment:工作空间描述"`
	Archived    bool   `gorm:"type:boolean;not null;default:false;comment:是否归档"`
	CreatorID   uint   `gorm:"not null;comment:创建者ID"`
	Creator     User   `gorm:"foreignKey:CreatorID"`

	Members []WorkspaceMember `gorm:"foreignKey:WorkspaceID"`
}

// WorkspaceMember binds a user to a workspace with exactly one role.
// The composite unique index keeps a user from holding two roles in the
// same workspace.
type WorkspaceMember struct {
	gorm.Model
	WorkspaceID uint          `gorm:"uniqueIndex:idx_workspace_user;not null;comment:工作空间ID"`
	Workspace   Workspace     `gorm:"foreignKey:WorkspaceID"`
	UserID      uint          `gorm:"uniqueIndex:idx_workspace_user;not null;comment:用户ID"`
	User        User          `gorm:"foreignKey:UserID"`
	Role        WorkspaceRole `gorm:"type:varchar(32);not null;comment:空间内角色 (owner, editor, viewer, reviewer)"`
}
