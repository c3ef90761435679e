package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NotificationPayload carries the references a client needs to render
// and link a notification without extra lookups.
type NotificationPayload struct {
	WorkspaceID uint   `json:"workspaceID,omitempty"`
	ArticleID   uint   `json:"articleID,omitempty"`
	ActorName   string `json:"actorName,omitempty"`
	Preview     string `json:"preview,omitempty"`
}

// Notification 站内通知模型
//
// 永远不会发给触发者本人
type Notification struct {
	gorm.Model
	UserID   uint                                    `gorm:"index;not null;comment:接收者ID"`
	User     User                                    `gorm:"foreignKey:UserID"`
	Type     NotificationType                        `gorm:"type:varchar(32);not null;comment:通知类型"`
	EntityID uint                                    `gorm:"comment:关联实体ID (评论ID或审批ID)"`
	ActorID  uint                                    `gorm:"comment:触发者ID"`
	Message  string                                  `gorm:"type:varchar(512);not null;comment:通知内容"`
	Payload  datatypes.JSONType[NotificationPayload] `gorm:"comment:通知上下文"`
	Read     bool                                    `gorm:"type:boolean;not null;default:false;comment:是否已读"`
}
