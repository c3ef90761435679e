package payload

import (
	"time"

	"github.com/redink-lab/redink/dao/model"
)

// 定义返回值时，优先在使用到该返回值的 /internal/handler/xxx.go 中直接定义
// 当某个返回值的结构体通用时，从 /internal/handler/xxx.go 中提升至此文件中

type (
	// UserInfo is the public view of a user, shared by the auth, user
	// and member handlers.
	UserInfo struct {
		ID        uint         `json:"id"`
		Name      string       `json:"name"`
		Nickname  string       `json:"nickname,omitempty"`
		Email     string       `json:"email,omitempty"`
		Avatar    string       `json:"avatar,omitempty"`
		Role      model.Role   `json:"role"`
		Status    model.Status `json:"status"`
		CreatedAt time.Time    `json:"createdAt"`
	}

	// WorkspaceInfo is the public view of a workspace.
	WorkspaceInfo struct {
		ID          uint      `json:"id"`
		Name        string    `json:"name"`
		Description string    `json:"description,omitempty"`
		Archived    bool      `json:"archived"`
		CreatorID   uint      `json:"creatorID"`
		CreatedAt   time.Time `json:"createdAt"`
	}
)

// NewUserInfo flattens the JSON attribute column into the response.
func NewUserInfo(u *model.User) UserInfo {
	attr := u.Attribute.Data()
	return UserInfo{
		ID:        u.ID,
		Name:      u.Name,
		Nickname:  attr.Nickname,
		Email:     attr.Email,
		Avatar:    attr.Avatar,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}

// NewWorkspaceInfo converts a workspace row to its public view.
func NewWorkspaceInfo(w *model.Workspace) WorkspaceInfo {
	return WorkspaceInfo{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		Archived:    w.Archived,
		CreatorID:   w.CreatorID,
		CreatedAt:   w.CreatedAt,
	}
}
