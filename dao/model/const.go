// 定义与数据库表字段对应的常量
// 由于 Gin 框架在进行参数校验时，如果给了 required 标签，则不能传入零值
// 这个时候，我们可以通过定义对应类型的指针解决该问题，但这可能导致出错
// 所以在定义常量时，最好将零值排除在外，请使用 iota + 1 定义第一个常量
package model

// Role is the platform-wide role of a user. Ordering matters: a larger
// value grants every permission of the smaller ones.
type Role uint8

const (
	RoleUser       Role = iota + 1 // Regular user
	RoleAdmin                      // Platform administrator
	RoleSuperAdmin                 // Super administrator, may manage admins
)

// HasAtLeast reports whether the role ranks at or above required.
func (r Role) HasAtLeast(required Role) bool {
	return r >= required
}

// User status
type Status uint8

const (
	StatusPending  Status = iota + 1 // Pending status, not yet activated
	StatusActive                     // Active status
	StatusInactive                   // Inactive status
)

// WorkspaceRole is the role of a member inside one workspace. Unlike the
// platform Role there is no ordering between workspace roles: an
// operation names the exact set of roles it accepts.
type WorkspaceRole string

const (
	WorkspaceRoleOwner    WorkspaceRole = "owner"    // 空间所有者
	WorkspaceRoleEditor   WorkspaceRole = "editor"   // 编辑者
	WorkspaceRoleViewer   WorkspaceRole = "viewer"   // 只读成员
	WorkspaceRoleReviewer WorkspaceRole = "reviewer" // 审稿人
)

// Valid reports whether the value is one of the defined workspace roles.
func (r WorkspaceRole) Valid() bool {
	switch r {
	case WorkspaceRoleOwner, WorkspaceRoleEditor, WorkspaceRoleViewer, WorkspaceRoleReviewer:
		return true
	}
	return false
}

// ArticleStatus 文章生命周期状态
type ArticleStatus string

const (
	ArticleStatusDraft    ArticleStatus = "draft"     // 草稿
	ArticleStatusInReview ArticleStatus = "in_review" // 审核中
	ArticleStatusApproved ArticleStatus = "approved"  // 已通过
	ArticleStatusRejected ArticleStatus = "rejected"  // 已拒绝
)

// ApprovalStatus 审批状态
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "Pending"  // 待审批
	ApprovalStatusApproved ApprovalStatus = "Approved" // 已批准
	ApprovalStatusRejected ApprovalStatus = "Rejected" // 已拒绝
)

// NotificationType 通知类型
type NotificationType string

const (
	NotificationTypeComment  NotificationType = "comment"  // 评论通知
	NotificationTypeApproval NotificationType = "approval" // 审批通知
	NotificationTypeMention  NotificationType = "mention"  // 提及通知
	NotificationTypeSystem   NotificationType = "system"   // 系统提醒
)
