package util

import (
	"github.com/gin-gonic/gin"

	"github.com/redink-lab/redink/dao/model"
)

const (
	UserIDKey   = "x-user-id"
	UsernameKey = "x-user-name"

	RolePlatformKey = "x-role-platform"

	// Set by the workspace scope middleware, absent outside of
	// /workspaces/:workspaceID routes.
	WorkspaceIDKey   = "x-workspace-id"
	WorkspaceRoleKey = "x-workspace-role"
)

func SetJWTContext(
	c *gin.Context,
	msg JWTMessage,
) {
	c.Set(UserIDKey, msg.UserID)
	c.Set(UsernameKey, msg.Username)

	c.Set(RolePlatformKey, msg.RolePlatform)
}

func GetToken(ctx *gin.Context) JWTMessage {
	var msg JWTMessage
	msg.UserID = ctx.GetUint(UserIDKey)
	msg.Username = ctx.GetString(UsernameKey)

	rolePlatform, _ := ctx.Get(RolePlatformKey)
	msg.RolePlatform = rolePlatform.(model.Role)
	return msg
}

func SetWorkspaceContext(c *gin.Context, workspaceID uint, role model.WorkspaceRole) {
	c.Set(WorkspaceIDKey, workspaceID)
	c.Set(WorkspaceRoleKey, role)
}

// GetWorkspaceScope returns the workspace id and caller role resolved
// by the scope middleware. The second return is false on routes that
// never went through it.
func GetWorkspaceScope(ctx *gin.Context) (uint, model.WorkspaceRole, bool) {
	role, ok := ctx.Get(WorkspaceRoleKey)
	if !ok {
		return 0, "", false
	}
	return ctx.GetUint(WorkspaceIDKey), role.(model.WorkspaceRole), true
}

// GetMember rebuilds the caller's membership from the scoped context.
// Only valid on routes behind the workspace scope middleware.
func GetMember(ctx *gin.Context) *model.WorkspaceMember {
	workspaceID, role, _ := GetWorkspaceScope(ctx)
	return &model.WorkspaceMember{
		WorkspaceID: workspaceID,
		UserID:      ctx.GetUint(UserIDKey),
		Role:        role,
	}
}
