package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/redink-lab/redink/dao"
	"github.com/redink-lab/redink/dao/model"
	"github.com/redink-lab/redink/internal/resputil"
	"github.com/redink-lab/redink/internal/util"
	"github.com/redink-lab/redink/pkg/authz"
)

// WorkspaceScope resolves the :workspaceID route segment to the
// caller's membership and stores it on the context. It rejects
// non-members and archived workspaces, so handlers behind it can trust
// the scope without re-checking.
func WorkspaceScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		workspaceID, err := strconv.ParseUint(c.Param("workspaceID"), 10, 32)
		if err != nil {
			resputil.BadRequestError(c, "invalid workspace id")
			return
		}

		token := util.GetToken(c)
		member, err := authz.Evaluate(c, dao.GetDB(), token.UserID, uint(workspaceID))
		if err != nil {
			resputil.Error(c, err)
			return
		}

		util.SetWorkspaceContext(c, member.WorkspaceID, member.Role)
		c.Next()
	}
}

// RequireWorkspaceRoles narrows a scoped route to an exact role set.
func RequireWorkspaceRoles(roles ...model.WorkspaceRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, role, ok := util.GetWorkspaceScope(c)
		if !ok {
			resputil.BadRequestError(c, "missing workspace scope")
			return
		}
		if err := authz.RequireRole(role, roles...); err != nil {
			resputil.Error(c, err)
			return
		}
		c.Next()
	}
}
