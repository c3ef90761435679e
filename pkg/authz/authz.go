// Package authz answers "may this user act in this workspace" for the
// handlers. Two deliberately different checks coexist: workspace roles
// are an unordered set and an operation names exactly the roles it
// accepts, while platform roles are ranked and compared numerically.
package authz

import (
	"context"
	"errors"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/redink-lab/redink/dao/model"
	"github.com/redink-lab/redink/pkg/apperror"
)

// Evaluate resolves the caller's membership in a workspace and checks
// it against the required roles. A non-member gets NotFound rather than
// Forbidden so the response does not reveal that the workspace exists.
func Evaluate(ctx context.Context, db *gorm.DB, userID, workspaceID uint,
	required ...model.WorkspaceRole) (*model.WorkspaceMember, error) {
	var member model.WorkspaceMember
	err := db.WithContext(ctx).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("workspace not found")
	}
	if err != nil {
		return nil, err
	}

	var workspace model.Workspace
	err = db.WithContext(ctx).First(&workspace, workspaceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("workspace not found")
	}
	if err != nil {
		return nil, err
	}
	if workspace.Archived {
		return nil, apperror.Forbidden("workspace is archived")
	}

	if err := RequireRole(member.Role, required...); err != nil {
		return nil, err
	}
	return &member, nil
}

// RequireRole checks exact set membership. An empty required list
// accepts any member.
func RequireRole(have model.WorkspaceRole, required ...model.WorkspaceRole) error {
	if len(required) == 0 {
		return nil
	}
	if !lo.Contains(required, have) {
		return apperror.Forbidden("insufficient workspace role")
	}
	return nil
}

// RequireGlobalRole compares platform roles by rank.
func RequireGlobalRole(have, required model.Role) error {
	if !have.HasAtLeast(required) {
		return apperror.Forbidden("insufficient permissions")
	}
	return nil
}
