package authz

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/redink-lab/redink/dao/model"
	"github.com/redink-lab/redink/pkg/apperror"
)

func setupAuthzTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	dsn := fmt.Sprintf("file:authz-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := gdb.AutoMigrate(&model.User{}, &model.Workspace{}, &model.WorkspaceMember{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	return gdb, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	}
}

func seedMember(t *testing.T, gdb *gorm.DB, role model.WorkspaceRole, archived bool) (userID, workspaceID uint) {
	t.Helper()

	user := model.User{Name: fmt.Sprintf("user-%d", time.Now().UnixNano()), Role: model.RoleUser, Status: model.StatusActive}
	require.NoError(t, gdb.Create(&user).Error)
	workspace := model.Workspace{Name: "docs", CreatorID: user.ID, Archived: archived}
	require.NoError(t, gdb.Create(&workspace).Error)
	require.NoError(t, gdb.Create(&model.WorkspaceMember{
		WorkspaceID: workspace.ID,
		UserID:      user.ID,
		Role:        role,
	}).Error)
	return user.ID, workspace.ID
}

func TestEvaluateNonMemberGetsNotFound(t *testing.T) {
	gdb, cleanup := setupAuthzTestDB(t)
	defer cleanup()

	_, workspaceID := seedMember(t, gdb, model.WorkspaceRoleOwner, false)

	outsider := model.User{Name: "outsider", Role: model.RoleUser, Status: model.StatusActive}
	require.NoError(t, gdb.Create(&outsider).Error)

	_, err := Evaluate(context.Background(), gdb, outsider.ID, workspaceID)
	require.Error(t, err)

	opErr, ok := apperror.FromError(err)
	require.True(t, ok)
	// Existence of the workspace is hidden from non-members.
	assert.Equal(t, http.StatusNotFound, opErr.Status)
	assert.Equal(t, "workspace not found", opErr.Message)
}

func TestEvaluateExactRoleSet(t *testing.T) {
	gdb, cleanup := setupAuthzTestDB(t)
	defer cleanup()

	userID, workspaceID := seedMember(t, gdb, model.WorkspaceRoleViewer, false)

	// A viewer is not an editor, and there is no role hierarchy that
	// would let any other role stand in for it.
	_, err := Evaluate(context.Background(), gdb, userID, workspaceID,
		model.WorkspaceRoleOwner, model.WorkspaceRoleEditor)
	require.Error(t, err)
	opErr, ok := apperror.FromError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, opErr.Status)

	member, err := Evaluate(context.Background(), gdb, userID, workspaceID,
		model.WorkspaceRoleViewer)
	require.NoError(t, err)
	assert.Equal(t, model.WorkspaceRoleViewer, member.Role)
}

func TestEvaluateOwnerIsNotImplicitlyEverything(t *testing.T) {
	gdb, cleanup := setupAuthzTestDB(t)
	defer cleanup()

	userID, workspaceID := seedMember(t, gdb, model.WorkspaceRoleOwner, false)

	_, err := Evaluate(context.Background(), gdb, userID, workspaceID,
		model.WorkspaceRoleReviewer)
	require.Error(t, err)
	opErr, ok := apperror.FromError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, opErr.Status)
}

func TestEvaluateAnyMemberWhenNoRolesRequired(t *testing.T) {
	gdb, cleanup := setupAuthzTestDB(t)
	defer cleanup()

	userID, workspaceID := seedMember(t, gdb, model.WorkspaceRoleViewer, false)

	member, err := Evaluate(context.Background(), gdb, userID, workspaceID)
	require.NoError(t, err)
	assert.Equal(t, userID, member.UserID)
}

func TestEvaluateArchivedWorkspaceForbidden(t *testing.T) {
	gdb, cleanup := setupAuthzTestDB(t)
	defer cleanup()

	userID, workspaceID := seedMember(t, gdb, model.WorkspaceRoleOwner, true)

	_, err := Evaluate(context.Background(), gdb, userID, workspaceID)
	require.Error(t, err)
	opErr, ok := apperror.FromError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, opErr.Status)
}

func TestRequireGlobalRoleIsRanked(t *testing.T) {
	// Platform roles are ordered, so a higher role satisfies a lower
	// requirement. This is the opposite shape of the workspace check.
	assert.NoError(t, RequireGlobalRole(model.RoleSuperAdmin, model.RoleAdmin))
	assert.NoError(t, RequireGlobalRole(model.RoleAdmin, model.RoleAdmin))
	assert.NoError(t, RequireGlobalRole(model.RoleAdmin, model.RoleUser))

	err := RequireGlobalRole(model.RoleUser, model.RoleAdmin)
	require.Error(t, err)
	opErr, ok := apperror.FromError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, opErr.Status)
}
