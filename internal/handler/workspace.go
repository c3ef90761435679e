package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/redink-lab/redink/dao/model"
	"github.com/redink-lab/redink/internal/middleware"
	"github.com/redink-lab/redink/internal/payload"
	"github.com/redink-lab/redink/internal/resputil"
	"github.com/redink-lab/redink/internal/util"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewWorkspaceMgr)
}

type WorkspaceMgr struct {
	name string
	db   *gorm.DB
}

func NewWorkspaceMgr(conf *RegisterConfig) Manager {
	return &WorkspaceMgr{
		name: "workspaces",
		db:   conf.DB,
	}
}

func (mgr *WorkspaceMgr) GetName() string { return mgr.name }

func (mgr *WorkspaceMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *WorkspaceMgr) RegisterProtected(g *gin.RouterGroup) {
	g.POST("/workspaces", mgr.CreateWorkspace)
	g.GET("/workspaces", mgr.ListMyWorkspaces)

	ws := g.Group("/workspaces/:workspaceID", middleware.WorkspaceScope())
	ws.GET("", mgr.GetWorkspace)
	ws.PUT("", middleware.RequireWorkspaceRoles(model.WorkspaceRoleOwner), mgr.UpdateWorkspace)
	ws.DELETE("", middleware.RequireWorkspaceRoles(model.WorkspaceRoleOwner), mgr.ArchiveWorkspace)

	ws.GET("/members", mgr.ListMembers)
	ws.POST("/members", middleware.RequireWorkspaceRoles(model.WorkspaceRoleOwner), mgr.AddMember)
	ws.PUT("/members/:userID", middleware.RequireWorkspaceRoles(model.WorkspaceRoleOwner), mgr.UpdateMember)
	ws.DELETE("/members/:userID", mgr.RemoveMember)
}

func (mgr *WorkspaceMgr) RegisterAdmin(g *gin.RouterGroup) {
	g.GET("/workspaces", mgr.AdminListWorkspaces)
}

type (
	CreateWorkspaceReq struct {
		Name        string `json:"name" binding:"required,max=128"` // 工作区名称
		Description string `json:"description" binding:"max=512"`   // 描述
	}

	UpdateWorkspaceReq struct {
		Name        *string `json:"name" binding:"omitempty,max=128"`
		Description *string `json:"description" binding:"omitempty,max=512"`
	}

	AddMemberReq struct {
		Username string              `json:"username" binding:"required"` // 受邀用户名
		Role     model.WorkspaceRole `json:"role" binding:"required"`     // 成员角色
	}

	UpdateMemberReq struct {
		Role model.WorkspaceRole `json:"role" binding:"required"` // 新角色
	}

	MemberResp struct {
		UserID   uint                `json:"userId"`   // 用户ID
		Username string              `json:"username"` // 用户名
		Nickname string              `json:"nickname"` // 昵称
		Role     model.WorkspaceRole `json:"role"`     // 工作区角色
	}
)

// CreateWorkspace godoc
// @Summary 创建工作区
// @Description 创建工作区，同一事务内将创建者写入 owner 成员
// @Tags Workspace
// @Accept json
// @Produce json
// @Security Bearer
// @Param data body CreateWorkspaceReq true "工作区信息"
// @Success 201 {object} resputil.Envelope "创建成功"
// @Failure 400 {object} resputil.Envelope "请求参数错误"
// @Router /v1/workspaces [post]
func (mgr *WorkspaceMgr) CreateWorkspace(c *gin.Context) {
	var req CreateWorkspaceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	token := util.GetToken(c)

	workspace := model.Workspace{
		Name:        req.Name,
		Description: req.Description,
		CreatorID:   token.UserID,
	}
	// 创建工作区和 owner 成员必须原子完成
	err := mgr.db.WithContext(c).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&workspace).Error; err != nil {
			return err
		}
		member := model.WorkspaceMember{
			WorkspaceID: workspace.ID,
			UserID:      token.UserID,
			Role:        model.WorkspaceRoleOwner,
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		resputil.Error(c, err)
		return
	}
	resputil.Created(c, resputil.Envelope{"workspace": payload.NewWorkspaceInfo(&workspace)})
}

// ListMyWorkspaces godoc
// @Summary 列出我的工作区
// @Description 返回当前用户加入的全部未归档工作区
// @Tags Workspace
// @Produce json
// @Security Bearer
// @Success 200 {object} resputil.Envelope "工作区列表"
// @Router /v1/workspaces [get]
func (mgr *WorkspaceMgr) ListMyWorkspaces(c *gin.Context) {
	token := util.GetToken(c)
	var workspaces []model.Workspace
	err := mgr.db.WithContext(c).
		Joins("JOIN workspace_members ON workspace_members.workspace_id = workspaces.id").
		Where("workspace_members.user_id = ? AND workspace_members.deleted_at IS NULL", token.UserID).
		Where("workspaces.archived = ?", false).
		Order("workspaces.created_at DESC").
		Find(&workspaces).Error
	if err != nil {
		resputil.Error(c, err)
		return
	}
	infos := make([]payload.WorkspaceInfo, 0, len(workspaces))
	for i := range workspaces {
		infos = append(infos, payload.NewWorkspaceInfo(&workspaces[i]))
	}
	resputil.Success(c, resputil.Envelope{"workspaces": infos})
}

// GetWorkspace godoc
// @Summary 获取工作区详情
// @Description 成员查看工作区详情
// @Tags Workspace
// @Produce json
// @Security Bearer
// @Param workspaceID path int true "工作区ID"
// @Success 200 {object} resputil.Envelope "工作区详情"
// @Failure 404 {object} resputil.Envelope "工作区不存在"
// @Router /v1/workspaces/{workspaceID} [get]
func (mgr *WorkspaceMgr) GetWorkspace(c *gin.Context) {
	workspaceID, _, _ := util.GetWorkspaceScope(c)
	var workspace model.Workspace
	if err := mgr.db.WithContext(c).First(&workspace, workspaceID).Error; err != nil {
		resputil.Error(c, err)
		return
	}
	resputil.Success(c, resputil.Envelope{"workspace": payload.NewWorkspaceInfo(&workspace)})
}

// UpdateWorkspace godoc
// @Summary 更新工作区
// @Description owner 更新工作区名称或描述
// @Tags Workspace
// @Accept json
// @Produce json
// @Security Bearer
// @Param workspaceID path int true "工作区ID"
// @Param data body UpdateWorkspaceReq true "更新字段"
// @Success 200 {object} resputil.Envelope "更新成功"
// @Failure 403 {object} resputil.Envelope "非 owner"
// @Router /v1/workspaces/{workspaceID} [put]
func (mgr *WorkspaceMgr) UpdateWorkspace(c *gin.Context) {
	var req UpdateWorkspaceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	workspaceID, _, _ := util.GetWorkspaceScope(c)

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if len(updates) == 0 {
		resputil.BadRequestError(c, "nothing to update")
		return
	}
	if err := mgr.db.WithContext(c).Model(&model.Workspace{}).
		Where("id = ?", workspaceID).Updates(updates).Error; err != nil {
		resputil.Error(c, err)
		return
	}
	var workspace model.Workspace
	if err := mgr.db.WithContext(c).First(&workspace, workspaceID).Error; err != nil {
		resputil.Error(c, err)
		return
	}
	resputil.Success(c, resputil.Envelope{"workspace": payload.NewWorkspaceInfo(&workspace)})
}

// ArchiveWorkspace godoc
// @Summary 归档工作区
// @Description owner 归档工作区，归档后其下所有操作被拒绝
// @Tags Workspace
// @Produce json
// @Security Bearer
// @Param workspaceID path int true "工作区ID"
// @Success 200 {object} resputil.Envelope "归档成功"
// @Failure 403 {object} resputil.Envelope "非 owner"
// @Router /v1/workspaces/{workspaceID} [delete]
func (mgr *WorkspaceMgr) ArchiveWorkspace(c *gin.Context) {
	workspaceID, _, _ := util.GetWorkspaceScope(c)
	if err := mgr.db.WithContext(c).Model(&model.Workspace{}).
		Where("id = ?", workspaceID).Update("archived", true).Error; err != nil {
		resputil.Error(c, err)
		return
	}
	resputil.Message(c, "workspace archived")
}

// ListMembers godoc
// @Summary 列出工作区成员
// @Description 成员查看工作区成员列表
// @Tags Workspace
// @Produce json
// @Security Bearer
// @Param workspaceID path int true "工作区ID"
// @Success 200 {object} resputil.Envelope "成员列表"
// @Router /v1/workspaces/{workspaceID}/members [get]
func (mgr *WorkspaceMgr) ListMembers(c *gin.Context) {
	workspaceID, _, _ := util.GetWorkspaceScope(c)
	var members []model.WorkspaceMember
	err := mgr.db.WithContext(c).
		Preload("User").
		Where("workspace_id = ?", workspaceID).
		Order("id ASC").
		Find(&members).Error
	if err != nil {
		resputil.Error(c, err)
		return
	}
	resp := make([]MemberResp, 0, len(members))
	for i := range members {
		m := &members[i]
		resp = append(resp, MemberResp{
			UserID:   m.UserID,
			Username: m.User.Name,
			Nickname: m.User.Attribute.Data().Nickname,
			Role:     m.Role,
		})
	}
	resputil.Success(c, resputil.Envelope{"members": resp})
}

// AddMember godoc
// @Summary 邀请成员
// @Description owner 按用户名邀请成员，重复邀请返回 409
// @Tags Workspace
// @Accept json
// @Produce json
// @Security Bearer
// @Param workspaceID path int true "工作区ID"
// @Param data body AddMemberReq true "被邀请人和角色"
// @Success 201 {object} resputil.Envelope "邀请成功"
// @Failure 400 {object} resputil.Envelope "用户不存在或未激活"
// @Failure 409 {object} resputil.Envelope "用户已是成员"
// @Router /v1/workspaces/{workspaceID}/members [post]
func (mgr *WorkspaceMgr) AddMember(c *gin.Context) {
	var req AddMemberReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	if !req.Role.Valid() {
		resputil.BadRequestError(c, "unknown workspace role")
		return
	}
	workspaceID, _, _ := util.GetWorkspaceScope(c)

	var user model.User
	if err := mgr.db.WithContext(c).Where("name = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resputil.BadRequestError(c, "no such user")
			return
		}
		resputil.Error(c, err)
		return
	}
	if user.Status != model.StatusActive {
		resputil.BadRequestError(c, "user is not active")
		return
	}

	var count int64
	if err := mgr.db.WithContext(c).Model(&model.WorkspaceMember{}).
		Where("workspace_id = ? AND user_id = ?", workspaceID, user.ID).
		Count(&count).Error; err != nil {
		resputil.Error(c, err)
		return
	}
	if count > 0 {
		resputil.HTTPError(c, http.StatusConflict, "user is already a member")
		return
	}

	member := model.WorkspaceMember{
		WorkspaceID: workspaceID,
		UserID:      user.ID,
		Role:        req.Role,
	}
	if err := mgr.db.WithContext(c).Create(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			resputil.HTTPError(c, http.StatusConflict, "user is already a member")
			return
		}
		resputil.Error(c, err)
		return
	}
	resputil.Created(c, resputil.Envelope{"member": MemberResp{
		UserID:   user.ID,
		Username: user.Name,
		Nickname: user.Attribute.Data().Nickname,
		Role:     member.Role,
	}})
}

// UpdateMember godoc
// @Summary 调整成员角色
// @Description owner 调整成员角色，owner 行不可变更
// @Tags Workspace
// @Accept json
// @Produce json
// @Security Bearer
// @Param workspaceID path int true "工作区ID"
// @Param userID path int true "成员用户ID"
// @Param data body UpdateMemberReq true "新角色"
// @Success 200 {object} resputil.Envelope "调整成功"
// @Failure 403 {object} resputil.Envelope "owner 行不可变更"
// @Router /v1/workspaces/{workspaceID}/members/{userID} [put]
func (mgr *WorkspaceMgr) UpdateMember(c *gin.Context) {
	var req UpdateMemberReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	if !req.Role.Valid() {
		resputil.BadRequestError(c, "unknown workspace role")
		return
	}
	member, ok := mgr.pathMember(c)
	if !ok {
		return
	}
	if member.Role == model.WorkspaceRoleOwner {
		resputil.HTTPError(c, http.StatusForbidden, "owner membership cannot be changed")
		return
	}
	if err := mgr.db.WithContext(c).Model(member).Update("role", req.Role).Error; err != nil {
		resputil.Error(c, err)
		return
	}
	resputil.Message(c, "member updated")
}

// RemoveMember godoc
// @Summary 移除成员
// @Description owner 移除成员；成员可自行退出，owner 行均不可移除
// @Tags Workspace
// @Produce json
// @Security Bearer
// @Param workspaceID path int true "工作区ID"
// @Param userID path int true "成员用户ID"
// @Success 200 {object} resputil.Envelope "移除成功"
// @Failure 403 {object} resputil.Envelope "权限不足或 owner 行"
// @Router /v1/workspaces/{workspaceID}/members/{userID} [delete]
func (mgr *WorkspaceMgr) RemoveMember(c *gin.Context) {
	member, ok := mgr.pathMember(c)
	if !ok {
		return
	}
	token := util.GetToken(c)
	_, callerRole, _ := util.GetWorkspaceScope(c)

	// 只有 owner 可以移除他人，任何成员都可以退出，但 owner 行不可移除
	if member.UserID != token.UserID && callerRole != model.WorkspaceRoleOwner {
		resputil.HTTPError(c, http.StatusForbidden, "only the owner may remove other members")
		return
	}
	if member.Role == model.WorkspaceRoleOwner {
		resputil.HTTPError(c, http.StatusForbidden, "owner membership cannot be removed")
		return
	}
	// 物理删除以释放 (workspace, user) 唯一索引占用，成员之后可以被重新邀请
	if err := mgr.db.WithContext(c).Unscoped().Delete(member).Error; err != nil {
		resputil.Error(c, err)
		return
	}
	resputil.Message(c, "member removed")
}

func (mgr *WorkspaceMgr) pathMember(c *gin.Context) (*model.WorkspaceMember, bool) {
	userID, err := strconv.ParseUint(c.Param("userID"), 10, 32)
	if err != nil {
		resputil.BadRequestError(c, "invalid user id")
		return nil, false
	}
	workspaceID, _, _ := util.GetWorkspaceScope(c)
	var member model.WorkspaceMember
	dbErr := mgr.db.WithContext(c).
		Where("workspace_id = ? AND user_id = ?", workspaceID, uint(userID)).
		First(&member).Error
	if dbErr != nil {
		if errors.Is(dbErr, gorm.ErrRecordNotFound) {
			resputil.HTTPError(c, http.StatusNotFound, "member not found")
			return nil, false
		}
		resputil.Error(c, dbErr)
		return nil, false
	}
	return &member, true
}

// AdminListWorkspaces godoc
// @Summary 管理员列出全部工作区
// @Description 包含已归档工作区，分页返回
// @Tags Workspace
// @Produce json
// @Security Bearer
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} resputil.Envelope "工作区列表"
// @Router /v1/admin/workspaces [get]
func (mgr *WorkspaceMgr) AdminListWorkspaces(c *gin.Context) {
	var q payload.ListReqQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	q.Normalize()

	var total int64
	if err := mgr.db.WithContext(c).Model(&model.Workspace{}).Count(&total).Error; err != nil {
		resputil.Error(c, err)
		return
	}
	var workspaces []model.Workspace
	if err := mgr.db.WithContext(c).
		Order("id DESC").
		Offset(q.Offset()).Limit(q.Limit).
		Find(&workspaces).Error; err != nil {
		resputil.Error(c, err)
		return
	}
	infos := make([]payload.WorkspaceInfo, 0, len(workspaces))
	for i := range workspaces {
		infos = append(infos, payload.NewWorkspaceInfo(&workspaces[i]))
	}
	resputil.Success(c, resputil.Envelope{
		"workspaces": infos,
		"pagination": payload.NewPagination(q, total),
	})
}
