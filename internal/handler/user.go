package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"k8s.io/klog/v2"

	"github.com/redink-lab/redink/dao/model"
	"github.com/redink-lab/redink/internal/middleware"
	"github.com/redink-lab/redink/internal/payload"
	"github.com/redink-lab/redink/internal/resputil"
	"github.com/redink-lab/redink/internal/util"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewUserMgr)
}

type UserMgr struct {
	name string
	db   *gorm.DB
}

func NewUserMgr(conf *RegisterConfig) Manager {
	return &UserMgr{
		name: "users",
		db:   conf.DB,
	}
}

func (mgr *UserMgr) GetName() string { return mgr.name }

func (mgr *UserMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *UserMgr) RegisterProtected(g *gin.RouterGroup) {
	g.GET("/users/me", mgr.GetMe)
	g.PUT("/users/me", mgr.UpdateMe)
	g.PUT("/users/me/password", mgr.UpdatePassword)
}

func (mgr *UserMgr) RegisterAdmin(g *gin.RouterGroup) {
	g.GET("/users", mgr.ListUsers)
	g.PUT("/users/:userID/status", mgr.UpdateUserStatus)
	g.PUT("/users/:userID/role", middleware.AuthSuperAdmin(), mgr.UpdateUserRole)
	g.DELETE("/users/:userID", middleware.AuthSuperAdmin(), mgr.DeleteUser)
}

type (
	UpdateMeReq struct {
		Nickname *string `json:"nickname"` // 用户昵称
		Email    *string `json:"email" binding:"omitempty,email"`
		Avatar   *string `json:"avatar"`
		Bio      *string `json:"bio"`
	}

	UpdatePasswordReq struct {
		OldPassword string `json:"oldPassword" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required,min=8"`
	}

	UpdateUserStatusReq struct {
		Status model.Status `json:"status" binding:"required"` // 用户状态
	}

	UpdateUserRoleReq struct {
		Role model.Role `json:"role" binding:"required"` // 全局角色
	}
)

// GetMe godoc
// @Summary 获取当前用户信息
// @Description 返回当前登录用户的个人信息
// @Tags User
// @Produce json
// @Security Bearer
// @Success 200 {object} resputil.Envelope "用户信息"
// @Failure 401 {object} resputil.Envelope "未登录"
// @Router /v1/users/me [get]
func (mgr *UserMgr) GetMe(c *gin.Context) {
	token := util.GetToken(c)
	var user model.User
	if err := mgr.db.WithContext(c).First(&user, token.UserID).Error; err != nil {
		resputil.HTTPError(c, http.StatusUnauthorized, "User not found")
		return
	}
	resputil.Success(c, resputil.Envelope{"user": payload.NewUserInfo(&user)})
}

// UpdateMe godoc
// @Summary 更新当前用户信息
// @Description 更新昵称和扩展属性，缺省字段保持不变
// @Tags User
// @Accept json
// @Produce json
// @Security Bearer
// @Param data body UpdateMeReq true "更新字段"
// @Success 200 {object} resputil.Envelope "更新后的用户信息"
// @Failure 400 {object} resputil.Envelope "请求参数错误"
// @Router /v1/users/me [put]
func (mgr *UserMgr) UpdateMe(c *gin.Context) {
	var req UpdateMeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	token := util.GetToken(c)
	var user model.User
	if err := mgr.db.WithContext(c).First(&user, token.UserID).Error; err != nil {
		resputil.HTTPError(c, http.StatusUnauthorized, "User not found")
		return
	}

	attr := user.Attribute.Data()
	if req.Nickname != nil {
		attr.Nickname = *req.Nickname
	}
	if req.Email != nil {
		attr.Email = *req.Email
	}
	if req.Avatar != nil {
		attr.Avatar = *req.Avatar
	}
	if req.Bio != nil {
		attr.Bio = *req.Bio
	}
	user.Attribute = datatypes.NewJSONType(attr)
	if err := mgr.db.WithContext(c).Model(&user).Update("attribute", user.Attribute).Error; err != nil {
		resputil.Error(c, err)
		return
	}
	resputil.Success(c, resputil.Envelope{"user": payload.NewUserInfo(&user)})
}

// UpdatePassword godoc
// @Summary 修改密码
// @Description 校验旧密码后更新为新密码
// @Tags User
// @Accept json
// @Produce json
// @Security Bearer
// @Param data body UpdatePasswordReq true "新旧密码"
// @Success 200 {object} resputil.Envelope "修改成功"
// @Failure 400 {object} resputil.Envelope "旧密码错误"
// @Router /v1/users/me/password [put]
func (mgr *UserMgr) UpdatePassword(c *gin.Context) {
	var req UpdatePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	token := util.GetToken(c)
	var user model.User
	if err := mgr.db.WithContext(c).First(&user, token.UserID).Error; err != nil {
		resputil.HTTPError(c, http.StatusUnauthorized, "User not found")
		return
	}
	if user.Password == nil {
		resputil.BadRequestError(c, "user has no password, login is managed externally")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(req.OldPassword)) != nil {
		resputil.BadRequestError(c, "old password does not match")
		return
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		resputil.Error(c, err)
		return
	}
	if err := mgr.db.WithContext(c).Model(&user).Update("password", string(hashed)).Error; err != nil {
		resputil.Error(c, err)
		return
	}
	resputil.Message(c, "password updated")
}

// ListUsers godoc
// @Summary 列出用户信息
// @Description 管理员分页列出全部用户
// @Tags User
// @Produce json
// @Security Bearer
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} resputil.Envelope "用户列表"
// @Failure 403 {object} resputil.Envelope "权限不足"
// @Router /v1/admin/users [get]
func (mgr *UserMgr) ListUsers(c *gin.Context) {
	var q payload.ListReqQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	q.Normalize()

	var total int64
	if err := mgr.db.WithContext(c).Model(&model.User{}).Count(&total).Error; err != nil {
		resputil.Error(c, err)
		return
	}
	var users []model.User
	if err := mgr.db.WithContext(c).
		Order("id DESC").
		Offset(q.Offset()).Limit(q.Limit).
		Find(&users).Error; err != nil {
		resputil.Error(c, err)
		return
	}
	infos := make([]payload.UserInfo, 0, len(users))
	for i := range users {
		infos = append(infos, payload.NewUserInfo(&users[i]))
	}
	resputil.Success(c, resputil.Envelope{
		"users":      infos,
		"pagination": payload.NewPagination(q, total),
	})
}

// UpdateUserStatus godoc
// @Summary 更新用户状态
// @Description 管理员激活或停用用户
// @Tags User
// @Accept json
// @Produce json
// @Security Bearer
// @Param userID path int true "用户ID"
// @Param data body UpdateUserStatusReq true "目标状态"
// @Success 200 {object} resputil.Envelope "更新成功"
// @Failure 404 {object} resputil.Envelope "用户不存在"
// @Router /v1/admin/users/{userID}/status [put]
func (mgr *UserMgr) UpdateUserStatus(c *gin.Context) {
	userID, ok := mgr.pathUserID(c)
	if !ok {
		return
	}
	var req UpdateUserStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	if req.Status != model.StatusActive && req.Status != model.StatusInactive {
		resputil.BadRequestError(c, "status must be active or inactive")
		return
	}
	mgr.updateUserColumn(c, userID, "status", req.Status)
}

// UpdateUserRole godoc
// @Summary 更新用户全局角色
// @Description 超级管理员调整用户的全局角色
// @Tags User
// @Accept json
// @Produce json
// @Security Bearer
// @Param userID path int true "用户ID"
// @Param data body UpdateUserRoleReq true "目标角色"
// @Success 200 {object} resputil.Envelope "更新成功"
// @Failure 403 {object} resputil.Envelope "权限不足"
// @Router /v1/admin/users/{userID}/role [put]
func (mgr *UserMgr) UpdateUserRole(c *gin.Context) {
	userID, ok := mgr.pathUserID(c)
	if !ok {
		return
	}
	var req UpdateUserRoleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	if req.Role < model.RoleUser || req.Role > model.RoleSuperAdmin {
		resputil.BadRequestError(c, "unknown role")
		return
	}
	mgr.updateUserColumn(c, userID, "role", req.Role)
}

func (mgr *UserMgr) updateUserColumn(c *gin.Context, userID uint, column string, value any) {
	result := mgr.db.WithContext(c).Model(&model.User{}).
		Where("id = ?", userID).Update(column, value)
	if result.Error != nil {
		resputil.Error(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		resputil.HTTPError(c, http.StatusNotFound, "user not found")
		return
	}
	resputil.Message(c, "user updated")
}

// DeleteUser godoc
// @Summary 删除用户
// @Description 超级管理员删除用户，仍有文章或工作区的用户不可删除
// @Tags User
// @Produce json
// @Security Bearer
// @Param userID path int true "用户ID"
// @Success 200 {object} resputil.Envelope "删除成功"
// @Failure 409 {object} resputil.Envelope "用户名下仍有内容"
// @Router /v1/admin/users/{userID} [delete]
func (mgr *UserMgr) DeleteUser(c *gin.Context) {
	userID, ok := mgr.pathUserID(c)
	if !ok {
		return
	}
	var user model.User
	if err := mgr.db.WithContext(c).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resputil.HTTPError(c, http.StatusNotFound, "user not found")
			return
		}
		resputil.Error(c, err)
		return
	}

	// 名下仍有文章、版本或创建的工作区时禁止删除，避免作者悬空
	var articleCount int64
	if err := mgr.db.WithContext(c).Model(&model.Article{}).
		Where("author_id = ?", userID).Count(&articleCount).Error; err != nil {
		resputil.Error(c, err)
		return
	}
	var versionCount int64
	if err := mgr.db.WithContext(c).Model(&model.ArticleVersion{}).
		Where("editor_id = ?", userID).Count(&versionCount).Error; err != nil {
		resputil.Error(c, err)
		return
	}
	var workspaceCount int64
	if err := mgr.db.WithContext(c).Model(&model.Workspace{}).
		Where("creator_id = ?", userID).Count(&workspaceCount).Error; err != nil {
		resputil.Error(c, err)
		return
	}
	if articleCount > 0 || versionCount > 0 || workspaceCount > 0 {
		resputil.HTTPError(c, http.StatusConflict, "user still owns articles, versions or workspaces")
		return
	}

	err := mgr.db.WithContext(c).Transaction(func(tx *gorm.DB) error {
		// 成员行始终物理删除，保持 (workspace, user) 唯一索引只反映在册成员
		if err := tx.Where("user_id = ?", userID).Unscoped().Delete(&model.WorkspaceMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.Notification{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		resputil.Error(c, err)
		return
	}
	klog.Infof("delete user success, username: %s", user.Name)
	resputil.Message(c, "user deleted")
}

func (mgr *UserMgr) pathUserID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("userID"), 10, 32)
	if err != nil {
		resputil.BadRequestError(c, "invalid user id")
		return 0, false
	}
	return uint(id), true
}
