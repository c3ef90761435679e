package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/redink-lab/redink/dao/model"
	"github.com/redink-lab/redink/internal/middleware"
	"github.com/redink-lab/redink/internal/resputil"
	"github.com/redink-lab/redink/internal/util"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewTagMgr)
}

type TagMgr struct {
	name string
	db   *gorm.DB
}

func NewTagMgr(conf *RegisterConfig) Manager {
	return &TagMgr{
		name: "tags",
		db:   conf.DB,
	}
}

func (mgr *TagMgr) GetName() string { return mgr.name }

func (mgr *TagMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *TagMgr) RegisterProtected(g *gin.RouterGroup) {
	ws := g.Group("/workspaces/:workspaceID", middleware.WorkspaceScope())

	canWrite := middleware.RequireWorkspaceRoles(model.WorkspaceRoleOwner, model.WorkspaceRoleEditor)

	ws.GET("/tags", mgr.ListTags)
	ws.POST("/tags", canWrite, mgr.CreateTag)
	ws.PUT("/tags/:tagID", canWrite, mgr.UpdateTag)
	ws.DELETE("/tags/:tagID", canWrite, mgr.DeleteTag)

	ws.POST("/articles/:articleID/tags/:tagID", canWrite, mgr.AttachTag)
	ws.DELETE("/articles/:articleID/tags/:tagID", canWrite, mgr.DetachTag)
}

func (mgr *TagMgr) RegisterAdmin(_ *gin.RouterGroup) {}

type (
	CreateTagReq struct {
		Name  string `json:"name" binding:"required,max=64"`   // 标签名，工作区内唯一
		Color string `json:"color" binding:"omitempty,max=16"` // 展示颜色
	}

	UpdateTagReq struct {
		Name  *string `json:"name" binding:"omitempty,max=64"`
		Color *string `json:"color" binding:"omitempty,max=16"`
	}
)

func pathTagID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("tagID"), 10, 32)
	if err != nil {
		resputil.BadRequestError(c, "invalid tag id")
		return 0, false
	}
	return uint(id), true
}

// scopedTag loads a tag belonging to the scoped workspace.
func (mgr *TagMgr) scopedTag(c *gin.Context, tagID uint) (*model.Tag, bool) {
	workspaceID, _, _ := util.GetWorkspaceScope(c)
	var tag model.Tag
	err := mgr.db.WithContext(c).
		Where("workspace_id = ?", workspaceID).
		First(&tag, tagID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resputil.HTTPError(c, http.StatusNotFound, "tag not found")
			return nil, false
		}
		resputil.Error(c, err)
		return nil, false
	}
	return &tag, true
}

// ListTags godoc
// @Summary 列出工作区标签
// @Description 成员查看工作区的全部标签
// @Tags Tag
// @Produce json
// @Security Bearer
// @Param workspaceID path int true "工作区ID"
// @Success 200 {object} resputil.Envelope "标签列表"
// @Router /v1/workspaces/{workspaceID}/tags [get]
func (mgr *TagMgr) ListTags(c *gin.Context) {
	workspaceID, _, _ := util.GetWorkspaceScope(c)
	var tags []model.Tag
	err := mgr.db.WithContext(c).
		Where("workspace_id = ?", workspaceID).
		Order("name ASC").
		Find(&tags).Error
	if err != nil {
		resputil.Error(c, err)
		return
	}
	resputil.Success(c, resputil.Envelope{"tags": newTagResps(tags)})
}

// CreateTag godoc
// @Summary 创建标签
// @Description owner 或 editor 创建标签，同名标签返回 409
// @Tags Tag
// @Accept json
// @Produce json
// @Security Bearer
// @Param workspaceID path int true "工作区ID"
// @Param data body CreateTagReq true "标签信息"
// @Success 201 {object} resputil.Envelope "创建成功"
// @Failure 409 {object} resputil.Envelope "标签名已存在"
// @Router /v1/workspaces/{workspaceID}/tags [post]
func (mgr *TagMgr) CreateTag(c *gin.Context) {
	var req CreateTagReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	// 唯一性按去除首尾空白后的名字判断
	name := strings.TrimSpace(req.Name)
	if name == "" {
		resputil.BadRequestError(c, "tag name must not be blank")
		return
	}
	workspaceID, _, _ := util.GetWorkspaceScope(c)

	var count int64
	if err := mgr.db.WithContext(c).Model(&model.Tag{}).
		Where("workspace_id = ? AND name = ?", workspaceID, name).
		Count(&count).Error; err != nil {
		resputil.Error(c, err)
		return
	}
	if count > 0 {
		resputil.HTTPError(c, http.StatusConflict, "tag name already exists in this workspace")
		return
	}

	tag := model.Tag{
		WorkspaceID: workspaceID,
		Name:        name,
		Color:       req.Color,
	}
	if err := mgr.db.WithContext(c).Create(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			resputil.HTTPError(c, http.StatusConflict, "tag name already exists in this workspace")
			return
		}
		resputil.Error(c, err)
		return
	}
	resputil.Created(c, resputil.Envelope{"tag": TagResp{ID: tag.ID, Name: tag.Name, Color: tag.Color}})
}

// UpdateTag godoc
// @Summary 更新标签
// @Description owner 或 editor 重命名或改色，重名返回 409
// @Tags Tag
// @Accept json
// @Produce json
// @Security Bearer
// @Param workspaceID path int true "工作区ID"
// @Param tagID path int true "标签ID"
// @Param data body UpdateTagReq true "更新字段"
// @Success 200 {object} resputil.Envelope "更新成功"
// @Failure 409 {object} resputil.Envelope "标签名已存在"
// @Router /v1/workspaces/{workspaceID}/tags/{tagID} [put]
func (mgr *TagMgr) UpdateTag(c *gin.Context) {
	var req UpdateTagReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	tagID, ok := pathTagID(c)
	if !ok {
		return
	}
	tag, ok := mgr.scopedTag(c, tagID)
	if !ok {
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			resputil.BadRequestError(c, "tag name must not be blank")
			return
		}
		updates["name"] = name
	}
	if req.Color != nil {
		updates["color"] = *req.Color
	}
	if len(updates) == 0 {
		resputil.BadRequestError(c, "nothing to update")
		return
	}
	if err := mgr.db.WithContext(c).Model(tag).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			resputil.HTTPError(c, http.StatusConflict, "tag name already exists in this workspace")
			return
		}
		resputil.Error(c, err)
		return
	}
	resputil.Success(c, resputil.Envelope{"tag": TagResp{ID: tag.ID, Name: tag.Name, Color: tag.Color}})
}

// DeleteTag godoc
// @Summary 删除标签
// @Description 仍被文章引用的标签不可删除
// @Tags Tag
// @Produce json
// @Security Bearer
// @Param workspaceID path int true "工作区ID"
// @Param tagID path int true "标签ID"
// @Success 200 {object} resputil.Envelope "删除成功"
// @Failure 409 {object} resputil.Envelope "标签仍被引用"
// @Router /v1/workspaces/{workspaceID}/tags/{tagID} [delete]
func (mgr *TagMgr) DeleteTag(c *gin.Context) {
	tagID, ok := pathTagID(c)
	if !ok {
		return
	}
	tag, ok := mgr.scopedTag(c, tagID)
	if !ok {
		return
	}

	var refs int64
	if err := mgr.db.WithContext(c).Model(&model.ArticleTag{}).
		Where("tag_id = ?", tag.ID).Count(&refs).Error; err != nil {
		resputil.Error(c, err)
		return
	}
	if refs > 0 {
		resputil.HTTPError(c, http.StatusConflict, "tag is still attached to articles")
		return
	}
	// 物理删除以释放 (workspace, name) 唯一索引占用，同名标签之后可以重建
	if err := mgr.db.WithContext(c).Unscoped().Delete(tag).Error; err != nil {
		resputil.Error(c, err)
		return
	}
	resputil.Message(c, "tag deleted")
}

// AttachTag godoc
// @Summary 给文章贴标签
// @Description 标签与文章必须同属当前工作区，重复贴返回 409
// @Tags Tag
// @Produce json
// @Security Bearer
// @Param workspaceID path int true "工作区ID"
// @Param articleID path int true "文章ID"
// @Param tagID path int true "标签ID"
// @Success 201 {object} resputil.Envelope "已贴上"
// @Failure 409 {object} resputil.Envelope "重复贴标签"
// @Router /v1/workspaces/{workspaceID}/articles/{articleID}/tags/{tagID} [post]
func (mgr *TagMgr) AttachTag(c *gin.Context) {
	article, tag, ok := mgr.articleAndTag(c)
	if !ok {
		return
	}
	link := model.ArticleTag{ArticleID: article.ID, TagID: tag.ID}
	if err := mgr.db.WithContext(c).Create(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			resputil.HTTPError(c, http.StatusConflict, "tag is already attached to the article")
			return
		}
		resputil.Error(c, err)
		return
	}
	resputil.Created(c, resputil.Envelope{"tag": TagResp{ID: tag.ID, Name: tag.Name, Color: tag.Color}})
}

// DetachTag godoc
// @Summary 取下文章标签
// @Description 移除文章与标签的关联
// @Tags Tag
// @Produce json
// @Security Bearer
// @Param workspaceID path int true "工作区ID"
// @Param articleID path int true "文章ID"
// @Param tagID path int true "标签ID"
// @Success 200 {object} resputil.Envelope "已取下"
// @Failure 404 {object} resputil.Envelope "未贴该标签"
// @Router /v1/workspaces/{workspaceID}/articles/{articleID}/tags/{tagID} [delete]
func (mgr *TagMgr) DetachTag(c *gin.Context) {
	article, tag, ok := mgr.articleAndTag(c)
	if !ok {
		return
	}
	result := mgr.db.WithContext(c).
		Where("article_id = ? AND tag_id = ?", article.ID, tag.ID).
		Delete(&model.ArticleTag{})
	if result.Error != nil {
		resputil.Error(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		resputil.HTTPError(c, http.StatusNotFound, "tag is not attached to the article")
		return
	}
	resputil.Message(c, "tag detached")
}

// articleAndTag resolves both path resources inside the scoped
// workspace, which also rules out cross-workspace attachments.
func (mgr *TagMgr) articleAndTag(c *gin.Context) (*model.Article, *model.Tag, bool) {
	articleID, ok := pathArticleID(c)
	if !ok {
		return nil, nil, false
	}
	tagID, ok := pathTagID(c)
	if !ok {
		return nil, nil, false
	}
	workspaceID, _, _ := util.GetWorkspaceScope(c)

	var article model.Article
	err := mgr.db.WithContext(c).
		Where("workspace_id = ? AND archived = ?", workspaceID, false).
		First(&article, articleID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resputil.HTTPError(c, http.StatusNotFound, "article not found")
			return nil, nil, false
		}
		resputil.Error(c, err)
		return nil, nil, false
	}
	tag, ok := mgr.scopedTag(c, tagID)
	if !ok {
		return nil, nil, false
	}
	return &article, tag, true
}
