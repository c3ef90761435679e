package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/redink-lab/redink/dao/model"
	"github.com/redink-lab/redink/internal/middleware"
	"github.com/redink-lab/redink/internal/payload"
	"github.com/redink-lab/redink/internal/resputil"
	"github.com/redink-lab/redink/internal/util"
	"github.com/redink-lab/redink/pkg/reviewctl"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewArticleMgr)
}

type ArticleMgr struct {
	name       string
	controller *reviewctl.Controller
}

func NewArticleMgr(conf *RegisterConfig) Manager {
	return &ArticleMgr{
		name:       "articles",
		controller: conf.Controller,
	}
}

func (mgr *ArticleMgr) GetName() string { return mgr.name }

func (mgr *ArticleMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *ArticleMgr) RegisterProtected(g *gin.RouterGroup) {
	ws := g.Group("/workspaces/:workspaceID", middleware.WorkspaceScope())

	canWrite := middleware.RequireWorkspaceRoles(model.WorkspaceRoleOwner, model.WorkspaceRoleEditor)
	canEdit := middleware.RequireWorkspaceRoles(
		model.WorkspaceRoleOwner, model.WorkspaceRoleEditor, model.WorkspaceRoleReviewer)

	ws.POST("/articles", canWrite, mgr.CreateArticle)
	ws.GET("/articles", mgr.ListArticles)
	ws.GET("/articles/:articleID", mgr.GetArticle)
	ws.PUT("/articles/:articleID", canEdit, mgr.UpdateArticle)
	ws.DELETE("/articles/:articleID", canWrite, mgr.ArchiveArticle)
	ws.POST("/articles/:articleID/submit-review", canWrite, mgr.SubmitForReview)

	ws.GET("/articles/:articleID/versions", mgr.ListVersions)
	ws.POST("/articles/:articleID/versions", canWrite, mgr.CreateVersion)
	ws.GET("/articles/:articleID/versions/:versionNumber", mgr.GetVersion)
}

func (mgr *ArticleMgr) RegisterAdmin(_ *gin.RouterGroup) {}

type (
	CreateArticleReq struct {
		Title   string `json:"title" binding:"required,max=256"` // 文章标题
		Content string `json:"content"`                          // 初始内容
	}

	UpdateArticleReq struct {
		Title   *string              `json:"title" binding:"omitempty,max=256"`
		Content *string              `json:"content"`
		Summary string               `json:"summary" binding:"max=512"` // 版本摘要
		Status  *model.ArticleStatus `json:"status"`                    // 仅允许回到 in_review
	}

	CreateVersionReq struct {
		Title   *string `json:"title" binding:"omitempty,max=256"`
		Content *string `json:"content"`
		Summary string  `json:"summary" binding:"max=512"`
	}

	ArticleListQuery struct {
		payload.ListReqQuery
		Status   model.ArticleStatus `form:"status"`
		AuthorID uint                `form:"author"`
		TagID    uint                `form:"tag"`
	}

	TagResp struct {
		ID    uint   `json:"id"`    // 标签ID
		Name  string `json:"name"`  // 标签名
		Color string `json:"color"` // 展示颜色
	}

	ArticleBrief struct {
		ID             uint                `json:"id"`
		Slug           string              `json:"slug"`
		Title          string              `json:"title"`
		Status         model.ArticleStatus `json:"status"`
		AuthorID       uint                `json:"authorId"`
		CurrentVersion uint                `json:"currentVersion"`
		ViewCount      uint                `json:"viewCount"`
		CreatedAt      time.Time           `json:"createdAt"`
		UpdatedAt      time.Time           `json:"updatedAt"`
		Tags           []TagResp           `json:"tags"`
	}

	ArticleResp struct {
		ArticleBrief
		Content        string     `json:"content"`
		LastEditedAt   *time.Time `json:"lastEditedAt,omitempty"`
		LastEditedByID *uint      `json:"lastEditedById,omitempty"`
	}

	VersionBrief struct {
		Number    uint      `json:"number"`
		Title     string    `json:"title"`
		Summary   string    `json:"summary"`
		EditorID  uint      `json:"editorId"`
		CreatedAt time.Time `json:"createdAt"`
	}

	VersionResp struct {
		VersionBrief
		Content string `json:"content"`
	}
)

func newTagResps(tags []model.Tag) []TagResp {
	resp := make([]TagResp, 0, len(tags))
	for i := range tags {
		resp = append(resp, TagResp{ID: tags[i].ID, Name: tags[i].Name, Color: tags[i].Color})
	}
	return resp
}

func newArticleBrief(a *model.Article) ArticleBrief {
	return ArticleBrief{
		ID:             a.ID,
		Slug:           a.Slug,
		Title:          a.Title,
		Status:         a.Status,
		AuthorID:       a.AuthorID,
		CurrentVersion: a.CurrentVersion,
		ViewCount:      a.ViewCount,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
		Tags:           newTagResps(a.Tags),
	}
}

func newArticleResp(a *model.Article) ArticleResp {
	return ArticleResp{
		ArticleBrief:   newArticleBrief(a),
		Content:        a.Content,
		LastEditedAt:   a.LastEditedAt,
		LastEditedByID: a.LastEditedByID,
	}
}

func newVersionBrief(v *model.ArticleVersion) VersionBrief {
	return VersionBrief{
		Number:    v.Number,
		Title:     v.Title,
		Summary:   v.Summary,
		EditorID:  v.EditorID,
		CreatedAt: v.CreatedAt,
	}
}

// pathArticleID parses the :articleID segment, replying 400 on garbage.
func pathArticleID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("articleID"), 10, 32)
	if err != nil {
		resputil.BadRequestError(c, "invalid article id")
		return 0, false
	}
	return uint(id), true
}

// CreateArticle godoc
// @Summary 创建文章
// @Description owner 或 editor 创建草稿，slug 由标题生成，首个版本号为 1
// @Tags Article
// @Accept json
// @Produce json
// @Security Bearer
// @Param workspaceID path int true "工作区ID"
// @Param data body CreateArticleReq true "文章内容"
// @Success 201 {object} resputil.Envelope "创建成功"
// @Failure 403 {object} resputil.Envelope "角色不足"
// @Router /v1/workspaces/{workspaceID}/articles [post]
func (mgr *ArticleMgr) CreateArticle(c *gin.Context) {
	var req CreateArticleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	article, err := mgr.controller.CreateArticle(c, util.GetMember(c), &reviewctl.CreateArticleReq{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		resputil.Error(c, err)
		return
	}
	resputil.Created(c, resputil.Envelope{"article": newArticleResp(article)})
}

// ListArticles godoc
// @Summary 列出文章
// @Description 分页列出未归档文章，可按状态、作者、标签过滤
// @Tags Article
// @Produce json
// @Security Bearer
// @Param workspaceID path int true "工作区ID"
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Param status query string false "文章状态过滤"
// @Param author query int false "作者ID过滤"
// @Param tag query int false "标签ID过滤"
// @Success 200 {object} resputil.Envelope "文章列表"
// @Router /v1/workspaces/{workspaceID}/articles [get]
func (mgr *ArticleMgr) ListArticles(c *gin.Context) {
	var q ArticleListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	q.Normalize()
	workspaceID, _, _ := util.GetWorkspaceScope(c)

	articles, total, err := mgr.controller.ListArticles(c, workspaceID, &reviewctl.ArticleListQuery{
		Page:     q.Page,
		Limit:    q.Limit,
		Status:   q.Status,
		AuthorID: q.AuthorID,
		TagID:    q.TagID,
	})
	if err != nil {
		resputil.Error(c, err)
		return
	}
	briefs := make([]ArticleBrief, 0, len(articles))
	for i := range articles {
		briefs = append(briefs, newArticleBrief(&articles[i]))
	}
	resputil.Success(c, resputil.Envelope{
		"articles":   briefs,
		"pagination": payload.NewPagination(q.ListReqQuery, total),
	})
}

// GetArticle godoc
// @Summary 获取文章详情
// @Description 成员查看文章并累加浏览计数
// @Tags Article
// @Produce json
// @Security Bearer
// @Param workspaceID path int true "工作区ID"
// @Param articleID path int true "文章ID"
// @Success 200 {object} resputil.Envelope "文章详情"
// @Failure 404 {object} resputil.Envelope "文章不存在"
// @Router /v1/workspaces/{workspaceID}/articles/{articleID} [get]
func (mgr *ArticleMgr) GetArticle(c *gin.Context) {
	articleID, ok := pathArticleID(c)
	if !ok {
		return
	}
	workspaceID, _, _ := util.GetWorkspaceScope(c)
	article, err := mgr.controller.GetArticle(c, workspaceID, articleID)
	if err != nil {
		resputil.Error(c, err)
		return
	}
	resputil.Success(c, resputil.Envelope{"article": newArticleResp(article)})
}

// UpdateArticle godoc
// @Summary 更新文章
// @Description 正文修改需作者或 owner/editor，并追加不可变版本；reviewer 仅可将状态改回 in_review
// @Tags Article
// @Accept json
// @Produce json
// @Security Bearer
// @Param workspaceID path int true "工作区ID"
// @Param articleID path int true "文章ID"
// @Param data body UpdateArticleReq true "更新字段"
// @Success 200 {object} resputil.Envelope "更新成功"
// @Failure 403 {object} resputil.Envelope "无修改权限"
// @Failure 409 {object} resputil.Envelope "非法状态迁移"
// @Router /v1/workspaces/{workspaceID}/articles/{articleID} [put]
func (mgr *ArticleMgr) UpdateArticle(c *gin.Context) {
	articleID, ok := pathArticleID(c)
	if !ok {
		return
	}
	var req UpdateArticleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	article, err := mgr.controller.UpdateArticle(c, util.GetMember(c), articleID, &reviewctl.UpdateArticleReq{
		Title:   req.Title,
		Content: req.Content,
		Summary: req.Summary,
		Status:  req.Status,
	})
	if err != nil {
		resputil.Error(c, err)
		return
	}
	resputil.Success(c, resputil.Envelope{"article": newArticleResp(article)})
}

// ArchiveArticle godoc
// @Summary 归档文章
// @Description owner 或 editor 归档文章，归档后从所有列表消失
// @Tags Article
// @Produce json
// @Security Bearer
// @Param workspaceID path int true "工作区ID"
// @Param articleID path int true "文章ID"
// @Success 200 {object} resputil.Envelope "归档成功"
// @Router /v1/workspaces/{workspaceID}/articles/{articleID} [delete]
func (mgr *ArticleMgr) ArchiveArticle(c *gin.Context) {
	articleID, ok := pathArticleID(c)
	if !ok {
		return
	}
	if err := mgr.controller.ArchiveArticle(c, util.GetMember(c), articleID); err != nil {
		resputil.Error(c, err)
		return
	}
	resputil.Message(c, "article archived")
}

// SubmitForReview godoc
// @Summary 提交审核
// @Description 作者将草稿提交审核，draft 之外的状态返回 409
// @Tags Article
// @Produce json
// @Security Bearer
// @Param workspaceID path int true "工作区ID"
// @Param articleID path int true "文章ID"
// @Success 200 {object} resputil.Envelope "提交成功"
// @Failure 403 {object} resputil.Envelope "仅作者可提交"
// @Failure 409 {object} resputil.Envelope "非法状态迁移"
// @Router /v1/workspaces/{workspaceID}/articles/{articleID}/submit-review [post]
func (mgr *ArticleMgr) SubmitForReview(c *gin.Context) {
	articleID, ok := pathArticleID(c)
	if !ok {
		return
	}
	article, err := mgr.controller.SubmitForReview(c, util.GetMember(c), articleID)
	if err != nil {
		resputil.Error(c, err)
		return
	}
	resputil.Success(c, resputil.Envelope{"article": newArticleResp(article)})
}

// ListVersions godoc
// @Summary 列出文章版本
// @Description 分页返回不可变版本历史，版本号倒序
// @Tags Article
// @Produce json
// @Security Bearer
// @Param workspaceID path int true "工作区ID"
// @Param articleID path int true "文章ID"
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} resputil.Envelope "版本列表"
// @Router /v1/workspaces/{workspaceID}/articles/{articleID}/versions [get]
func (mgr *ArticleMgr) ListVersions(c *gin.Context) {
	articleID, ok := pathArticleID(c)
	if !ok {
		return
	}
	var q payload.ListReqQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	q.Normalize()
	workspaceID, _, _ := util.GetWorkspaceScope(c)

	versions, total, err := mgr.controller.ListVersions(c, workspaceID, articleID, q.Page, q.Limit)
	if err != nil {
		resputil.Error(c, err)
		return
	}
	briefs := make([]VersionBrief, 0, len(versions))
	for i := range versions {
		briefs = append(briefs, newVersionBrief(&versions[i]))
	}
	resputil.Success(c, resputil.Envelope{
		"versions":   briefs,
		"pagination": payload.NewPagination(q, total),
	})
}

// CreateVersion godoc
// @Summary 追加文章版本
// @Description owner 或 editor 显式追加版本，缺省字段取自文章头部而非上一版本
// @Tags Article
// @Accept json
// @Produce json
// @Security Bearer
// @Param workspaceID path int true "工作区ID"
// @Param articleID path int true "文章ID"
// @Param data body CreateVersionReq true "版本内容"
// @Success 201 {object} resputil.Envelope "追加成功"
// @Router /v1/workspaces/{workspaceID}/articles/{articleID}/versions [post]
func (mgr *ArticleMgr) CreateVersion(c *gin.Context) {
	articleID, ok := pathArticleID(c)
	if !ok {
		return
	}
	var req CreateVersionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	version, err := mgr.controller.CreateVersion(c, util.GetMember(c), articleID, &reviewctl.CreateVersionReq{
		Title:   req.Title,
		Content: req.Content,
		Summary: req.Summary,
	})
	if err != nil {
		resputil.Error(c, err)
		return
	}
	resputil.Created(c, resputil.Envelope{"version": VersionResp{
		VersionBrief: newVersionBrief(version),
		Content:      version.Content,
	}})
}

// GetVersion godoc
// @Summary 获取单个版本
// @Description 按版本号返回完整快照
// @Tags Article
// @Produce json
// @Security Bearer
// @Param workspaceID path int true "工作区ID"
// @Param articleID path int true "文章ID"
// @Param versionNumber path int true "版本号"
// @Success 200 {object} resputil.Envelope "版本快照"
// @Failure 404 {object} resputil.Envelope "版本不存在"
// @Router /v1/workspaces/{workspaceID}/articles/{articleID}/versions/{versionNumber} [get]
func (mgr *ArticleMgr) GetVersion(c *gin.Context) {
	articleID, ok := pathArticleID(c)
	if !ok {
		return
	}
	number, err := strconv.ParseUint(c.Param("versionNumber"), 10, 32)
	if err != nil {
		resputil.BadRequestError(c, "invalid version number")
		return
	}
	workspaceID, _, _ := util.GetWorkspaceScope(c)
	version, getErr := mgr.controller.GetVersion(c, workspaceID, articleID, uint(number))
	if getErr != nil {
		resputil.Error(c, getErr)
		return
	}
	resputil.Success(c, resputil.Envelope{"version": VersionResp{
		VersionBrief: newVersionBrief(version),
		Content:      version.Content,
	}})
}
