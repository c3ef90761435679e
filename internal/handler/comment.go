package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/redink-lab/redink/dao/model"
	"github.com/redink-lab/redink/internal/middleware"
	"github.com/redink-lab/redink/internal/payload"
	"github.com/redink-lab/redink/internal/resputil"
	"github.com/redink-lab/redink/internal/util"
	"github.com/redink-lab/redink/pkg/notify"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewCommentMgr)
}

type CommentMgr struct {
	name       string
	db         *gorm.DB
	dispatcher *notify.Dispatcher
}

func NewCommentMgr(conf *RegisterConfig) Manager {
	return &CommentMgr{
		name:       "comments",
		db:         conf.DB,
		dispatcher: conf.Dispatcher,
	}
}

func (mgr *CommentMgr) GetName() string { return mgr.name }

func (mgr *CommentMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *CommentMgr) RegisterProtected(g *gin.RouterGroup) {
	ws := g.Group("/workspaces/:workspaceID", middleware.WorkspaceScope())

	ws.POST("/articles/:articleID/comments", mgr.CreateComment)
	ws.GET("/articles/:articleID/comments", mgr.ListComments)
	ws.PUT("/comments/:commentID", mgr.UpdateComment)
	ws.DELETE("/comments/:commentID", mgr.DeleteComment)
}

func (mgr *CommentMgr) RegisterAdmin(_ *gin.RouterGroup) {}

type (
	CreateCommentReq struct {
		Content  string `json:"content" binding:"required"` // 评论内容
		ParentID *uint  `json:"parentId"`                   // 楼中楼仅一层，父评论必须是顶层
	}

	UpdateCommentReq struct {
		Content string `json:"content" binding:"required"`
	}

	CommentResp struct {
		ID         uint          `json:"id"`
		ArticleID  uint          `json:"articleId"`
		AuthorID   uint          `json:"authorId"`
		AuthorName string        `json:"authorName,omitempty"`
		ParentID   *uint         `json:"parentId,omitempty"`
		Content    string        `json:"content"`
		CreatedAt  time.Time     `json:"createdAt"`
		UpdatedAt  time.Time     `json:"updatedAt"`
		Replies    []CommentResp `json:"replies,omitempty"`
	}
)

func newCommentResp(m *model.Comment) CommentResp {
	resp := CommentResp{
		ID:        m.ID,
		ArticleID: m.ArticleID,
		AuthorID:  m.AuthorID,
		ParentID:  m.ParentID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.Author.ID != 0 {
		resp.AuthorName = m.Author.Name
	}
	return resp
}

// scopedArticle loads a live article inside the scoped workspace without
// touching the view counter.
func (mgr *CommentMgr) scopedArticle(c *gin.Context, articleID uint) (*model.Article, bool) {
	workspaceID, _, _ := util.GetWorkspaceScope(c)
	var article model.Article
	err := mgr.db.WithContext(c).
		Where("workspace_id = ? AND archived = ?", workspaceID, false).
		First(&article, articleID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resputil.HTTPError(c, http.StatusNotFound, "article not found")
			return nil, false
		}
		resputil.Error(c, err)
		return nil, false
	}
	return &article, true
}

// CreateComment godoc
// @Summary 发表评论
// @Description 成员在文章下发表评论或一层回复，父评论必须是同文章的顶层评论
// @Tags Comment
// @Accept json
// @Produce json
// @Security Bearer
// @Param workspaceID path int true "工作区ID"
// @Param articleID path int true "文章ID"
// @Param data body CreateCommentReq true "评论内容"
// @Success 201 {object} resputil.Envelope "评论成功"
// @Failure 400 {object} resputil.Envelope "父评论非法"
// @Router /v1/workspaces/{workspaceID}/articles/{articleID}/comments [post]
func (mgr *CommentMgr) CreateComment(c *gin.Context) {
	articleID, ok := pathArticleID(c)
	if !ok {
		return
	}
	var req CreateCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	article, ok := mgr.scopedArticle(c, articleID)
	if !ok {
		return
	}

	if req.ParentID != nil {
		var parent model.Comment
		err := mgr.db.WithContext(c).
			Where("article_id = ? AND deleted = ?", article.ID, false).
			First(&parent, *req.ParentID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				resputil.BadRequestError(c, "parent comment not found")
				return
			}
			resputil.Error(c, err)
			return
		}
		// 只允许一层嵌套
		if parent.ParentID != nil {
			resputil.BadRequestError(c, "replies cannot be nested")
			return
		}
	}

	token := util.GetToken(c)
	comment := model.Comment{
		ArticleID: article.ID,
		AuthorID:  token.UserID,
		ParentID:  req.ParentID,
		Content:   req.Content,
	}
	if err := mgr.db.WithContext(c).Create(&comment).Error; err != nil {
		resputil.Error(c, err)
		return
	}

	// 通知尽力而为，失败只记日志
	var actor model.User
	if err := mgr.db.WithContext(c).First(&actor, token.UserID).Error; err == nil {
		mgr.dispatcher.CommentCreated(c, &comment, article, &actor)
		mgr.dispatcher.MentionsInComment(c, &comment, article, &actor)
	}

	resputil.Created(c, resputil.Envelope{"comment": newCommentResp(&comment)})
}

// ListComments godoc
// @Summary 列出文章评论
// @Description 分页返回顶层评论，附带各自未删除的一层回复；父评论被删除的回复仍会列出
// @Tags Comment
// @Produce json
// @Security Bearer
// @Param workspaceID path int true "工作区ID"
// @Param articleID path int true "文章ID"
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} resputil.Envelope "评论列表"
// @Router /v1/workspaces/{workspaceID}/articles/{articleID}/comments [get]
func (mgr *CommentMgr) ListComments(c *gin.Context) {
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
	article, ok := mgr.scopedArticle(c, articleID)
	if !ok {
		return
	}

	// 顶层条目：未删除的顶层评论，以及父评论已被删除的未删除回复。
	// 被删评论本身永不返回，但它名下的回复不能跟着消失。
	base := mgr.db.WithContext(c).Model(&model.Comment{}).
		Joins("LEFT JOIN comments AS parents ON parents.id = comments.parent_id").
		Where("comments.article_id = ? AND comments.deleted = ?", article.ID, false).
		Where("comments.parent_id IS NULL OR parents.deleted = ?", true)
	var total int64
	if err := base.Count(&total).Error; err != nil {
		resputil.Error(c, err)
		return
	}
	var topLevel []model.Comment
	err := base.Select("comments.*").Preload("Author").
		Order("comments.created_at ASC").
		Offset(q.Offset()).Limit(q.Limit).
		Find(&topLevel).Error
	if err != nil {
		resputil.Error(c, err)
		return
	}

	// 只为真正的顶层评论拉取回复，被删除的回复不影响兄弟回复
	parentIDs := make([]uint, 0, len(topLevel))
	for i := range topLevel {
		if topLevel[i].ParentID == nil {
			parentIDs = append(parentIDs, topLevel[i].ID)
		}
	}
	replies := map[uint][]CommentResp{}
	if len(parentIDs) > 0 {
		var rows []model.Comment
		err := mgr.db.WithContext(c).Preload("Author").
			Where("parent_id IN ? AND deleted = ?", parentIDs, false).
			Order("created_at ASC").
			Find(&rows).Error
		if err != nil {
			resputil.Error(c, err)
			return
		}
		for i := range rows {
			pid := *rows[i].ParentID
			replies[pid] = append(replies[pid], newCommentResp(&rows[i]))
		}
	}

	resp := make([]CommentResp, 0, len(topLevel))
	for i := range topLevel {
		item := newCommentResp(&topLevel[i])
		item.Replies = replies[topLevel[i].ID]
		resp = append(resp, item)
	}
	resputil.Success(c, resputil.Envelope{
		"comments":   resp,
		"pagination": payload.NewPagination(q, total),
	})
}

// commentForWrite loads a live comment and checks the caller may edit
// or delete it: the comment author, or an owner/editor of the workspace.
func (mgr *CommentMgr) commentForWrite(c *gin.Context) (*model.Comment, bool) {
	commentID, err := strconv.ParseUint(c.Param("commentID"), 10, 32)
	if err != nil {
		resputil.BadRequestError(c, "invalid comment id")
		return nil, false
	}
	workspaceID, role, _ := util.GetWorkspaceScope(c)

	var comment model.Comment
	dbErr := mgr.db.WithContext(c).
		Joins("JOIN articles ON articles.id = comments.article_id").
		Where("comments.id = ? AND comments.deleted = ?", uint(commentID), false).
		Where("articles.workspace_id = ? AND articles.archived = ?", workspaceID, false).
		First(&comment).Error
	if dbErr != nil {
		if errors.Is(dbErr, gorm.ErrRecordNotFound) {
			resputil.HTTPError(c, http.StatusNotFound, "comment not found")
			return nil, false
		}
		resputil.Error(c, dbErr)
		return nil, false
	}

	token := util.GetToken(c)
	isModerator := role == model.WorkspaceRoleOwner || role == model.WorkspaceRoleEditor
	if comment.AuthorID != token.UserID && !isModerator {
		resputil.HTTPError(c, http.StatusForbidden, "only the comment author or a moderator may modify it")
		return nil, false
	}
	return &comment, true
}

// UpdateComment godoc
// @Summary 编辑评论
// @Description 评论作者或 owner/editor 修改评论内容
// @Tags Comment
// @Accept json
// @Produce json
// @Security Bearer
// @Param workspaceID path int true "工作区ID"
// @Param commentID path int true "评论ID"
// @Param data body UpdateCommentReq true "新内容"
// @Success 200 {object} resputil.Envelope "编辑成功"
// @Failure 403 {object} resputil.Envelope "无修改权限"
// @Router /v1/workspaces/{workspaceID}/comments/{commentID} [put]
func (mgr *CommentMgr) UpdateComment(c *gin.Context) {
	var req UpdateCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	comment, ok := mgr.commentForWrite(c)
	if !ok {
		return
	}
	if err := mgr.db.WithContext(c).Model(comment).Update("content", req.Content).Error; err != nil {
		resputil.Error(c, err)
		return
	}
	resputil.Success(c, resputil.Envelope{"comment": newCommentResp(comment)})
}

// DeleteComment godoc
// @Summary 删除评论
// @Description 软删除，线程结构保留，已删除评论不再出现在列表中
// @Tags Comment
// @Produce json
// @Security Bearer
// @Param workspaceID path int true "工作区ID"
// @Param commentID path int true "评论ID"
// @Success 200 {object} resputil.Envelope "删除成功"
// @Failure 403 {object} resputil.Envelope "无删除权限"
// @Router /v1/workspaces/{workspaceID}/comments/{commentID} [delete]
func (mgr *CommentMgr) DeleteComment(c *gin.Context) {
	comment, ok := mgr.commentForWrite(c)
	if !ok {
		return
	}
	if err := mgr.db.WithContext(c).Model(comment).Update("deleted", true).Error; err != nil {
		resputil.Error(c, err)
		return
	}
	resputil.Message(c, "comment deleted")
}
