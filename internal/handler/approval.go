package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/redink-lab/redink/dao/model"
	"github.com/redink-lab/redink/internal/middleware"
	"github.com/redink-lab/redink/internal/resputil"
	"github.com/redink-lab/redink/internal/util"
	"github.com/redink-lab/redink/pkg/reviewctl"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewApprovalMgr)
}

type ApprovalMgr struct {
	name       string
	controller *reviewctl.Controller
}

func NewApprovalMgr(conf *RegisterConfig) Manager {
	return &ApprovalMgr{
		name:       "approvals",
		controller: conf.Controller,
	}
}

func (mgr *ApprovalMgr) GetName() string { return mgr.name }

func (mgr *ApprovalMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *ApprovalMgr) RegisterProtected(g *gin.RouterGroup) {
	ws := g.Group("/workspaces/:workspaceID", middleware.WorkspaceScope())

	canReview := middleware.RequireWorkspaceRoles(
		model.WorkspaceRoleReviewer, model.WorkspaceRoleEditor, model.WorkspaceRoleOwner)

	ws.POST("/articles/:articleID/approvals", canReview, mgr.RecordApproval)
	ws.GET("/articles/:articleID/approvals", mgr.ListApprovals)
	ws.PUT("/approvals/:approvalID", mgr.UpdateApproval)
}

func (mgr *ApprovalMgr) RegisterAdmin(_ *gin.RouterGroup) {}

type (
	ApprovalReq struct {
		Status   model.ApprovalStatus `json:"status" binding:"required"` // Approved 或 Rejected
		Feedback string               `json:"feedback" binding:"max=512"`
	}

	ApprovalResp struct {
		ID           uint                 `json:"id"`
		ArticleID    uint                 `json:"articleId"`
		ReviewerID   uint                 `json:"reviewerId"`
		ReviewerName string               `json:"reviewerName,omitempty"`
		Status       model.ApprovalStatus `json:"status"`
		Feedback     string               `json:"feedback"`
		ReviewedAt   *time.Time           `json:"reviewedAt,omitempty"`
		CreatedAt    time.Time            `json:"createdAt"`
	}
)

func newApprovalResp(a *model.Approval) ApprovalResp {
	resp := ApprovalResp{
		ID:         a.ID,
		ArticleID:  a.ArticleID,
		ReviewerID: a.ReviewerID,
		Status:     a.Status,
		Feedback:   a.Feedback,
		ReviewedAt: a.ReviewedAt,
		CreatedAt:  a.CreatedAt,
	}
	if a.Reviewer.ID != 0 {
		resp.ReviewerName = a.Reviewer.Name
	}
	return resp
}

// RecordApproval godoc
// @Summary 提交审批
// @Description reviewer/editor/owner 对审核中的文章给出判定，同一评审人重复提交返回 409
// @Tags Approval
// @Accept json
// @Produce json
// @Security Bearer
// @Param workspaceID path int true "工作区ID"
// @Param articleID path int true "文章ID"
// @Param data body ApprovalReq true "判定和反馈"
// @Success 201 {object} resputil.Envelope "判定已记录"
// @Failure 409 {object} resputil.Envelope "重复提交或文章不在审核中"
// @Router /v1/workspaces/{workspaceID}/articles/{articleID}/approvals [post]
func (mgr *ApprovalMgr) RecordApproval(c *gin.Context) {
	articleID, ok := pathArticleID(c)
	if !ok {
		return
	}
	var req ApprovalReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	approval, err := mgr.controller.RecordApproval(c, util.GetMember(c), articleID, &reviewctl.ApprovalReq{
		Status:   req.Status,
		Feedback: req.Feedback,
	})
	if err != nil {
		resputil.Error(c, err)
		return
	}
	resputil.Created(c, resputil.Envelope{"approval": newApprovalResp(approval)})
}

// ListApprovals godoc
// @Summary 列出文章审批
// @Description 成员查看文章的全部审批记录，按提交时间正序
// @Tags Approval
// @Produce json
// @Security Bearer
// @Param workspaceID path int true "工作区ID"
// @Param articleID path int true "文章ID"
// @Success 200 {object} resputil.Envelope "审批列表"
// @Router /v1/workspaces/{workspaceID}/articles/{articleID}/approvals [get]
func (mgr *ApprovalMgr) ListApprovals(c *gin.Context) {
	articleID, ok := pathArticleID(c)
	if !ok {
		return
	}
	workspaceID, _, _ := util.GetWorkspaceScope(c)
	approvals, err := mgr.controller.ListApprovals(c, workspaceID, articleID)
	if err != nil {
		resputil.Error(c, err)
		return
	}
	resp := make([]ApprovalResp, 0, len(approvals))
	for i := range approvals {
		resp = append(resp, newApprovalResp(&approvals[i]))
	}
	resputil.Success(c, resputil.Envelope{"approvals": resp})
}

// UpdateApproval godoc
// @Summary 修改审批判定
// @Description 原评审人或 owner/editor 翻转判定，随后重新聚合文章状态
// @Tags Approval
// @Accept json
// @Produce json
// @Security Bearer
// @Param workspaceID path int true "工作区ID"
// @Param approvalID path int true "审批ID"
// @Param data body ApprovalReq true "新判定"
// @Success 200 {object} resputil.Envelope "判定已更新"
// @Failure 403 {object} resputil.Envelope "无权修改他人判定"
// @Router /v1/workspaces/{workspaceID}/approvals/{approvalID} [put]
func (mgr *ApprovalMgr) UpdateApproval(c *gin.Context) {
	approvalID, err := strconv.ParseUint(c.Param("approvalID"), 10, 32)
	if err != nil {
		resputil.BadRequestError(c, "invalid approval id")
		return
	}
	var req ApprovalReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	approval, updateErr := mgr.controller.UpdateApproval(c, util.GetMember(c), uint(approvalID), &reviewctl.ApprovalReq{
		Status:   req.Status,
		Feedback: req.Feedback,
	})
	if updateErr != nil {
		resputil.Error(c, updateErr)
		return
	}
	resputil.Success(c, resputil.Envelope{"approval": newApprovalResp(approval)})
}
