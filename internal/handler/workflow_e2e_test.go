package handler_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redink-lab/redink/dao/model"
)

// TestReviewWorkflowEndToEnd walks the whole editorial flow over HTTP:
// signup, workspace setup, drafting, review submission and the approval
// verdict, including the notification the author receives.
func TestReviewWorkflowEndToEnd(t *testing.T) {
	be, gdb, cleanup := newTestBackend(t)
	defer cleanup()

	ownerToken := signupAndLogin(t, be, "owner")
	signup(t, be, "editor")
	signup(t, be, "reviewer")

	wsID := createWorkspace(t, be, ownerToken, "product-blog")
	addMember(t, be, ownerToken, wsID, "editor", model.WorkspaceRoleEditor)
	addMember(t, be, ownerToken, wsID, "reviewer", model.WorkspaceRoleReviewer)

	editorToken := login(t, be, "editor")
	reviewerToken := login(t, be, "reviewer")

	articleID, slug := createArticle(t, be, editorToken, wsID, "Launch Post")
	assert.True(t, strings.HasPrefix(slug, "launch-post-"), "slug: %s", slug)

	// 草稿阶段连续编辑会产生新版本
	w := doReq(t, be, http.MethodPut,
		fmt.Sprintf("/v1/workspaces/%d/articles/%d", wsID, articleID), editorToken, gin.H{
			"content": "second draft of the launch post",
			"summary": "tightened the intro",
		})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	article := parseBody(t, w)["article"].(map[string]any)
	assert.EqualValues(t, 2, article["currentVersion"])
	assert.Equal(t, string(model.ArticleStatusDraft), article["status"])

	// 提交审核
	w = doReq(t, be, http.MethodPost,
		fmt.Sprintf("/v1/workspaces/%d/articles/%d/submit-review", wsID, articleID), editorToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	article = parseBody(t, w)["article"].(map[string]any)
	assert.Equal(t, string(model.ArticleStatusInReview), article["status"])

	// 审核中重复提交被拒绝
	w = doReq(t, be, http.MethodPost,
		fmt.Sprintf("/v1/workspaces/%d/articles/%d/submit-review", wsID, articleID), editorToken, nil)
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	// 审稿人批准
	w = doReq(t, be, http.MethodPost,
		fmt.Sprintf("/v1/workspaces/%d/articles/%d/approvals", wsID, articleID), reviewerToken, gin.H{
			"status":   model.ApprovalStatusApproved,
			"feedback": "reads well",
		})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	approval := parseBody(t, w)["approval"].(map[string]any)
	assert.Equal(t, string(model.ApprovalStatusApproved), approval["status"])

	w = doReq(t, be, http.MethodGet,
		fmt.Sprintf("/v1/workspaces/%d/articles/%d", wsID, articleID), editorToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	article = parseBody(t, w)["article"].(map[string]any)
	assert.Equal(t, string(model.ArticleStatusApproved), article["status"])

	// 作者收到审批通知
	w = doReq(t, be, http.MethodGet, "/v1/notifications?unread=true", editorToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	notifications := parseBody(t, w)["notifications"].([]any)
	require.NotEmpty(t, notifications)
	first := notifications[0].(map[string]any)
	assert.Equal(t, string(model.NotificationTypeApproval), first["type"])

	// 同一评审人重复提交被拒绝
	w = doReq(t, be, http.MethodPost,
		fmt.Sprintf("/v1/workspaces/%d/articles/%d/approvals", wsID, articleID), reviewerToken, gin.H{
			"status": model.ApprovalStatusApproved,
		})
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	// 版本历史完整保留
	w = doReq(t, be, http.MethodGet,
		fmt.Sprintf("/v1/workspaces/%d/articles/%d/versions", wsID, articleID), reviewerToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	versions := parseBody(t, w)["versions"].([]any)
	require.Len(t, versions, 2)

	var dbArticle model.Article
	require.NoError(t, gdb.First(&dbArticle, articleID).Error)
	assert.Equal(t, model.ArticleStatusApproved, dbArticle.Status)
}

func TestRejectedArticleCanBeEditedAndResubmitted(t *testing.T) {
	be, _, cleanup := newTestBackend(t)
	defer cleanup()

	ownerToken := signupAndLogin(t, be, "lead")
	signup(t, be, "writer")
	signup(t, be, "judge")

	wsID := createWorkspace(t, be, ownerToken, "handbook")
	addMember(t, be, ownerToken, wsID, "writer", model.WorkspaceRoleEditor)
	addMember(t, be, ownerToken, wsID, "judge", model.WorkspaceRoleReviewer)

	writerToken := login(t, be, "writer")
	judgeToken := login(t, be, "judge")

	articleID, _ := createArticle(t, be, writerToken, wsID, "Style Guide")
	w := doReq(t, be, http.MethodPost,
		fmt.Sprintf("/v1/workspaces/%d/articles/%d/submit-review", wsID, articleID), writerToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doReq(t, be, http.MethodPost,
		fmt.Sprintf("/v1/workspaces/%d/articles/%d/approvals", wsID, articleID), judgeToken, gin.H{
			"status":   model.ApprovalStatusRejected,
			"feedback": "missing the tone section",
		})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doReq(t, be, http.MethodGet,
		fmt.Sprintf("/v1/workspaces/%d/articles/%d", wsID, articleID), writerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	article := parseBody(t, w)["article"].(map[string]any)
	assert.Equal(t, string(model.ArticleStatusRejected), article["status"])

	// submit-review 只接受草稿
	w = doReq(t, be, http.MethodPost,
		fmt.Sprintf("/v1/workspaces/%d/articles/%d/submit-review", wsID, articleID), writerToken, nil)
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	// 被拒绝的文章修改内容并把状态拨回审核中
	w = doReq(t, be, http.MethodPut,
		fmt.Sprintf("/v1/workspaces/%d/articles/%d", wsID, articleID), writerToken, gin.H{
			"content": "now with a tone section",
			"summary": "addressed review feedback",
			"status":  model.ArticleStatusInReview,
		})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	article = parseBody(t, w)["article"].(map[string]any)
	assert.Equal(t, string(model.ArticleStatusInReview), article["status"])
	assert.EqualValues(t, 2, article["currentVersion"])
}

func TestViewerCannotWrite(t *testing.T) {
	be, _, cleanup := newTestBackend(t)
	defer cleanup()

	ownerToken := signupAndLogin(t, be, "boss")
	signup(t, be, "reader")

	wsID := createWorkspace(t, be, ownerToken, "announcements")
	addMember(t, be, ownerToken, wsID, "reader", model.WorkspaceRoleViewer)
	readerToken := login(t, be, "reader")

	w := doReq(t, be, http.MethodPost,
		fmt.Sprintf("/v1/workspaces/%d/articles", wsID), readerToken, gin.H{"title": "Not Allowed"})
	require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

	// 只读成员仍能浏览
	w = doReq(t, be, http.MethodGet, fmt.Sprintf("/v1/workspaces/%d/articles", wsID), readerToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestWorkspaceHiddenFromNonMembers(t *testing.T) {
	be, _, cleanup := newTestBackend(t)
	defer cleanup()

	ownerToken := signupAndLogin(t, be, "insider")
	outsiderToken := signupAndLogin(t, be, "outsider")

	wsID := createWorkspace(t, be, ownerToken, "secret-plans")

	// 非成员看到的是 404 而不是 403，避免泄露工作区的存在
	w := doReq(t, be, http.MethodGet, fmt.Sprintf("/v1/workspaces/%d", wsID), outsiderToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "workspace not found")
}

func TestArchivedWorkspaceRejectsMembers(t *testing.T) {
	be, _, cleanup := newTestBackend(t)
	defer cleanup()

	ownerToken := signupAndLogin(t, be, "closer")
	wsID := createWorkspace(t, be, ownerToken, "sunset-project")
	articleID, _ := createArticle(t, be, ownerToken, wsID, "Final Words")

	w := doReq(t, be, http.MethodDelete, fmt.Sprintf("/v1/workspaces/%d", wsID), ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// 归档后工作区内的请求一律拒绝，所有者也不例外
	w = doReq(t, be, http.MethodPost,
		fmt.Sprintf("/v1/workspaces/%d/articles", wsID), ownerToken, gin.H{"title": "Too Late"})
	require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "workspace is archived")

	w = doReq(t, be, http.MethodGet,
		fmt.Sprintf("/v1/workspaces/%d/articles/%d", wsID, articleID), ownerToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

	// 归档的工作区从列表里消失
	w = doReq(t, be, http.MethodGet, "/v1/workspaces", ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	workspaces := parseBody(t, w)["workspaces"].([]any)
	assert.Empty(t, workspaces)
}
