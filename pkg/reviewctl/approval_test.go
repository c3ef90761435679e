package reviewctl

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redink-lab/redink/dao/model"
)

// submitArticle creates a draft by the fixture author and moves it into
// review.
func submitArticle(t *testing.T, ctrl *Controller, fx *reviewFixture, title string) *model.Article {
	t.Helper()
	ctx := context.Background()
	article, err := ctrl.CreateArticle(ctx, fx.author, &CreateArticleReq{Title: title, Content: "body"})
	require.NoError(t, err)
	article, err = ctrl.SubmitForReview(ctx, fx.author, article.ID)
	require.NoError(t, err)
	return article
}

func TestRecordApprovalRequiresInReview(t *testing.T) {
	ctrl, _, fx, cleanup := newTestController(t)
	defer cleanup()
	ctx := context.Background()

	draft, err := ctrl.CreateArticle(ctx, fx.author, &CreateArticleReq{Title: "draft", Content: "x"})
	require.NoError(t, err)

	_, err = ctrl.RecordApproval(ctx, fx.reviewer, draft.ID, &ApprovalReq{Status: model.ApprovalStatusApproved})
	requireStatusCode(t, err, http.StatusConflict)
}

func TestRecordApprovalValidatesStatus(t *testing.T) {
	ctrl, _, fx, cleanup := newTestController(t)
	defer cleanup()

	article := submitArticle(t, ctrl, fx, "needs verdicts")

	_, err := ctrl.RecordApproval(context.Background(), fx.reviewer, article.ID,
		&ApprovalReq{Status: model.ApprovalStatusPending})
	requireStatusCode(t, err, http.StatusBadRequest)
}

func TestDuplicateApprovalIsConflict(t *testing.T) {
	ctrl, _, fx, cleanup := newTestController(t)
	defer cleanup()
	ctx := context.Background()

	article := submitArticle(t, ctrl, fx, "one verdict each")

	_, err := ctrl.RecordApproval(ctx, fx.reviewer, article.ID, &ApprovalReq{Status: model.ApprovalStatusApproved})
	require.NoError(t, err)

	_, err = ctrl.RecordApproval(ctx, fx.reviewer, article.ID, &ApprovalReq{Status: model.ApprovalStatusRejected})
	requireStatusCode(t, err, http.StatusConflict)
}

func TestSingleRejectionRejectsRegardlessOfOrder(t *testing.T) {
	ctrl, _, fx, cleanup := newTestController(t)
	defer cleanup()
	ctx := context.Background()

	// Rejection after approval.
	first := submitArticle(t, ctrl, fx, "order one")
	_, err := ctrl.RecordApproval(ctx, fx.reviewer, first.ID, &ApprovalReq{Status: model.ApprovalStatusApproved})
	require.NoError(t, err)
	_, err = ctrl.RecordApproval(ctx, fx.editor, first.ID, &ApprovalReq{Status: model.ApprovalStatusRejected})
	require.NoError(t, err)
	got, err := ctrl.GetArticle(ctx, fx.workspace.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ArticleStatusRejected, got.Status)

	// Approval after rejection ends the same way.
	second := submitArticle(t, ctrl, fx, "order two")
	_, err = ctrl.RecordApproval(ctx, fx.editor, second.ID, &ApprovalReq{Status: model.ApprovalStatusRejected})
	require.NoError(t, err)
	_, err = ctrl.RecordApproval(ctx, fx.reviewer, second.ID, &ApprovalReq{Status: model.ApprovalStatusApproved})
	require.NoError(t, err)
	got, err = ctrl.GetArticle(ctx, fx.workspace.ID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ArticleStatusRejected, got.Status)
}

func TestUnanimousApprovalApproves(t *testing.T) {
	ctrl, _, fx, cleanup := newTestController(t)
	defer cleanup()
	ctx := context.Background()

	article := submitArticle(t, ctrl, fx, "everyone agrees")

	_, err := ctrl.RecordApproval(ctx, fx.reviewer, article.ID, &ApprovalReq{Status: model.ApprovalStatusApproved})
	require.NoError(t, err)
	got, err := ctrl.GetArticle(ctx, fx.workspace.ID, article.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ArticleStatusApproved, got.Status)

	_, err = ctrl.RecordApproval(ctx, fx.owner, article.ID, &ApprovalReq{Status: model.ApprovalStatusApproved})
	require.NoError(t, err)
	got, err = ctrl.GetArticle(ctx, fx.workspace.ID, article.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ArticleStatusApproved, got.Status)
}

func TestUpdateApprovalFlipsTheArticle(t *testing.T) {
	ctrl, _, fx, cleanup := newTestController(t)
	defer cleanup()
	ctx := context.Background()

	article := submitArticle(t, ctrl, fx, "second thoughts")

	approval, err := ctrl.RecordApproval(ctx, fx.reviewer, article.ID,
		&ApprovalReq{Status: model.ApprovalStatusRejected, Feedback: "needs work"})
	require.NoError(t, err)

	got, err := ctrl.GetArticle(ctx, fx.workspace.ID, article.ID)
	require.NoError(t, err)
	require.Equal(t, model.ArticleStatusRejected, got.Status)

	// The reviewer reconsiders; recompute flips rejected to approved.
	_, err = ctrl.UpdateApproval(ctx, fx.reviewer, approval.ID,
		&ApprovalReq{Status: model.ApprovalStatusApproved, Feedback: "fixed"})
	require.NoError(t, err)

	got, err = ctrl.GetArticle(ctx, fx.workspace.ID, article.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ArticleStatusApproved, got.Status)
}

func TestUpdateApprovalPermissions(t *testing.T) {
	ctrl, _, fx, cleanup := newTestController(t)
	defer cleanup()
	ctx := context.Background()

	article := submitArticle(t, ctrl, fx, "guarded verdict")

	approval, err := ctrl.RecordApproval(ctx, fx.reviewer, article.ID,
		&ApprovalReq{Status: model.ApprovalStatusRejected})
	require.NoError(t, err)

	// A viewer may neither read-modify nor flip someone's verdict.
	_, err = ctrl.UpdateApproval(ctx, fx.viewer, approval.ID,
		&ApprovalReq{Status: model.ApprovalStatusApproved})
	requireStatusCode(t, err, http.StatusForbidden)

	// The owner may override a reviewer's verdict.
	_, err = ctrl.UpdateApproval(ctx, fx.owner, approval.ID,
		&ApprovalReq{Status: model.ApprovalStatusApproved})
	require.NoError(t, err)
}

func TestApprovalNotifiesTheAuthor(t *testing.T) {
	ctrl, gdb, fx, cleanup := newTestController(t)
	defer cleanup()
	ctx := context.Background()

	article := submitArticle(t, ctrl, fx, "tell the author")

	_, err := ctrl.RecordApproval(ctx, fx.reviewer, article.ID,
		&ApprovalReq{Status: model.ApprovalStatusApproved, Feedback: "ship it"})
	require.NoError(t, err)

	var notifications []model.Notification
	require.NoError(t, gdb.Where("type = ?", model.NotificationTypeApproval).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, fx.author.UserID, notifications[0].UserID)
	assert.Equal(t, fx.reviewer.UserID, notifications[0].ActorID)
}
