package notify

import (
	"context"
	"fmt"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/redink-lab/redink/dao/model"
)

func TestParseMentions(t *testing.T) {
	Convey("ParseMentions", t, func() {
		Convey("finds plain mentions", func() {
			So(ParseMentions("ping @alice and @bob_2"), ShouldResemble, []string{"alice", "bob_2"})
		})
		Convey("deduplicates repeated names", func() {
			So(ParseMentions("@alice @alice @alice"), ShouldResemble, []string{"alice"})
		})
		Convey("handles dots and dashes", func() {
			So(ParseMentions("cc @j.doe-jr please"), ShouldResemble, []string{"j.doe-jr"})
		})
		Convey("returns nothing without mentions", func() {
			So(ParseMentions("no one here"), ShouldBeEmpty)
		})
		Convey("ignores a bare at sign", func() {
			So(ParseMentions("meet @ noon"), ShouldBeEmpty)
		})
	})
}

func setupNotifyTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	dsn := fmt.Sprintf("file:notify-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	err = gdb.AutoMigrate(
		&model.User{}, &model.Workspace{}, &model.WorkspaceMember{},
		&model.Article{}, &model.Comment{}, &model.Approval{}, &model.Notification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	return gdb, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	}
}

type notifyFixture struct {
	author    model.User
	commenter model.User
	workspace model.Workspace
	article   model.Article
}

func seedNotifyFixture(t *testing.T, gdb *gorm.DB) notifyFixture {
	t.Helper()

	author := model.User{Name: "author", Role: model.RoleUser, Status: model.StatusActive}
	commenter := model.User{Name: "commenter", Role: model.RoleUser, Status: model.StatusActive}
	require.NoError(t, gdb.Create(&author).Error)
	require.NoError(t, gdb.Create(&commenter).Error)

	workspace := model.Workspace{Name: "docs", CreatorID: author.ID}
	require.NoError(t, gdb.Create(&workspace).Error)
	for _, m := range []model.WorkspaceMember{
		{WorkspaceID: workspace.ID, UserID: author.ID, Role: model.WorkspaceRoleOwner},
		{WorkspaceID: workspace.ID, UserID: commenter.ID, Role: model.WorkspaceRoleEditor},
	} {
		require.NoError(t, gdb.Create(&m).Error)
	}

	article := model.Article{
		WorkspaceID: workspace.ID,
		AuthorID:    author.ID,
		Title:       "Release notes",
		Slug:        "release-notes-1",
		Status:      model.ArticleStatusDraft,
	}
	require.NoError(t, gdb.Create(&article).Error)

	return notifyFixture{author: author, commenter: commenter, workspace: workspace, article: article}
}

func TestCommentCreatedNotifiesAuthorNotActor(t *testing.T) {
	gdb, cleanup := setupNotifyTestDB(t)
	defer cleanup()
	fx := seedNotifyFixture(t, gdb)

	comment := model.Comment{ArticleID: fx.article.ID, AuthorID: fx.commenter.ID, Content: "nice"}
	require.NoError(t, gdb.Create(&comment).Error)

	d := NewDispatcher(gdb)
	d.CommentCreated(context.Background(), &comment, &fx.article, &fx.commenter)

	var notifications []model.Notification
	require.NoError(t, gdb.Find(&notifications).Error)
	require.Len(t, notifications, 1)
	require.Equal(t, fx.author.ID, notifications[0].UserID)
	require.Equal(t, model.NotificationTypeComment, notifications[0].Type)
	require.Equal(t, comment.ID, notifications[0].EntityID)
}

func TestCommentCreatedSkipsSelfNotification(t *testing.T) {
	gdb, cleanup := setupNotifyTestDB(t)
	defer cleanup()
	fx := seedNotifyFixture(t, gdb)

	// The author comments on their own article.
	comment := model.Comment{ArticleID: fx.article.ID, AuthorID: fx.author.ID, Content: "self note"}
	require.NoError(t, gdb.Create(&comment).Error)

	d := NewDispatcher(gdb)
	d.CommentCreated(context.Background(), &comment, &fx.article, &fx.author)

	var count int64
	require.NoError(t, gdb.Model(&model.Notification{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestReplyNotifiesParentAuthor(t *testing.T) {
	gdb, cleanup := setupNotifyTestDB(t)
	defer cleanup()
	fx := seedNotifyFixture(t, gdb)

	parent := model.Comment{ArticleID: fx.article.ID, AuthorID: fx.commenter.ID, Content: "top"}
	require.NoError(t, gdb.Create(&parent).Error)
	reply := model.Comment{ArticleID: fx.article.ID, AuthorID: fx.author.ID, ParentID: &parent.ID, Content: "thanks"}
	require.NoError(t, gdb.Create(&reply).Error)

	d := NewDispatcher(gdb)
	d.CommentCreated(context.Background(), &reply, &fx.article, &fx.author)

	// Author replied themselves, so only the parent author is notified.
	var notifications []model.Notification
	require.NoError(t, gdb.Find(&notifications).Error)
	require.Len(t, notifications, 1)
	require.Equal(t, fx.commenter.ID, notifications[0].UserID)
}

func TestMentionsOnlyReachWorkspaceMembers(t *testing.T) {
	gdb, cleanup := setupNotifyTestDB(t)
	defer cleanup()
	fx := seedNotifyFixture(t, gdb)

	outsider := model.User{Name: "outsider", Role: model.RoleUser, Status: model.StatusActive}
	require.NoError(t, gdb.Create(&outsider).Error)

	comment := model.Comment{
		ArticleID: fx.article.ID,
		AuthorID:  fx.commenter.ID,
		Content:   "ping @author and @outsider and @ghost",
	}
	require.NoError(t, gdb.Create(&comment).Error)

	d := NewDispatcher(gdb)
	d.MentionsInComment(context.Background(), &comment, &fx.article, &fx.commenter)

	var notifications []model.Notification
	require.NoError(t, gdb.Where("type = ?", model.NotificationTypeMention).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	require.Equal(t, fx.author.ID, notifications[0].UserID)
}

func TestApprovalRecordedSkipsSelfReview(t *testing.T) {
	gdb, cleanup := setupNotifyTestDB(t)
	defer cleanup()
	fx := seedNotifyFixture(t, gdb)

	approval := model.Approval{ArticleID: fx.article.ID, ReviewerID: fx.author.ID, Status: model.ApprovalStatusApproved}
	require.NoError(t, gdb.Create(&approval).Error)

	d := NewDispatcher(gdb)
	d.ApprovalRecorded(context.Background(), &approval, &fx.article, &fx.author)

	var count int64
	require.NoError(t, gdb.Model(&model.Notification{}).Count(&count).Error)
	require.Zero(t, count)
}
