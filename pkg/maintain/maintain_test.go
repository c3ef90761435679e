package maintain

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/redink-lab/redink/dao/model"
	"github.com/redink-lab/redink/pkg/notify"
)

func setupMaintainTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	dsn := fmt.Sprintf("file:maintain-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	err = gdb.AutoMigrate(
		&model.User{}, &model.Workspace{}, &model.WorkspaceMember{},
		&model.Article{}, &model.Notification{},
		&model.CronJobConfig{}, &model.CronJobRecord{},
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

// digestRecorder captures digest calls so the mail path can be
// asserted without a real SMTP server.
type digestRecorder struct {
	mailed map[string]int64
}

func (r *digestRecorder) ApprovalAlert(context.Context, *model.Article, *model.User, model.ApprovalStatus, string) error {
	return nil
}

func (r *digestRecorder) ArticleDecidedAlert(context.Context, *model.Article, *model.User, model.ArticleStatus) error {
	return nil
}

func (r *digestRecorder) ArticleSubmittedAlert(context.Context, *model.Article, *model.User) error {
	return nil
}

func (r *digestRecorder) UnreadDigestAlert(_ context.Context, receiver *model.User, unread int64) error {
	if r.mailed == nil {
		r.mailed = map[string]int64{}
	}
	r.mailed[receiver.Name] = unread
	return nil
}

func seedMember(t *testing.T, gdb *gorm.DB, workspaceID uint, name string, role model.WorkspaceRole) model.User {
	t.Helper()
	user := model.User{Name: name, Role: model.RoleUser, Status: model.StatusActive}
	require.NoError(t, gdb.Create(&user).Error)
	require.NoError(t, gdb.Create(&model.WorkspaceMember{
		WorkspaceID: workspaceID, UserID: user.ID, Role: role,
	}).Error)
	return user
}

func backdate(t *testing.T, gdb *gorm.DB, article *model.Article, days int) {
	t.Helper()
	past := time.Now().AddDate(0, 0, -days)
	require.NoError(t, gdb.Model(article).UpdateColumn("updated_at", past).Error)
}

func TestRemindStaleReviewsNotifiesReviewersAndOwner(t *testing.T) {
	gdb, cleanup := setupMaintainTestDB(t)
	defer cleanup()
	ctx := context.Background()

	ws := model.Workspace{Name: "docs", CreatorID: 1}
	require.NoError(t, gdb.Create(&ws).Error)
	owner := seedMember(t, gdb, ws.ID, "owner", model.WorkspaceRoleOwner)
	reviewer := seedMember(t, gdb, ws.ID, "reviewer", model.WorkspaceRoleReviewer)
	viewer := seedMember(t, gdb, ws.ID, "viewer", model.WorkspaceRoleViewer)
	author := seedMember(t, gdb, ws.ID, "author", model.WorkspaceRoleEditor)

	stale := model.Article{
		WorkspaceID: ws.ID, AuthorID: author.ID,
		Title: "stuck", Slug: "stuck-1", Status: model.ArticleStatusInReview,
	}
	require.NoError(t, gdb.Create(&stale).Error)
	backdate(t, gdb, &stale, 5)

	fresh := model.Article{
		WorkspaceID: ws.ID, AuthorID: author.ID,
		Title: "fresh", Slug: "fresh-1", Status: model.ArticleStatusInReview,
	}
	require.NoError(t, gdb.Create(&fresh).Error)

	clients := &Clients{DB: gdb, Dispatcher: notify.NewDispatcher(gdb)}
	ret, err := RemindStaleReviews(ctx, clients, &RemindStaleReviewsRequest{StaleDays: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"stuck-1"}, ret["reminded"])

	var notified []uint
	require.NoError(t, gdb.Model(&model.Notification{}).
		Where("type = ?", model.NotificationTypeSystem).
		Pluck("user_id", &notified).Error)
	assert.ElementsMatch(t, []uint{owner.ID, reviewer.ID}, notified)
	assert.NotContains(t, notified, viewer.ID)
}

func TestRemindStaleReviewsSkipsArchivedWorkspace(t *testing.T) {
	gdb, cleanup := setupMaintainTestDB(t)
	defer cleanup()

	ws := model.Workspace{Name: "frozen", CreatorID: 1, Archived: true}
	require.NoError(t, gdb.Create(&ws).Error)
	author := seedMember(t, gdb, ws.ID, "author", model.WorkspaceRoleEditor)
	seedMember(t, gdb, ws.ID, "reviewer", model.WorkspaceRoleReviewer)

	article := model.Article{
		WorkspaceID: ws.ID, AuthorID: author.ID,
		Title: "old", Slug: "old-1", Status: model.ArticleStatusInReview,
	}
	require.NoError(t, gdb.Create(&article).Error)
	backdate(t, gdb, &article, 10)

	clients := &Clients{DB: gdb, Dispatcher: notify.NewDispatcher(gdb)}
	ret, err := RemindStaleReviews(context.Background(), clients, &RemindStaleReviewsRequest{StaleDays: 3})
	require.NoError(t, err)
	assert.Empty(t, ret["reminded"])
}

func TestRemindStaleDraftsNudgesAuthor(t *testing.T) {
	gdb, cleanup := setupMaintainTestDB(t)
	defer cleanup()

	ws := model.Workspace{Name: "docs", CreatorID: 1}
	require.NoError(t, gdb.Create(&ws).Error)
	author := seedMember(t, gdb, ws.ID, "author", model.WorkspaceRoleEditor)

	draft := model.Article{
		WorkspaceID: ws.ID, AuthorID: author.ID,
		Title: "forgotten", Slug: "forgotten-1", Status: model.ArticleStatusDraft,
	}
	require.NoError(t, gdb.Create(&draft).Error)
	backdate(t, gdb, &draft, 30)

	clients := &Clients{DB: gdb, Dispatcher: notify.NewDispatcher(gdb)}
	ret, err := RemindStaleDrafts(context.Background(), clients, &RemindStaleDraftsRequest{StaleDays: 14})
	require.NoError(t, err)
	assert.Equal(t, []string{"forgotten-1"}, ret["reminded"])

	var n model.Notification
	require.NoError(t, gdb.Where("user_id = ?", author.ID).First(&n).Error)
	assert.Equal(t, model.NotificationTypeSystem, n.Type)
}

func TestDigestUnreadNotifications(t *testing.T) {
	gdb, cleanup := setupMaintainTestDB(t)
	defer cleanup()

	backlogged := model.User{Name: "backlogged", Role: model.RoleUser, Status: model.StatusActive}
	require.NoError(t, gdb.Create(&backlogged).Error)
	light := model.User{Name: "light", Role: model.RoleUser, Status: model.StatusActive}
	require.NoError(t, gdb.Create(&light).Error)
	gone := model.User{Name: "gone", Role: model.RoleUser, Status: model.StatusInactive}
	require.NoError(t, gdb.Create(&gone).Error)

	seedUnread := func(userID uint, count int) {
		for i := 0; i < count; i++ {
			require.NoError(t, gdb.Create(&model.Notification{
				UserID: userID, Type: model.NotificationTypeComment, Message: "m",
			}).Error)
		}
	}
	seedUnread(backlogged.ID, 6)
	seedUnread(light.ID, 2)
	seedUnread(gone.ID, 9)

	recorder := &digestRecorder{}
	clients := &Clients{DB: gdb, Alerter: recorder}
	ret, err := DigestUnreadNotifications(context.Background(), clients, &DigestUnreadRequest{MinUnread: 5})
	require.NoError(t, err)

	assert.Equal(t, []string{"backlogged"}, ret["mailed"])
	assert.Equal(t, int64(6), recorder.mailed["backlogged"])
	assert.NotContains(t, recorder.mailed, "light")
	assert.NotContains(t, recorder.mailed, "gone")
}

func TestGetMaintainFuncRejectsBadInput(t *testing.T) {
	clients := &Clients{}

	_, err := GetMaintainFunc("no-such-job", clients, datatypes.JSON(`{}`))
	require.Error(t, err)

	_, err = GetMaintainFunc(REMIND_STALE_REVIEW_JOB, clients, datatypes.JSON(`not json`))
	require.Error(t, err)

	_, err = RemindStaleReviews(context.Background(), clients, &RemindStaleReviewsRequest{StaleDays: 0})
	require.Error(t, err)
}

func TestWrapMaintainFuncRecordsOutcome(t *testing.T) {
	gdb, cleanup := setupMaintainTestDB(t)
	defer cleanup()

	ok := WrapMaintainFunc(gdb, "job-ok", func(context.Context) (any, error) {
		return map[string][]string{"reminded": {"a", "b"}}, nil
	})
	ok()

	var rec model.CronJobRecord
	require.NoError(t, gdb.Where("name = ?", "job-ok").First(&rec).Error)
	assert.Equal(t, model.CronJobRecordStatusSuccess, rec.Status)
	assert.JSONEq(t, `{"reminded": ["a", "b"]}`, string(rec.JobData))

	bad := WrapMaintainFunc(gdb, "job-bad", func(context.Context) (any, error) {
		return nil, fmt.Errorf("boom")
	})
	bad()

	rec = model.CronJobRecord{}
	require.NoError(t, gdb.Where("name = ?", "job-bad").First(&rec).Error)
	assert.Equal(t, model.CronJobRecordStatusFailed, rec.Status)
	assert.Equal(t, "boom", rec.Message)
}
