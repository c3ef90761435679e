package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/redink-lab/redink/dao"
	"github.com/redink-lab/redink/dao/model"
	"github.com/redink-lab/redink/internal"
	"github.com/redink-lab/redink/internal/handler"
	"github.com/redink-lab/redink/pkg/cronjob"
	"github.com/redink-lab/redink/pkg/notify"
	"github.com/redink-lab/redink/pkg/reviewctl"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv("REDINK_DEBUG_CONFIG_PATH", "testdata/config.yaml")
	os.Exit(m.Run())
}

// newTestBackend wires the full HTTP stack against an in-memory database.
// The migration chain runs for real, so the seeded cron job configs are
// present too. The tests share the dao singleton, so they must not run in
// parallel.
func newTestBackend(t *testing.T) (*internal.Backend, *gorm.DB, func()) {
	t.Helper()

	dsn := fmt.Sprintf("file:handler-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, dao.InitMigration(gdb))
	dao.SetDB(gdb)

	dispatcher := notify.NewDispatcher(gdb)
	conf := &handler.RegisterConfig{
		DB:         gdb,
		Controller: reviewctl.NewController(gdb, dispatcher, nil),
		Dispatcher: dispatcher,
		Alerter:    nil,
		CronMgr:    cronjob.NewCronJobManager(gdb, dispatcher, nil),
	}
	backend := internal.Register(conf)

	return backend, gdb, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	}
}

// doReq performs one request against the backend. A non-empty token goes
// into the Authorization header, a non-nil body is sent as JSON.
func doReq(t *testing.T, be *internal.Backend, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	be.ServeHTTP(w, req)
	return w
}

// parseBody decodes the response envelope into a generic map.
func parseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "body: %s", w.Body.String())
	return body
}

func signup(t *testing.T, be *internal.Backend, username string) {
	t.Helper()

	w := doReq(t, be, http.MethodPost, "/v1/auth/signup", "", gin.H{
		"username": username,
		"password": "password-" + username,
	})
	require.Equal(t, http.StatusCreated, w.Code, "signup %s: %s", username, w.Body.String())
}

func login(t *testing.T, be *internal.Backend, username string) string {
	t.Helper()

	w := doReq(t, be, http.MethodPost, "/v1/auth/login", "", gin.H{
		"username": username,
		"password": "password-" + username,
	})
	require.Equal(t, http.StatusOK, w.Code, "login %s: %s", username, w.Body.String())

	body := parseBody(t, w)
	token, ok := body["accessToken"].(string)
	require.True(t, ok, "accessToken missing: %v", body)
	require.NotEmpty(t, token)
	return token
}

func signupAndLogin(t *testing.T, be *internal.Backend, username string) string {
	t.Helper()
	signup(t, be, username)
	return login(t, be, username)
}

// promote raises a user's platform role directly in the database. It has
// to happen before login, the token carries the role and the write path
// cross-checks it against the stored row.
func promote(t *testing.T, gdb *gorm.DB, username string, role model.Role) {
	t.Helper()

	res := gdb.Model(&model.User{}).Where("name = ?", username).Update("role", role)
	require.NoError(t, res.Error)
	require.EqualValues(t, 1, res.RowsAffected)
}

func userID(t *testing.T, gdb *gorm.DB, username string) uint {
	t.Helper()

	var user model.User
	require.NoError(t, gdb.Where("name = ?", username).First(&user).Error)
	return user.ID
}

// createWorkspace creates a workspace as the given user and returns its ID.
func createWorkspace(t *testing.T, be *internal.Backend, token, name string) uint {
	t.Helper()

	w := doReq(t, be, http.MethodPost, "/v1/workspaces", token, gin.H{"name": name})
	require.Equal(t, http.StatusCreated, w.Code, "create workspace: %s", w.Body.String())

	body := parseBody(t, w)
	ws, ok := body["workspace"].(map[string]any)
	require.True(t, ok, "workspace missing: %v", body)
	id, ok := ws["id"].(float64)
	require.True(t, ok, "workspace id missing: %v", ws)
	return uint(id)
}

// addMember invites a user into a workspace with the given role.
func addMember(t *testing.T, be *internal.Backend, token string, workspaceID uint, username string, role model.WorkspaceRole) {
	t.Helper()

	w := doReq(t, be, http.MethodPost, fmt.Sprintf("/v1/workspaces/%d/members", workspaceID), token, gin.H{
		"username": username,
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, w.Code, "add member %s: %s", username, w.Body.String())
}

// createArticle creates a draft and returns its ID and slug.
func createArticle(t *testing.T, be *internal.Backend, token string, workspaceID uint, title string) (uint, string) {
	t.Helper()

	w := doReq(t, be, http.MethodPost, fmt.Sprintf("/v1/workspaces/%d/articles", workspaceID), token, gin.H{
		"title":   title,
		"content": "first words of " + title,
	})
	require.Equal(t, http.StatusCreated, w.Code, "create article: %s", w.Body.String())

	body := parseBody(t, w)
	article, ok := body["article"].(map[string]any)
	require.True(t, ok, "article missing: %v", body)
	id, ok := article["id"].(float64)
	require.True(t, ok, "article id missing: %v", article)
	slug, _ := article["slug"].(string)
	return uint(id), slug
}
