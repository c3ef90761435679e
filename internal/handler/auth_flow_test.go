package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redink-lab/redink/dao/model"
	"github.com/redink-lab/redink/internal/handler"
	"github.com/redink-lab/redink/pkg/config"
)

func refreshCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, c := range w.Result().Cookies() {
		if c.Name == handler.RefreshCookieName {
			return c
		}
	}
	t.Fatalf("refresh cookie not set, headers: %v", w.Header())
	return nil
}

func TestSignupAndLogin(t *testing.T) {
	be, _, cleanup := newTestBackend(t)
	defer cleanup()

	w := doReq(t, be, http.MethodPost, "/v1/auth/signup", "", gin.H{
		"username": "alice",
		"nickname": "Alice L",
		"email":    "alice@example.com",
		"password": "password-alice",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := parseBody(t, w)
	user := body["user"].(map[string]any)
	assert.Equal(t, "alice", user["name"])
	assert.Equal(t, "Alice L", user["nickname"])
	assert.EqualValues(t, model.RoleUser, user["role"])

	w = doReq(t, be, http.MethodPost, "/v1/auth/login", "", gin.H{
		"username": "alice",
		"password": "password-alice",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body = parseBody(t, w)
	assert.NotEmpty(t, body["accessToken"])

	cookie := refreshCookie(t, w)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/v1/auth", cookie.Path)
	assert.NotEmpty(t, cookie.Value)

	// 访问令牌生效
	token := body["accessToken"].(string)
	w = doReq(t, be, http.MethodGet, "/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	me := parseBody(t, w)["user"].(map[string]any)
	assert.Equal(t, "alice", me["name"])
}

func TestSignupDuplicateUsername(t *testing.T) {
	be, _, cleanup := newTestBackend(t)
	defer cleanup()

	signup(t, be, "bob")
	w := doReq(t, be, http.MethodPost, "/v1/auth/signup", "", gin.H{
		"username": "bob",
		"password": "password-other",
	})
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "username already taken")
}

func TestSignupClosed(t *testing.T) {
	be, _, cleanup := newTestBackend(t)
	defer cleanup()

	conf := config.GetConfig()
	conf.Signup.Open = false
	defer func() { conf.Signup.Open = true }()

	w := doReq(t, be, http.MethodPost, "/v1/auth/signup", "", gin.H{
		"username": "carol",
		"password": "password-carol",
	})
	require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "signup is closed")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	be, gdb, cleanup := newTestBackend(t)
	defer cleanup()

	signup(t, be, "dave")

	w := doReq(t, be, http.MethodPost, "/v1/auth/login", "", gin.H{
		"username": "dave",
		"password": "not-the-password",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())

	w = doReq(t, be, http.MethodPost, "/v1/auth/login", "", gin.H{
		"username": "nobody",
		"password": "password-nobody",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())

	// 停用的账号不能登录
	res := gdb.Model(&model.User{}).Where("name = ?", "dave").Update("status", model.StatusInactive)
	require.NoError(t, res.Error)
	w = doReq(t, be, http.MethodPost, "/v1/auth/login", "", gin.H{
		"username": "dave",
		"password": "password-dave",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "not active")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	be, _, cleanup := newTestBackend(t)
	defer cleanup()

	w := doReq(t, be, http.MethodGet, "/v1/users/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doReq(t, be, http.MethodGet, "/v1/workspaces", "garbage-token", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshRotatesTokens(t *testing.T) {
	be, _, cleanup := newTestBackend(t)
	defer cleanup()

	signup(t, be, "erin")
	w := doReq(t, be, http.MethodPost, "/v1/auth/login", "", gin.H{
		"username": "erin",
		"password": "password-erin",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	cookie := refreshCookie(t, w)

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	rec := httptest.NewRecorder()
	be.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := parseBody(t, rec)
	assert.NotEmpty(t, body["accessToken"])
	rotated := refreshCookie(t, rec)
	assert.NotEmpty(t, rotated.Value)

	// 新的访问令牌可用
	token := body["accessToken"].(string)
	w = doReq(t, be, http.MethodGet, "/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestRefreshWithoutCookie(t *testing.T) {
	be, _, cleanup := newTestBackend(t)
	defer cleanup()

	w := doReq(t, be, http.MethodPost, "/v1/auth/refresh", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing refresh token")
}

func TestLogoutClearsRefreshCookie(t *testing.T) {
	be, _, cleanup := newTestBackend(t)
	defer cleanup()

	signupAndLogin(t, be, "frank")
	w := doReq(t, be, http.MethodPost, "/v1/auth/logout", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	cookie := refreshCookie(t, w)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestUpdatePassword(t *testing.T) {
	be, _, cleanup := newTestBackend(t)
	defer cleanup()

	token := signupAndLogin(t, be, "grace")

	w := doReq(t, be, http.MethodPut, "/v1/users/me/password", token, gin.H{
		"oldPassword": "wrong-password",
		"newPassword": "next-password",
	})
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "old password does not match")

	w = doReq(t, be, http.MethodPut, "/v1/users/me/password", token, gin.H{
		"oldPassword": "password-grace",
		"newPassword": "next-password",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// 旧密码失效，新密码生效
	w = doReq(t, be, http.MethodPost, "/v1/auth/login", "", gin.H{
		"username": "grace",
		"password": "password-grace",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	w = doReq(t, be, http.MethodPost, "/v1/auth/login", "", gin.H{
		"username": "grace",
		"password": "next-password",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}
