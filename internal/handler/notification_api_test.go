package handler_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redink-lab/redink/dao/model"
	"github.com/redink-lab/redink/internal/handler"
)

func TestMarkReadIsAllOrNothing(t *testing.T) {
	be, gdb, cleanup := newTestBackend(t)
	defer cleanup()

	aliceToken := signupAndLogin(t, be, "alice")
	signupAndLogin(t, be, "bella")
	aliceID := userID(t, gdb, "alice")
	bellaID := userID(t, gdb, "bella")

	mine := make([]uint, 0, 2)
	for i := 0; i < 2; i++ {
		n := model.Notification{
			UserID:  aliceID,
			Type:    model.NotificationTypeComment,
			Message: fmt.Sprintf("ping %d", i),
			ActorID: bellaID,
		}
		require.NoError(t, gdb.Create(&n).Error)
		mine = append(mine, n.ID)
	}
	theirs := model.Notification{
		UserID:  bellaID,
		Type:    model.NotificationTypeComment,
		Message: "for bella only",
		ActorID: aliceID,
	}
	require.NoError(t, gdb.Create(&theirs).Error)

	// 混入他人的通知ID，整体失败，自己的通知仍是未读
	w := doReq(t, be, http.MethodPut, "/v1/notifications/read", aliceToken, gin.H{
		"ids": []uint{mine[0], theirs.ID},
	})
	require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())

	w = doReq(t, be, http.MethodGet, "/v1/notifications/unread-count", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := parseBody(t, w)
	assert.EqualValues(t, 2, body["count"])
	// message 键永远在场，没有话说时为空串
	msg, present := body["message"]
	assert.True(t, present)
	assert.Equal(t, "", msg)

	// 只标记自己的
	w = doReq(t, be, http.MethodPut, "/v1/notifications/read", aliceToken, gin.H{
		"ids": []uint{mine[0]},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doReq(t, be, http.MethodGet, "/v1/notifications/unread-count", aliceToken, nil)
	assert.EqualValues(t, 1, parseBody(t, w)["count"])

	// 未读过滤只剩一条
	w = doReq(t, be, http.MethodGet, "/v1/notifications?unread=true", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	unread := parseBody(t, w)["notifications"].([]any)
	require.Len(t, unread, 1)
	assert.EqualValues(t, mine[1], unread[0].(map[string]any)["id"])

	// 全部已读
	w = doReq(t, be, http.MethodPut, "/v1/notifications/read-all", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = doReq(t, be, http.MethodGet, "/v1/notifications/unread-count", aliceToken, nil)
	assert.EqualValues(t, 0, parseBody(t, w)["count"])

	// 别人的未读不受影响
	bellaToken := login(t, be, "bella")
	w = doReq(t, be, http.MethodGet, "/v1/notifications/unread-count", bellaToken, nil)
	assert.EqualValues(t, 1, parseBody(t, w)["count"])
}

func TestMarkReadValidation(t *testing.T) {
	be, _, cleanup := newTestBackend(t)
	defer cleanup()

	token := signupAndLogin(t, be, "nina")

	// 空ID列表
	w := doReq(t, be, http.MethodPut, "/v1/notifications/read", token, gin.H{"ids": []uint{}})
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	// 不存在的ID
	w = doReq(t, be, http.MethodPut, "/v1/notifications/read", token, gin.H{"ids": []uint{424242}})
	require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
}

// TestNotificationStream drives the websocket endpoint end to end: it
// rides the real poll tick, so it takes a few seconds.
func TestNotificationStream(t *testing.T) {
	if testing.Short() {
		t.Skip("stream test waits for the poll interval")
	}
	be, gdb, cleanup := newTestBackend(t)
	defer cleanup()

	token := signupAndLogin(t, be, "watcher")
	watcherID := userID(t, gdb, "watcher")

	srv := httptest.NewServer(be)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/notifications/stream"
	header := http.Header{"Authorization": {"Bearer " + token}}
	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err, "dial failed")
	if resp != nil {
		defer resp.Body.Close()
	}
	defer conn.Close()

	// 等服务端记下连接时点，再产生新通知
	time.Sleep(500 * time.Millisecond)
	n := model.Notification{
		UserID:  watcherID,
		Type:    model.NotificationTypeSystem,
		Message: "fresh off the press",
	}
	require.NoError(t, gdb.Create(&n).Error)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(handler.StreamPollInterval+10*time.Second)))
	var pushed handler.NotificationResp
	require.NoError(t, conn.ReadJSON(&pushed))
	assert.Equal(t, n.ID, pushed.ID)
	assert.Equal(t, model.NotificationTypeSystem, pushed.Type)
	assert.Equal(t, "fresh off the press", pushed.Message)
}

func TestMetricsEndpoint(t *testing.T) {
	be, _, cleanup := newTestBackend(t)
	defer cleanup()

	token := signupAndLogin(t, be, "statistician")
	wsID := createWorkspace(t, be, token, "dashboard")
	createArticle(t, be, token, wsID, "Metric One")
	createArticle(t, be, token, wsID, "Metric Two")

	// 指标端点无需认证
	w := doReq(t, be, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `articles_by_status{status="draft"} 2`)
	assert.Contains(t, body, `articles_by_status{status="in_review"} 0`)
	assert.Contains(t, body, "unread_notifications_total 0")
}

func TestHealthEndpoint(t *testing.T) {
	be, _, cleanup := newTestBackend(t)
	defer cleanup()

	w := doReq(t, be, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := parseBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "ok", body["message"])

	// 未匹配的路径返回统一的 404 包络
	w = doReq(t, be, http.MethodGet, "/no/such/route", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	body = parseBody(t, w)
	assert.Equal(t, false, body["success"])
}
