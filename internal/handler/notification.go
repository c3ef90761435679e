package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"k8s.io/klog/v2"

	"github.com/redink-lab/redink/dao/model"
	"github.com/redink-lab/redink/internal/payload"
	"github.com/redink-lab/redink/internal/resputil"
	"github.com/redink-lab/redink/internal/util"
	"github.com/redink-lab/redink/pkg/config"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewNotificationMgr)
}

const (
	// StreamPollInterval is how often the stream endpoint looks for
	// notifications newer than the last one pushed.
	StreamPollInterval = 3 * time.Second
	// StreamWriteTimeout specifies the maximum duration for completing
	// a websocket write.
	StreamWriteTimeout = 10 * time.Second
)

type NotificationMgr struct {
	name string
	db   *gorm.DB
}

func NewNotificationMgr(conf *RegisterConfig) Manager {
	return &NotificationMgr{
		name: "notifications",
		db:   conf.DB,
	}
}

func (mgr *NotificationMgr) GetName() string { return mgr.name }

func (mgr *NotificationMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *NotificationMgr) RegisterProtected(g *gin.RouterGroup) {
	g.GET("/notifications", mgr.ListNotifications)
	g.GET("/notifications/unread-count", mgr.UnreadCount)
	g.PUT("/notifications/read", mgr.MarkRead)
	g.PUT("/notifications/read-all", mgr.MarkAllRead)
	g.GET("/notifications/stream", mgr.Stream)
}

func (mgr *NotificationMgr) RegisterAdmin(_ *gin.RouterGroup) {}

type (
	NotificationListQuery struct {
		payload.ListReqQuery
		Unread bool `form:"unread"` // 仅未读
	}

	MarkReadReq struct {
		IDs []uint `json:"ids" binding:"required,min=1"` // 待标记的通知ID
	}

	NotificationResp struct {
		ID        uint                      `json:"id"`
		Type      model.NotificationType    `json:"type"`
		Message   string                    `json:"message"`
		ActorID   uint                      `json:"actorId"`
		EntityID  uint                      `json:"entityId"`
		Payload   model.NotificationPayload `json:"payload"`
		Read      bool                      `json:"read"`
		CreatedAt time.Time                 `json:"createdAt"`
	}
)

func newNotificationResp(n *model.Notification) NotificationResp {
	return NotificationResp{
		ID:        n.ID,
		Type:      n.Type,
		Message:   n.Message,
		ActorID:   n.ActorID,
		EntityID:  n.EntityID,
		Payload:   n.Payload.Data(),
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

// ListNotifications godoc
// @Summary 列出我的通知
// @Description 分页返回当前用户的通知，可仅看未读
// @Tags Notification
// @Produce json
// @Security Bearer
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Param unread query bool false "仅未读"
// @Success 200 {object} resputil.Envelope "通知列表"
// @Router /v1/notifications [get]
func (mgr *NotificationMgr) ListNotifications(c *gin.Context) {
	var q NotificationListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	q.Normalize()
	token := util.GetToken(c)

	tx := mgr.db.WithContext(c).Model(&model.Notification{}).
		Where("user_id = ?", token.UserID)
	if q.Unread {
		tx = tx.Where("read = ?", false)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		resputil.Error(c, err)
		return
	}
	var notifications []model.Notification
	err := tx.Order("id DESC").
		Offset(q.Offset()).Limit(q.Limit).
		Find(&notifications).Error
	if err != nil {
		resputil.Error(c, err)
		return
	}
	resp := make([]NotificationResp, 0, len(notifications))
	for i := range notifications {
		resp = append(resp, newNotificationResp(&notifications[i]))
	}
	resputil.Success(c, resputil.Envelope{
		"notifications": resp,
		"pagination":    payload.NewPagination(q.ListReqQuery, total),
	})
}

// UnreadCount godoc
// @Summary 未读通知数
// @Description 返回当前用户的未读通知数量
// @Tags Notification
// @Produce json
// @Security Bearer
// @Success 200 {object} resputil.Envelope "未读数量"
// @Router /v1/notifications/unread-count [get]
func (mgr *NotificationMgr) UnreadCount(c *gin.Context) {
	token := util.GetToken(c)
	var count int64
	err := mgr.db.WithContext(c).Model(&model.Notification{}).
		Where("user_id = ? AND read = ?", token.UserID, false).
		Count(&count).Error
	if err != nil {
		resputil.Error(c, err)
		return
	}
	resputil.Success(c, resputil.Envelope{"count": count})
}

// MarkRead godoc
// @Summary 标记通知已读
// @Description 校验每个ID都属于当前用户后整体标记，任一不符则整体失败
// @Tags Notification
// @Accept json
// @Produce json
// @Security Bearer
// @Param data body MarkReadReq true "通知ID列表"
// @Success 200 {object} resputil.Envelope "标记成功"
// @Failure 404 {object} resputil.Envelope "存在不属于当前用户的通知"
// @Router /v1/notifications/read [put]
func (mgr *NotificationMgr) MarkRead(c *gin.Context) {
	var req MarkReadReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	token := util.GetToken(c)
	ids := lo.Uniq(req.IDs)

	// 先整体校验归属，再整体更新
	var count int64
	err := mgr.db.WithContext(c).Model(&model.Notification{}).
		Where("id IN ? AND user_id = ?", ids, token.UserID).
		Count(&count).Error
	if err != nil {
		resputil.Error(c, err)
		return
	}
	if count != int64(len(ids)) {
		resputil.HTTPError(c, http.StatusNotFound, "some notifications were not found")
		return
	}
	err = mgr.db.WithContext(c).Model(&model.Notification{}).
		Where("id IN ? AND user_id = ?", ids, token.UserID).
		Update("read", true).Error
	if err != nil {
		resputil.Error(c, err)
		return
	}
	resputil.Message(c, "notifications marked as read")
}

// MarkAllRead godoc
// @Summary 全部标记已读
// @Description 将当前用户的所有未读通知标记为已读
// @Tags Notification
// @Produce json
// @Security Bearer
// @Success 200 {object} resputil.Envelope "标记成功"
// @Router /v1/notifications/read-all [put]
func (mgr *NotificationMgr) MarkAllRead(c *gin.Context) {
	token := util.GetToken(c)
	err := mgr.db.WithContext(c).Model(&model.Notification{}).
		Where("user_id = ? AND read = ?", token.UserID, false).
		Update("read", true).Error
	if err != nil {
		resputil.Error(c, err)
		return
	}
	resputil.Message(c, "all notifications marked as read")
}

// Stream godoc
// @Summary 通知推送
// @Description 升级为 WebSocket，轮询推送新产生的通知，连接关闭即结束
// @Tags Notification
// @Security Bearer
// @Success 101 {string} string "协议切换"
// @Router /v1/notifications/stream [get]
func (mgr *NotificationMgr) Stream(c *gin.Context) {
	token := util.GetToken(c)

	var upgrade = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
	// Allow all origins in debug mode
	if config.IsDebugMode() {
		upgrade.CheckOrigin = func(_ *http.Request) bool {
			return true
		}
	}
	ws, err := upgrade.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	defer ws.Close()

	// 从连接时的最新通知之后开始推送
	var lastID uint
	row := mgr.db.WithContext(c).Model(&model.Notification{}).
		Where("user_id = ?", token.UserID).
		Select("COALESCE(MAX(id), 0)")
	if err := row.Scan(&lastID).Error; err != nil {
		klog.Errorf("notification stream init for user %d: %v", token.UserID, err)
		return
	}

	// 读协程只负责探测客户端关闭
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(StreamPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case <-ticker.C:
			var fresh []model.Notification
			err := mgr.db.WithContext(c).
				Where("user_id = ? AND id > ?", token.UserID, lastID).
				Order("id ASC").
				Find(&fresh).Error
			if err != nil {
				klog.Errorf("notification stream poll for user %d: %v", token.UserID, err)
				return
			}
			for i := range fresh {
				if err := ws.SetWriteDeadline(time.Now().Add(StreamWriteTimeout)); err != nil {
					return
				}
				if err := ws.WriteJSON(newNotificationResp(&fresh[i])); err != nil {
					return
				}
				lastID = fresh[i].ID
			}
		}
	}
}
