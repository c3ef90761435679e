package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/redink-lab/redink/dao/model"
	"github.com/redink-lab/redink/internal/resputil"
)

type MetricsMgr struct {
	name string
	db   *gorm.DB
}

func NewMetricsMgr(conf *RegisterConfig) Manager {
	return &MetricsMgr{
		name: "metrics",
		db:   conf.DB,
	}
}

func (mgr *MetricsMgr) GetName() string { return mgr.name }

func (mgr *MetricsMgr) RegisterPublic(metrics *gin.RouterGroup) {
	metrics.GET("/metrics", mgr.GetMetrics)
}

func (mgr *MetricsMgr) RegisterProtected(_ *gin.RouterGroup) {}

func (mgr *MetricsMgr) RegisterAdmin(_ *gin.RouterGroup) {}

// 声明一个自定义的注册表
var registry *prometheus.Registry

// 声明一个prom HTTP Handler
var promHTTPHandler http.Handler

// 各状态文章数量仪表盘
var articlesByStatusGauge = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "articles_by_status",
		Help: "Number of live articles per workflow status",
	},
	[]string{"status"},
)

// 未读通知仪表盘
var unreadNotificationsGauge = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Name: "unread_notifications_total",
		Help: "Total number of unread notifications",
	},
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewMetricsMgr)
	registry = prometheus.NewRegistry()
	promHTTPHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
	registry.MustRegister(articlesByStatusGauge)
	registry.MustRegister(unreadNotificationsGauge)
}

// GetMetrics godoc
// @Summary 获取各状态文章数量等指标
// @Description 返回Prometheus能够识别的信息
// @Tags Metrics
// @Produce plain
// @Success 200 {string} string "成功返回"
// @Failure 500 {object} resputil.Envelope "其他错误"
// @Router /metrics [get]
func (mgr *MetricsMgr) GetMetrics(c *gin.Context) {
	var counts []articleStatusCount
	err := mgr.db.WithContext(c).Model(&model.Article{}).
		Select("status, COUNT(*) AS count").
		Where("archived = ?", false).
		Group("status").
		Scan(&counts).Error
	if err != nil {
		resputil.Error(c, err)
		return
	}
	setArticleGauges(counts)

	var unread int64
	err = mgr.db.WithContext(c).Model(&model.Notification{}).
		Where("read = ?", false).
		Count(&unread).Error
	if err != nil {
		resputil.Error(c, err)
		return
	}
	unreadNotificationsGauge.Set(float64(unread))

	// 暴露自定义指标
	promHTTPHandler.ServeHTTP(c.Writer, c.Request)
}

type articleStatusCount struct {
	Status model.ArticleStatus
	Count  int64
}

func setArticleGauges(counts []articleStatusCount) {
	statuses := []model.ArticleStatus{
		model.ArticleStatusDraft,
		model.ArticleStatusInReview,
		model.ArticleStatusApproved,
		model.ArticleStatusRejected,
	}
	// 缺失的状态要归零，避免残留上次抓取的值
	seen := map[model.ArticleStatus]int64{}
	for i := range counts {
		seen[counts[i].Status] = counts[i].Count
	}
	for _, status := range statuses {
		articlesByStatusGauge.WithLabelValues(string(status)).Set(float64(seen[status]))
	}
}
