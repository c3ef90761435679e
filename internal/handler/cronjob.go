package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/redink-lab/redink/dao/model"
	"github.com/redink-lab/redink/internal/resputil"
	"github.com/redink-lab/redink/pkg/cronjob"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewCronJobMgr)
}

type CronJobMgr struct {
	name    string
	cronMgr *cronjob.CronJobManager
}

func NewCronJobMgr(conf *RegisterConfig) Manager {
	return &CronJobMgr{
		name:    "cronjobs",
		cronMgr: conf.CronMgr,
	}
}

func (mgr *CronJobMgr) GetName() string { return mgr.name }

func (mgr *CronJobMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *CronJobMgr) RegisterProtected(_ *gin.RouterGroup) {}

func (mgr *CronJobMgr) RegisterAdmin(g *gin.RouterGroup) {
	g.GET("/cronjobs", mgr.ListCronJobs)
	g.PUT("/cronjobs/:name", mgr.UpdateCronJob)
	g.GET("/cronjobs/records", mgr.ListCronJobRecords)
	g.DELETE("/cronjobs/records", mgr.DeleteCronJobRecords)
}

type (
	UpdateCronJobReq struct {
		Type    *model.CronJobType `json:"type"`    // 任务类型
		Spec    *string            `json:"spec"`    // Cron 调度表达式
		Suspend *bool              `json:"suspend"` // 暂停或恢复
		Config  *string            `json:"config"`  // 任务参数 JSON
	}

	CronJobRecordQuery struct {
		Names     []string   `form:"name"`
		Status    *string    `form:"status"`
		StartTime *time.Time `form:"startTime" time_format:"2006-01-02T15:04:05Z07:00"`
		EndTime   *time.Time `form:"endTime" time_format:"2006-01-02T15:04:05Z07:00"`
	}

	DeleteCronJobRecordsReq struct {
		IDs       []uint     `json:"ids"`
		StartTime *time.Time `json:"startTime"`
		EndTime   *time.Time `json:"endTime"`
	}
)

// ListCronJobs godoc
// @Summary 列出维护任务配置
// @Description 返回全部定时维护任务及其调度配置
// @Tags CronJob
// @Produce json
// @Security Bearer
// @Success 200 {object} resputil.Envelope "任务配置列表"
// @Router /v1/admin/cronjobs [get]
func (mgr *CronJobMgr) ListCronJobs(c *gin.Context) {
	configs, err := mgr.cronMgr.GetAllCronJobs(c)
	if err != nil {
		resputil.Error(c, err)
		return
	}
	resputil.Success(c, resputil.Envelope{
		"cronjobs": configs,
	})
}

// UpdateCronJob godoc
// @Summary 更新维护任务配置
// @Description 调整调度表达式、参数或暂停状态，调度器即时生效
// @Tags CronJob
// @Accept json
// @Produce json
// @Security Bearer
// @Param name path string true "任务名"
// @Param data body UpdateCronJobReq true "更新字段"
// @Success 200 {object} resputil.Envelope "更新成功"
// @Router /v1/admin/cronjobs/{name} [put]
func (mgr *CronJobMgr) UpdateCronJob(c *gin.Context) {
	var req UpdateCronJobReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	name := c.Param("name")
	if err := mgr.cronMgr.UpdateJobConfig(c, name, req.Type, req.Spec, req.Suspend, req.Config); err != nil {
		resputil.Error(c, err)
		return
	}
	resputil.Message(c, "cron job updated")
}

// ListCronJobRecords godoc
// @Summary 查询维护任务执行记录
// @Description 按任务名、状态和时间范围过滤
// @Tags CronJob
// @Produce json
// @Security Bearer
// @Param name query []string false "任务名，可重复"
// @Param status query string false "执行状态"
// @Param startTime query string false "起始时间 (RFC3339)"
// @Param endTime query string false "结束时间 (RFC3339)"
// @Success 200 {object} resputil.Envelope "执行记录"
// @Router /v1/admin/cronjobs/records [get]
func (mgr *CronJobMgr) ListCronJobRecords(c *gin.Context) {
	var q CronJobRecordQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	records, total, err := mgr.cronMgr.GetCronjobRecords(c, q.Names, q.StartTime, q.EndTime, q.Status)
	if err != nil {
		resputil.Error(c, err)
		return
	}
	resputil.Success(c, resputil.Envelope{
		"records": records,
		"total":   total,
	})
}

// DeleteCronJobRecords godoc
// @Summary 清理维护任务执行记录
// @Description 按ID列表或时间范围删除，至少给出一个条件
// @Tags CronJob
// @Accept json
// @Produce json
// @Security Bearer
// @Param data body DeleteCronJobRecordsReq true "删除条件"
// @Success 200 {object} resputil.Envelope "删除数量"
// @Router /v1/admin/cronjobs/records [delete]
func (mgr *CronJobMgr) DeleteCronJobRecords(c *gin.Context) {
	var req DeleteCronJobRecordsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	// 不带条件的删除会清空整张记录表，直接拒绝
	if len(req.IDs) == 0 && req.StartTime == nil && req.EndTime == nil {
		resputil.BadRequestError(c, "at least one filter is required")
		return
	}

	deleted, err := mgr.cronMgr.DeleteCronjobRecords(c, req.IDs, req.StartTime, req.EndTime)
	if err != nil {
		resputil.Error(c, err)
		return
	}
	resputil.Success(c, resputil.Envelope{
		"deleted": deleted,
	})
}
