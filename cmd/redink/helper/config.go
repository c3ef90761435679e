package helper

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/redink-lab/redink/dao"
	"github.com/redink-lab/redink/internal/handler"
	"github.com/redink-lab/redink/pkg/alert"
	"github.com/redink-lab/redink/pkg/config"
	"github.com/redink-lab/redink/pkg/cronjob"
	"github.com/redink-lab/redink/pkg/notify"
	"github.com/redink-lab/redink/pkg/reviewctl"
)

// ConfigInitializer 封装配置初始化逻辑
type ConfigInitializer struct {
	backendConfig *config.Config
}

// NewConfigInitializer 创建新的ConfigInitializer实例
func NewConfigInitializer() *ConfigInitializer {
	return &ConfigInitializer{
		backendConfig: config.GetConfig(),
	}
}

// GetBackendConfig 获取后端配置
func (ci *ConfigInitializer) GetBackendConfig() *config.Config {
	return ci.backendConfig
}

// LoadDebugEnvironment 加载调试环境变量
func (ci *ConfigInitializer) LoadDebugEnvironment() error {
	if gin.Mode() != gin.DebugMode {
		return nil
	}

	err := godotenv.Load(".debug.env")
	if err != nil {
		return err
	}

	be := os.Getenv("REDINK_BE_PORT")
	if be == "" {
		panic("REDINK_BE_PORT is not set")
	}
	hp := os.Getenv("REDINK_HP_PORT")
	if hp == "" {
		panic("REDINK_HP_PORT is not set")
	}

	ci.backendConfig.ServerAddr = ":" + be
	ci.backendConfig.ProbeAddr = ":" + hp

	return nil
}

// InitializeRegisterConfig 初始化注册配置
func (ci *ConfigInitializer) InitializeRegisterConfig() (*handler.RegisterConfig, error) {
	// init db, run pending migrations before anything touches it
	db := dao.GetDB()
	if err := dao.InitMigration(db); err != nil {
		return nil, err
	}

	dispatcher := notify.NewDispatcher(db)
	alerter := alert.GetAlertMgr()

	// 从数据库装载维护任务并启动调度器
	cronMgr := cronjob.NewCronJobManager(db, dispatcher, alerter)
	cronMgr.SyncCronJob()

	registerConfig := &handler.RegisterConfig{
		DB:         db,
		Controller: reviewctl.NewController(db, dispatcher, alerter),
		Dispatcher: dispatcher,
		Alerter:    alerter,
		CronMgr:    cronMgr,
	}
	return registerConfig, nil
}
