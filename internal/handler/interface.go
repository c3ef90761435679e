package handler

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/redink-lab/redink/pkg/alert"
	"github.com/redink-lab/redink/pkg/cronjob"
	"github.com/redink-lab/redink/pkg/notify"
	"github.com/redink-lab/redink/pkg/reviewctl"
)

// Registers collects the manager constructors of every handler file.
// Each handler appends its own constructor in init().
var Registers []ManagerRegisterFunc

type ManagerRegisterFunc func(conf *RegisterConfig) Manager

// RegisterConfig carries the shared dependencies injected into every manager.
type RegisterConfig struct {
	DB         *gorm.DB
	Controller *reviewctl.Controller
	Dispatcher *notify.Dispatcher
	Alerter    alert.AlertInterface
	CronMgr    *cronjob.CronJobManager
}

type Manager interface {
	GetName() string
	RegisterPublic(group *gin.RouterGroup)
	RegisterProtected(group *gin.RouterGroup)
	RegisterAdmin(group *gin.RouterGroup)
}
