package cronjob

import (
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/redink-lab/redink/pkg/alert"
	"github.com/redink-lab/redink/pkg/maintain"
	"github.com/redink-lab/redink/pkg/notify"
)

type CronJobManager struct {
	db              *gorm.DB
	maintainClients *maintain.Clients
	cron            *cron.Cron
	cronMutex       sync.RWMutex
}

func NewCronJobManager(db *gorm.DB, dispatcher *notify.Dispatcher, alerter alert.AlertInterface) *CronJobManager {
	return &CronJobManager{
		db: db,
		maintainClients: &maintain.Clients{
			DB:         db,
			Dispatcher: dispatcher,
			Alerter:    alerter,
		},
		cron: cron.New(cron.WithLocation(time.Local)),
	}
}
