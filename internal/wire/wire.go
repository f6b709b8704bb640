package wire

import (
	"Birrapp/internal/api"
	"Birrapp/internal/api/config"
	"Birrapp/internal/api/handler"
	"Birrapp/internal/job"
	"Birrapp/internal/pkg/consts"
	"Birrapp/internal/pkg/cron"
	"Birrapp/internal/repository"
	"Birrapp/internal/service"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	beerRepo := repository.NewBeerRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)

	tz := cfg.Calendar.Timezone
	if tz == "" {
		tz = consts.DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, err
	}

	ledgerService := service.NewLedgerService(beerRepo, loc)
	statsService := service.NewStatsService(ledgerService)
	notifyService := service.NewNotificationService(subRepo)
	sessionService := service.NewSessionService(sessionRepo, time.Duration(cfg.Session.CacheTTL)*time.Second)

	handlers := &api.HandlersGroup{
		BeerHandler:         handler.NewBeerHandler(ledgerService),
		StatsHandler:        handler.NewStatsHandler(statsService),
		NotificationHandler: handler.NewNotificationHandler(notifyService),
		WsHandler:           handler.NewWsHandler(sessionService),
	}

	router := api.SetupRouter(handlers, sessionService)

	cronMgr := cron.NewCronManager(job.NewTotalReconcileJob(beerRepo))

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}
