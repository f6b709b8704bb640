package job

import (
	"Birrapp/internal/pkg/consts"
	"Birrapp/internal/pkg/logger"
	"Birrapp/internal/pkg/redis"
	"Birrapp/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// TotalReconcileJob 每日校准 beer_totals 汇总表，修正可能产生的累计偏差
type TotalReconcileJob struct {
	beerRepo repository.BeerRepo
}

func NewTotalReconcileJob(beerRepo repository.BeerRepo) *TotalReconcileJob {
	return &TotalReconcileJob{
		beerRepo: beerRepo,
	}
}

func (s *TotalReconcileJob) Run() {
	traceID := "job-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	start := time.Now()
	if err := s.beerRepo.ReconcileTotals(ctx); err != nil {
		log.ErrorContext(ctx, "reconcile beer totals error", "err", err)
		return
	}

	// 汇总表被重写后缓存一并失效
	if err := redis.DeleteKey(ctx, consts.BeerRankingsKey); err != nil {
		log.WarnContext(ctx, "delete rankings cache error", "err", err)
	}

	log.InfoContext(ctx, "reconcile beer totals success", "cost", time.Since(start).String())
}
