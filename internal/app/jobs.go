package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/revline/revline/internal/domain"
	"github.com/revline/revline/internal/promo"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@every 10m", func() {
		a.SchedDeactivateExpiredPromos()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@daily", func() {
		a.SchedClearExpireData()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedDeactivateExpiredPromos sweeps promo codes whose validity window has
// ended. Validation rejects expired codes on its own; the sweep just keeps
// the admin listing honest.
func (a *Application) SchedDeactivateExpiredPromos() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()
	repo := promo.NewGormRepository(a.gormDB)
	n, err := repo.DeactivateExpired(context.Background(), time.Now())
	if err != nil {
		zap.L().Error("promo expiry sweep failed", zap.Error(err))
		return
	}
	if n > 0 {
		zap.L().Info("deactivated expired promo codes", zap.Int64("count", n))
	}
}

// SchedClearExpireData removes audit log entries older than a year.
func (a *Application) SchedClearExpireData() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()
	a.gormDB.
		Where("opt_time < ? ", time.Now().
			Add(-time.Hour*24*365)).Delete(domain.SysOprLog{})
}
