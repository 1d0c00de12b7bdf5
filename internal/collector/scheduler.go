package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/BalesJ1029/hodlalpha/internal/metrics"
)

type PriceSource interface {
	FetchPrice(ctx context.Context) (float64, error)
}

type PriceWriter interface {
	UpsertLatest(ctx context.Context, asset string, price float64) error
}

// Scheduler runs the reference-price refresh on a fixed interval. A failed
// tick is logged and dropped; the next tick runs regardless.
type Scheduler struct {
	fetcher  PriceSource
	store    PriceWriter
	cron     *cron.Cron
	logger   *logrus.Entry
	asset    string
	interval time.Duration
}

func NewScheduler(fetcher PriceSource, store PriceWriter, asset string, interval time.Duration, logger *logrus.Entry) *Scheduler {
	return &Scheduler{
		fetcher:  fetcher,
		store:    store,
		cron:     cron.New(),
		logger:   logger,
		asset:    asset,
		interval: interval,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.WithFields(logrus.Fields{
		"asset":    s.asset,
		"interval": s.interval,
	}).Info("Starting price refresh scheduler")

	_, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.interval), func() {
		s.refresh(ctx)
	})
	if err != nil {
		return err
	}

	s.cron.Start()

	// Run initial refresh
	go s.refresh(ctx)

	s.logger.Info("Price refresh scheduler started successfully")
	return nil
}

func (s *Scheduler) Stop() {
	s.logger.Info("Stopping price refresh scheduler")
	s.cron.Stop()
}

func (s *Scheduler) refresh(ctx context.Context) {
	start := time.Now()
	metrics.RefreshCycles.Inc()

	price, err := s.fetcher.FetchPrice(ctx)
	if err != nil {
		metrics.RefreshFailures.Inc()
		s.logger.WithError(err).Error("Failed to fetch reference price")
		return
	}

	if err := s.store.UpsertLatest(ctx, s.asset, price); err != nil {
		metrics.RefreshFailures.Inc()
		s.logger.WithError(err).Error("Failed to store reference price")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"asset":       s.asset,
		"price":       price,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("Price refresh cycle completed successfully")
}
