package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/slapp/studio-booking-backend/internal/reservation"
)

// Sweeper periodically applies the time-derived reservation transitions
// (auto-confirm, start, complete). Correctness does not depend on it; reads
// apply the same transitions lazily. It keeps stored statuses fresh for
// clients that only list.
type Sweeper struct {
	reservations reservation.Service
	interval     time.Duration
	logger       *zap.Logger
	stopChan     chan struct{}
}

func NewSweeper(reservations reservation.Service, interval time.Duration, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		reservations: reservations,
		interval:     interval,
		logger:       logger,
		stopChan:     make(chan struct{}),
	}
}

func (s *Sweeper) Start(ctx context.Context) {
	s.logger.Info("starting reservation sweeper", zap.Duration("interval", s.interval))
	go s.run(ctx)
}

func (s *Sweeper) Stop() {
	s.logger.Info("stopping reservation sweeper")
	close(s.stopChan)
}

func (s *Sweeper) run(ctx context.Context) {
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-s.stopChan:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	stats, err := s.reservations.Sweep(ctx)
	if err != nil {
		s.logger.Error("reservation sweep failed", zap.Error(err))
		return
	}
	if stats.AutoConfirmed > 0 || stats.Started > 0 || stats.Completed > 0 {
		s.logger.Info("reservation sweep applied transitions",
			zap.Int64("auto_confirmed", stats.AutoConfirmed),
			zap.Int64("started", stats.Started),
			zap.Int64("completed", stats.Completed),
		)
	}
}
