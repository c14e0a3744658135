package worker

import (
	"context"
	"log/slog"
	"time"
)

type expirySweeper interface {
	SweepExpired(ctx context.Context) (int, error)
}

// SweepWorker settles expired bookings on a fixed interval, in addition to
// the sweep that runs ahead of every API request.
type SweepWorker struct {
	sweeper  expirySweeper
	interval time.Duration
	logger   *slog.Logger
}

func NewSweepWorker(sweeper expirySweeper, interval time.Duration, logger *slog.Logger) *SweepWorker {
	return &SweepWorker{
		sweeper:  sweeper,
		interval: interval,
		logger:   logger,
	}
}

func (w *SweepWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("sweep worker started", "interval", w.interval.String())

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("sweep worker stopped")
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *SweepWorker) tick(ctx context.Context) {
	settled, err := w.sweeper.SweepExpired(ctx)
	if err != nil {
		w.logger.Error("failed to sweep expired bookings", "error", err.Error())
		return
	}
	if settled > 0 {
		w.logger.Info("expired bookings settled", "count", settled)
	}
}
