package bootstrap

import (
	"context"
	"log/slog"
	"sync"

	"parking-booking/internal/infra/mq"
	"parking-booking/internal/infra/repository"
	"parking-booking/internal/pkg/clock"
	"parking-booking/internal/pkg/config"
	"parking-booking/internal/usecase/commands"
	"parking-booking/internal/worker"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Invoke(
		StartSweepWorker,
		StartOutboxRelay,
	),
)

// runInBackground starts fn on OnStart and cancels it, waiting for return, on OnStop.
func runInBackground(lc fx.Lifecycle, fn func(ctx context.Context), onStop func()) {
	var (
		cancel context.CancelFunc
		wg     sync.WaitGroup
	)
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			var ctx context.Context
			ctx, cancel = context.WithCancel(context.Background())
			wg.Add(1)
			go func() {
				defer wg.Done()
				fn(ctx)
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			wg.Wait()
			if onStop != nil {
				onStop()
			}
			return nil
		},
	})
}

func StartSweepWorker(lc fx.Lifecycle, cfg config.Config, sweeper commands.ExpirySweeper, logger *slog.Logger) {
	if cfg.Sweep.Interval <= 0 {
		logger.Info("background sweep disabled; expiry is settled per request")
		return
	}
	w := worker.NewSweepWorker(sweeper, cfg.Sweep.Interval, logger)
	runInBackground(lc, w.Start, nil)
}

func StartOutboxRelay(lc fx.Lifecycle, cfg config.Config, pool *pgxpool.Pool, clk clock.Clock, logger *slog.Logger) error {
	if cfg.MQ.URL == "" {
		logger.Info("outbox relay disabled; booking events stay queued")
		return nil
	}

	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
	if err != nil {
		return err
	}

	relay := worker.NewOutboxRelay(
		repository.NewOutboxStore(pool),
		publisher,
		clk,
		cfg.MQ.PollInterval,
		cfg.MQ.BatchSize,
		cfg.MQ.MaxAttempts,
		logger,
	)
	runInBackground(lc, relay.Start, func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("failed to close publisher", "error", err.Error())
		}
	})
	return nil
}
