package bootstrap

import (
	"context"
	"log/slog"

	"parking-booking/internal/infra/migrations"
	"parking-booking/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var MigrateModule = fx.Module("migrate",
	fx.Invoke(RunMigrations),
)

// RunMigrations applies pending migrations before the server starts when
// DB_AUTO_MIGRATE is set.
func RunMigrations(lc fx.Lifecycle, cfg config.Config, pool *pgxpool.Pool, logger *slog.Logger) {
	if !cfg.DB.AutoMigrate {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return migrations.Up(ctx, pool, logger)
		},
	})
}
