package components

import (
	"parking-booking/internal/domain/booking"
	"parking-booking/internal/pkg/clock"
	"parking-booking/internal/usecase/commands"
	"parking-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	booking.NewBillingCalculator,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingCommands,
		commands.NewLotCommands,
		commands.NewSlotCommands,
		commands.NewExpirySweeper,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewLotQueries,
		queries.NewBookingQueries,
		queries.NewStatsQueries,
	),
)
