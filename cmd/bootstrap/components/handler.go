package components

import (
	"parking-booking/internal/handler"
	"parking-booking/internal/handler/api"
	"parking-booking/internal/handler/middleware"
	"parking-booking/internal/usecase/commands"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewLotHandler,
		api.NewAdminHandler,
		middleware.NewAuthMiddleware,
		func(b *api.BookingHandler, l *api.LotHandler, a *api.AdminHandler) handler.Handlers {
			return handler.Handlers{Booking: b, Lot: l, Admin: a}
		},
		func(s commands.ExpirySweeper) middleware.ExpirySweeper { return s },
	),
	fx.Invoke(handler.NewRouter),
)
