package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"parking-booking/internal/domain/user"
	"parking-booking/internal/handler/api"
	"parking-booking/internal/handler/middleware"
	"parking-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Booking *api.BookingHandler
	Lot     *api.LotHandler
	Admin   *api.AdminHandler
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	logger *middleware.Logger,
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	sweeper middleware.ExpirySweeper,
) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, handlers, authMiddleware, sweeper)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware, sweeper middleware.ExpirySweeper) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	{
		// sweep runs after auth so anonymous requests cannot trigger writes
		swept := apiGroup.Group("")
		swept.Use(middleware.SweepExpired(sweeper))

		addRoutes(swept.Group("/lots"), []route{
			{Method: http.MethodGet, Path: "", Handler: h.Lot.ListAvailable},
			{Method: http.MethodGet, Path: "/:id/slots", Handler: h.Lot.ListVacantSlots},
		})

		addRoutes(swept.Group("/bookings"), []route{
			{Method: http.MethodPost, Path: "", Handler: h.Booking.Create},
			{Method: http.MethodGet, Path: "", Handler: h.Booking.ListMine},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Booking.Get},
			{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Booking.Cancel},
		})

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireRole(user.RoleAdmin))
		addRoutes(admin, []route{
			{Method: http.MethodPost, Path: "/sweep", Handler: h.Admin.Sweep},
		})

		adminSwept := admin.Group("")
		adminSwept.Use(middleware.SweepExpired(sweeper))
		addRoutes(adminSwept, []route{
			{Method: http.MethodGet, Path: "/stats", Handler: h.Admin.Stats},
			{Method: http.MethodGet, Path: "/bookings", Handler: h.Admin.ListBookings},
			{Method: http.MethodPost, Path: "/bookings/:id/cancel", Handler: h.Admin.CancelBooking},
			{Method: http.MethodPost, Path: "/lots", Handler: h.Admin.CreateLot},
			{Method: http.MethodGet, Path: "/lots", Handler: h.Admin.ListLots},
			{Method: http.MethodGet, Path: "/lots/deleted", Handler: h.Admin.ListDeletedLots},
			{Method: http.MethodDelete, Path: "/lots/:id", Handler: h.Admin.DeleteLot},
			{Method: http.MethodPost, Path: "/lots/:id/restore", Handler: h.Admin.RestoreLot},
			{Method: http.MethodGet, Path: "/lots/:id/slots", Handler: h.Admin.ListSlots},
			{Method: http.MethodDelete, Path: "/slots/:id", Handler: h.Admin.DeleteSlot},
			{Method: http.MethodPost, Path: "/slots/:id/restore", Handler: h.Admin.RestoreSlot},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
