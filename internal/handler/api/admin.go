package api

import (
	"net/http"

	"parking-booking/internal/domain/booking"
	reqdto "parking-booking/internal/handler/dto/request"
	resdto "parking-booking/internal/handler/dto/response"
	"parking-booking/internal/handler/httperr"
	"parking-booking/internal/pkg/errs"
	"parking-booking/internal/usecase/commands"
	"parking-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var errInvalidStatusFilter = errs.New("invalid booking status filter")

type AdminHandler struct {
	bookings     commands.BookingCommands
	lots         commands.LotCommands
	slots        commands.SlotCommands
	sweeper      commands.ExpirySweeper
	bookingReads queries.BookingQueries
	lotReads     queries.LotQueries
	stats        queries.StatsQueries
}

func NewAdminHandler(
	bookings commands.BookingCommands,
	lots commands.LotCommands,
	slots commands.SlotCommands,
	sweeper commands.ExpirySweeper,
	bookingReads queries.BookingQueries,
	lotReads queries.LotQueries,
	stats queries.StatsQueries,
) *AdminHandler {
	return &AdminHandler{
		bookings:     bookings,
		lots:         lots,
		slots:        slots,
		sweeper:      sweeper,
		bookingReads: bookingReads,
		lotReads:     lotReads,
		stats:        stats,
	}
}

// @Summary Sweep expired bookings
// @Description Settle every active booking whose end time has passed
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.SweepResponse
// @Router /admin/sweep [post]
func (h *AdminHandler) Sweep(c *gin.Context) {
	settled, err := h.sweeper.SweepExpired(c.Request.Context())
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.SweepResponse{Settled: settled})
}

// @Summary List all bookings
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "active, completed or cancelled"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.BookingListResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /admin/bookings [get]
func (h *AdminHandler) ListBookings(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var status *string
	if v := c.Query("status"); v != "" {
		if !booking.Status(v).IsValid() {
			httperr.AbortWithError(c, http.StatusBadRequest, errInvalidStatusFilter, "Invalid status", nil)
			return
		}
		status = &v
	}
	cursor, limit := pageParams(c)
	items, next, err := h.bookingReads.ListAll(c.Request.Context(), actor, status, cursor, limit)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingPage(items, next))
}

// @Summary Cancel any booking
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.SettleResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/bookings/{id}/cancel [post]
func (h *AdminHandler) CancelBooking(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := pathIDOrAbort(c, "id", "Invalid booking id")
	if !ok {
		return
	}
	result, err := h.bookings.AdminCancelBooking(c.Request.Context(), actor, id)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSettleResult(result))
}

// @Summary Dashboard statistics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.DashboardStatsResponse
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	st, err := h.stats.Dashboard(c.Request.Context(), actor)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromDashboardStats(st))
}

// @Summary Create lot
// @Description Create a parking lot with slots numbered 1..total_slots
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateLotRequest true "Lot request"
// @Success 201 {object} resdto.CreateLotResponse
// @Failure 400 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /admin/lots [post]
func (h *AdminHandler) CreateLot(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req reqdto.CreateLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.lots.CreateLot(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromCreateLotResult(result))
}

// @Summary List all live lots
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.LotResponse
// @Router /admin/lots [get]
func (h *AdminHandler) ListLots(c *gin.Context) {
	items, err := h.lotReads.ListAll(c.Request.Context())
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromLotList(items))
}

// @Summary List deleted lots
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.DeletedLotResponse
// @Router /admin/lots/deleted [get]
func (h *AdminHandler) ListDeletedLots(c *gin.Context) {
	items, err := h.lotReads.ListDeleted(c.Request.Context())
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromDeletedLots(items))
}

// @Summary Delete lot
// @Description Soft-delete a lot and its slots; refused while any booking in it is active
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/lots/{id} [delete]
func (h *AdminHandler) DeleteLot(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := pathIDOrAbort(c, "id", "Invalid lot id")
	if !ok {
		return
	}
	if err := h.lots.DeleteLot(c.Request.Context(), actor, id); err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Restore lot
// @Description Restore a deleted lot together with the slots deleted with it
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Success 200 {object} resdto.RestoreLotResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/lots/{id}/restore [post]
func (h *AdminHandler) RestoreLot(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := pathIDOrAbort(c, "id", "Invalid lot id")
	if !ok {
		return
	}
	restored, err := h.lots.RestoreLot(c.Request.Context(), actor, id)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.RestoreLotResponse{LotID: id, RestoredSlots: restored})
}

// @Summary List lot slots
// @Description All slots of a lot including deleted ones, with the active booking if any
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Success 200 {array} resdto.AdminSlotResponse
// @Failure 404 {object} httperr.Response
// @Router /admin/lots/{id}/slots [get]
func (h *AdminHandler) ListSlots(c *gin.Context) {
	id, ok := pathIDOrAbort(c, "id", "Invalid lot id")
	if !ok {
		return
	}
	slots, err := h.lotReads.ListSlotsForAdmin(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAdminSlots(slots))
}

// @Summary Delete slot
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Slot ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/slots/{id} [delete]
func (h *AdminHandler) DeleteSlot(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := pathIDOrAbort(c, "id", "Invalid slot id")
	if !ok {
		return
	}
	if err := h.slots.SoftDeleteSlot(c.Request.Context(), actor, id); err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Restore slot
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Slot ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/slots/{id}/restore [post]
func (h *AdminHandler) RestoreSlot(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := pathIDOrAbort(c, "id", "Invalid slot id")
	if !ok {
		return
	}
	if err := h.slots.RestoreSlot(c.Request.Context(), actor, id); err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
