package api

import (
	"net/http"

	resdto "parking-booking/internal/handler/dto/response"
	"parking-booking/internal/handler/httperr"
	"parking-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type LotHandler struct {
	q queries.LotQueries
}

func NewLotHandler(q queries.LotQueries) *LotHandler {
	return &LotHandler{q: q}
}

// @Summary List available lots
// @Description Live lots with at least one vacant slot
// @Tags lots
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.LotResponse
// @Router /lots [get]
func (h *LotHandler) ListAvailable(c *gin.Context) {
	items, err := h.q.ListAvailable(c.Request.Context())
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromLotList(items))
}

// @Summary List vacant slots
// @Tags lots
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Success 200 {array} resdto.SlotResponse
// @Failure 404 {object} httperr.Response
// @Router /lots/{id}/slots [get]
func (h *LotHandler) ListVacantSlots(c *gin.Context) {
	id, ok := pathIDOrAbort(c, "id", "Invalid lot id")
	if !ok {
		return
	}
	slots, err := h.q.ListVacantSlots(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSlots(slots))
}
