package middleware

import (
	"context"
	"net/http"
	"strconv"

	"parking-booking/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

const ExpiredSettledHeader = "X-Expired-Bookings-Settled"

type ExpirySweeper interface {
	SweepExpired(ctx context.Context) (int, error)
}

// SweepExpired settles overdue bookings before the handler runs, so every
// response reflects slots freed by expiry.
func SweepExpired(sweeper ExpirySweeper) gin.HandlerFunc {
	return func(c *gin.Context) {
		settled, err := sweeper.SweepExpired(c.Request.Context())
		if err != nil {
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
			return
		}
		c.Header(ExpiredSettledHeader, strconv.Itoa(settled))
		c.Next()
	}
}
