package httperr

import (
	"net/http"

	"parking-booking/internal/pkg/errs"
	"parking-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type mapping struct {
	target  error
	status  int
	message string
}

// Checked in order; the first sentinel matched by errs.Is wins.
var mappings = []mapping{
	{errs.ErrLotNotFound, http.StatusNotFound, "Parking lot not found"},
	{errs.ErrSlotNotFound, http.StatusNotFound, "Parking slot not found"},
	{errs.ErrBookingNotFound, http.StatusNotFound, "Booking not found"},
	{errs.ErrSlotUnavailable, http.StatusConflict, "Selected slot is no longer available"},
	{errs.ErrBookingNotActive, http.StatusConflict, "Booking is not active"},
	{errs.ErrBookingAlreadyFinal, http.StatusConflict, "Booking is not active"},
	{errs.ErrSlotHasActiveBooking, http.StatusConflict, "Parking slot has an active booking"},
	{errs.ErrLotHasActiveBookings, http.StatusConflict, "Parking lot has an active booking"},
	{errs.ErrSlotNotDeleted, http.StatusConflict, "Parking slot is not deleted"},
	{errs.ErrLotNotDeleted, http.StatusConflict, "Parking lot is not deleted"},
	{errs.ErrInvalidDuration, http.StatusBadRequest, "Invalid booking duration"},
	{queries.ErrInvalidCursor, http.StatusBadRequest, "Invalid cursor"},
	{errs.ErrDomainValidation, http.StatusUnprocessableEntity, "Domain validation failed"},
	{errs.ErrForbidden, http.StatusForbidden, "Insufficient permissions"},
}

// StatusFor returns the response status and message for a usecase error.
// Unrecognized errors are storage failures and map to 500.
func StatusFor(err error) (int, string) {
	for _, m := range mappings {
		if errs.Is(err, m.target) {
			return m.status, m.message
		}
	}
	return http.StatusInternalServerError, "Internal server error"
}

func AbortWithUsecaseError(c *gin.Context, err error) {
	status, msg := StatusFor(err)
	var detail any
	if status == http.StatusUnprocessableEntity {
		detail = gin.H{"reason": errs.UnwrapAll(err).Error()}
	}
	AbortWithError(c, status, err, msg, detail)
}
