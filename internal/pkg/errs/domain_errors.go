package errs

// Sentinels shared by the usecase layers and matched by the handlers.
var (
	// Lot errors
	ErrLotNotFound          = New("parking lot not found")
	ErrLotHasActiveBookings = New("parking lot has active bookings")
	ErrLotNotDeleted        = New("parking lot is not deleted")

	// Slot errors
	ErrSlotNotFound         = New("parking slot not found")
	ErrSlotUnavailable      = New("parking slot unavailable")
	ErrSlotHasActiveBooking = New("parking slot has an active booking")
	ErrSlotNotDeleted       = New("parking slot is not deleted")

	// Booking errors
	ErrBookingNotFound     = New("booking not found")
	ErrBookingNotActive    = New("booking is not active")
	ErrBookingAlreadyFinal = New("booking already settled")
	ErrInvalidDuration     = New("invalid booking duration")

	// Authorization errors
	ErrForbidden = New("forbidden")

	// Validation errors
	ErrDomainValidation = New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = New("database operation failed")
)
